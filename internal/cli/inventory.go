package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pcstore/internal/models"
	"pcstore/internal/services"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample inventory into an empty catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app) error {
				n, err := a.catalog.Seed(cmd.Context())
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalog already has products, nothing seeded")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products\n", n)
				return nil
			})
		},
	}
}

func newInventoryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Manage the product catalog",
	}
	cmd.AddCommand(
		newInventoryListCommand(opts),
		newInventoryShowCommand(opts),
		newInventoryAddCommand(opts),
		newInventoryRemoveCommand(opts),
		newInventoryStockCommand(opts),
	)
	return cmd
}

func newInventoryListCommand(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally only the in-stock ones of a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app) error {
				var (
					products []models.Product
					err      error
				)
				if category == "" {
					products, err = a.catalog.ListAll(cmd.Context())
				} else {
					products, err = a.catalog.ListByCategory(cmd.Context(), category)
				}
				if err != nil {
					return err
				}
				if len(products) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No products found")
					return nil
				}
				return printProducts(cmd.OutOrStdout(), products)
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category filter (cpu, gpu, ram, psu, case, storage, motherboard, other)")
	return cmd
}

func newInventoryShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				product, err := a.catalog.GetProductByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printProducts(cmd.OutOrStdout(), []models.Product{*product})
			})
		},
	}
}

func newInventoryAddCommand(opts *rootOptions) *cobra.Command {
	var in services.NewProductInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app) error {
				product, err := a.catalog.AddProduct(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added product %s\n", product.ID)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&in.ID, "id", "", "product id (derived from the name when empty)")
	flags.StringVar(&in.Name, "name", "", "product name")
	flags.StringVar(&in.Category, "category", "", "product category")
	flags.Float64Var(&in.Price, "price", 0, "unit price")
	flags.IntVar(&in.Stock, "stock", 0, "units in stock")
	flags.Float64Var(&in.PowerScore, "power", 0, "power score 0-100 (cpu and gpu only)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newInventoryRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a product from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if err := a.catalog.RemoveProduct(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed product %s\n", args[0])
				return nil
			})
		},
	}
}

func newInventoryStockCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stock <id> <delta>",
		Short: "Adjust a product's stock by a signed delta (use -- before negative deltas)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return models.NewValidationError("delta", fmt.Sprintf("delta must be an integer, got %q", args[1]))
			}
			return withApp(opts, func(a *app) error {
				product, err := a.catalog.AdjustStock(cmd.Context(), args[0], delta)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stock of %s is now %d\n", product.ID, product.Stock)
				return nil
			})
		},
	}
}

func printProducts(out io.Writer, products []models.Product) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tPOWER")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%.0f\n", p.ID, p.Name, p.Category, p.Price, p.Stock, p.PowerScore)
	}
	return w.Flush()
}
