// Package cli wires the pcstore commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
}

// NewRootCommand returns the pcstore command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "pcstore",
		Short:         "PC components store: catalog, cart and checkout",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a .env file (default .env)")

	root.AddCommand(
		newServeCommand(opts),
		newSeedCommand(opts),
		newInventoryCommand(opts),
		newAdminCommand(opts),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

// withApp runs fn with a bootstrapped app and closes it afterwards.
func withApp(opts *rootOptions, fn func(*app) error) error {
	a, err := bootstrap(opts.envFile)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
