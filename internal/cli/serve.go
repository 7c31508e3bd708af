package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pcstore/internal/config"
	"pcstore/internal/repositories"
	"pcstore/internal/server"
	"pcstore/internal/services"
	"pcstore/pkg/rabbitmq"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var consume bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app) error {
				return serve(cmd.Context(), a, consume)
			})
		},
	}
	cmd.Flags().BoolVar(&consume, "consume-sales", true, "log sale events read back from RabbitMQ")
	return cmd
}

func serve(ctx context.Context, a *app, consume bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.prepare(ctx); err != nil {
		return err
	}

	carts, closeCarts, err := cartStore(ctx, a)
	if err != nil {
		return err
	}
	defer closeCarts()

	// A nil *rabbitmq.Client must not reach the service as a non-nil interface.
	var publisher services.EventPublisher
	if a.cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: a.cfg.RabbitMQURL}, a.log)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if consume {
			if err := mqClient.ConsumeSaleEvents(ctx, rabbitmq.LogSaleEvent(a.log)); err != nil {
				a.log.Warnf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	} else {
		a.log.Info("RABBITMQ_URL not set, sale events are disabled")
	}

	checkout := services.NewCheckoutService(a.products, a.receipts, publisher, a.log)
	httpApp := server.New(server.Deps{
		Catalog:    a.catalog,
		Checkout:   checkout,
		Auth:       a.auth,
		Carts:      carts,
		Logger:     a.log,
		RequestLog: true,
	})

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("Starting server on %s", a.cfg.AppPort)
		errCh <- httpApp.Listen(a.cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")
	if err := httpApp.Shutdown(); err != nil {
		a.log.Errorf("Error during Fiber shutdown: %v", err)
	}
	a.log.Info("Server gracefully stopped")
	return nil
}

func cartStore(ctx context.Context, a *app) (repositories.CartStore, func(), error) {
	if a.cfg.CartStore != config.CartStoreRedis {
		return repositories.NewMemoryCartStore(), func() {}, nil
	}
	client, err := repositories.NewRedisClient(ctx, a.cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	a.log.Infof("Cart sessions stored in Redis at %s", a.cfg.RedisAddr)
	return repositories.NewRedisCartStore(client, a.cfg.CartTTL), func() { client.Close() }, nil
}
