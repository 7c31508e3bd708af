package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pcstore/internal/config"
	"pcstore/internal/database"
	"pcstore/internal/logging"
	"pcstore/internal/repositories"
	"pcstore/internal/services"
)

// app holds the storage-backed services shared by every command.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *gorm.DB
	products repositories.ProductRepository
	receipts repositories.ReceiptRepository
	catalog  *services.CatalogService
	auth     *services.AuthService
}

func bootstrap(envFile string) (*app, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}
	logger.Debugf("Connected to %s database", cfg.DatabaseDriver)

	products := repositories.NewGORMProductRepository(db, logger)
	return &app{
		cfg:      cfg,
		log:      logger,
		db:       db,
		products: products,
		receipts: repositories.NewGORMReceiptRepository(db, logger),
		catalog:  services.NewCatalogService(products, logger),
		auth:     services.NewAuthService(repositories.NewGORMAdminRepository(db), cfg.JWTSecret, logger),
	}, nil
}

// prepare seeds the catalog and the bootstrap admin as configured.
func (a *app) prepare(ctx context.Context) error {
	if a.cfg.SeedOnStart {
		if _, err := a.catalog.Seed(ctx); err != nil {
			return err
		}
	}
	if err := a.auth.EnsureAdmin(ctx, a.cfg.AdminUsername, a.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	return nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warnf("Error closing database: %v", err)
	}
}
