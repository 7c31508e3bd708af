package repositories_test

import (
	"context"
	"testing"

	"pcstore/internal/database"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() *models.Receipt {
	return &models.Receipt{
		Lines: []models.ReceiptLine{
			{ProductID: "cpu-test", Name: "CPU Test", Quantity: 2, UnitPrice: 300, Subtotal: 600},
			{ProductID: "gpu-test", Name: "GPU Test", Quantity: 1, UnitPrice: 500, Subtotal: 500},
		},
		Total: 1100,
	}
}

func TestReceiptRepository_CreateAndGet(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.Migrate(db))

	repos := map[string]repositories.ReceiptRepository{
		"gorm":   repositories.NewGORMReceiptRepository(db, nil),
		"memory": repositories.NewMemoryReceiptRepository(),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			receipt := sampleReceipt()
			require.NoError(t, repo.Create(ctx, receipt))
			require.NotEmpty(t, receipt.ID)

			got, err := repo.GetByID(ctx, receipt.ID)
			require.NoError(t, err)
			assert.Equal(t, 1100.0, got.Total)
			require.Len(t, got.Lines, 2)
			assert.Equal(t, "cpu-test", got.Lines[0].ProductID)
			assert.Equal(t, 600.0, got.Lines[0].Subtotal)
			assert.Equal(t, "gpu-test", got.Lines[1].ProductID)

			_, err = repo.GetByID(ctx, "no-such-receipt")
			assert.ErrorIs(t, err, models.ErrNotFound)
		})
	}
}

func TestAdminRepository_CreateAndGetByUsername(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.Migrate(db))

	repo := repositories.NewGORMAdminRepository(db)
	ctx := context.Background()

	admin := &models.Admin{Username: "root", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, admin))
	assert.NotEmpty(t, admin.ID)

	got, err := repo.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.Create(ctx, &models.Admin{Username: "root", Password: "other"})
	assert.Error(t, err)
}
