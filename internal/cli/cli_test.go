package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcstore/internal/cli"
	"pcstore/internal/models"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(dir, "pcstore.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ADMIN_PASSWORD", "")
	return filepath.Join(dir, "missing.env")
}

func run(t *testing.T, envFile string, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", envFile}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedAndList(t *testing.T) {
	envFile := setupEnv(t)

	out, err := run(t, envFile, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 15 products")

	out, err = run(t, envFile, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	out, err = run(t, envFile, "inventory", "list", "--category", "gpu")
	require.NoError(t, err)
	assert.Contains(t, out, "nvidia-rtx-4060")
	assert.NotContains(t, out, "intel-i5-13600k")

	_, err = run(t, envFile, "inventory", "list", "--category", "monitor")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestInventoryLifecycle(t *testing.T) {
	envFile := setupEnv(t)

	out, err := run(t, envFile, "inventory", "add", "--name", "Ryzen 9 7950X", "--category", "cpu", "--price", "550", "--stock", "3", "--power", "97")
	require.NoError(t, err)
	assert.Contains(t, out, "ryzen-9-7950x")

	out, err = run(t, envFile, "inventory", "show", "ryzen-9-7950x")
	require.NoError(t, err)
	assert.Contains(t, out, "Ryzen 9 7950X")

	out, err = run(t, envFile, "inventory", "stock", "--", "ryzen-9-7950x", "-2")
	require.NoError(t, err)
	assert.Contains(t, out, "now 1")

	_, err = run(t, envFile, "inventory", "stock", "--", "ryzen-9-7950x", "-5")
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	_, err = run(t, envFile, "inventory", "stock", "ryzen-9-7950x", "many")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = run(t, envFile, "inventory", "remove", "ryzen-9-7950x")
	require.NoError(t, err)

	_, err = run(t, envFile, "inventory", "show", "ryzen-9-7950x")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAdminAdd(t *testing.T) {
	envFile := setupEnv(t)

	out, err := run(t, envFile, "admin", "add", "operator", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "Created admin operator")

	_, err = run(t, envFile, "admin", "add", "operator", "password123")
	assert.ErrorIs(t, err, models.ErrDuplicateID)
}
