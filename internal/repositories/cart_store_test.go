package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcstore/internal/cart"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*repositories.RedisCartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return repositories.NewRedisCartStore(client, ttl), mr
}

func TestCartStore_SaveLoadDelete(t *testing.T) {
	redisStore, _ := newRedisStore(t, 0)
	stores := map[string]repositories.CartStore{
		"memory": repositories.NewMemoryCartStore(),
		"redis":  redisStore,
	}
	gpu := models.Product{ID: "gpu-a", Name: "GPU A", Category: models.CategoryGPU, Price: 350, Stock: 5, PowerScore: 40}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := store.Load(ctx, "session-1")
			require.NoError(t, err)
			assert.True(t, empty.IsEmpty())

			c := cart.New()
			require.NoError(t, c.AddItem(gpu, 2))
			require.NoError(t, store.Save(ctx, "session-1", c))

			loaded, err := store.Load(ctx, "session-1")
			require.NoError(t, err)
			assert.Equal(t, c.Items(), loaded.Items())

			other, err := store.Load(ctx, "session-2")
			require.NoError(t, err)
			assert.True(t, other.IsEmpty(), "sessions must not share carts")

			require.NoError(t, store.Delete(ctx, "session-1"))
			gone, err := store.Load(ctx, "session-1")
			require.NoError(t, err)
			assert.True(t, gone.IsEmpty())
		})
	}
}

func TestRedisCartStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	c := cart.New()
	require.NoError(t, c.AddItem(models.Product{ID: "ram", Name: "RAM", Category: models.CategoryRAM, Price: 80, Stock: 3}, 1))
	require.NoError(t, store.Save(ctx, "abc", c))

	assert.True(t, mr.Exists("cart:abc"))
	assert.Equal(t, time.Minute, mr.TTL("cart:abc"))

	mr.FastForward(2 * time.Minute)
	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestRedisCartStore_CorruptPayload(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	require.NoError(t, mr.Set("cart:bad", "not-json"))

	_, err := store.Load(context.Background(), "bad")
	assert.Error(t, err)
}
