package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ErrCacheMiss when absent", func(t *testing.T) {
		c := store.NewMemoryCache(10)

		got, err := c.Get(ctx, "abc")

		assert.Empty(t, got)
		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		c := store.NewMemoryCache(10)
		require.NoError(t, c.Set(ctx, "abc", "https://example.com"))

		got, err := c.Get(ctx, "abc")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		c := store.NewMemoryCache(10)
		_ = c.Set(ctx, "abc", "https://example.com")

		require.NoError(t, c.Delete(ctx, "abc"))

		_, err := c.Get(ctx, "abc")
		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		c := store.NewMemoryCache(2)
		_ = c.Set(ctx, "a", "https://a.com")
		_ = c.Set(ctx, "b", "https://b.com")

		_, _ = c.Get(ctx, "a")
		_ = c.Set(ctx, "c", "https://c.com")

		_, err := c.Get(ctx, "b")
		require.ErrorIs(t, err, shortener.ErrCacheMiss)

		_, err = c.Get(ctx, "a")
		require.NoError(t, err)

		assert.Equal(t, 2, c.Len())
	})
}

func TestMemoryCounter(t *testing.T) {
	t.Run("starts after the seed", func(t *testing.T) {
		c := store.NewMemoryCounter(41)

		n, err := c.Next(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(42), n)
	})

	t.Run("never repeats under concurrency", func(t *testing.T) {
		c := store.NewMemoryCounter(0)

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[int64]bool)
		)

		for range 100 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				n, _ := c.Next(context.Background())

				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}()
		}

		wg.Wait()
		assert.Len(t, seen, 100)
	})
}
