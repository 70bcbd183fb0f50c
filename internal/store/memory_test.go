package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func newRecord(id, slug, owner string) *shortener.Record {
	r := &shortener.Record{
		ID:        id,
		Slug:      shortener.Slug(slug),
		Original:  "https://example.com/" + slug,
		CreatedAt: time.Now(),
	}
	if owner != "" {
		r.OwnerID = ptr(owner)
	}

	return r
}

func TestMemoryStore_Create(t *testing.T) {
	t.Run("creates record", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.Create(context.Background(), newRecord("1", "abc", ""))
		require.NoError(t, err)

		got, err := s.FindBySlug(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/abc", got.Original)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), newRecord("1", "abc", ""))

		err := s.Create(context.Background(), newRecord("2", "abc", ""))

		assert.ErrorIs(t, err, shortener.ErrSlugTaken)

		_, err = s.FindByIDAndOwner(context.Background(), "2", "")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("concurrent creates keep one holder per slug", func(t *testing.T) {
		s := store.NewMemoryStore()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			success int
		)

		for i := range 20 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				rec := newRecord(string(rune('a'+i)), "same", "")
				if s.Create(context.Background(), rec) == nil {
					mu.Lock()
					success++
					mu.Unlock()
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, 1, success)
	})
}

func TestMemoryStore_FindByIDAndOwner(t *testing.T) {
	s := store.NewMemoryStore()
	_ = s.Create(context.Background(), newRecord("1", "abc", "alice"))

	t.Run("returns owned record", func(t *testing.T) {
		got, err := s.FindByIDAndOwner(context.Background(), "1", "alice")

		require.NoError(t, err)
		assert.Equal(t, shortener.Slug("abc"), got.Slug)
	})

	t.Run("hides records of other owners", func(t *testing.T) {
		got, err := s.FindByIDAndOwner(context.Background(), "1", "bob")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("returned record is a copy", func(t *testing.T) {
		got, _ := s.FindByIDAndOwner(context.Background(), "1", "alice")
		got.Slug = "mutated"

		again, _ := s.FindByIDAndOwner(context.Background(), "1", "alice")
		assert.Equal(t, shortener.Slug("abc"), again.Slug)
	})
}

func TestMemoryStore_UpdateSlug(t *testing.T) {
	t.Run("moves the slug", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), newRecord("1", "old", "alice"))

		err := s.UpdateSlug(context.Background(), "1", "alice", "new", false)
		require.NoError(t, err)

		_, err = s.FindBySlug(context.Background(), "old")
		assert.ErrorIs(t, err, shortener.ErrNotFound)

		got, err := s.FindBySlug(context.Background(), "new")
		require.NoError(t, err)
		assert.Equal(t, "1", got.ID)
	})

	t.Run("keeps or resets visits", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), newRecord("1", "a", "alice"))
		_ = s.IncrementVisits(context.Background(), "a")
		_ = s.IncrementVisits(context.Background(), "a")

		_ = s.UpdateSlug(context.Background(), "1", "alice", "b", false)
		got, _ := s.FindBySlug(context.Background(), "b")
		assert.Equal(t, int64(2), got.Visits)

		_ = s.UpdateSlug(context.Background(), "1", "alice", "c", true)
		got, _ = s.FindBySlug(context.Background(), "c")
		assert.Equal(t, int64(0), got.Visits)
	})

	t.Run("rejects taken slug", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), newRecord("1", "a", "alice"))
		_ = s.Create(context.Background(), newRecord("2", "b", "alice"))

		err := s.UpdateSlug(context.Background(), "1", "alice", "b", false)

		assert.ErrorIs(t, err, shortener.ErrSlugTaken)
	})

	t.Run("returns ErrNotFound for foreign owner", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), newRecord("1", "a", "alice"))

		err := s.UpdateSlug(context.Background(), "1", "bob", "b", false)

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestMemoryStore_IncrementVisits(t *testing.T) {
	t.Run("increments", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), newRecord("1", "abc", ""))

		require.NoError(t, s.IncrementVisits(context.Background(), "abc"))

		got, _ := s.FindBySlug(context.Background(), "abc")
		assert.Equal(t, int64(1), got.Visits)
	})

	t.Run("returns ErrNotFound for unknown slug", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.IncrementVisits(context.Background(), "nope")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestMemoryStore_CountBySlug(t *testing.T) {
	s := store.NewMemoryStore()
	_ = s.Create(context.Background(), newRecord("1", "abc", ""))

	count, err := s.CountBySlug(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = s.CountBySlug(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
