package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*shortener.Record // id -> record
	slugs   map[shortener.Slug]string    // slug -> id
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*shortener.Record),
		slugs:   make(map[shortener.Slug]string),
	}
}

func (m *MemoryStore) FindBySlug(_ context.Context, slug shortener.Slug) (*shortener.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugs[slug]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return clone(m.records[id]), nil
}

func (m *MemoryStore) FindByIDAndOwner(_ context.Context, id, ownerID string) (*shortener.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok || !record.OwnedBy(ownerID) {
		return nil, shortener.ErrNotFound
	}

	return clone(record), nil
}

func (m *MemoryStore) Create(_ context.Context, record *shortener.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.slugs[record.Slug]; taken {
		return shortener.ErrSlugTaken
	}

	m.records[record.ID] = clone(record)
	m.slugs[record.Slug] = record.ID

	return nil
}

func (m *MemoryStore) UpdateSlug(_ context.Context, id, ownerID string, slug shortener.Slug, resetVisits bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok || !record.OwnedBy(ownerID) {
		return shortener.ErrNotFound
	}

	if holder, taken := m.slugs[slug]; taken && holder != id {
		return shortener.ErrSlugTaken
	}

	delete(m.slugs, record.Slug)
	record.Slug = slug
	m.slugs[slug] = id

	if resetVisits {
		record.Visits = 0
	}

	return nil
}

func (m *MemoryStore) IncrementVisits(_ context.Context, slug shortener.Slug) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.slugs[slug]
	if !ok {
		return shortener.ErrNotFound
	}

	m.records[id].Visits++

	return nil
}

func (m *MemoryStore) CountBySlug(_ context.Context, slug shortener.Slug) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.slugs[slug]; ok {
		return 1, nil
	}

	return 0, nil
}

func clone(r *shortener.Record) *shortener.Record {
	c := *r
	if r.OwnerID != nil {
		owner := *r.OwnerID
		c.OwnerID = &owner
	}

	return &c
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
