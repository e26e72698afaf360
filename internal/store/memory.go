package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process. Selected with memory:// and used by
// handler tests.
type MemoryStore struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]StoredDocument
}

// StoredDocument is a record held by MemoryStore.
type StoredDocument struct {
	ID       string
	Doc      Document
	StoredAt time.Time
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{name: name, collections: make(map[string][]StoredDocument)}
}

func (m *MemoryStore) Create(_ context.Context, collection string, doc Document) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}
	cp := make(Document, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], StoredDocument{ID: id, Doc: cp, StoredAt: time.Now().UTC()})
	return id, nil
}

func (m *MemoryStore) ListCollections(_ context.Context, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.collections))
	for name := range m.collections {
		out = append(out, name)
	}
	sort.Strings(out)
	if n := clampLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Documents returns a copy of the records stored in collection.
func (m *MemoryStore) Documents(collection string) []StoredDocument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]StoredDocument(nil), m.collections[collection]...)
}

func (m *MemoryStore) Name() string { return m.name }

func (m *MemoryStore) Close(context.Context) error { return nil }
