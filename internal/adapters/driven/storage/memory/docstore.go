package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Collections keep documents in insertion order.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string][]domain.Document
	order       []string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string][]domain.Document),
	}
}

// ListCollections returns collection names in creation order.
func (s *DocumentStore) ListCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

// CreateCollection creates a collection if it does not exist.
func (s *DocumentStore) CreateCollection(_ context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("collection name: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; ok {
		return nil
	}
	s.collections[name] = nil
	s.order = append(s.order, name)
	return nil
}

// InsertOne stores a copy of doc, assigning a UUID when it has no "_id".
func (s *DocumentStore) InsertOne(_ context.Context, collection string, doc domain.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return "", fmt.Errorf("collection %s: %w", collection, domain.ErrNotFound)
	}

	stored := doc.Clone()
	id := stored.ID()
	if id == "" {
		id = uuid.New().String()
		stored[domain.IDField] = id
	}
	for _, existing := range docs {
		if existing.ID() == id {
			return "", fmt.Errorf("document %s: %w", id, domain.ErrAlreadyExists)
		}
	}

	s.collections[collection] = append(docs, stored)
	return id, nil
}

// Find returns copies of every document in collection.
func (s *DocumentStore) Find(_ context.Context, collection string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", collection, domain.ErrNotFound)
	}
	out := make([]domain.Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out, nil
}

// Close is a no-op.
func (s *DocumentStore) Close() error {
	return nil
}
