package driven

import (
	"context"

	"github.com/custodia-labs/tramites/internal/core/domain"
)

// DocumentStore persists JSON-like documents in named collections.
// Backed by SQLite locally or the Astra Data API remotely.
type DocumentStore interface {
	// ListCollections returns the collection names.
	ListCollections(ctx context.Context) ([]string, error)

	// CreateCollection creates a collection. Creating an existing
	// collection is not an error.
	CreateCollection(ctx context.Context, name string) error

	// InsertOne stores a document and returns its identifier. Documents
	// without an "_id" are assigned one.
	InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error)

	// Find returns every document in a collection.
	Find(ctx context.Context, collection string) ([]domain.Document, error)

	// Close releases resources.
	Close() error
}
