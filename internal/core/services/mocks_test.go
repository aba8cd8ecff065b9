package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
)

// mockDocumentStore is a testify mock of driven.DocumentStore.
type mockDocumentStore struct {
	mock.Mock
}

var _ driven.DocumentStore = (*mockDocumentStore)(nil)

func (m *mockDocumentStore) ListCollections(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *mockDocumentStore) CreateCollection(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockDocumentStore) InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error) {
	args := m.Called(ctx, collection, doc)
	return args.String(0), args.Error(1)
}

func (m *mockDocumentStore) Find(ctx context.Context, collection string) ([]domain.Document, error) {
	args := m.Called(ctx, collection)
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

func (m *mockDocumentStore) Close() error {
	return m.Called().Error(0)
}
