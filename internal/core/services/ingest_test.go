package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tramites/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tramites/internal/core/domain"
)

// flakyStore rejects documents carrying a "fail" key.
type flakyStore struct {
	*memory.DocumentStore
	createErr error
}

func (s *flakyStore) InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error) {
	if _, ok := doc["fail"]; ok {
		return "", errors.New("rejected")
	}
	return s.DocumentStore.InsertOne(ctx, collection, doc)
}

func (s *flakyStore) CreateCollection(ctx context.Context, name string) error {
	if s.createErr != nil {
		return s.createErr
	}
	return s.DocumentStore.CreateCollection(ctx, name)
}

func rows(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{{Key: "nombre", Value: "row"}, {Key: "provincia", Value: "azuay"}}
	}
	return out
}

func TestUploadCSV_CreatesCollectionAndInserts(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := NewIngestService(store, &fakeReader{records: rows(3)}, nil)
	ctx := context.Background()

	res, err := svc.UploadCSV(ctx, "instituciones_filtradas.csv", "instituciones_azuay")
	require.NoError(t, err)
	assert.Equal(t, "instituciones_azuay", res.Collection)
	assert.True(t, res.Created)
	assert.Equal(t, 3, res.Read)
	assert.Equal(t, 3, res.Inserted)
	assert.Zero(t, res.Failed)

	docs, err := store.Find(ctx, "instituciones_azuay")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "row", docs[0]["nombre"])
	assert.Equal(t, "azuay", docs[0]["provincia"])
}

func TestUploadCSV_ExistingCollection(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.CreateCollection(ctx, "c"))

	svc := NewIngestService(store, &fakeReader{records: rows(2)}, nil)
	res, err := svc.UploadCSV(ctx, "x.csv", "c")
	require.NoError(t, err)
	assert.False(t, res.Created)

	res, err = svc.UploadCSV(ctx, "x.csv", "c")
	require.NoError(t, err)
	assert.False(t, res.Created)

	docs, err := store.Find(ctx, "c")
	require.NoError(t, err)
	assert.Len(t, docs, 4)
}

func TestUploadCSV_ReadErrorLeavesStoreUntouched(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := NewIngestService(store, &fakeReader{err: errors.New("no such file")}, nil)

	_, err := svc.UploadCSV(context.Background(), "missing.csv", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")

	names, err := store.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestUploadCSV_InsertFailuresAreCounted(t *testing.T) {
	store := &flakyStore{DocumentStore: memory.NewDocumentStore()}
	records := []domain.Record{
		{{Key: "nombre", Value: "a"}},
		{{Key: "nombre", Value: "b"}, {Key: "fail", Value: "1"}},
		{{Key: "nombre", Value: "c"}},
	}
	svc := NewIngestService(store, &fakeReader{records: records}, nil)

	res, err := svc.UploadCSV(context.Background(), "x.csv", "c")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Read)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, res.Failed)
}

func TestUploadCSV_CreateCollectionError(t *testing.T) {
	store := &flakyStore{DocumentStore: memory.NewDocumentStore(), createErr: errors.New("forbidden")}
	svc := NewIngestService(store, &fakeReader{records: rows(1)}, nil)

	_, err := svc.UploadCSV(context.Background(), "x.csv", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create collection c")
}

func TestUploadCSV_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewIngestService(nil, &fakeReader{}, nil).UploadCSV(ctx, "x.csv", "c")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = NewIngestService(memory.NewDocumentStore(), &fakeReader{}, nil).UploadCSV(ctx, "x.csv", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadCSV_EmptyFile(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := NewIngestService(store, &fakeReader{}, nil)

	res, err := svc.UploadCSV(context.Background(), "empty.csv", "c")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Zero(t, res.Inserted)
}

func TestIngestPage_InsertsRawItems(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addTramitePage("", 0,
		domain.Item{"id": "1", "nombre": "Permiso", "institucion": map[string]any{"id": "10"}},
		domain.Item{"id": "2", "nombre": "Licencia"},
	)
	store := memory.NewDocumentStore()
	svc := NewIngestService(store, nil, catalog)
	ctx := context.Background()

	res, err := svc.IngestPage(ctx, 0, "tramites_page0")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, []string{""}, catalog.tramiteCalls)

	docs, err := store.Find(ctx, "tramites_page0")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Permiso", docs[0]["nombre"])
	assert.Equal(t, map[string]any{"id": "10"}, docs[0]["institucion"])
}

func TestIngestPage_FetchError(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.tramiteErrs[""] = errPage
	store := memory.NewDocumentStore()
	svc := NewIngestService(store, nil, catalog)

	_, err := svc.IngestPage(context.Background(), 0, "tramites_page0")
	assert.ErrorIs(t, err, errPage)

	names, _ := store.ListCollections(context.Background())
	assert.Empty(t, names)
}

func TestIngestPage_NoCatalog(t *testing.T) {
	svc := NewIngestService(memory.NewDocumentStore(), nil, nil)
	_, err := svc.IngestPage(context.Background(), 0, "c")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
