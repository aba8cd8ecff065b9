package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
	"github.com/custodia-labs/tramites/internal/core/ports/driving"
	"github.com/custodia-labs/tramites/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingester = (*IngestService)(nil)

// IngestService loads CSV rows and raw API items into the document store,
// one insert per document. A failed insert is logged and skipped.
type IngestService struct {
	store   driven.DocumentStore
	reader  driven.RecordReader
	catalog driven.Catalog
}

// NewIngestService creates an ingest service. catalog may be nil when only
// CSV uploads are needed.
func NewIngestService(store driven.DocumentStore, reader driven.RecordReader, catalog driven.Catalog) *IngestService {
	return &IngestService{store: store, reader: reader, catalog: catalog}
}

// UploadCSV inserts one document per row of the CSV at path.
func (s *IngestService) UploadCSV(ctx context.Context, path, collection string) (*driving.IngestResult, error) {
	if s.store == nil || s.reader == nil {
		return nil, fmt.Errorf("upload: %w", domain.ErrNotConfigured)
	}
	if collection == "" {
		return nil, fmt.Errorf("collection name: %w", domain.ErrInvalidInput)
	}

	records, err := s.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	docs := make([]domain.Document, len(records))
	for i, rec := range records {
		docs[i] = rec.Document()
	}

	return s.insertAll(ctx, collection, docs)
}

// IngestPage inserts the raw items of one page of the tramites listing.
func (s *IngestService) IngestPage(ctx context.Context, page int, collection string) (*driving.IngestResult, error) {
	if s.store == nil || s.catalog == nil {
		return nil, fmt.Errorf("ingest: %w", domain.ErrNotConfigured)
	}
	if collection == "" {
		return nil, fmt.Errorf("collection name: %w", domain.ErrInvalidInput)
	}

	items, err := s.catalog.TramitesPage(ctx, "", page)
	if err != nil {
		return nil, fmt.Errorf("fetch tramites page %d: %w", page, err)
	}
	logger.Info("Received %d tramites from page %d", len(items), page)

	docs := make([]domain.Document, len(items))
	for i, item := range items {
		docs[i] = domain.Document(item)
	}

	return s.insertAll(ctx, collection, docs)
}

func (s *IngestService) insertAll(
	ctx context.Context, collection string, docs []domain.Document,
) (*driving.IngestResult, error) {
	created, err := s.ensureCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	res := &driving.IngestResult{
		Collection: collection,
		Created:    created,
		Read:       len(docs),
	}

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, err := s.store.InsertOne(ctx, collection, doc); err != nil {
			logger.Error("insert document %d into %s: %v", i, collection, err)
			res.Failed++
			continue
		}
		res.Inserted++
	}

	logger.Info("Inserted %d/%d documents into %s", res.Inserted, res.Read, collection)
	return res, nil
}

// ensureCollection creates collection when it is not listed yet.
func (s *IngestService) ensureCollection(ctx context.Context, collection string) (bool, error) {
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return false, fmt.Errorf("list collections: %w", err)
	}
	if slices.Contains(names, collection) {
		return false, nil
	}
	if err := s.store.CreateCollection(ctx, collection); err != nil {
		return false, fmt.Errorf("create collection %s: %w", collection, err)
	}
	logger.Info("Created collection %s", collection)
	return true, nil
}
