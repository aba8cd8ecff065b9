package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
	"github.com/custodia-labs/tramites/internal/core/ports/driving"
	"github.com/custodia-labs/tramites/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.Reporter = (*ReportService)(nil)

const (
	defaultTopWords = 20
	topInitials     = 15
	topCategories   = 15
	topLongest      = 10
	maxMatches      = 200
)

// ReportService summarises stored collections.
type ReportService struct {
	store driven.DocumentStore
	cache *collectionCache
}

// NewReportService creates a report service that reuses loaded
// collections for ttl.
func NewReportService(store driven.DocumentStore, ttl time.Duration) *ReportService {
	return &ReportService{
		store: store,
		cache: newCollectionCache(store, ttl),
	}
}

// Collections lists collection names, sorted.
func (s *ReportService) Collections(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("document store: %w", domain.ErrNotConfigured)
	}
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Report loads collection and computes its summary.
func (s *ReportService) Report(
	ctx context.Context, collection string, opts driving.ReportOptions,
) (*driving.Report, error) {
	if s.store == nil {
		return nil, fmt.Errorf("document store: %w", domain.ErrNotConfigured)
	}
	if opts.TextField == "" {
		opts.TextField = domain.ColName
	}
	if opts.TopWords <= 0 {
		opts.TopWords = defaultTopWords
	}

	docs, err := s.cache.Load(ctx, collection, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", collection, domain.ErrEmptyCollection)
	}
	logger.Debug("Report: %d documents in %s", len(docs), collection)

	cols := columnsOf(docs)
	pop, nulls := population(docs, cols)
	names := stringValues(docs, domain.ColName)

	r := &driving.Report{
		Collection: collection,
		Documents:  len(docs),
		Columns:    cols,
		Nulls:      nulls,
		Population: pop,
		Initials:   initials(names, topInitials),
		TextField:  opts.TextField,
		TopWords:   TopWords(stringValues(docs, opts.TextField), opts.TopWords),
		Categories: categories(docs, topCategories),
		Longest:    longestNames(names, topLongest),
		Query:      opts.Query,
	}
	if opts.Query != "" {
		r.Matches = searchByName(docs, cols, opts.Query, maxMatches)
	}
	return r, nil
}
