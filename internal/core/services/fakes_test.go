package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
)

var errPage = errors.New("connection reset")

// fakeCatalog serves canned pages and details and records every call.
type fakeCatalog struct {
	mu sync.Mutex

	institutions map[int][]domain.Item
	tramites     map[string]map[int][]domain.Item
	details      map[string]domain.DetailResult

	institutionErrs map[int]error
	tramiteErrs     map[string]error

	institutionCalls []int
	tramiteCalls     []string
	detailCalls      []string
}

var _ driven.Catalog = (*fakeCatalog)(nil)

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		institutions:    make(map[int][]domain.Item),
		tramites:        make(map[string]map[int][]domain.Item),
		details:         make(map[string]domain.DetailResult),
		institutionErrs: make(map[int]error),
		tramiteErrs:     make(map[string]error),
	}
}

func (f *fakeCatalog) InstitutionsPage(_ context.Context, page int) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.institutionCalls = append(f.institutionCalls, page)
	if err := f.institutionErrs[page]; err != nil {
		return nil, err
	}
	return f.institutions[page], nil
}

func (f *fakeCatalog) TramitesPage(_ context.Context, institutionID string, page int) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tramiteCalls = append(f.tramiteCalls, institutionID)
	if err := f.tramiteErrs[institutionID]; err != nil {
		return nil, err
	}
	return f.tramites[institutionID][page], nil
}

func (f *fakeCatalog) TramiteDetail(_ context.Context, id string) domain.DetailResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, id)
	res, ok := f.details[id]
	if !ok {
		return domain.DetailResult{Status: domain.DetailNotFound}
	}
	return res
}

func (f *fakeCatalog) addTramitePage(institutionID string, page int, items ...domain.Item) {
	if f.tramites[institutionID] == nil {
		f.tramites[institutionID] = make(map[int][]domain.Item)
	}
	f.tramites[institutionID][page] = items
}

func (f *fakeCatalog) addDetail(id, institutionID, updatedAt string) {
	det := domain.Item{
		"nombre":      "Tramite " + id,
		"updated_at":  updatedAt,
		"institucion": map[string]any{"id": institutionID},
	}
	f.details[id] = domain.DetailResult{
		Status:  domain.DetailFound,
		Tramite: domain.TramiteFromDetail(id, det),
	}
}

// fakeExporter records what it was asked to write.
type fakeExporter struct {
	exports map[string][]domain.Record
	calls   []string
	err     error
}

var _ driven.RecordExporter = (*fakeExporter)(nil)

func newFakeExporter() *fakeExporter {
	return &fakeExporter{exports: make(map[string][]domain.Record)}
}

func (e *fakeExporter) Export(path string, records []domain.Record) (bool, error) {
	e.calls = append(e.calls, path)
	if e.err != nil {
		return false, e.err
	}
	if len(records) == 0 {
		return false, nil
	}
	e.exports[path] = records
	return true, nil
}

// fakeReader returns canned records.
type fakeReader struct {
	records []domain.Record
	err     error
}

var _ driven.RecordReader = (*fakeReader)(nil)

func (r *fakeReader) Read(string) ([]domain.Record, error) {
	return r.records, r.err
}

// fastOptions disables pacing so tests run instantly.
func fastOptions() ScrapeOptions {
	opts := DefaultScrapeOptions()
	opts.InstitutionDelay = 0
	opts.TramiteDelay = 0
	return opts
}

func institutionItem(id, province string) domain.Item {
	return domain.Item{"institucion_id": id, "nombre": "Institucion " + id, "provincia": province}
}
