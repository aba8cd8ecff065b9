package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
	"github.com/custodia-labs/tramites/internal/core/ports/driving"
	"github.com/custodia-labs/tramites/internal/logger"
)

// Ensure ScrapeService implements the interface.
var _ driving.Scraper = (*ScrapeService)(nil)

// ScrapeOptions holds the scrape policy and output paths.
type ScrapeOptions struct {
	// Provinces is the allow-list; matching is case-insensitive.
	Provinces []string

	// TargetYear is the update year a tramite must have to be kept.
	TargetYear int

	// MaxPages bounds the institution listing.
	MaxPages int

	// TramiteMaxPages bounds each institution's tramite listing.
	TramiteMaxPages int

	// InstitutionDelay and TramiteDelay space successive page fetches.
	InstitutionDelay time.Duration
	TramiteDelay     time.Duration

	InstitutionsCSV string

	// TramitesCSV defaults to tramites_filtrados_<TargetYear>.csv.
	TramitesCSV string
}

// DefaultScrapeOptions returns the Azuay 2024 scrape defaults.
func DefaultScrapeOptions() ScrapeOptions {
	return ScrapeOptions{
		Provinces:        append([]string(nil), domain.DefaultProvinces...),
		TargetYear:       domain.DefaultTargetYear,
		MaxPages:         150,
		TramiteMaxPages:  40,
		InstitutionDelay: 100 * time.Millisecond,
		TramiteDelay:     50 * time.Millisecond,
		InstitutionsCSV:  "instituciones_filtradas.csv",
	}
}

// TramitesPath returns the tramites CSV path, deriving it from the target
// year when unset.
func (o ScrapeOptions) TramitesPath() string {
	if o.TramitesCSV != "" {
		return o.TramitesCSV
	}
	return fmt.Sprintf("tramites_filtrados_%d.csv", o.TargetYear)
}

// ScrapeService lists institutions and tramites from the catalog and
// exports them. Every call is sequential.
type ScrapeService struct {
	catalog   driven.Catalog
	exporter  driven.RecordExporter
	opts      ScrapeOptions
	provinces domain.ProvinceFilter
	year      domain.YearFilter
}

// NewScrapeService creates a scrape service.
func NewScrapeService(catalog driven.Catalog, exporter driven.RecordExporter, opts ScrapeOptions) *ScrapeService {
	return &ScrapeService{
		catalog:   catalog,
		exporter:  exporter,
		opts:      opts,
		provinces: domain.NewProvinceFilter(opts.Provinces...),
		year:      domain.YearFilter{Year: opts.TargetYear},
	}
}

// ListInstitutions pages through institutions until the first empty page
// or MaxPages, keeping items whose province is allowed. A page error
// aborts the listing.
func (s *ScrapeService) ListInstitutions(ctx context.Context) ([]domain.Institution, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("catalog: %w", domain.ErrNotConfigured)
	}

	pacer := newPacer(s.opts.InstitutionDelay)
	var institutions []domain.Institution

	for page := 0; page < s.opts.MaxPages; page++ {
		if err := waitPage(ctx, pacer); err != nil {
			return nil, err
		}

		items, err := s.catalog.InstitutionsPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			logger.Debug("Institutions: page %d empty, stopping", page)
			break
		}

		kept := 0
		for _, item := range items {
			if !s.provinces.Allows(item.String("provincia")) {
				continue
			}
			institutions = append(institutions, domain.InstitutionFromItem(item))
			kept++
		}
		logger.Debug("Institutions: page %d, %d items, %d kept", page, len(items), kept)
	}

	return institutions, nil
}

// ListTramitesForInstitution pages through an institution's tramites,
// fetches each detail and keeps those updated in the target year.
// Detail failures and unparsable timestamps skip the item; a page error
// aborts the listing.
func (s *ScrapeService) ListTramitesForInstitution(
	ctx context.Context, institutionID string,
) ([]domain.Tramite, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("catalog: %w", domain.ErrNotConfigured)
	}
	if institutionID == "" {
		return nil, fmt.Errorf("institution id: %w", domain.ErrInvalidInput)
	}

	pacer := newPacer(s.opts.TramiteDelay)
	var tramites []domain.Tramite

	for page := 0; page < s.opts.TramiteMaxPages; page++ {
		if err := waitPage(ctx, pacer); err != nil {
			return nil, err
		}

		items, err := s.catalog.TramitesPage(ctx, institutionID, page)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			id := item.First("id", "tramite_id")
			if id == "" {
				logger.Debug("Tramites: item without id on page %d", page)
				continue
			}

			res := s.catalog.TramiteDetail(ctx, id)
			if !res.OK() {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				logger.Debug("Tramites: skip %s (%s): %v", id, res.Status, res.Err)
				continue
			}

			if !s.year.Matches(res.Tramite.UpdatedAt) {
				continue
			}
			tramites = append(tramites, res.Tramite)
		}
	}

	return tramites, nil
}

// Run lists and exports institutions, then lists the tramites of every
// institution in order and exports the aggregate once. Nothing is written
// for tramites if any institution's listing fails.
func (s *ScrapeService) Run(ctx context.Context) (*driving.RunSummary, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("exporter: %w", domain.ErrNotConfigured)
	}

	summary := &driving.RunSummary{
		InstitutionsCSV: s.opts.InstitutionsCSV,
		TramitesCSV:     s.opts.TramitesPath(),
	}

	logger.Section("Institutions")
	logger.Info("Listing institutions in %s", strings.Join(s.provinces.Names(), ", "))

	institutions, err := s.ListInstitutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	summary.Institutions = len(institutions)

	written, err := s.exporter.Export(summary.InstitutionsCSV, domain.InstitutionRecords(institutions))
	if err != nil {
		return nil, fmt.Errorf("export institutions: %w", err)
	}
	summary.InstitutionsWritten = written

	logger.Section("Tramites")
	logger.Info("Listing tramites of %d institutions for year %d", len(institutions), s.opts.TargetYear)

	var all []domain.Tramite
	for i, inst := range institutions {
		if inst.ID == "" {
			logger.Warn("Skipping institution %q without id", inst.Name)
			continue
		}

		tramites, err := s.ListTramitesForInstitution(ctx, inst.ID)
		if err != nil {
			return summary, fmt.Errorf("list tramites for institution %s: %w", inst.ID, err)
		}
		logger.Info("[%d/%d] %s: %d tramites", i+1, len(institutions), inst.ID, len(tramites))
		all = append(all, tramites...)
	}
	summary.Tramites = len(all)

	written, err = s.exporter.Export(summary.TramitesCSV, domain.TramiteRecords(all))
	if err != nil {
		return summary, fmt.Errorf("export tramites: %w", err)
	}
	summary.TramitesWritten = written

	return summary, nil
}
