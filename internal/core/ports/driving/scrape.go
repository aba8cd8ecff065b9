package driving

import (
	"context"

	"github.com/custodia-labs/tramites/internal/core/domain"
)

// Scraper collects institutions and tramites and exports them as CSV.
type Scraper interface {
	// ListInstitutions pages through institutions and keeps those in the
	// province allow-list.
	ListInstitutions(ctx context.Context) ([]domain.Institution, error)

	// ListTramitesForInstitution pages through an institution's tramites
	// and keeps details updated in the target year.
	ListTramitesForInstitution(ctx context.Context, institutionID string) ([]domain.Tramite, error)

	// Run lists institutions, exports them, then lists and exports the
	// tramites of every institution.
	Run(ctx context.Context) (*RunSummary, error)
}

// RunSummary describes a completed scrape.
type RunSummary struct {
	Institutions        int
	Tramites            int
	InstitutionsCSV     string
	TramitesCSV         string
	InstitutionsWritten bool
	TramitesWritten     bool
}
