package driven

import (
	"context"

	"github.com/custodia-labs/tramites/internal/core/domain"
)

// Catalog reads the public institutions/tramites API.
// Page methods return the page's items; an empty slice is the
// end-of-data sentinel. Page errors are fatal for the caller.
type Catalog interface {
	// InstitutionsPage fetches instituciones?page={page}.
	InstitutionsPage(ctx context.Context, page int) ([]domain.Item, error)

	// TramitesPage fetches tramites?institution={institutionID}&page={page}.
	// An empty institutionID lists tramites across all institutions.
	TramitesPage(ctx context.Context, institutionID string, page int) ([]domain.Item, error)

	// TramiteDetail fetches tramites/{id}. It never returns an error:
	// failures are reported through the result status.
	TramiteDetail(ctx context.Context, id string) domain.DetailResult
}
