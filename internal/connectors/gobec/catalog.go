package gobec

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.Catalog = (*Catalog)(nil)

// Catalog exposes the gob.ec endpoints as domain items.
type Catalog struct {
	client *Client
}

// NewCatalog wraps a client.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// InstitutionsPage fetches one page of institutions.
func (c *Catalog) InstitutionsPage(ctx context.Context, page int) ([]domain.Item, error) {
	body, err := c.client.GetJSON(ctx, "/instituciones", url.Values{
		"page": {strconv.Itoa(page)},
	})
	if err != nil {
		return nil, fmt.Errorf("institutions page %d: %w", page, err)
	}
	return ExtractItems(body), nil
}

// TramitesPage fetches one page of tramite summaries.
func (c *Catalog) TramitesPage(ctx context.Context, institutionID string, page int) ([]domain.Item, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	if institutionID != "" {
		q.Set("institution", institutionID)
	}

	body, err := c.client.GetJSON(ctx, "/tramites", q)
	if err != nil {
		return nil, fmt.Errorf("tramites page %d: %w", page, err)
	}
	return ExtractItems(body), nil
}

// TramiteDetail fetches and projects a single tramite. A detail without an
// "institucion" key is kept; one whose "institucion" is null or not an
// object is unusable.
func (c *Catalog) TramiteDetail(ctx context.Context, id string) domain.DetailResult {
	body, err := c.client.GetJSON(ctx, "/tramites/"+url.PathEscape(id), nil)
	if err != nil {
		status := domain.DetailTransportError
		if IsNotFound(err) {
			status = domain.DetailNotFound
		}
		return domain.DetailResult{Status: status, Err: err}
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return domain.DetailResult{
			Status: domain.DetailTransportError,
			Err:    fmt.Errorf("tramite %s: %w", id, ErrUnexpectedBody),
		}
	}

	det := domain.Item(obj)
	if det.Has("institucion") && det.Object("institucion") == nil {
		return domain.DetailResult{
			Status: domain.DetailTransportError,
			Err:    fmt.Errorf("tramite %s: institucion is not an object: %w", id, ErrUnexpectedBody),
		}
	}

	return domain.DetailResult{
		Status:  domain.DetailFound,
		Tramite: domain.TramiteFromDetail(id, det),
	}
}
