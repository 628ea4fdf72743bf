package listing

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rpupo63/portfolio-admin/services"
)

// Lookup limits used by the dashboard dropdowns.
const (
	ClientLookupLimit     = 10000
	TechnologyLookupLimit = 100
)

// Lookup fetches one large first page of a collection for a dropdown.
func Lookup(ctx context.Context, gateway *services.Gateway, token string, kind models.Kind, limit int) ([]normalize.Record, error) {
	info := kind.Info()
	query := url.Values{}
	query.Set("page", "1")
	query.Set("limit", strconv.Itoa(limit))

	resp, err := gateway.Request(ctx, http.MethodGet, info.ListPath, services.RequestOptions{
		Query:     query,
		AuthToken: token,
	})
	if err != nil {
		return nil, err
	}

	return normalize.New().Normalize(records(resp.JSON(), info.EnvelopeKey), normalize.ShapeFor(kind)), nil
}
