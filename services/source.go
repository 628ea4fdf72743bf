package services

import (
	"context"
	"net/http"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// SourceURLs are the absolute endpoints of the external systems of record.
type SourceURLs struct {
	Clients   string
	Projects  string
	Users     string
	Countries string
}

// Source reads full collections from the external systems of record. The
// collection endpoints are called anonymously.
type Source struct {
	gateway *Gateway
	urls    SourceURLs
	logger  zerolog.Logger
}

func NewSource(gateway *Gateway, urls SourceURLs) *Source {
	return &Source{
		gateway: gateway,
		urls:    urls,
		logger:  log.With().Str("component", "source").Logger(),
	}
}

// FetchClients requires the envelope's success flag to be true.
func (s *Source) FetchClients(ctx context.Context) ([]gjson.Result, error) {
	const fallback = "Failed to fetch clients from external API"

	resp, err := s.gateway.Request(ctx, http.MethodGet, s.urls.Clients, RequestOptions{})
	if err != nil {
		return nil, errs.NewExternalRejectedError(fallback, err)
	}

	body := resp.JSON()
	if !body.Get("success").Bool() {
		return nil, errs.NewExternalRejectedError(resp.Message(fallback), nil)
	}

	data := body.Get("data")
	if !data.IsArray() {
		return nil, errs.NewExternalRejectedError(fallback, nil)
	}
	return data.Array(), nil
}

// FetchProjects treats a missing data field as an empty collection.
func (s *Source) FetchProjects(ctx context.Context) ([]gjson.Result, error) {
	const fallback = "Failed to fetch projects from external API"

	resp, err := s.gateway.Request(ctx, http.MethodGet, s.urls.Projects, RequestOptions{})
	if err != nil {
		return nil, errs.NewExternalRejectedError(fallback, err)
	}

	body := resp.JSON()
	if success := body.Get("success"); success.Exists() && !success.Bool() {
		return nil, errs.NewExternalRejectedError(resp.Message(fallback), nil)
	}

	data := body.Get("data")
	if !data.IsArray() {
		if normalize.Truthy(data) {
			s.logger.Warn().Str("type", data.Type.String()).Msg("projects payload is not an array, syncing nothing")
		}
		return []gjson.Result{}, nil
	}
	return data.Array(), nil
}

// FetchUsers accepts either an envelope with a data array or a bare array.
func (s *Source) FetchUsers(ctx context.Context) ([]gjson.Result, error) {
	const fallback = "Failed to fetch users from auth service"

	resp, err := s.gateway.Request(ctx, http.MethodGet, s.urls.Users, RequestOptions{})
	if err != nil {
		return nil, errs.NewExternalRejectedError(fallback, err)
	}

	body := resp.JSON()
	if success := body.Get("success"); success.Exists() && !success.Bool() {
		return nil, errs.NewExternalRejectedError(resp.Message(fallback), nil)
	}

	records := body
	if data := body.Get("data"); normalize.Truthy(data) {
		records = data
	}
	if !records.IsArray() {
		return nil, errs.NewExternalRejectedError(fallback, nil)
	}
	return records.Array(), nil
}

// FetchCountries loads the country lookup used by the clients filter. It is
// the one external call made with the operator's token.
func (s *Source) FetchCountries(ctx context.Context, token string) ([]models.Country, error) {
	const fallback = "Failed to fetch countries"

	resp, err := s.gateway.Request(ctx, http.MethodGet, s.urls.Countries, RequestOptions{AuthToken: token})
	if err != nil {
		return nil, errs.NewExternalRejectedError(fallback, err)
	}

	body := resp.JSON()
	if body.Get("status").String() != "success" {
		return nil, errs.NewExternalRejectedError(resp.Message(fallback), nil)
	}

	var countries []models.Country
	for _, entry := range body.Get("data.data").Array() {
		countries = append(countries, models.Country{
			ID:   int(entry.Get("id").Int()),
			Name: entry.Get("name").String(),
		})
	}
	return countries, nil
}
