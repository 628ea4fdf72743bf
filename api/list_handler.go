package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/listing"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type listHandler struct {
	responder  Responder
	logger     zerolog.Logger
	gateway    *services.Gateway
	source     *services.Source
	normalizer *normalize.Normalizer
}

func newListHandler(gateway *services.Gateway, source *services.Source, normalizer *normalize.Normalizer) listHandler {
	logger := log.With().Str("handlerName", "listHandler").Logger()

	return listHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		gateway:    gateway,
		source:     source,
		normalizer: normalizer,
	}
}

// getPage returns one page of a collection. A failed backend call still
// answers with the list state (empty records, static error text) so the
// screen can render it.
func (h listHandler) getPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := ctxGetSession(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		kind, err := kindParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		page, err := queryInt(r, "page", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		controller := listing.NewController(kind, h.gateway, sess.AccessToken, h.normalizer)
		err = controller.Load(r.Context(), listing.Query{
			Page:    page,
			Keyword: r.URL.Query().Get(listing.KeywordField),
			Filter:  r.URL.Query().Get("filter"),
		})
		if err != nil && errs.IsBadRequest(err) {
			h.responder.WriteError(w, err)
			return
		}

		status := http.StatusOK
		if err != nil {
			status = statusOf(err)
		}
		h.responder.WriteJSONStatus(w, status, controller.Snapshot())
	}
}

func lookupLimit(kind models.Kind) int {
	switch kind {
	case models.KindClients:
		return listing.ClientLookupLimit
	case models.KindTechnologies:
		return listing.TechnologyLookupLimit
	}
	return kind.Info().PageSize
}

func (h listHandler) getLookup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := ctxGetSession(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		kind, err := kindParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, err := queryInt(r, "limit", lookupLimit(kind))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit <= 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "limit must be positive"))
			return
		}

		records, err := listing.Lookup(r.Context(), h.gateway, sess.AccessToken, kind, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"data": records})
	}
}

func (h listHandler) getCountries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := ctxGetSession(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		countries, err := h.source.FetchCountries(r.Context(), sess.AccessToken)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if countries == nil {
			countries = []models.Country{}
		}
		h.responder.WriteJSON(w, map[string]any{"data": countries})
	}
}
