package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin/database"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/notify"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/syncer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const syncTimeout = 2 * time.Minute

type syncHandler struct {
	responder Responder
	logger    zerolog.Logger
	source    *services.Source
	gateway   *services.Gateway
	database  *database.Database
}

func newSyncHandler(source *services.Source, gateway *services.Gateway, db *database.Database) syncHandler {
	logger := log.With().Str("handlerName", "syncHandler").Logger()

	return syncHandler{
		responder: NewResponder(logger),
		logger:    logger,
		source:    source,
		gateway:   gateway,
		database:  db,
	}
}

// SyncResponse is the report of one sync plus the notifications it raised.
type SyncResponse struct {
	syncer.Report
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

func (h syncHandler) postSync() http.HandlerFunc {
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
		if h.responder.CheckContextTimeout(w, r, syncTimeout) {
			return
		}

		rec, notifier := requestNotifier()
		opts := []syncer.Option{syncer.WithNotifier(notifier)}
		if h.database != nil {
			opts = append(opts, syncer.WithJournal(h.database.SyncRunRepo()))
		}
		reconciler := syncer.NewReconciler(h.source, h.gateway, opts...)

		ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
		defer cancel()

		report, err := reconciler.Sync(ctx, kind, sess.AccessToken)
		if err != nil && errs.IsBadRequest(err) {
			h.responder.WriteError(w, err)
			return
		}

		status := http.StatusOK
		if err != nil {
			status = statusOf(err)
		}
		h.responder.WriteJSONStatus(w, status, SyncResponse{Report: report, Notifications: rec.Drain()})
	}
}

func (h syncHandler) journal() (*database.SyncRunRepo, error) {
	if h.database == nil {
		return nil, errs.NewApiErr(http.StatusServiceUnavailable, "sync journal is disabled")
	}
	return h.database.SyncRunRepo(), nil
}

func (h syncHandler) getSyncRuns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, err := h.journal()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		kind := r.URL.Query().Get("kind")
		if kind != "" {
			parsed, err := models.ParseKind(kind)
			if err != nil || !parsed.Info().Syncable {
				h.responder.WriteError(w, errs.NewInvalidFieldError("kind", "kind must be clients, projects or users"))
				return
			}
			kind = parsed.String()
		}
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		runs, err := repo.FindRecent(r.Context(), kind, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if runs == nil {
			runs = []*models.SyncRun{}
		}
		h.responder.WriteJSON(w, map[string]any{"data": runs})
	}
}

func (h syncHandler) getSyncRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, err := h.journal()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		id, err := uuid.Parse(chi.URLParam(r, "runID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("runID", "run ID must be a UUID"))
			return
		}

		run, err := repo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, run)
	}
}
