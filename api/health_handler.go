package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-admin/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    *database.Database
	startupTime time.Time
}

func newHealthHandler(db *database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    db,
		startupTime: startupTime,
	}
}

// getHealth stays 200 while the journal is down; syncs still run without it.
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:        "ok",
			UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
			Journal:       "disabled",
		}

		if h.database != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			resp.Journal = "ok"
			if err := h.database.Ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("journal database unreachable")
				resp.Journal = "unreachable"
			}
		}
		h.responder.WriteJSON(w, resp)
	}
}
