package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/notify"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	listHandler    listHandler
	syncHandler    syncHandler
	formHandler    formHandler
	mappingHandler mappingHandler
	healthHandler  healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(backend Backend, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		listHandler:    newListHandler(backend.Gateway, backend.Source, backend.Normalizer),
		syncHandler:    newSyncHandler(backend.Source, backend.Gateway, backend.Database),
		formHandler:    newFormHandler(backend.Gateway),
		mappingHandler: newMappingHandler(backend.Gateway),
		healthHandler:  newHealthHandler(backend.Database, startupTime),
	}
}

func kindParam(r *http.Request) (models.Kind, error) {
	raw := chi.URLParam(r, "kind")
	kind, err := models.ParseKind(raw)
	if err != nil {
		return "", errs.NewNotFoundError(fmt.Sprintf("collection %q", raw))
	}
	return kind, nil
}

func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, errs.NewInvalidFieldError(name, "ID must be a positive number")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewInvalidFieldError(name, name+" must be a number")
	}
	return n, nil
}

// requestNotifier records the notifications of one request next to the
// process log.
func requestNotifier() (*notify.Recorder, notify.Notifier) {
	rec := &notify.Recorder{}
	return rec, notify.Tee{notify.NewLogNotifier(), rec}
}

// lastSuccess is the newest success message, or fallback.
func lastSuccess(items []notify.Notification, fallback string) string {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Level == notify.LevelSuccess {
			return items[i].Message
		}
	}
	return fallback
}
