package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-admin/forms"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type formHandler struct {
	responder Responder
	logger    zerolog.Logger
	gateway   *services.Gateway
}

func newFormHandler(gateway *services.Gateway) formHandler {
	logger := log.With().Str("handlerName", "formHandler").Logger()

	return formHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gateway:   gateway,
	}
}

// create answers POST /admin/{kind}
func (h formHandler) create() http.HandlerFunc {
	return h.submit(false)
}

// update answers PUT /admin/{kind}/{id}
func (h formHandler) update() http.HandlerFunc {
	return h.submit(true)
}

func (h formHandler) submit(edit bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

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
		id := 0
		if edit {
			if id, err = idParam(r, "id"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		payload, err := decodePayload(r, kind, id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rec, notifier := requestNotifier()
		controller := forms.NewController(h.gateway, sess, forms.WithNotifier(notifier))
		result, err := controller.Submit(r.Context(), payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status := http.StatusOK
		if result.Mode == forms.ModeCreate {
			status = http.StatusCreated
		}
		h.responder.WriteJSONStatus(w, status, MutationResponse{
			Message:       result.Message,
			Notifications: rec.Drain(),
			Data:          result,
		})
	}
}

func (h formHandler) delete() http.HandlerFunc {
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
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rec, notifier := requestNotifier()
		controller := forms.NewController(h.gateway, sess, forms.WithNotifier(notifier))
		result, err := controller.Delete(r.Context(), kind, id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MutationResponse{
			Message:       result.Message,
			Notifications: rec.Drain(),
			Data:          result,
		})
	}
}
