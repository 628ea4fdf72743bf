package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/mappings"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/notify"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type mappingHandler struct {
	responder Responder
	logger    zerolog.Logger
	gateway   *services.Gateway
}

func newMappingHandler(gateway *services.Gateway) mappingHandler {
	logger := log.With().Str("handlerName", "mappingHandler").Logger()

	return mappingHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gateway:   gateway,
	}
}

type tagRequest struct {
	TagName string `json:"tag_name"`
}

type technologiesRequest struct {
	TechnologyIDs []int `json:"technology_ids"`
}

// tagEntity maps the parent collection to its tag entity type. Only
// websites and videos carry tags.
func tagEntity(kind models.Kind) (models.TagEntityType, bool) {
	switch kind {
	case models.KindWebsites:
		return models.TagEntityWebsite, true
	case models.KindVideos:
		return models.TagEntityVideo, true
	}
	return "", false
}

// tags resolves the tag manager of /admin/{kind}/{id}/tags for this request.
func (h mappingHandler) tags(r *http.Request) (*mappings.Tags, *notify.Recorder, error) {
	sess, err := ctxGetSession(r.Context())
	if err != nil {
		return nil, nil, err
	}
	kind, err := kindParam(r)
	if err != nil {
		return nil, nil, err
	}
	entityType, ok := tagEntity(kind)
	if !ok {
		return nil, nil, errs.NewNotFoundError(kind.String() + " tags")
	}
	id, err := idParam(r, "id")
	if err != nil {
		return nil, nil, err
	}

	rec, notifier := requestNotifier()
	tags, err := mappings.NewTags(h.gateway, sess, entityType, id, mappings.WithNotifier(notifier))
	if err != nil {
		return nil, nil, err
	}
	return tags, rec, nil
}

func (h mappingHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, _, err := h.tags(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		list, err := tags.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewExternalRejectedError("Failed to load tags.", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"data": list})
	}
}

func (h mappingHandler) addTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, rec, err := h.tags(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req tagRequest
		if err := decodeJSON(r, "tag", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		list, err := tags.Add(r.Context(), req.TagName)
		h.writeTags(w, rec, list, err, http.StatusCreated)
	}
}

func (h mappingHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, rec, err := h.tags(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tagID, err := idParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req tagRequest
		if err := decodeJSON(r, "tag", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		list, err := tags.Update(r.Context(), tagID, req.TagName)
		h.writeTags(w, rec, list, err, http.StatusOK)
	}
}

func (h mappingHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, rec, err := h.tags(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tagID, err := idParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		list, err := tags.Delete(r.Context(), tagID)
		h.writeTags(w, rec, list, err, http.StatusOK)
	}
}

func (h mappingHandler) writeTags(w http.ResponseWriter, rec *notify.Recorder, list []models.Tag, err error, status int) {
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}
	notifications := rec.Drain()
	h.responder.WriteJSONStatus(w, status, MutationResponse{
		Message:       lastSuccess(notifications, ""),
		Notifications: notifications,
		Data:          list,
	})
}

func (h mappingHandler) replaceTechnologies() http.HandlerFunc {
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
		if kind != models.KindWebsites {
			h.responder.WriteError(w, errs.NewNotFoundError(kind.String()+" technologies"))
			return
		}
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req technologiesRequest
		if err := decodeJSON(r, "technology mapping", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rec, notifier := requestNotifier()
		message, err := mappings.NewTechnologies(h.gateway, sess, mappings.WithNotifier(notifier)).
			Replace(r.Context(), id, req.TechnologyIDs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MutationResponse{
			Message:       message,
			Notifications: rec.Drain(),
			Data:          map[string][]int{"technology_ids": append([]int{}, req.TechnologyIDs...)},
		})
	}
}
