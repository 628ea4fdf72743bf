package mappings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	tagMappingsPath   = "/api/tag-mappings"
	emptyTagMessage   = "Tag name cannot be empty."
	loadTagsFailedMsg = "Failed to load tags."
)

// Tags manages the tag mappings of one website or video. Every mutation
// reloads the mapping list and the parent collection.
type Tags struct {
	entityType models.TagEntityType
	entityID   int
	gateway    *services.Gateway
	session    session.Session
	opts       options
	logger     zerolog.Logger

	mu    sync.Mutex
	tags  []models.Tag
	stale bool
}

func NewTags(gateway *services.Gateway, sess session.Session, entityType models.TagEntityType, entityID int, opts ...Option) (*Tags, error) {
	if !entityType.Valid() {
		return nil, errs.NewInvalidFieldError("entity_type", "Invalid entity type")
	}
	if entityID <= 0 {
		return nil, errs.NewMissingRequiredFieldError("id", "ID is required")
	}
	return &Tags{
		entityType: entityType,
		entityID:   entityID,
		gateway:    gateway,
		session:    sess,
		opts:       buildOptions(opts),
		logger: log.With().
			Str("component", "tags").
			Str("entity_type", string(entityType)).
			Int("entity_id", entityID).
			Logger(),
		tags: []models.Tag{},
	}, nil
}

// Current returns the last loaded mappings.
func (t *Tags) Current() []models.Tag {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Tag{}, t.tags...)
}

// Stale reports whether a mutation went through but the reload after it
// failed, so Current predates the change.
func (t *Tags) Stale() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stale
}

// List loads the mappings of the parent record. A failed load keeps the
// previous list.
func (t *Tags) List(ctx context.Context) ([]models.Tag, error) {
	path := fmt.Sprintf("%s/%s/%d", tagMappingsPath, t.entityType.PathSegment(), t.entityID)
	resp, err := t.gateway.Request(ctx, http.MethodGet, path, services.RequestOptions{AuthToken: t.session.AccessToken})
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to load tags")
		t.opts.notifier.Error(loadTagsFailedMsg)
		return t.Current(), err
	}

	tags := []models.Tag{}
	if raw := resp.JSON().Get("data.tags"); raw.IsArray() {
		if err := json.Unmarshal([]byte(raw.Raw), &tags); err != nil {
			t.opts.notifier.Error(loadTagsFailedMsg)
			return t.Current(), errs.NewJSONUnmarshalError("tag list", err)
		}
	}

	t.mu.Lock()
	t.tags = tags
	t.stale = false
	t.mu.Unlock()
	return append([]models.Tag{}, tags...), nil
}

func (t *Tags) Add(ctx context.Context, name string) ([]models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		t.opts.notifier.Error(emptyTagMessage)
		return t.Current(), errs.NewMissingRequiredFieldError("tag_name", emptyTagMessage)
	}

	return t.mutate(ctx, "add", func(userID int) (string, string, any) {
		return http.MethodPost, tagMappingsPath, models.NewTagCreateRequest(t.entityType, t.entityID, name, userID)
	})
}

func (t *Tags) Update(ctx context.Context, tagID int, name string) ([]models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		t.opts.notifier.Error(emptyTagMessage)
		return t.Current(), errs.NewMissingRequiredFieldError("tag_name", emptyTagMessage)
	}

	return t.mutate(ctx, "update", func(userID int) (string, string, any) {
		return http.MethodPut, tagPath(tagID), models.TagUpdateRequest{TagName: name, UpdatedBy: userID}
	})
}

func (t *Tags) Delete(ctx context.Context, tagID int) ([]models.Tag, error) {
	if _, err := t.gateway.Request(ctx, http.MethodDelete, tagPath(tagID), services.RequestOptions{AuthToken: t.session.AccessToken}); err != nil {
		return t.Current(), t.fail("delete", err)
	}
	return t.succeed(ctx, "deleted")
}

// mutate runs an authored tag change.
func (t *Tags) mutate(ctx context.Context, verb string, build func(userID int) (string, string, any)) ([]models.Tag, error) {
	userID, err := t.session.RequireUserID()
	if err != nil {
		t.opts.notifier.Error(errs.MessageOr(err, "Failed to "+verb+" tag"))
		return t.Current(), err
	}

	method, path, body := build(userID)
	if _, err := t.gateway.Request(ctx, method, path, services.RequestOptions{
		JSON:      body,
		AuthToken: t.session.AccessToken,
	}); err != nil {
		return t.Current(), t.fail(verb, err)
	}

	past := "added"
	if verb == "update" {
		past = "updated"
	}
	return t.succeed(ctx, past)
}

func (t *Tags) fail(verb string, err error) error {
	message := errs.MessageOr(err, "Failed to "+verb+" tag")
	t.logger.Error().Err(err).Str("op", verb).Msg("tag mutation failed")
	t.opts.notifier.Error(message)
	if errs.IsUpstreamStatusError(err) {
		return errs.NewExternalRejectedError(message, err)
	}
	return err
}

// succeed reports the change, reloads the tags and then the parent list.
func (t *Tags) succeed(ctx context.Context, past string) ([]models.Tag, error) {
	t.opts.notifier.Success("Tag " + past + " successfully!")
	tags, err := t.List(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Str("op", past).Msg("tag change saved but reloading the list failed")
		t.mu.Lock()
		t.stale = true
		t.mu.Unlock()
	}
	t.opts.signal.Fire(ctx)
	return tags, nil
}

func tagPath(tagID int) string {
	return tagMappingsPath + "/" + strconv.Itoa(tagID)
}
