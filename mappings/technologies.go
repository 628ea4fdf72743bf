package mappings

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Technologies edits the technology set of websites. Each save replaces
// the whole set; concurrent editors overwrite each other.
type Technologies struct {
	gateway *services.Gateway
	session session.Session
	opts    options
	logger  zerolog.Logger
}

func NewTechnologies(gateway *services.Gateway, sess session.Session, opts ...Option) *Technologies {
	return &Technologies{
		gateway: gateway,
		session: sess,
		opts:    buildOptions(opts),
		logger:  log.With().Str("component", "technology-mappings").Logger(),
	}
}

// Replace sets the technologies of a website to exactly ids.
func (t *Technologies) Replace(ctx context.Context, websiteID int, ids []int) (string, error) {
	const fallback = "Failed to update technologies"

	if websiteID <= 0 {
		return "", errs.NewMissingRequiredFieldError("id", "ID is required")
	}
	userID, err := t.session.RequireUserID()
	if err != nil {
		t.opts.notifier.Error(errs.MessageOr(err, fallback))
		return "", err
	}

	body := models.TechnologyMappingRequest{
		TechnologyIDs: append([]int{}, ids...),
		CreatedBy:     userID,
		UpdatedBy:     userID,
	}
	resp, err := t.gateway.Request(ctx, http.MethodPut, fmt.Sprintf("/api/websites/%d/technology-mappings", websiteID), services.RequestOptions{
		JSON:      body,
		AuthToken: t.session.AccessToken,
	})
	if err != nil {
		message := errs.MessageOr(err, fallback)
		t.logger.Error().Err(err).Int("website_id", websiteID).Msg("technology mapping failed")
		t.opts.notifier.Error(message)
		if errs.IsUpstreamStatusError(err) {
			return "", errs.NewExternalRejectedError(message, err)
		}
		return "", err
	}

	message := resp.Message("Technologies updated successfully!")
	t.opts.notifier.Success(message)
	t.opts.signal.Fire(ctx)
	return message, nil
}

// CurrentIDs reads technologies[].technology.id from a normalized website.
func CurrentIDs(website normalize.Record) []int {
	ids := []int{}
	entries, _ := website["technologies"].([]interface{})
	for _, entry := range entries {
		mapping, _ := entry.(map[string]interface{})
		tech, _ := mapping["technology"].(map[string]interface{})
		if id, ok := normalize.Record(tech).ID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
