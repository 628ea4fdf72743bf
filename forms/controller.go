package forms

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/notify"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Result is a mutation the backend accepted.
type Result struct {
	Kind    models.Kind `json:"kind"`
	Mode    Mode        `json:"mode,omitempty"`
	Message string      `json:"message"`
}

// Controller dispatches form payloads and deletions for one session.
type Controller struct {
	gateway  *services.Gateway
	session  session.Session
	notifier notify.Notifier
	signals  map[models.Kind]*notify.Signal
	logger   zerolog.Logger
}

type Option func(*Controller)

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithSignal fires signal after every accepted mutation of kind.
func WithSignal(kind models.Kind, signal *notify.Signal) Option {
	return func(c *Controller) {
		c.signals[kind] = signal
	}
}

func NewController(gateway *services.Gateway, sess session.Session, opts ...Option) *Controller {
	c := &Controller{
		gateway:  gateway,
		session:  sess,
		notifier: notify.NewLogNotifier(),
		signals:  make(map[models.Kind]*notify.Signal),
		logger:   log.With().Str("component", "forms").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates payload and sends it. Validation errors are returned
// without notifying and without any request; every later failure is
// notified with the most specific message available.
func (c *Controller) Submit(ctx context.Context, payload Payload) (Result, error) {
	kind, mode := payload.Kind(), payload.Mode()
	result := Result{Kind: kind, Mode: mode}
	past, present := mode.verb()
	singular := kind.Info().Singular

	if err := payload.Validate(); err != nil {
		return result, err
	}

	userID := 0
	if payload.authored() {
		id, err := c.session.RequireUserID()
		if err != nil {
			c.notifier.Error(errs.MessageOr(err, fmt.Sprintf("Failed to %s %s", present, singular)))
			return result, err
		}
		userID = id
	}

	method, path, opts := payload.request(userID)
	opts.AuthToken = c.session.AccessToken

	resp, err := c.gateway.Request(ctx, method, path, opts)
	if err != nil {
		message := errs.MessageOr(err, fmt.Sprintf("Failed to %s %s", present, singular))
		c.logger.Error().Err(err).Str("kind", kind.String()).Str("mode", string(mode)).Msg("form submission failed")
		c.notifier.Error(message)
		return result, withMessage(err, message)
	}

	result.Message = resp.Message(fmt.Sprintf("%s %s successfully!", kind.Info().Title, past))
	c.notifier.Success(result.Message)
	c.signals[kind].Fire(ctx)
	return result, nil
}

// Delete removes one record of a deletable collection.
func (c *Controller) Delete(ctx context.Context, kind models.Kind, id int) (Result, error) {
	info := kind.Info()
	result := Result{Kind: kind}
	if !info.Deletable {
		return result, errs.NewBadRequestError(fmt.Sprintf("%s cannot be deleted", kind))
	}
	if err := validID(id); err != nil {
		return result, err
	}

	resp, err := c.gateway.Request(ctx, http.MethodDelete, itemPath(info.BasePath, id), services.RequestOptions{
		AuthToken: c.session.AccessToken,
	})
	if err != nil {
		message := errs.MessageOr(err, fmt.Sprintf("Failed to delete %s", info.Singular))
		c.logger.Error().Err(err).Str("kind", kind.String()).Int("id", id).Msg("delete failed")
		c.notifier.Error(message)
		return result, withMessage(err, message)
	}

	result.Message = resp.Message(fmt.Sprintf("%s deleted successfully!", info.Title))
	c.notifier.Success(result.Message)
	c.signals[kind].Fire(ctx)
	return result, nil
}

// withMessage makes the operator-facing message the error's message while
// keeping err reachable for errors.Is.
func withMessage(err error, message string) error {
	if errs.IsUpstreamStatusError(err) {
		return errs.NewExternalRejectedError(message, err)
	}
	return err
}
