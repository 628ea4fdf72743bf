package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/notify"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Journal records sync runs. Journal failures are logged and never fail a
// sync.
type Journal interface {
	Begin(ctx context.Context, kind models.Kind) (*models.SyncRun, error)
	Complete(ctx context.Context, run *models.SyncRun) error
}

// Report summarises one sync. SlotError is the text for the collection's
// error slot when the sync failed.
type Report struct {
	RunID     *uuid.UUID  `json:"run_id,omitempty"`
	Kind      models.Kind `json:"kind"`
	Fetched   int         `json:"fetched"`
	Submitted int         `json:"submitted"`
	Dropped   []Dropped   `json:"dropped,omitempty"`
	Message   string      `json:"message"`
	SlotError string      `json:"slot_error,omitempty"`
}

type Reconciler struct {
	source   *services.Source
	gateway  *services.Gateway
	journal  Journal
	notifier notify.Notifier
	signals  map[models.Kind]*notify.Signal
	logger   zerolog.Logger
}

type Option func(*Reconciler)

func WithJournal(j Journal) Option {
	return func(r *Reconciler) {
		r.journal = j
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(r *Reconciler) {
		r.notifier = n
	}
}

// WithSignal fires signal after every successful sync of kind.
func WithSignal(kind models.Kind, signal *notify.Signal) Option {
	return func(r *Reconciler) {
		r.signals[kind] = signal
	}
}

func NewReconciler(source *services.Source, gateway *services.Gateway, opts ...Option) *Reconciler {
	r := &Reconciler{
		source:   source,
		gateway:  gateway,
		notifier: notify.NewLogNotifier(),
		signals:  make(map[models.Kind]*notify.Signal),
		logger:   log.With().Str("component", "syncer").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// batch is a transformed collection ready for the syncing endpoint.
type batch struct {
	records   any
	count     int
	dropped   []Dropped
	anonymous bool
}

// Sync pulls kind from the external source, transforms it and submits one
// bulk upsert. Only clients, projects and users can be synced.
func (r *Reconciler) Sync(ctx context.Context, kind models.Kind, token string) (Report, error) {
	report := Report{Kind: kind}
	if !kind.Info().Syncable {
		return report, errs.NewBadRequestError(fmt.Sprintf("%s cannot be synced", kind))
	}

	run := r.begin(ctx, kind)
	if run != nil {
		report.RunID = &run.ID
	}

	err := r.sync(ctx, kind, token, &report)
	if err != nil {
		report.Message = errs.MessageOr(err, fmt.Sprintf("Failed to sync %s.", kind))
		report.SlotError = slotMessage(kind, report.Message)
		r.logger.Error().Err(err).Str("kind", kind.String()).Msg("sync failed")
		r.notifier.Error(report.Message)
		r.complete(ctx, run, report, models.SyncStatusFailed)
		return report, err
	}

	r.logger.Info().
		Str("kind", kind.String()).
		Int("fetched", report.Fetched).
		Int("submitted", report.Submitted).
		Int("dropped", len(report.Dropped)).
		Msg("sync finished")
	r.notifier.Success(report.Message)
	r.complete(ctx, run, report, models.SyncStatusSucceeded)
	r.signals[kind].Fire(ctx)
	return report, nil
}

func (r *Reconciler) sync(ctx context.Context, kind models.Kind, token string, report *Report) error {
	raw, err := r.fetch(ctx, kind)
	if err != nil {
		return err
	}
	report.Fetched = len(raw)

	b := transform(kind, raw)
	report.Dropped = b.dropped
	for _, d := range b.dropped {
		r.logger.Warn().Str("kind", kind.String()).Str("id", d.ID).Str("reason", d.Reason).Msg("invalid entry skipped")
	}

	if kind == models.KindProjects && b.count == 0 {
		return errs.NewExternalRejectedError("No valid projects to sync", nil)
	}

	opts := services.RequestOptions{JSON: map[string]any{kind.String(): b.records}}
	if !b.anonymous {
		opts.AuthToken = token
	}
	resp, err := r.gateway.Request(ctx, http.MethodPost, kind.Info().BasePath+"/syncing", opts)
	if err != nil {
		if errs.IsUpstreamStatusError(err) {
			return errs.NewExternalRejectedError(errs.MessageOr(err, fmt.Sprintf("Failed to sync %s", kind)), err)
		}
		return err
	}

	report.Submitted = b.count
	report.Message = resp.Message(fmt.Sprintf("%s synced successfully!", kind.PluralTitle()))
	return nil
}

func (r *Reconciler) fetch(ctx context.Context, kind models.Kind) ([]gjson.Result, error) {
	switch kind {
	case models.KindClients:
		return r.source.FetchClients(ctx)
	case models.KindProjects:
		return r.source.FetchProjects(ctx)
	case models.KindUsers:
		return r.source.FetchUsers(ctx)
	}
	return nil, errs.NewBadRequestError(fmt.Sprintf("%s cannot be synced", kind))
}

func transform(kind models.Kind, raw []gjson.Result) batch {
	switch kind {
	case models.KindClients:
		records, dropped := TransformClients(raw)
		return batch{records: records, count: len(records), dropped: dropped}
	case models.KindProjects:
		records, dropped := TransformProjects(raw)
		return batch{records: records, count: len(records), dropped: dropped}
	default:
		records, dropped := TransformUsers(raw)
		return batch{records: records, count: len(records), dropped: dropped, anonymous: true}
	}
}

// slotMessage is what the collection screen shows after a failed sync.
// Projects surface the failure itself; the others a fixed retry prompt.
func slotMessage(kind models.Kind, message string) string {
	if kind == models.KindProjects {
		return message
	}
	return fmt.Sprintf("Failed to sync %s. Please try again.", kind)
}

func (r *Reconciler) begin(ctx context.Context, kind models.Kind) *models.SyncRun {
	if r.journal == nil {
		return nil
	}
	run, err := r.journal.Begin(ctx, kind)
	if err != nil {
		r.logger.Warn().Err(err).Str("kind", kind.String()).Msg("failed to record sync start")
		return nil
	}
	return run
}

func (r *Reconciler) complete(ctx context.Context, run *models.SyncRun, report Report, status models.SyncStatus) {
	if r.journal == nil || run == nil {
		return
	}

	run.Status = status
	run.Fetched = report.Fetched
	run.Submitted = report.Submitted
	run.Dropped = len(report.Dropped)
	message := report.Message
	run.Message = &message
	if len(report.Dropped) > 0 {
		if ids, err := json.Marshal(report.Dropped); err == nil {
			run.DroppedIDs = ids
		}
	}

	if err := r.journal.Complete(ctx, run); err != nil {
		r.logger.Warn().Err(err).Str("run_id", run.ID.String()).Msg("failed to record sync result")
	}
}
