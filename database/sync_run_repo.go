package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"gorm.io/gorm"
)

const defaultRecentRuns = 20

type SyncRunRepo struct {
	db *gorm.DB
}

func NewSyncRunRepo(db *gorm.DB) *SyncRunRepo {
	return &SyncRunRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *SyncRunRepo) GetDB() *gorm.DB {
	return r.db
}

// Begin inserts a running entry for kind.
func (r *SyncRunRepo) Begin(ctx context.Context, kind models.Kind) (*models.SyncRun, error) {
	run := &models.SyncRun{
		ID:        uuid.New(),
		Kind:      kind.String(),
		Status:    models.SyncStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, errs.NewDatabaseError("create", "sync run", err)
	}
	return run, nil
}

// Complete stores the outcome of a run and stamps its finish time.
func (r *SyncRunRepo) Complete(ctx context.Context, run *models.SyncRun) error {
	finished := time.Now().UTC()
	run.FinishedAt = &finished

	err := r.db.WithContext(ctx).
		Model(run).
		Select("status", "fetched", "submitted", "dropped", "message", "dropped_ids", "finished_at").
		Updates(run).Error
	if err != nil {
		return errs.NewDatabaseError("update", "sync run", err)
	}
	return nil
}

// FindRecent returns the newest runs first, optionally for one kind only.
func (r *SyncRunRepo) FindRecent(ctx context.Context, kind string, limit int) ([]*models.SyncRun, error) {
	if limit <= 0 {
		limit = defaultRecentRuns
	}

	query := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var runs []*models.SyncRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "sync runs", err)
	}
	return runs, nil
}

// FindByID returns a run by its ID
func (r *SyncRunRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SyncRun, error) {
	var run models.SyncRun
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "sync run", err)
	}
	return &run, nil
}
