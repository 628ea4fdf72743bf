package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusSucceeded SyncStatus = "succeeded"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncRun is one execution of a reconcile from the external source into the
// backend, kept as an audit journal.
type SyncRun struct {
	ID         uuid.UUID      `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Kind       string         `json:"kind" db:"kind" gorm:"column:kind;type:text;not null;index"`
	Status     SyncStatus     `json:"status" db:"status" gorm:"column:status;type:text;not null"`
	Fetched    int            `json:"fetched" db:"fetched" gorm:"column:fetched;type:integer;not null;default:0"`
	Submitted  int            `json:"submitted" db:"submitted" gorm:"column:submitted;type:integer;not null;default:0"`
	Dropped    int            `json:"dropped" db:"dropped" gorm:"column:dropped;type:integer;not null;default:0"`
	Message    *string        `json:"message,omitempty" db:"message" gorm:"column:message;type:text"`
	DroppedIDs datatypes.JSON `json:"dropped_ids,omitempty" db:"dropped_ids" gorm:"column:dropped_ids;type:jsonb"`
	StartedAt  time.Time      `json:"started_at" db:"started_at" gorm:"column:started_at;type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	FinishedAt *time.Time     `json:"finished_at,omitempty" db:"finished_at" gorm:"column:finished_at;type:timestamp"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}
