package database

import (
	"context"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"gorm.io/gorm"
)

type Database struct {
	db          *gorm.DB
	syncRunRepo *SyncRunRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		syncRunRepo: NewSyncRunRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) SyncRunRepo() *SyncRunRepo {
	return d.syncRunRepo
}

// Migrate brings the journal tables up to date.
func (d Database) Migrate() error {
	if err := models.Migrate(d.db); err != nil {
		return errs.NewDatabaseError("migrate", "journal tables", err)
	}
	return nil
}

// ColumnReport lists table columns that no model field maps.
func (d Database) ColumnReport() (map[string][]string, error) {
	report, err := models.ColumnMismatchReport(d.db)
	if err != nil {
		return nil, errs.NewDatabaseError("inspect", "journal tables", err)
	}
	return report, nil
}

// Ping checks the connection for the health endpoint.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errs.NewDatabaseError("ping", "database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewDatabaseError("ping", "database connection", err)
	}
	return nil
}
