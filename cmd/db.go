package cmd

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/rpupo63/portfolio-admin/database"
	"github.com/rpupo63/portfolio-admin/errs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDatabase connects to the sync journal database. It returns nil when
// the journal is disabled.
func openDatabase() (*database.Database, error) {
	if !settings.Database.Enabled {
		return nil, nil
	}

	newLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  settings.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, errs.NewDatabaseError("connect to", "journal database", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewDatabaseError("test", "journal database connection", err)
	}

	current := database.New(db)
	return &current, nil
}

// requireDatabase is openDatabase for commands that only work with the
// journal.
func requireDatabase() (*database.Database, error) {
	db, err := openDatabase()
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("the sync journal is disabled; set database.enabled (DATABASE_ENABLED=true)")
	}
	return db, nil
}
