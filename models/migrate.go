package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// tables maps every persisted model to its table.
var tables = map[string]interface{}{
	"sync_runs": SyncRun{},
}

// Migrate creates or updates the journal tables.
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Msg("migrating models")
	if err := migrateDB.AutoMigrate(&SyncRun{}); err != nil {
		return fmt.Errorf("migrating models: %w", err)
	}
	return nil
}

// ColumnMismatchReport lists, per table, the database columns no model field
// accounts for. Tables that do not exist yet are skipped.
func ColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)

	for tableName, model := range tables {
		dbColumns, err := tableColumns(db, tableName)
		if err != nil {
			return nil, err
		}
		if len(dbColumns) == 0 {
			log.Warn().Str("table", tableName).Msg("table does not exist yet")
			continue
		}

		mismatches := findColumnMismatches(dbColumns, modelColumns(model))
		if len(mismatches) > 0 {
			log.Warn().Str("table", tableName).Strs("columns", mismatches).Msg("columns not accounted for in model")
		}
		report[tableName] = mismatches
	}

	return report, nil
}

func tableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	return columns, nil
}

// modelColumns reads the gorm column: tag of every field.
func modelColumns(model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		for _, part := range strings.Split(field.Tag.Get("gorm"), ";") {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "column:") {
				fields = append(fields, strings.TrimPrefix(part, "column:"))
			}
		}
	}

	return fields
}

func findColumnMismatches(dbColumns, modelFields []string) []string {
	known := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		known[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !known[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
