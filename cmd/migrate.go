package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var migrateReport bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the sync journal tables",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateReport, "report", false, "also list table columns no model field maps")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := requireDatabase()
	if err != nil {
		return err
	}
	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Journal tables are up to date.")

	if !migrateReport {
		return nil
	}
	report, err := db.ColumnReport()
	if err != nil {
		return err
	}
	if len(report) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No column mismatches.")
		return nil
	}

	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	writer := newTable(cmd.OutOrStdout())
	fmt.Fprintln(writer, "TABLE\tUNMAPPED_COLUMN")
	for _, table := range tables {
		for _, column := range report[table] {
			fmt.Fprintf(writer, "%s\t%s\n", table, column)
		}
	}
	return writer.Flush()
}
