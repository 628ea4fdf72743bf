package cmd

import (
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/syncer"
	"github.com/spf13/cobra"
)

var syncShowDropped bool

var syncCmd = &cobra.Command{
	Use:   "sync <kind>...",
	Short: "Pull clients, projects or users from the systems of record",
	Long: `sync fetches each collection from its external system of record, drops
entries that cannot be keyed, and submits the rest to the backend in one
bulk upsert. Collections are synced one after another; a failure does not
stop the remaining ones.`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: []string{"clients", "projects", "users"},
	RunE:      runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncShowDropped, "show-dropped", false, "list every dropped entry")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	kinds := make([]models.Kind, 0, len(args))
	for _, arg := range args {
		kind, err := models.ParseKind(arg)
		if err != nil {
			return err
		}
		if !kind.Info().Syncable {
			return fmt.Errorf("%s cannot be synced", kind)
		}
		kinds = append(kinds, kind)
	}

	token, err := accessToken()
	if err != nil {
		return err
	}
	gateway, err := newGateway()
	if err != nil {
		return err
	}
	db, err := openDatabase()
	if err != nil {
		return err
	}

	opts := []syncer.Option{}
	if db != nil {
		opts = append(opts, syncer.WithJournal(db.SyncRunRepo()))
	}
	reconciler := syncer.NewReconciler(services.NewSource(gateway, settings.SourceURLs()), gateway, opts...)

	out := cmd.OutOrStdout()
	var failures []error
	for _, kind := range kinds {
		report, err := reconciler.Sync(commandContext(cmd), kind, token)
		if err != nil {
			fmt.Fprintf(out, "%s: %s\n", kind, report.SlotError)
			failures = append(failures, fmt.Errorf("%s: %w", kind, err))
			continue
		}
		fmt.Fprintf(out, "%s: %s (fetched %d, submitted %d, dropped %d)\n",
			kind, report.Message, report.Fetched, report.Submitted, len(report.Dropped))
		if syncShowDropped && len(report.Dropped) > 0 {
			if err := printDropped(cmd, report.Dropped); err != nil {
				return err
			}
		}
	}
	return errors.Join(failures...)
}

func printDropped(cmd *cobra.Command, dropped []syncer.Dropped) error {
	writer := newTable(cmd.OutOrStdout())
	fmt.Fprintln(writer, "  ID\tREASON")
	for _, d := range dropped {
		fmt.Fprintf(writer, "  %s\t%s\n", d.ID, d.Reason)
	}
	return writer.Flush()
}
