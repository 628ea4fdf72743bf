package cmd

import (
	"fmt"

	"github.com/rpupo63/portfolio-admin/models"
	"github.com/spf13/cobra"
)

var (
	syncRunsKind  string
	syncRunsLimit int
)

var syncRunsCmd = &cobra.Command{
	Use:   "sync-runs",
	Short: "Show recent entries of the sync journal",
	Args:  cobra.NoArgs,
	RunE:  runSyncRuns,
}

func init() {
	syncRunsCmd.Flags().StringVar(&syncRunsKind, "kind", "", "only show runs of this collection")
	syncRunsCmd.Flags().IntVar(&syncRunsLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(syncRunsCmd)
}

func runSyncRuns(cmd *cobra.Command, args []string) error {
	kind := ""
	if syncRunsKind != "" {
		parsed, err := models.ParseKind(syncRunsKind)
		if err != nil {
			return err
		}
		kind = parsed.String()
	}

	db, err := requireDatabase()
	if err != nil {
		return err
	}
	runs, err := db.SyncRunRepo().FindRecent(commandContext(cmd), kind, syncRunsLimit)
	if err != nil {
		return err
	}
	return printSyncRuns(cmd, runs)
}

func printSyncRuns(cmd *cobra.Command, runs []*models.SyncRun) error {
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sync runs recorded.")
		return nil
	}

	writer := newTable(cmd.OutOrStdout())
	fmt.Fprintln(writer, "ID\tKIND\tSTATUS\tFETCHED\tSUBMITTED\tDROPPED\tSTARTED_AT\tFINISHED_AT\tMESSAGE")
	fmt.Fprintln(writer, "--\t----\t------\t-------\t---------\t-------\t----------\t-----------\t-------")
	for _, run := range runs {
		finished := "N/A"
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Format("2006-01-02 15:04:05")
		}
		message := ""
		if run.Message != nil {
			message = *run.Message
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			run.ID, run.Kind, run.Status, run.Fetched, run.Submitted, run.Dropped,
			run.StartedAt.Format("2006-01-02 15:04:05"), finished, cell(message))
	}
	return writer.Flush()
}
