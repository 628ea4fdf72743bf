package cmd

import (
	"fmt"

	"github.com/rpupo63/portfolio-admin/listing"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [kind...]",
	Short: "Load the first page of several collections at once",
	Long: `refresh loads the first page of every named collection (all of them
when none is named) concurrently and prints a summary. One failing
collection does not affect the others.`,
	ValidArgs: kindNames(),
	RunE:      runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	kinds := models.AllKinds()
	if len(args) > 0 {
		kinds = make([]models.Kind, 0, len(args))
		for _, arg := range args {
			kind, err := models.ParseKind(arg)
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}
	}

	token, err := accessToken()
	if err != nil {
		return err
	}
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	normalizer := normalize.New()
	controllers := make([]*listing.Controller, len(kinds))
	for i, kind := range kinds {
		controllers[i] = listing.NewController(kind, gateway, token, normalizer)
	}
	refreshErr := listing.RefreshAll(commandContext(cmd), controllers...)

	writer := newTable(cmd.OutOrStdout())
	fmt.Fprintln(writer, "KIND\tLOADED\tTOTAL\tERROR")
	fmt.Fprintln(writer, "----\t------\t-----\t-----")
	for _, controller := range controllers {
		state := controller.Snapshot()
		fmt.Fprintf(writer, "%s\t%d\t%d\t%s\n", controller.Kind(), len(state.Records), state.Total, cell(state.Err))
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return refreshErr
}
