package cmd

import (
	"fmt"

	"github.com/rpupo63/portfolio-admin/listing"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/spf13/cobra"
)

var (
	listPage    int
	listKeyword string
	listFilter  string
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List one page of a collection",
	Long: `list prints one page of clients, projects, users, technologies, websites,
videos or creatives. --filter is the collection's secondary filter
(country id for clients, client id for projects, role for users).`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE:      runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number, starting at 1")
	listCmd.Flags().StringVar(&listKeyword, "keyword", "", "free-text filter")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "secondary filter value")
	rootCmd.AddCommand(listCmd)
}

func kindNames() []string {
	var names []string
	for _, kind := range models.AllKinds() {
		names = append(names, kind.String())
	}
	return names
}

func runList(cmd *cobra.Command, args []string) error {
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}
	if listPage < 1 {
		return fmt.Errorf("--page must be 1 or greater")
	}
	token, err := accessToken()
	if err != nil {
		return err
	}
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	controller := listing.NewController(kind, gateway, token, normalize.New())
	err = controller.Load(commandContext(cmd), listing.Query{
		Page:    listPage - 1,
		Keyword: listKeyword,
		Filter:  listFilter,
	})
	state := controller.Snapshot()
	if err != nil {
		if state.Err != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), state.Err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if err := printRecords(out, normalize.ShapeFor(kind), state.Records); err != nil {
		return err
	}
	fmt.Fprintf(out, "\npage %d, showing %d of %d %s\n", state.Page+1, len(state.Records), state.Total, kind)
	return nil
}
