package commands

import (
	"slices"

	"ticketleap-bulk/cmd/ticketleap-cli/utils"
	"ticketleap-bulk/lib/scrapers/ticketleap"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(datesCmd)
}

var datesCmd = &cobra.Command{
	Use:   "dates <event-slug>",
	Short: "Lists the dates of an event with their uuids.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		dates, err := client.Dates(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to list dates", err)
		}

		keys := make([]string, 0, len(dates))
		for key := range dates {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Start", "End", "UUID"})
		for _, key := range keys {
			d := dates[key]
			t.AppendRow(table.Row{key, ticketleap.DateKey(d.End), d.UUID})
		}
		t.Render()
	},
}
