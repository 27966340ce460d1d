package commands

import (
	"ticketleap-bulk/cmd/ticketleap-cli/utils"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ticketsCmd)
}

var ticketsCmd = &cobra.Command{
	Use:   "tickets <event-slug> <date>",
	Short: "Lists the ticket types of one date, given as a YYYY-MM-DDTHH:MM start key or a uuid.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		tickets, err := client.Tickets(cmd.Context(), args[0], args[1])
		if err != nil {
			serviceutil.Fatal("failed to list tickets", err)
		}
		utils.RenderMap("Name", "UUID", tickets)
	},
}
