package commands

import (
	"ticketleap-bulk/lib/configutil"
	"ticketleap-bulk/lib/scrapers/ticketleap"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

// ticketsFile is the json5 shape of a ticket type list.
type ticketsFile struct {
	Tickets []ticketleap.TicketParams `json:"tickets"`
}

var addTicketsFile *string

func init() {
	addTicketsFile = addTicketsCmd.Flags().String("file", "tickets.json5", "The ticket definitions to submit.")
	rootCmd.AddCommand(addTicketsCmd)
}

var addTicketsCmd = &cobra.Command{
	Use:   "add-tickets <event-slug> <date>... [--file <path/to/tickets.json5>]",
	Short: "Attaches the ticket types in a json5 file to the dates given as YYYY-MM-DDTHH:MM start keys.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := configutil.ReadConfig[ticketsFile](*addTicketsFile)
		if err != nil {
			serviceutil.Fatal("failed to read ticket definitions", err)
		}

		client := createClient(cmd.Context())

		err = client.AddTickets(cmd.Context(), args[0], args[1:], f.Tickets)
		if err != nil {
			serviceutil.Fatal("failed to add tickets", err)
		}
	},
}
