package commands

import (
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	deleteTicketName *string
	deleteTicketUuid *string
)

func init() {
	deleteTicketName = deleteTicketCmd.Flags().String("name", "", "The name of the ticket type to delete.")
	deleteTicketUuid = deleteTicketCmd.Flags().String("uuid", "", "The uuid of the ticket type to delete, wins over --name.")
	rootCmd.AddCommand(deleteTicketCmd)
}

var deleteTicketCmd = &cobra.Command{
	Use:   "delete-ticket <event-slug> <date> (--name <name> | --uuid <uuid>)",
	Short: "Deletes one ticket type from one date.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		err := client.DeleteTicket(cmd.Context(), args[0], args[1], *deleteTicketName, *deleteTicketUuid)
		if err != nil {
			serviceutil.Fatal("failed to delete ticket", err)
		}
	},
}
