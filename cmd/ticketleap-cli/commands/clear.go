package commands

import (
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearDateCmd)
	rootCmd.AddCommand(clearEventCmd)
}

var clearDateCmd = &cobra.Command{
	Use:   "clear-date <event-slug> <date>",
	Short: "Deletes every ticket type on one date.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		err := client.ClearDate(cmd.Context(), args[0], args[1])
		if err != nil {
			serviceutil.Fatal("failed to clear date", err)
		}
	},
}

var clearEventCmd = &cobra.Command{
	Use:   "clear-event <event-slug>",
	Short: "Deletes every ticket type on every date of an event.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		err := client.ClearEvent(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to clear event", err)
		}
	},
}
