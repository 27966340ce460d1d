package commands

import (
	"ticketleap-bulk/cmd/ticketleap-cli/utils"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Lists every event on the account with its uuid.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		events, err := client.Events(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list events", err)
		}
		utils.RenderMap("Slug", "UUID", events)
	},
}
