package commands

import (
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(postPurchaseCmd)
}

var postPurchaseCmd = &cobra.Command{
	Use:   "set-post-purchase-message <event-slug> <message>",
	Short: "Sets the confirmation message buyers see after checkout.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		err := client.SetPostPurchaseMessage(cmd.Context(), args[0], args[1])
		if err != nil {
			serviceutil.Fatal("failed to set post purchase message", err)
		}
	},
}
