package commands

import (
	"ticketleap-bulk/lib/scrapers/ticketleap"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	modifyRename      *string
	modifyPrice       *string
	modifyDescription *string
	modifyInventory   *string
	modifyPricingType *string
)

func init() {
	modifyRename = modifyTicketCmd.Flags().String("rename", "", "New name for the ticket, keeps the old one when omitted.")
	modifyPrice = modifyTicketCmd.Flags().String("price", "", "New price, e.g. 25.00.")
	modifyDescription = modifyTicketCmd.Flags().String("description", "", "New description.")
	modifyInventory = modifyTicketCmd.Flags().String("inventory", "", "New inventory cap, blank means unlimited.")
	modifyPricingType = modifyTicketCmd.Flags().String("pricing-type", "", "New pricing type, e.g. fixed.")
	rootCmd.AddCommand(modifyTicketCmd)
}

var modifyTicketCmd = &cobra.Command{
	Use:   "modify-ticket <event-slug> <date> <ticket-name>",
	Short: "Rewrites the fields of one ticket type on one date.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		result, err := client.ModifyTicket(cmd.Context(), ticketleap.ModifyTicketRequest{
			EventSlug:   args[0],
			Date:        args[1],
			TicketName:  args[2],
			NewName:     *modifyRename,
			Price:       *modifyPrice,
			Description: *modifyDescription,
			Inventory:   *modifyInventory,
			PricingType: *modifyPricingType,
		})
		if err != nil {
			serviceutil.Fatal("failed to modify ticket", err)
		}
		exitSubmit(result)
	},
}
