package commands

import (
	"ticketleap-bulk/lib/scrapers/ticketleap"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	cloneSlug  *string
	cloneDates *[]string
)

func init() {
	cloneSlug = cloneCmd.Flags().String("slug", "", "Slug for the new event, derived from the title when omitted.")
	cloneDates = cloneCmd.Flags().StringArray("date", nil, "A date as <start>/<end> in YYYY-MM-DDTHH:MM form, repeatable.")
	rootCmd.AddCommand(cloneCmd)
}

var cloneCmd = &cobra.Command{
	Use:   "clone <source-slug> <title> [--slug <slug>] [--date <start>/<end>]...",
	Short: "Clones an existing event under a new title on new dates.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		dates, err := parseDateRanges(*cloneDates)
		if err != nil {
			serviceutil.Fatal("failed to parse dates", err)
		}

		client := createClient(cmd.Context())

		result, err := client.CloneEvent(cmd.Context(), ticketleap.CloneEventRequest{
			CloneSlug: args[0],
			Title:     args[1],
			Slug:      *cloneSlug,
			Dates:     dates,
		})
		if err != nil {
			serviceutil.Fatal("failed to clone event", err)
		}
		exitSubmit(result)
	},
}
