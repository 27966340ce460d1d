package commands

import (
	"ticketleap-bulk/lib/configutil"
	"ticketleap-bulk/lib/scrapers/ticketleap"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/spf13/cobra"
)

// eventFile is the json5 shape of an event definition. It is
// CreateEventRequest except dates are written as "<start>/<end>"
// pairs in YYYY-MM-DDTHH:MM form.
type eventFile struct {
	ticketleap.CreateEventRequest
	Dates []string `json:"dates"`
}

var createFile *string

func init() {
	createFile = createCmd.Flags().String("file", "event.json5", "The event definition to submit.")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [--file <path/to/event.json5>]",
	Short: "Creates an event from a json5 definition, image upload included.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := configutil.ReadConfig[eventFile](*createFile)
		if err != nil {
			serviceutil.Fatal("failed to read event definition", err)
		}

		req := f.CreateEventRequest
		req.Dates, err = parseDateRanges(f.Dates)
		if err != nil {
			serviceutil.Fatal("failed to parse event dates", err)
		}

		client := createClient(cmd.Context())

		result, err := client.CreateEvent(cmd.Context(), req)
		if err != nil {
			serviceutil.Fatal("failed to create event", err)
		}
		exitSubmit(result)
	},
}
