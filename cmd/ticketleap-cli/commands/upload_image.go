package commands

import (
	"ticketleap-bulk/cmd/ticketleap-cli/utils"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uploadImageCmd)
}

var uploadImageCmd = &cobra.Command{
	Use:   "upload-image <path/to/image>",
	Short: "Uploads an image to the media gallery and prints its hosted urls.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		urls, err := client.UploadImage(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to upload image", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Rendition", "URL"})
		t.AppendRow(table.Row{"small", urls.Small})
		t.AppendRow(table.Row{"hero", urls.Hero})
		t.Render()
	},
}
