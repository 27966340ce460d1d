package main

import (
	"context"

	"ticketleap-bulk/cmd/ticketleap-cli/commands"
	"ticketleap-bulk/lib/serviceutil"
	"ticketleap-bulk/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	commands.ExecuteContext(ctx)
	telemetry.Shutdown(context.Background())
}
