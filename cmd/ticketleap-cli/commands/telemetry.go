package commands

import (
	"context"
	"log/slog"

	"ticketleap-bulk/lib/restyutil"
	"ticketleap-bulk/lib/scrapers/ticketleap"
	"ticketleap-bulk/lib/serviceutil"
	"ticketleap-bulk/lib/telemetry"
)

func initTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	err := telemetry.SetupFromEnv(ctx, "ticketleap-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	out, err := restyutil.NewFilesystemOutput(".dev/resty/ticketleap")
	if err != nil {
		serviceutil.Fatal("failed to initialize http transcripts", err)
	}
	ticketleap.SetRestyInstrumentOutput(out)
}
