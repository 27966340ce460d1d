package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer hands out a tracer backed by the global provider. The global
// registry late-binds, so grabbing tracers in package var blocks before
// Setup runs is fine.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// InitSlog installs the process wide slog handler. verbose drops the
// level to debug, which is also what turns on http transcripts.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

var providers struct {
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

func Setup(ctx context.Context, serviceName string, config config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	tracerProvider, err := newTraceProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tracerProvider)

	meterProvider, err := newMetricProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetMeterProvider(meterProvider)

	providers.tracer = tracerProvider
	providers.meter = meterProvider
	return nil
}

// Shutdown flushes any spans and metrics still buffered in the
// exporters. No-op when Setup never ran.
func Shutdown(ctx context.Context) error {
	errlist := []error{}
	if providers.tracer != nil {
		err := providers.tracer.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	if providers.meter != nil {
		err := providers.meter.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}
