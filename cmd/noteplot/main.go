// noteplot renders a stream of (channel, timestamp, note) events as a PNG
// raster: one pixel per event, colored by channel.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"noteplot/internal/config"
	"noteplot/internal/event"
	"noteplot/internal/filter"
	"noteplot/internal/ingest"
	noteotel "noteplot/internal/otel"
	"noteplot/internal/output"
	"noteplot/internal/palette"
	"noteplot/internal/raster"
)

// Version information injected by GoReleaser at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// setupTracing returns a tracer and cleanup function. Without a configured
// OTLP endpoint the tracer is a no-op and cleanup does nothing.
func setupTracing() (trace.Tracer, func(), error) {
	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return nil, nil, err
	}

	if !otelCfg.Enabled() {
		return noop.NewTracerProvider().Tracer("noteplot"), func() {}, nil
	}

	tp, err := noteotel.InitProvider(otelCfg, version)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OTEL provider: %w", err)
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := noteotel.ShutdownProvider(tp, shutdownCtx); err != nil {
			log.Printf("Error shutting down OTEL provider: %v", err)
		}
	}

	return tp.Tracer("noteplot"), cleanup, nil
}

// openInput opens the configured event source.
func openInput(cfg *config.Config) (io.ReadCloser, error) {
	if cfg.Stdin() {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

// loadPalette resolves the channel palette: the built-in table unless a
// .gpl file was given.
func loadPalette(cfg *config.Config) (palette.Palette, error) {
	if cfg.PalettePath == "" {
		return palette.Default(), nil
	}
	return palette.LoadGPL(cfg.PalettePath)
}

// ingestEvents reads and filters the event stream under tracing spans.
func ingestEvents(ctx context.Context, tracer trace.Tracer, cfg *config.Config) ([]event.Event, error) {
	in, err := openInput(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Printf("Error closing input: %v", err)
		}
	}()

	_, span := tracer.Start(ctx, "ingest")
	events, dropped, err := ingest.ReadAll(in, os.Stderr)
	span.SetAttributes(
		attribute.Int("events.ingested", len(events)),
		attribute.Int("events.dropped", dropped),
	)
	span.End()
	if err != nil {
		return nil, err
	}

	filtered := 0
	if cfg.Filter != "" {
		f, err := filter.Compile(cfg.Filter)
		if err != nil {
			return nil, err
		}

		_, span := tracer.Start(ctx, "filter")
		kept, err := f.Apply(events)
		span.SetAttributes(attribute.Int("events.filtered", len(events)-len(kept)))
		span.End()
		if err != nil {
			return nil, err
		}
		filtered = len(events) - len(kept)
		events = kept
	}

	log.Printf("ingested %s events (%s lines dropped, %s filtered out)",
		humanize.Comma(int64(len(events))),
		humanize.Comma(int64(dropped)),
		humanize.Comma(int64(filtered)))

	return events, nil
}

func run() error {
	cfg, err := config.ParseArgs(os.Args)
	if err != nil {
		return err
	}

	if cfg.ShowVersion {
		fmt.Printf("noteplot %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	tracer, cleanupTracing, err := setupTracing()
	if err != nil {
		return err
	}
	defer cleanupTracing()

	return render(cfg, tracer)
}

// render runs the whole pipeline. Every stage span hangs off one run-level
// span so an exported trace reads as a single pipeline, not loose roots.
func render(cfg *config.Config, tracer trace.Tracer) error {
	ctx, runSpan := tracer.Start(context.Background(), "pipeline")
	defer runSpan.End()

	pal, err := loadPalette(cfg)
	if err != nil {
		return err
	}

	events, err := ingestEvents(ctx, tracer, cfg)
	if err != nil {
		return err
	}

	// An empty dataset is a legitimate outcome, not a failure: report it
	// and exit without writing a file.
	tr, ok := raster.Normalize(events)
	if !ok {
		log.Printf("no data provided; nothing to render")
		return nil
	}

	_, renderSpan := tracer.Start(ctx, "render")
	rz := raster.New(cfg.Width, cfg.Height, pal)
	err = rz.Render(events, tr)
	renderSpan.End()
	if err != nil {
		return err
	}

	_, saveSpan := tracer.Start(ctx, "save")
	finalizer := &output.Finalizer{ScaleWidth: cfg.ScaleWidth, ScaleHeight: cfg.ScaleHeight}
	err = finalizer.Save(rz.Image(), cfg.Output)
	saveSpan.End()
	if err != nil {
		return err
	}

	log.Printf("wrote %s", cfg.Output)
	return nil
}
