package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"go.uber.org/automaxprocs/maxprocs"

	diagram2png "github.com/promokit/go-diagram2png"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, args, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	// Configure GOMAXPROCS for containers with conditional logging.
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS
	// env, in which case the runtime defaults apply.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	exporterOpts := []diagram2png.Option{diagram2png.WithLogger(logger)}
	if flags.timeout > 0 {
		exporterOpts = append(exporterOpts, diagram2png.WithTimeout(flags.timeout))
	}
	exporter := diagram2png.NewExporter(exporterOpts...)

	poolSize := diagram2png.ResolvePoolSize(flags.workers)
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := diagram2png.NewExportPool(exporter, poolSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flags, args, pool, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
