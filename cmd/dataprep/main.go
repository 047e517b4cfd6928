package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dataprep/internal/app"
	"dataprep/internal/config"
	apperrors "dataprep/internal/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes both jobs concurrently and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dataprep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataDir := fs.String("data-dir", "", "directory holding the input and output files")
	version := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, config.AppVersion)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", apperrors.LogAttrs(err)...)
		return 1
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}

	logger, tel, err := app.Bootstrap(cfg)
	if err != nil {
		slog.Error("Failed to initialize", apperrors.LogAttrs(err)...)
		return 1
	}
	defer app.Shutdown(logger, tel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, logger, tel, stdout)
	logger.Info("Starting data preparation", slog.String("data_dir", a.Paths().DataDir))

	if err := a.RunAll(ctx); err != nil {
		logger.Error("Data preparation failed", apperrors.LogAttrs(err)...)
		return 1
	}

	logger.Info("Data preparation completed")
	return 0
}
