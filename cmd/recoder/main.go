package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"dataprep/internal/app"
	"dataprep/internal/config"
	apperrors "dataprep/internal/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the recoder and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("recoder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "election results CSV (defaults to <data_dir>/"+config.ElectionInputFile+")")
	out := fs.String("out", "", "cleaned CSV output path (defaults to <data_dir>/"+config.ElectionOutputFile+")")
	column := fs.String("column", "", "column whose distinct values are printed (default "+config.DefaultInspectColumn+")")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", apperrors.LogAttrs(err)...)
		return 1
	}

	// Flag paths are relative to the working directory, not the data directory
	if *in != "" {
		cfg.Paths.ElectionInput = absPath(*in)
	}
	if *out != "" {
		cfg.Paths.ElectionOutput = absPath(*out)
	}
	if *column != "" {
		cfg.Recoder.InspectColumn = *column
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
	logger.Info("Starting election recoder",
		slog.String("input_file", a.Paths().ElectionInput),
		slog.String("output_file", a.Paths().ElectionOutput),
		slog.String("inspect_column", cfg.Recoder.InspectColumn))

	if err := a.RunRecoder(ctx); err != nil {
		logger.Error("Recoder failed", apperrors.LogAttrs(err)...)
		return 1
	}

	logger.Info("Recoder completed", slog.String("output_file", a.Paths().ElectionOutput))
	return 0
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
