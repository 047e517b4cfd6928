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

// run executes the feature builder and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("features", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "price history CSV (defaults to <data_dir>/"+config.PriceInputFile+")")
	csvDir := fs.String("csv-dir", "", "write "+config.TrainCSVFile+" and "+config.TestCSVFile+" to this directory")
	xlsx := fs.String("xlsx", "", "write both partitions to this XLSX workbook")
	excludeCurrent := fs.Bool("exclude-current", false, "compute each row's windows from earlier rows only")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", apperrors.LogAttrs(err)...)
		return 1
	}

	if *in != "" {
		cfg.Paths.PriceInput = absPath(*in)
	}
	if *csvDir != "" {
		dir := absPath(*csvDir)
		cfg.Paths.TrainCSV = filepath.Join(dir, config.TrainCSVFile)
		cfg.Paths.TestCSV = filepath.Join(dir, config.TestCSVFile)
		cfg.Features.ExportCSV = true
	}
	if *xlsx != "" {
		cfg.Paths.FeaturesXLSX = absPath(*xlsx)
		cfg.Features.ExportXLSX = true
	}
	if *excludeCurrent {
		cfg.Features.ExcludeCurrent = true
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
	logger.Info("Starting feature builder",
		slog.String("input_file", a.Paths().PriceInput),
		slog.Int("short_window", cfg.Features.ShortWindow),
		slog.Int("long_window", cfg.Features.LongWindow),
		slog.String("cutoff", cfg.Features.CutoffDate),
		slog.Bool("export_csv", cfg.Features.ExportCSV),
		slog.Bool("export_xlsx", cfg.Features.ExportXLSX))

	if err := a.RunFeatures(ctx); err != nil {
		logger.Error("Feature builder failed", apperrors.LogAttrs(err)...)
		return 1
	}

	logger.Info("Feature builder completed")
	return 0
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
