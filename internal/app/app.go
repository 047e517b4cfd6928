package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"dataprep/internal/config"
	apperrors "dataprep/internal/errors"
	"dataprep/internal/exporter"
	"dataprep/internal/features"
	"dataprep/internal/infrastructure"
	"dataprep/internal/operations"
	"dataprep/internal/recoder"
	"dataprep/internal/validation"
)

const (
	JobRecoder  = "recoder"
	JobFeatures = "features"

	TrainLabel = "Train dataframe:"
	TestLabel  = "Test dataframe:"
)

// App runs the data preparation jobs against one configuration
type App struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry

	// outMu serialises console output when jobs run concurrently
	outMu  sync.Mutex
	stdout io.Writer
}

// New creates an application. Nil logger, telemetry or stdout fall back to
// the global logger, no-op telemetry and os.Stdout.
func New(cfg *config.Config, logger *slog.Logger, tel *infrastructure.Telemetry, stdout io.Writer) *App {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if tel == nil {
		tel = infrastructure.NoopTelemetry()
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	paths := cfg.ResolvePaths()
	paths.LogPathResolution(logger)

	return &App{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		telemetry: tel,
		stdout:    stdout,
	}
}

// Paths returns the resolved file locations
func (a *App) Paths() *config.Paths {
	return a.paths
}

// RunAll runs both jobs concurrently. The first failure cancels the other
// job at its next step boundary.
func (a *App) RunAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.RunRecoder(ctx) })
	g.Go(func() error { return a.RunFeatures(ctx) })
	return g.Wait()
}

// RunRecoder cleans the election results table
func (a *App) RunRecoder(ctx context.Context) error {
	logger := infrastructure.WithComponent(a.logger, JobRecoder)
	metrics := a.telemetry.Metrics

	var (
		table *recoder.Table
		stats recoder.Stats
	)

	steps := []operations.Step{
		operations.NewStep("validate", "Validate input file", func(ctx context.Context) error {
			return validation.NewFileValidator(logger).ValidateCSVFile(a.paths.ElectionInput)
		}),
		operations.NewStep("load", "Load election results", func(ctx context.Context) error {
			t, err := readInput(a.paths.ElectionInput, recoder.Load)
			if err != nil {
				return err
			}
			table = t
			metrics.AddRows(ctx, metrics.RowsLoaded, JobRecoder, t.Rows())
			logger.InfoContext(ctx, "Loaded election results",
				slog.String("path", a.paths.ElectionInput),
				slog.Int("rows", t.Rows()),
				slog.Int("columns", len(t.Header())))
			return nil
		}),
		operations.NewStep("clean", "Fill missing cells and recode parties", func(ctx context.Context) error {
			table, stats = recoder.Clean(table)
			metrics.AddRows(ctx, metrics.CellsRecoded, JobRecoder, stats.Filled+stats.Recoded)
			logger.InfoContext(ctx, "Cleaned election results",
				slog.Int("filled", stats.Filled),
				slog.Int("recoded", stats.Recoded))
			return nil
		}),
		operations.NewStep("inspect", "Print distinct values", func(ctx context.Context) error {
			values, err := recoder.Unique(table, a.cfg.Recoder.InspectColumn)
			if err != nil {
				return err
			}
			return a.print(func(w io.Writer) error {
				_, err := fmt.Fprintln(w, recoder.FormatUnique(values))
				return err
			})
		}),
		operations.NewStep("write", "Write cleaned table", func(ctx context.Context) error {
			body := table.Body()
			err := exporter.NewCSVWriter(logger).WriteCSV(a.paths.ElectionOutput, exporter.WriteOptions{
				Headers: table.Header(),
				Records: body,
			})
			if err != nil {
				return err
			}
			metrics.AddRows(ctx, metrics.RowsWritten, JobRecoder, len(body))
			return nil
		}),
	}

	_, err := operations.NewRunner(JobRecoder, logger, a.telemetry).Run(ctx, steps...)
	return err
}

// RunFeatures builds the rolling window features and the train/test split
func (a *App) RunFeatures(ctx context.Context) error {
	logger := infrastructure.WithComponent(a.logger, JobFeatures)
	metrics := a.telemetry.Metrics
	fc := a.cfg.Features

	opts := features.Options{
		Windows:        []features.Window{features.Window(fc.ShortWindow), features.Window(fc.LongWindow)},
		ExcludeCurrent: fc.ExcludeCurrent,
	}

	var prices, train, test *features.Series

	steps := []operations.Step{
		operations.NewStep("validate", "Validate input and output paths", func(ctx context.Context) error {
			v := validation.NewFileValidator(logger)
			if err := v.ValidateCSVFile(a.paths.PriceInput); err != nil {
				return err
			}
			if fc.ExportXLSX {
				return v.ValidateWorkbookPath(a.paths.FeaturesXLSX)
			}
			return nil
		}),
		operations.NewStep("load", "Load price history", func(ctx context.Context) error {
			s, err := readInput(a.paths.PriceInput, features.LoadPriceSeries)
			if err != nil {
				return err
			}
			prices = s
			metrics.AddRows(ctx, metrics.RowsLoaded, JobFeatures, s.Len())
			logger.InfoContext(ctx, "Loaded price history",
				slog.String("path", a.paths.PriceInput),
				slog.Int("rows", s.Len()))
			return nil
		}),
		operations.NewStep("sort", "Sort by date", func(ctx context.Context) error {
			prices = features.SortByDate(prices)
			return nil
		}),
		operations.NewStep("compute", "Compute rolling statistics", func(ctx context.Context) error {
			if !opts.ExcludeCurrent {
				logger.WarnContext(ctx, "Rolling windows include the current row",
					slog.String("hint", "set exclude_current to use only earlier rows"))
			}
			prices = features.ComputeFeatures(prices, opts)
			return nil
		}),
		operations.NewStep("filter", "Drop early and incomplete rows", func(ctx context.Context) error {
			kept, dropped := features.DropIncomplete(prices, fc.Boundary())
			prices = kept
			metrics.AddRows(ctx, metrics.RowsDropped, JobFeatures, dropped)
			logger.InfoContext(ctx, "Filtered rows",
				slog.String("boundary", fc.BoundaryDate),
				slog.Int("kept", kept.Len()),
				slog.Int("dropped", dropped))
			return nil
		}),
		operations.NewStep("split", "Split train and test", func(ctx context.Context) error {
			train, test = features.Split(prices, fc.Cutoff())
			logger.InfoContext(ctx, "Split at cutoff",
				slog.String("cutoff", fc.CutoffDate),
				slog.Int("train_rows", train.Len()),
				slog.Int("test_rows", test.Len()))
			return nil
		}),
		operations.NewStep("preview", "Print partitions", func(ctx context.Context) error {
			return a.print(func(w io.Writer) error {
				if err := features.Preview(w, TrainLabel, train, fc.PreviewRows); err != nil {
					return err
				}
				return features.Preview(w, TestLabel, test, fc.PreviewRows)
			})
		}),
	}

	if fc.ExportCSV {
		steps = append(steps, operations.NewStep("export_csv", "Write partitions as CSV", func(ctx context.Context) error {
			w := exporter.NewCSVWriter(logger)
			for _, part := range []struct {
				path string
				s    *features.Series
			}{
				{a.paths.TrainCSV, train},
				{a.paths.TestCSV, test},
			} {
				if err := w.WriteCSV(part.path, exporter.WriteOptions{
					Headers: part.s.Columns(),
					Records: part.s.Records(),
				}); err != nil {
					return err
				}
				metrics.AddRows(ctx, metrics.RowsWritten, JobFeatures, part.s.Len())
			}
			return nil
		}))
	}

	if fc.ExportXLSX {
		steps = append(steps, operations.NewStep("export_xlsx", "Write partitions as workbook", func(ctx context.Context) error {
			return exporter.NewWorkbookWriter(logger).WriteWorkbook(a.paths.FeaturesXLSX, []exporter.Sheet{
				{Name: "train", Frame: features.Head(train, train.Len())},
				{Name: "test", Frame: features.Head(test, test.Len())},
			})
		}))
	}

	_, err := operations.NewRunner(JobFeatures, logger, a.telemetry).Run(ctx, steps...)
	return err
}

// print renders fn into a buffer and copies it to stdout in one write
func (a *App) print(fn func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	_, err := a.stdout.Write(buf.Bytes())
	return err
}

// readInput opens path and decodes it with load
func readInput[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, apperrors.NewMissingFileError(path, err)
		}
		return zero, apperrors.NewStorageError("failed to open input file", err).
			WithContext("path", path)
	}
	defer f.Close()

	v, err := load(f)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return zero, appErr.WithContext("path", path)
		}
		return zero, err
	}
	return v, nil
}
