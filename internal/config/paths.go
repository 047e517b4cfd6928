package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all resolved file paths for a run.
// This is the single source of truth for file locations in the application.
type Paths struct {
	DataDir string

	// Categorical recoder
	ElectionInput  string
	ElectionOutput string

	// Rolling feature builder
	PriceInput   string
	TrainCSV     string
	TestCSV      string
	FeaturesXLSX string
}

// ResolvePaths joins every configured file name onto the data directory.
// Absolute file names are used as-is.
func (c *Config) ResolvePaths() *Paths {
	dir := c.Paths.DataDir
	if dir == "" {
		dir = DefaultDataDir
	}

	join := func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dir, name)
	}

	return &Paths{
		DataDir:        dir,
		ElectionInput:  join(c.Paths.ElectionInput),
		ElectionOutput: join(c.Paths.ElectionOutput),
		PriceInput:     join(c.Paths.PriceInput),
		TrainCSV:       join(c.Paths.TrainCSV),
		TestCSV:        join(c.Paths.TestCSV),
		FeaturesXLSX:   join(c.Paths.FeaturesXLSX),
	}
}

// EnsureParentDir creates the directory that will hold path
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs every resolved path at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("data_dir", p.DataDir),
		slog.String("election_input", p.ElectionInput),
		slog.String("election_output", p.ElectionOutput),
		slog.String("price_input", p.PriceInput),
		slog.String("train_csv", p.TrainCSV),
		slog.String("test_csv", p.TestCSV),
		slog.String("features_xlsx", p.FeaturesXLSX))
}
