package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "dataprep/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Recoder   RecoderConfig   `yaml:"recoder" envconfig:"RECODER"`
	Features  FeaturesConfig  `yaml:"features" envconfig:"FEATURES"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Output file,required_if=Output both"`
}

// PathsConfig contains input and output file locations. File names are
// resolved relative to DataDir unless absolute.
type PathsConfig struct {
	DataDir        string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ElectionInput  string `yaml:"election_input" envconfig:"ELECTION_INPUT" validate:"required"`
	ElectionOutput string `yaml:"election_output" envconfig:"ELECTION_OUTPUT" validate:"required"`
	PriceInput     string `yaml:"price_input" envconfig:"PRICE_INPUT" validate:"required"`
	TrainCSV       string `yaml:"train_csv" envconfig:"TRAIN_CSV" validate:"required"`
	TestCSV        string `yaml:"test_csv" envconfig:"TEST_CSV" validate:"required"`
	FeaturesXLSX   string `yaml:"features_xlsx" envconfig:"FEATURES_XLSX" validate:"required"`
}

// RecoderConfig contains categorical recoder settings
type RecoderConfig struct {
	InspectColumn string `yaml:"inspect_column" envconfig:"INSPECT_COLUMN" validate:"required"`
}

// FeaturesConfig contains rolling feature builder settings
type FeaturesConfig struct {
	ShortWindow    int    `yaml:"short_window" envconfig:"SHORT_WINDOW" validate:"gt=0,ltfield=LongWindow"`
	LongWindow     int    `yaml:"long_window" envconfig:"LONG_WINDOW" validate:"gt=0"`
	BoundaryDate   string `yaml:"boundary_date" envconfig:"BOUNDARY_DATE" validate:"required,datetime=2006-01-02"`
	CutoffDate     string `yaml:"cutoff_date" envconfig:"CUTOFF_DATE" validate:"required,datetime=2006-01-02"`
	PreviewRows    int    `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" validate:"gte=0"`
	ExcludeCurrent bool   `yaml:"exclude_current" envconfig:"EXCLUDE_CURRENT"`
	ExportCSV      bool   `yaml:"export_csv" envconfig:"EXPORT_CSV"`
	ExportXLSX     bool   `yaml:"export_xlsx" envconfig:"EXPORT_XLSX"`
}

// Boundary returns the parsed boundary date. Rows on or before it are dropped.
func (f FeaturesConfig) Boundary() time.Time {
	t, _ := time.Parse(DateLayout, f.BoundaryDate)
	return t
}

// Cutoff returns the parsed train/test cutoff date
func (f FeaturesConfig) Cutoff() time.Time {
	t, _ := time.Parse(DateLayout, f.CutoffDate)
	return t
}

// TelemetryConfig contains tracing and metrics export settings
type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricExporter string `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=none prometheus"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE" validate:"required_if=MetricExporter prometheus"`
}

// Load loads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	// Environment variables override the file. Fields carry no default tags,
	// so unset variables leave the file or default value in place.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg. Keys absent from the file keep
// their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalizes logging settings
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	v := validator.New()
	if err := v.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return apperrors.NewConfigError("config validation failed", fmt.Errorf("%s", strings.Join(msgs, "; ")))
		}
		return apperrors.NewConfigError("config validation failed", err)
	}

	if !c.Features.Boundary().Before(c.Features.Cutoff()) {
		return apperrors.NewConfigError("config validation failed",
			fmt.Errorf("boundary date %s must be before cutoff date %s", c.Features.BoundaryDate, c.Features.CutoffDate))
	}

	return nil
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s, got %q", fe.Namespace(), fe.Param(), fe.Value())
	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}

	// Check for config file in common locations
	locations := []string{
		"dataprep.yaml",
		"configs/dataprep.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir:        DefaultDataDir,
			ElectionInput:  ElectionInputFile,
			ElectionOutput: ElectionOutputFile,
			PriceInput:     PriceInputFile,
			TrainCSV:       TrainCSVFile,
			TestCSV:        TestCSVFile,
			FeaturesXLSX:   FeaturesWorkbookFile,
		},
		Recoder: RecoderConfig{
			InspectColumn: DefaultInspectColumn,
		},
		Features: FeaturesConfig{
			ShortWindow:  ShortWindow,
			LongWindow:   LongWindow,
			BoundaryDate: DefaultBoundaryDate,
			CutoffDate:   DefaultCutoffDate,
			PreviewRows:  DefaultPreviewRows,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  ExporterNone,
			MetricExporter: ExporterNone,
		},
	}
}
