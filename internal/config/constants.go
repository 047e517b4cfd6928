package config

// Application constants - the fixed parameters of both data preparation jobs.
// Defaults in Config mirror these values.
const (
	// Application Info
	AppName    = "dataprep"
	AppVersion = "1.0.0"

	// Environment
	EnvPrefix     = "DATAPREP"
	EnvConfigFile = "DATAPREP_CONFIG"

	// File names (relative to the data directory)
	DefaultDataDir       = "."
	ElectionInputFile    = "us_election_results_by_state.csv"
	ElectionOutputFile   = "us_election_results_by_state_cleaned.csv"
	PriceInputFile       = "sphist.csv"
	TrainCSVFile         = "train.csv"
	TestCSVFile          = "test.csv"
	FeaturesWorkbookFile = "features.xlsx"

	// Categorical recoder
	DefaultInspectColumn = "2020"

	// Rolling feature builder
	DateLayout          = "2006-01-02"
	ShortWindow         = 5
	LongWindow          = 365
	DefaultBoundaryDate = "1951-01-02"
	DefaultCutoffDate   = "2013-01-01"
	DefaultPreviewRows  = 5

	// Logging
	DefaultLogLevel  = "info"
	DefaultLogOutput = "stderr"
	DefaultLogFile   = "logs/dataprep.log"

	// Telemetry
	ExporterNone       = "none"
	ExporterStdout     = "stdout"
	ExporterPrometheus = "prometheus"
)
