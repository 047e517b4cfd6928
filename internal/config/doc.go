// Package config provides centralized configuration management for the data
// preparation jobs. It handles loading configuration from multiple sources,
// validation, and path resolution.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// The defaults are the fixed job parameters: the standard input file names,
// 5 and 365 row windows, boundary 1951-01-02 and cutoff 2013-01-01.
//
// # Environment Variables
//
// All environment variables follow the pattern DATAPREP_<SECTION>_<FIELD>:
//
//	DATAPREP_PATHS_DATA_DIR=/data
//	DATAPREP_RECODER_INSPECT_COLUMN=2016
//	DATAPREP_FEATURES_CUTOFF_DATE=2013-01-01
//	DATAPREP_LOGGING_LEVEL=debug
//	DATAPREP_TELEMETRY_METRIC_EXPORTER=prometheus
//
// The YAML file is read from DATAPREP_CONFIG, or from dataprep.yaml or
// configs/dataprep.yaml when present.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths := cfg.ResolvePaths()
package config
