// Package app wires configuration, logging, telemetry and the two data
// preparation jobs together.
//
// # Jobs
//
// RunRecoder loads the election results table, fills missing cells, recodes
// party abbreviations, prints the distinct values of the inspected column and
// writes the cleaned table. RunFeatures loads the daily price series, sorts
// it, adds trailing window statistics, filters incomplete rows, splits at the
// cutoff date and prints a preview of both partitions. RunAll runs both jobs
// side by side.
//
// Each job is a fixed list of steps executed by an operations.Runner, so a
// failure names the step that caused it and stops the job.
//
// # Usage
//
//	a := app.New(cfg, logger, telemetry, os.Stdout)
//	if err := a.RunAll(ctx); err != nil {
//	    os.Exit(1)
//	}
//
// # Error Handling
//
// Errors are returned to the caller. The package never calls os.Exit,
// leaving the exit code to main.
package app
