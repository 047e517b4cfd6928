// Package shared holds small helpers used by more than one job.
//
// # Structure
//
//   - missing: the tokens read as a missing cell in input CSV files
//   - testutil: buffered slog handler and CSV fixtures for tests
//
// Nothing here carries job logic. Packages under shared must not import the
// job packages.
package shared
