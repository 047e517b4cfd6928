// Package operations runs a job as an ordered list of steps.
//
// Each Step is executed strictly after the previous one has completed. The
// Runner records a StepState per step (pending, active, completed, failed or
// skipped), logs every transition, wraps each step in a trace span and records
// its duration. The first failure aborts the run; the remaining steps are
// marked skipped and the error is returned as an *OperationError naming the
// step. Steps are never retried.
//
// Example usage:
//
//	runner := operations.NewRunner("recoder", logger, telemetry)
//	state, err := runner.Run(ctx,
//		operations.NewStep("load", "Load election table", load),
//		operations.NewStep("clean", "Fill and recode", clean),
//		operations.NewStep("write", "Write cleaned table", write),
//	)
package operations
