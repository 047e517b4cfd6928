package operations

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of operation error
type ErrorType string

const (
	ErrorTypeExecution    ErrorType = "execution"
	ErrorTypeCancellation ErrorType = "cancellation"
)

// OperationError ties a failure to the step that produced it
type OperationError struct {
	Type  ErrorType
	Job   string
	Step  string
	Cause error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil {
		return "unknown operation error"
	}
	return fmt.Sprintf("%s step %q: %v", e.Job, e.Step, e.Cause)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewExecutionError creates a new execution error
func NewExecutionError(job, step string, cause error) *OperationError {
	return &OperationError{Type: ErrorTypeExecution, Job: job, Step: step, Cause: cause}
}

// NewCancellationError creates a new cancellation error
func NewCancellationError(job, step string, cause error) *OperationError {
	return &OperationError{Type: ErrorTypeCancellation, Job: job, Step: step, Cause: cause}
}

// FailedStep returns the step ID carried by err, if any
func FailedStep(err error) (string, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Step, true
	}
	return "", false
}

// IsCancellation checks if the run stopped because its context ended
func IsCancellation(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr) && opErr.Type == ErrorTypeCancellation
}
