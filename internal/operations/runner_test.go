package operations

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dataprep/internal/errors"
	"dataprep/internal/infrastructure"
	"dataprep/internal/shared/testutil"
)

func recordingStep(id string, calls *[]string, err error) Step {
	return NewStep(id, "step "+id, func(ctx context.Context) error {
		*calls = append(*calls, id)
		return err
	})
}

func TestRunner_RunsStepsInOrder(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	runner := NewRunner("recoder", logger, nil)

	var calls []string
	state, err := runner.Run(context.Background(),
		recordingStep("load", &calls, nil),
		recordingStep("clean", &calls, nil),
		recordingStep("write", &calls, nil),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"load", "clean", "write"}, calls)
	assert.Equal(t, OperationStatusCompleted, state.GetStatus())
	assert.Equal(t, []string{"load", "clean", "write"}, state.StepIDs())
	for _, id := range state.StepIDs() {
		assert.Equal(t, StepStatusCompleted, state.GetStep(id).GetStatus(), id)
	}
	assert.NotEmpty(t, state.ID)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "sequential_execution_complete")
	testutil.AssertLogAttr(t, handler, "job", "recoder")
	testutil.AssertNoErrors(t, handler)
}

func TestRunner_FailFast(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	runner := NewRunner("features", logger, nil)

	cause := apperrors.NewMissingColumnError("Close")
	var calls []string
	state, err := runner.Run(context.Background(),
		recordingStep("load", &calls, nil),
		recordingStep("rolling", &calls, cause),
		recordingStep("split", &calls, nil),
	)
	require.Error(t, err)

	assert.Equal(t, []string{"load", "rolling"}, calls, "steps after a failure must not run")
	assert.Equal(t, OperationStatusFailed, state.GetStatus())
	assert.Equal(t, StepStatusCompleted, state.GetStep("load").GetStatus())
	assert.Equal(t, StepStatusFailed, state.GetStep("rolling").GetStatus())
	assert.Equal(t, StepStatusSkipped, state.GetStep("split").GetStatus())

	step, ok := FailedStep(err)
	require.True(t, ok)
	assert.Equal(t, "rolling", step)
	assert.Contains(t, err.Error(), `features step "rolling"`)
	assert.True(t, apperrors.IsNotFound(err), "cause must stay reachable")
	assert.False(t, IsCancellation(err))

	testutil.AssertLogContains(t, handler, slog.LevelError, "step_failed")
	testutil.AssertLogAttr(t, handler, "column", "Close")
}

func TestRunner_Cancelled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	runner := NewRunner("features", logger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var calls []string
	state, err := runner.Run(ctx,
		NewStep("load", "load", func(context.Context) error {
			calls = append(calls, "load")
			cancel()
			return nil
		}),
		recordingStep("rolling", &calls, nil),
	)
	require.Error(t, err)

	assert.Equal(t, []string{"load"}, calls)
	assert.True(t, IsCancellation(err))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, OperationStatusCancelled, state.GetStatus())
	assert.Equal(t, StepStatusSkipped, state.GetStep("rolling").GetStatus())
}

func TestRunner_KeepsTraceID(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	runner := NewRunner("recoder", logger, infrastructure.NoopTelemetry())

	ctx := infrastructure.WithTraceID(context.Background(), "run-789")
	var seen string
	state, err := runner.Run(ctx, NewStep("load", "load", func(ctx context.Context) error {
		seen = infrastructure.GetTraceID(ctx)
		return nil
	}))
	require.NoError(t, err)

	assert.Equal(t, "run-789", state.ID)
	assert.Equal(t, "run-789", seen)
}

func TestStepState_Transitions(t *testing.T) {
	s := NewStepState("load", "Load")
	assert.Equal(t, StepStatusPending, s.GetStatus())
	assert.Zero(t, s.Duration())

	s.Start()
	assert.Equal(t, StepStatusActive, s.GetStatus())
	time.Sleep(time.Millisecond)
	s.Complete()
	assert.Equal(t, StepStatusCompleted, s.GetStatus())
	assert.Positive(t, s.Duration())

	failed := NewStepState("write", "Write")
	failed.Start()
	failed.Fail(assert.AnError)
	assert.Equal(t, StepStatusFailed, failed.GetStatus())
	assert.Equal(t, assert.AnError, failed.Error)
}
