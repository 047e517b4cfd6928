package operations

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "dataprep/internal/errors"
	"dataprep/internal/infrastructure"
)

// Runner executes the steps of one job strictly in order and stops at the
// first failure.
type Runner struct {
	job     string
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.JobMetrics
}

// NewRunner creates a runner for job. A nil telemetry records nothing.
func NewRunner(job string, logger *slog.Logger, tel *infrastructure.Telemetry) *Runner {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if tel == nil {
		tel = infrastructure.NoopTelemetry()
	}
	return &Runner{
		job:     job,
		logger:  logger.With(slog.String("job", job)),
		tracer:  tel.Tracer,
		metrics: tel.Metrics,
	}
}

// Run executes steps in order. The returned state is never nil; on failure
// the error is an *OperationError naming the failed step.
func (r *Runner) Run(ctx context.Context, steps ...Step) (*OperationState, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	state := NewOperationState(infrastructure.GetTraceID(ctx), r.job)
	for _, s := range steps {
		state.AddStep(NewStepState(s.ID(), s.Name()))
	}

	ctx, span := r.tracer.Start(ctx, r.job,
		trace.WithAttributes(attribute.Int("step_count", len(steps))))
	defer span.End()

	state.Start()
	r.logger.InfoContext(ctx, "sequential_execution_start",
		slog.String("operation_id", state.ID),
		slog.Int("step_count", len(steps)))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			opErr := NewCancellationError(r.job, step.ID(), err)
			r.skipRemaining(state, steps[i:], "operation cancelled")
			state.Cancel(opErr)
			r.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()))
			infrastructure.RecordError(ctx, opErr)
			return state, opErr
		}

		if err := r.runStep(ctx, state, step, i, len(steps)); err != nil {
			opErr := NewExecutionError(r.job, step.ID(), err)
			r.skipRemaining(state, steps[i+1:], "previous step failed")
			state.Fail(opErr)
			infrastructure.RecordError(ctx, opErr)
			return state, opErr
		}
	}

	state.Complete()
	r.logger.InfoContext(ctx, "sequential_execution_complete",
		slog.String("operation_id", state.ID),
		slog.Duration("duration", time.Since(state.StartTime)))
	return state, nil
}

func (r *Runner) runStep(ctx context.Context, state *OperationState, step Step, index, total int) error {
	stepState := state.GetStep(step.ID())

	ctx, span := r.tracer.Start(ctx, step.ID(),
		trace.WithAttributes(
			attribute.String("step.name", step.Name()),
			attribute.Int("step.number", index+1),
		))
	defer span.End()

	stepState.Start()
	r.logger.InfoContext(ctx, "executing_step",
		slog.String("operation_id", state.ID),
		slog.String("step", step.ID()),
		slog.String("name", step.Name()),
		slog.Int("step_number", index+1),
		slog.Int("total_steps", total))

	err := step.Execute(ctx)
	if err != nil {
		stepState.Fail(err)
		r.metrics.RecordStep(ctx, r.job, step.ID(), stepState.Duration(), false)
		infrastructure.RecordError(ctx, err)

		attrs := append([]any{
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", stepState.Duration()),
		}, apperrors.LogAttrs(err)...)
		r.logger.ErrorContext(ctx, "step_failed", attrs...)
		return err
	}

	stepState.Complete()
	r.metrics.RecordStep(ctx, r.job, step.ID(), stepState.Duration(), true)
	r.logger.InfoContext(ctx, "step_completed",
		slog.String("operation_id", state.ID),
		slog.String("step", step.ID()),
		slog.Duration("duration", stepState.Duration()))
	return nil
}

func (r *Runner) skipRemaining(state *OperationState, steps []Step, reason string) {
	for _, s := range steps {
		if st := state.GetStep(s.ID()); st != nil {
			st.Skip(reason)
		}
	}
}
