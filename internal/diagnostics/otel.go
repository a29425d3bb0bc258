package diagnostics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Telemetry wraps the tracer and metric instruments the search loop
// reports through (the compatibility builder is not instrumented),
// grounded on the teacher's
// internal/hooks/hooks_otel.go idiom of attaching span events/attributes
// around a bounded unit of work.
type Telemetry struct {
	tracer trace.Tracer

	attempts  metric.Int64Counter
	accepted  metric.Int64Counter
	rejected  metric.Int64Counter
	attemptsToFirstAccept metric.Int64Histogram
}

// NewTelemetry builds a Telemetry from the given providers. Either may be
// nil, in which case the global no-op providers are used (so callers that
// don't care about observability can pass zero values).
func NewTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*Telemetry, error) {
	if tp == nil {
		tp = tracenoop.NewTracerProvider()
	}
	if mp == nil {
		mp = noop.NewMeterProvider()
	}

	meter := mp.Meter("github.com/plantmatch/core/search")

	attempts, err := meter.Int64Counter("plantmatch.search.attempts",
		metric.WithDescription("number of models requested from the SAT backend"))
	if err != nil {
		return nil, err
	}
	accepted, err := meter.Int64Counter("plantmatch.search.accepted",
		metric.WithDescription("number of models accepted as solutions"))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("plantmatch.search.rejected",
		metric.WithDescription("number of models rejected by the material-flow checker"))
	if err != nil {
		return nil, err
	}
	hist, err := meter.Int64Histogram("plantmatch.search.attempts_to_first_accept",
		metric.WithDescription("attempt count at which the first solution was accepted, per run"))
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		tracer:                tp.Tracer("github.com/plantmatch/core/search"),
		attempts:              attempts,
		accepted:              accepted,
		rejected:              rejected,
		attemptsToFirstAccept: hist,
	}, nil
}

// AttemptOutcome labels what became of one search attempt.
type AttemptOutcome string

const (
	OutcomeAccepted AttemptOutcome = "accepted"
	OutcomeRejected AttemptOutcome = "material-flow-rejected"
	OutcomeUnsat    AttemptOutcome = "unsat"
	OutcomeCancelled AttemptOutcome = "cancelled"
)

// StartAttempt opens one search.attempt span, recording the attempt number.
func (t *Telemetry) StartAttempt(ctx context.Context, attemptNumber int) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, "search.attempt",
		trace.WithAttributes(attribute.Int("plantmatch.attempt_number", attemptNumber)))
	t.attempts.Add(ctx, 1)
	return ctx, span
}

// EndAttempt closes span, recording outcome as a span attribute/event and
// incrementing the matching counter.
func (t *Telemetry) EndAttempt(ctx context.Context, span trace.Span, outcome AttemptOutcome) {
	span.SetAttributes(attribute.String("plantmatch.outcome", string(outcome)))
	span.AddEvent(string(outcome))
	switch outcome {
	case OutcomeAccepted:
		t.accepted.Add(ctx, 1)
	case OutcomeRejected:
		t.rejected.Add(ctx, 1)
	}
	span.End()
}

// RecordAttemptsToFirstAccept records, once per run, how many attempts it
// took to reach the first accepted solution.
func (t *Telemetry) RecordAttemptsToFirstAccept(ctx context.Context, attempts int64) {
	t.attemptsToFirstAccept.Record(ctx, attempts)
}
