// Package search implements the Search Loop: it repeatedly asks the SAT
// backend for a model, runs the Material-Flow Checker on each one, and
// either accepts or blocks it, bounded by an attempt budget, an optional
// wall-clock deadline, and a cancellation token — the bounded
// solve-check-block loop described in spec §4.3.1 and §9 ("coroutine-style
// retry on inconsistent model ... implemented as a bounded loop, not a
// generator").
package search

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/plantmatch/core/internal/boolsat"
	"github.com/plantmatch/core/internal/constraint"
	"github.com/plantmatch/core/internal/diagnostics"
	"github.com/plantmatch/core/internal/flow"
	"github.com/plantmatch/core/internal/types"
)

// DefaultAttemptBudget is N_max, the spec's default attempt budget.
const DefaultAttemptBudget = 200

// Mode selects single-solution vs exhaustive-enumeration search.
type Mode int

const (
	// Single stops at the first accepted solution.
	Single Mode = iota
	// All enumerates every accepted solution up to the attempt budget.
	All
)

// Options configures one search run.
type Options struct {
	Mode          Mode
	AttemptBudget int           // 0 means DefaultAttemptBudget
	Deadline      time.Time     // zero means no deadline
	Sink          diagnostics.Sink
	Telemetry     *diagnostics.Telemetry // nil means no instrumentation
}

// Result is everything the search loop learned about one run.
type Result struct {
	Solutions       []types.Solution
	AttemptsMade    int
	Unsat           bool // true if the backend (or the encoder) reported UNSAT before any acceptance
	Exhausted       bool // true if the attempt budget or deadline was hit
	Cancelled       bool
}

// Run executes the bounded enumerate-and-block loop described in spec
// §4.3.1 against an already-encoded problem.
func Run(ctx context.Context, recipe *types.Recipe, matrix types.CandidateMatrix, encoded constraint.Encoded, opts Options) Result {
	sink := opts.Sink
	if sink == nil {
		sink = diagnostics.NewRecording()
	}
	budget := opts.AttemptBudget
	if budget <= 0 {
		budget = DefaultAttemptBudget
	}

	result := Result{}

	if encoded.Unsat {
		result.Unsat = true
		sink.Infof("encoder detected an unsatisfiable problem: some step has no viable candidates")
		return result
	}

	cnf := encoded.CNF
	nextSolutionID := 1

	for {
		if ctx.Err() != nil {
			result.Cancelled = true
			sink.Infof("search cancelled after %d attempts", result.AttemptsMade)
			return result
		}
		if !opts.Deadline.IsZero() && time.Now().After(opts.Deadline) {
			result.Exhausted = true
			sink.Infof("search deadline reached after %d attempts", result.AttemptsMade)
			return result
		}
		if result.AttemptsMade >= budget {
			result.Exhausted = true
			sink.Infof("search attempt budget (%d) reached", budget)
			return result
		}

		attemptCtx := ctx
		var span trace.Span
		if opts.Telemetry != nil {
			attemptCtx, span = opts.Telemetry.StartAttempt(ctx, result.AttemptsMade+1)
		}

		model, ok, err := boolsat.Solve(cnf)
		result.AttemptsMade++
		if err != nil || !ok {
			if len(result.Solutions) == 0 {
				result.Unsat = true
			}
			endAttempt(opts.Telemetry, attemptCtx, span, diagnostics.OutcomeUnsat)
			sink.Infof("solver returned unsat after %d attempt(s)", result.AttemptsMade)
			return result
		}

		assignment := extractAssignment(encoded, model)

		if flow.Check(recipe, matrix, assignment) {
			sol := buildSolution(nextSolutionID, recipe, matrix, assignment)
			result.Solutions = append(result.Solutions, sol)
			if len(result.Solutions) == 1 && opts.Telemetry != nil {
				opts.Telemetry.RecordAttemptsToFirstAccept(ctx, int64(result.AttemptsMade))
			}
			nextSolutionID++
			endAttempt(opts.Telemetry, attemptCtx, span, diagnostics.OutcomeAccepted)
			sink.Infof("accepted solution %d at attempt %d", sol.SolutionID, result.AttemptsMade)
			if opts.Mode == Single {
				return result
			}
		} else {
			endAttempt(opts.Telemetry, attemptCtx, span, diagnostics.OutcomeRejected)
			sink.Infof("material-flow rejected model at attempt %d", result.AttemptsMade)
		}

		blockModel(&cnf, encoded, model)
	}
}

func endAttempt(tel *diagnostics.Telemetry, ctx context.Context, span trace.Span, outcome diagnostics.AttemptOutcome) {
	if tel == nil || span == nil {
		return
	}
	tel.EndAttempt(ctx, span, outcome)
}

func extractAssignment(encoded constraint.Encoded, model boolsat.Model) types.Assignment {
	assignment := make(types.Assignment)
	for v := boolsat.Var(1); int(v) <= len(model)-1; v++ {
		if !model.Value(v) {
			continue
		}
		stepID, resourceKey, ok := encoded.PairFor(v)
		if !ok {
			continue
		}
		assignment[stepID] = resourceKey
	}
	return assignment
}

func buildSolution(id int, recipe *types.Recipe, matrix types.CandidateMatrix, assignment types.Assignment) types.Solution {
	sol := types.Solution{
		SolutionID:   id,
		Assignment:   assignment,
		StepChoice:   make(map[string]types.Candidate, len(assignment)),
		StepResource: make(map[string]string, len(assignment)),
		StepOrder:    make([]string, 0, len(assignment)),
	}
	for _, step := range recipe.ProcessSteps {
		resourceKey, ok := assignment[step.StepID]
		if !ok {
			continue
		}
		c, _ := matrix.Get(step.StepID, resourceKey)
		sol.StepChoice[step.StepID] = c
		sol.StepResource[step.StepID] = resourceKey
		sol.StepOrder = append(sol.StepOrder, step.StepID)
	}
	return sol
}

// blockModel asserts the negation of the conjunction of literals that were
// true in model, i.e. a single clause disjoining their negations — the
// natural CNF shape for "don't give me this exact assignment again".
func blockModel(cnf *boolsat.CNF, encoded constraint.Encoded, model boolsat.Model) {
	var lits []boolsat.Literal
	for v := boolsat.Var(1); int(v) <= len(model)-1; v++ {
		if !model.Value(v) {
			continue
		}
		if _, _, ok := encoded.PairFor(v); !ok {
			continue
		}
		lits = append(lits, boolsat.Not(v))
	}
	if len(lits) > 0 {
		cnf.AddClause(lits...)
	}
}
