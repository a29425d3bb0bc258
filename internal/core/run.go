package core

import (
	"context"

	"github.com/plantmatch/core/internal/constraint"
	"github.com/plantmatch/core/internal/diagnostics"
	"github.com/plantmatch/core/internal/match"
	"github.com/plantmatch/core/internal/output"
	"github.com/plantmatch/core/internal/search"
	"github.com/plantmatch/core/internal/types"
)

// Result is everything Run produces: the flat record sequence always
// present, the structured solutions present iff opts.GenerateStructured was
// set, and enough of the search loop's own bookkeeping for a caller to tell
// an empty-but-successful run from one that hit a bound.
type Result struct {
	FlatRecords         []output.FlatRecord
	StructuredSolutions []output.StructuredSolution
	Solutions           []types.Solution

	AttemptsMade int
	Unsat        bool
	Exhausted    bool
	Cancelled    bool
}

// Run is the core's single entrypoint (spec §6): it builds the candidate
// matrix, encodes it, runs the bounded search loop, and shapes the output.
// Run has no error return: EmptyCandidates, UnsatisfiableProblem and
// SearchExhausted (spec §7) are reported via the log sink and the Result
// flags, not thrown. CollaboratorFailure cannot arise inside Run since
// recipe/capabilities are supplied already parsed — callers that parse
// inline should wrap their own collaborator errors with
// NewCollaboratorFailure before this point.
func Run(ctx context.Context, recipe *types.Recipe, capabilities types.CapabilitySet, opts RunOptions) Result {
	sink := opts.LogSink
	if sink == nil {
		sink = diagnostics.NewRecording()
	}

	matrix := match.BuildCandidateMatrix(recipe, capabilities, sink)
	encoded := constraint.Encode(recipe, matrix, capabilities)

	searchResult := search.Run(ctx, recipe, matrix, encoded, search.Options{
		Mode:          opts.searchMode(),
		AttemptBudget: opts.AttemptBudget,
		Deadline:      opts.Deadline,
		Sink:          sink,
		Telemetry:     opts.Telemetry,
	})

	result := Result{
		Solutions:    searchResult.Solutions,
		AttemptsMade: searchResult.AttemptsMade,
		Unsat:        searchResult.Unsat,
		Exhausted:    searchResult.Exhausted,
		Cancelled:    searchResult.Cancelled,
		FlatRecords:  output.FlatRecords(searchResult.Solutions),
	}
	if opts.GenerateStructured {
		result.StructuredSolutions = output.StructuredSolutions(searchResult.Solutions)
	}

	if result.Unsat && len(result.Solutions) == 0 {
		sink.Infof("run produced no solutions: problem is unsatisfiable")
	}
	if result.Exhausted {
		sink.Warnf("search attempt budget or deadline exhausted; returning %d accepted solution(s)", len(result.Solutions))
	}

	return result
}
