// Package flow implements the Material-Flow Checker: a deterministic
// dataflow simulation over a recipe's directed material links, confirming
// that every material a process step consumes is demonstrably at that
// step's assigned resource.
package flow

import "github.com/plantmatch/core/internal/types"

// locAnywhere is the sentinel location meaning "not yet pinned to a
// resource" — the spec's "anywhere".
const locAnywhere = ""

// Check runs the Material-Flow Checker over one candidate assignment. It
// returns true iff every link scan completes without a violation.
func Check(recipe *types.Recipe, matrix types.CandidateMatrix, assignment types.Assignment) bool {
	stepIDs := stepIDSet(recipe)
	materialIDs := materialIDSet(recipe)

	loc := make(map[string]string, len(materialIDs))
	for id := range materialIDs {
		loc[id] = locAnywhere
	}

	for _, link := range recipe.DirectedLinks {
		switch {
		case stepIDs[link.FromID] && materialIDs[link.ToID]:
			if !stepProducesMaterial(matrix, assignment, loc, link.FromID, link.ToID) {
				return false
			}
		case materialIDs[link.FromID] && stepIDs[link.ToID]:
			if !stepConsumesMaterial(matrix, assignment, loc, link.FromID, link.ToID) {
				return false
			}
		default:
			// Step->Step and Material->Material links carry no
			// material-flow constraint and are ignored.
		}
	}
	return true
}

func stepProducesMaterial(matrix types.CandidateMatrix, assignment types.Assignment, loc map[string]string, stepID, materialID string) bool {
	r, ok := assignment[stepID]
	if !ok {
		return false
	}
	if isTransportStep(matrix, stepID, r) {
		loc[materialID] = locAnywhere
	} else {
		loc[materialID] = r
	}
	return true
}

func stepConsumesMaterial(matrix types.CandidateMatrix, assignment types.Assignment, loc map[string]string, materialID, stepID string) bool {
	r, ok := assignment[stepID]
	if !ok {
		return false
	}

	if isTransportStep(matrix, stepID, r) {
		// A transport step can pick material up from wherever it is (a
		// concrete resource, same or different from r, or unlocated); the
		// spec defines no rejection condition for transport consumption.
		return true
	}

	current := loc[materialID]
	if current != locAnywhere && current != r {
		return false
	}
	loc[materialID] = r
	return true
}

func isTransportStep(matrix types.CandidateMatrix, stepID, resourceKey string) bool {
	c, ok := matrix.Get(stepID, resourceKey)
	if !ok {
		return false
	}
	return c.HasTransportCapability()
}

func stepIDSet(recipe *types.Recipe) map[string]bool {
	set := make(map[string]bool, len(recipe.ProcessSteps))
	for _, s := range recipe.ProcessSteps {
		set[s.StepID] = true
	}
	return set
}

func materialIDSet(recipe *types.Recipe) map[string]bool {
	set := make(map[string]bool, len(recipe.Inputs)+len(recipe.Intermediates)+len(recipe.Outputs))
	for _, m := range recipe.Inputs {
		set[m.MaterialID] = true
	}
	for _, m := range recipe.Intermediates {
		set[m.MaterialID] = true
	}
	for _, m := range recipe.Outputs {
		set[m.MaterialID] = true
	}
	return set
}
