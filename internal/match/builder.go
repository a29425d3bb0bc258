package match

import "github.com/plantmatch/core/internal/types"

// BuildCandidateMatrix is the Compatibility Builder: for every (step,
// resource) pair it tests the semantic, property, and precondition
// predicates in sequence, populating the sparse candidate matrix. Rejected
// pairs simply leave no entry; the builder never returns an error, matching
// the spec's "none are raised" error policy for this stage.
//
// Resources are visited in caps.ResourceKeys() order (the collaborator's
// original resource order); it only affects the order candidates are
// discovered, not which pairs end up viable, but keeping it stable keeps
// later stages (which do depend on order) deterministic end to end.
func BuildCandidateMatrix(recipe *types.Recipe, caps types.CapabilitySet, log Logger) types.CandidateMatrix {
	if log == nil {
		log = nopLogger{}
	}
	matrix := types.NewCandidateMatrix()
	warned := newWarnedRangeAndDiscrete()

	for _, step := range recipe.ProcessSteps {
		for _, resourceKey := range caps.ResourceKeys() {
			entries := caps.Capabilities[resourceKey]
			var matched []types.CapabilityMatch

			for _, cap := range entries {
				if !semanticMatch(cap.CapabilityID, cap.GeneralizedBy, step.SemanticDescription) {
					continue
				}
				ok, propMatches := propertiesCompatible(step, cap, resourceKey, log, warned)
				if !ok {
					continue
				}
				if !preconditionsSatisfied(recipe, step, cap) {
					continue
				}
				matched = append(matched, types.CapabilityMatch{
					CapabilityName: cap.CapabilityName,
					Matches:        propMatches,
				})
			}

			if len(matched) > 0 {
				matrix.Set(step.StepID, resourceKey, types.Candidate{Capabilities: matched})
			}
		}
	}

	return matrix
}
