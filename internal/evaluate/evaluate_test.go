package evaluate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmatch/core/internal/evaluate"
	"github.com/plantmatch/core/internal/types"
)

func solution(id int, resourceKey string) types.Solution {
	return types.Solution{
		SolutionID:   id,
		StepResource: map[string]string{"S1": resourceKey},
		StepChoice:   map[string]types.Candidate{"S1": {}},
	}
}

func TestEvaluateSortsAscendingByCompositeScore(t *testing.T) {
	solutions := []types.Solution{solution(1, "resource: R1"), solution(2, "resource: R2")}
	costs := map[string]types.ResourceCost{
		"resource: R1": {Energy: 10, Use: 0, CO2: 0},
		"resource: R2": {Energy: 2, Use: 0, CO2: 0},
	}
	weights := types.Weights{Energy: 1, Use: 1, CO2: 1}

	out := evaluate.Evaluate(solutions, costs, weights)

	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].SolutionID, "resource R2 is cheaper, so its solution ranks first")
	assert.Equal(t, 1, out[1].SolutionID)
	assert.Less(t, out[0].CompositeScore, out[1].CompositeScore)
}

func TestEvaluateSkipsZeroMaximumDimension(t *testing.T) {
	solutions := []types.Solution{solution(1, "resource: R1"), solution(2, "resource: R2")}
	costs := map[string]types.ResourceCost{
		"resource: R1": {Energy: 5, Use: 0, CO2: 0},
		"resource: R2": {Energy: 5, Use: 0, CO2: 0},
	}
	weights := types.Weights{Energy: 1, Use: 1, CO2: 1}

	out := evaluate.Evaluate(solutions, costs, weights)

	for _, s := range out {
		assert.Equal(t, 1.0, s.CompositeScore, "use and co2 maxima are zero and skipped; energy normalizes to 5/5 for both")
	}
}

func TestEvaluateTieBreaksBySolutionID(t *testing.T) {
	solutions := []types.Solution{solution(3, "resource: R1"), solution(1, "resource: R1"), solution(2, "resource: R1")}
	costs := map[string]types.ResourceCost{"resource: R1": {Energy: 1, Use: 1, CO2: 1}}
	weights := types.Weights{Energy: 1, Use: 1, CO2: 1}

	out := evaluate.Evaluate(solutions, costs, weights)

	require.Len(t, out, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{out[0].SolutionID, out[1].SolutionID, out[2].SolutionID})
}

func TestEvaluateResourceMissingFromCostsContributesZero(t *testing.T) {
	solutions := []types.Solution{solution(1, "resource: Unknown")}
	costs := map[string]types.ResourceCost{}
	weights := types.Weights{Energy: 1, Use: 1, CO2: 1}

	out := evaluate.Evaluate(solutions, costs, weights)

	require.Len(t, out, 1)
	assert.Zero(t, out[0].TotalEnergyCost)
	assert.Zero(t, out[0].CompositeScore)
}

func TestEvaluatePreservesSolutionCount(t *testing.T) {
	solutions := []types.Solution{solution(1, "resource: R1"), solution(2, "resource: R2"), solution(3, "resource: R3")}
	costs := map[string]types.ResourceCost{
		"resource: R1": {Energy: 1},
		"resource: R2": {Energy: 2},
		"resource: R3": {Energy: 3},
	}
	out := evaluate.Evaluate(solutions, costs, types.Weights{Energy: 1})
	assert.Len(t, out, len(solutions))
}
