// Package evaluate implements the Weighted Evaluator: it scores accepted
// solutions by a normalized weighted sum of energy, usage and CO2 costs and
// sorts them ascending, grounded on the teacher's internal/resolver.go
// scored-candidate-then-sort pattern.
package evaluate

import (
	"sort"

	"github.com/plantmatch/core/internal/types"
)

// Evaluate scores every solution in solutions against costs and weights,
// returning them sorted ascending by composite score (lower is better),
// ties broken by solution_id ascending. The evaluator is total: it never
// fails on well-formed input, and a resource absent from costs simply
// contributes zero to every dimension.
func Evaluate(solutions []types.Solution, costs map[string]types.ResourceCost, weights types.Weights) []types.EvaluatedSolution {
	out := make([]types.EvaluatedSolution, len(solutions))
	for i, s := range solutions {
		e, u, c := dimensionTotals(s, costs)
		out[i] = types.EvaluatedSolution{
			Solution:          s,
			TotalEnergyCost:   e,
			TotalUseCost:      u,
			TotalCO2Footprint: c,
		}
	}

	eMax, uMax, cMax := maxima(out)
	for i := range out {
		out[i].CompositeScore = compositeScore(out[i], weights, eMax, uMax, cMax)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompositeScore != out[j].CompositeScore {
			return out[i].CompositeScore < out[j].CompositeScore
		}
		return out[i].SolutionID < out[j].SolutionID
	})
	return out
}

func dimensionTotals(s types.Solution, costs map[string]types.ResourceCost) (energy, use, co2 float64) {
	for _, resourceKey := range s.StepResource {
		cost, ok := costs[resourceKey]
		if !ok {
			continue
		}
		energy += cost.Energy
		use += cost.Use
		co2 += cost.CO2
	}
	return
}

func maxima(solutions []types.EvaluatedSolution) (eMax, uMax, cMax float64) {
	for _, s := range solutions {
		if s.TotalEnergyCost > eMax {
			eMax = s.TotalEnergyCost
		}
		if s.TotalUseCost > uMax {
			uMax = s.TotalUseCost
		}
		if s.TotalCO2Footprint > cMax {
			cMax = s.TotalCO2Footprint
		}
	}
	return
}

// compositeScore applies the spec's per-dimension-max normalization,
// skipping any dimension whose maximum across the whole solution set is
// zero (a zero maximum means every solution is equal on that dimension, so
// it cannot discriminate between them, and dividing by it would divide by
// zero).
func compositeScore(s types.EvaluatedSolution, w types.Weights, eMax, uMax, cMax float64) float64 {
	var score float64
	if eMax != 0 {
		score += w.Energy * s.TotalEnergyCost / eMax
	}
	if uMax != 0 {
		score += w.Use * s.TotalUseCost / uMax
	}
	if cMax != 0 {
		score += w.CO2 * s.TotalCO2Footprint / cMax
	}
	return score
}
