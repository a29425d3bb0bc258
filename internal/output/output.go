// Package output implements Output Shaping (spec §4.5): it turns accepted
// (and, optionally, evaluated) solutions into the two consumption shapes the
// core exposes — a flat per-(solution, step) record sequence for GUI
// consumption, with empty spacer records between solutions, and a
// structured per-solution object for export/integration consumption,
// grounded on the original solution_to_json value_type tagging.
package output

import "github.com/plantmatch/core/internal/types"

// FlatRecord is one row of the flat GUI-facing sequence: either a step row
// or a spacer (StepID == "") inserted between solutions.
type FlatRecord struct {
	SolutionID         int
	StepID             string
	ResourceKey        string
	MatchedCapabilities []string

	// Populated only when the solution was evaluated.
	Evaluated         bool
	TotalEnergyCost   float64
	TotalUseCost      float64
	TotalCO2Footprint float64
	CompositeScore    float64
}

// IsSpacer reports whether r is an empty spacer row rather than a step row.
func (r FlatRecord) IsSpacer() bool {
	return r.StepID == ""
}

// ValueKind mirrors types.ValueKind in the export vocabulary the spec names:
// "exact", "discrete_set", "range", or "unspecified".
type ValueKind string

const (
	ValueExact       ValueKind = "exact"
	ValueDiscreteSet ValueKind = "discrete_set"
	ValueRange       ValueKind = "range"
	ValueUnspecified ValueKind = "unspecified"
)

// PropertyValue describes the value semantics of one matched property, for
// export consumers that need more than "it matched".
type PropertyValue struct {
	PropertyID string
	Kind       ValueKind
	Min        *float64
	Max        *float64
	Numeric    []float64
	Literal    []string
}

// StructuredStep is one step's assignment within a structured solution.
type StructuredStep struct {
	StepID       string
	ResourceKey  string
	Capabilities []string
	Properties   []PropertyValue
}

// StructuredSolution is the export/integration-facing shape for one
// solution: every matched capability property, tagged with its value kind.
type StructuredSolution struct {
	SolutionID int
	Steps      []StructuredStep

	Evaluated         bool
	TotalEnergyCost   float64
	TotalUseCost      float64
	TotalCO2Footprint float64
	CompositeScore    float64
}

// FlatRecords builds the flat GUI-facing record sequence from accepted
// solutions, in solution_id order, with an empty spacer record after each
// solution except the last.
func FlatRecords(solutions []types.Solution) []FlatRecord {
	var records []FlatRecord
	for i, s := range solutions {
		records = append(records, flatRecordsForSolution(s)...)
		if i != len(solutions)-1 {
			records = append(records, FlatRecord{SolutionID: s.SolutionID})
		}
	}
	return records
}

// FlatRecordsEvaluated is FlatRecords enriched with per-solution cost and
// score totals, keyed by solution_id.
func FlatRecordsEvaluated(solutions []types.EvaluatedSolution) []FlatRecord {
	var records []FlatRecord
	for i, s := range solutions {
		stepRecords := flatRecordsForSolution(s.Solution)
		for j := range stepRecords {
			stepRecords[j].Evaluated = true
			stepRecords[j].TotalEnergyCost = s.TotalEnergyCost
			stepRecords[j].TotalUseCost = s.TotalUseCost
			stepRecords[j].TotalCO2Footprint = s.TotalCO2Footprint
			stepRecords[j].CompositeScore = s.CompositeScore
		}
		records = append(records, stepRecords...)
		if i != len(solutions)-1 {
			records = append(records, FlatRecord{SolutionID: s.SolutionID})
		}
	}
	return records
}

func flatRecordsForSolution(s types.Solution) []FlatRecord {
	records := make([]FlatRecord, 0, len(s.StepOrder))
	for _, stepID := range s.StepOrder {
		records = append(records, FlatRecord{
			SolutionID:          s.SolutionID,
			StepID:               stepID,
			ResourceKey:          s.StepResource[stepID],
			MatchedCapabilities: s.StepChoice[stepID].CapabilityNames(),
		})
	}
	return records
}

// StructuredSolutions builds the export-facing structured object sequence
// from accepted solutions.
func StructuredSolutions(solutions []types.Solution) []StructuredSolution {
	out := make([]StructuredSolution, len(solutions))
	for i, s := range solutions {
		out[i] = structuredSolution(s)
	}
	return out
}

// StructuredSolutionsEvaluated is StructuredSolutions enriched with
// per-solution cost and score totals.
func StructuredSolutionsEvaluated(solutions []types.EvaluatedSolution) []StructuredSolution {
	out := make([]StructuredSolution, len(solutions))
	for i, s := range solutions {
		ss := structuredSolution(s.Solution)
		ss.Evaluated = true
		ss.TotalEnergyCost = s.TotalEnergyCost
		ss.TotalUseCost = s.TotalUseCost
		ss.TotalCO2Footprint = s.TotalCO2Footprint
		ss.CompositeScore = s.CompositeScore
		out[i] = ss
	}
	return out
}

func structuredSolution(s types.Solution) StructuredSolution {
	steps := make([]StructuredStep, 0, len(s.StepOrder))
	for _, stepID := range s.StepOrder {
		candidate := s.StepChoice[stepID]
		steps = append(steps, StructuredStep{
			StepID:       stepID,
			ResourceKey:  s.StepResource[stepID],
			Capabilities: candidate.CapabilityNames(),
			Properties:   propertyValues(candidate),
		})
	}
	return StructuredSolution{SolutionID: s.SolutionID, Steps: steps}
}

func propertyValues(c types.Candidate) []PropertyValue {
	var values []PropertyValue
	seen := make(map[string]bool)
	for _, capMatch := range c.Capabilities {
		for _, pm := range capMatch.Matches {
			if seen[pm.Property.PropertyID] {
				continue
			}
			seen[pm.Property.PropertyID] = true
			values = append(values, propertyValue(pm.Property))
		}
	}
	return values
}

func propertyValue(p types.Property) PropertyValue {
	switch p.Value.Kind {
	case types.ValueRange:
		return PropertyValue{PropertyID: p.PropertyID, Kind: ValueRange, Min: p.Value.Min, Max: p.Value.Max}
	case types.ValueDiscreteNumeric:
		if len(p.Value.Numeric) == 1 {
			return PropertyValue{PropertyID: p.PropertyID, Kind: ValueExact, Numeric: p.Value.Numeric}
		}
		return PropertyValue{PropertyID: p.PropertyID, Kind: ValueDiscreteSet, Numeric: p.Value.Numeric}
	case types.ValueDiscreteLiteral:
		if len(p.Value.Literal) == 1 {
			return PropertyValue{PropertyID: p.PropertyID, Kind: ValueExact, Literal: p.Value.Literal}
		}
		return PropertyValue{PropertyID: p.PropertyID, Kind: ValueDiscreteSet, Literal: p.Value.Literal}
	default:
		return PropertyValue{PropertyID: p.PropertyID, Kind: ValueUnspecified}
	}
}
