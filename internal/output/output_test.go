package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmatch/core/internal/output"
	"github.com/plantmatch/core/internal/types"
)

func TestFlatRecordsInsertsSpacerBetweenSolutionsOnly(t *testing.T) {
	solutions := []types.Solution{
		{SolutionID: 1, StepResource: map[string]string{"S1": "resource: R1"}, StepChoice: map[string]types.Candidate{"S1": {}}, StepOrder: []string{"S1"}},
		{SolutionID: 2, StepResource: map[string]string{"S1": "resource: R2"}, StepChoice: map[string]types.Candidate{"S1": {}}, StepOrder: []string{"S1"}},
	}

	records := output.FlatRecords(solutions)

	require.Len(t, records, 3)
	assert.False(t, records[0].IsSpacer())
	assert.True(t, records[1].IsSpacer())
	assert.Equal(t, 1, records[1].SolutionID)
	assert.False(t, records[2].IsSpacer())
}

func TestFlatRecordsNoSpacerAfterLastSolution(t *testing.T) {
	solutions := []types.Solution{
		{SolutionID: 1, StepResource: map[string]string{"S1": "resource: R1"}, StepChoice: map[string]types.Candidate{"S1": {}}, StepOrder: []string{"S1"}},
	}
	records := output.FlatRecords(solutions)
	require.Len(t, records, 1)
	assert.False(t, records[0].IsSpacer())
}

func TestFlatRecordsEvaluatedCarriesScoreOnStepRowsOnly(t *testing.T) {
	solutions := []types.EvaluatedSolution{
		{
			Solution:       types.Solution{SolutionID: 1, StepResource: map[string]string{"S1": "resource: R1"}, StepChoice: map[string]types.Candidate{"S1": {}}, StepOrder: []string{"S1"}},
			CompositeScore: 0.5,
		},
	}
	records := output.FlatRecordsEvaluated(solutions)
	require.Len(t, records, 1)
	assert.True(t, records[0].Evaluated)
	assert.Equal(t, 0.5, records[0].CompositeScore)
}

func rangeProperty() types.Property {
	min, max := 1.0, 2.0
	return types.Property{PropertyID: "p1", Value: types.ValueDescriptor{Kind: types.ValueRange, Min: &min, Max: &max}}
}

func TestStructuredSolutionsTagsValueKinds(t *testing.T) {
	candidate := types.Candidate{Capabilities: []types.CapabilityMatch{{
		CapabilityName: "Cut",
		Matches: []types.PropertyMatch{
			{Property: rangeProperty()},
			{Property: types.Property{PropertyID: "p2", Value: types.ValueDescriptor{Kind: types.ValueDiscreteNumeric, Numeric: []float64{5}}}},
			{Property: types.Property{PropertyID: "p3", Value: types.ValueDescriptor{Kind: types.ValueDiscreteNumeric, Numeric: []float64{5, 6}}}},
			{Property: types.Property{PropertyID: "p4", Value: types.ValueDescriptor{Kind: types.ValueUnspecified}}},
		},
	}}}
	solutions := []types.Solution{{
		SolutionID:   1,
		StepResource: map[string]string{"S1": "resource: R1"},
		StepChoice:   map[string]types.Candidate{"S1": candidate},
		StepOrder:    []string{"S1"},
	}}

	structured := output.StructuredSolutions(solutions)

	require.Len(t, structured, 1)
	require.Len(t, structured[0].Steps, 1)
	props := structured[0].Steps[0].Properties
	require.Len(t, props, 4)

	byID := make(map[string]output.PropertyValue, len(props))
	for _, p := range props {
		byID[p.PropertyID] = p
	}
	assert.Equal(t, output.ValueRange, byID["p1"].Kind)
	assert.Equal(t, output.ValueExact, byID["p2"].Kind)
	assert.Equal(t, output.ValueDiscreteSet, byID["p3"].Kind)
	assert.Equal(t, output.ValueUnspecified, byID["p4"].Kind)
}

func TestStructuredSolutionsDedupesRepeatedPropertyID(t *testing.T) {
	prop := types.Property{PropertyID: "p1", Value: types.ValueDescriptor{Kind: types.ValueUnspecified}}
	candidate := types.Candidate{Capabilities: []types.CapabilityMatch{
		{CapabilityName: "Cut", Matches: []types.PropertyMatch{{Property: prop}}},
		{CapabilityName: "Mill", Matches: []types.PropertyMatch{{Property: prop}}},
	}}
	solutions := []types.Solution{{
		SolutionID:   1,
		StepResource: map[string]string{"S1": "resource: R1"},
		StepChoice:   map[string]types.Candidate{"S1": candidate},
		StepOrder:    []string{"S1"},
	}}

	structured := output.StructuredSolutions(solutions)
	require.Len(t, structured[0].Steps[0].Properties, 1)
}
