package types

// PropertyMatch records that a step's Parameter was satisfied by a resource's
// Property under a given capability.
type PropertyMatch struct {
	Parameter Parameter
	Property  Property
}

// CapabilityMatch records one capability on a resource that is viable for a
// step, along with the parameter/property pairs that made it viable.
type CapabilityMatch struct {
	CapabilityName string
	Matches        []PropertyMatch
}

// Candidate is the non-absent content of CandidateMatrix[step][resource]: the
// capabilities on that resource that matched the step, in match order.
type Candidate struct {
	Capabilities []CapabilityMatch
}

// CapabilityNames returns the matched capability names in order, the slice
// the spec calls CapNames.
func (c Candidate) CapabilityNames() []string {
	names := make([]string, len(c.Capabilities))
	for i, m := range c.Capabilities {
		names[i] = m.CapabilityName
	}
	return names
}

// HasTransportCapability reports whether any matched capability's name is in
// the fixed transport set.
func (c Candidate) HasTransportCapability() bool {
	for _, m := range c.Capabilities {
		if IsTransportCapabilityName(m.CapabilityName) {
			return true
		}
	}
	return false
}

// TransportCapabilityNames is the fixed set of capability names that signify
// a resource can move material between locations.
var TransportCapabilityNames = map[string]bool{
	"Dosing":    true,
	"Transfer":  true,
	"Discharge": true,
}

// IsTransportCapabilityName reports whether name is one of the fixed
// transport capability names.
func IsTransportCapabilityName(name string) bool {
	return TransportCapabilityNames[name]
}

// CandidateMatrix is the sparse C[i][j] table keyed by StepID then resource
// key. A missing resource key for a step means the pair is absent (no
// decision variable exists for it).
type CandidateMatrix map[string]map[string]Candidate

// NewCandidateMatrix returns an empty matrix ready for population.
func NewCandidateMatrix() CandidateMatrix {
	return make(CandidateMatrix)
}

// Set records a candidate for (stepID, resourceKey).
func (m CandidateMatrix) Set(stepID, resourceKey string, c Candidate) {
	row, ok := m[stepID]
	if !ok {
		row = make(map[string]Candidate)
		m[stepID] = row
	}
	row[resourceKey] = c
}

// Get returns the candidate for (stepID, resourceKey), if present.
func (m CandidateMatrix) Get(stepID, resourceKey string) (Candidate, bool) {
	row, ok := m[stepID]
	if !ok {
		return Candidate{}, false
	}
	c, ok := row[resourceKey]
	return c, ok
}

// ResourcesFor returns the resource keys that are candidates for stepID, in
// no particular order (callers needing determinism should iterate
// CapabilitySet.ResourceKeys() and check Get).
func (m CandidateMatrix) ResourcesFor(stepID string) []string {
	row := m[stepID]
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	return keys
}

// Assignment maps StepID to the resource key chosen for it.
type Assignment map[string]string

// Solution is a complete, accepted assignment enriched with the capability
// chosen (and its matched properties) for each step.
type Solution struct {
	SolutionID   int
	Assignment   Assignment
	StepChoice   map[string]Candidate // StepID -> the Candidate chosen (one resource's worth)
	StepResource map[string]string    // StepID -> resource key, duplicate of Assignment for clarity at call sites

	// StepOrder is the recipe's process-step order, filtered to the steps
	// present in this solution. Go map iteration over StepResource/StepChoice
	// is randomized per-process, so anything that must emit steps in a
	// stable order (flat records, structured solutions) ranges over this
	// instead of the maps directly.
	StepOrder []string
}

// ResourceCost is the per-resource cost entry loaded from the cost sheet.
type ResourceCost struct {
	Energy float64
	Use    float64
	CO2    float64
}

// Weights are the weighted evaluator's per-dimension weights. They are used
// as given; the evaluator does not re-normalize them to sum to 1.
type Weights struct {
	Energy float64
	Use    float64
	CO2    float64
}

// EvaluatedSolution is a Solution plus its computed costs and composite score.
type EvaluatedSolution struct {
	Solution
	TotalEnergyCost   float64
	TotalUseCost      float64
	TotalCO2Footprint float64
	CompositeScore    float64
}
