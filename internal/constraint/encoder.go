// Package constraint is the Constraint Encoder: it turns a candidate matrix
// into a CNF boolean-satisfiability problem — one decision variable per
// viable (step, resource) pair, per-step uniqueness, and static transport
// reachability — ready for the search loop to hand to the SAT backend.
package constraint

import (
	"github.com/plantmatch/core/internal/boolsat"
	"github.com/plantmatch/core/internal/types"
)

// Encoded is the result of encoding a recipe's candidate matrix: the CNF
// clause set plus the variable registry the search loop needs to turn a
// model back into a StepID -> ResourceKey assignment.
type Encoded struct {
	CNF CNF

	// Unsat is true when the encoder itself detects an unsatisfiable
	// problem (a step has no candidates at all), per the spec's
	// EmptyCandidates error kind. The search loop should treat this the
	// same as the backend reporting UNSAT on the first ask.
	Unsat bool

	varOf  map[string]map[string]boolsat.Var // stepID -> resourceKey -> var
	pairOf map[boolsat.Var]pair
}

type pair struct {
	stepID      string
	resourceKey string
}

// CNF is a type alias kept local to this package's public surface so callers
// don't need to import boolsat just to pass Encoded.CNF to the search loop.
type CNF = boolsat.CNF

// VarFor returns the decision variable for (stepID, resourceKey), if one was
// created (i.e. the pair was a viable candidate).
func (e Encoded) VarFor(stepID, resourceKey string) (boolsat.Var, bool) {
	row, ok := e.varOf[stepID]
	if !ok {
		return 0, false
	}
	v, ok := row[resourceKey]
	return v, ok
}

// PairFor returns the (stepID, resourceKey) a variable was created for.
func (e Encoded) PairFor(v boolsat.Var) (stepID, resourceKey string, ok bool) {
	p, ok := e.pairOf[v]
	return p.stepID, p.resourceKey, ok
}

// Encode builds the CNF for a recipe's candidate matrix. caps is required in
// addition to the matrix because the transport-reachability constraint
// depends on a resource's full declared capability set, not only the
// capabilities that happened to match some step.
func Encode(recipe *types.Recipe, matrix types.CandidateMatrix, caps types.CapabilitySet) Encoded {
	enc := Encoded{
		varOf:  make(map[string]map[string]boolsat.Var),
		pairOf: make(map[boolsat.Var]pair),
	}

	resourceOrder := caps.ResourceKeys()
	nextVar := boolsat.Var(1)

	// 1. Introduce one variable per viable (step, resource) pair, in stable
	// step-then-resource order so variable numbering (and therefore any
	// backend-internal tie-breaking) is deterministic across runs.
	for _, step := range recipe.ProcessSteps {
		row := make(map[string]boolsat.Var)
		for _, resourceKey := range resourceOrder {
			if _, ok := matrix.Get(step.StepID, resourceKey); !ok {
				continue
			}
			row[resourceKey] = nextVar
			enc.pairOf[nextVar] = pair{stepID: step.StepID, resourceKey: resourceKey}
			nextVar++
		}
		enc.varOf[step.StepID] = row
	}
	enc.CNF.NumVars = int(nextVar) - 1

	// 2. Transport reachability and uniqueness.
	for _, step := range recipe.ProcessSteps {
		row := enc.varOf[step.StepID]
		if len(row) == 0 {
			// No candidates at all: the problem is unsatisfiable. Still
			// build the rest of the CNF for diagnostic completeness, but
			// flag it so the search loop can short-circuit to UNSAT
			// without asking the backend.
			enc.Unsat = true
			continue
		}

		var stepVars []boolsat.Var
		for _, resourceKey := range resourceOrder {
			v, ok := row[resourceKey]
			if !ok {
				continue
			}
			stepVars = append(stepVars, v)

			if needsTransferOnto(recipe, matrix, step.StepID, resourceKey) && !hasTransportCapability(caps, resourceKey) {
				enc.CNF.AddClause(boolsat.Not(v))
			}
		}

		addExactlyOne(&enc.CNF, stepVars)
	}

	return enc
}

// addExactlyOne asserts sum(vars) == 1 via the standard pairwise
// mutual-exclusion clauses plus one at-least-one clause. This is adequate at
// the per-step candidate-set sizes this domain produces (one resource
// picked per step, not a global combinatorial blow-up).
func addExactlyOne(cnf *CNF, vars []boolsat.Var) {
	if len(vars) == 0 {
		return
	}
	atLeastOne := make([]boolsat.Literal, len(vars))
	for i, v := range vars {
		atLeastOne[i] = boolsat.Lit(v)
	}
	cnf.AddClause(atLeastOne...)

	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			cnf.AddClause(boolsat.Not(vars[i]), boolsat.Not(vars[j]))
		}
	}
}

// needsTransferOnto reports whether step has a predecessor step whose
// candidate resources include some resource other than resourceKey — i.e. a
// predecessor could run elsewhere, so material might need to move onto
// resourceKey for this step to consume it.
func needsTransferOnto(recipe *types.Recipe, matrix types.CandidateMatrix, stepID, resourceKey string) bool {
	for _, predID := range recipe.PredecessorSteps(stepID) {
		for _, k := range matrix.ResourcesFor(predID) {
			if k != resourceKey {
				return true
			}
		}
	}
	return false
}

func hasTransportCapability(caps types.CapabilitySet, resourceKey string) bool {
	for _, entry := range caps.Capabilities[resourceKey] {
		if types.IsTransportCapabilityName(entry.CapabilityName) {
			return true
		}
	}
	return false
}
