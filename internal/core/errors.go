// Package core wires the Compatibility Builder, Constraint Encoder, Search
// Loop and Output Shaping into the single Run entrypoint the spec's external
// interface names, plus the propagation policy of §7: the core aborts on its
// own logic errors and degrades only per-file collaborator failures to
// warnings.
package core

import (
	"errors"
	"fmt"
)

// ErrUnsatisfiableProblem names the UnsatisfiableProblem error kind. Run
// does not return it: UNSAT is reported through Result.Unsat, which is set
// both when the solver says UNSAT before any acceptance and when the
// encoder already knew some step had no candidates.
var ErrUnsatisfiableProblem = errors.New("core: unsatisfiable problem")

// ErrCollaboratorFailure wraps a failure from a collaborator call (recipe
// parsing, capability parsing, cost loading) that the core could not
// degrade to a warning and must abort the run over.
type ErrCollaboratorFailure struct {
	Stage string
	Err   error
}

func (e *ErrCollaboratorFailure) Error() string {
	return fmt.Sprintf("core: collaborator failure during %s: %v", e.Stage, e.Err)
}

func (e *ErrCollaboratorFailure) Unwrap() error { return e.Err }

// NewCollaboratorFailure builds an ErrCollaboratorFailure for the named
// pipeline stage ("parse_recipe", "parse_capabilities", "load_costs").
func NewCollaboratorFailure(stage string, err error) error {
	return &ErrCollaboratorFailure{Stage: stage, Err: err}
}
