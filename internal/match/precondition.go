package match

import "github.com/plantmatch/core/internal/types"

// preconditionsSatisfied implements the spec's "Precondition check": every
// "Pre" property_constraint declared anywhere on the capability must be
// satisfied by at least one of the step's input materials (drawn from
// Inputs and Intermediates, per the recipe's DirectedLinks). A malformed
// constraint expression counts as unsatisfied for that one constraint.
func preconditionsSatisfied(recipe *types.Recipe, step types.Step, cap types.CapabilityEntry) bool {
	inputMaterials := recipe.InputMaterialsFor(step.StepID)

	for _, prop := range cap.Properties {
		for _, constraint := range prop.Constraints {
			if constraint.ConditionalType != types.ConditionalPre {
				continue
			}
			if !anyMaterialSatisfies(inputMaterials, constraint) {
				return false
			}
		}
	}
	return true
}

func anyMaterialSatisfies(materials []types.Material, constraint types.PropertyConstraint) bool {
	expr, err := ParseExpr(constraint.ConstraintValue)
	if err != nil {
		return false
	}
	for _, m := range materials {
		if m.Key != constraint.ConstraintID {
			continue
		}
		if m.UnitOfMeasure != constraint.ConstraintUnit {
			continue
		}
		if expr.SatisfiesComparison(m.Quantity) {
			return true
		}
	}
	return false
}
