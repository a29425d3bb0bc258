// Package collab implements the external collaborators the core consumes
// (spec §6): recipe parsing, capability-directory parsing, and cost-sheet
// loading. None of this is core logic — it is out of scope for the matching
// engine itself — but the core's Run entrypoint needs something to call, so
// this package supplies a JSON-based rendering of each collaborator,
// grounded on the teacher's internal/jsonl reader idiom (buffered scan,
// per-line/per-file error wrapping).
package collab

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/plantmatch/core/internal/types"
)

// recipeDocument is the on-disk JSON shape parse_recipe reads. Field names
// mirror spec §3's Recipe data model.
type recipeDocument struct {
	ProcessSteps  []types.Step         `json:"process_steps"`
	Inputs        []types.Material     `json:"inputs"`
	Intermediates []types.Material     `json:"intermediates"`
	Outputs       []types.Material     `json:"outputs"`
	DirectedLinks []types.DirectedLink `json:"directed_links"`
}

// ParseRecipe reads a recipe document from path (spec §6: parse_recipe).
// Missing or ill-formed JSON surfaces as a collaborator failure before the
// core is invoked.
func ParseRecipe(path string) (types.Recipe, error) {
	// #nosec G304 -- path is an operator-supplied input file, not untrusted user data
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Recipe{}, fmt.Errorf("collab: read recipe %s: %w", path, err)
	}

	var doc recipeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Recipe{}, fmt.Errorf("collab: parse recipe %s: %w", path, err)
	}

	recipe := types.Recipe{
		ProcessSteps:  doc.ProcessSteps,
		Inputs:        doc.Inputs,
		Intermediates: doc.Intermediates,
		Outputs:       doc.Outputs,
		DirectedLinks: doc.DirectedLinks,
	}
	if err := validateRecipe(recipe); err != nil {
		return types.Recipe{}, fmt.Errorf("collab: recipe %s: %w", path, err)
	}
	return recipe, nil
}

// validateRecipe checks the two invariants spec §3 names: unique IDs, and
// every DirectedLink endpoint exists.
func validateRecipe(recipe types.Recipe) error {
	ids := make(map[string]bool)
	for _, s := range recipe.ProcessSteps {
		if ids[s.StepID] {
			return fmt.Errorf("duplicate step ID %q", s.StepID)
		}
		ids[s.StepID] = true
	}
	for _, group := range [][]types.Material{recipe.Inputs, recipe.Intermediates, recipe.Outputs} {
		for _, m := range group {
			if ids[m.MaterialID] {
				return fmt.Errorf("duplicate material ID %q", m.MaterialID)
			}
			ids[m.MaterialID] = true
		}
	}
	for _, link := range recipe.DirectedLinks {
		if !ids[link.FromID] {
			return fmt.Errorf("directed link references unknown ID %q", link.FromID)
		}
		if !ids[link.ToID] {
			return fmt.Errorf("directed link references unknown ID %q", link.ToID)
		}
	}
	return nil
}
