package collab_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmatch/core/internal/collab"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseRecipeValidDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.json", `{
		"process_steps": [{"step_id": "S1", "semantic_description": "urn:x#Cut"}],
		"inputs": [{"material_id": "M1", "key": "Steel", "unit_of_measure": "kg", "quantity": 5}],
		"directed_links": [{"from_id": "M1", "to_id": "S1"}]
	}`)

	recipe, err := collab.ParseRecipe(path)
	require.NoError(t, err)
	require.Len(t, recipe.ProcessSteps, 1)
	assert.Equal(t, "S1", recipe.ProcessSteps[0].StepID)
	assert.Len(t, recipe.DirectedLinks, 1)
}

func TestParseRecipeRejectsDuplicateStepID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.json", `{
		"process_steps": [{"step_id": "S1"}, {"step_id": "S1"}]
	}`)

	_, err := collab.ParseRecipe(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate step ID")
}

func TestParseRecipeRejectsDanglingLink(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.json", `{
		"process_steps": [{"step_id": "S1"}],
		"directed_links": [{"from_id": "M-missing", "to_id": "S1"}]
	}`)

	_, err := collab.ParseRecipe(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ID")
}

func TestParseRecipeMissingFile(t *testing.T) {
	_, err := collab.ParseRecipe(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
