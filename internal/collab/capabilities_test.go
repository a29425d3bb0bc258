package collab_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmatch/core/internal/collab"
	"github.com/plantmatch/core/internal/diagnostics"
)

func TestLoadCapabilitiesKeysByFilenameStem(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Mixer1.json", `[{"capability_name": "Mix", "capability_id": "urn:x#Mix"}]`)
	writeFile(t, dir, "Mixer2.json", `[{"capability_name": "Mix", "capability_id": "urn:x#Mix"}]`)
	writeFile(t, dir, "notes.txt", "ignored")

	caps, err := collab.LoadCapabilities(dir, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"resource: Mixer1", "resource: Mixer2"}, caps.Order)
	assert.Len(t, caps.Capabilities["resource: Mixer1"], 1)
}

func TestLoadCapabilitiesDegradesPerFileFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Good.json", `[{"capability_name": "Mix"}]`)
	writeFile(t, dir, "Bad.json", `not json`)

	sink := diagnostics.NewRecording()
	caps, err := collab.LoadCapabilities(dir, sink)
	require.NoError(t, err)

	assert.Contains(t, caps.Order, "resource: Good")
	assert.NotContains(t, caps.Order, "resource: Bad")
	assert.NotEmpty(t, sink.Warn)
}

func TestLoadCapabilitiesMissingDirectory(t *testing.T) {
	_, err := collab.LoadCapabilities(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestParseCapabilitiesMissingFile(t *testing.T) {
	_, err := collab.ParseCapabilities(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseCapabilitiesValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "R.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"capability_name": "Cut", "capability_id": "urn:x#Cut"}]`), 0o644))

	entries, err := collab.ParseCapabilities(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cut", entries[0].CapabilityName)
}
