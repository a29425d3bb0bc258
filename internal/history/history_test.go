package history_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmatch/core/internal/history"
)

func TestAppendThenReadAllRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	score := 0.42

	entries := []history.Entry{
		{RecipePath: "a.json", SolutionCount: 1, AttemptsMade: 3},
		{RecipePath: "b.json", SolutionCount: 0, Unsat: true, BestScore: &score},
	}
	for _, e := range entries {
		require.NoError(t, history.Append(path, e))
	}

	got, err := history.ReadAll(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.json", got[0].RecipePath)
	assert.Equal(t, "b.json", got[1].RecipePath)
	require.NotNil(t, got[1].BestScore)
	assert.Equal(t, 0.42, *got[1].BestScore)
}

func TestReadAllMissingFileReturnsEmptyNotError(t *testing.T) {
	entries, err := history.ReadAll(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendCreatesFileIfAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.jsonl")
	require.NoError(t, history.Append(path, history.Entry{RecipePath: "x.json"}))

	entries, err := history.ReadAll(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
