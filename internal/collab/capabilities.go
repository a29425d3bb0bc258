package collab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/plantmatch/core/internal/diagnostics"
	"github.com/plantmatch/core/internal/types"
)

// capabilitiesExtensions is the fixed set of file extensions parse_capabilities
// considers (spec §6); anything else in the directory is ignored outright,
// not logged.
var capabilitiesExtensions = map[string]bool{
	".xml":   true,
	".aasx":  true,
	".json":  true,
}

// ParseCapabilities reads one resource's capability declarations from a
// single file (spec §6: parse_capabilities). Only the JSON rendering is
// implemented here; XML/AASX parsing is a separate collaborator concern the
// spec carves out of the core's scope entirely.
func ParseCapabilities(path string) ([]types.CapabilityEntry, error) {
	// #nosec G304 -- path is an operator-supplied capability file, not untrusted user data
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("collab: read capabilities %s: %w", path, err)
	}
	var entries []types.CapabilityEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("collab: parse capabilities %s: %w", path, err)
	}
	return entries, nil
}

// LoadCapabilities walks directory, calling ParseCapabilities on every file
// whose extension is in capabilitiesExtensions, and collects them into a
// CapabilitySet keyed "resource: <filename-stem>". Per-file failures are
// logged to sink and skipped rather than aborting the run (spec §7: the
// core catches only around per-file collaborator calls when building the
// capability map). Files are parsed concurrently via an errgroup, since
// parsing one resource's declarations is independent of every other's; the
// resource order recorded on the returned CapabilitySet is the sorted
// filename order regardless of which goroutine finishes first.
func LoadCapabilities(directory string, sink diagnostics.Sink) (types.CapabilitySet, error) {
	if sink == nil {
		sink = diagnostics.NewRecording()
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return types.CapabilitySet{}, fmt.Errorf("collab: read capability directory %s: %w", directory, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if capabilitiesExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	results := make([][]types.CapabilityEntry, len(names))
	errs := make([]error, len(names))

	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			path := filepath.Join(directory, name)
			declared, err := ParseCapabilities(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = declared
			return nil
		})
	}
	_ = g.Wait() // parse errors are carried per-file in errs, not returned here

	caps := types.CapabilitySet{Capabilities: make(types.ResourceCapabilities, len(names))}
	for i, name := range names {
		if errs[i] != nil {
			sink.Warnf("skipping capability file %s: %v", name, errs[i])
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		resourceKey := "resource: " + stem
		caps.Capabilities[resourceKey] = results[i]
		caps.Order = append(caps.Order, resourceKey)
	}
	return caps, nil
}
