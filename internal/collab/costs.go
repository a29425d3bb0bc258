package collab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plantmatch/core/internal/types"
)

// costDocument is the on-disk JSON shape for one resource's cost sheet.
type costDocument struct {
	Energy float64 `json:"energy"`
	Use    float64 `json:"use"`
	CO2    float64 `json:"co2"`
}

// LoadCosts reads every *.json file in directory as one resource's cost
// sheet, keyed "resource: <filename-stem>" to match LoadCapabilities (spec
// §6: load_costs). A resource absent from the returned map costs zero on
// every dimension, per the Weighted Evaluator's total-function contract.
func LoadCosts(directory string) (map[string]types.ResourceCost, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("collab: read cost directory %s: %w", directory, err)
	}

	costs := make(map[string]types.ResourceCost)
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".json" {
			continue
		}

		path := filepath.Join(directory, e.Name())
		// #nosec G304 -- path is an operator-supplied cost file, not untrusted user data
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("collab: read cost file %s: %w", e.Name(), err)
		}

		var doc costDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("collab: parse cost file %s: %w", e.Name(), err)
		}

		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		costs["resource: "+stem] = types.ResourceCost{Energy: doc.Energy, Use: doc.Use, CO2: doc.CO2}
	}
	return costs, nil
}
