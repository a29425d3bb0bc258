package core

import (
	"time"

	"github.com/plantmatch/core/internal/diagnostics"
	"github.com/plantmatch/core/internal/search"
)

// FindAll selects between single-solution and exhaustive-enumeration search.
type FindAll bool

const (
	// FindFirst stops at the first accepted solution.
	FindFirst FindAll = false
	// FindAllSolutions enumerates every accepted solution up to the
	// attempt budget.
	FindAllSolutions FindAll = true
)

// RunOptions configures one call to Run.
type RunOptions struct {
	// FindAll selects single vs exhaustive search (spec §4.3.1 find_all).
	FindAll FindAll

	// AttemptBudget is N_max; zero means search.DefaultAttemptBudget.
	AttemptBudget int

	// Deadline, if non-zero, bounds the search loop's wall-clock time in
	// addition to AttemptBudget.
	Deadline time.Time

	// GenerateStructured selects whether Run also returns the
	// export/integration-facing structured solutions (spec §4.5).
	GenerateStructured bool

	// LogSink receives human-readable progress strings; nil means
	// diagnostics are discarded.
	LogSink diagnostics.Sink

	// Telemetry, if non-nil, instruments the search loop with OpenTelemetry
	// spans and counters.
	Telemetry *diagnostics.Telemetry
}

func (o RunOptions) searchMode() search.Mode {
	if bool(o.FindAll) {
		return search.All
	}
	return search.Single
}
