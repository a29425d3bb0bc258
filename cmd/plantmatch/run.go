package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/plantmatch/core/internal/collab"
	"github.com/plantmatch/core/internal/core"
	"github.com/plantmatch/core/internal/diagnostics"
	"github.com/plantmatch/core/internal/evaluate"
	"github.com/plantmatch/core/internal/history"
	"github.com/plantmatch/core/internal/output"
	"github.com/plantmatch/core/internal/runconfig"
	"github.com/plantmatch/core/internal/types"
)

var runFlags struct {
	recipePath      string
	capabilitiesDir string
	costsDir        string
	findAll         bool
	structured      bool
	attemptBudget   int
	deadline        time.Duration
	weightEnergy    float64
	weightUse       float64
	weightCO2       float64
	logLevel        string
	otelExporter    string
	historyPath     string
	format          string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching engine once against a recipe and a capability directory",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.recipePath, "recipe", "", "path to the recipe JSON document (required)")
	f.StringVar(&runFlags.capabilitiesDir, "capabilities", "", "directory of resource capability documents (required)")
	f.StringVar(&runFlags.costsDir, "costs", "", "directory of per-resource cost documents; enables the weighted evaluator")
	f.BoolVar(&runFlags.findAll, "find-all", false, "enumerate every accepted solution instead of stopping at the first")
	f.BoolVar(&runFlags.structured, "structured", false, "also emit the export-facing structured solution objects")
	f.IntVar(&runFlags.attemptBudget, "attempt-budget", 0, "maximum search attempts (0 = use configuration/default)")
	f.DurationVar(&runFlags.deadline, "deadline", 0, "wall-clock search deadline (0 = none)")
	f.Float64Var(&runFlags.weightEnergy, "weight-energy", 0, "energy weight for the composite score")
	f.Float64Var(&runFlags.weightUse, "weight-use", 0, "use weight for the composite score")
	f.Float64Var(&runFlags.weightCO2, "weight-co2", 0, "CO2 weight for the composite score")
	f.StringVar(&runFlags.logLevel, "log-level", "", "debug, info, warn, or error")
	f.StringVar(&runFlags.otelExporter, "otel-exporter", "", "none or stdout")
	f.StringVar(&runFlags.historyPath, "history", "", "append a run summary to this JSONL file")
	f.StringVar(&runFlags.format, "format", "table", "table, json, or yaml")

	_ = runCmd.MarkFlagRequired("recipe")
	_ = runCmd.MarkFlagRequired("capabilities")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := runconfig.Config{
		RecipePath:         runFlags.recipePath,
		CapabilitiesDir:    runFlags.capabilitiesDir,
		CostsDir:           runFlags.costsDir,
		FindAll:            runFlags.findAll,
		GenerateStructured: runFlags.structured,
		AttemptBudget:      runFlags.attemptBudget,
		Deadline:           runFlags.deadline,
		LogLevel:           runFlags.logLevel,
		OTelExporter:       runFlags.otelExporter,
	}
	if runFlags.weightEnergy != 0 || runFlags.weightUse != 0 || runFlags.weightCO2 != 0 {
		cfg.Weights = types.Weights{Energy: runFlags.weightEnergy, Use: runFlags.weightUse, CO2: runFlags.weightCO2}
	}
	if err := runconfig.Load(configPath, &cfg); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	sink := diagnostics.NewSlogSink(logger)

	telemetry, shutdown, err := setupTelemetry(cfg.OTelExporter)
	if err != nil {
		return fmt.Errorf("plantmatch: configuring telemetry: %w", err)
	}
	defer shutdown()

	recipe, err := collab.ParseRecipe(cfg.RecipePath)
	if err != nil {
		return core.NewCollaboratorFailure("parse_recipe", err)
	}

	caps, err := collab.LoadCapabilities(cfg.CapabilitiesDir, sink)
	if err != nil {
		return core.NewCollaboratorFailure("parse_capabilities", err)
	}

	var costs map[string]types.ResourceCost
	if cfg.CostsDir != "" {
		costs, err = collab.LoadCosts(cfg.CostsDir)
		if err != nil {
			return core.NewCollaboratorFailure("load_costs", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var cancel context.CancelFunc
	if cfg.Deadline > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Deadline)
		defer cancel()
	}

	result := core.Run(ctx, &recipe, caps, core.RunOptions{
		FindAll:            core.FindAll(cfg.FindAll),
		AttemptBudget:      cfg.AttemptBudget,
		GenerateStructured: cfg.GenerateStructured,
		LogSink:            sink,
		Telemetry:          telemetry,
	})

	flatRecords, structured := shapeOutput(result, costs, cfg)

	if runFlags.historyPath != "" {
		entry := history.Entry{
			Timestamp:     time.Now(),
			RecipePath:    cfg.RecipePath,
			SolutionCount: len(result.Solutions),
			AttemptsMade:  result.AttemptsMade,
			Unsat:         result.Unsat,
			Exhausted:     result.Exhausted,
		}
		if best := bestScore(flatRecords); best != nil {
			entry.BestScore = best
		}
		if err := history.Append(runFlags.historyPath, entry); err != nil {
			sink.Warnf("could not append to history file: %v", err)
		}
	}

	return render(runFlags.format, flatRecords, structured)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func setupTelemetry(exporter string) (*diagnostics.Telemetry, func(), error) {
	if exporter != "stdout" {
		tel, err := diagnostics.NewTelemetry(nil, nil)
		return tel, func() {}, err
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("stdout trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))

	metricExporter, err := stdoutmetric.New()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))

	tel, err := diagnostics.NewTelemetry(tp, mp)
	if err != nil {
		return nil, nil, err
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
	}
	return tel, shutdown, nil
}

func shapeOutput(result core.Result, costs map[string]types.ResourceCost, cfg runconfig.Config) ([]output.FlatRecord, []output.StructuredSolution) {
	if costs == nil {
		return result.FlatRecords, result.StructuredSolutions
	}
	evaluated := evaluate.Evaluate(result.Solutions, costs, cfg.Weights)
	flat := output.FlatRecordsEvaluated(evaluated)
	var structured []output.StructuredSolution
	if cfg.GenerateStructured {
		structured = output.StructuredSolutionsEvaluated(evaluated)
	}
	return flat, structured
}

func bestScore(records []output.FlatRecord) *float64 {
	var best *float64
	for _, r := range records {
		if !r.Evaluated {
			continue
		}
		score := r.CompositeScore
		if best == nil || score < *best {
			best = &score
		}
	}
	return best
}

// render dispatches on the resolved output format. The persistent --json
// flag is a shorthand for --format json, honored here regardless of which
// subcommand's --format flag was actually passed, so it takes precedence
// over the subcommand-local default.
func render(format string, flat []output.FlatRecord, structured []output.StructuredSolution) error {
	if jsonOutput {
		format = "json"
	}
	switch format {
	case "json":
		return renderJSON(flat, structured)
	case "yaml":
		return renderYAML(flat, structured)
	default:
		renderTable(flat)
		return nil
	}
}

func renderJSON(flat []output.FlatRecord, structured []output.StructuredSolution) error {
	payload := map[string]any{"flat_records": flat}
	if structured != nil {
		payload["structured_solutions"] = structured
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func renderYAML(flat []output.FlatRecord, structured []output.StructuredSolution) error {
	payload := map[string]any{"flat_records": flat}
	if structured != nil {
		payload["structured_solutions"] = structured
	}
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(payload)
}

func renderTable(flat []output.FlatRecord) {
	if len(flat) == 0 {
		fmt.Println(mutedStyle.Render("no solutions found"))
		return
	}
	fmt.Println(boldStyle.Render(fmt.Sprintf("%-12s %-10s %-20s %-30s %s", "SOLUTION", "STEP", "RESOURCE", "CAPABILITIES", "SCORE")))
	for _, r := range flat {
		if r.IsSpacer() {
			fmt.Println()
			continue
		}
		score := ""
		if r.Evaluated {
			score = accentStyle.Render(fmt.Sprintf("%.3f", r.CompositeScore))
		}
		fmt.Printf("%-12d %-10s %-20s %-30s %s\n",
			r.SolutionID, r.StepID, r.ResourceKey, passStyle.Render(joinNames(r.MatchedCapabilities)), score)
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ","
		}
		out += n
	}
	return out
}
