package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/plantmatch/core/internal/collab"
	"github.com/plantmatch/core/internal/core"
	"github.com/plantmatch/core/internal/diagnostics"
	"github.com/plantmatch/core/internal/evaluate"
	"github.com/plantmatch/core/internal/output"
	"github.com/plantmatch/core/internal/runconfig"
	"github.com/plantmatch/core/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the matching engine whenever the capability directory changes",
	Long: `watch re-runs plantmatch run every time a file in the capability
directory is written, grounded on the same fsnotify-plus-debounce idiom
other plantmatch-like tools use for live reload: it watches the directory,
debounces rapid successive writes, and re-displays the result.`,
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&runFlags.recipePath, "recipe", "", "path to the recipe JSON document (required)")
	f.StringVar(&runFlags.capabilitiesDir, "capabilities", "", "directory of resource capability documents (required)")
	f.StringVar(&runFlags.costsDir, "costs", "", "directory of per-resource cost documents; enables the weighted evaluator")
	f.BoolVar(&runFlags.findAll, "find-all", false, "enumerate every accepted solution instead of stopping at the first")
	f.StringVar(&runFlags.format, "format", "table", "table, json, or yaml")

	_ = watchCmd.MarkFlagRequired("recipe")
	_ = watchCmd.MarkFlagRequired("capabilities")
}

const watchDebounce = 500 * time.Millisecond

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg := runconfig.Config{
		RecipePath:      runFlags.recipePath,
		CapabilitiesDir: runFlags.capabilitiesDir,
		CostsDir:        runFlags.costsDir,
		FindAll:         runFlags.findAll,
	}
	if err := runconfig.Load(configPath, &cfg); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	sink := diagnostics.NewSlogSink(logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("plantmatch: creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cfg.CapabilitiesDir); err != nil {
		return fmt.Errorf("plantmatch: watching %s: %w", cfg.CapabilitiesDir, err)
	}

	runOnce := func() {
		if err := runWatchIteration(cmd.Context(), cfg, sink); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		fmt.Fprintln(os.Stderr, mutedStyle.Render("\nwatching for changes... (press Ctrl+C to exit)"))
	}
	runOnce()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var debounceTimer *time.Timer
	for {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nstopped watching.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, runOnce)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", werr)
		}
	}
}

func runWatchIteration(ctx context.Context, cfg runconfig.Config, sink diagnostics.Sink) error {
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

	if ctx == nil {
		ctx = context.Background()
	}
	result := core.Run(ctx, &recipe, caps, core.RunOptions{
		FindAll: core.FindAll(cfg.FindAll),
		LogSink: sink,
	})

	flat := result.FlatRecords
	if costs != nil {
		evaluated := evaluate.Evaluate(result.Solutions, costs, cfg.Weights)
		flat = output.FlatRecordsEvaluated(evaluated)
	}
	return render(runFlags.format, flat, nil)
}
