package cli

import (
	"fmt"
	"time"

	"github.com/loadtestlab/panelpatch/internal/config"
	"github.com/loadtestlab/panelpatch/internal/patcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

func RunPatch(cmd *cobra.Command, args []string) error {
	cfg, err := ResolveConfig(cmd, args)
	if err != nil {
		return err
	}
	mode := patcher.ModeWrite
	if cfg.DryRun {
		mode = patcher.ModeDryRun
	}
	return runPatcher(cmd, cfg, mode)
}

func RunPlan(cmd *cobra.Command, args []string) error {
	cfg, err := ResolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return runPatcher(cmd, cfg, patcher.ModePlan)
}

func runPatcher(cmd *cobra.Command, cfg *config.Config, mode patcher.Mode) error {
	start := time.Now()
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	paths := cfg.Paths()
	progress := newProgressReporter(string(mode), len(paths), asJSON, logger.Core().Enabled(zapcore.InfoLevel))
	p := patcher.New(cfg, mode, logger)
	p.Progress = progress.Update
	report, runErr := p.Run(paths)
	progress.Done()

	summary := NewRunSummary(cfg.Dir, report, time.Since(start))
	if err := PrintRunSummary(summary, asJSON); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d dashboard(s) could not be patched", report.Failed)
	}
	return nil
}
