package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kr/pretty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kalbasit/cdclsat/internal/checker"
	"github.com/kalbasit/cdclsat/internal/metrics"
	"github.com/kalbasit/cdclsat/internal/parsers"
	"github.com/kalbasit/cdclsat/internal/report"
	"github.com/kalbasit/cdclsat/internal/sat"
)

// ExitError carries the process exit code a command failure should
// produce, distinct from cobra's own usage-error exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// solveConfig bundles solve's flags so runSolve doesn't need a long
// positional parameter list.
type solveConfig struct {
	phaseSaving  bool
	metricsAddr  string
	all          bool
	maxModels    int
	maxConflicts int
	timeout      time.Duration
	check        bool
}

func newSolveCmd() *cobra.Command {
	var cfg solveConfig

	cmd := &cobra.Command{
		Use:   "solve <instance.cnf>",
		Short: "Solve a DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.phaseSaving, "phase-saving", false, "decide variables to their last-seen polarity instead of always true")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (disabled if empty)")
	cmd.Flags().BoolVar(&cfg.all, "all", false, "enumerate every model instead of stopping at the first")
	cmd.Flags().IntVar(&cfg.maxModels, "max-models", 0, "cap the number of models --all enumerates (0 = unbounded)")
	cmd.Flags().IntVar(&cfg.maxConflicts, "max-conflicts", 0, "abort the search after this many conflicts (0 = unbounded)")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", 0, "abort the search after this long (0 = unbounded)")
	cmd.Flags().BoolVar(&cfg.check, "check", false, "independently verify any model found before printing it")

	return cmd
}

func runSolve(cmd *cobra.Command, filename string, cfg solveConfig) error {
	log.WithField("file", filename).Info("loading instance")

	inst, err := parsers.LoadDIMACS(filename)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("loading instance: %w", err)}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if cfg.metricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.metricsAddr); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	s := parsers.NewSolver(inst, sat.Options{
		SavePhases:   cfg.phaseSaving,
		MaxConflicts: cfg.maxConflicts,
	})

	start := time.Now()
	models, status, resultErr := solveModels(ctx, s, cfg)
	elapsed := time.Since(start)

	metrics.Decisions.Add(float64(s.Stats.Decisions))
	metrics.Propagations.Add(float64(s.Stats.Propagations))
	metrics.Conflicts.Add(float64(s.Stats.Conflicts))
	metrics.LearnedClauses.Add(float64(s.NumLearnts()))

	log.Debugf("search stats: %# v", pretty.Formatter(s.Stats))

	if cfg.check {
		for i, m := range models {
			if violations := checker.Verify(inst.Clauses, m); len(violations) > 0 {
				return &ExitError{Code: 1, Err: fmt.Errorf("model %d fails verification: %d unsatisfied clauses", i, len(violations))}
			}
		}
	}

	out := cmd.OutOrStdout()
	stats := report.Stats{
		Decisions:    s.Stats.Decisions,
		Propagations: s.Stats.Propagations,
		Conflicts:    s.Stats.Conflicts,
		Elapsed:      elapsed.String(),
	}
	if len(models) == 0 {
		if err := report.Write(out, status, nil, stats); err != nil {
			return &ExitError{Code: 1, Err: err}
		}
	} else {
		if err := report.Write(out, sat.Satisfiable, models[0], stats); err != nil {
			return &ExitError{Code: 1, Err: err}
		}
		for _, m := range models[1:] {
			if err := report.WriteModel(out, m); err != nil {
				return &ExitError{Code: 1, Err: err}
			}
		}
	}

	switch status {
	case sat.Satisfiable, sat.Unsatisfiable:
		return nil
	case sat.Interrupted:
		return &ExitError{Code: 130, Err: resultErr}
	default:
		log.WithError(resultErr).Error("internal solver error")
		return &ExitError{Code: 1, Err: resultErr}
	}
}

// solveModels runs a single solve, or (with --all) repeatedly blocks each
// model found and re-solves until the instance is exhausted or a bound is
// hit, grounded on the block-and-resolve enumeration technique the teacher
// uses in its own test harness.
func solveModels(ctx context.Context, s *sat.Solver, cfg solveConfig) ([][]bool, sat.Status, error) {
	result := s.Solve(ctx)
	if result.Status != sat.Satisfiable {
		return nil, result.Status, result.Err
	}
	if !cfg.all {
		return [][]bool{result.Model}, sat.Satisfiable, nil
	}

	models := [][]bool{result.Model}
	for cfg.maxModels == 0 || len(models) < cfg.maxModels {
		s.BlockModel(models[len(models)-1])
		result = s.Solve(ctx)
		if result.Status != sat.Satisfiable {
			break
		}
		models = append(models, result.Model)
	}
	return models, sat.Satisfiable, nil
}
