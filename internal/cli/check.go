package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kalbasit/cdclsat/internal/checker"
	"github.com/kalbasit/cdclsat/internal/parsers"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <instance.cnf> <model file>",
		Short: "Independently verify a candidate model against a DIMACS CNF instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runCheck(cmd *cobra.Command, instanceFile, modelFile string) error {
	inst, err := parsers.LoadDIMACS(instanceFile)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("loading instance: %w", err)}
	}

	models, err := parsers.ReadModels(modelFile)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("loading model: %w", err)}
	}
	if len(models) == 0 {
		return &ExitError{Code: 2, Err: fmt.Errorf("no model found in %q", modelFile)}
	}

	out := cmd.OutOrStdout()
	ok := true
	for i, model := range models {
		violations := checker.Verify(inst.Clauses, model)
		if len(violations) == 0 {
			fmt.Fprintf(out, "model %d: OK\n", i)
			continue
		}
		ok = false
		fmt.Fprintf(out, "model %d: FAILED (%d unsatisfied clauses)\n", i, len(violations))
		for _, v := range violations {
			log.WithField("model", i).Warn(v.String())
		}
	}

	if !ok {
		return &ExitError{Code: 1, Err: fmt.Errorf("one or more models failed verification")}
	}
	return nil
}
