// Package cli wires the solver, parsers, checker, reporter, and metrics
// packages into a cobra command tree.
package cli

import (
	"os"
	"runtime/pprof"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	logLevel   string
	cpuProfile string
	memProfile string

	cpuProfileFile *os.File
)

// NewRootCmd returns the cdclsat root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cdclsat",
		Short: "A CDCL SAT solver",
		Long: `cdclsat reads a DIMACS CNF instance and reports whether it is
satisfiable, printing a model if so.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl := log.InfoLevel
			if logLevel != "" {
				parsed, err := log.ParseLevel(logLevel)
				if err != nil {
					return errors.Wrapf(err, "parsing --log-level %q", logLevel)
				}
				lvl = parsed
			}
			if verbose {
				lvl = log.DebugLevel
			}
			log.SetLevel(lvl)

			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return errors.Wrapf(err, "creating %q", cpuProfile)
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return errors.Wrap(err, "starting CPU profile")
				}
				cpuProfileFile = f
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfileFile != nil {
				pprof.StopCPUProfile()
				cpuProfileFile.Close()
				cpuProfileFile = nil
			}
			if memProfile != "" {
				f, err := os.Create(memProfile)
				if err != nil {
					return errors.Wrapf(err, "creating %q", memProfile)
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					return errors.Wrap(err, "writing memory profile")
				}
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging (shorthand for --log-level debug)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default info)")
	root.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "write a pprof CPU profile to this file")
	root.PersistentFlags().StringVar(&memProfile, "memprofile", "", "write a pprof heap profile to this file")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newCheckCmd())

	return root
}

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
