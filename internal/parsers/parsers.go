// Package parsers loads DIMACS CNF instances and reference model files
// into the solver types defined by internal/sat.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhartert/dimacs"

	"github.com/kalbasit/cdclsat/internal/sat"
)

func reader(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if strings.HasSuffix(filename, ".gz") {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// Instance is a parsed DIMACS CNF problem: the variable count declared on
// the problem line, and the clauses that followed it.
type Instance struct {
	NumVars int
	Clauses [][]sat.Literal
}

// LoadDIMACS parses the DIMACS CNF file at filename into an Instance.
func LoadDIMACS(filename string) (*Instance, error) {
	rc, err := reader(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", filename)
	}
	defer rc.Close()

	b := &instanceBuilder{}
	if err := dimacs.ReadBuilder(rc, b); err != nil {
		return nil, errors.Wrapf(err, "parsing %q", filename)
	}
	return &Instance{NumVars: b.numVars, Clauses: b.clauses}, nil
}

// NewSolver builds a Solver sized and populated from inst.
func NewSolver(inst *Instance, opts sat.Options) *sat.Solver {
	s := sat.NewSolver(inst.NumVars, opts)
	for _, c := range inst.Clauses {
		s.AddClause(c)
	}
	return s
}

type instanceBuilder struct {
	numVars int
	clauses [][]sat.Literal
}

func (b *instanceBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q, want \"cnf\"", problem)
	}
	b.numVars = nVars
	return nil
}

func (b *instanceBuilder) Clause(tmp []int) error {
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		if l < 0 {
			lits[i] = sat.NegativeLiteral(-l - 1)
		} else {
			lits[i] = sat.PositiveLiteral(l - 1)
		}
	}
	b.clauses = append(b.clauses, lits)
	return nil
}

func (b *instanceBuilder) Comment(_ string) error {
	return nil
}

// ReadModels reads a DIMACS-shaped file whose "clauses" are in fact
// reference models (one model per line, one literal per variable in
// order, value given by sign) and returns them as boolean assignments.
// Used by tests to compare a solver's output against known-good models.
func ReadModels(filename string) ([][]bool, error) {
	rc, err := reader(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", filename)
	}
	defer rc.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(rc, b); err != nil {
		return nil, errors.Wrapf(err, "parsing %q", filename)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files must not contain a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmp []int) error {
	model := make([]bool, len(tmp))
	for i, l := range tmp {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
