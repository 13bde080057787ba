// Package checker independently verifies a candidate model against a CNF
// instance, without going through the solver's own data structures. It
// exists so a solver defect cannot also hide in the verdict that checks
// it (spec §7's reporting requirements).
package checker

import (
	"fmt"

	"github.com/kalbasit/cdclsat/internal/sat"
)

// Violation describes one clause the model fails to satisfy.
type Violation struct {
	ClauseIndex int
	Literals    []sat.Literal
}

func (v Violation) String() string {
	return fmt.Sprintf("clause %d unsatisfied: %v", v.ClauseIndex, v.Literals)
}

// Verify reports every clause in clauses that model does not satisfy.
// model must have one entry per variable referenced by clauses; a nil or
// too-short model is treated as leaving the remaining variables false.
// An empty return value means model satisfies every clause.
func Verify(clauses [][]sat.Literal, model []bool) []Violation {
	var violations []Violation
	for i, lits := range clauses {
		if !clauseSatisfied(lits, model) {
			violations = append(violations, Violation{ClauseIndex: i, Literals: lits})
		}
	}
	return violations
}

func clauseSatisfied(lits []sat.Literal, model []bool) bool {
	if len(lits) == 0 {
		return false
	}
	for _, l := range lits {
		v := l.VarID()
		val := false
		if v < len(model) {
			val = model[v]
		}
		if val == l.IsPositive() {
			return true
		}
	}
	return false
}
