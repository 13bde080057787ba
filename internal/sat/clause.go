package sat

import "strings"

// EvalResult is the verdict of evaluating a clause against the current
// assignment (spec §4.1).
type EvalResult int

const (
	// Unresolved means at least two literals are still free.
	Unresolved EvalResult = iota
	// Satisfied means at least one literal is satisfied.
	Satisfied
	// Conflict means every literal is falsified.
	Conflict
	// Unit means all but one literal are falsified; the remaining free
	// literal must be assigned to satisfy the clause.
	Unit
)

// Clause is an ordered sequence of literals. For clauses of two or more
// literals, the literals at index 0 and 1 are the watched pair: Evaluate
// may rewrite them (by swapping a falsified watch for a free or satisfied
// literal found elsewhere in the clause) but otherwise leaves the order
// alone. Clauses with a single literal have no meaningful watch pair and
// are evaluated directly.
//
// A Clause never shrinks or reorders outside of Evaluate, and is not
// mutated while a conflict analysis reads it as an antecedent.
type Clause struct {
	literals []Literal
	learnt   bool
	activity float64
}

// NewClause builds a Clause from lits. lits is copied; the caller's slice
// is not retained. Duplicate literals and tautologies are accepted as-is
// per spec §3 — the clause will simply be trivially satisfiable or
// behave as a (harmless) weaker clause, which does not affect the
// correctness of the final verdict.
func NewClause(lits []Literal, learnt bool) *Clause {
	c := &Clause{
		literals: append([]Literal(nil), lits...),
		learnt:   learnt,
	}
	return c
}

// Literals returns the clause's literals in their current order. Callers
// must not mutate the returned slice.
func (c *Clause) Literals() []Literal {
	return c.literals
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int {
	return len(c.literals)
}

// IsLearnt reports whether the clause was derived by conflict analysis
// rather than supplied as part of the original problem.
func (c *Clause) IsLearnt() bool {
	return c.learnt
}

// Evaluate returns the clause's status under assignment a. When the result
// is Unit, unit is the literal that must be assigned to satisfy the clause.
// As a side effect, Evaluate may rewrite the clause's two watched literals
// (see the Clause doc comment); it never leaves a watch pointed at a
// falsified literal while some other literal in the clause is free or
// satisfied.
func (c *Clause) Evaluate(a *Assignment) (EvalResult, Literal) {
	switch len(c.literals) {
	case 0:
		// Ill-formed; the reader must never produce this, but treat it as
		// an immediate conflict rather than panicking.
		return Conflict, 0
	case 1:
		switch a.LitValue(c.literals[0]) {
		case True:
			return Satisfied, 0
		case False:
			return Conflict, 0
		default:
			return Unit, c.literals[0]
		}
	}

	if a.LitValue(c.literals[0]) == True || a.LitValue(c.literals[1]) == True {
		return Satisfied, 0
	}

	if c.rewriteWatch(a, 0) == Satisfied {
		return Satisfied, 0
	}
	if c.rewriteWatch(a, 1) == Satisfied {
		return Satisfied, 0
	}

	v0, v1 := a.LitValue(c.literals[0]), a.LitValue(c.literals[1])
	switch {
	case v0 == Unassigned && v1 == Unassigned:
		return Unresolved, 0
	case v0 == Unassigned:
		return Unit, c.literals[0]
	case v1 == Unassigned:
		return Unit, c.literals[1]
	default:
		return Conflict, 0
	}
}

// rewriteWatch looks for a replacement for the watch at position w if it is
// currently falsified. It returns Satisfied if the replacement search finds
// an already-satisfied literal (the caller should stop immediately), and
// Unresolved otherwise (whether or not a replacement was found).
func (c *Clause) rewriteWatch(a *Assignment, w int) EvalResult {
	if a.LitValue(c.literals[w]) != False {
		return Unresolved
	}
	// Indices 0 and 1 are the watch pair; the scan below starts at 2 so it
	// never proposes the other watch as w's replacement.
	for i := 2; i < len(c.literals); i++ {
		switch a.LitValue(c.literals[i]) {
		case True:
			c.literals[w], c.literals[i] = c.literals[i], c.literals[w]
			return Satisfied
		case Unassigned:
			c.literals[w], c.literals[i] = c.literals[i], c.literals[w]
			return Unresolved
		}
	}
	return Unresolved
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
