package sat

import "fmt"

// AnalysisError reports a broken solver invariant detected during conflict
// analysis (spec §4.4's "failure modes"): a literal in the working set
// referencing a variable with no graph node, or the working set reaching
// neither stop condition while holding no implied literal of the conflict's
// decision level to resolve. Either means a bug upstream, not a
// property of the input, and must surface as a verdict distinct from
// SAT/UNSAT (spec §7).
type AnalysisError struct {
	Reason string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("sat: conflict analysis invariant violated: %s", e.Reason)
}

// Analyzer derives a learned clause and a backjump level from a conflict,
// by walking the implication graph backwards from the conflict clause
// (spec §4.4). It holds only scratch state reused across calls; it does
// not own the graph or the assignment.
type Analyzer struct {
	seen *VarSet
}

// NewAnalyzer returns an Analyzer with scratch state sized for nVars
// variables.
func NewAnalyzer(nVars int) *Analyzer {
	return &Analyzer{seen: NewVarSet(nVars)}
}

// Grow extends the analyzer's scratch state to cover one more variable.
func (an *Analyzer) Grow() {
	an.seen.Grow()
}

// Analyze derives a learned clause and backjump level from conflict, a
// clause every one of whose literals is falsified by the current assignment
// at decision level dl. The returned clause is falsified by that assignment
// at the moment it is produced;
// after backtracking to the returned level it is unit or asserting.
func (an *Analyzer) Analyze(graph *ImplicationGraph, conflict *Clause, dl int) ([]Literal, int, error) {
	an.seen.Clear()

	q := append([]Literal(nil), conflict.Literals()...)

	for {
		dlCount := 0
		secondHighest := -1
		dlIdx := -1
		for i, lit := range q {
			n := graph.Node(lit.VarID())
			if n == nil {
				return nil, 0, &AnalysisError{Reason: fmt.Sprintf("variable %d has no graph node", lit.VarID())}
			}
			switch {
			case n.Level == dl:
				dlCount++
				// Only implied literals are resolved away; dropping the
				// level's decision literal would make the clause unsound.
				if dlIdx == -1 && n.Antecedent != nil {
					dlIdx = i
				}
			case n.Level > secondHighest:
				secondHighest = n.Level
			}
		}

		if len(q) == 1 {
			return buildLearnedClause(q, graph), 0, nil
		}
		if dlCount == 1 {
			return buildLearnedClause(q, graph), secondHighest, nil
		}
		if dlIdx == -1 {
			return nil, 0, &AnalysisError{Reason: "no implied literal of the conflict's decision level left to resolve"}
		}

		lit := q[dlIdx]
		q[dlIdx] = q[len(q)-1]
		q = q[:len(q)-1]

		v := lit.VarID()
		if an.seen.Contains(v) {
			continue
		}
		an.seen.Add(v)

		n := graph.Node(v)
		if n.Antecedent == nil {
			continue
		}
		for _, al := range n.Antecedent.Literals() {
			av := al.VarID()
			if an.seen.Contains(av) {
				continue
			}
			if containsVar(q, av) {
				continue
			}
			q = append(q, al)
		}
	}
}

func containsVar(q []Literal, v int) bool {
	for _, l := range q {
		if l.VarID() == v {
			return true
		}
	}
	return false
}

// buildLearnedClause turns the literals remaining in q into the learned
// clause: for each literal's variable, emit the literal that is currently
// falsified by the assignment (i.e. the node's value, negated), so the
// clause is violated in the present state and forces a flip once the
// search backtracks past it.
func buildLearnedClause(q []Literal, graph *ImplicationGraph) []Literal {
	learned := make([]Literal, len(q))
	for i, lit := range q {
		v := lit.VarID()
		n := graph.Node(v)
		learned[i] = Literal(0)
		if n.Value == True {
			learned[i] = NegativeLiteral(v)
		} else {
			learned[i] = PositiveLiteral(v)
		}
	}
	return learned
}
