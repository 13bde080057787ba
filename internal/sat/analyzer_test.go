package sat

import (
	"sort"
	"testing"
)

// literalSet returns a sorted string form of lits for order-independent
// comparison.
func literalSet(lits []Literal) []string {
	s := make([]string, len(lits))
	for i, l := range lits {
		s[i] = l.String()
	}
	sort.Strings(s)
	return s
}

func eqStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestAnalyzer_Analyze_SingleDecisionCausesBothBranches builds a conflict
// where one decision variable forces both sides of the conflicting clause,
// so analysis should resolve down to the unit clause forbidding that
// decision and backjump all the way to level 0.
func TestAnalyzer_Analyze_SingleDecisionCausesBothBranches(t *testing.T) {
	g := NewImplicationGraph(5)
	a := NewAssignment(5)

	// Decide var 2 true at level 2.
	g.AddNode(2, True, 2, nil)
	a.Set(2, True)

	// (¬2 ∨ 3) forces var 3 true at level 2.
	ca := NewClause([]Literal{NegativeLiteral(2), PositiveLiteral(3)}, false)
	g.AddNode(3, True, 2, ca)
	a.Set(3, True)

	// (¬2 ∨ 4) forces var 4 true at level 2.
	cb := NewClause([]Literal{NegativeLiteral(2), PositiveLiteral(4)}, false)
	g.AddNode(4, True, 2, cb)
	a.Set(4, True)

	// (¬3 ∨ ¬4) is now falsified: conflict.
	conflict := NewClause([]Literal{NegativeLiteral(3), NegativeLiteral(4)}, false)

	an := NewAnalyzer(5)
	learned, backjump, err := an.Analyze(g, conflict, 2)
	if err != nil {
		t.Fatalf("Analyze(): unexpected error: %s", err)
	}
	if backjump != 0 {
		t.Errorf("backjump level: got %d, want 0", backjump)
	}
	want := []string{NegativeLiteral(2).String()}
	if got := literalSet(learned); !eqStrings(got, want) {
		t.Errorf("learned clause: got %v, want %v", got, want)
	}
}

// TestAnalyzer_Analyze_StopsAtFirstUIP verifies analysis stops as soon as
// exactly one literal of the conflict's decision level remains, even when
// that literal still has an antecedent.
func TestAnalyzer_Analyze_StopsAtFirstUIP(t *testing.T) {
	g := NewImplicationGraph(4)
	a := NewAssignment(4)

	g.AddNode(0, True, 1, nil)
	a.Set(0, True)

	c1 := NewClause([]Literal{NegativeLiteral(0), PositiveLiteral(1)}, false)
	g.AddNode(1, True, 1, c1)
	a.Set(1, True)

	g.AddNode(2, True, 2, nil)
	a.Set(2, True)

	c2 := NewClause([]Literal{NegativeLiteral(2), PositiveLiteral(3)}, false)
	g.AddNode(3, True, 2, c2)
	a.Set(3, True)

	conflict := NewClause([]Literal{NegativeLiteral(1), NegativeLiteral(3)}, false)

	an := NewAnalyzer(4)
	learned, backjump, err := an.Analyze(g, conflict, 2)
	if err != nil {
		t.Fatalf("Analyze(): unexpected error: %s", err)
	}
	if backjump != 1 {
		t.Errorf("backjump level: got %d, want 1", backjump)
	}
	want := []string{NegativeLiteral(1).String(), NegativeLiteral(3).String()}
	if got := literalSet(learned); !eqStrings(got, want) {
		t.Errorf("learned clause: got %v, want %v", got, want)
	}
}

func TestAnalyzer_Analyze_MissingNodeIsAnalysisError(t *testing.T) {
	g := NewImplicationGraph(2)
	conflict := NewClause([]Literal{NegativeLiteral(0), NegativeLiteral(1)}, false)

	an := NewAnalyzer(2)
	_, _, err := an.Analyze(g, conflict, 1)
	if err == nil {
		t.Fatalf("Analyze(): want error for unassigned variable in conflict, got nil")
	}
	var ae *AnalysisError
	if !asAnalysisError(err, &ae) {
		t.Errorf("Analyze(): want *AnalysisError, got %T", err)
	}
}

func asAnalysisError(err error, target **AnalysisError) bool {
	ae, ok := err.(*AnalysisError)
	if ok {
		*target = ae
	}
	return ok
}
