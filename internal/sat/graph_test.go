package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestImplicationGraph_AddNode_Decision(t *testing.T) {
	g := NewImplicationGraph(3)

	g.AddNode(0, True, 1, nil)

	if g.Level() != 1 {
		t.Errorf("Level(): got %d, want 1", g.Level())
	}

	want := &Node{Var: 0, Value: True, Level: 1, Antecedent: nil}
	if diff := cmp.Diff(want, g.Node(0), cmpopts.IgnoreUnexported(Clause{})); diff != "" {
		t.Errorf("Node(0): mismatch (-want +got):\n%s", diff)
	}
}

func TestImplicationGraph_AddNode_PropagationDoesNotOpenLevel(t *testing.T) {
	g := NewImplicationGraph(3)
	g.AddNode(0, True, 1, nil)

	c := NewClause([]Literal{PositiveLiteral(1)}, false)
	g.AddNode(1, True, 1, c)

	if g.Level() != 1 {
		t.Errorf("Level(): got %d, want 1 (propagation must not open a new level)", g.Level())
	}
	n := g.Node(1)
	if n == nil || n.Antecedent != c {
		t.Errorf("Node(1): got %+v, want antecedent %v", n, c)
	}
}

func TestImplicationGraph_Backtrack(t *testing.T) {
	g := NewImplicationGraph(3)
	a := NewAssignment(3)

	g.AddNode(0, True, 1, nil)
	a.Set(0, True)
	g.AddNode(1, True, 1, NewClause([]Literal{PositiveLiteral(1)}, false))
	a.Set(1, True)
	g.AddNode(2, True, 2, nil)
	a.Set(2, True)

	g.Backtrack(2, a)

	if g.Level() != 1 {
		t.Errorf("Level(): got %d, want 1", g.Level())
	}
	if g.Node(2) != nil {
		t.Errorf("Node(2): got non-nil, want nil after backtrack")
	}
	if a.Value(2) != Unassigned {
		t.Errorf("Value(2): got %v, want Unassigned after backtrack", a.Value(2))
	}
	if g.Node(0) == nil || g.Node(1) == nil {
		t.Errorf("expected level-1 nodes to survive backtrack to level 2")
	}
}
