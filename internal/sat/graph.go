package sat

// Node is an implication-graph entry for one assigned variable: its value,
// the decision level at which it was assigned, and the clause that forced
// it (nil for a decision).
type Node struct {
	Var        int
	Value      LBool
	Level      int
	Antecedent *Clause // nil marks a decision node
}

// ImplicationGraph records, for every currently assigned variable, the node
// describing how it came to be assigned (spec §3/§4.3). Exactly one node
// exists per assigned variable; backtracking removes nodes and unassigns
// the corresponding variables together.
type ImplicationGraph struct {
	nodes []*Node // nodes[v] is nil if v is unassigned
	stack []int   // decision stack: stack[i] is the decision variable of level i+1
}

// NewImplicationGraph returns an empty graph sized for nVars variables.
func NewImplicationGraph(nVars int) *ImplicationGraph {
	return &ImplicationGraph{nodes: make([]*Node, nVars)}
}

// Grow extends the graph to cover one more variable.
func (g *ImplicationGraph) Grow() {
	g.nodes = append(g.nodes, nil)
}

// Level returns the current decision level (the length of the decision
// stack).
func (g *ImplicationGraph) Level() int {
	return len(g.stack)
}

// AddNode inserts a node for v. If level is one more than the current
// decision stack length, v becomes the decision variable of the new level (this is how
// decisions open a new level: the search driver calls AddNode with
// antecedent nil and level = g.Level()+1).
func (g *ImplicationGraph) AddNode(v int, value LBool, level int, antecedent *Clause) {
	g.nodes[v] = &Node{Var: v, Value: value, Level: level, Antecedent: antecedent}
	if level == len(g.stack)+1 {
		g.stack = append(g.stack, v)
	}
}

// Node returns the node for variable v, or nil if v is unassigned.
func (g *ImplicationGraph) Node(v int) *Node {
	return g.nodes[v]
}

// Backtrack removes every node whose decision level is >= targetLevel,
// unassigning the corresponding variables in a, and drops the decisions of
// those levels from the decision stack, so Level() afterwards is
// targetLevel-1 (or 0).
func (g *ImplicationGraph) Backtrack(targetLevel int, a *Assignment) {
	for v, n := range g.nodes {
		if n != nil && n.Level >= targetLevel {
			g.nodes[v] = nil
			a.Unset(v)
		}
	}
	keep := targetLevel - 1
	if keep < 0 {
		keep = 0
	}
	if keep < len(g.stack) {
		g.stack = g.stack[:keep]
	}
}
