package sat

// ClauseStore is the ordered collection of original and learned clauses.
// Original clauses are added by the caller before search or between Solve
// calls (never while propagation runs); learned clauses are appended by the search
// driver after each conflict and are never removed, since clause-database
// reduction is out of scope for this solver.
type ClauseStore struct {
	constraints []*Clause
	learnts     []*Clause
}

// AddConstraint appends an original-problem clause to the store.
func (s *ClauseStore) AddConstraint(c *Clause) {
	s.constraints = append(s.constraints, c)
}

// Learn appends a clause derived by conflict analysis to the store.
func (s *ClauseStore) Learn(c *Clause) {
	s.learnts = append(s.learnts, c)
}

// NumConstraints returns the number of original clauses.
func (s *ClauseStore) NumConstraints() int {
	return len(s.constraints)
}

// NumLearnts returns the number of learned clauses.
func (s *ClauseStore) NumLearnts() int {
	return len(s.learnts)
}

// Propagate sweeps the clause store in store order, evaluating every clause
// against a, until either a clause conflicts or a full sweep makes no new
// assignment (spec §4.2). Newly forced assignments are written into a and
// recorded in graph at the given decision level, with the forcing clause as
// their antecedent.
//
// Clauses are visited in store order (constraints before learnts, each in
// the order they were added); a newly set variable's effects are only
// guaranteed to be picked up on the next sweep, matching the fixed-point
// iteration described by the spec. This is the simple, literal rendering of
// the propagation contract; per-literal watch queues are an allowed but
// unnecessary refinement at this solver's scale.
func (s *ClauseStore) Propagate(a *Assignment, graph *ImplicationGraph, level int) *Clause {
	for {
		progressed := false
		if conflict := s.sweep(s.constraints, a, graph, level, &progressed); conflict != nil {
			return conflict
		}
		if conflict := s.sweep(s.learnts, a, graph, level, &progressed); conflict != nil {
			return conflict
		}
		if !progressed {
			return nil
		}
	}
}

func (s *ClauseStore) sweep(clauses []*Clause, a *Assignment, graph *ImplicationGraph, level int, progressed *bool) *Clause {
	for _, c := range clauses {
		result, unitLit := c.Evaluate(a)
		switch result {
		case Conflict:
			return c
		case Unit:
			v := unitLit.VarID()
			if a.Value(v) != Unassigned {
				// Defensive case from spec §4.2: a Unit naming an
				// already-assigned variable is impossible under correct
				// watching. Treat the clause as non-forcing this sweep.
				continue
			}
			a.Set(v, Lift(unitLit.IsPositive()))
			graph.AddNode(v, a.Value(v), level, c)
			*progressed = true
		}
	}
	return nil
}
