package sat

import (
	"context"

	"github.com/pkg/errors"
)

// Status is the outcome of a Solve call. It distinguishes a definite
// SAT/UNSAT verdict from the failure modes spec §7 requires to be kept
// separate from both: an internal invariant violation, and a caller-
// requested cancellation.
type Status int

const (
	// Unknown is never returned by Solve; it is the zero value so a
	// forgotten assignment is visibly wrong rather than silently "solved".
	Unknown Status = iota
	Satisfiable
	Unsatisfiable
	Interrupted
	InternalError
)

func (s Status) String() string {
	switch s {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	case Interrupted:
		return "INTERRUPTED"
	case InternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Options configures a Solver's search. The zero value is the spec's
// default behavior: first-unassigned-by-index variable selection,
// always deciding the positive polarity, no phase saving.
type Options struct {
	// SavePhases, when true, decides each variable to the polarity it last
	// held rather than always True. Off by default: this solver does not
	// implement phase saving as a required heuristic (spec.md §1's
	// Non-goals), only as an opt-in refinement of the default tie-break.
	SavePhases bool

	// MaxConflicts bounds the search: once Stats.Conflicts reaches this
	// count, Solve returns Interrupted instead of continuing. Zero means
	// unbounded.
	MaxConflicts int
}

// Result is the outcome of a Solve call: a Status and, for Satisfiable,
// the satisfying assignment.
type Result struct {
	Status Status
	Model  []bool // Model[v] is the value assigned to variable v; valid only when Status == Satisfiable.
	Err    error  // set when Status == InternalError
}

// Solver runs CDCL search over a fixed number of Boolean variables and a
// clause store built up by AddClause calls.
type Solver struct {
	opts Options

	nVars int
	store ClauseStore
	a     *Assignment
	graph *ImplicationGraph
	an    *Analyzer

	phase []bool // last-seen polarity per variable, used only when opts.SavePhases

	level int // current decision level

	// Stats, exported for external collaborators (metrics, reporting) to
	// read once Solve returns; the search itself reads only Stats.Conflicts,
	// to enforce Options.MaxConflicts.
	Stats Stats
}

// Stats counts search events. It is plain data so reporting and metrics
// collaborators can read it without depending on the solver's internals.
type Stats struct {
	Decisions    int
	Propagations int
	Conflicts    int
}

// NewSolver returns a Solver over nVars variables (ids 0..nVars-1), with
// no clauses yet added.
func NewSolver(nVars int, opts Options) *Solver {
	return &Solver{
		opts:  opts,
		nVars: nVars,
		a:     NewAssignment(nVars),
		graph: NewImplicationGraph(nVars),
		an:    NewAnalyzer(nVars),
		phase: make([]bool, nVars),
	}
}

// AddClause adds an original-problem clause over the given literals. It
// must not be called while Solve is running. A clause added between Solve
// calls (as BlockModel does) is checked by the next Solve against the
// assignment the previous call left in place.
func (s *Solver) AddClause(lits []Literal) {
	s.store.AddConstraint(NewClause(lits, false))
}

// NumVars returns the number of variables the solver was built for.
func (s *Solver) NumVars() int {
	return s.nVars
}

// NumLearnts returns the number of clauses conflict analysis has learned
// so far.
func (s *Solver) NumLearnts() int {
	return s.store.NumLearnts()
}

// BlockModel adds a clause forbidding model from being found again: the
// disjunction of each variable's negated value. Used to enumerate every
// model of an instance by repeatedly solving and blocking the model just
// found.
func (s *Solver) BlockModel(model []bool) {
	lits := make([]Literal, len(model))
	for v, val := range model {
		if val {
			lits[v] = NegativeLiteral(v)
		} else {
			lits[v] = PositiveLiteral(v)
		}
	}
	s.AddClause(lits)
}

// Solve runs CDCL search to completion, to an internal error, or until
// ctx is cancelled. It implements spec §4.5's loop: propagate to a fixed
// point; on conflict, analyze and backjump (or declare UNSAT if the
// conflict survives at decision level 0); on quiescence, decide the
// first unassigned variable and open a new decision level.
func (s *Solver) Solve(ctx context.Context) Result {
	for {
		select {
		case <-ctx.Done():
			return Result{Status: Interrupted, Err: ctx.Err()}
		default:
		}

		before := s.a.NumAssigned()
		conflict := s.store.Propagate(s.a, s.graph, s.level)
		s.Stats.Propagations += s.a.NumAssigned() - before

		if conflict == nil {
			v, ok := s.pickUnassigned()
			if !ok {
				return Result{Status: Satisfiable, Model: s.model()}
			}
			s.decide(v)
			continue
		}

		s.Stats.Conflicts++
		if s.level == 0 {
			return Result{Status: Unsatisfiable}
		}
		if s.opts.MaxConflicts > 0 && s.Stats.Conflicts >= s.opts.MaxConflicts {
			return Result{Status: Interrupted, Err: errors.Errorf("conflict budget of %d exhausted", s.opts.MaxConflicts)}
		}

		learnedLits, backjumpLevel, err := s.an.Analyze(s.graph, conflict, s.level)
		if err != nil {
			return Result{Status: InternalError, Err: errors.Wrap(err, "conflict analysis")}
		}

		learned := NewClause(learnedLits, true)
		s.store.Learn(learned)

		if s.opts.SavePhases {
			for v := 0; v < s.nVars; v++ {
				if val := s.a.Value(v); val != Unassigned {
					s.phase[v] = val == True
				}
			}
		}
		s.graph.Backtrack(backjumpLevel, s.a)
		if backjumpLevel == 0 {
			s.level = 0
		} else {
			s.level = backjumpLevel - 1
		}
	}
}

// decide opens a new decision level by assigning v to its chosen
// polarity (True by default, or its saved phase when opts.SavePhases).
func (s *Solver) decide(v int) {
	s.Stats.Decisions++
	s.level++
	positive := true
	if s.opts.SavePhases {
		positive = s.phase[v]
	}
	s.a.Set(v, Lift(positive))
	s.graph.AddNode(v, s.a.Value(v), s.level, nil)
}

// pickUnassigned returns the lowest-indexed unassigned variable, per
// spec §4.5's default variable-selection rule (no activity heuristic).
func (s *Solver) pickUnassigned() (int, bool) {
	for v := 0; v < s.nVars; v++ {
		if s.a.Value(v) == Unassigned {
			return v, true
		}
	}
	return 0, false
}

func (s *Solver) model() []bool {
	m := make([]bool, s.nVars)
	for v := 0; v < s.nVars; v++ {
		val := s.a.Value(v)
		m[v] = val == True
		if s.opts.SavePhases {
			s.phase[v] = m[v]
		}
	}
	return m
}
