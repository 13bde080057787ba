package sat

// VarSet is a set of variable ids in [0, N) that supports O(1) Clear by
// bumping a generation counter instead of zeroing its backing array. The
// conflict analyzer uses it as the "seen" set of spec §4.4: variables
// already folded into the learned-clause cut are marked so they are never
// resolved twice.
type VarSet struct {
	seenAt     []uint32
	generation uint32
}

// NewVarSet returns a VarSet with capacity for nVars variables.
func NewVarSet(nVars int) *VarSet {
	return &VarSet{seenAt: make([]uint32, nVars), generation: 1}
}

// Contains reports whether v has been Add-ed since the last Clear.
func (s *VarSet) Contains(v int) bool {
	return s.seenAt[v] == s.generation
}

// Add marks v as seen.
func (s *VarSet) Add(v int) {
	s.seenAt[v] = s.generation
}

// Clear empties the set in O(1).
func (s *VarSet) Clear() {
	s.generation++
	if s.generation == 0 { // wrapped around
		s.generation = 1
		for i := range s.seenAt {
			s.seenAt[i] = 0
		}
	}
}

// Grow extends the set's capacity to cover one more variable.
func (s *VarSet) Grow() {
	s.seenAt = append(s.seenAt, 0)
}
