package sat

import "testing"

func TestVarSet_AddContainsClear(t *testing.T) {
	s := NewVarSet(4)

	if s.Contains(2) {
		t.Errorf("Contains(2): got true, want false before Add")
	}

	s.Add(2)
	if !s.Contains(2) {
		t.Errorf("Contains(2): got false, want true after Add")
	}
	if s.Contains(1) {
		t.Errorf("Contains(1): got true, want false")
	}

	s.Clear()
	if s.Contains(2) {
		t.Errorf("Contains(2): got true, want false after Clear")
	}
}
