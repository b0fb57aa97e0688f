package sparse

import (
	"math"
	"testing"
)

func TestStateList_Basic(t *testing.T) {
	l := NewStateList(4)

	if l.Len() != 0 {
		t.Errorf("new list should be empty, got len %d", l.Len())
	}
	if l.Cap() != 4 {
		t.Errorf("cap should be 4, got %d", l.Cap())
	}

	l.Push(3)
	l.Push(1)
	l.Push(2)

	want := []uint32{3, 1, 2}
	got := l.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value[%d] = %d, want %d", i, got[i], want[i])
		}
		if l.At(i) != want[i] {
			t.Errorf("At(%d) = %d, want %d", i, l.At(i), want[i])
		}
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("cleared list should be empty, got len %d", l.Len())
	}
	if l.Cap() != 4 {
		t.Errorf("clear must keep storage, cap = %d", l.Cap())
	}
}

func TestStateList_PushAfterClearReusesStorage(t *testing.T) {
	l := NewStateList(2)
	l.Push(0)
	l.Push(1)
	l.Clear()
	l.Push(1)
	if l.Len() != 1 || l.At(0) != 1 {
		t.Errorf("unexpected list after reuse: %v", l.Values())
	}
}

func TestStamps_VisitDedupsWithinGeneration(t *testing.T) {
	s := NewStamps(8)
	s.Advance()

	if !s.Visit(5) {
		t.Error("first visit should report new")
	}
	if s.Visit(5) {
		t.Error("second visit in same generation should report seen")
	}
	if !s.Contains(5) {
		t.Error("stamped state should be contained")
	}
	if s.Contains(4) {
		t.Error("unstamped state should not be contained")
	}

	s.Advance()
	if s.Contains(5) {
		t.Error("advance should logically empty the set")
	}
	if !s.Visit(5) {
		t.Error("visit in new generation should report new")
	}
}

func TestStamps_ZeroIsSentinel(t *testing.T) {
	s := NewStamps(3)
	if s.Contains(0) {
		t.Error("fresh table must not contain anything before first Advance")
	}
	s.Advance()
	if s.Generation() != 1 {
		t.Errorf("first generation should be 1, got %d", s.Generation())
	}
}

func TestStamps_ExhaustionResets(t *testing.T) {
	s := NewStamps(4)
	s.SetGeneration(math.MaxUint32 - 1)
	s.Advance()
	if s.Generation() != math.MaxUint32 {
		t.Fatalf("generation = %d, want MaxUint32", s.Generation())
	}
	s.Visit(2)

	s.Advance()
	if s.Generation() != 1 {
		t.Fatalf("generation after exhaustion = %d, want 1", s.Generation())
	}
	if s.Contains(2) {
		t.Error("stale stamp survived exhaustion reset")
	}

	// A stamp written at generation 1 before exhaustion must not leak into
	// the restarted generation 1.
	s2 := NewStamps(4)
	s2.Advance()
	s2.Visit(3)
	s2.SetGeneration(math.MaxUint32)
	s2.Advance()
	if s2.Contains(3) {
		t.Error("stamp from an earlier cycle satisfied membership")
	}
}

func TestStamps_SetGeneration(t *testing.T) {
	s := NewStamps(4)
	s.Advance()
	s.Visit(1)

	// Forward keeps old stamps; they are older than the new generation.
	s.SetGeneration(10)
	s.Advance()
	if s.Contains(1) {
		t.Error("stamp from generation 1 is live in generation 11")
	}
	s.Visit(2)

	// Backward clears them, so a later stamp cannot be read as current.
	s.SetGeneration(10)
	s.Advance()
	if s.Generation() != 11 {
		t.Fatalf("generation = %d, want 11", s.Generation())
	}
	if s.Contains(2) {
		t.Error("stamp written at generation 11 survived rewinding to 10")
	}
	if !s.Visit(2) {
		t.Error("visit after rewind should report new")
	}
}

func TestStamps_Reset(t *testing.T) {
	s := NewStamps(2)
	s.Advance()
	s.Visit(1)
	s.Reset()
	if s.Generation() != 0 {
		t.Errorf("reset generation = %d, want 0", s.Generation())
	}
	if s.Size() != 2 {
		t.Errorf("size = %d, want 2", s.Size())
	}
	s.Advance()
	if s.Contains(1) {
		t.Error("reset should clear stamps")
	}
}
