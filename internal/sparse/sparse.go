// Package sparse provides the fixed-capacity state containers used by the
// Pike VM simulation.
//
// Two pieces cooperate during a search:
//   - StateList is a dense, preallocated list of state handles. Clearing it only
//     resets its length, so a search never allocates.
//   - Stamps records, per state, the generation in which it was last inserted.
//     Advancing the generation empties every logical set at once, which gives
//     O(1) membership tests without scanning or clearing the table.
package sparse

import "math"

// StateList is a list of uint32 state handles with a fixed capacity.
// The capacity is the number of states in the automaton, so a list that never
// holds duplicates can never overflow.
type StateList struct {
	dense []uint32
	n     int
}

// NewStateList creates a list able to hold capacity handles.
func NewStateList(capacity uint32) *StateList {
	return &StateList{dense: make([]uint32, capacity)}
}

// Push appends a handle.
// Panics if the list is full; callers dedup through Stamps first.
func (l *StateList) Push(v uint32) {
	l.dense[l.n] = v
	l.n++
}

// Clear drops all elements in O(1) time. Storage is retained.
func (l *StateList) Clear() {
	l.n = 0
}

// Len returns the number of handles in the list.
func (l *StateList) Len() int {
	return l.n
}

// Cap returns the maximum number of handles the list can hold.
func (l *StateList) Cap() int {
	return len(l.dense)
}

// At returns the i-th handle.
func (l *StateList) At(i int) uint32 {
	return l.dense[i]
}

// Values returns the live portion of the list.
// The returned slice is valid until the next mutation.
func (l *StateList) Values() []uint32 {
	return l.dense[:l.n]
}

// Stamps is a last-seen generation table.
//
// A state is a member of the current generation's set iff its stamp equals
// the current generation. Zero is the "never seen" sentinel, so valid
// generations start at 1.
type Stamps struct {
	seen []uint32
	gen  uint32
}

// NewStamps creates a stamp table for size states.
func NewStamps(size uint32) *Stamps {
	return &Stamps{seen: make([]uint32, size)}
}

// Advance starts a new generation, logically emptying every set.
//
// When the counter is exhausted every stamp is reset to the sentinel and the
// counter restarts at 1; otherwise a stale stamp could equal a reused
// generation and report a state as already present.
func (s *Stamps) Advance() {
	if s.gen == math.MaxUint32 {
		s.Reset()
	}
	s.gen++
}

// Visit stamps id with the current generation.
// It returns true if id was not yet stamped in this generation.
func (s *Stamps) Visit(id uint32) bool {
	if s.seen[id] == s.gen {
		return false
	}
	s.seen[id] = s.gen
	return true
}

// Contains reports whether id was stamped in the current generation.
func (s *Stamps) Contains(id uint32) bool {
	return s.gen != 0 && s.seen[id] == s.gen
}

// Reset clears every stamp and rewinds the counter to its initial value.
func (s *Stamps) Reset() {
	clear(s.seen)
	s.gen = 0
}

// Generation returns the current generation.
func (s *Stamps) Generation() uint32 {
	return s.gen
}

// SetGeneration moves the counter to g. It exists so callers can exercise
// the exhaustion path without running four billion searches.
//
// Moving forward keeps the stored stamps, which are all older than g.
// Moving backward clears them first: a stamp from a later generation would
// otherwise read as visited once the counter catches up with it.
func (s *Stamps) SetGeneration(g uint32) {
	if g < s.gen {
		clear(s.seen)
	}
	s.gen = g
}

// Size returns the number of states the table covers.
func (s *Stamps) Size() int {
	return len(s.seen)
}
