package nfa

import (
	"fmt"
	"io"
	"strconv"
)

// StateID uniquely identifies an NFA state.
// It is an index into the NFA's state arena.
type StateID uint32

// InvalidState represents an invalid/unresolved state ID
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateLiteral consumes one byte equal to its literal and moves to out
	StateLiteral StateKind = iota

	// StateSplit is an epsilon transition to two states
	StateSplit

	// StateMatch is the single accepting state
	StateMatch
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateLiteral:
		return "Literal"
	case StateSplit:
		return "Split"
	case StateMatch:
		return "Match"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is a single NFA state. The kind determines which fields are valid:
//   - Literal: b and out
//   - Split: out (out1) and out2
//   - Match: none
type State struct {
	kind StateKind
	b    byte
	out  StateID
	out2 StateID
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// Literal returns the byte and target of a Literal state.
// Returns (0, InvalidState) for other states.
func (s *State) Literal() (b byte, next StateID) {
	if s.kind == StateLiteral {
		return s.b, s.out
	}
	return 0, InvalidState
}

// Split returns the two targets of a Split state.
// Returns (InvalidState, InvalidState) for other states.
func (s *State) Split() (out1, out2 StateID) {
	if s.kind == StateSplit {
		return s.out, s.out2
	}
	return InvalidState, InvalidState
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateLiteral:
		return fmt.Sprintf("Literal %s -> %d", strconv.QuoteRuneToASCII(rune(s.b)), s.out)
	case StateSplit:
		return fmt.Sprintf("Split -> [%d, %d]", s.out, s.out2)
	case StateMatch:
		return "Match"
	default:
		return s.kind.String()
	}
}

// NFA is a compiled Thompson NFA: an arena of states and a start handle.
//
// An NFA is immutable once built and may be shared by any number of
// Matchers, including Matchers running on different goroutines.
type NFA struct {
	states []State
	start  StateID
	match  StateID
}

// Start returns the start state
func (n *NFA) Start() StateID {
	return n.start
}

// MatchState returns the ID of the single Match state
func (n *NFA) MatchState() StateID {
	return n.match
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch returns true if the given state is a match state
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// String returns a human-readable summary of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, match: %d}", len(n.states), n.start, n.match)
}

// Dump writes one line per state to w, marking the start state.
func (n *NFA) Dump(w io.Writer) error {
	for i := range n.states {
		marker := ' '
		if StateID(i) == n.start {
			marker = '>'
		}
		if _, err := fmt.Fprintf(w, "%c%04d: %s\n", marker, i, n.states[i].String()); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the start state and every edge refer to states of
// this NFA and that exactly one Match state exists.
func (n *NFA) Validate() error {
	if int(n.start) >= len(n.states) {
		return &BuildError{Message: "start state out of bounds", Offset: -1, StateID: n.start, Err: ErrInvalidState}
	}
	matches := 0
	for i := range n.states {
		s := &n.states[i]
		id := StateID(i)
		switch s.kind {
		case StateLiteral:
			if int(s.out) >= len(n.states) {
				return &BuildError{Message: fmt.Sprintf("invalid out state %d", s.out), Offset: -1, StateID: id, Err: ErrInvalidState}
			}
		case StateSplit:
			if int(s.out) >= len(n.states) {
				return &BuildError{Message: fmt.Sprintf("invalid out1 state %d", s.out), Offset: -1, StateID: id, Err: ErrInvalidState}
			}
			if int(s.out2) >= len(n.states) {
				return &BuildError{Message: fmt.Sprintf("invalid out2 state %d", s.out2), Offset: -1, StateID: id, Err: ErrInvalidState}
			}
		case StateMatch:
			matches++
		}
	}
	if matches != 1 {
		return &BuildError{Message: fmt.Sprintf("expected 1 match state, found %d", matches), Offset: -1, StateID: InvalidState, Err: ErrInvalidState}
	}
	return nil
}

// Equivalent reports whether a and b have the same shape: the same number
// of states and the same transitions once handles are renumbered.
func Equivalent(a, b *NFA) bool {
	if a.States() != b.States() {
		return false
	}
	fwd := make([]StateID, a.States())
	rev := make([]StateID, b.States())
	for i := range fwd {
		fwd[i] = InvalidState
		rev[i] = InvalidState
	}

	type pair struct{ x, y StateID }
	stack := []pair{{a.start, b.start}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case fwd[p.x] == InvalidState && rev[p.y] == InvalidState:
			fwd[p.x], rev[p.y] = p.y, p.x
		case fwd[p.x] == p.y && rev[p.y] == p.x:
			continue
		default:
			return false
		}

		sa, sb := &a.states[p.x], &b.states[p.y]
		if sa.kind != sb.kind {
			return false
		}
		switch sa.kind {
		case StateLiteral:
			if sa.b != sb.b {
				return false
			}
			stack = append(stack, pair{sa.out, sb.out})
		case StateSplit:
			stack = append(stack, pair{sa.out2, sb.out2}, pair{sa.out, sb.out})
		}
	}
	return true
}
