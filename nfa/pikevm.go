package nfa

import (
	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/internal/sparse"
)

// Matcher runs the Pike VM simulation of an NFA over whole haystacks.
//
// A Matcher owns two active-state lists and a generation-stamp table, all
// sized to the NFA once. IsMatch reuses them, so matching never allocates.
//
// Thread safety: the NFA is shared read-only, but a Matcher is not safe for
// concurrent use. Give each goroutine its own Matcher (or pool them).
type Matcher struct {
	nfa *NFA

	// clist holds the states live before the current byte, nlist the
	// states live after it.
	clist *sparse.StateList
	nlist *sparse.StateList

	// stamps dedups insertions into the list being filled
	stamps *sparse.Stamps

	// stack is the work list for epsilon closure. Each state is pushed at
	// most once per generation, so its capacity never needs to grow.
	stack []StateID
}

// NewMatcher creates a Matcher for n
func NewMatcher(n *NFA) *Matcher {
	size := conv.IntToUint32(n.States())
	return &Matcher{
		nfa:    n,
		clist:  sparse.NewStateList(size),
		nlist:  sparse.NewStateList(size),
		stamps: sparse.NewStamps(size),
		stack:  make([]StateID, 0, n.States()),
	}
}

// NFA returns the automaton this Matcher simulates
func (m *Matcher) NFA() *NFA {
	return m.nfa
}

// IsMatch reports whether the entire haystack is in the language of the NFA.
// A prefix match is not enough: every byte must be consumed and the Match
// state must be live afterwards.
func (m *Matcher) IsMatch(haystack []byte) bool {
	m.start()
	for _, c := range haystack {
		if m.clist.Len() == 0 {
			return false
		}
		m.step(c)
		m.clist, m.nlist = m.nlist, m.clist
	}
	return m.matched()
}

// IsMatchString is IsMatch for strings
func (m *Matcher) IsMatchString(haystack string) bool {
	m.start()
	for i := 0; i < len(haystack); i++ {
		if m.clist.Len() == 0 {
			return false
		}
		m.step(haystack[i])
		m.clist, m.nlist = m.nlist, m.clist
	}
	return m.matched()
}

// Reset discards all search state, including the generation counter.
func (m *Matcher) Reset() {
	m.clist.Clear()
	m.nlist.Clear()
	m.stamps.Reset()
}

// start fills clist with the epsilon closure of the start state.
func (m *Matcher) start() {
	m.stamps.Advance()
	m.nlist.Clear()
	m.addState(m.nlist, m.nfa.start)
	m.clist, m.nlist = m.nlist, m.clist
}

// step moves every Literal in clist that accepts c to its target in nlist.
func (m *Matcher) step(c byte) {
	m.stamps.Advance()
	m.nlist.Clear()
	for _, id := range m.clist.Values() {
		s := &m.nfa.states[id]
		if s.kind == StateLiteral && s.b == c {
			m.addState(m.nlist, s.out)
		}
	}
}

// addState inserts the epsilon closure of id into l.
//
// Split states are expanded instead of stored. A state already stamped in
// this generation is skipped, which bounds the work by the number of states
// and terminates on the cycles created by '*' and '+'.
func (m *Matcher) addState(l *sparse.StateList, id StateID) {
	m.stack = m.stack[:0]
	sid := id
	for {
		if m.stamps.Visit(uint32(sid)) {
			s := &m.nfa.states[sid]
			if s.kind == StateSplit {
				// push out2, continue with out1
				m.stack = append(m.stack, s.out2)
				sid = s.out
				continue
			}
			l.Push(uint32(sid))
		}
		if len(m.stack) == 0 {
			return
		}
		sid = m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
	}
}

// matched reports whether Match is in clist. clist was filled in the current
// generation and Match is never expanded, so its stamp is the membership bit.
func (m *Matcher) matched() bool {
	return m.stamps.Contains(uint32(m.nfa.match))
}
