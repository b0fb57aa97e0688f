package nfa

import (
	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/postfix"
)

// patchSlot selects which edge of a state a patch rewrites.
type patchSlot uint8

const (
	// slotOut is a Literal's out or a Split's out1
	slotOut patchSlot = iota
	// slotOut2 is a Split's out2
	slotOut2
)

// patch is an edge whose target is not known yet.
type patch struct {
	state StateID
	slot  patchSlot
}

// frag is a partially built NFA: a start state and the dangling edges that
// must be connected to whatever follows it.
type frag struct {
	start StateID
	out   []patch
}

// Builder constructs NFAs from postfix programs using Thompson's construction.
// A Builder can be reused; each Build call starts from an empty arena.
type Builder struct {
	states []State
	stack  []frag
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

// Build runs Thompson's construction over prog.
// It never returns a partially built NFA.
func Build(prog postfix.Program) (*NFA, error) {
	// A program has at most one state per token plus the Match state.
	return NewBuilderWithCapacity(len(prog) + 1).Build(prog)
}

// Build runs Thompson's construction over prog.
//
// Each token pops its operands from a fragment stack and pushes the combined
// fragment. Patch lists are concatenated without looking at their targets,
// which is what lets '*' and '+' point a body back at a Split that is only
// allocated after the body exists.
func (b *Builder) Build(prog postfix.Program) (*NFA, error) {
	b.states = b.states[:0]
	b.stack = b.stack[:0]

	for i, c := range prog {
		switch c {
		case postfix.OpConcat:
			e2, e1, ok := b.pop2()
			if !ok {
				return nil, arityError(i, "concatenation needs two operands")
			}
			b.patch(e1.out, e2.start)
			b.push(frag{start: e1.start, out: e2.out})
		case postfix.OpAlternate:
			e2, e1, ok := b.pop2()
			if !ok {
				return nil, arityError(i, "alternation needs two operands")
			}
			s := b.addSplit(e1.start, e2.start)
			b.push(frag{start: s, out: append(e1.out, e2.out...)})
		case postfix.OpQuest:
			e, ok := b.pop()
			if !ok {
				return nil, arityError(i, "'?' needs an operand")
			}
			s := b.addSplit(e.start, InvalidState)
			b.push(frag{start: s, out: append(e.out, patch{state: s, slot: slotOut2})})
		case postfix.OpStar:
			e, ok := b.pop()
			if !ok {
				return nil, arityError(i, "'*' needs an operand")
			}
			s := b.addSplit(e.start, InvalidState)
			b.patch(e.out, s)
			b.push(frag{start: s, out: []patch{{state: s, slot: slotOut2}}})
		case postfix.OpPlus:
			e, ok := b.pop()
			if !ok {
				return nil, arityError(i, "'+' needs an operand")
			}
			s := b.addSplit(e.start, InvalidState)
			b.patch(e.out, s)
			b.push(frag{start: e.start, out: []patch{{state: s, slot: slotOut2}}})
		default:
			s := b.addLiteral(c)
			b.push(frag{start: s, out: []patch{{state: s, slot: slotOut}}})
		}
	}

	e, ok := b.pop()
	if !ok || len(b.stack) != 0 {
		return nil, arityError(-1, "program does not reduce to a single fragment")
	}
	m := b.addMatch()
	b.patch(e.out, m)

	n := &NFA{
		states: b.states,
		start:  e.start,
		match:  m,
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	// The arena now belongs to n.
	b.states = nil
	return n, nil
}

func arityError(offset int, msg string) error {
	return &BuildError{Message: msg, Offset: offset, StateID: InvalidState, Err: ErrArity}
}

func (b *Builder) push(f frag) {
	b.stack = append(b.stack, f)
}

func (b *Builder) pop() (frag, bool) {
	if len(b.stack) == 0 {
		return frag{}, false
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f, true
}

// pop2 pops the top fragment and the one beneath it.
func (b *Builder) pop2() (top, below frag, ok bool) {
	if len(b.stack) < 2 {
		return frag{}, frag{}, false
	}
	top, _ = b.pop()
	below, _ = b.pop()
	return top, below, true
}

func (b *Builder) alloc(s State) StateID {
	id := StateID(conv.IntToHandle(len(b.states)))
	b.states = append(b.states, s)
	return id
}

func (b *Builder) addLiteral(c byte) StateID {
	return b.alloc(State{kind: StateLiteral, b: c, out: InvalidState, out2: InvalidState})
}

func (b *Builder) addSplit(out1, out2 StateID) StateID {
	return b.alloc(State{kind: StateSplit, out: out1, out2: out2})
}

func (b *Builder) addMatch() StateID {
	return b.alloc(State{kind: StateMatch, out: InvalidState, out2: InvalidState})
}

// patch points every edge in l at target.
func (b *Builder) patch(l []patch, target StateID) {
	for _, p := range l {
		s := &b.states[p.state]
		switch p.slot {
		case slotOut:
			s.out = target
		case slotOut2:
			s.out2 = target
		}
	}
}
