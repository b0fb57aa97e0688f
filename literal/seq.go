// Package literal analyses postfix programs for literal strings that the
// meta engine can exploit before, or instead of, running the NFA.
//
// Two facts are derived for every sub-expression:
//   - the exact language, when it is a small finite set of strings
//     (e.g. /foo|bar/ → {"bar", "foo"})
//   - a set of factors: literals of which every string in the language
//     contains at least one (e.g. /(ab)+c*/ → {"ab"})
//
// Both are conservative. An unknown exact language or an unconstrained
// factor set is represented by a nil *Seq.
package literal

import (
	"bytes"
	"sort"
	"strings"
)

// Literal represents a literal byte sequence extracted from a pattern.
// The Complete flag indicates whether this literal is a whole member of the
// language (true) or only a factor of its members (false).
//
// Example:
//   - Pattern /ab|cd/ → Literal{[]byte("ab"), true}, Literal{[]byte("cd"), true}
//   - Pattern /(ab)+/ → Literal{[]byte("ab"), false}
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of distinct literals kept in byte order.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq) // [bar foo]
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals, sorting them and
// dropping duplicates.
func NewSeq(lits ...Literal) *Seq {
	s := &Seq{literals: append([]Literal(nil), lits...)}
	s.normalize()
	return s
}

func (s *Seq) normalize() {
	sort.Slice(s.literals, func(i, j int) bool {
		return bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes) < 0
	})
	out := s.literals[:0]
	for i, lit := range s.literals {
		if i > 0 && bytes.Equal(lit.Bytes, out[len(out)-1].Bytes) {
			continue
		}
		out = append(out, lit)
	}
	s.literals = out
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// IsEmpty returns true if the sequence holds no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Contains reports whether b is one of the literals.
func (s *Seq) Contains(b []byte) bool {
	if s == nil {
		return false
	}
	i := sort.Search(len(s.literals), func(i int) bool {
		return bytes.Compare(s.literals[i].Bytes, b) >= 0
	})
	return i < len(s.literals) && bytes.Equal(s.literals[i].Bytes, b)
}

// HasEmpty reports whether the empty string is in the sequence.
func (s *Seq) HasEmpty() bool {
	// sorted order puts "" first
	return s.Len() > 0 && len(s.literals[0].Bytes) == 0
}

// MinLen returns the length of the shortest literal, or 0 for an empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	m := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		if lit.Len() < m {
			m = lit.Len()
		}
	}
	return m
}

// Strings returns the literals as strings.
func (s *Seq) Strings() []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = string(s.literals[i].Bytes)
	}
	return out
}

// String returns the literals in bracketed, space separated form.
func (s *Seq) String() string {
	if s == nil {
		return "<nil>"
	}
	return "[" + strings.Join(s.Strings(), " ") + "]"
}

// asFactors returns the sequence re-marked as factors.
func (s *Seq) asFactors() *Seq {
	out := &Seq{literals: make([]Literal, len(s.literals))}
	for i, lit := range s.literals {
		out.literals[i] = NewLiteral(lit.Bytes, false)
	}
	return out
}

// union merges a and b, marking every literal with complete.
func union(a, b *Seq, complete bool) *Seq {
	lits := make([]Literal, 0, a.Len()+b.Len())
	for _, lit := range a.literals {
		lits = append(lits, NewLiteral(lit.Bytes, complete))
	}
	for _, lit := range b.literals {
		lits = append(lits, NewLiteral(lit.Bytes, complete))
	}
	return NewSeq(lits...)
}

// cross returns every concatenation of a literal of a with a literal of b.
func cross(a, b *Seq) *Seq {
	lits := make([]Literal, 0, a.Len()*b.Len())
	for _, x := range a.literals {
		for _, y := range b.literals {
			buf := make([]byte, 0, len(x.Bytes)+len(y.Bytes))
			buf = append(buf, x.Bytes...)
			buf = append(buf, y.Bytes...)
			lits = append(lits, NewLiteral(buf, true))
		}
	}
	return NewSeq(lits...)
}

// maxLen returns the length of the longest literal.
func (s *Seq) maxLen() int {
	m := 0
	for _, lit := range s.literals {
		if lit.Len() > m {
			m = lit.Len()
		}
	}
	return m
}
