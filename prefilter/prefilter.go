// Package prefilter provides fast rejection of haystacks that cannot match a
// pattern, using literals extracted by package literal.
//
// A full-string match requires the haystack to be a member of the pattern's
// language. When the language has a set of required factors (literals every
// member contains), a haystack containing none of them can be rejected without
// running the NFA. Several factors are searched with an Aho-Corasick automaton,
// so the check is a single linear pass regardless of how many there are. A
// lone factor is found with a rare-byte substring scan instead.
//
// Example usage:
//
//	prog, _ := postfix.ConvertString("(x|y)*world")
//	info := literal.Analyze(prog, literal.DefaultConfig())
//	pf, _ := prefilter.New(info.Factors)
//	pf.MayMatch([]byte("xyxyhello")) // false: "world" does not occur
package prefilter

import (
	"errors"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/thompson/literal"
)

// ErrNoFactors is returned when a prefilter is requested for a sequence that
// does not constrain the haystack (nil, empty, or containing "").
var ErrNoFactors = errors.New("prefilter: no usable factors")

// Prefilter decides cheaply whether a haystack could match.
//
// MayMatch never returns false for a haystack that matches the pattern. It
// may return true for haystacks that do not; the caller verifies those with
// the full engine.
type Prefilter interface {
	// MayMatch reports whether haystack can possibly match.
	MayMatch(haystack []byte) bool

	// Len returns the number of literals the prefilter searches for.
	Len() int
}

// factorPrefilter searches for any of a set of required factors.
type factorPrefilter struct {
	auto    *ahocorasick.Automaton
	factors *literal.Seq
}

// New builds a prefilter over factors.
func New(factors *literal.Seq) (Prefilter, error) {
	if factors.IsEmpty() || factors.HasEmpty() {
		return nil, ErrNoFactors
	}
	if factors.Len() == 1 {
		return newMemmem(factors.Get(0).Bytes), nil
	}
	builder := ahocorasick.NewBuilder()
	for i := 0; i < factors.Len(); i++ {
		builder.AddPattern(factors.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &factorPrefilter{auto: auto, factors: factors}, nil
}

// MayMatch implements Prefilter
func (p *factorPrefilter) MayMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

// Len implements Prefilter
func (p *factorPrefilter) Len() int {
	return p.factors.Len()
}

// String returns the factors being searched for
func (p *factorPrefilter) String() string {
	return "factors" + p.factors.String()
}
