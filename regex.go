// Package thompson is a full-string regular expression matcher built on
// Thompson's construction and Pike's linear-time simulation.
//
// The pattern language is deliberately small: literal bytes, concatenation,
// alternation (|), the repetition operators *, + and ?, and grouping with
// parentheses. There are no escapes, classes or anchors, and '.' is not
// accepted as a literal. A pattern matches a haystack only when it matches
// the whole haystack.
//
// Basic usage:
//
//	re, err := thompson.Compile("a(b|c)*d")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("abcbd") // true
//	re.MatchString("abcbdx") // false, full-string semantics
//
// Matching never backtracks. Each call costs O(m*n) for a pattern of m
// states and a haystack of n bytes, whatever the pattern.
//
// Beyond the plain NFA, compilation picks a strategy for each pattern:
//   - Finite languages are answered by set lookup
//   - Patterns with required literal factors reject haystacks through an
//     Aho-Corasick prefilter before simulation
//   - Everything else runs the Pike VM directly
//
// All strategies give the same answer as the NFA for every input.
package thompson

import (
	"errors"

	"github.com/coregx/thompson/meta"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/postfix"
)

// Regex is a compiled pattern.
//
// A Regex is safe for concurrent use by multiple goroutines. ResetStats may
// drop counts from matches running at the same time.
//
// Example:
//
//	re := thompson.MustCompile("(ab)+")
//	if re.MatchString("ababab") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles pattern with the default configuration.
//
// A malformed pattern is reported as *nfa.CompileError wrapping one of the
// postfix.ErrSyntax kinds, so errors.Is(err, postfix.ErrSyntax) holds.
//
// Example:
//
//	re, err := thompson.Compile("a|b")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var greeting = thompson.MustCompile("hel+o")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("thompson: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Example:
//
//	config := thompson.DefaultConfig()
//	config.EnablePrefilter = false // NFA or exact set only
//	re, err := thompson.CompileWithConfig("(a|b)*abb", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.Compile(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// IsSyntaxError reports whether err came from a malformed pattern, as
// opposed to an invalid configuration.
func IsSyntaxError(err error) bool {
	return errors.Is(err, postfix.ErrSyntax)
}

// Match reports whether b, taken as a whole, is in the pattern's language.
//
// Example:
//
//	re := thompson.MustCompile("a?b")
//	re.Match([]byte("ab"))  // true
//	re.Match([]byte("aab")) // false
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether s, taken as a whole, is in the pattern's
// language.
func (r *Regex) MatchString(s string) bool {
	return r.engine.IsMatchString(s)
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Postfix returns the postfix program the pattern was compiled from.
//
// Example:
//
//	thompson.MustCompile("a(b|c)*d").Postfix() // "abc|*.d."
func (r *Regex) Postfix() string {
	return r.engine.Program().String()
}

// NFA returns the compiled automaton. It is immutable and may be shared.
func (r *Regex) NFA() *nfa.NFA {
	return r.engine.NFA()
}

// NewMatcher returns a matcher owned by the caller. It skips the engine's
// pool and fast paths, and is not safe for concurrent use.
func (r *Regex) NewMatcher() *nfa.Matcher {
	return r.engine.NewMatcher()
}

// Strategy returns the execution strategy chosen at compile time.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Stats returns a snapshot of the execution counters.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats zeroes the execution counters.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}
