// Package syntax is an independent, grammar-based front end for the pattern
// language. It parses a pattern into a tree with participle and can decide
// membership directly on the tree.
//
// The matcher proper never uses this package; it exists as a second opinion.
// Tests compare the Pike VM against Accepts, and the command line tool prints
// the tree with -ast.
package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/coregx/thompson/postfix"
)

// Grammar:
//
//	alternation   := concatenation ( '|' concatenation )*
//	concatenation := repetition+
//	repetition    := atom ( '*' | '+' | '?' )*
//	atom          := Char | '(' alternation ')'
type alternation struct {
	Branches []*concatenation `parser:"@@ ( '|' @@ )*"`
}

type concatenation struct {
	Items []*repetition `parser:"@@+"`
}

type repetition struct {
	Atom *atom    `parser:"@@"`
	Ops  []string `parser:"@( '*' | '+' | '?' )*"`
}

type atom struct {
	Char  *string      `parser:"  @Char"`
	Group *alternation `parser:"| '(' @@ ')'"`
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `[()|*+?]`},
	{Name: "Char", Pattern: `(?s).`},
})

var parser = participle.MustBuild[alternation](participle.Lexer(patternLexer))

// Parse parses pattern into a tree.
//
// It accepts exactly the patterns postfix.Convert accepts. Errors wrap
// postfix.ErrSyntax.
func Parse(pattern string) (*Regexp, error) {
	switch {
	case len(pattern) == 0:
		return nil, postfix.ErrEmptyPattern
	case len(pattern) >= postfix.MaxPatternLen:
		return nil, postfix.ErrPatternTooLong
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == postfix.OpConcat {
			return nil, postfix.ErrDotLiteral
		}
	}

	tree, err := parser.ParseString("pattern", pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", postfix.ErrSyntax, err)
	}
	if d := groupDepth(tree); d >= postfix.MaxNesting {
		return nil, postfix.ErrNestingTooDeep
	}
	return fromAlternation(tree), nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Regexp {
	re, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

func groupDepth(a *alternation) int {
	depth := 0
	for _, c := range a.Branches {
		for _, r := range c.Items {
			if r.Atom.Group != nil {
				if d := 1 + groupDepth(r.Atom.Group); d > depth {
					depth = d
				}
			}
		}
	}
	return depth
}

func fromAlternation(a *alternation) *Regexp {
	if len(a.Branches) == 1 {
		return fromConcatenation(a.Branches[0])
	}
	re := &Regexp{Op: OpAlternate}
	for _, c := range a.Branches {
		re.Sub = append(re.Sub, fromConcatenation(c))
	}
	return re
}

func fromConcatenation(c *concatenation) *Regexp {
	var items []*Regexp
	for _, r := range c.Items {
		items = append(items, fromRepetition(r)...)
	}
	if len(items) == 1 {
		return items[0]
	}
	return &Regexp{Op: OpConcat, Sub: items}
}

// fromRepetition returns the items a repetition contributes to its
// concatenation. The lexer yields whole UTF-8 characters but operators bind
// to single bytes, so a multi-byte character becomes one literal per byte
// with the operators applied to the last one.
func fromRepetition(r *repetition) []*Regexp {
	var items []*Regexp
	var re *Regexp
	if r.Atom.Group != nil {
		re = fromAlternation(r.Atom.Group)
	} else {
		s := *r.Atom.Char
		for i := 0; i < len(s)-1; i++ {
			items = append(items, &Regexp{Op: OpLiteral, Byte: s[i]})
		}
		re = &Regexp{Op: OpLiteral, Byte: s[len(s)-1]}
	}
	for _, op := range r.Ops {
		switch op {
		case "*":
			re = &Regexp{Op: OpStar, Sub: []*Regexp{re}}
		case "+":
			re = &Regexp{Op: OpPlus, Sub: []*Regexp{re}}
		case "?":
			re = &Regexp{Op: OpQuest, Sub: []*Regexp{re}}
		}
	}
	return append(items, re)
}
