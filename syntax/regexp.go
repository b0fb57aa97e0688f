package syntax

import (
	"strings"

	"github.com/coregx/thompson/postfix"
)

// Op is the kind of a tree node.
type Op uint8

// Tree node kinds.
const (
	OpLiteral Op = iota + 1
	OpConcat
	OpAlternate
	OpStar
	OpPlus
	OpQuest
)

var opNames = map[Op]string{
	OpLiteral:   "Literal",
	OpConcat:    "Concat",
	OpAlternate: "Alternate",
	OpStar:      "Star",
	OpPlus:      "Plus",
	OpQuest:     "Quest",
}

// String returns the name of the operator
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "Op(?)"
}

// Regexp is a node of a parsed pattern.
// Concat and Alternate have two or more subexpressions, the repetition
// operators exactly one, and Literal none.
type Regexp struct {
	Op   Op
	Byte byte
	Sub  []*Regexp
}

// String returns a fully parenthesised rendering: every concatenation and
// alternation is wrapped in parentheses.
func (re *Regexp) String() string {
	var sb strings.Builder
	re.write(&sb)
	return sb.String()
}

func (re *Regexp) write(sb *strings.Builder) {
	switch re.Op {
	case OpLiteral:
		sb.WriteByte(re.Byte)
	case OpConcat, OpAlternate:
		sb.WriteByte('(')
		for i, sub := range re.Sub {
			if i > 0 && re.Op == OpAlternate {
				sb.WriteByte('|')
			}
			sub.write(sb)
		}
		sb.WriteByte(')')
	case OpStar:
		re.Sub[0].write(sb)
		sb.WriteByte(postfix.OpStar)
	case OpPlus:
		re.Sub[0].write(sb)
		sb.WriteByte(postfix.OpPlus)
	case OpQuest:
		re.Sub[0].write(sb)
		sb.WriteByte(postfix.OpQuest)
	}
}

// Dump writes an indented tree, one node per line.
func (re *Regexp) Dump() string {
	var sb strings.Builder
	re.dump(&sb, 0)
	return sb.String()
}

func (re *Regexp) dump(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(re.Op.String())
	if re.Op == OpLiteral {
		sb.WriteString(" ")
		sb.WriteString(quoteByte(re.Byte))
	}
	sb.WriteByte('\n')
	for _, sub := range re.Sub {
		sub.dump(sb, depth+1)
	}
}

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f && b != '\'' && b != '\\' {
		return "'" + string(b) + "'"
	}
	const hex = "0123456789abcdef"
	return `'\x` + string(hex[b>>4]) + string(hex[b&0xf]) + "'"
}

// Postfix returns the postfix program for the tree. For any pattern p,
// MustParse(p).Postfix() equals the program postfix.Convert produces.
func (re *Regexp) Postfix() postfix.Program {
	var prog postfix.Program
	re.postfix(&prog)
	return prog
}

func (re *Regexp) postfix(prog *postfix.Program) {
	switch re.Op {
	case OpLiteral:
		*prog = append(*prog, re.Byte)
	case OpConcat:
		re.Sub[0].postfix(prog)
		for _, sub := range re.Sub[1:] {
			sub.postfix(prog)
			*prog = append(*prog, postfix.OpConcat)
		}
	case OpAlternate:
		for _, sub := range re.Sub {
			sub.postfix(prog)
		}
		for range re.Sub[1:] {
			*prog = append(*prog, postfix.OpAlternate)
		}
	case OpStar:
		re.Sub[0].postfix(prog)
		*prog = append(*prog, postfix.OpStar)
	case OpPlus:
		re.Sub[0].postfix(prog)
		*prog = append(*prog, postfix.OpPlus)
	case OpQuest:
		re.Sub[0].postfix(prog)
		*prog = append(*prog, postfix.OpQuest)
	}
}

// Accepts reports whether the whole of s is in the language of re.
//
// It evaluates the tree over sets of positions: each node maps the set of
// positions where it may start to the set where it may end. The work is
// polynomial in len(s), unlike naive backtracking.
func (re *Regexp) Accepts(s []byte) bool {
	start := make(posSet, len(s)+1)
	start[0] = true
	return re.ends(s, start)[len(s)]
}

// posSet marks positions 0..len(s) of the input.
type posSet []bool

func (p posSet) union(q posSet) {
	for i, ok := range q {
		if ok {
			p[i] = true
		}
	}
}

func (p posSet) clone() posSet {
	return append(posSet(nil), p...)
}

func (re *Regexp) ends(s []byte, starts posSet) posSet {
	out := make(posSet, len(starts))
	switch re.Op {
	case OpLiteral:
		for i, ok := range starts {
			if ok && i < len(s) && s[i] == re.Byte {
				out[i+1] = true
			}
		}
	case OpConcat:
		cur := starts
		for _, sub := range re.Sub {
			cur = sub.ends(s, cur)
		}
		out = cur
	case OpAlternate:
		for _, sub := range re.Sub {
			out.union(sub.ends(s, starts))
		}
	case OpQuest:
		out.union(starts)
		out.union(re.Sub[0].ends(s, starts))
	case OpStar:
		out = closure(re.Sub[0], s, starts.clone())
	case OpPlus:
		out = closure(re.Sub[0], s, re.Sub[0].ends(s, starts))
	}
	return out
}

// closure extends reached with every position reachable by further
// repetitions of sub, until nothing new is found.
func closure(sub *Regexp, s []byte, reached posSet) posSet {
	frontier := reached.clone()
	for {
		next := sub.ends(s, frontier)
		var grew bool
		frontier = make(posSet, len(reached))
		for i, ok := range next {
			if ok && !reached[i] {
				reached[i] = true
				frontier[i] = true
				grew = true
			}
		}
		if !grew {
			return reached
		}
	}
}
