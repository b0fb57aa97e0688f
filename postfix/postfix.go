// Package postfix converts infix patterns into the postfix programs consumed
// by the Thompson construction in package nfa.
//
// The supported syntax is deliberately tiny: single-byte literals,
// concatenation, alternation (|), the repetition operators *, + and ?, and
// grouping with parentheses. Concatenation is implicit in the pattern and
// becomes an explicit '.' token in the program, which is why '.' itself is
// not accepted as a literal.
//
// Example:
//
//	prog, err := postfix.ConvertString("a(b|c)*d")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(prog) // abc|*.d.
package postfix

// Postfix operator tokens.
const (
	OpConcat    byte = '.'
	OpAlternate byte = '|'
	OpStar      byte = '*'
	OpPlus      byte = '+'
	OpQuest     byte = '?'
)

const (
	// MaxPatternLen is the exclusive upper bound on pattern length. Inserted
	// concatenation tokens can roughly double the length of the program.
	MaxPatternLen = 4000

	// MaxNesting is the exclusive upper bound on group nesting depth.
	MaxNesting = 100
)

// Program is a postfix token sequence. Bytes that are not one of the
// operator tokens are literals.
type Program []byte

// String returns the program as text.
func (p Program) String() string {
	return string(p)
}

// IsOperator reports whether b is a postfix operator token.
func IsOperator(b byte) bool {
	switch b {
	case OpConcat, OpAlternate, OpStar, OpPlus, OpQuest:
		return true
	}
	return false
}

// Arity returns the number of operands consumed by token b.
// Literals consume none.
func Arity(b byte) int {
	switch b {
	case OpConcat, OpAlternate:
		return 2
	case OpStar, OpPlus, OpQuest:
		return 1
	}
	return 0
}

// Validate reports whether the program reduces to exactly one value when
// evaluated left to right.
func (p Program) Validate() bool {
	depth := 0
	for _, b := range p {
		n := Arity(b)
		if depth < n {
			return false
		}
		depth = depth - n + 1
	}
	return depth == 1
}

// paren saves the enclosing counters while a group is being converted.
type paren struct {
	nalt  int
	natom int
}

// Convert rewrites an infix pattern into a postfix program.
//
// Two counters drive the conversion: natom counts atoms waiting to be joined
// by concatenation and nalt counts alternations waiting to be emitted. Groups
// save both counters on a stack and restore them when closed, counting the
// whole group as one atom of the enclosing expression.
func Convert(pattern []byte) (Program, error) {
	fail := func(offset int, kind error) (Program, error) {
		return nil, &SyntaxError{Pattern: string(pattern), Offset: offset, Kind: kind}
	}

	if len(pattern) == 0 {
		return fail(0, ErrEmptyPattern)
	}
	if len(pattern) >= MaxPatternLen {
		return fail(MaxPatternLen, ErrPatternTooLong)
	}

	dst := make(Program, 0, 2*len(pattern))
	var stack []paren
	nalt, natom := 0, 0

	for i, c := range pattern {
		switch c {
		case '(':
			if natom > 1 {
				natom--
				dst = append(dst, OpConcat)
			}
			if len(stack) >= MaxNesting-1 {
				return fail(i, ErrNestingTooDeep)
			}
			stack = append(stack, paren{nalt: nalt, natom: natom})
			nalt, natom = 0, 0
		case '|':
			if natom == 0 {
				return fail(i, ErrMissingOperand)
			}
			for natom--; natom > 0; natom-- {
				dst = append(dst, OpConcat)
			}
			nalt++
		case ')':
			if len(stack) == 0 {
				return fail(i, ErrUnbalancedParen)
			}
			if natom == 0 {
				return fail(i, ErrMissingOperand)
			}
			for natom--; natom > 0; natom-- {
				dst = append(dst, OpConcat)
			}
			for ; nalt > 0; nalt-- {
				dst = append(dst, OpAlternate)
			}
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			nalt, natom = p.nalt, p.natom+1
		case OpStar, OpPlus, OpQuest:
			if natom == 0 {
				return fail(i, ErrMissingOperand)
			}
			dst = append(dst, c)
		case OpConcat:
			return fail(i, ErrDotLiteral)
		default:
			if natom > 1 {
				natom--
				dst = append(dst, OpConcat)
			}
			dst = append(dst, c)
			natom++
		}
	}

	if len(stack) != 0 {
		return fail(len(pattern), ErrUnclosedGroup)
	}
	if natom == 0 && nalt > 0 {
		return fail(len(pattern), ErrTrailingAlternation)
	}
	for natom--; natom > 0; natom-- {
		dst = append(dst, OpConcat)
	}
	for ; nalt > 0; nalt-- {
		dst = append(dst, OpAlternate)
	}
	return dst, nil
}

// ConvertString is Convert for string patterns.
func ConvertString(pattern string) (Program, error) {
	return Convert([]byte(pattern))
}
