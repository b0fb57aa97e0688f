package literal

import "github.com/coregx/thompson/postfix"

// Config configures literal analysis limits.
//
// The limits keep the analysis linear in practice: alternations and
// concatenations of alternations would otherwise grow the exact sets
// multiplicatively.
type Config struct {
	// MaxLiterals bounds the size of any exact set or factor set.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen bounds the length of literals in an exact set.
	// Default: 256.
	MaxLiteralLen int
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 256,
	}
}

// Info is the result of analysing a program.
type Info struct {
	// Exact is the complete language of the program, or nil if it is
	// infinite or larger than the configured limits.
	Exact *Seq

	// Factors is a set of non-empty literals such that every string in the
	// language contains at least one of them. Nil means no such set is known.
	// When Exact is set, Factors is derived from it.
	Factors *Seq

	// prefix and suffix hold literals every member starts (ends) with.
	// Nil means unknown, which is the same as {""}.
	prefix *Seq
	suffix *Seq
}

// factors returns the literals every member must contain, seen from the
// outside of the sub-expression.
func (i Info) factors() *Seq {
	if i.Exact != nil {
		if i.Exact.HasEmpty() {
			return nil
		}
		return i.Exact.asFactors()
	}
	return i.Factors
}

func (i Info) prefixes() *Seq {
	if i.Exact != nil {
		return i.Exact
	}
	return i.prefix
}

func (i Info) suffixes() *Seq {
	if i.Exact != nil {
		return i.Exact
	}
	return i.suffix
}

// Analyze derives literal Info from a postfix program.
// The program must be valid; an invalid program yields the zero Info.
func Analyze(prog postfix.Program, config Config) Info {
	a := analyzer{config: config}
	return a.run(prog)
}

type analyzer struct {
	config Config
	stack  []Info
}

func (a *analyzer) run(prog postfix.Program) Info {
	for _, c := range prog {
		switch c {
		case postfix.OpConcat:
			y, x, ok := a.pop2()
			if !ok {
				return Info{}
			}
			a.push(a.concat(x, y))
		case postfix.OpAlternate:
			y, x, ok := a.pop2()
			if !ok {
				return Info{}
			}
			a.push(a.alternate(x, y))
		case postfix.OpQuest:
			x, ok := a.pop()
			if !ok {
				return Info{}
			}
			a.push(a.quest(x))
		case postfix.OpStar:
			if _, ok := a.pop(); !ok {
				return Info{}
			}
			a.push(Info{})
		case postfix.OpPlus:
			x, ok := a.pop()
			if !ok {
				return Info{}
			}
			// x+ starts with a member of x and ends with one
			a.push(Info{Factors: x.factors(), prefix: x.prefixes(), suffix: x.suffixes()})
		default:
			a.push(Info{Exact: NewSeq(NewLiteral([]byte{c}, true))})
		}
	}
	if len(a.stack) != 1 {
		return Info{}
	}
	top := a.stack[0]
	if top.Exact != nil {
		top.Factors = top.factors()
	}
	return top
}

func (a *analyzer) concat(x, y Info) Info {
	if x.Exact != nil && y.Exact != nil {
		if e := a.cross(x.Exact, y.Exact); e != nil {
			return Info{Exact: e}
		}
	}

	out := Info{}
	if x.Exact != nil {
		out.prefix = a.cross(x.Exact, y.prefixes())
	} else {
		out.prefix = x.prefix
	}
	if y.Exact != nil {
		out.suffix = a.cross(x.suffixes(), y.Exact)
	} else {
		out.suffix = y.suffix
	}

	// A member is uv with u ending in a suffix of x and v starting with a
	// prefix of y, so the joined literals are factors too.
	var joined *Seq
	if j := a.cross(x.suffixes(), y.prefixes()); j != nil && !j.HasEmpty() {
		joined = j.asFactors()
	}
	out.Factors = better(better(x.factors(), y.factors()), joined)
	return out
}

func (a *analyzer) alternate(x, y Info) Info {
	if x.Exact != nil && y.Exact != nil {
		if u := union(x.Exact, y.Exact, true); u.Len() <= a.config.MaxLiterals {
			return Info{Exact: u}
		}
	}
	out := Info{
		prefix: a.union(x.prefixes(), y.prefixes()),
		suffix: a.union(x.suffixes(), y.suffixes()),
	}
	fx, fy := x.factors(), y.factors()
	if fx != nil && fy != nil {
		if u := union(fx, fy, false); u.Len() <= a.config.MaxLiterals {
			out.Factors = u
		}
	}
	return out
}

func (a *analyzer) quest(x Info) Info {
	if x.Exact != nil && x.Exact.Len() < a.config.MaxLiterals {
		return Info{Exact: union(x.Exact, NewSeq(NewLiteral([]byte{}, true)), true)}
	}
	return Info{}
}

// cross concatenates two sets within the configured limits. A nil operand is
// treated as {""}. Returns nil when the result would exceed the limits.
func (a *analyzer) cross(x, y *Seq) *Seq {
	if x == nil && y == nil {
		return nil
	}
	if x == nil {
		x = emptySeq
	}
	if y == nil {
		y = emptySeq
	}
	if x.Len()*y.Len() > a.config.MaxLiterals || x.maxLen()+y.maxLen() > a.config.MaxLiteralLen {
		return nil
	}
	return cross(x, y)
}

// union merges two prefix or suffix sets; unknown on either side stays unknown.
func (a *analyzer) union(x, y *Seq) *Seq {
	if x == nil || y == nil {
		return nil
	}
	if u := union(x, y, true); u.Len() <= a.config.MaxLiterals {
		return u
	}
	return nil
}

var emptySeq = NewSeq(NewLiteral([]byte{}, true))

// better picks the factor set that rejects more haystacks: longer shortest
// literal first, then fewer literals.
func better(a, b *Seq) *Seq {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.MinLen() > a.MinLen():
		return b
	case b.MinLen() == a.MinLen() && b.Len() < a.Len():
		return b
	}
	return a
}

func (a *analyzer) push(i Info) {
	a.stack = append(a.stack, i)
}

func (a *analyzer) pop() (Info, bool) {
	if len(a.stack) == 0 {
		return Info{}, false
	}
	i := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	return i, true
}

func (a *analyzer) pop2() (top, below Info, ok bool) {
	if len(a.stack) < 2 {
		return Info{}, Info{}, false
	}
	top, _ = a.pop()
	below, _ = a.pop()
	return top, below, true
}
