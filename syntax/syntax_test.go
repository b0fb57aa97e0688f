package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/postfix"
)

var corpus = []string{
	"a", "ab", "abc", "a|b", "a|b|c", "ab|cd", "a*", "a+", "a?", "a**",
	"(ab)+", "a?b", "a(b|c)*d", "(a|b)(c|d)", "((a))", "x(y(z))",
	"(a|b)*abb", "((ab)?c)+", "(a*)*b", "a b", "é+", "(é|ü)?x",
	"(((a|b)c)|d)*e?", "a+|b*|c?",
}

func TestParse_String(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "a"},
		{"abc", "(abc)"},
		{"a|bc", "(a|(bc))"},
		{"a(b|c)*d", "(a(b|c)*d)"},
		{"((a))", "a"},
		{"(ab)+?", "(ab)+?"},
		{"ab*", "(ab*)"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.pattern).String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	patterns := []string{
		"", "a|", "(a|)", "a||b", "(", ")", "a.b", "()", "*a", "|a", "a)", "(a",
		strings.Repeat("a", postfix.MaxPatternLen),
		strings.Repeat("(", postfix.MaxNesting) + "a" + strings.Repeat(")", postfix.MaxNesting),
	}
	for _, p := range patterns {
		name := p
		if len(name) > 20 {
			name = name[:20]
		}
		t.Run(name, func(t *testing.T) {
			re, err := Parse(p)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", p, re)
			}
			if !errors.Is(err, postfix.ErrSyntax) {
				t.Errorf("error %v does not wrap postfix.ErrSyntax", err)
			}
			if _, cerr := postfix.ConvertString(p); cerr == nil {
				t.Errorf("converter accepted %q which the grammar rejects", p)
			}
		})
	}
}

// TestPostfix_MatchesConverter checks both front ends produce the same program.
func TestPostfix_MatchesConverter(t *testing.T) {
	for _, p := range corpus {
		want, err := postfix.ConvertString(p)
		if err != nil {
			t.Fatalf("ConvertString(%q): %v", p, err)
		}
		if got := MustParse(p).Postfix(); got.String() != want.String() {
			t.Errorf("%q: tree postfix %q, converter %q", p, got, want)
		}
	}
}

// TestAccepts_AgreesWithNFA is the formal-language property: the Pike VM
// accepts exactly the strings the tree denotes.
func TestAccepts_AgreesWithNFA(t *testing.T) {
	haystacks := enumerate("abcd", 6)
	for _, p := range corpus {
		if strings.ContainsAny(p, " éü") {
			continue
		}
		re := MustParse(p)
		m := nfa.NewMatcher(nfa.MustCompile(p))
		for _, h := range haystacks {
			want := re.Accepts([]byte(h))
			if got := m.IsMatchString(h); got != want {
				t.Errorf("%q on %q: NFA %v, tree %v", p, h, got, want)
			}
		}
	}
}

func TestAccepts_MultiByte(t *testing.T) {
	re := MustParse("é+")
	tests := []struct {
		s    string
		want bool
	}{
		{"é", true},
		{"\xc3\xa9\xa9", true}, // '+' binds to the last byte
		{"éé", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := re.Accepts([]byte(tt.s)); got != tt.want {
			t.Errorf("Accepts(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	got := MustParse("a(b|c)*").Dump()
	want := "Concat\n  Literal 'a'\n  Star\n    Alternate\n      Literal 'b'\n      Literal 'c'\n"
	if got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
	if got := MustParse("\n").Dump(); got != "Literal '\\x0a'\n" {
		t.Errorf("Dump() of newline = %q", got)
	}
}

func TestOp_String(t *testing.T) {
	if OpStar.String() != "Star" || Op(0).String() != "Op(?)" {
		t.Errorf("unexpected Op names: %s %s", OpStar, Op(0))
	}
}

func enumerate(alphabet string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for l := 0; l < maxLen; l++ {
		var next []string
		for _, s := range frontier {
			for i := 0; i < len(alphabet); i++ {
				next = append(next, s+alphabet[i:i+1])
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func TestParse_NestingBound(t *testing.T) {
	nest := func(depth int) string {
		return strings.Repeat("(", depth) + "a" + strings.Repeat(")", depth)
	}

	if _, err := Parse(nest(postfix.MaxNesting - 1)); err != nil {
		t.Errorf("Parse at depth %d: %v", postfix.MaxNesting-1, err)
	}
	if _, err := Parse(nest(postfix.MaxNesting)); !errors.Is(err, postfix.ErrNestingTooDeep) {
		t.Errorf("Parse at depth %d error = %v, want ErrNestingTooDeep", postfix.MaxNesting, err)
	}

	tree, err := parser.ParseString("pattern", "(a)((b)|((c)))")
	if err != nil {
		t.Fatal(err)
	}
	if got := groupDepth(tree); got != 3 {
		t.Errorf("groupDepth = %d, want 3", got)
	}
}
