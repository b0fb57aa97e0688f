package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coregx/thompson/nfa"
)

func TestRenderParses(t *testing.T) {
	tests := []struct {
		pattern  string
		funcName string
	}{
		{"a", "MatchA"},
		{"abc", "matchABC"},
		{"a(b|c)*d", "MatchAlt"},
		{"x+y?", "MatchPlus"},
		{"é+", "MatchUnicode"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := nfa.MustCompile(tt.pattern)
			src, err := Render(n, Config{Package: "gen", FuncName: tt.funcName, Pattern: tt.pattern})
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}

			fset := token.NewFileSet()
			file, err := parser.ParseFile(fset, "gen.go", src, parser.ParseComments)
			if err != nil {
				t.Fatalf("generated source does not parse: %v\n%s", err, src)
			}
			if file.Name.Name != "gen" {
				t.Errorf("package = %q, want %q", file.Name.Name, "gen")
			}
			if !ast.IsGenerated(file) {
				t.Error("generated file lacks the generated-code header")
			}

			var found bool
			for _, decl := range file.Decls {
				fn, ok := decl.(*ast.FuncDecl)
				if !ok || fn.Name.Name != tt.funcName {
					continue
				}
				found = true
				params := fn.Type.Params.List
				if len(params) != 1 || params[0].Names[0].Name != "input" {
					t.Errorf("%s params = %v, want (input []byte)", tt.funcName, params)
				}
			}
			if !found {
				t.Errorf("function %s not found in:\n%s", tt.funcName, src)
			}
		})
	}
}

func TestRenderStateTable(t *testing.T) {
	n := nfa.MustCompile("a(b|c)*d")
	src, err := Render(n, Config{Package: "gen", FuncName: "Match", Pattern: "a(b|c)*d"})
	if err != nil {
		t.Fatal(err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "gen.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}

	var rows int
	ast.Inspect(file, func(node ast.Node) bool {
		vs, ok := node.(*ast.ValueSpec)
		if !ok || vs.Names[0].Name != "matchStates" {
			return true
		}
		lit, ok := vs.Values[0].(*ast.CompositeLit)
		if !ok {
			t.Fatalf("matchStates is %T, want composite literal", vs.Values[0])
		}
		rows = len(lit.Elts)
		return false
	})
	if rows != n.States() {
		t.Errorf("table rows = %d, want %d", rows, n.States())
	}
	if !strings.Contains(string(src), `"a(b|c)*d"`) {
		t.Error("pattern not recorded in comments")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{Package: "gen", FuncName: "Match"}, false},
		{"empty package", Config{FuncName: "Match"}, true},
		{"empty func", Config{Package: "gen"}, true},
		{"keyword package", Config{Package: "func", FuncName: "Match"}, true},
		{"dashed func", Config{Package: "gen", FuncName: "match-abc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}

	if _, err := Generate(nfa.MustCompile("a"), Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Generate() with empty config error = %v, want ErrInvalidConfig", err)
	}
}

func TestLowerFirst(t *testing.T) {
	tests := map[string]string{
		"Match":  "match",
		"match":  "match",
		"X":      "x",
		"MatchA": "matchA",
	}
	for in, want := range tests {
		if got := lowerFirst(in); got != want {
			t.Errorf("lowerFirst(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestRenderShape checks the pieces of the generated simulation: the
// generation-stamped closure, the per-byte step over the current list and
// the final membership test on the Match state.
func TestRenderShape(t *testing.T) {
	src, err := Render(nfa.MustCompile("(a|b)*c"), Config{Package: "gen", FuncName: "Match", Pattern: "(a|b)*c"})
	if err != nil {
		t.Fatal(err)
	}
	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}

	var closure, rangeInput, finalCheck bool
	ast.Inspect(file, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.AssignStmt:
			if id, ok := n.Lhs[0].(*ast.Ident); ok && id.Name == "add" {
				_, closure = n.Rhs[0].(*ast.FuncLit)
			}
		case *ast.RangeStmt:
			if id, ok := n.X.(*ast.Ident); ok && id.Name == "input" {
				rangeInput = true
			}
		case *ast.ReturnStmt:
			if len(n.Results) == 1 {
				if b, ok := n.Results[0].(*ast.BinaryExpr); ok && b.Op == token.EQL {
					finalCheck = true
				}
			}
		}
		return true
	})
	if !closure {
		t.Error("generated code lacks the add closure")
	}
	if !rangeInput {
		t.Error("generated code does not range over input")
	}
	if !finalCheck {
		t.Error("generated code lacks the final stamp comparison")
	}
	for _, want := range []string{"seen[id] == gen", "gen++", "clist, nlist = nlist, clist"} {
		if !bytes.Contains(src, []byte(want)) {
			t.Errorf("generated code lacks %q", want)
		}
	}
}

// TestGeneratedCodeMatchesNFA compiles the generated matchers into a small
// program and compares its answers with the Pike VM.
func TestGeneratedCodeMatchesNFA(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a program with the go tool")
	}
	goTool, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go tool not available")
	}

	patterns := []string{
		"a", "abc", "a|b", "a*", "a+", "a?b", "(ab)+",
		"a(b|c)*d", "(a|b)*abb", "(a*)*", "((a|b)+c)?d",
	}
	haystacks := []string{
		"", "a", "b", "ab", "abb", "abc", "ad", "abcbd",
		"ababab", "aba", "aaaa", "aabb", "acd", "d", "babb",
	}

	dir := t.TempDir()
	write := func(name string, data []byte) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("go.mod", []byte("module gentest\n\ngo 1.21\n"))

	var driver strings.Builder
	driver.WriteString("package main\n\nimport \"fmt\"\n\nfunc main() {\n")
	fmt.Fprintf(&driver, "\thaystacks := %#v\n", haystacks)
	driver.WriteString("\tfor _, h := range haystacks {\n")
	for i, p := range patterns {
		name := fmt.Sprintf("Match%d", i)
		src, err := Render(nfa.MustCompile(p), Config{Package: "main", FuncName: name, Pattern: p})
		if err != nil {
			t.Fatalf("Render(%q): %v", p, err)
		}
		write(fmt.Sprintf("match%d.go", i), src)
		fmt.Fprintf(&driver, "\t\tfmt.Print(%s([]byte(h)), \" \")\n", name)
	}
	driver.WriteString("\t\tfmt.Println()\n\t}\n}\n")
	write("main.go", []byte(driver.String()))

	cmd := exec.Command(goTool, "run", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go run: %v\n%s", err, out)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != len(haystacks) {
		t.Fatalf("got %d output lines, want %d:\n%s", len(lines), len(haystacks), out)
	}
	for hi, h := range haystacks {
		fields := strings.Fields(lines[hi])
		if len(fields) != len(patterns) {
			t.Fatalf("line %d has %d fields, want %d: %q", hi, len(fields), len(patterns), lines[hi])
		}
		for pi, p := range patterns {
			want := fmt.Sprint(nfa.NewMatcher(nfa.MustCompile(p)).IsMatchString(h))
			if fields[pi] != want {
				t.Errorf("generated %q on %q = %s, Pike VM says %s", p, h, fields[pi], want)
			}
		}
	}
}
