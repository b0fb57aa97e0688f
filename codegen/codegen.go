// Package codegen emits Go source for a compiled NFA: a state table and a
// function that runs the same Pike VM simulation over it. The output has no
// dependencies, so it can be dropped into any package.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/thompson/nfa"
)

// ErrInvalidConfig is returned for a Config that cannot produce valid Go.
var ErrInvalidConfig = errors.New("codegen: invalid config")

// Config controls the generated file.
type Config struct {
	// Package is the package name of the generated file.
	Package string

	// FuncName is the name of the generated match function.
	FuncName string

	// Pattern is recorded in comments only.
	Pattern string
}

// Validate checks that Package and FuncName are Go identifiers.
func (c Config) Validate() error {
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("%w: package name %q", ErrInvalidConfig, c.Package)
	}
	if !token.IsIdentifier(c.FuncName) {
		return fmt.Errorf("%w: function name %q", ErrInvalidConfig, c.FuncName)
	}
	return nil
}

// Generate builds the file for n.
//
// The generated function has the signature
//
//	func <FuncName>(input []byte) bool
//
// and reports whether input matches in full. It allocates its state lists
// per call, which keeps it safe for concurrent use without a pool.
func Generate(n *nfa.NFA, config Config) (*jen.File, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	table := lowerFirst(config.FuncName) + "States"

	f := jen.NewFile(config.Package)
	f.HeaderComment("Code generated by thompson. DO NOT EDIT.")

	f.Commentf("%s is the Thompson NFA for %q.", table, config.Pattern)
	f.Comment("kind is 0 for Literal, 1 for Split and 2 for Match.")
	f.Var().Id(table).Op("=").Index().Struct(
		jen.Id("kind").Uint8(),
		jen.Id("b").Byte(),
		jen.Id("out").Uint32(),
		jen.Id("out2").Uint32(),
	).ValuesFunc(func(g *jen.Group) {
		for id := 0; id < n.States(); id++ {
			g.Line().Add(stateValues(n.State(nfa.StateID(id))))
		}
		g.Line()
	})

	f.Commentf("%s reports whether input matches %q in full.", config.FuncName, config.Pattern)
	f.Func().Id(config.FuncName).Params(jen.Id("input").Index().Byte()).Bool().Block(
		jen.Const().Defs(
			jen.Id("literal").Op("=").Lit(int(nfa.StateLiteral)),
			jen.Id("split").Op("=").Lit(int(nfa.StateSplit)),
			jen.Id("start").Op("=").Lit(int(n.Start())),
			jen.Id("match").Op("=").Lit(int(n.MatchState())),
			jen.Id("n").Op("=").Lit(n.States()),
		),
		jen.Id("clist").Op(":=").Make(jen.Index().Uint32(), jen.Lit(0), jen.Id("n")),
		jen.Id("nlist").Op(":=").Make(jen.Index().Uint32(), jen.Lit(0), jen.Id("n")),
		jen.Id("stack").Op(":=").Make(jen.Index().Uint32(), jen.Lit(0), jen.Id("n")),
		jen.Id("seen").Op(":=").Make(jen.Index().Int(), jen.Id("n")),
		jen.Id("gen").Op(":=").Lit(1),
		jen.Line(),
		jen.Comment("add inserts the epsilon closure of id into l, skipping states seen in this generation."),
		jen.Id("add").Op(":=").Func().Params(
			jen.Id("l").Index().Uint32(),
			jen.Id("id").Uint32(),
		).Index().Uint32().Block(
			jen.Id("stack").Op("=").Append(jen.Id("stack").Index(jen.Empty(), jen.Lit(0)), jen.Id("id")),
			jen.For(jen.Len(jen.Id("stack")).Op(">").Lit(0)).Block(
				jen.Id("id").Op("=").Id("stack").Index(jen.Len(jen.Id("stack")).Op("-").Lit(1)),
				jen.Id("stack").Op("=").Id("stack").Index(jen.Empty(), jen.Len(jen.Id("stack")).Op("-").Lit(1)),
				jen.If(jen.Id("seen").Index(jen.Id("id")).Op("==").Id("gen")).Block(jen.Continue()),
				jen.Id("seen").Index(jen.Id("id")).Op("=").Id("gen"),
				jen.Id("s").Op(":=").Op("&").Id(table).Index(jen.Id("id")),
				jen.If(jen.Id("s").Dot("kind").Op("==").Id("split")).Block(
					jen.Id("stack").Op("=").Append(jen.Id("stack"), jen.Id("s").Dot("out2"), jen.Id("s").Dot("out")),
					jen.Continue(),
				),
				jen.Id("l").Op("=").Append(jen.Id("l"), jen.Id("id")),
			),
			jen.Return(jen.Id("l")),
		),
		jen.Line(),
		jen.Id("clist").Op("=").Id("add").Call(jen.Id("clist"), jen.Id("start")),
		jen.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Id("input")).Block(
			jen.If(jen.Len(jen.Id("clist")).Op("==").Lit(0)).Block(jen.Return(jen.False())),
			jen.Id("gen").Op("++"),
			jen.Id("nlist").Op("=").Id("nlist").Index(jen.Empty(), jen.Lit(0)),
			jen.For(jen.List(jen.Id("_"), jen.Id("id")).Op(":=").Range().Id("clist")).Block(
				jen.Id("s").Op(":=").Op("&").Id(table).Index(jen.Id("id")),
				jen.If(
					jen.Id("s").Dot("kind").Op("==").Id("literal").Op("&&").Id("s").Dot("b").Op("==").Id("c"),
				).Block(
					jen.Id("nlist").Op("=").Id("add").Call(jen.Id("nlist"), jen.Id("s").Dot("out")),
				),
			),
			jen.List(jen.Id("clist"), jen.Id("nlist")).Op("=").List(jen.Id("nlist"), jen.Id("clist")),
		),
		jen.Return(jen.Id("seen").Index(jen.Id("match")).Op("==").Id("gen")),
	)
	return f, nil
}

// Render generates the file for n and returns the formatted source.
func Render(n *nfa.NFA, config Config) ([]byte, error) {
	f, err := Generate(n, config)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stateValues renders one table row. Unused edges are written as 0.
func stateValues(s *nfa.State) jen.Code {
	var b byte
	var out, out2 nfa.StateID
	switch s.Kind() {
	case nfa.StateLiteral:
		b, out = s.Literal()
	case nfa.StateSplit:
		out, out2 = s.Split()
	}
	return jen.Values(
		jen.Lit(int(s.Kind())),
		jen.Lit(int(b)),
		jen.Lit(int(out)),
		jen.Lit(int(out2)),
	)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
