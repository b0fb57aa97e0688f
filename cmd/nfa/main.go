// Command nfa prints each argument string that fully matches a pattern.
//
// Usage:
//
//	nfa [flags] <pattern> <string>...
//
// With -emit-go, the pattern alone is enough: the automaton is written out
// as a standalone Go matcher and any strings given are still matched.
//
// Flags end at the first argument that does not start with '-'. A pattern
// or string that does start with '-' must follow a "--" separator:
//
//	nfa -- -+ - --
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/codegen"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/postfix"
	"github.com/coregx/thompson/syntax"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	verbose  bool
	dump     bool
	ast      bool
	stats    bool
	emitGo   string
	pkg      string
	funcName string
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("nfa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.verbose, "v", false, "log compilation details to stderr")
	fs.BoolVar(&opts.dump, "dump", false, "print the automaton states to stderr")
	fs.BoolVar(&opts.ast, "ast", false, "print the parse tree to stderr")
	fs.BoolVar(&opts.stats, "stats", false, "print the strategy and counters to stderr")
	fs.StringVar(&opts.emitGo, "emit-go", "", "write a generated Go matcher to `file`")
	fs.StringVar(&opts.pkg, "pkg", "main", "package name for -emit-go")
	fs.StringVar(&opts.funcName, "func", "Match", "function name for -emit-go")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: nfa [flags] [--] <pattern> <string>...")
		fmt.Fprintln(stderr, "use -- before a pattern that starts with '-'")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	minArgs := 2
	if opts.emitGo != "" {
		minArgs = 1
	}
	if fs.NArg() < minArgs {
		fs.Usage()
		return 1
	}
	for i, arg := range fs.Args() {
		if !utf8.ValidString(arg) {
			fmt.Fprintf(stderr, "nfa: argument %d is not valid UTF-8\n", i+1)
			return 1
		}
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	pattern := fs.Arg(0)
	config := thompson.DefaultConfig()
	config.Logger = logger
	re, err := thompson.CompileWithConfig(pattern, config)
	if err != nil {
		reportCompileError(stderr, pattern, err)
		return 1
	}

	if opts.ast {
		tree, err := syntax.Parse(pattern)
		if err != nil {
			logger.Warn("reference parser rejected pattern", "pattern", pattern, "error", err)
		} else {
			fmt.Fprint(stderr, tree.Dump())
		}
	}
	if opts.dump {
		if err := re.NFA().Dump(stderr); err != nil {
			fmt.Fprintf(stderr, "nfa: %v\n", err)
			return 1
		}
	}
	if opts.emitGo != "" {
		if err := emitGo(re.NFA(), opts, pattern); err != nil {
			fmt.Fprintf(stderr, "nfa: %v\n", err)
			return 1
		}
		logger.Debug("wrote generated matcher", "file", opts.emitGo, "func", opts.funcName)
	}

	for _, s := range fs.Args()[1:] {
		if re.MatchString(s) {
			fmt.Fprintln(stdout, s)
		}
	}

	if opts.stats {
		st := re.Stats()
		fmt.Fprintf(stderr, "strategy: %s\n", re.Strategy())
		fmt.Fprintf(stderr, "nfa searches: %d\n", st.NFASearches)
		fmt.Fprintf(stderr, "exact set lookups: %d\n", st.ExactSetLookups)
		fmt.Fprintf(stderr, "prefilter rejections: %d\n", st.PrefilterRejections)
	}
	return 0
}

// reportCompileError prints err in the form that matches its kind.
func reportCompileError(w io.Writer, pattern string, err error) {
	reason := err
	var ce *nfa.CompileError
	if errors.As(err, &ce) {
		reason = ce.Err
	}
	if errors.Is(err, postfix.ErrSyntax) {
		fmt.Fprintf(w, "bad regexp %s: %v\n", pattern, reason)
		return
	}
	fmt.Fprintf(w, "error in post2nfa %s: %v\n", pattern, reason)
}

func emitGo(n *nfa.NFA, opts options, pattern string) error {
	src, err := codegen.Render(n, codegen.Config{
		Package:  opts.pkg,
		FuncName: opts.funcName,
		Pattern:  pattern,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(opts.emitGo, src, 0o644)
}
