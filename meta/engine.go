package meta

import (
	"errors"
	"log/slog"

	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/postfix"
	"github.com/coregx/thompson/prefilter"
)

// Engine answers full-string match queries for one compiled pattern.
//
// An Engine is safe for concurrent use. Matching goroutines draw Pike VM
// matchers from an internal pool, so no search buffers are shared.
type Engine struct {
	pattern  string
	program  postfix.Program
	nfa      *nfa.NFA
	info     literal.Info
	strategy Strategy

	// exact is the finite language, keyed by member, for UseExactSet
	exact map[string]struct{}

	// prefilter rejects haystacks lacking every required factor, for UsePrefilter
	prefilter prefilter.Prefilter

	matchers *matcherPool
	stats    *counters
}

// Compile builds an Engine for pattern.
//
// Syntax and construction failures are returned as *nfa.CompileError.
// An invalid config is returned as *ConfigError.
func Compile(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = discardLogger()
	}

	prog, err := postfix.ConvertString(pattern)
	if err != nil {
		return nil, &nfa.CompileError{Pattern: pattern, Err: err}
	}
	n, err := nfa.Build(prog)
	if err != nil {
		return nil, &nfa.CompileError{Pattern: pattern, Err: err}
	}

	litConfig := literal.DefaultConfig()
	litConfig.MaxLiterals = config.MaxLiterals
	info := literal.Analyze(prog, litConfig)

	e := &Engine{
		pattern:  pattern,
		program:  prog,
		nfa:      n,
		info:     info,
		strategy: selectStrategy(info, config),
		matchers: newMatcherPool(n),
		stats:    &counters{},
	}

	switch e.strategy {
	case UseExactSet:
		e.exact = make(map[string]struct{}, info.Exact.Len())
		for _, s := range info.Exact.Strings() {
			e.exact[s] = struct{}{}
		}
	case UsePrefilter:
		pf, err := prefilter.New(info.Factors)
		if err != nil {
			logger.Warn("prefilter unavailable, falling back to NFA",
				slog.String("pattern", pattern),
				slog.Any("error", err))
			e.strategy = UseNFA
			break
		}
		e.prefilter = pf
	}

	logger.Debug("compiled pattern",
		slog.String("pattern", pattern),
		slog.String("postfix", prog.String()),
		slog.Int("states", n.States()),
		slog.String("strategy", e.strategy.String()),
		slog.String("exact", info.Exact.String()),
		slog.String("factors", info.Factors.String()),
	)
	return e, nil
}

// IsMatch reports whether the entire haystack matches the pattern.
func (e *Engine) IsMatch(haystack []byte) bool {
	switch e.strategy {
	case UseExactSet:
		e.stats.exactSetLookups.Add(1)
		_, ok := e.exact[string(haystack)]
		return ok
	case UsePrefilter:
		if !e.prefilter.MayMatch(haystack) {
			e.stats.prefilterRejections.Add(1)
			return false
		}
	}
	return e.isMatchNFA(haystack)
}

// IsMatchString is IsMatch for strings. It does not copy the haystack.
func (e *Engine) IsMatchString(haystack string) bool {
	switch e.strategy {
	case UseExactSet:
		e.stats.exactSetLookups.Add(1)
		_, ok := e.exact[haystack]
		return ok
	case UsePrefilter:
		if !e.prefilter.MayMatch(conv.StringBytes(haystack)) {
			e.stats.prefilterRejections.Add(1)
			return false
		}
	}
	e.stats.nfaSearches.Add(1)
	m := e.matchers.get()
	defer e.matchers.put(m)
	return m.IsMatchString(haystack)
}

func (e *Engine) isMatchNFA(haystack []byte) bool {
	e.stats.nfaSearches.Add(1)
	m := e.matchers.get()
	defer e.matchers.put(m)
	return m.IsMatch(haystack)
}

// NewMatcher returns a Pike VM matcher for the engine's NFA that bypasses
// strategy selection. The caller owns it exclusively.
func (e *Engine) NewMatcher() *nfa.Matcher {
	return nfa.NewMatcher(e.nfa)
}

// Pattern returns the source pattern
func (e *Engine) Pattern() string {
	return e.pattern
}

// Program returns the postfix program the NFA was built from
func (e *Engine) Program() postfix.Program {
	return e.program
}

// NFA returns the compiled automaton
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// Literals returns the literal analysis of the pattern
func (e *Engine) Literals() literal.Info {
	return e.info
}

// Strategy returns the selected strategy
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Stats returns execution statistics.
func (e *Engine) Stats() Stats {
	return e.stats.snapshot()
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	e.stats.reset()
}

// IsConfigError reports whether err came from Config validation.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
