package meta

import (
	"sync"

	"github.com/coregx/thompson/nfa"
)

// matcherPool hands out Pike VM matchers so one Engine can serve many
// goroutines. Each matcher is used by one goroutine at a time; the NFA they
// share is immutable.
type matcherPool struct {
	pool sync.Pool
	nfa  *nfa.NFA
}

func newMatcherPool(n *nfa.NFA) *matcherPool {
	p := &matcherPool{nfa: n}
	p.pool = sync.Pool{
		New: func() any {
			return nfa.NewMatcher(p.nfa)
		},
	}
	return p
}

// get retrieves a Matcher from the pool, creating one if necessary.
func (p *matcherPool) get() *nfa.Matcher {
	return p.pool.Get().(*nfa.Matcher)
}

// put returns a Matcher to the pool.
// The generation counter is kept: every match advances it before use, so
// stamps left by the previous owner can never be mistaken for live ones.
func (p *matcherPool) put(m *nfa.Matcher) {
	if m == nil {
		return
	}
	p.pool.Put(m)
}
