package meta

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// NFASearches counts Pike VM simulations
	NFASearches uint64

	// ExactSetLookups counts haystacks answered by the exact-set lookup
	ExactSetLookups uint64

	// PrefilterRejections counts haystacks rejected by the prefilter
	// without running the NFA
	PrefilterRejections uint64
}

// counters is the live form of Stats. Each counter sits on its own cache
// line: concurrent matchers increment different counters on every call.
type counters struct {
	_                   cpu.CacheLinePad
	nfaSearches         atomic.Uint64
	_                   cpu.CacheLinePad
	exactSetLookups     atomic.Uint64
	_                   cpu.CacheLinePad
	prefilterRejections atomic.Uint64
	_                   cpu.CacheLinePad
}

func (c *counters) snapshot() Stats {
	return Stats{
		NFASearches:         c.nfaSearches.Load(),
		ExactSetLookups:     c.exactSetLookups.Load(),
		PrefilterRejections: c.prefilterRejections.Load(),
	}
}

func (c *counters) reset() {
	c.nfaSearches.Store(0)
	c.exactSetLookups.Store(0)
	c.prefilterRejections.Store(0)
}
