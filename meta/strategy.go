package meta

import "github.com/coregx/thompson/literal"

// Strategy identifies how an Engine answers match queries.
type Strategy int

const (
	// UseNFA runs the Pike VM on every haystack.
	UseNFA Strategy = iota

	// UseExactSet looks the haystack up in the finite language of the pattern.
	// Selected when literal analysis yields the exact language.
	UseExactSet

	// UsePrefilter rejects haystacks that contain none of the pattern's
	// required factors, then runs the Pike VM on the rest.
	UsePrefilter
)

// String returns a human-readable representation of the Strategy
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UseExactSet:
		return "UseExactSet"
	case UsePrefilter:
		return "UsePrefilter"
	default:
		return "Unknown"
	}
}

// selectStrategy picks the cheapest strategy that the analysis supports.
func selectStrategy(info literal.Info, config Config) Strategy {
	if config.EnableExactSet && info.Exact != nil {
		return UseExactSet
	}
	if config.EnablePrefilter && info.Factors != nil && info.Factors.MinLen() >= config.MinFactorLen {
		return UsePrefilter
	}
	return UseNFA
}
