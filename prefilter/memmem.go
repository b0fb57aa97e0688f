package prefilter

import "bytes"

// byteRank approximates how common each byte is in text and source code.
// Lower rank = rarer byte = fewer false candidates when scanning for it.
var byteRank = [256]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	255, 60, 140, 50, 40, 35, 30, 160, 130, 130, 80, 55, 200, 140, 210, 100,
	180, 190, 170, 150, 140, 140, 130, 120, 120, 120, 150, 100, 70, 160, 70, 50,
	25, 120, 80, 90, 85, 130, 75, 70, 80, 115, 30, 35, 90, 85, 100, 105,
	80, 15, 100, 110, 115, 70, 45, 55, 20, 50, 10, 90, 60, 90, 20, 110,
	30, 225, 140, 170, 165, 245, 135, 130, 150, 200, 25, 65, 175, 155, 195, 205,
	145, 15, 195, 200, 215, 150, 75, 95, 45, 120, 20, 85, 40, 85, 15, 0,
	// 0x80-0xFF: UTF-8 lead and continuation bytes
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

// memmemPrefilter searches for a single required factor. It scans for the
// factor's rarest byte and verifies the full factor around each candidate,
// which beats an automaton when there is only one literal to find.
type memmemPrefilter struct {
	needle  []byte
	rare    byte
	rareIdx int
}

func newMemmem(needle []byte) *memmemPrefilter {
	rare, idx := rarestByte(needle)
	return &memmemPrefilter{needle: needle, rare: rare, rareIdx: idx}
}

// rarestByte returns the lowest-ranked byte of needle and its index.
// Ties go to the later position.
func rarestByte(needle []byte) (byte, int) {
	idx := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if byteRank[needle[i]] < byteRank[needle[idx]] {
			idx = i
		}
	}
	return needle[idx], idx
}

// index returns the offset of the first occurrence of the needle, or -1.
func (p *memmemPrefilter) index(haystack []byte) int {
	n := len(p.needle)
	if n > len(haystack) {
		return -1
	}
	if n == 1 {
		return bytes.IndexByte(haystack, p.rare)
	}
	for from := p.rareIdx; from < len(haystack); {
		pos := bytes.IndexByte(haystack[from:], p.rare)
		if pos < 0 {
			return -1
		}
		pos += from
		start := pos - p.rareIdx
		if start+n > len(haystack) {
			return -1
		}
		if bytes.Equal(haystack[start:start+n], p.needle) {
			return start
		}
		from = pos + 1
	}
	return -1
}

// MayMatch implements Prefilter
func (p *memmemPrefilter) MayMatch(haystack []byte) bool {
	return p.index(haystack) >= 0
}

// Len implements Prefilter
func (p *memmemPrefilter) Len() int {
	return 1
}

// String returns the factor being searched for
func (p *memmemPrefilter) String() string {
	return "memmem[" + string(p.needle) + "]"
}
