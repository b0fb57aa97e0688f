// Package conv provides checked integer conversions used when sizing
// automaton tables and minting state handles, plus a copy-free view of a
// string as bytes.
//
// The conversions panic on overflow. Pattern length limits keep state counts
// far below these bounds, so a panic here means an internal limit was bypassed.
package conv

import (
	"math"
	"unsafe"
)

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct on 32-bit platforms where int cannot
	// represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToHandle converts a slice index into a handle, reserving the top value
// as an invalid marker.
// Panics if n < 0 or n >= math.MaxUint32.
func IntToHandle(n int) uint32 {
	if n < 0 || uint(n) >= math.MaxUint32 {
		panic("integer overflow: index out of handle range")
	}
	return uint32(n)
}

// StringBytes returns the bytes of s without copying.
// The result aliases immutable memory and must never be written to.
func StringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
