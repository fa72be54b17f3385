// Package bits provides overflow-checked 64-bit arithmetic and bit-exact
// IEEE 754 pack/unpack helpers shared by every index and size calculation
// in the xnd core.
package bits

import "math"

// AddI64 returns a+b and sets *overflow if the addition overflowed.
// Ported from the portable fallback branch of libxnd's ADDi64.
func AddI64(a, b int64, overflow *bool) int64 {
	c := int64(uint64(a) + uint64(b))
	if (a < 0 && b < 0 && c >= 0) || (a >= 0 && b >= 0 && c < 0) {
		*overflow = true
	}
	return c
}

// SubI64 returns a-b and sets *overflow if the subtraction overflowed.
func SubI64(a, b int64, overflow *bool) int64 {
	c := int64(uint64(a) - uint64(b))
	if (a < 0 && b >= 0 && c >= 0) || (a >= 0 && b < 0 && c < 0) {
		*overflow = true
	}
	return c
}

// MulI64 returns a*b and sets *overflow if the multiplication overflowed.
func MulI64(a, b int64, overflow *bool) int64 {
	c := int64(uint64(a) * uint64(b))
	if (b < 0 && a == math.MinInt64) || (b != 0 && a != c/b) {
		*overflow = true
	}
	return c
}

// AbsI64 returns the absolute value of a; INT64_MIN has no positive
// representation so it sets *overflow and returns a unchanged.
func AbsI64(a int64, overflow *bool) int64 {
	if a == math.MinInt64 {
		*overflow = true
		return a
	}
	if a < 0 {
		return -a
	}
	return a
}
