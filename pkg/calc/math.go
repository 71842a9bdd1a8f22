package calc

import (
	"math"
)

// AddInt64 returns a + b, reporting whether the sum fits in int64.
func AddInt64(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}

// SubInt64 returns a - b, reporting whether the difference fits in int64.
func SubInt64(a, b int64) (int64, bool) {
	if b < 0 && a > math.MaxInt64+b {
		return 0, false
	}
	if b > 0 && a < math.MinInt64+b {
		return 0, false
	}
	return a - b, true
}

// MulInt64 returns a * b, reporting whether the product fits in int64.
func MulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		// Only multiplication by one keeps the minimum value in range.
		if a == 1 {
			return b, true
		}
		if b == 1 {
			return a, true
		}
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

// DivInt64 returns a / b, reporting whether the quotient fits in int64.
// A zero divisor yields ok == false, callers are expected to screen it
// beforehand to report it distinctly.
func DivInt64(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	return a / b, true
}

// ModInt64 returns a % b, reporting whether the operation is defined.
// A zero divisor yields ok == false, and so does the MinInt64 % -1 corner
// whose intermediate quotient is out of range.
func ModInt64(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	return a % b, true
}

// PowInt64 raises b to the power e by repeated squaring, reporting whether
// every intermediate product fits in int64. PowInt64(0, 0) is 1.
func PowInt64(b int64, e uint32) (int64, bool) {
	r := int64(1)
	for {
		if e&1 == 1 {
			var ok bool
			r, ok = MulInt64(r, b)
			if !ok {
				return 0, false
			}
		}
		e >>= 1
		if e == 0 {
			break
		}
		var ok bool
		b, ok = MulInt64(b, b)
		if !ok {
			return 0, false
		}
	}
	return r, true
}
