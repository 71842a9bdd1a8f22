package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddInt64(t *testing.T) {
	for i, tc := range []struct {
		a, b     int64
		ok       bool
		expected int64
	}{
		{10, 5, true, 15},
		{-10, 5, true, -5},
		{math.MaxInt64, -1, true, math.MaxInt64 - 1},
		{math.MinInt64, 1, true, math.MinInt64 + 1},
		{math.MinInt64, math.MaxInt64, true, -1},
		{math.MaxInt64, 1, false, 0},
		{math.MaxInt64, math.MaxInt64, false, 0},
		{math.MinInt64, -1, false, 0},
		{math.MinInt64, math.MinInt64, false, 0},
	} {
		r, ok := AddInt64(tc.a, tc.b)
		assert.Equal(t, tc.ok, ok, i)
		if tc.ok {
			assert.Equal(t, tc.expected, r, i)
		}
	}
}

func TestSubInt64(t *testing.T) {
	for i, tc := range []struct {
		a, b     int64
		ok       bool
		expected int64
	}{
		{20, 8, true, 12},
		{8, 20, true, -12},
		{-1, math.MinInt64, true, math.MaxInt64},
		{math.MinInt64, math.MinInt64, true, 0},
		{math.MaxInt64, math.MaxInt64, true, 0},
		{math.MinInt64, 1, false, 0},
		{math.MaxInt64, -1, false, 0},
		{0, math.MinInt64, false, 0},
	} {
		r, ok := SubInt64(tc.a, tc.b)
		assert.Equal(t, tc.ok, ok, i)
		if tc.ok {
			assert.Equal(t, tc.expected, r, i)
		}
	}
}

func TestMulInt64(t *testing.T) {
	for i, tc := range []struct {
		a, b     int64
		ok       bool
		expected int64
	}{
		{6, 7, true, 42},
		{-6, 7, true, -42},
		{0, math.MinInt64, true, 0},
		{math.MinInt64, 0, true, 0},
		{math.MinInt64, 1, true, math.MinInt64},
		{1, math.MinInt64, true, math.MinInt64},
		{math.MaxInt64, 1, true, math.MaxInt64},
		{-2147483648, 4294967296, true, math.MinInt64},
		{3037000500, 3037000499, true, 9223372033963249500},
		{math.MinInt64, -1, false, 0},
		{-1, math.MinInt64, false, 0},
		{math.MinInt64, 2, false, 0},
		{math.MaxInt64, 2, false, 0},
		{4294967296, 4294967296, false, 0},
		{3037000500, 3037000500, false, 0},
	} {
		r, ok := MulInt64(tc.a, tc.b)
		assert.Equal(t, tc.ok, ok, i)
		if tc.ok {
			assert.Equal(t, tc.expected, r, i)
		}
	}
}

func TestDivInt64(t *testing.T) {
	for i, tc := range []struct {
		a, b     int64
		ok       bool
		expected int64
	}{
		{10, 2, true, 5},
		{7, 2, true, 3},
		{-7, 2, true, -3},
		{7, -2, true, -3},
		{-7, -2, true, 3},
		{math.MinInt64, 1, true, math.MinInt64},
		{math.MaxInt64, -1, true, -math.MaxInt64},
		{7, 0, false, 0},
		{math.MinInt64, -1, false, 0},
	} {
		r, ok := DivInt64(tc.a, tc.b)
		assert.Equal(t, tc.ok, ok, i)
		if tc.ok {
			assert.Equal(t, tc.expected, r, i)
		}
	}
}

func TestModInt64(t *testing.T) {
	for i, tc := range []struct {
		a, b     int64
		ok       bool
		expected int64
	}{
		{10, 3, true, 1},
		{-7, 2, true, -1},
		{7, -2, true, 1},
		{-7, -2, true, -1},
		{math.MinInt64, 2, true, 0},
		{math.MinInt64, 3, true, -2},
		{7, 0, false, 0},
		{math.MinInt64, -1, false, 0},
	} {
		r, ok := ModInt64(tc.a, tc.b)
		assert.Equal(t, tc.ok, ok, i)
		if tc.ok {
			assert.Equal(t, tc.expected, r, i)
		}
	}
}

func TestPowInt64(t *testing.T) {
	for i, tc := range []struct {
		b        int64
		e        uint32
		ok       bool
		expected int64
	}{
		{2, 10, true, 1024},
		{0, 0, true, 1},
		{5, 0, true, 1},
		{0, 5, true, 0},
		{7, 1, true, 7},
		{-3, 3, true, -27},
		{1, math.MaxUint32, true, 1},
		{-1, math.MaxUint32, true, -1},
		{2, 62, true, 4611686018427387904},
		{-2, 63, true, math.MinInt64},
		{10, 18, true, 1000000000000000000},
		{2, 63, false, 0},
		{-2, 64, false, 0},
		{10, 19, false, 0},
		{math.MaxInt64, 2, false, 0},
	} {
		r, ok := PowInt64(tc.b, tc.e)
		assert.Equal(t, tc.ok, ok, i)
		if tc.ok {
			assert.Equal(t, tc.expected, r, i)
		}
	}
}
