// Package conv provides checked numeric conversions for index arguments.
//
// Index arguments arrive as arbitrary Go values from the member surface.
// These helpers accept every integer type and integral floats, and report
// whether the value is representable instead of silently truncating.
package conv

import "math"

// ToIndex converts v to an int64 index. It reports false if v is not a
// number, is a non-integral or non-finite float, or does not fit in int64.
func ToIndex(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return Uint64ToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return Uint64ToInt64(n)
	case float32:
		return FloatToInt64(float64(n))
	case float64:
		return FloatToInt64(n)
	default:
		return 0, false
	}
}

// Uint64ToInt64 converts n, saturating at math.MaxInt64. Saturation keeps
// huge indices huge, so they still compare above any bound.
func Uint64ToInt64(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(n), true
}

// FloatToInt64 converts an integral float, saturating outside the int64
// range. NaN, infinities and fractions are rejected.
//
//go:inline
func FloatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64, true
	}
	if f <= math.MinInt64 {
		return math.MinInt64, true
	}
	return int64(f), true
}
