// Package numeric provides tolerance-based equality and widening helpers
// shared by the point and kdtree packages.
//
// Integer comparisons are exact; floating point comparisons use a
// tolerance of max(1e-8, machine epsilon of the type), matching the
// EPSILON<T> used throughout the reference C++ implementation this
// package is modeled on.
package numeric

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Numeric is any type usable as a Point coordinate or value.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Epsilon returns max(1e-8, machine epsilon) for T.
func Epsilon[T constraints.Float]() T {
	var eps T
	switch any(eps).(type) {
	case float32:
		eps = T(math.Nextafter32(1, 2) - 1)
	default:
		eps = T(math.Nextafter(1, 2) - 1)
	}
	const floor = 1e-8
	if float64(eps) < floor {
		return T(floor)
	}
	return eps
}

// IsZero reports whether x is zero, within tolerance for floating types.
func IsZero[T Numeric](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return math.Abs(float64(v)) < float64(Epsilon[float32]())
	case float64:
		return math.Abs(v) < Epsilon[float64]()
	default:
		return x == 0
	}
}

// IsEqual reports whether x and y are equal, within tolerance for
// floating types.
func IsEqual[T Numeric](x, y T) bool {
	switch a := any(x).(type) {
	case float32:
		b := any(y).(float32)
		return math.Abs(float64(a-b)) < float64(Epsilon[float32]())
	case float64:
		b := any(y).(float64)
		return math.Abs(a-b) < Epsilon[float64]()
	default:
		return x == y
	}
}

// WidenAxis widens x to float64 before any subtraction is performed on
// it, so that the difference of any two legal T values cannot overflow.
// Every type widens to float64: for integers up to 32 bits the value and
// any difference of two such values are exact in float64; 64-bit
// integers and all floating types also collapse onto float64 (Go has
// neither a native 128-bit integer nor a "long double" wider than
// float64), where very large 64-bit values lose precision.
func WidenAxis[T Numeric](x T) float64 {
	switch v := any(x).(type) {
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case uint:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return float64(x)
	}
}

// AbsBeforeConvert converts x from a signed numeric type S to an
// unsigned numeric type U by taking the absolute value first, avoiding
// the wraparound that a direct conversion of a negative value would
// cause. It is a no-op when x is already non-negative, or when S itself
// is unsigned.
func AbsBeforeConvert[S Numeric, U Numeric](x S) U {
	switch v := any(x).(type) {
	case int:
		if v < 0 {
			v = -v
		}
		return U(v)
	case int8:
		if v < 0 {
			v = -v
		}
		return U(v)
	case int16:
		if v < 0 {
			v = -v
		}
		return U(v)
	case int32:
		if v < 0 {
			v = -v
		}
		return U(v)
	case int64:
		if v < 0 {
			v = -v
		}
		return U(v)
	case float32:
		if v < 0 {
			v = -v
		}
		return U(v)
	case float64:
		if v < 0 {
			v = -v
		}
		return U(v)
	default:
		return U(x)
	}
}
