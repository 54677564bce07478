// Package point implements the generic spatial point used by the k-d
// tree and IDW interpolator: N coordinates of type C plus a scalar value
// of type V.
package point

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/spatial-idw/shepard/numeric"
)

// ErrAxisOutOfRange is returned whenever an axis index is not smaller
// than the point's axis count.
var ErrAxisOutOfRange = errors.New("point: axis out of range")

// Point holds N coordinates of type C and a scalar value of type V.
//
// Go generics have no const-generic array length, so N is not part of
// the type — it is fixed for the lifetime of a Point at construction
// and is expected to agree with every other Point a caller mixes into
// the same KdTree. KdTree.Build/Insert/Remove validate this at the
// first disagreement they see (see DESIGN.md, Open Question OQ-1).
type Point[C numeric.Numeric, V numeric.Numeric] struct {
	coords []C
	value  V
}

// New builds a Point from a coordinate slice of exactly the point's
// dimension and a value. The slice is copied; callers may reuse coords.
func New[C numeric.Numeric, V numeric.Numeric](coords []C, value V) Point[C, V] {
	cp := make([]C, len(coords))
	copy(cp, coords)
	return Point[C, V]{coords: cp, value: value}
}

// NewFromSeq builds a Point of dimension n from an arbitrary-length,
// possibly differently-typed coordinate sequence: longer sequences are
// truncated, shorter ones zero-padded. Converting a signed source
// coordinate to an unsigned C takes the absolute value first, avoiding
// wraparound.
func NewFromSeq[T numeric.Numeric, C numeric.Numeric, V numeric.Numeric](coords []T, n int, value V) Point[C, V] {
	var zero C
	unsignedC := zero-1 > zero
	out := make([]C, n)
	for i := 0; i < n && i < len(coords); i++ {
		if unsignedC {
			out[i] = numeric.AbsBeforeConvert[T, C](coords[i])
		} else {
			out[i] = C(coords[i])
		}
	}
	return Point[C, V]{coords: out, value: value}
}

// AxisCount returns the number of coordinates the point carries.
func (p Point[C, V]) AxisCount() int {
	return len(p.coords)
}

// Coord returns the coordinate on the given axis.
func (p Point[C, V]) Coord(axis int) (C, error) {
	if axis < 0 || axis >= len(p.coords) {
		var zero C
		return zero, errors.Wrapf(ErrAxisOutOfRange, "axis %d, dimension %d", axis, len(p.coords))
	}
	return p.coords[axis], nil
}

// Value returns the point's scalar value.
func (p Point[C, V]) Value() V {
	return p.value
}

// SetValue overwrites the point's scalar value, leaving coordinates
// unchanged.
func (p *Point[C, V]) SetValue(value V) {
	p.value = value
}

// FloatValue returns the point's value widened to float64, the common
// currency the idw package accumulates in.
func (p Point[C, V]) FloatValue() float64 {
	return float64(p.value)
}

// WithFloatValue returns a copy of p with its value replaced by v, cast
// back to V. Coordinates are unchanged.
func (p Point[C, V]) WithFloatValue(v float64) Point[C, V] {
	np := p
	np.value = V(v)
	return np
}

// WithValueFrom returns a copy of p with its value replaced by other's
// value. Coordinates are unchanged; used when a duplicate Insert is
// configured to update in place.
func (p Point[C, V]) WithValueFrom(other Point[C, V]) Point[C, V] {
	np := p
	np.value = other.value
	return np
}

// LessOnAxis performs a strict, tolerance-free less-than on a single
// axis. Callers must guarantee coordinates are never NaN: ordering must
// be total within the build/search contexts where this is used.
func (p Point[C, V]) LessOnAxis(other Point[C, V], axis int) (bool, error) {
	if axis < 0 || axis >= len(p.coords) || axis >= len(other.coords) {
		return false, errors.Wrapf(ErrAxisOutOfRange, "axis %d", axis)
	}
	return p.coords[axis] < other.coords[axis], nil
}

// LessLex compares coordinates lexicographically: at the first axis
// where the two points are not tolerance-equal, it returns whether this
// point's coordinate is smaller. Equal-throughout yields false.
func (p Point[C, V]) LessLex(other Point[C, V]) bool {
	n := len(p.coords)
	if len(other.coords) < n {
		n = len(other.coords)
	}
	for i := 0; i < n; i++ {
		if numeric.IsEqual(p.coords[i], other.coords[i]) {
			continue
		}
		return p.coords[i] < other.coords[i]
	}
	return false
}

// Equal reports whether all axes are tolerance-equal. Value is ignored.
func (p Point[C, V]) Equal(other Point[C, V]) bool {
	if len(p.coords) != len(other.coords) {
		return false
	}
	for i := range p.coords {
		if !numeric.IsEqual(p.coords[i], other.coords[i]) {
			return false
		}
	}
	return true
}

// ExactlyEqual reports whether Equal holds and the values are also
// tolerance-equal.
func (p Point[C, V]) ExactlyEqual(other Point[C, V]) bool {
	return p.Equal(other) && numeric.IsEqual(p.value, other.value)
}

// DistanceOnAxis returns the signed difference on a single axis, widened
// so the subtraction cannot overflow. The result type is float64
// regardless of C (see numeric.WidenAxis).
func (p Point[C, V]) DistanceOnAxis(other Point[C, V], axis int) (float64, error) {
	if axis < 0 || axis >= len(p.coords) || axis >= len(other.coords) {
		return 0, errors.Wrapf(ErrAxisOutOfRange, "axis %d", axis)
	}
	return numeric.WidenAxis(p.coords[axis]) - numeric.WidenAxis(other.coords[axis]), nil
}

// Distance returns the Euclidean (L2) distance to other: each axis
// difference is widened before squaring, the squares are summed in
// float64, and the square root is taken. This cannot overflow for any
// two legal coordinate values of type C.
func (p Point[C, V]) Distance(other Point[C, V]) float64 {
	n := len(p.coords)
	if len(other.coords) < n {
		n = len(other.coords)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := numeric.WidenAxis(p.coords[i]) - numeric.WidenAxis(other.coords[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// String implements fmt.Stringer, rendering "(c0, c1, ...) = value".
func (p Point[C, V]) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, c := range p.coords {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", c)
	}
	b.WriteString(") = ")
	fmt.Fprintf(&b, "%v", p.value)
	return b.String()
}
