// Package idw implements Shepard's method: inverse distance weighting
// over a fixed set of neighbors and their already-computed distances.
package idw

import (
	"math"

	"github.com/spatial-idw/shepard/numeric"
)

// Item is the minimal contract Interpolate needs from a neighbor value:
// a float64 view of its scalar value, and a way to build a copy with a
// new scalar value cast back from float64. point.Point[C, V] implements
// this directly.
type Item[Self any] interface {
	FloatValue() float64
	WithFloatValue(v float64) Self
}

// Neighbor pairs a kNN result with the distance computed for it during
// the search that produced it, so Interpolate never recomputes a
// distance the caller already has.
type Neighbor[Item any] struct {
	Distance float64
	Value    Item
}

// Interpolate implements Shepard's method: weight = 1 / distance^power,
// result = Σ(weight·value) / Σ(weight).
//
// If zeroDistanceHandling is true and a neighbor's distance is
// (tolerance-)zero, that neighbor's value is returned immediately as an
// exact match and the remaining neighbors are not visited — the
// returned neighbor slice then holds only that single neighbor. If
// zeroDistanceHandling is false, a zero distance is replaced by
// numeric.Epsilon[float64]() so the division stays finite and the loop
// continues over every neighbor.
//
// An empty neighbor slice returns target unchanged and a nil slice.
func Interpolate[I Item[I]](target I, neighbors []Neighbor[I], power float64, zeroDistanceHandling bool) (I, []Neighbor[I]) {
	if len(neighbors) == 0 {
		return target, nil
	}

	var num, den float64
	for i := range neighbors {
		dist := neighbors[i].Distance
		if numeric.IsZero(dist) {
			if zeroDistanceHandling {
				return target.WithFloatValue(neighbors[i].Value.FloatValue()), neighbors[i : i+1 : i+1]
			}
			dist = numeric.Epsilon[float64]()
		}

		weight := 1.0 / math.Pow(dist, power)
		num += weight * neighbors[i].Value.FloatValue()
		den += weight
	}

	return target.WithFloatValue(num / den), neighbors
}
