// Package shepard is the root of a scattered-data interpolation module:
// given known points (coordinates plus a scalar value) and unknown
// points (coordinates only), it estimates each unknown point's value by
// Shepard's method (inverse distance weighting) over the k nearest
// known points, located through a k-d tree.
//
// The module has no code at this import path; it exists to host the
// module's overview and group the packages that do the work:
//
//	numeric/        tolerance predicates and overflow-safe widening
//	point/          Point[C, V], the generic coordinate+value type
//	kdtree/         the k-d tree: build, insert, remove, bounded kNN
//	idw/            the Shepard's method aggregator
//	observer/       a pluggable trace hook for the tree's internals
//	shepardio/      JSON point file reading and writing
//	shepardconfig/  the pipeline's runtime configuration
//	cmd/shepard/    the interactive CLI driver tying the above together
//
// Basic usage, instantiating Point[int, float64] over two axes:
//
//	known, _ := shepardio.ReadPointsFile[int, float64]("known.json", shepardconfig.AxisNames, shepardconfig.ValueName, false)
//	tree, _ := kdtree.Build[point.Point[int, float64]](known, false)
//	result, neighbors, err := tree.ShepardInterpolation(target, 8, 2.0, false, false)
package shepard
