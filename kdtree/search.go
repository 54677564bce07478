package kdtree

import (
	"math"

	"github.com/spatial-idw/shepard/idw"
	"github.com/spatial-idw/shepard/observer"
)

// session marks the tree busy for the duration of a search, released by
// defer regardless of how the search returns.
type session[Item Comparable[Item]] struct {
	tree *Tree[Item]
}

func acquire[Item Comparable[Item]](t *Tree[Item]) *session[Item] {
	t.busy = true
	return &session[Item]{tree: t}
}

func (s *session[Item]) release() {
	s.tree.busy = false
}

// NeighborsSearch returns the k nearest neighbors to target, farthest
// first, and the distances paired with them — drain empties the
// bounded max-heap by repeatedly popping its current worst entry, so
// the farthest retained neighbor comes back first and the nearest
// last. reverse selects the leaves-first traversal instead of the
// default top-down one; both variants visit every candidate node and
// must agree on the resulting set, though ties on distance may order
// differently since reverse does not replay forward's exact
// visitation order (see DESIGN.md).
//
// NeighborsSearch refuses a concurrent Insert/Remove for its duration, and
// converts any panic raised from within item comparisons (e.g. an axis
// mismatch surfaced as a runtime panic rather than threaded back as an
// error through the heap's comparator) into an empty result rather than
// propagating it — only caller-visible errors (a genuine axis-count
// mismatch on target) are returned normally.
func (t *Tree[Item]) NeighborsSearch(target Item, k int, reverse bool) (result []idw.Neighbor[Item], err error) {
	if t.root == nil || k <= 0 {
		return nil, nil
	}
	if target.AxisCount() != t.axisCount {
		return nil, ErrDimensionMismatch
	}

	sess := acquire(t)
	defer sess.release()
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, nil
		}
	}()

	h := newBoundedHeap[Item](k)
	if reverse {
		t.reverseSearch(t.root, target, h)
	} else {
		t.forwardSearch(t.root, target, h)
	}

	pairs := h.drain()
	out := make([]idw.Neighbor[Item], len(pairs))
	for i, p := range pairs {
		out[i] = idw.Neighbor[Item]{Distance: p.Distance, Value: p.Item}
	}
	return out, nil
}

// forwardSearch is the classic top-down k-d tree kNN traversal: descend
// toward the half-space containing target first, then decide whether
// the far half-space can still hold a closer point by comparing the
// splitting-axis distance against the heap's current worst retained
// distance.
func (t *Tree[Item]) forwardSearch(n *node[Item], target Item, h *boundedHeap[Item]) {
	if n == nil {
		return
	}

	dist := target.Distance(n.item)
	h.update(dist, &n.item)
	t.obs.Visit(observer.Event{Kind: observer.EventVisit, Dimension: n.dimension, Detail: "forward"})

	axisDist, err := target.DistanceOnAxis(n.item, n.dimension)
	if err != nil {
		panic(err)
	}

	near, far := n.left, n.right
	if axisDist > 0 {
		near, far = n.right, n.left
	}

	t.forwardSearch(near, target, h)

	if t.isAuxRequired(axisDist, h) {
		t.forwardSearch(far, target, h)
	}
}

// reverseSearch visits leaves first, then ancestors: the mirror of
// forwardSearch. It walks to the bottom of the near subtree before
// considering the current node and the far subtree, rather than
// considering the current node on the way down.
func (t *Tree[Item]) reverseSearch(n *node[Item], target Item, h *boundedHeap[Item]) {
	if n == nil {
		return
	}

	axisDist, err := target.DistanceOnAxis(n.item, n.dimension)
	if err != nil {
		panic(err)
	}

	near, far := n.left, n.right
	if axisDist > 0 {
		near, far = n.right, n.left
	}

	t.reverseSearch(near, target, h)

	dist := target.Distance(n.item)
	h.update(dist, &n.item)
	t.obs.Visit(observer.Event{Kind: observer.EventVisit, Dimension: n.dimension, Detail: "reverse"})

	if t.isAuxRequired(axisDist, h) {
		t.reverseSearch(far, target, h)
	}
}

// isAuxRequired reports whether the far ("auxiliary") subtree across a
// splitting plane at signed distance axisDist might still contain a
// point closer than the heap's current worst retained distance: true
// whenever the heap has spare capacity, or |axisDist| does not exceed
// the current worst distance.
func (t *Tree[Item]) isAuxRequired(axisDist float64, h *boundedHeap[Item]) bool {
	worst, full := h.worst()
	if !full {
		return true
	}
	return math.Abs(axisDist) <= worst
}

// ShepardInterpolation finds target's k nearest known points and
// applies idw.Interpolate over them with power and
// zeroDistanceHandling, returning the interpolated point and the
// neighbors actually used. reverse selects reverseSearch over
// forwardSearch for the underlying neighbor lookup.
func (t *Tree[Item]) ShepardInterpolation(target Item, k int, power float64, zeroDistanceHandling, reverse bool) (Item, []idw.Neighbor[Item], error) {
	neighbors, err := t.NeighborsSearch(target, k, reverse)
	if err != nil {
		var zero Item
		return zero, nil, err
	}
	result, used := idw.Interpolate(target, neighbors, power, zeroDistanceHandling)
	return result, used, nil
}
