package kdtree

import "container/heap"

// heapEntry pairs a distance with a pointer into a live tree node's
// item. The pointer is only valid while the tree's busy flag is set;
// callers must copy *Item out before the search session ends.
type heapEntry[Item any] struct {
	dist float64
	item *Item
}

// boundedHeap is a max-heap (largest distance on top) capped at k
// entries, generalized from a fixed []float64 distance to any
// Comparable-produced float64 distance.
type boundedHeap[Item any] struct {
	entries []heapEntry[Item]
	k       int
}

func newBoundedHeap[Item any](k int) *boundedHeap[Item] {
	h := &boundedHeap[Item]{k: k}
	heap.Init(h)
	return h
}

func (h *boundedHeap[Item]) Len() int           { return len(h.entries) }
func (h *boundedHeap[Item]) Less(i, j int) bool { return h.entries[i].dist > h.entries[j].dist }
func (h *boundedHeap[Item]) Swap(i, j int)      { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *boundedHeap[Item]) Push(x any) {
	h.entries = append(h.entries, x.(heapEntry[Item]))
}

func (h *boundedHeap[Item]) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// update applies the bounded max-heap policy shared by forward and
// reverse search: push while under capacity, otherwise replace the
// current worst entry only if dist improves on it.
func (h *boundedHeap[Item]) update(dist float64, item *Item) {
	if h.Len() < h.k {
		heap.Push(h, heapEntry[Item]{dist: dist, item: item})
		return
	}
	if dist < h.entries[0].dist {
		h.entries[0] = heapEntry[Item]{dist: dist, item: item}
		heap.Fix(h, 0)
	}
}

// worst returns the current worst (largest) retained distance and
// whether the heap is at capacity.
func (h *boundedHeap[Item]) worst() (float64, bool) {
	if h.Len() < h.k {
		return 0, false
	}
	return h.entries[0].dist, true
}

// drain empties the heap into a slice, farthest-to-nearest, by
// repeatedly popping the current max — the order required by
// NeighborsSearch's output contract.
func (h *boundedHeap[Item]) drain() []pair[Item] {
	out := make([]pair[Item], 0, h.Len())
	for h.Len() > 0 {
		e := heap.Pop(h).(heapEntry[Item])
		out = append(out, pair[Item]{Distance: e.dist, Item: *e.item})
	}
	return out
}

// pair is a distance paired with a copy of the item it was computed
// for, safe to retain past the end of the search session.
type pair[Item any] struct {
	Distance float64
	Item     Item
}
