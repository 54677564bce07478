// Package kdtree implements a k-d tree over a generic item type,
// supporting build-from-median construction, insert, remove, and
// bounded k-nearest-neighbors search in forward (top-down) and reverse
// (leaves-first) variants, plus Shepard/IDW interpolation built on top
// of the kNN search.
//
// Depth-d nodes split on axis d mod N, where N is the item's axis
// count. A search session holds the tree read-only: Insert and Remove
// both refuse (returning false, nil) while a NeighborsSearch or
// ShepardInterpolation call is in flight on the same Tree.
package kdtree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/spatial-idw/shepard/idw"
	"github.com/spatial-idw/shepard/observer"
)

// Comparable is the capability set a Tree's Item type must provide.
// point.Point[C, V] implements it directly.
type Comparable[Item any] interface {
	idw.Item[Item]

	// AxisCount returns the number of coordinates the item carries.
	AxisCount() int

	// LessOnAxis is a strict, tolerance-free less-than on one axis.
	LessOnAxis(other Item, axis int) (bool, error)

	// LessLex is a lexicographic, tolerance-aware ordering over every
	// axis. Tree itself never calls it.
	LessLex(other Item) bool

	// Equal is a tolerance-based, coordinate-only equality test.
	Equal(other Item) bool

	// DistanceOnAxis is the signed, overflow-safe difference on one axis.
	DistanceOnAxis(other Item, axis int) (float64, error)

	// Distance is the Euclidean distance over every axis.
	Distance(other Item) float64

	// WithValueFrom returns a copy of the receiver with its value
	// replaced by other's value; coordinates are unchanged.
	WithValueFrom(other Item) Item
}

// ErrDimensionMismatch is returned when an item's axis count disagrees
// with the tree's configured dimension.
var ErrDimensionMismatch = errors.New("kdtree: item dimension does not match tree dimension")

type node[Item Comparable[Item]] struct {
	item      Item
	dimension int
	left      *node[Item]
	right     *node[Item]
}

func (n *node[Item]) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// Tree is a k-d tree over Item. The zero value is not usable; build one
// with New or Build.
type Tree[Item Comparable[Item]] struct {
	root            *node[Item]
	axisCount       int
	allowDuplicates bool
	busy            bool
	obs             observer.Observer
}

// New returns an empty tree. allowDuplicates controls whether Insert
// accepts a coordinate-equal item as a distinct entry (true) or treats
// it as a no-op / update candidate (false, the default policy).
func New[Item Comparable[Item]](allowDuplicates bool) *Tree[Item] {
	return &Tree[Item]{allowDuplicates: allowDuplicates, obs: observer.Noop{}}
}

// SetObserver installs an observer that receives one notification per
// node visited or mutated. Pass nil to go back to the no-op observer.
func (t *Tree[Item]) SetObserver(obs observer.Observer) {
	if obs == nil {
		obs = observer.Noop{}
	}
	t.obs = obs
}

// Build constructs a tree from items by recursive median-split: at
// depth d it sorts a stable view of the slice by axis d mod N and picks
// the item at index len/2 as the node item (moved down past any
// predecessors equal to it on that axis, so the left half is strictly
// less on the axis), recursing left/right on the halves. An empty input
// yields an empty tree, not an error.
func Build[Item Comparable[Item]](items []Item, allowDuplicates bool) (*Tree[Item], error) {
	t := New[Item](allowDuplicates)
	if len(items) == 0 {
		return t, nil
	}
	for _, item := range items {
		if err := t.checkDimension(item); err != nil {
			return nil, err
		}
	}

	cp := make([]Item, len(items))
	copy(cp, items)

	root, err := t.buildSubtree(cp, 0)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

func (t *Tree[Item]) buildSubtree(items []Item, depth int) (*node[Item], error) {
	if len(items) == 0 {
		return nil, nil
	}

	axis := depth % t.axisCount
	if len(items) == 1 {
		n := &node[Item]{item: items[0], dimension: axis}
		t.obs.Visit(observer.Event{Kind: observer.EventInsert, Depth: depth, Dimension: axis, Detail: "build-leaf"})
		return n, nil
	}

	var sortErr error
	sort.SliceStable(items, func(i, j int) bool {
		less, err := items[i].LessOnAxis(items[j], axis)
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}

	median := len(items) / 2
	for median > 0 {
		less, err := items[median-1].LessOnAxis(items[median], axis)
		if err != nil {
			return nil, err
		}
		if less {
			break
		}
		median--
	}
	left, err := t.buildSubtree(items[:median], depth+1)
	if err != nil {
		return nil, err
	}
	right, err := t.buildSubtree(items[median+1:], depth+1)
	if err != nil {
		return nil, err
	}

	t.obs.Visit(observer.Event{Kind: observer.EventInsert, Depth: depth, Dimension: axis, Detail: "build"})
	return &node[Item]{item: items[median], dimension: axis, left: left, right: right}, nil
}

// IsEmpty reports whether the tree holds no items.
func (t *Tree[Item]) IsEmpty() bool {
	return t.root == nil
}

// IsBusy reports whether a search session currently holds the tree
// read-only.
func (t *Tree[Item]) IsBusy() bool {
	return t.busy
}

// checkDimension validates item against the tree's configured axis
// count, adopting it if the tree is still dimension-less (empty, never
// built or inserted into).
func (t *Tree[Item]) checkDimension(item Item) error {
	n := item.AxisCount()
	if t.axisCount == 0 {
		t.axisCount = n
		return nil
	}
	if n != t.axisCount {
		return errors.Wrapf(ErrDimensionMismatch, "item has %d axes, tree has %d", n, t.axisCount)
	}
	return nil
}

// Insert adds item to the tree. If duplicates are disallowed (the
// default) and an existing item is coordinate-equal to item, Insert
// returns false without modification, unless update is true, in which
// case the existing node's value is overwritten from item's value
// (coordinates unchanged) — Insert still returns false in that case.
// Insert refuses (false, nil) while a search session is active.
func (t *Tree[Item]) Insert(item Item, update bool) (bool, error) {
	if t.busy {
		return false, nil
	}
	if err := t.checkDimension(item); err != nil {
		return false, err
	}
	if t.root == nil {
		t.root = &node[Item]{item: item, dimension: 0}
		t.obs.Visit(observer.Event{Kind: observer.EventInsert, Depth: 0, Dimension: 0})
		return true, nil
	}
	return t.insertItem(&t.root, item, 0, update)
}

func (t *Tree[Item]) insertItem(np **node[Item], item Item, depth int, update bool) (bool, error) {
	n := *np
	if n == nil {
		axis := depth % t.axisCount
		*np = &node[Item]{item: item, dimension: axis}
		t.obs.Visit(observer.Event{Kind: observer.EventInsert, Depth: depth, Dimension: axis})
		return true, nil
	}

	if !t.allowDuplicates && n.item.Equal(item) {
		if update {
			n.item = n.item.WithValueFrom(item)
		}
		return false, nil
	}

	less, err := item.LessOnAxis(n.item, n.dimension)
	if err != nil {
		return false, err
	}
	if less {
		return t.insertItem(&n.left, item, depth+1, update)
	}
	return t.insertItem(&n.right, item, depth+1, update)
}

// Remove deletes the item coordinate-equal to item, if any, returning
// true iff something was removed. It refuses (false, nil) on an empty
// tree or while a search session is active.
//
// The two-or-more-dimensional case moves the left subtree onto the
// right (it was partitioned on the same axis as the node being deleted,
// so it cannot be returned directly as a replacement — reassigning it
// as the right subtree preserves the ">=" invariant because
// equal-on-axis items are permitted on the right), then replaces the
// node's item with the minimum-on-axis item from the (possibly just
// reassigned) right subtree and recursively removes that minimum from
// it.
//
// For one-dimensional trees, removal instead follows a plain BST
// delete (in-order successor, or the lone present child), kept as a
// demonstration of how a k-d tree degenerates to a BST at N=1; it is
// reachable only when the tree's item type has a single axis.
func (t *Tree[Item]) Remove(item Item) (bool, error) {
	if t.root == nil || t.busy {
		return false, nil
	}
	if err := t.checkDimension(item); err != nil {
		return false, err
	}
	return t.removeItem(&t.root, item)
}

func (t *Tree[Item]) removeItem(np **node[Item], item Item) (bool, error) {
	n := *np
	if n == nil {
		return false, nil
	}

	if n.item.Equal(item) {
		t.obs.Visit(observer.Event{Kind: observer.EventRemove, Dimension: n.dimension})

		if t.axisCount == 1 {
			removeBST(np)
			return true, nil
		}

		if n.isLeaf() {
			*np = nil
			return true, nil
		}

		if n.right == nil {
			n.right = n.left
			n.left = nil
		}

		var minItem *Item
		t.getMinItem(n.right, &minItem, n.dimension)
		n.item = *minItem
		return t.removeItem(&n.right, *minItem)
	}

	less, err := item.LessOnAxis(n.item, n.dimension)
	if err != nil {
		return false, err
	}
	if less {
		return t.removeItem(&n.left, item)
	}
	return t.removeItem(&n.right, item)
}

// removeBST performs the 1-D "BST demonstration" delete: substitute
// with the in-order successor from the right subtree, or promote the
// lone present child.
func removeBST[Item Comparable[Item]](np **node[Item]) {
	n := *np
	switch {
	case n.isLeaf():
		*np = nil
	case n.left == nil:
		*np = n.right
	case n.right == nil:
		*np = n.left
	default:
		succ := &n.right
		for (*succ).left != nil {
			succ = &(*succ).left
		}
		n.item = (*succ).item
		*succ = (*succ).right
	}
}

// getMinItem recursively scans subtree for the item with the smallest
// coordinate on axis, always recursing left, then comparing the current
// node against the running minimum, then recursing right only if the
// current node does not itself split on axis (a node splitting on axis
// already guarantees every item in its right subtree is >= it on that
// axis, so no smaller value can hide there).
func (t *Tree[Item]) getMinItem(n *node[Item], minItem **Item, axis int) {
	if n.left != nil {
		t.getMinItem(n.left, minItem, axis)
	}

	if *minItem == nil {
		*minItem = &n.item
	} else if less, _ := n.item.LessOnAxis(**minItem, axis); less {
		*minItem = &n.item
	}

	if n.right != nil && n.dimension != axis {
		t.getMinItem(n.right, minItem, axis)
	}
}

// Clone deep-copies the tree: the result shares no storage with the
// receiver. Callers that need an independent copy of a tree with an
// active search session call Clone themselves before handing it off.
func (t *Tree[Item]) Clone() *Tree[Item] {
	clone := &Tree[Item]{axisCount: t.axisCount, allowDuplicates: t.allowDuplicates, obs: observer.Noop{}}
	clone.root = copyNode(t.root)
	return clone
}

func copyNode[Item Comparable[Item]](n *node[Item]) *node[Item] {
	if n == nil {
		return nil
	}
	return &node[Item]{
		item:      n.item,
		dimension: n.dimension,
		left:      copyNode(n.left),
		right:     copyNode(n.right),
	}
}

// String renders the tree depth-first, left-to-right, one "depth\titem"
// line per node, the plain-text analogue of the reference
// implementation's colorized operator<<.
func (t *Tree[Item]) String() string {
	if t.root == nil {
		return "The tree is empty.\n"
	}
	var b strings.Builder
	b.WriteString("KdTree:\n")
	printNode(&b, t.root, 0)
	return b.String()
}

func printNode[Item Comparable[Item]](b *strings.Builder, n *node[Item], depth int) {
	if n.left != nil {
		printNode(b, n.left, depth+1)
	}
	fmt.Fprintf(b, "%d\t%v\n", depth, n.item)
	if n.right != nil {
		printNode(b, n.right, depth+1)
	}
}
