// math/kdtree.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"slices"
)

// KDTree is a static 2D k-d tree used for spatial queries over a fixed
// set of points. Nodes are stored in a flat array with index-based child
// references; the tree is built once from a snapshot of the point set
// and is read-only (and so safe for concurrent use) afterward. There is
// no incremental insertion or removal: rebuild it if the points change.
type KDTree struct {
	nodes []kdNode
	root  int32
}

type kdNode struct {
	p           [2]float32
	item        int32 // index of the point in the original slice
	left, right int32 // -1 if no child
}

type kdItem struct {
	p    [2]float32
	item int32
}

// BuildKDTree constructs a balanced k-d tree from a slice of points,
// alternating the split axis at each level. The item indices reported by
// queries refer to positions in the points slice passed here. Returns
// nil for an empty point set.
func BuildKDTree(points [][2]float32) *KDTree {
	if len(points) == 0 {
		return nil
	}

	items := make([]kdItem, len(points))
	for i, p := range points {
		items[i] = kdItem{p: p, item: int32(i)}
	}

	t := &KDTree{nodes: make([]kdNode, 0, len(points))}
	t.root = t.build(items, 0)
	return t
}

func (t *KDTree) build(items []kdItem, depth int) int32 {
	if len(items) == 0 {
		return -1
	}

	axis := depth % 2
	slices.SortFunc(items, func(a, b kdItem) int {
		if a.p[axis] < b.p[axis] {
			return -1
		} else if a.p[axis] > b.p[axis] {
			return 1
		}
		return 0
	})

	median := len(items) / 2
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, kdNode{p: items[median].p, item: items[median].item})

	// Note: can't hold a pointer to the node across the recursive calls,
	// since they append to t.nodes and may move it.
	left := t.build(items[:median], depth+1)
	right := t.build(items[median+1:], depth+1)
	t.nodes[idx].left = left
	t.nodes[idx].right = right

	return idx
}

// Nearest returns the indices of up to k points closest to p, ordered by
// increasing distance. Distances are measured in the same planar metric
// the tree was built with.
func (t *KDTree) Nearest(p [2]float32, k int) []int {
	if t == nil || k <= 0 {
		return nil
	}

	type cand struct {
		d2   float32
		item int32
	}
	var best []cand

	dist2 := func(a, b [2]float32) float32 {
		return Sqr(a[0]-b[0]) + Sqr(a[1]-b[1])
	}

	var search func(n int32, depth int)
	search = func(n int32, depth int) {
		if n == -1 {
			return
		}
		node := t.nodes[n]

		d2 := dist2(p, node.p)
		if len(best) < k || d2 < best[len(best)-1].d2 {
			i, _ := slices.BinarySearchFunc(best, cand{d2: d2}, func(a, b cand) int {
				if a.d2 < b.d2 {
					return -1
				} else if a.d2 > b.d2 {
					return 1
				}
				return 0
			})
			best = slices.Insert(best, i, cand{d2: d2, item: node.item})
			if len(best) > k {
				best = best[:k]
			}
		}

		axis := depth % 2
		delta := p[axis] - node.p[axis]
		near, far := node.left, node.right
		if delta > 0 {
			near, far = far, near
		}

		search(near, depth+1)
		if len(best) < k || Sqr(delta) < best[len(best)-1].d2 {
			search(far, depth+1)
		}
	}
	search(t.root, 0)

	result := make([]int, len(best))
	for i, c := range best {
		result[i] = int(c.item)
	}
	return result
}

// VisitRange calls visit for every point within the axis-aligned
// rectangle [lo, hi], pruning subtrees that cannot intersect it.
func (t *KDTree) VisitRange(lo, hi [2]float32, visit func(item int, p [2]float32)) {
	if t == nil {
		return
	}

	var search func(n int32, depth int)
	search = func(n int32, depth int) {
		if n == -1 {
			return
		}
		node := t.nodes[n]

		if node.p[0] >= lo[0] && node.p[0] <= hi[0] && node.p[1] >= lo[1] && node.p[1] <= hi[1] {
			visit(int(node.item), node.p)
		}

		axis := depth % 2
		if lo[axis] <= node.p[axis] {
			search(node.left, depth+1)
		}
		if hi[axis] >= node.p[axis] {
			search(node.right, depth+1)
		}
	}
	search(t.root, 0)
}
