package geo

import (
	"math"
	"sort"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// kdTree is a static 3-dimensional kd-tree over the facility set, built once
// at load time. Coordinates are embedded on the unit sphere so that Euclidean
// chord distance orders candidates identically to great-circle distance; the
// reported distances are still exact haversine kilometers.
type kdTree struct {
	nodes []kdNode
	root  int
}

type kdNode struct {
	x, y, z     float64
	idx         int // insertion index into the facility slice
	left, right int // node indices, -1 when absent
}

// neighbor is one kNN candidate during a search.
type neighbor struct {
	chordSq float64
	idx     int
}

func newKDTree(coords []domain.Coordinate) *kdTree {
	nodes := make([]kdNode, len(coords))
	for i, c := range coords {
		x, y, z := toUnitSphere(c)
		nodes[i] = kdNode{x: x, y: y, z: z, idx: i, left: -1, right: -1}
	}

	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}

	t := &kdTree{nodes: nodes}
	t.root = t.build(order, 0)
	return t
}

// build recursively partitions node references around the axis median.
func (t *kdTree) build(order []int, depth int) int {
	if len(order) == 0 {
		return -1
	}

	axis := depth % 3
	sort.Slice(order, func(i, j int) bool {
		a, b := t.nodes[order[i]], t.nodes[order[j]]
		av, bv := axisValue(a, axis), axisValue(b, axis)
		if av != bv {
			return av < bv
		}
		return a.idx < b.idx
	})

	mid := len(order) / 2
	node := order[mid]
	t.nodes[node].left = t.build(order[:mid], depth+1)
	t.nodes[node].right = t.build(order[mid+1:], depth+1)
	return node
}

// nearest returns up to k facility indices ordered by ascending distance from
// the query coordinate, ties broken by insertion order.
func (t *kdTree) nearest(query domain.Coordinate, k int) []int {
	if k <= 0 || len(t.nodes) == 0 {
		return nil
	}

	qx, qy, qz := toUnitSphere(query)
	best := make([]neighbor, 0, k)
	t.search(t.root, 0, qx, qy, qz, k, &best)

	sort.Slice(best, func(i, j int) bool {
		if best[i].chordSq != best[j].chordSq {
			return best[i].chordSq < best[j].chordSq
		}
		return best[i].idx < best[j].idx
	})

	result := make([]int, len(best))
	for i, n := range best {
		result[i] = n.idx
	}
	return result
}

func (t *kdTree) search(node, depth int, qx, qy, qz float64, k int, best *[]neighbor) {
	if node == -1 {
		return
	}

	n := t.nodes[node]
	dx, dy, dz := n.x-qx, n.y-qy, n.z-qz
	offer(best, k, neighbor{chordSq: dx*dx + dy*dy + dz*dz, idx: n.idx})

	axis := depth % 3
	var q float64
	switch axis {
	case 0:
		q = qx
	case 1:
		q = qy
	default:
		q = qz
	}
	planeDist := axisValue(n, axis) - q

	near, far := n.left, n.right
	if planeDist < 0 {
		near, far = far, near
	}

	t.search(near, depth+1, qx, qy, qz, k, best)

	// Visit the far side only when the splitting plane could still hide a
	// closer point than the current worst candidate.
	if len(*best) < k || planeDist*planeDist <= worstChordSq(*best) {
		t.search(far, depth+1, qx, qy, qz, k, best)
	}
}

// offer inserts a candidate into the bounded neighbor set, evicting the worst
// entry when full. Equal distances keep the lower insertion index.
func offer(best *[]neighbor, k int, cand neighbor) {
	if len(*best) < k {
		*best = append(*best, cand)
		return
	}

	worst := 0
	for i := 1; i < len(*best); i++ {
		if (*best)[i].chordSq > (*best)[worst].chordSq ||
			((*best)[i].chordSq == (*best)[worst].chordSq && (*best)[i].idx > (*best)[worst].idx) {
			worst = i
		}
	}

	w := (*best)[worst]
	if cand.chordSq < w.chordSq || (cand.chordSq == w.chordSq && cand.idx < w.idx) {
		(*best)[worst] = cand
	}
}

func worstChordSq(best []neighbor) float64 {
	worst := 0.0
	for _, n := range best {
		if n.chordSq > worst {
			worst = n.chordSq
		}
	}
	return worst
}

func axisValue(n kdNode, axis int) float64 {
	switch axis {
	case 0:
		return n.x
	case 1:
		return n.y
	default:
		return n.z
	}
}

// toUnitSphere converts degrees to a point on the unit sphere.
func toUnitSphere(c domain.Coordinate) (x, y, z float64) {
	lat := radians(c.Lat)
	lon := radians(c.Lon)
	return math.Cos(lat) * math.Cos(lon), math.Cos(lat) * math.Sin(lon), math.Sin(lat)
}
