// build.go - flat 4-ary BVH construction: leaf placement, sibling sort by
// metric, and bottom-up parent synthesis

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package bvh

import (
	"math"

	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

// layerCount returns the smallest L >= 1 such that a width-4 tree of L
// layers has capacity for n objects (4^L >= n). n == 0 degenerates to a
// single empty root, L == 1.
func layerCount(n int) int {
	l, cap4 := 1, 4
	for cap4 < n {
		l++
		cap4 *= 4
	}
	return l
}

func pow4(e int) int {
	r := 1
	for i := 0; i < e; i++ {
		r *= 4
	}
	return r
}

// layerStart returns the flat node index of the first node in tree layer
// `layer` (root is layer 0).
func layerStart(layer int) int { return (pow4(layer) - 1) / 3 }

// Build constructs a flat 4-ary BVH over objects. Construction is
// deterministic: identical input produces a byte-identical tree.
func Build(objects []scene.Geometry) *BVH {
	n := len(objects)
	l := layerCount(n)
	nodeCapacity := layerStart(l)
	nodes := make([]Node, nodeCapacity)
	for i := range nodes {
		nodes[i] = sentinelNode()
	}
	if n == 0 {
		return &BVH{Nodes: nodes}
	}

	leafStart := layerStart(l - 1)
	for k, obj := range objects {
		nodes[leafStart+k/4].setLeaf(k%4, obj)
	}
	sortLayerByMetric(nodes, leafStart*4, leafStart*4+n)

	for layer := l - 2; layer >= 0; layer-- {
		lo := layerStart(layer)
		hi := layerStart(layer + 1)
		realEnd := hi
		for i := lo; i < hi; i++ {
			var emptyMask [4]bool
			allEmpty := true
			for k := 0; k < 4; k++ {
				c := child(i, k)
				emptyMask[k] = nodes[c].allEmpty()
				if !emptyMask[k] {
					allEmpty = false
				}
			}
			switch {
			case allEmpty:
				realEnd = i
			case !emptyMask[0] && emptyMask[1] && emptyMask[2] && emptyMask[3]:
				swapSubtree(nodes, child(i, 0), i)
				realEnd = i + 1
			default:
				for c := 0; c < 4; c++ {
					if !emptyMask[c] {
						nodes[i].setInner(c, nodes[child(i, c)].combinedAABB())
					}
				}
				continue
			}
			break
		}
		sortLayerByMetric(nodes, lo*4, realEnd*4)
	}

	return &BVH{Nodes: nodes}
}

// sortLayerByMetric rearranges slots in [slotStart, slotEnd) four at a
// time (one node's worth per group): for each group it starts from the
// group's first slot's own box, then repeatedly picks the best remaining
// slot (by combined-AABB metric, ties broken by encounter order) to join
// the group, swapping it into the next position.
func sortLayerByMetric(nodes []Node, slotStart, slotEnd int) {
	for groupStart := slotStart; groupStart < slotEnd; groupStart += 4 {
		grouped := laneAt(nodes, groupStart)
		last := groupStart + 3
		if last > slotEnd-1 {
			last = slotEnd - 1
		}
		for pos := groupStart; pos < last; pos++ {
			best := -1
			bestMetric := math.Inf(1)
			for i := pos + 1; i < slotEnd; i++ {
				m := grouped.Combine(laneAt(nodes, i)).Metric()
				if m < bestMetric {
					bestMetric = m
					best = i
				}
			}
			if best == -1 {
				break
			}
			if best != pos+1 {
				swapSlot(nodes, pos+1, best)
			}
			grouped = grouped.Combine(laneAt(nodes, pos+1))
		}
	}
}

// laneAt returns the AABB of flat slot index `slot` (node = slot/4, lane =
// slot%4).
func laneAt(nodes []Node, slot int) vecmath.AABB {
	return nodes[slot/4].laneAABB(slot % 4)
}

// swapSlot exchanges the contents of flat slot indices a and b: the
// six AABB lanes, the slot kind, and (for LEAF slots) the stored geometry.
// If either slot is INNER, the subtree it points to is relocated in
// lockstep via swapSubtree, so that each slot's cached bounding box always
// matches the subtree physically reachable through its child index — this
// is required for both same-node and cross-node exchanges (see DESIGN.md:
// a same-node exchange can still pair two distinct child subtrees, so the
// "no subtree move" shortcut is only safe when neither side is INNER,
// which swapSubtree's own empty-on-both-sides check already covers for
// free).
func swapSlot(nodes []Node, a, b int) {
	if a == b {
		return
	}
	na, ka := a/4, a%4
	nb, kb := b/4, b%4

	nodes[na].MinX[ka], nodes[nb].MinX[kb] = nodes[nb].MinX[kb], nodes[na].MinX[ka]
	nodes[na].MinY[ka], nodes[nb].MinY[kb] = nodes[nb].MinY[kb], nodes[na].MinY[ka]
	nodes[na].MinZ[ka], nodes[nb].MinZ[kb] = nodes[nb].MinZ[kb], nodes[na].MinZ[ka]
	nodes[na].MaxX[ka], nodes[nb].MaxX[kb] = nodes[nb].MaxX[kb], nodes[na].MaxX[ka]
	nodes[na].MaxY[ka], nodes[nb].MaxY[kb] = nodes[nb].MaxY[kb], nodes[na].MaxY[ka]
	nodes[na].MaxZ[ka], nodes[nb].MaxZ[kb] = nodes[nb].MaxZ[kb], nodes[na].MaxZ[ka]
	nodes[na].Kind[ka], nodes[nb].Kind[kb] = nodes[nb].Kind[kb], nodes[na].Kind[ka]
	nodes[na].Leaf[ka], nodes[nb].Leaf[kb] = nodes[nb].Leaf[kb], nodes[na].Leaf[ka]

	swapSubtree(nodes, child(na, ka), child(nb, kb))
}

// swapSubtree exchanges the entire node rows at a and b, recursing into
// their four children (in order 3,2,1,0, per the construction algorithm)
// so that every descendant ends up addressable by the standard child(i,k)
// arithmetic at its new position. A no-op once either side is out of
// range or both are empty, which makes it cheap wherever no real subtree is
// involved (leaf-layer slots never reach here with an INNER kind).
func swapSubtree(nodes []Node, a, b int) {
	if a >= len(nodes) || b >= len(nodes) {
		return
	}
	if nodes[a].allEmpty() && nodes[b].allEmpty() {
		return
	}
	nodes[a], nodes[b] = nodes[b], nodes[a]
	for k := 3; k >= 0; k-- {
		swapSubtree(nodes, child(a, k), child(b, k))
	}
}
