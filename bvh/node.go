// node.go - the flat 4-ary node array and its slot tagging

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package bvh builds and stores a flat 4-ary bounding-volume hierarchy over
// scene.Geometry values (triangles and point lights), using the AABB each
// reports through vecmath.Bounded; other vecmath.Bounded types cannot be
// stored in it. Construction is single-threaded
// and deterministic; the resulting tree is read-only and safe to traverse
// concurrently from many workers (see package trace).
package bvh

import (
	"math"

	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

// SlotKind tags what a node's child slot holds.
type SlotKind uint8

const (
	SlotEmpty SlotKind = iota
	SlotLeaf
	SlotInner
)

// Node is one row of the flat tree: four AABBs packed as six lane-parallel
// arrays (for the SIMD slab test in package trace) plus four slot tags.
// Child k of node index i, when Kind[k] == SlotInner, lives at index
// child(i, k) = 4*i + k + 1.
type Node struct {
	MinX, MinY, MinZ vecmath.Lane4
	MaxX, MaxY, MaxZ vecmath.Lane4
	Kind             [4]SlotKind
	Leaf             [4]scene.Geometry
}

// child returns the flat array index of node i's k-th child (k in 0..3).
func child(i, k int) int { return 4*i + k + 1 }

func sentinelNode() Node {
	inf, ninf := math.Inf(1), math.Inf(-1)
	return Node{
		MinX: vecmath.Splat4(inf), MinY: vecmath.Splat4(inf), MinZ: vecmath.Splat4(inf),
		MaxX: vecmath.Splat4(ninf), MaxY: vecmath.Splat4(ninf), MaxZ: vecmath.Splat4(ninf),
	}
}

// laneAABB returns the AABB stored in lane k.
func (n *Node) laneAABB(k int) vecmath.AABB {
	return vecmath.AABB{
		Min: vecmath.Vec3{X: n.MinX[k], Y: n.MinY[k], Z: n.MinZ[k]},
		Max: vecmath.Vec3{X: n.MaxX[k], Y: n.MaxY[k], Z: n.MaxZ[k]},
	}
}

// setLaneAABB overwrites lane k's AABB, leaving Kind/Leaf untouched.
func (n *Node) setLaneAABB(k int, box vecmath.AABB) {
	n.MinX[k], n.MinY[k], n.MinZ[k] = box.Min.X, box.Min.Y, box.Min.Z
	n.MaxX[k], n.MaxY[k], n.MaxZ[k] = box.Max.X, box.Max.Y, box.Max.Z
}

// setLeaf places obj in lane k as a LEAF slot.
func (n *Node) setLeaf(k int, obj scene.Geometry) {
	n.setLaneAABB(k, obj.AABB())
	n.Kind[k] = SlotLeaf
	n.Leaf[k] = obj
}

// setInner marks lane k as INNER with the given combined child-subtree box.
func (n *Node) setInner(k int, box vecmath.AABB) {
	n.setLaneAABB(k, box)
	n.Kind[k] = SlotInner
	n.Leaf[k] = nil
}

// combinedAABB returns the union of every non-empty lane's AABB.
func (n *Node) combinedAABB() vecmath.AABB {
	box := vecmath.SentinelAABB()
	for k := 0; k < 4; k++ {
		if n.Kind[k] != SlotEmpty {
			box = box.Combine(n.laneAABB(k))
		}
	}
	return box
}

// allEmpty reports whether every lane of n is SlotEmpty.
func (n *Node) allEmpty() bool {
	return n.Kind[0] == SlotEmpty && n.Kind[1] == SlotEmpty && n.Kind[2] == SlotEmpty && n.Kind[3] == SlotEmpty
}

// BVH is the built, read-only flat tree. Root is at index 0.
type BVH struct {
	Nodes []Node
}

// Root returns the index of the tree root (always 0).
func (b *BVH) Root() int { return 0 }

// Empty reports whether the tree holds no geometry at all.
func (b *BVH) Empty() bool {
	return len(b.Nodes) == 0 || b.Nodes[0].allEmpty()
}
