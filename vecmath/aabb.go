// aabb.go - axis-aligned bounding box protocol

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vecmath

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Bounded is the AABB protocol: anything the BVH builder can place in a
// leaf slot must report its own axis-aligned bounding box.
type Bounded interface {
	AABB() AABB
}

// SentinelAABB is the AABB of an EMPTY slot: min=+inf, max=-inf, so any
// slab test against it rejects on every axis.
func SentinelAABB() AABB {
	return AABB{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Combine returns the smallest AABB enclosing both a and b.
func (a AABB) Combine(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Extent returns max - min.
func (a AABB) Extent() Vec3 {
	return a.Max.Sub(a.Min)
}

// Metric is the surface-area-like cost heuristic x*y + x*z + y*z of the
// box's extent, used to rank sibling groupings during BVH layer sorting.
func (a AABB) Metric() float64 {
	v := a.Extent()
	return v.X*v.Y + v.X*v.Z + v.Y*v.Z
}

// Encloses reports whether a componentwise encloses b.
func (a AABB) Encloses(b AABB) bool {
	return a.Min.X <= b.Min.X && a.Min.Y <= b.Min.Y && a.Min.Z <= b.Min.Z &&
		a.Max.X >= b.Max.X && a.Max.Y >= b.Max.Y && a.Max.Z >= b.Max.Z
}
