// shooter.go - packed-AABB BVH traversal and nearest-hit tracking

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package trace

import (
	"math"

	"github.com/intuitionamiga/photonray/bvh"
	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

// Shooter walks a bvh.BVH to find ray/scene intersections. It owns a
// reusable traversal Stack, so a Shooter is only safe for use by one
// goroutine at a time; each render worker creates its own.
type Shooter struct {
	tree  *bvh.BVH
	stack *Stack
}

// NewShooter returns a Shooter over tree with a freshly allocated stack.
func NewShooter(tree *bvh.BVH) *Shooter {
	return &Shooter{tree: tree, stack: NewStack()}
}

// Shoot returns the nearest intersection with lambda in [lambdaMin,
// lambdaMax], or false if none exists. It clears and reuses its stack on
// every call, so it allocates nothing on the hot path.
func (s *Shooter) Shoot(ray Ray, lambdaMin, lambdaMax float64) (Hit, bool) {
	if s.tree.Empty() {
		return Hit{}, false
	}
	s.stack.reset()
	s.stack.push(s.tree.Root())

	best := Hit{}
	found := false
	farthest := lambdaMax

	for {
		i, ok := s.stack.pop()
		if !ok {
			break
		}
		node := &s.tree.Nodes[i]
		hitMask := slabTest4(node, ray, lambdaMin, farthest)
		for k := 0; k < 4; k++ {
			if !hitMask[k] {
				continue
			}
			switch node.Kind[k] {
			case bvh.SlotInner:
				s.stack.push(4*i + k + 1)
			case bvh.SlotLeaf:
				hit, ok := intersectLeaf(node.Leaf[k], ray, lambdaMin, farthest)
				if ok && hit.Lambda < farthest {
					best = hit
					farthest = hit.Lambda
					found = true
				}
			}
		}
	}
	return best, found
}

// intersectLeaf dispatches a leaf slot's geometry to the triangle or
// light-sphere test.
func intersectLeaf(g scene.Geometry, ray Ray, lambdaMin, lambdaMax float64) (Hit, bool) {
	switch v := g.(type) {
	case *scene.Triangle:
		return intersectTriangle(v, ray, lambdaMin, lambdaMax)
	case *scene.PointLight:
		return intersectLight(v, ray, lambdaMin, lambdaMax)
	default:
		return Hit{}, false
	}
}

// slabTest4 tests ray against all four of node's packed AABBs at once
// (spec.md §4.2): per axis, t1/t2 from (min/max - origin)/dir, with the
// accumulation direction flipped when dir < 0 and the axis skipped when
// dir == 0 (the sentinel AABB of an EMPTY slot then guarantees rejection
// on the other two axes regardless).
func slabTest4(n *bvh.Node, ray Ray, lambdaMin, lambdaMax float64) [4]bool {
	lambdaIn := vecmath.Splat4(math.Inf(-1))
	lambdaOut := vecmath.Splat4(math.Inf(1))

	applyAxis := func(minLane, maxLane vecmath.Lane4, origin, dir float64) {
		if dir == 0 {
			return
		}
		inv := 1 / dir
		t1 := minLane.Sub(vecmath.Splat4(origin)).Scale(inv)
		t2 := maxLane.Sub(vecmath.Splat4(origin)).Scale(inv)
		if dir > 0 {
			lambdaIn = lambdaIn.Max(t1)
			lambdaOut = lambdaOut.Min(t2)
		} else {
			lambdaIn = lambdaIn.Max(t2)
			lambdaOut = lambdaOut.Min(t1)
		}
	}

	applyAxis(n.MinX, n.MaxX, ray.Origin.X, ray.Dir.X)
	applyAxis(n.MinY, n.MaxY, ray.Origin.Y, ray.Dir.Y)
	applyAxis(n.MinZ, n.MaxZ, ray.Origin.Z, ray.Dir.Z)

	maxV := vecmath.Splat4(lambdaMax)
	minV := vecmath.Splat4(lambdaMin)
	inLeOut := lambdaIn.LessEq(lambdaOut)
	inLeMax := lambdaIn.LessEq(maxV)
	outGeMin := lambdaOut.GreaterEq(minV)

	var hit [4]bool
	for k := 0; k < 4; k++ {
		hit[k] = inLeOut[k] && inLeMax[k] && outGeMin[k]
	}
	return hit
}
