package bvh

import (
	"math/rand/v2"
	"testing"

	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

func triAt(t *testing.T, cx, cy, cz float64) *scene.Triangle {
	t.Helper()
	base := vecmath.Vec3{X: cx, Y: cy, Z: cz}
	tri, err := scene.NewTriangle(
		scene.Vertex{Position: base.Add(vecmath.Vec3{X: -0.1, Y: -0.1, Z: 0})},
		scene.Vertex{Position: base.Add(vecmath.Vec3{X: 0.1, Y: -0.1, Z: 0})},
		scene.Vertex{Position: base.Add(vecmath.Vec3{X: 0, Y: 0.1, Z: 0})},
		0,
	)
	if err != nil {
		t.Fatalf("triAt: %v", err)
	}
	return tri
}

func TestBuildEmptyInput(t *testing.T) {
	b := Build(nil)
	if len(b.Nodes) != 1 {
		t.Fatalf("Build(nil) node count = %d, want 1", len(b.Nodes))
	}
	if !b.Empty() {
		t.Fatalf("Build(nil) should be Empty()")
	}
	for k := 0; k < 4; k++ {
		if b.Nodes[0].Kind[k] != SlotEmpty {
			t.Fatalf("root lane %d kind = %v, want SlotEmpty", k, b.Nodes[0].Kind[k])
		}
	}
}

func TestBuildCoversAllLeaves(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const n = 137
	objs := make([]scene.Geometry, n)
	for i := range objs {
		objs[i] = triAt(t, rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
	}
	b := Build(objs)

	seen := make(map[*scene.Triangle]bool)
	leafCount := 0
	for i := range b.Nodes {
		for k := 0; k < 4; k++ {
			if b.Nodes[i].Kind[k] == SlotLeaf {
				leafCount++
				tri := b.Nodes[i].Leaf[k].(*scene.Triangle)
				if seen[tri] {
					t.Fatalf("triangle %p placed in more than one leaf slot", tri)
				}
				seen[tri] = true
			}
		}
	}
	if leafCount != n {
		t.Fatalf("leaf count = %d, want %d", leafCount, n)
	}
	if len(seen) != n {
		t.Fatalf("distinct triangles placed = %d, want %d", len(seen), n)
	}
}

func TestBuildAABBEnclosure(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 9))
	const n = 64
	objs := make([]scene.Geometry, n)
	for i := range objs {
		objs[i] = triAt(t, rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
	}
	b := Build(objs)
	checkEncloses(t, b, 0)
}

// checkEncloses verifies every non-empty slot's AABB encloses the AABB of
// every descendant leaf reachable through it.
func checkEncloses(t *testing.T, b *BVH, i int) vecmath.AABB {
	t.Helper()
	total := vecmath.SentinelAABB()
	for k := 0; k < 4; k++ {
		slotBox := b.Nodes[i].laneAABB(k)
		switch b.Nodes[i].Kind[k] {
		case SlotEmpty:
			continue
		case SlotLeaf:
			geomBox := b.Nodes[i].Leaf[k].AABB()
			if !slotBox.Encloses(geomBox) {
				t.Fatalf("node %d lane %d: slot AABB %v does not enclose leaf AABB %v", i, k, slotBox, geomBox)
			}
			total = total.Combine(geomBox)
		case SlotInner:
			childBox := checkEncloses(t, b, child(i, k))
			if !slotBox.Encloses(childBox) {
				t.Fatalf("node %d lane %d: slot AABB %v does not enclose child subtree AABB %v", i, k, slotBox, childBox)
			}
			total = total.Combine(childBox)
		}
	}
	return total
}

func TestBuildDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	const n = 50
	objs := make([]scene.Geometry, n)
	for i := range objs {
		objs[i] = triAt(t, rng.Float64()*10, rng.Float64()*10, rng.Float64()*10)
	}
	a := Build(objs)
	b := Build(objs)
	if len(a.Nodes) != len(b.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(a.Nodes), len(b.Nodes))
	}
	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			t.Fatalf("node %d differs between identical builds", i)
		}
	}
}

func TestBuildSmallCountsFitInRoot(t *testing.T) {
	for n := 1; n <= 4; n++ {
		objs := make([]scene.Geometry, n)
		for i := range objs {
			objs[i] = triAt(t, float64(i), 0, 0)
		}
		b := Build(objs)
		if len(b.Nodes) != 1 {
			t.Fatalf("n=%d: node count = %d, want 1 (everything fits in root)", n, len(b.Nodes))
		}
	}
}
