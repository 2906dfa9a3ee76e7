package trace

import (
	"math"
	"math/rand/v2"
	"testing"

	"pgregory.net/rapid"

	"github.com/intuitionamiga/photonray/bvh"
	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

func centredTriangle(t testing.TB) *scene.Triangle {
	tri, err := scene.NewTriangle(
		scene.Vertex{Position: vecmath.Vec3{X: -1, Y: -1, Z: 1}, Normal: vecmath.Vec3{X: 0, Y: 0, Z: -1}},
		scene.Vertex{Position: vecmath.Vec3{X: 1, Y: -1, Z: 1}, Normal: vecmath.Vec3{X: 0, Y: 0, Z: -1}},
		scene.Vertex{Position: vecmath.Vec3{X: 0, Y: 1, Z: 1}, Normal: vecmath.Vec3{X: 0, Y: 0, Z: -1}},
		0,
	)
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	return tri
}

// TestS1CentredTriangle is scenario S1 from spec.md §8.
func TestS1CentredTriangle(t *testing.T) {
	tri := centredTriangle(t)
	ray := Ray{Origin: vecmath.Vec3{}, Dir: vecmath.Vec3{X: 0, Y: 0, Z: 1}}
	hit, ok := intersectTriangle(tri, ray, 0, math.Inf(1))
	if !ok {
		t.Fatalf("expected a hit")
	}
	if math.Abs(hit.Lambda-1) > 1e-9 {
		t.Fatalf("lambda = %v, want 1", hit.Lambda)
	}
	if !hit.Normal.AlmostEqual(vecmath.Vec3{X: 0, Y: 0, Z: -1}, 1e-9) {
		t.Fatalf("normal = %v, want (0,0,-1)", hit.Normal)
	}
}

func TestCentroidRayHitsAtCentroid(t *testing.T) {
	tri := centredTriangle(t)
	centroid := tri.V0.Position.Add(tri.V1.Position).Add(tri.V2.Position).Scale(1.0 / 3)
	ray := Ray{Origin: vecmath.Vec3{X: centroid.X, Y: centroid.Y, Z: 0}, Dir: vecmath.Vec3{X: 0, Y: 0, Z: 1}}
	hit, ok := intersectTriangle(tri, ray, 0, math.Inf(1))
	if !ok {
		t.Fatalf("expected a hit at centroid")
	}
	if !hit.Position.AlmostEqual(centroid, 1e-9) {
		t.Fatalf("hit position = %v, want centroid %v", hit.Position, centroid)
	}
}

func cubeTriangles(t testing.TB) []scene.Geometry {
	// 12 triangles forming an axis-aligned unit cube centred at origin.
	v := func(x, y, z float64) vecmath.Vec3 { return vecmath.Vec3{X: x, Y: y, Z: z} }
	corners := [8]vecmath.Vec3{
		v(-.5, -.5, -.5), v(.5, -.5, -.5), v(.5, .5, -.5), v(-.5, .5, -.5),
		v(-.5, -.5, .5), v(.5, -.5, .5), v(.5, .5, .5), v(-.5, .5, .5),
	}
	faces := [6][4]int{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{3, 2, 6, 7}, {0, 3, 7, 4}, {1, 2, 6, 5},
	}
	var out []scene.Geometry
	for _, f := range faces {
		a, b, c, d := corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		mk := func(p vecmath.Vec3) scene.Vertex { return scene.Vertex{Position: p, Normal: n} }
		t1, err := scene.NewTriangle(mk(a), mk(b), mk(c), 0)
		if err != nil {
			t.Fatalf("cube triangle: %v", err)
		}
		t2, err := scene.NewTriangle(mk(a), mk(c), mk(d), 0)
		if err != nil {
			t.Fatalf("cube triangle: %v", err)
		}
		out = append(out, t1, t2)
	}
	return out
}

func bruteForceNearest(tris []scene.Geometry, ray Ray, lambdaMin, lambdaMax float64) (Hit, bool) {
	best := Hit{}
	found := false
	farthest := lambdaMax
	for _, g := range tris {
		tri := g.(*scene.Triangle)
		hit, ok := intersectTriangle(tri, ray, lambdaMin, farthest)
		if ok && hit.Lambda < farthest {
			best = hit
			farthest = hit.Lambda
			found = true
		}
	}
	return best, found
}

// TestS3CubeRandomRays is scenario S3: random rays against a 12-triangle
// cube must agree between the BVH shooter and brute force to within 1e-9.
func TestS3CubeRandomRays(t *testing.T) {
	tris := cubeTriangles(t)
	tree := bvh.Build(tris)
	shooter := NewShooter(tree)

	rng := rand.New(rand.NewPCG(11, 22))
	const trials = 10000
	for i := 0; i < trials; i++ {
		origin := vecmath.Vec3{X: rng.Float64()*8 - 4, Y: rng.Float64()*8 - 4, Z: rng.Float64()*8 - 4}
		if origin.Len() < 1.5 {
			origin = origin.Normalize().Scale(2) // stay outside the cube
		}
		target := vecmath.Vec3{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		ray := Ray{Origin: origin, Dir: target.Sub(origin)}

		got, gotOK := shooter.Shoot(ray, 1e-6, math.Inf(1))
		want, wantOK := bruteForceNearest(tris, ray, 1e-6, math.Inf(1))
		if gotOK != wantOK {
			t.Fatalf("trial %d: shooter hit=%v, brute force hit=%v", i, gotOK, wantOK)
		}
		if gotOK && math.Abs(got.Lambda-want.Lambda) > 1e-9 {
			t.Fatalf("trial %d: lambda mismatch: shooter=%v brute=%v", i, got.Lambda, want.Lambda)
		}
	}
}

// TestBVHTraversalEquivalenceProperty is property 3 from spec.md §8,
// property-based over random triangle sets and random rays.
func TestBVHTraversalEquivalenceProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(rt, "n")
		coord := rapid.Float64Range(-20, 20)
		var tris []scene.Geometry
		for i := 0; i < n; i++ {
			a := vecmath.Vec3{X: coord.Draw(rt, "ax"), Y: coord.Draw(rt, "ay"), Z: coord.Draw(rt, "az")}
			b := a.Add(vecmath.Vec3{X: coord.Draw(rt, "bx") * 0.1, Y: coord.Draw(rt, "by") * 0.1, Z: 0})
			c := a.Add(vecmath.Vec3{X: 0, Y: coord.Draw(rt, "cy") * 0.1, Z: coord.Draw(rt, "cz") * 0.1})
			tri, err := scene.NewTriangle(
				scene.Vertex{Position: a, Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}},
				scene.Vertex{Position: b, Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}},
				scene.Vertex{Position: c, Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}},
				0,
			)
			if err != nil {
				continue // a degenerate draw; skip rather than fail the property
			}
			tris = append(tris, tri)
		}
		if len(tris) == 0 {
			return
		}
		tree := bvh.Build(tris)
		shooter := NewShooter(tree)

		ray := Ray{
			Origin: vecmath.Vec3{X: coord.Draw(rt, "ox"), Y: coord.Draw(rt, "oy"), Z: coord.Draw(rt, "oz")},
			Dir:    vecmath.Vec3{X: coord.Draw(rt, "dx"), Y: coord.Draw(rt, "dy"), Z: coord.Draw(rt, "dz")},
		}
		if ray.Dir.SqLen() < 1e-12 {
			return
		}

		got, gotOK := shooter.Shoot(ray, 1e-6, math.Inf(1))
		want, wantOK := bruteForceNearest(tris, ray, 1e-6, math.Inf(1))
		if gotOK != wantOK {
			rt.Fatalf("shooter hit=%v, brute force hit=%v", gotOK, wantOK)
		}
		if gotOK && math.Abs(got.Lambda-want.Lambda) > 1e-6 {
			rt.Fatalf("lambda mismatch: shooter=%v brute=%v", got.Lambda, want.Lambda)
		}
	})
}

func TestLightSphereIntersection(t *testing.T) {
	light := &scene.PointLight{Position: vecmath.Vec3{X: 0, Y: 0, Z: 5}, Color: vecmath.Vec3{X: 1, Y: 1, Z: 1}, Radius: 1}
	ray := Ray{Origin: vecmath.Vec3{}, Dir: vecmath.Vec3{X: 0, Y: 0, Z: 1}}
	hit, ok := intersectLight(light, ray, 0, math.Inf(1))
	if !ok {
		t.Fatalf("expected a hit on the light sphere")
	}
	if math.Abs(hit.Lambda-4) > 1e-9 {
		t.Fatalf("lambda = %v, want 4 (nearer root of the sphere)", hit.Lambda)
	}
}

func TestZeroRadiusLightNeverHit(t *testing.T) {
	light := &scene.PointLight{Position: vecmath.Vec3{X: 0, Y: 0, Z: 5}, Radius: 0}
	ray := Ray{Origin: vecmath.Vec3{}, Dir: vecmath.Vec3{X: 0, Y: 0, Z: 1}}
	if _, ok := intersectLight(light, ray, 0, math.Inf(1)); ok {
		t.Fatalf("zero-radius light should never report a hit")
	}
}
