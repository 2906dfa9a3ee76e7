// geometry.go - triangles, point lights and the Geometry tagged union

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package scene

import "github.com/intuitionamiga/photonray/vecmath"

// Vertex carries per-vertex position, shading normal and texture coordinate.
type Vertex struct {
	Position vecmath.Vec3
	Normal   vecmath.Vec3
	UV       [2]float64
}

// Triangle is three vertices, a material index, and the pre-computed
// support plane of (V0, V1, V2).
type Triangle struct {
	V0, V1, V2    Vertex
	MaterialIndex int
	Plane         vecmath.Plane
}

// NewTriangle builds a Triangle, pre-computing its plane. It returns a
// MalformedError if the three positions are collinear (n == 0).
func NewTriangle(v0, v1, v2 Vertex, materialIndex int) (*Triangle, error) {
	plane := vecmath.NewPlaneFromTriangle(v0.Position, v1.Position, v2.Position)
	n := plane.Normal()
	if n.X == 0 && n.Y == 0 && n.Z == 0 {
		return nil, &MalformedError{Op: "triangle", Detail: "degenerate triangle, plane normal is zero"}
	}
	return &Triangle{V0: v0, V1: v1, V2: v2, MaterialIndex: materialIndex, Plane: plane}, nil
}

// AABB implements vecmath.Bounded.
func (t *Triangle) AABB() vecmath.AABB {
	min := t.V0.Position.Min(t.V1.Position).Min(t.V2.Position)
	max := t.V0.Position.Max(t.V1.Position).Max(t.V2.Position)
	return vecmath.AABB{Min: min, Max: max}
}

func (t *Triangle) isGeometry() {}

// PointLight is an area-emitting sphere: radius zero degenerates to a point
// source. Attenuation is a*d^2 + b*d + c, carried for scene fidelity even
// though the shading integrator ignores it (shade's directLighting always
// attenuates by 1 + d^2).
type PointLight struct {
	Position vecmath.Vec3
	Color    vecmath.Vec3
	Radius   float64
	A, B, C  float64
}

// AABB implements vecmath.Bounded.
func (l *PointLight) AABB() vecmath.AABB {
	r := vecmath.Vec3{X: l.Radius, Y: l.Radius, Z: l.Radius}
	return vecmath.AABB{Min: l.Position.Sub(r), Max: l.Position.Add(r)}
}

func (l *PointLight) isGeometry() {}

// Geometry is the tagged union the BVH stores: either *Triangle or
// *PointLight. isGeometry is unexported so no type outside this package can
// implement it, keeping the union closed.
type Geometry interface {
	vecmath.Bounded
	isGeometry()
}
