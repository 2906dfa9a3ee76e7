// plane.go - triangle support plane

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vecmath

// Plane is a plane in implicit form a*x + b*y + c*z = d, with an
// un-normalised normal (a,b,c).
type Plane struct {
	A, B, C, D float64
}

// NewPlaneFromTriangle builds the support plane of the triangle (a,b,c),
// with normal n = (b-a) x (c-a) (not normalised) and d = a . n.
func NewPlaneFromTriangle(a, b, c Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a))
	d := a.Dot(n)
	return Plane{A: n.X, B: n.Y, C: n.Z, D: d}
}

// Normal returns the plane's un-normalised normal (a,b,c).
func (p Plane) Normal() Vec3 {
	return Vec3{p.A, p.B, p.C}
}
