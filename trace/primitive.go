// primitive.go - triangle and light-sphere intersection tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package trace

import (
	"math"

	"github.com/intuitionamiga/photonray/scene"
)

// barycentricTolerance is the slack epsilon applied to the
// alpha+beta+gamma == 1 containment check (spec.md §4.2).
const barycentricTolerance = 2e-7

// intersectTriangle tests ray against tri's support plane, then validates
// containment via triangle-area barycentric ratios. Reports false on a
// miss, a back-facing hit, or any non-finite intermediate result.
func intersectTriangle(tri *scene.Triangle, ray Ray, lambdaMin, lambdaMax float64) (Hit, bool) {
	n := tri.Plane.Normal()
	denom := n.Dot(ray.Dir)
	if denom == 0 {
		return Hit{}, false
	}
	lambda := (tri.Plane.D - n.Dot(ray.Origin)) / denom
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < lambdaMin || lambda > lambdaMax {
		return Hit{}, false
	}

	p := ray.Origin.Add(ray.Dir.Scale(lambda))
	a, b, c := tri.V0.Position, tri.V1.Position, tri.V2.Position
	nLen := n.Len()
	if nLen == 0 {
		return Hit{}, false
	}
	alpha := b.Sub(p).Cross(c.Sub(p)).Len() / nLen
	beta := a.Sub(p).Cross(c.Sub(p)).Len() / nLen
	gamma := a.Sub(p).Cross(b.Sub(p)).Len() / nLen
	sum := alpha + beta + gamma
	if math.IsNaN(sum) || math.Abs(sum-1) > barycentricTolerance {
		return Hit{}, false
	}

	shadingNormal := tri.V0.Normal.Scale(alpha).Add(tri.V1.Normal.Scale(beta)).Add(tri.V2.Normal.Scale(gamma))
	if shadingNormal.Dot(ray.Dir) > 0 {
		// Back-facing: the interpolated shading normal faces away from the ray.
		return Hit{}, false
	}
	shadingNormal = shadingNormal.Normalize()

	u := tri.V0.UV[0]*alpha + tri.V1.UV[0]*beta + tri.V2.UV[0]*gamma
	v := tri.V0.UV[1]*alpha + tri.V1.UV[1]*beta + tri.V2.UV[1]*gamma

	return Hit{
		Kind:     HitTriangle,
		Triangle: tri,
		Position: p,
		Normal:   shadingNormal,
		UV:       [2]float64{u, v},
		Lambda:   lambda,
	}, true
}

// intersectLight solves the sphere quadratic |origin + lambda*dir - centre|^2
// = r^2 and takes the smaller real root within [lambdaMin, lambdaMax].
// Radius-zero lights (point sources) never intersect a traced ray: they
// are lighting-only and contribute no visible surface.
func intersectLight(light *scene.PointLight, ray Ray, lambdaMin, lambdaMax float64) (Hit, bool) {
	if light.Radius <= 0 {
		return Hit{}, false
	}
	oc := ray.Origin.Sub(light.Position)
	a := ray.Dir.Dot(ray.Dir)
	b := 2 * oc.Dot(ray.Dir)
	c := oc.Dot(oc) - light.Radius*light.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return Hit{}, false
	}
	sq := math.Sqrt(disc)
	lambda := (-b - sq) / (2 * a)
	if lambda < lambdaMin || lambda > lambdaMax {
		lambda = (-b + sq) / (2 * a)
		if lambda < lambdaMin || lambda > lambdaMax {
			return Hit{}, false
		}
	}
	p := ray.Origin.Add(ray.Dir.Scale(lambda))
	normal := p.Sub(light.Position).Scale(1 / light.Radius)
	return Hit{
		Kind:     HitLight,
		Light:    light,
		Position: p,
		Normal:   normal,
		Lambda:   lambda,
	}, true
}
