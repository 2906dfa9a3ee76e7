// ray.go - rays and intersection results

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package trace

import (
	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

// Ray is an origin and a direction; the direction need not be unit-length.
type Ray struct {
	Origin vecmath.Vec3
	Dir    vecmath.Vec3
}

// HitKind tags what a Hit landed on.
type HitKind uint8

const (
	HitTriangle HitKind = iota
	HitLight
)

// Hit is a validated intersection: the world-space position, the
// interpolated shading/outward normal, the texture coordinate (zero for
// lights), the hit parameter, and the primitive hit.
type Hit struct {
	Kind     HitKind
	Triangle *scene.Triangle
	Light    *scene.PointLight
	Position vecmath.Vec3
	Normal   vecmath.Vec3
	UV       [2]float64
	Lambda   float64
}
