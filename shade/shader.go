// shader.go - the recursive handle_ray shader

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package shade

import (
	"math"
	"math/rand/v2"

	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/trace"
	"github.com/intuitionamiga/photonray/vecmath"
)

// maxBounces is the recursion ceiling on a primary ray's entry call
// (spec.md §4.3). Each reflection spends one bounce; reflections keep
// chaining while the surfaces hit are specular or metallic, and the
// anti-bounce collapse applies only once bouncesRemaining reaches 0.
const maxBounces = 1024

// epsilon guards the specular/metallic/diffuse significance thresholds and
// the shadow-ray/reflection-ray lambdaMin offset used to avoid
// self-intersection at the origin of a spawned ray.
const epsilon = 1e-6

// shadowSamples is the per-light sample count for disk-sampled area-light
// direct lighting (spec.md §4.3, S = 20).
const shadowSamples = 20

// Sample shades a single camera subray: it shoots the primary ray and
// resolves the full handle_ray recursion. A miss (camera ray never hits
// anything) reports ok == false and the caller should treat the sample as
// black.
func Sample(sc *scene.Scene, shooter *trace.Shooter, rng *rand.Rand, ray trace.Ray) (vecmath.Vec3, bool, error) {
	return handleRay(sc, shooter, rng, ray.Origin, ray.Dir, 1.0, maxBounces)
}

// handleRay shoots one ray and shades whatever it hits, recursing into a
// single reflection bounce when the surface is specular or metallic.
func handleRay(sc *scene.Scene, shooter *trace.Shooter, rng *rand.Rand, origin, dir vecmath.Vec3, lambdaMin float64, bouncesRemaining int) (vecmath.Vec3, bool, error) {
	hit, ok := shooter.Shoot(trace.Ray{Origin: origin, Dir: dir}, lambdaMin, math.Inf(1))
	if !ok {
		return vecmath.Vec3{}, false, nil
	}

	switch hit.Kind {
	case trace.HitLight:
		return hit.Light.Color, true, nil
	case trace.HitTriangle:
		color, err := shadeTriangle(sc, shooter, rng, dir, hit, bouncesRemaining)
		if err != nil {
			return vecmath.Vec3{}, false, err
		}
		return color, true, nil
	default:
		return vecmath.Vec3{}, false, nil
	}
}

// shadeTriangle evaluates the material graph at the hit and integrates
// specular/metallic reflection plus disk-sampled direct lighting
// (spec.md §4.3 steps 2-4).
func shadeTriangle(sc *scene.Scene, shooter *trace.Shooter, rng *rand.Rand, dir vecmath.Vec3, hit trace.Hit, bouncesRemaining int) (vecmath.Vec3, error) {
	material := sc.Materials[hit.Triangle.MaterialIndex]
	bsdf, err := material.Evaluate(hit.UV[0], hit.UV[1], sc.Images)
	if err != nil {
		return vecmath.Vec3{}, err
	}
	if bouncesRemaining == 0 {
		// Anti-bounce: kill further recursion but keep the direct-lighting
		// contribution (spec.md §4.3 step 2, §9).
		bsdf.Specular, bsdf.Metallic = 0, 0
	}

	n := hit.Normal
	color := bsdf.Color.Xyz()
	result := vecmath.Vec3{}

	specular := bsdf.Specular
	if specular > epsilon || bsdf.Metallic > epsilon {
		r := reflect(dir.Normalize(), n)
		reflected, ok, err := handleRay(sc, shooter, rng, hit.Position, r, epsilon, bouncesRemaining-1)
		if err != nil {
			return vecmath.Vec3{}, err
		}
		if ok {
			cosNR := n.Dot(r)
			effSpecular := (specular + (1-specular)*math.Pow(1-cosNR, 5)) * (1 - bsdf.Metallic)
			specular = effSpecular
			weight := vecmath.Vec3{X: effSpecular, Y: effSpecular, Z: effSpecular}.Add(color.Scale(bsdf.Metallic))
			result = result.Add(reflected.Mul(weight))
		}
	}

	diffuse := 1 - bsdf.Metallic - specular
	if diffuse > epsilon {
		for _, light := range sc.Lights {
			result = result.Add(directLighting(shooter, rng, hit.Position, n, color, light, diffuse))
		}
	}
	return result, nil
}

// directLighting integrates one point light's contribution by sampling its
// disk cross-section S = 20 times and averaging unoccluded samples
// (spec.md §4.3 step 4).
func directLighting(shooter *trace.Shooter, rng *rand.Rand, p, n, color vecmath.Vec3, light *scene.PointLight, diffuse float64) vecmath.Vec3 {
	toLight, dist := light.Position.Sub(p).NormalizeLen()
	cosNLight := n.Dot(toLight)
	if cosNLight <= 0 {
		return vecmath.Vec3{}
	}

	// An arbitrary vector perpendicular(ish) to toLight; exactness doesn't
	// matter since it is then rotated around toLight (spec.md §9).
	radiusVec := vecmath.Vec3{X: toLight.Y, Y: -toLight.X, Z: toLight.Z}
	attenuation := 1 + dist*dist

	total := vecmath.Vec3{}
	for i := 0; i < shadowSamples; i++ {
		r := math.Sqrt(rng.Float64()) * light.Radius
		phi := rng.Float64() * 2 * math.Pi
		rotated := vecmath.RotationAroundVector(toLight, phi).MulVec4(radiusVec.Xyz0()).Xyz()
		sampleDest := light.Position.Add(rotated.Scale(r))

		hit, ok := shooter.Shoot(trace.Ray{Origin: p, Dir: sampleDest.Sub(p)}, epsilon, 1.0)
		if ok && hit.Kind == trace.HitTriangle {
			continue // occluded; hits on the light itself don't block it
		}
		total = total.Add(color.Mul(light.Color).Scale(cosNLight * diffuse / attenuation / shadowSamples))
	}
	return total
}

// reflect mirrors a normalised ray direction around unit normal n.
func reflect(ray, n vecmath.Vec3) vecmath.Vec3 {
	return ray.Sub(n.Scale(2 * ray.Dot(n)))
}
