// primary.go - primary ray generation and RGSS subpixel sampling

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package shade turns a camera sample into a shaded linear-RGB color: primary
// ray generation with rotated-grid subpixel supersampling, the recursive
// handle_ray shader (reflection, Fresnel-weighted specular/metallic,
// disk-sampled area-light direct lighting), and material graph evaluation
// through scene.Material.
package shade

import (
	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/trace"
)

// rgssOffsets are the four rotated-grid displacements (in subpixel-centre
// units) assigned to the four grandchild subpixels by the bottom bit of x
// and y (spec.md §4.3).
var rgssOffsets = [4][2]float64{
	{-1.0 / 8, 1.0 / 8},
	{-1.0 / 8, -1.0 / 8},
	{1.0 / 8, 1.0 / 8},
	{1.0 / 8, -1.0 / 8},
}

// SubpixelPosition maps an integer oversampled coordinate (x, y), with
// antialiasing level aa, to a fractional display-pixel-space sample
// position. For aa == 0 this is just the pixel centre; otherwise it is the
// rotated-grid super-sampling pattern around the second-to-last subpixel
// centre.
func SubpixelPosition(x, y, aa int) (float64, float64) {
	if aa == 0 {
		return float64(x) + 0.5, float64(y) + 0.5
	}
	mask := (1 << aa) - 1
	subpixelSize := 1.0 / float64(int(1)<<aa)
	centerX := float64(x>>aa) + float64(x&mask)*subpixelSize + subpixelSize/2
	centerY := float64(y>>aa) + float64(y&mask)*subpixelSize + subpixelSize/2

	off := rgssOffsets[(x%2)+2*(y%2)]
	div := float64(int(1) << (aa - 1))
	return centerX + off[0]/div, centerY + off[1]/div
}

// PrimaryRay builds the camera ray through fractional pixel position
// (x, y) of a width x height image plane. The direction is left
// un-normalised; the shader normalises it once before reflection so lambda
// stays in plane units (spec.md §4.3).
func PrimaryRay(camera scene.Camera, x, y, width, height float64) trace.Ray {
	point := camera.PointOnPlane(x, y, width, height)
	return trace.Ray{Origin: camera.Position, Dir: point.Sub(camera.Position)}
}
