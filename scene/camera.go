// camera.go - pinhole camera model

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package scene

import (
	"math"

	"github.com/intuitionamiga/photonray/vecmath"
)

// orthoTolerance bounds how far from orthonormal a camera basis may be
// before NewScene rejects it as malformed.
const orthoTolerance = 1e-6

// Camera is a pinhole camera with a planar image plane perpendicular to the
// view direction.
type Camera struct {
	Position    vecmath.Vec3
	TopLeft     vecmath.Vec3
	PlaneWidth  float64
	PlaneHeight float64
	Right       vecmath.Vec3
	Down        vecmath.Vec3
}

// look returns the camera's derived view direction: right x down, i.e. the
// outward normal of the right/down basis plane.
func (c Camera) look() vecmath.Vec3 {
	return c.Right.Cross(c.Down)
}

// validate reports whether the right/down/look basis is orthonormal to
// within orthoTolerance.
func (c Camera) validate() error {
	right, down, look := c.Right, c.Down, c.look()
	if math.Abs(right.SqLen()-1) > orthoTolerance {
		return &MalformedError{Op: "camera", Detail: "right vector is not unit length"}
	}
	if math.Abs(down.SqLen()-1) > orthoTolerance {
		return &MalformedError{Op: "camera", Detail: "down vector is not unit length"}
	}
	if math.Abs(look.SqLen()-1) > orthoTolerance {
		return &MalformedError{Op: "camera", Detail: "right/down vectors are not orthogonal"}
	}
	if math.Abs(right.Dot(down)) > orthoTolerance {
		return &MalformedError{Op: "camera", Detail: "right and down vectors are not orthogonal"}
	}
	if math.Abs(look.Dot(right)) > orthoTolerance {
		return &MalformedError{Op: "camera", Detail: "look and right vectors are not orthogonal"}
	}
	if math.Abs(look.Dot(down)) > orthoTolerance {
		return &MalformedError{Op: "camera", Detail: "look and down vectors are not orthogonal"}
	}
	return nil
}

// PointOnPlane maps a fractional image-plane sample (x, y) in pixel units
// (0..W, 0..H) to the world-space point on the image plane.
func (c Camera) PointOnPlane(x, y, width, height float64) vecmath.Vec3 {
	u := c.PlaneWidth * x / width
	v := c.PlaneHeight * y / height
	return c.TopLeft.Add(c.Right.Scale(u)).Add(c.Down.Scale(v))
}
