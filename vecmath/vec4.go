// vec4.go - 4-component double-precision vector

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vecmath

// Vec4 is a 4-component double-precision vector, used for homogeneous
// points/directions and for RGBA colour.
type Vec4 struct {
	X, Y, Z, W float64
}

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

func (a Vec4) Scale(s float64) Vec4 {
	return Vec4{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

// Xyz drops the w component.
func (a Vec4) Xyz() Vec3 {
	return Vec3{a.X, a.Y, a.Z}
}

// RGBA returns the value reinterpreted as a linear-colorspace color.
func (a Vec4) RGBA() (r, g, b, alpha float64) {
	return a.X, a.Y, a.Z, a.W
}
