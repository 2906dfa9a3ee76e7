// mat4.go - 4x4 column-major double-precision matrix

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vecmath

import "math"

// Mat4 is a column-major 4x4 matrix: Cols[c][r].
type Mat4 struct {
	Cols [4]Vec4
}

// MulVec4 transforms v by m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.Cols[0].X*v.X + m.Cols[1].X*v.Y + m.Cols[2].X*v.Z + m.Cols[3].X*v.W,
		Y: m.Cols[0].Y*v.X + m.Cols[1].Y*v.Y + m.Cols[2].Y*v.Z + m.Cols[3].Y*v.W,
		Z: m.Cols[0].Z*v.X + m.Cols[1].Z*v.Y + m.Cols[2].Z*v.Z + m.Cols[3].Z*v.W,
		W: m.Cols[0].W*v.X + m.Cols[1].W*v.Y + m.Cols[2].W*v.Z + m.Cols[3].W*v.W,
	}
}

// RotationAroundVector builds the Rodrigues axis-angle rotation matrix that
// rotates by angle (radians) around the unit axis v.
func RotationAroundVector(v Vec3, angle float64) Mat4 {
	x, y, z := v.X, v.Y, v.Z
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	a := 1 - cosA
	return Mat4{Cols: [4]Vec4{
		{x*x*a + cosA, y*x*a + z*sinA, z*x*a - y*sinA, 0},
		{x*y*a - z*sinA, y*y*a + cosA, z*y*a + x*sinA, 0},
		{x*z*a + y*sinA, y*z*a - x*sinA, z*z*a + cosA, 0},
		{0, 0, 0, 1},
	}}
}
