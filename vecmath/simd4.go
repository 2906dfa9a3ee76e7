// simd4.go - 4-lane packed double-precision value

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vecmath

import "math"

// Lane4 is a 4-lane packed double-precision value: the unit the BVH slab
// test operates on, one lane per child AABB. On platforms with 256-bit
// vector intrinsics this maps directly to a single _mm256_pd register; the
// portable implementation here is plain scalar Go operating on all four
// lanes per call, with identical semantics either way (spec.md §9).
type Lane4 [4]float64

// Splat4 broadcasts a scalar to all four lanes.
func Splat4(v float64) Lane4 {
	return Lane4{v, v, v, v}
}

func (a Lane4) Add(b Lane4) Lane4 {
	return Lane4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Lane4) Sub(b Lane4) Lane4 {
	return Lane4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (a Lane4) Mul(b Lane4) Lane4 {
	return Lane4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// Scale multiplies every lane by a scalar.
func (a Lane4) Scale(s float64) Lane4 {
	return Lane4{a[0] * s, a[1] * s, a[2] * s, a[3] * s}
}

// Min returns the lane-wise minimum of a and b.
func (a Lane4) Min(b Lane4) Lane4 {
	return Lane4{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2]), math.Min(a[3], b[3])}
}

// Max returns the lane-wise maximum of a and b.
func (a Lane4) Max(b Lane4) Lane4 {
	return Lane4{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2]), math.Max(a[3], b[3])}
}

// LessEq returns, per lane, whether a[i] <= b[i].
func (a Lane4) LessEq(b Lane4) [4]bool {
	return [4]bool{a[0] <= b[0], a[1] <= b[1], a[2] <= b[2], a[3] <= b[3]}
}

// GreaterEq returns, per lane, whether a[i] >= b[i].
func (a Lane4) GreaterEq(b Lane4) [4]bool {
	return [4]bool{a[0] >= b[0], a[1] >= b[1], a[2] >= b[2], a[3] >= b[3]}
}
