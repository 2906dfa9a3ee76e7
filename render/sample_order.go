// sample_order.go - coarse-to-fine enumeration of oversampled pixel positions

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package render is the producer/consumer render pipeline: it enumerates
// oversampled sample positions in coarse-to-fine order, dispatches them to a
// worker pool with per-worker deterministic RNG seeding, and streams
// completed pixels to an output channel.
package render

import (
	"math/bits"
	"sort"
)

// SamplePos is one oversampled (x, y) coordinate awaiting a shading sample.
type SamplePos struct {
	X, Y int
}

// GenerateSampleOrder enumerates every (x, y) in [0, width*2^aa) x
// [0, height*2^aa) and sorts it coarse-to-fine: the primary key is
// min(trailingZeros(x), trailingZeros(y)) descending (coordinates with more
// factors of two sort first, giving a Van-der-Corput-like coarse preview),
// ties broken by x ascending then y ascending.
func GenerateSampleOrder(width, height, aa int) []SamplePos {
	scale := 1 << uint(aa)
	positions := make([]SamplePos, 0, width*height*scale*scale)
	for x := 0; x < width*scale; x++ {
		for y := 0; y < height*scale; y++ {
			positions = append(positions, SamplePos{X: x, Y: y})
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		ak, bk := minTrailingZeros(a.X, a.Y), minTrailingZeros(b.X, b.Y)
		if ak != bk {
			return ak > bk
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return positions
}

// minTrailingZeros returns the smaller trailing-zero count of x and y.
// bits.TrailingZeros(0) is the machine word width, which naturally sorts a
// zero coordinate ahead of everything else.
func minTrailingZeros(x, y int) int {
	tx := bits.TrailingZeros(uint(x))
	ty := bits.TrailingZeros(uint(y))
	if tx < ty {
		return tx
	}
	return ty
}
