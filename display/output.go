// output.go - the display.Output contract and tone mapping shared by all
// backends

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package display streams a render.Run in progress to a viewer. An Output
// receives linear HDR pixels as they're produced and is responsible for
// tone mapping and presentation; three backends are provided: a live
// Ebiten window, a headless in-memory accumulator for automation, and an
// ASCII brightness preview for terminals without a GUI.
package display

import (
	"image/color"
	"math"

	"github.com/intuitionamiga/photonray/vecmath"
)

// Output is the minimal interface a display backend must implement to
// receive a render in progress.
type Output interface {
	// Start allocates backend resources for a width x height frame.
	Start(width, height int) error
	// WritePixel records one finished pixel's linear HDR color.
	WritePixel(x, y int, color vecmath.Vec4) error
	// Present flushes the accumulated frame to the viewer.
	Present() error
	// Close releases backend resources.
	Close() error
}

// reinhardToneMap compresses an unbounded linear HDR channel value into
// [0, 1] via the Reinhard operator (c / (1 + c)), then gamma-encodes it for
// display with c^(1/2.2), the inverse of the c^2.2 approximation imgsrc
// uses on load.
func reinhardToneMap(c float64) float64 {
	if c < 0 {
		c = 0
	}
	mapped := c / (1 + c)
	return gammaEncode(mapped)
}

func gammaEncode(c float64) float64 {
	if c <= 0 {
		return 0
	}
	return math.Pow(c, 1/2.2)
}

// ToneMappedRGBA converts a linear HDR color to a display-ready 8-bit
// color, for callers (such as cmd/photonray-render's final PNG write) that
// want the same Reinhard-plus-gamma pipeline the live backends use without
// going through an Output.
func ToneMappedRGBA(c vecmath.Vec4) color.RGBA {
	return color.RGBA{
		R: uint8(reinhardToneMap(c.X) * 255),
		G: uint8(reinhardToneMap(c.Y) * 255),
		B: uint8(reinhardToneMap(c.Z) * 255),
		A: 255,
	}
}
