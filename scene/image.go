// image.go - the texture oracle contract

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package scene

import "github.com/intuitionamiga/photonray/vecmath"

// ImageSource is a read-only linear-colorspace texture oracle. The core
// never decodes image files itself (package imgsrc provides a reference
// implementation that does); it only samples through this interface.
type ImageSource interface {
	// Get returns the linear-colorspace sample at integer texel (x, y).
	// 0 <= x < W, 0 <= y < H.
	Get(x, y int) vecmath.Vec4
	// Size returns the image's width and height in texels.
	Size() (w, h int)
}

// Image is a minimal in-memory ImageSource, useful for tests and for
// scenes built programmatically without going through imgsrc.
type Image struct {
	W, H    int
	Texels  []vecmath.Vec4 // row-major, length W*H
}

// NewSolidImage returns a 1x1 image of a single constant color.
func NewSolidImage(c vecmath.Vec4) *Image {
	return &Image{W: 1, H: 1, Texels: []vecmath.Vec4{c}}
}

func (img *Image) Get(x, y int) vecmath.Vec4 {
	return img.Texels[img.W*y+x]
}

func (img *Image) Size() (w, h int) {
	return img.W, img.H
}
