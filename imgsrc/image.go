// image.go - a real-codec scene.ImageSource oracle

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package imgsrc is a reference implementation of scene.ImageSource backed
// by real image codecs. It is not part of the rendering core (the core
// never imports an image codec); it exists so an application can hand the
// renderer textures loaded from disk.
package imgsrc

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

// Load decodes the image file at path into a scene.Image: rows are flipped
// so texel (0, 0) is the bottom-left corner (texture-space v increases
// upward, matching the original importer's convention), and each channel is
// converted from sRGB to linear via the standard c^2.2 approximation.
func Load(path string) (*scene.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgsrc: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("imgsrc: decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	texels := make([]vecmath.Vec4, w*h)
	for y := 0; y < h; y++ {
		flippedY := h - y - 1
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			texels[w*flippedY+x] = vecmath.Vec4{
				X: srgbToLinear(float64(r) / 65535),
				Y: srgbToLinear(float64(g) / 65535),
				Z: srgbToLinear(float64(b) / 65535),
				W: float64(a) / 65535,
			}
		}
	}
	return &scene.Image{W: w, H: h, Texels: texels}, nil
}

// decode dispatches to golang.org/x/image's BMP/TIFF decoders by file
// extension, since the standard library's image.Decode only registers
// PNG/JPEG/GIF; everything else falls through to image.Decode's registry.
func decode(f *os.File, path string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bmp.Decode(f)
	case ".tif", ".tiff":
		return tiff.Decode(f)
	default:
		img, _, err := image.Decode(f)
		return img, err
	}
}

func srgbToLinear(c float64) float64 {
	return math.Pow(c, 2.2)
}
