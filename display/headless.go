// headless.go - in-memory Output for automation and tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package display

import (
	"fmt"
	"sync"

	"github.com/intuitionamiga/photonray/vecmath"
)

// HeadlessOutput accumulates a render's linear HDR pixels in memory,
// without ever touching a window or a terminal. It's used by automated
// driving code (tests, batch jobs) that wants the final frame without a
// viewer.
type HeadlessOutput struct {
	mu             sync.RWMutex
	width, height  int
	pixels         []vecmath.Vec4
	presentedCount int
}

// NewHeadlessOutput returns a ready-to-Start HeadlessOutput.
func NewHeadlessOutput() *HeadlessOutput {
	return &HeadlessOutput{}
}

func (h *HeadlessOutput) Start(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("display: headless Start: non-positive size %dx%d", width, height)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
	h.pixels = make([]vecmath.Vec4, width*height)
	return nil
}

func (h *HeadlessOutput) WritePixel(x, y int, color vecmath.Vec4) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if x < 0 || x >= h.width || y < 0 || y >= h.height {
		return fmt.Errorf("display: headless WritePixel: (%d,%d) out of bounds for %dx%d", x, y, h.width, h.height)
	}
	h.pixels[y*h.width+x] = color
	return nil
}

func (h *HeadlessOutput) Present() error {
	h.mu.Lock()
	h.presentedCount++
	h.mu.Unlock()
	return nil
}

func (h *HeadlessOutput) Close() error { return nil }

// Pixel returns the last linear HDR color written at (x, y).
func (h *HeadlessOutput) Pixel(x, y int) vecmath.Vec4 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pixels[y*h.width+x]
}

// PresentedCount reports how many times Present has been called, so a
// caller can confirm the backend was actually driven rather than left idle.
func (h *HeadlessOutput) PresentedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.presentedCount
}

// ToneMapped returns (x, y)'s color after the Reinhard-plus-gamma pipeline
// the other backends apply before display.
func (h *HeadlessOutput) ToneMapped(x, y int) (r, g, b float64) {
	c := h.Pixel(x, y)
	return reinhardToneMap(c.X), reinhardToneMap(c.Y), reinhardToneMap(c.Z)
}
