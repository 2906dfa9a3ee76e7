// terminal.go - ASCII brightness preview for terminals without a GUI

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package display

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"golang.org/x/term"

	"github.com/intuitionamiga/photonray/vecmath"
)

// ramp is ordered darkest to brightest; luminance indexes into it.
const ramp = " .:-=+*#%@"

// TerminalOutput redraws a render in place as an ASCII brightness preview,
// downsampled to fit the terminal's current column/row count.
type TerminalOutput struct {
	mu            sync.Mutex
	w             *bufio.Writer
	fd            int
	width, height int
	pixels        []vecmath.Vec4
}

// NewTerminalOutput writes its preview to w; fd is the file descriptor used
// to query the live terminal size (typically int(os.Stdout.Fd())).
func NewTerminalOutput(w io.Writer, fd int) *TerminalOutput {
	return &TerminalOutput{w: bufio.NewWriter(w), fd: fd}
}

func (t *TerminalOutput) Start(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("display: terminal Start: non-positive size %dx%d", width, height)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
	t.pixels = make([]vecmath.Vec4, width*height)
	return nil
}

func (t *TerminalOutput) WritePixel(x, y int, color vecmath.Vec4) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return fmt.Errorf("display: terminal WritePixel: (%d,%d) out of bounds for %dx%d", x, y, t.width, t.height)
	}
	t.pixels[y*t.width+x] = color
	return nil
}

// Present downsamples the accumulated frame to the terminal's current size
// (falling back to 80x24 if the size can't be queried) and redraws it.
func (t *TerminalOutput) Present() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cols, rows, err := term.GetSize(t.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}
	// Character cells are roughly twice as tall as wide; halve the row
	// count asked of the image so the preview isn't squashed vertically.
	rows = maxInt(rows/2, 1)

	fmt.Fprint(t.w, "\x1b[H")
	for row := 0; row < rows; row++ {
		srcY := row * t.height / rows
		for col := 0; col < cols; col++ {
			srcX := col * t.width / cols
			c := t.pixels[srcY*t.width+srcX]
			lum := reinhardToneMap((c.X + c.Y + c.Z) / 3)
			idx := int(lum * float64(len(ramp)-1))
			idx = clampInt(idx, 0, len(ramp)-1)
			t.w.WriteByte(ramp[idx])
		}
		t.w.WriteByte('\n')
	}
	return t.w.Flush()
}

func (t *TerminalOutput) Close() error { return nil }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
