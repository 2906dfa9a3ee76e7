// ebiten.go - live-window Output backed by Ebiten

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/intuitionamiga/photonray/vecmath"
)

// EbitenOutput shows a render in progress in a live, resizable window.
// Pixels arrive in linear HDR and are Reinhard tone-mapped as they're
// written; Ctrl+S saves the current frame as a PNG to SavePath and copies
// its path onto the system clipboard.
type EbitenOutput struct {
	mu            sync.RWMutex
	width, height int
	raw           []vecmath.Vec4
	rgba          []byte // tone-mapped, ready for ebiten.Image.WritePixels
	window        *ebiten.Image
	vsyncChan     chan struct{}
	frameCount    uint64
	running       bool

	SavePath string

	clipboardOnce sync.Once
	clipboardOK   bool
}

// NewEbitenOutput returns an EbitenOutput that saves frames to savePath
// when the viewer presses Ctrl+S.
func NewEbitenOutput(savePath string) *EbitenOutput {
	return &EbitenOutput{
		vsyncChan: make(chan struct{}, 1),
		SavePath:  savePath,
	}
}

func (eo *EbitenOutput) Start(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("display: ebiten Start: non-positive size %dx%d", width, height)
	}
	eo.mu.Lock()
	eo.width, eo.height = width, height
	eo.raw = make([]vecmath.Vec4, width*height)
	eo.rgba = make([]byte, width*height*4)
	eo.running = true
	eo.mu.Unlock()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("photonray")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	go func() {
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Fprintf(os.Stderr, "display: ebiten: %v\n", err)
		}
	}()
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) WritePixel(x, y int, c vecmath.Vec4) error {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	if x < 0 || x >= eo.width || y < 0 || y >= eo.height {
		return fmt.Errorf("display: ebiten WritePixel: (%d,%d) out of bounds for %dx%d", x, y, eo.width, eo.height)
	}
	eo.raw[y*eo.width+x] = c
	i := (y*eo.width + x) * 4
	eo.rgba[i] = byte(reinhardToneMap(c.X) * 255)
	eo.rgba[i+1] = byte(reinhardToneMap(c.Y) * 255)
	eo.rgba[i+2] = byte(reinhardToneMap(c.Z) * 255)
	eo.rgba[i+3] = 255
	return nil
}

// Present is a no-op beyond letting the Ebiten game loop pick up the
// latest buffer on its next Draw; the window redraws continuously.
func (eo *EbitenOutput) Present() error { return nil }

func (eo *EbitenOutput) Close() error {
	eo.mu.Lock()
	eo.running = false
	eo.mu.Unlock()
	return nil
}

// Update implements ebiten.Game.
func (eo *EbitenOutput) Update() error {
	eo.mu.RLock()
	running := eo.running
	eo.mu.RUnlock()
	if ebiten.IsWindowBeingClosed() || !running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && ebiten.IsKeyPressed(ebiten.KeyControlLeft) {
		eo.saveAndCopyPath()
	}
	return nil
}

// Draw implements ebiten.Game.
func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.mu.Lock()
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}
	eo.window.WritePixels(eo.rgba)
	eo.frameCount++
	eo.mu.Unlock()

	screen.DrawImage(eo.window, nil)
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

// Layout implements ebiten.Game.
func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	eo.mu.RLock()
	defer eo.mu.RUnlock()
	return eo.width, eo.height
}

func (eo *EbitenOutput) saveAndCopyPath() {
	if eo.SavePath == "" {
		return
	}
	eo.mu.RLock()
	width, height := eo.width, eo.height
	rgba := make([]byte, len(eo.rgba))
	copy(rgba, eo.rgba)
	eo.mu.RUnlock()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.SetRGBA(x, y, color.RGBA{R: rgba[i], G: rgba[i+1], B: rgba[i+2], A: rgba[i+3]})
		}
	}
	f, err := os.Create(eo.SavePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "display: save %s: %v\n", eo.SavePath, err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "display: encode %s: %v\n", eo.SavePath, err)
		return
	}

	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if eo.clipboardOK {
		clipboard.Write(clipboard.FmtText, []byte(eo.SavePath))
	}
}
