// main.go - demonstration CLI driver for the photonray render pipeline

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/intuitionamiga/photonray/config"
	"github.com/intuitionamiga/photonray/display"
	"github.com/intuitionamiga/photonray/render"
	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/vecmath"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML job file (omit to use built-in defaults)")
	flag.Parse()

	job := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("photonray-render: %v", err)
		}
		job = loaded
	}

	log.Printf("AVX2 available: %v", cpu.X86.HasAVX2)

	sc, err := builtinScene()
	if err != nil {
		log.Fatalf("photonray-render: building scene: %v", err)
	}

	out, err := newOutput(job)
	if err != nil {
		log.Fatalf("photonray-render: %v", err)
	}
	if err := out.Start(job.Width, job.Height); err != nil {
		log.Fatalf("photonray-render: starting display: %v", err)
	}
	defer out.Close()

	accum := newAccumulator(job.Width, job.Height)
	pixels := make(chan render.Pixel, 256)
	var wantQuit atomic.Bool

	done := make(chan error, 1)
	go func() {
		done <- render.Run(sc, job.Width, job.Height, job.Antialiasing, job.Threads, job.Seed, &wantQuit, pixels)
		close(pixels)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case p, ok := <-pixels:
			if !ok {
				if err := <-done; err != nil {
					log.Fatalf("photonray-render: render failed: %v", err)
				}
				finish(out, accum, job.OutputPath)
				return
			}
			accum.add(p.X, p.Y, p.Color)
			out.WritePixel(p.X, p.Y, accum.average(p.X, p.Y))
		case <-ticker.C:
			out.Present()
		}
	}
}

func finish(out display.Output, accum *accumulator, outputPath string) {
	out.Present()
	if err := accum.writePNG(outputPath); err != nil {
		log.Printf("photonray-render: writing %s: %v", outputPath, err)
	}
}

func newOutput(job config.Job) (display.Output, error) {
	switch job.Display {
	case "ebiten":
		return display.NewEbitenOutput(job.OutputPath), nil
	case "headless":
		return display.NewHeadlessOutput(), nil
	default:
		return display.NewTerminalOutput(os.Stdout, int(os.Stdout.Fd())), nil
	}
}

// accumulator averages the (possibly many, under antialiasing) samples
// render.Run streams per display pixel.
type accumulator struct {
	width, height int
	sum           []vecmath.Vec4
	count         []int
}

func newAccumulator(width, height int) *accumulator {
	return &accumulator{width: width, height: height, sum: make([]vecmath.Vec4, width*height), count: make([]int, width*height)}
}

func (a *accumulator) add(x, y int, c vecmath.Vec4) {
	i := y*a.width + x
	a.sum[i] = a.sum[i].Add(c)
	a.count[i]++
}

func (a *accumulator) average(x, y int) vecmath.Vec4 {
	i := y*a.width + x
	n := a.count[i]
	if n == 0 {
		return vecmath.Vec4{}
	}
	s := a.sum[i]
	return vecmath.Vec4{X: s.X / float64(n), Y: s.Y / float64(n), Z: s.Z / float64(n), W: 1}
}

func (a *accumulator) writePNG(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			c := a.average(x, y)
			img.Set(x, y, display.ToneMappedRGBA(c))
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// builtinScene assembles a small fixed scene: a single lit triangle, since
// spec.md §1 keeps file-format scene importers out of the core.
func builtinScene() (*scene.Scene, error) {
	camera := scene.Camera{
		Position:    vecmath.Vec3{X: 0, Y: 0, Z: -5},
		TopLeft:     vecmath.Vec3{X: -2, Y: -1.5, Z: 0},
		PlaneWidth:  4,
		PlaneHeight: 3,
		Right:       vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Down:        vecmath.Vec3{X: 0, Y: 1, Z: 0},
	}

	tri, err := scene.NewTriangle(
		scene.Vertex{Position: vecmath.Vec3{X: -1, Y: 1, Z: 0}, Normal: vecmath.Vec3{X: 0, Y: 0, Z: -1}},
		scene.Vertex{Position: vecmath.Vec3{X: 1, Y: 1, Z: 0}, Normal: vecmath.Vec3{X: 0, Y: 0, Z: -1}},
		scene.Vertex{Position: vecmath.Vec3{X: 0, Y: -1, Z: 0}, Normal: vecmath.Vec3{X: 0, Y: 0, Z: -1}},
		0,
	)
	if err != nil {
		return nil, err
	}

	material := &scene.Material{Graph: &scene.Graph{
		Nodes: []scene.Node{
			&scene.BsdfPrincipledNode{
				BaseColor: scene.ConstLink(vecmath.Vec4{X: 0.8, Y: 0.2, Z: 0.2, W: 1}),
				Specular:  scene.ConstLink(0.5),
				Metallic:  scene.ConstLink(0.0),
			},
			&scene.OutputMaterialNode{Surface: scene.NodeLink[scene.Bsdf](0, 0)},
		},
		OutputNode: 1,
	}}

	light := &scene.PointLight{
		Position: vecmath.Vec3{X: 0, Y: -3, Z: -3},
		Color:    vecmath.Vec3{X: 20, Y: 20, Z: 20},
		Radius:   0.5,
	}

	return scene.NewScene(camera, []*scene.Triangle{tri}, []*scene.PointLight{light}, []*scene.Material{material}, nil)
}
