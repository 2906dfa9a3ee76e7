// render.go - the worker pool and its supervision

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package render

import (
	"context"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/photonray/bvh"
	"github.com/intuitionamiga/photonray/scene"
	"github.com/intuitionamiga/photonray/shade"
	"github.com/intuitionamiga/photonray/trace"
	"github.com/intuitionamiga/photonray/vecmath"
)

// Pixel is one completed, display-resolution sample published by a worker.
// Consumers accumulate multiple Pixels per display (X, Y) into their own
// back buffer (spec.md §4.4).
type Pixel struct {
	X, Y  int
	Color vecmath.Vec4
}

// WorkerPanic wraps an unexpected panic recovered inside a worker goroutine
// and re-raised after the pool joins (spec.md §7).
type WorkerPanic struct {
	Worker int
	Value  any
}

func (e *WorkerPanic) Error() string {
	return fmt.Sprintf("render: worker %d panicked: %v", e.Worker, e.Value)
}

// Run renders sc at width x height with the given antialiasing level,
// across threadCount workers, seeded deterministically from seed, streaming
// completed pixels to out until every enqueued sample has been produced.
// wantQuit may be nil; setting it causes every worker to exit at its next
// task boundary (spec.md §4.4, §5). Run returns the first error any worker
// encountered — a MaterialTypeError propagated from shading, or a
// WorkerPanic recovered from an unexpected fault.
func Run(sc *scene.Scene, width, height, antialiasing, threadCount int, seed uint64, wantQuit *atomic.Bool, out chan<- Pixel) error {
	geometry := sceneGeometry(sc)
	tree := bvh.Build(geometry)

	positions := GenerateSampleOrder(width, height, antialiasing)
	tasks := make(chan SamplePos, len(positions))
	for _, p := range positions {
		tasks <- p
	}
	close(tasks)

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < threadCount; w++ {
		worker := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &WorkerPanic{Worker: worker, Value: r}
				}
			}()
			return runWorker(ctx, sc, tree, worker, seed, width, height, antialiasing, wantQuit, tasks, out)
		})
	}
	return g.Wait()
}

func sceneGeometry(sc *scene.Scene) []scene.Geometry {
	geometry := make([]scene.Geometry, 0, len(sc.Triangles)+len(sc.Lights))
	for _, t := range sc.Triangles {
		geometry = append(geometry, t)
	}
	for _, l := range sc.Lights {
		geometry = append(geometry, l)
	}
	return geometry
}

// runWorker seeds its own RNG and ray shooter, then pulls tasks until the
// queue drains, the want-quit flag is set, or an enclosing context is
// cancelled (a sibling worker errored).
func runWorker(ctx context.Context, sc *scene.Scene, tree *bvh.BVH, worker int, seed uint64, width, height, antialiasing int, wantQuit *atomic.Bool, tasks <-chan SamplePos, out chan<- Pixel) error {
	rng := rand.New(rand.NewPCG(workerSeed(seed, worker)))
	shooter := trace.NewShooter(tree)
	scale := 1 << uint(antialiasing)

	for {
		if wantQuit != nil && wantQuit.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case pos, ok := <-tasks:
			if !ok {
				return nil
			}
			color, err := sampleOne(sc, shooter, rng, pos, width, height, antialiasing)
			if err != nil {
				return err
			}
			out <- Pixel{X: pos.X / scale, Y: pos.Y / scale, Color: color}
		}
	}
}

func sampleOne(sc *scene.Scene, shooter *trace.Shooter, rng *rand.Rand, pos SamplePos, width, height, antialiasing int) (vecmath.Vec4, error) {
	sx, sy := shade.SubpixelPosition(pos.X, pos.Y, antialiasing)
	ray := shade.PrimaryRay(sc.Camera, sx, sy, float64(width), float64(height))
	color, ok, err := shade.Sample(sc, shooter, rng, ray)
	if err != nil {
		return vecmath.Vec4{}, err
	}
	if !ok {
		return vecmath.Vec4{}, nil
	}
	return vecmath.Vec4{X: color.X, Y: color.Y, Z: color.Z, W: 1}, nil
}

// workerSeed derives a per-worker PCG32 seed from the program seed and the
// zero-based worker index, grounded in the original implementation's
// `seed.overflowing_mul(worker+123)` 128-bit product reinterpreted as raw
// generator state (spec.md §4.4, §5): for a non-zero seed two workers never
// share a stream (seed 0 gives every worker the all-zero state), and the
// same (seed, worker count) always reproduces the same per-worker sequence.
func workerSeed(seed uint64, worker int) (hi, lo uint64) {
	return bits.Mul64(seed, uint64(worker+123))
}
