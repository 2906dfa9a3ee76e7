// bvhsvg.go - BVH node-box visualizer

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package bvhsvg is a debug tool, not part of the rendering core or any
// rendering hot path: it projects a built bvh.BVH's node AABBs onto a
// chosen plane and draws them as nested SVG rectangles, so a developer can
// visually sanity-check the sibling-sort heuristic and layer balance of
// spec.md §4.1.
package bvhsvg

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/intuitionamiga/photonray/bvh"
)

// Plane selects which two axes of a node's AABB are projected to 2-D.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

// box is one visited node slot's projected 2-D extent, plus its depth and
// kind, used first to compute the overall projection bounds and then to
// draw each rectangle.
type box struct {
	minU, minV, maxU, maxV float64
	depth                  int
	leaf                   bool
}

// Render writes an SVG of tree's node boxes, width x height pixels, to w.
// Leaf-layer boxes are drawn darker than inner-layer boxes so the layer
// structure is visible at a glance.
func Render(w io.Writer, tree *bvh.BVH, width, height int, plane Plane) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	defer canvas.End()

	if tree.Empty() {
		return nil
	}

	var boxes []box
	collect(tree, tree.Root(), 0, plane, &boxes)
	if len(boxes) == 0 {
		return nil
	}

	minU, minV := boxes[0].minU, boxes[0].minV
	maxU, maxV := boxes[0].maxU, boxes[0].maxV
	maxDepth := 0
	for _, b := range boxes {
		minU, minV = minf(minU, b.minU), minf(minV, b.minV)
		maxU, maxV = maxf(maxU, b.maxU), maxf(maxV, b.maxV)
		if b.depth > maxDepth {
			maxDepth = b.depth
		}
	}
	spanU, spanV := maxU-minU, maxV-minV
	if spanU == 0 {
		spanU = 1
	}
	if spanV == 0 {
		spanV = 1
	}
	scaleU := float64(width) / spanU
	scaleV := float64(height) / spanV
	scale := minf(scaleU, scaleV)

	for _, b := range boxes {
		x := int((b.minU - minU) * scale)
		y := int((b.minV - minV) * scale)
		bw := int((b.maxU - b.minU) * scale)
		bh := int((b.maxV - b.minV) * scale)
		if bw < 1 {
			bw = 1
		}
		if bh < 1 {
			bh = 1
		}
		canvas.Rect(x, y, bw, bh, boxStyle(b, maxDepth))
	}
	return nil
}

// boxStyle shades a box by depth: shallower (inner) layers are drawn with a
// light stroke and no fill, the leaf layer with a darker stroke and no fill.
func boxStyle(b box, maxDepth int) string {
	if b.leaf {
		return "fill:none;stroke:rgb(40,40,40);stroke-width:1"
	}
	if maxDepth == 0 {
		maxDepth = 1
	}
	shade := 220 - 160*b.depth/maxDepth
	return svgStrokeStyle(shade)
}

func svgStrokeStyle(shade int) string {
	return fmt.Sprintf("fill:none;stroke:rgb(%d,%d,%d);stroke-width:1", shade, shade, shade)
}

// collect walks the tree depth-first, appending the projected extent of
// every non-empty slot. Child indices follow the flat 4-ary layout
// documented in spec.md §4.1: child(i, k) = 4i + k + 1.
func collect(tree *bvh.BVH, i, depth int, plane Plane, out *[]box) {
	if i < 0 || i >= len(tree.Nodes) {
		return
	}
	n := &tree.Nodes[i]
	for k := 0; k < 4; k++ {
		if n.Kind[k] == bvh.SlotEmpty {
			continue
		}
		minU, minV, maxU, maxV := project(n, k, plane)
		*out = append(*out, box{minU: minU, minV: minV, maxU: maxU, maxV: maxV, depth: depth, leaf: n.Kind[k] == bvh.SlotLeaf})
		if n.Kind[k] == bvh.SlotInner {
			collect(tree, 4*i+k+1, depth+1, plane, out)
		}
	}
}

func project(n *bvh.Node, k int, plane Plane) (minU, minV, maxU, maxV float64) {
	switch plane {
	case PlaneXZ:
		return n.MinX[k], n.MinZ[k], n.MaxX[k], n.MaxZ[k]
	case PlaneYZ:
		return n.MinY[k], n.MinZ[k], n.MaxY[k], n.MaxZ[k]
	default:
		return n.MinX[k], n.MinY[k], n.MaxX[k], n.MaxY[k]
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
