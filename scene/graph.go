// graph.go - the material node graph: links, evaluation context, memoisation

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package scene

import (
	"fmt"

	"github.com/intuitionamiga/photonray/vecmath"
)

// Bsdf is the evaluated shading result: linear-color albedo and scalar
// specular/metallic mix terms.
type Bsdf struct {
	Color    vecmath.Vec4
	Specular float64
	Metallic float64
}

// Output is whatever a node's single evaluation slot produced: a Bsdf,
// vecmath.Vec4, or float64, per the node kinds in this package. It is
// deliberately untyped (interface{}) rather than a closed sum type; Go has
// no sum types, and a type switch at each Link's resolution point is the
// idiomatic substitute.
type Output interface{}

// Link is either a constant of type T or a reference to another node's
// output socket, resolved lazily by the owning Graph's EvalContext.
type Link[T any] struct {
	isConst bool
	value   T
	node    int
	socket  int
}

// ConstLink returns a Link carrying a fixed value, never touching the graph.
func ConstLink[T any](v T) Link[T] {
	return Link[T]{isConst: true, value: v}
}

// NodeLink returns a Link that resolves to socket `socket` of node `node`.
func NodeLink[T any](node, socket int) Link[T] {
	return Link[T]{node: node, socket: socket}
}

// Node is one vertex of a material graph. Evaluate runs the node's logic
// against the supplied context (resolving its own input links first) and
// returns its output sockets in order.
type Node interface {
	Evaluate(ctx *EvalContext) ([]Output, error)
}

// Graph is a directed acyclic graph of material Nodes plus the index of the
// node designated as the surface output.
type Graph struct {
	Nodes      []Node
	OutputNode int
}

// NewContext creates a fresh, empty-memo evaluation context for a single
// shading invocation at texture coordinate (u, v).
func (g *Graph) NewContext(u, v float64, images []ImageSource) *EvalContext {
	return &EvalContext{
		graph:  g,
		U:      u,
		V:      v,
		images: images,
		memo:   make([][]Output, len(g.Nodes)),
		filled: make([]bool, len(g.Nodes)),
	}
}

// Surface evaluates the graph's designated OutputMaterial node and returns
// its resulting Bsdf.
func (g *Graph) Surface(u, v float64, images []ImageSource) (Bsdf, error) {
	ctx := g.NewContext(u, v, images)
	out, err := ctx.eval(g.OutputNode)
	if err != nil {
		return Bsdf{}, err
	}
	return ResolveOutput[Bsdf](g.OutputNode, 0, out[0])
}

// EvalContext is the per-invocation, per-graph evaluation state: the
// texture coordinate of the shading point, the image list used by TexImage
// nodes, and a memo table so each node evaluates at most once per
// invocation regardless of how many consumers reference it.
type EvalContext struct {
	graph  *Graph
	U, V   float64
	images []ImageSource
	memo   [][]Output
	filled []bool
}

// Images returns the scene's image list, for TexImage node evaluation.
func (ctx *EvalContext) Images() []ImageSource { return ctx.images }

func (ctx *EvalContext) eval(node int) ([]Output, error) {
	if ctx.filled[node] {
		return ctx.memo[node], nil
	}
	out, err := ctx.graph.Nodes[node].Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	ctx.memo[node] = out
	ctx.filled[node] = true
	return out, nil
}

// ResolveLink resolves link to its value, evaluating (and memoising) the
// producer node on first reference.
func ResolveLink[T any](ctx *EvalContext, link Link[T]) (T, error) {
	if link.isConst {
		return link.value, nil
	}
	out, err := ctx.eval(link.node)
	if err != nil {
		var zero T
		return zero, err
	}
	if link.socket >= len(out) {
		var zero T
		return zero, &TypeError{Node: link.node, Socket: link.socket, Want: fmt.Sprintf("%T", zero), Got: "out of range"}
	}
	return ResolveOutput[T](link.node, link.socket, out[link.socket])
}

// ResolveOutput type-asserts a raw Output to T, producing a TypeError on
// mismatch rather than panicking (per spec.md §7, MaterialTypeError is a
// reported error, not a design-time panic).
func ResolveOutput[T any](node, socket int, out Output) (T, error) {
	v, ok := out.(T)
	if !ok {
		var zero T
		return zero, &TypeError{Node: node, Socket: socket, Want: fmt.Sprintf("%T", zero), Got: fmt.Sprintf("%T", out)}
	}
	return v, nil
}
