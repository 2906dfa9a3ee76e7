// nodes.go - the concrete material graph node kinds

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package scene

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/photonray/vecmath"
)

// OutputMaterialNode is the graph's single designated surface output.
type OutputMaterialNode struct {
	Surface Link[Bsdf]
}

func (n *OutputMaterialNode) Evaluate(ctx *EvalContext) ([]Output, error) {
	b, err := ResolveLink(ctx, n.Surface)
	if err != nil {
		return nil, err
	}
	return []Output{b}, nil
}

// BsdfPrincipledNode is the principled diffuse/specular/metallic shading
// model. Specular is stored in 1/0.08ths at construction (the link value is
// whatever the importer supplied) and scaled to the working convention on
// evaluation.
type BsdfPrincipledNode struct {
	BaseColor Link[vecmath.Vec4]
	Specular  Link[float64]
	Metallic  Link[float64]
}

func (n *BsdfPrincipledNode) Evaluate(ctx *EvalContext) ([]Output, error) {
	color, err := ResolveLink(ctx, n.BaseColor)
	if err != nil {
		return nil, err
	}
	specular, err := ResolveLink(ctx, n.Specular)
	if err != nil {
		return nil, err
	}
	metallic, err := ResolveLink(ctx, n.Metallic)
	if err != nil {
		return nil, err
	}
	return []Output{Bsdf{Color: color, Specular: specular * 0.08, Metallic: metallic}}, nil
}

// TexImageNode samples one of the scene's images. Output socket 0 is the
// bilinearly-interpolated linear color; socket 1 is its alpha channel.
type TexImageNode struct {
	ImageIndex int
}

func (n *TexImageNode) Evaluate(ctx *EvalContext) ([]Output, error) {
	images := ctx.Images()
	if n.ImageIndex < 0 || n.ImageIndex >= len(images) {
		return nil, &MalformedError{Op: "tex_image", Detail: fmt.Sprintf("image index %d out of range (%d images)", n.ImageIndex, len(images))}
	}
	c := sampleBilinear(images[n.ImageIndex], ctx.U, ctx.V)
	return []Output{c, c.W}, nil
}

// sampleBilinear implements spec.md §4.3's pixel-centre bilinear sampling:
// pixel centres sit at integer+0.5, so floor(x-0.5) locates the lower-left
// of the four enclosing pixels; indices wrap with Euclidean modulo.
func sampleBilinear(img ImageSource, u, v float64) vecmath.Vec4 {
	w, h := img.Size()
	x := u*float64(w) - 0.5
	y := v*float64(h) - 0.5
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	g := func(ix, iy int) vecmath.Vec4 { return img.Get(emod(ix, w), emod(iy, h)) }

	c00 := g(x0, y0)
	c10 := g(x0+1, y0)
	c01 := g(x0, y0+1)
	c11 := g(x0+1, y0+1)

	top := c00.Scale(1 - fx).Add(c10.Scale(fx))
	bottom := c01.Scale(1 - fx).Add(c11.Scale(fx))
	return top.Scale(1 - fy).Add(bottom.Scale(fy))
}

// emod is Euclidean modulo: the result is always in [0, m).
func emod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// ScriptNode is the supplemental Lua-backed scalar node (SPEC_FULL.md §3):
// it evaluates a short Lua expression against its resolved input links,
// bound as globals in0, in1, ... and returns the single number left on the
// Lua stack. It produces only a float64 output and must never be a graph's
// designated OutputMaterial node.
type ScriptNode struct {
	Source string
	Inputs []Link[float64]
}

func (n *ScriptNode) Evaluate(ctx *EvalContext) ([]Output, error) {
	vals := make([]float64, len(n.Inputs))
	for i, link := range n.Inputs {
		v, err := ResolveLink(ctx, link)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for i, v := range vals {
		L.SetGlobal(fmt.Sprintf("in%d", i), lua.LNumber(v))
	}
	if err := L.DoString(n.Source); err != nil {
		return nil, &MalformedError{Op: "script_node", Detail: "lua evaluation failed", Err: err}
	}
	top := L.Get(-1)
	num, ok := top.(lua.LNumber)
	if !ok {
		return nil, &TypeError{Node: -1, Socket: 0, Want: "lua number", Got: top.Type().String()}
	}
	return []Output{float64(num)}, nil
}
