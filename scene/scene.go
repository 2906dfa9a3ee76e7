// scene.go - the immutable scene aggregate and its import-time validation

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package scene holds the data model a render operates on: the camera,
// triangles, point lights and material graphs that make up a Scene, plus
// the import-time validation (NewScene) that rejects a malformed or
// mistyped graph before any worker touches it.
package scene

import "fmt"

// Material is an (output node index, graph) pair: the graph plus which of
// its nodes is the designated surface output.
type Material struct {
	Graph *Graph
}

// Evaluate shades the material's surface at texture coordinate (u, v).
func (m *Material) Evaluate(u, v float64, images []ImageSource) (Bsdf, error) {
	return m.Graph.Surface(u, v, images)
}

// Scene is the immutable, validated scene aggregate consumed by the BVH
// builder and the shading integrator. Construct one with NewScene; it is
// read-only for the lifetime of a render.
type Scene struct {
	Camera    Camera
	Triangles []*Triangle
	Lights    []*PointLight
	Materials []*Material
	Images    []ImageSource
}

// NewScene validates and assembles a Scene. It returns a *MalformedError if
// the camera basis is not orthonormal, any material graph is missing its
// OutputMaterial node, is cyclic, or designates a non-OutputMaterial node
// as its output.
func NewScene(camera Camera, triangles []*Triangle, lights []*PointLight, materials []*Material, images []ImageSource) (*Scene, error) {
	if err := camera.validate(); err != nil {
		return nil, err
	}
	for i, m := range materials {
		if err := validateGraph(m.Graph); err != nil {
			return nil, &MalformedError{Op: "material", Detail: fmt.Sprintf("material %d", i), Err: err}
		}
	}
	for i, t := range triangles {
		if t.MaterialIndex < 0 || t.MaterialIndex >= len(materials) {
			return nil, &MalformedError{Op: "triangle", Detail: fmt.Sprintf("triangle %d references out-of-range material %d", i, t.MaterialIndex)}
		}
	}
	return &Scene{
		Camera:    camera,
		Triangles: triangles,
		Lights:    lights,
		Materials: materials,
		Images:    images,
	}, nil
}

// validateGraph checks that the designated output node exists, is an
// OutputMaterialNode, and that the graph (reached from that node through
// its links) contains no cycles.
func validateGraph(g *Graph) error {
	if g.OutputNode < 0 || g.OutputNode >= len(g.Nodes) {
		return &MalformedError{Op: "graph", Detail: "output node index out of range"}
	}
	if _, ok := g.Nodes[g.OutputNode].(*OutputMaterialNode); !ok {
		return &TypeError{Node: g.OutputNode, Socket: 0, Want: "*scene.OutputMaterialNode", Got: fmt.Sprintf("%T", g.Nodes[g.OutputNode])}
	}
	visiting := make([]uint8, len(g.Nodes)) // 0=unvisited, 1=in-progress, 2=done
	var walk func(i int) error
	walk = func(i int) error {
		switch visiting[i] {
		case 1:
			return &MalformedError{Op: "graph", Detail: fmt.Sprintf("cycle through node %d", i)}
		case 2:
			return nil
		}
		visiting[i] = 1
		for _, dep := range nodeDeps(g.Nodes[i]) {
			if dep < 0 || dep >= len(g.Nodes) {
				return &MalformedError{Op: "graph", Detail: fmt.Sprintf("node %d references out-of-range node %d", i, dep)}
			}
			if err := walk(dep); err != nil {
				return err
			}
		}
		visiting[i] = 2
		return nil
	}
	return walk(g.OutputNode)
}

// nodeDeps returns the node indices referenced by a node's non-constant
// input links, for cycle detection.
func nodeDeps(n Node) []int {
	switch t := n.(type) {
	case *OutputMaterialNode:
		return linkDep(t.Surface)
	case *BsdfPrincipledNode:
		deps := linkDep(t.BaseColor)
		deps = append(deps, linkDep(t.Specular)...)
		deps = append(deps, linkDep(t.Metallic)...)
		return deps
	case *TexImageNode:
		return nil
	case *ScriptNode:
		var deps []int
		for _, in := range t.Inputs {
			deps = append(deps, linkDep(in)...)
		}
		return deps
	default:
		return nil
	}
}

func linkDep[T any](l Link[T]) []int {
	if l.isConst {
		return nil
	}
	return []int{l.node}
}
