package scene

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/waterflow/pkg/math"
)

// ErrNoGeometry is returned when a glTF file has no drawable triangles.
var ErrNoGeometry = errors.New("gltf: no triangle geometry")

// LoadGLTF reads a .gltf or .glb file and flattens every triangle
// primitive of the default scene into one mesh in model space.
func LoadGLTF(path string) (MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return MeshData{}, fmt.Errorf("gltf open %q: %w", path, err)
	}
	m, err := FlattenGLTF(doc)
	if err != nil {
		return MeshData{}, fmt.Errorf("gltf %q: %w", path, err)
	}
	return m, nil
}

// FlattenGLTF bakes the node hierarchy of doc into a single mesh.
func FlattenGLTF(doc *gltf.Document) (MeshData, error) {
	var out MeshData
	for _, root := range rootNodes(doc) {
		if err := flattenNode(doc, root, math.Identity(), &out, 0); err != nil {
			return MeshData{}, err
		}
	}
	if len(out.Indices) == 0 {
		return MeshData{}, ErrNoGeometry
	}
	return out, nil
}

func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	// No default scene: every parentless node is a root.
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// maxNodeDepth guards against cyclic hierarchies in malformed files.
const maxNodeDepth = 64

func flattenNode(doc *gltf.Document, idx int, parent math.Mat4, out *MeshData, depth int) error {
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d: hierarchy deeper than %d", idx, maxNodeDepth)
	}
	node := doc.Nodes[idx]
	world := parent.Mul(nodeMatrix(node))

	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
		for pi, prim := range doc.Meshes[*node.Mesh].Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			m, err := readPrimitive(doc, prim)
			if err != nil {
				return fmt.Errorf("mesh %d prim %d: %w", *node.Mesh, pi, err)
			}
			out.Append(m, world)
		}
	}
	for _, c := range node.Children {
		if err := flattenNode(doc, c, world, out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func nodeMatrix(n *gltf.Node) math.Mat4 {
	if mat := n.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m math.Mat4
		for i, v := range mat {
			m[i] = float32(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.Translate(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul(math.FromQuat(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))).
		Mul(math.Scale(float32(s[0]), float32(s[1]), float32(s[2])))
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return MeshData{}, errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return MeshData{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return MeshData{}, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return MeshData{}, fmt.Errorf("texcoords: %w", err)
		}
	}

	var m MeshData
	for i, p := range positions {
		var n math.Vec3
		if i < len(normals) {
			n = math.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		}
		var uv math.Vec2
		if i < len(uvs) {
			uv = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		m.AddVertex(math.Vec3{X: p[0], Y: p[1], Z: p[2]}, n, uv)
	}

	if prim.Indices != nil {
		m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return MeshData{}, fmt.Errorf("indices: %w", err)
		}
		for _, idx := range m.Indices {
			if int(idx) >= len(positions) {
				return MeshData{}, fmt.Errorf("index %d out of %d vertices", idx, len(positions))
			}
		}
	} else {
		m.Indices = make([]uint32, len(positions)-len(positions)%3)
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}

	if len(normals) < len(positions) {
		m.ComputeNormals()
	}
	return m, nil
}
