package scene

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/waterflow/pkg/math"
)

// triangleDoc builds a document with one triangle mesh referenced by a
// translated parent node and a scaled child.
func triangleDoc(withNormals bool) *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}})
	attrs := map[string]int{gltf.POSITION: pos}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}})
	}
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name:       "tri",
		Primitives: []*gltf.Primitive{{Indices: gltf.Index(idx), Attributes: attrs}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "parent", Mesh: gltf.Index(0), Translation: [3]float64{0, 2, 0}, Children: []int{1}},
		{Name: "child", Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestLoadGLTF(t *testing.T) {
	for _, withNormals := range []bool{true, false} {
		path := filepath.Join(t.TempDir(), "tri.glb")
		if err := gltf.SaveBinary(triangleDoc(withNormals), path); err != nil {
			t.Fatalf("SaveBinary() error = %v", err)
		}

		m, err := LoadGLTF(path)
		if err != nil {
			t.Fatalf("LoadGLTF() error = %v", err)
		}
		if m.VertexCount() != 6 || len(m.Indices) != 6 {
			t.Fatalf("got %d vertices, %d indices, want 6 and 6", m.VertexCount(), len(m.Indices))
		}
		// The child inherits the parent's translation.
		if p := m.Position(4); p != (math.Vec3{X: 2, Y: 2}) {
			t.Errorf("child vertex = %v, want (2,2,0)", p)
		}
		for i := 0; i < m.VertexCount(); i++ {
			if n := m.Normal(i); math32.Abs(n.Y-1) > 1e-5 {
				t.Errorf("normals=%t: vertex %d normal = %v, want up", withNormals, i, n)
			}
		}
		min, max := m.Bounds()
		if min != (math.Vec3{Y: 2, Z: -2}) || max != (math.Vec3{X: 2, Y: 2}) {
			t.Errorf("Bounds() = %v, %v", min, max)
		}
	}
}

func TestLoadGLTFErrors(t *testing.T) {
	if _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("LoadGLTF(missing) error = nil")
	}

	empty := gltf.NewDocument()
	if _, err := FlattenGLTF(empty); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("FlattenGLTF(empty) error = %v, want ErrNoGeometry", err)
	}

	bad := triangleDoc(true)
	bad.Nodes[0].Children = []int{7}
	if _, err := FlattenGLTF(bad); err == nil {
		t.Error("FlattenGLTF(bad child) error = nil")
	}
}

func TestNodeMatrixPrefersExplicitMatrix(t *testing.T) {
	n := &gltf.Node{
		Matrix:      [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 5, 6, 7, 1},
		Translation: [3]float64{100, 100, 100},
	}
	if p := nodeMatrix(n).Translation(); p != (math.Vec3{X: 5, Y: 6, Z: 7}) {
		t.Errorf("translation = %v, want (5,6,7)", p)
	}
}
