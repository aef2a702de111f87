package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/waterflow/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/waterflow/pkg/math"
)

func TestAppendTransforms(t *testing.T) {
	var src MeshData
	src.AddVertex(math.Vec3{X: 1}, math.Vec3{X: 1}, math.Vec2{X: 0.25, Y: 0.5})
	src.AddVertex(math.Vec3{Y: 1}, math.Vec3{Y: 1}, math.Vec2{})
	src.AddVertex(math.Vec3{Z: 1}, math.Vec3{Z: 1}, math.Vec2{})
	src.Indices = []uint32{0, 1, 2}

	var dst MeshData
	dst.Append(src, math.Identity())
	dst.Append(src, math.Translate(0, 10, 0).Mul(math.Scale(4, 1, 1)))

	if dst.VertexCount() != 6 {
		t.Fatalf("VertexCount() = %d, want 6", dst.VertexCount())
	}
	want := []uint32{0, 1, 2, 3, 4, 5}
	for i, idx := range dst.Indices {
		if idx != want[i] {
			t.Fatalf("Indices = %v, want %v", dst.Indices, want)
		}
	}
	if p := dst.Position(3); p != (math.Vec3{X: 4, Y: 10}) {
		t.Errorf("Position(3) = %v", p)
	}
	// Normals stay unit length under non-uniform scale.
	if n := dst.Normal(3); math32.Abs(n.Length()-1) > 1e-5 {
		t.Errorf("Normal(3) = %v, not unit", n)
	}
	if u := dst.Vertices[3*stride+6]; u != 0.25 {
		t.Errorf("uv.x = %v, want 0.25", u)
	}
}

func TestEmptyBounds(t *testing.T) {
	var m MeshData
	min, max := m.Bounds()
	if min != (math.Vec3{}) || max != (math.Vec3{}) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}
}

func TestUpload(t *testing.T) {
	dev := gfxtest.NewRecorder()
	m := Box(math.Vec3{X: 1, Y: 1, Z: 1})
	mesh, err := m.Upload(dev)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if mesh.IndexCount() != 36 {
		t.Errorf("IndexCount() = %d, want 36", mesh.IndexCount())
	}
	if got := dev.Meshes[0].Layout.Stride(); got != stride {
		t.Errorf("layout stride = %d, want %d", got, stride)
	}
}
