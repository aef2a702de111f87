package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/waterflow/pkg/math"
)

// checkOutward fails when a triangle's winding disagrees with its stored
// normals, i.e. a CCW front face would point the other way.
func checkOutward(t *testing.T, name string, m MeshData) {
	t.Helper()
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		face := m.Position(b).Sub(m.Position(a)).Cross(m.Position(c).Sub(m.Position(a)))
		if face.Length() < 1e-6 {
			continue // degenerate pole triangle
		}
		avg := m.Normal(a).Add(m.Normal(b)).Add(m.Normal(c))
		if face.Dot(avg) <= 0 {
			t.Fatalf("%s: triangle %d winds against its normals", name, i/3)
		}
	}
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name     string
		mesh     MeshData
		vertices int
		indices  int
	}{
		{"box", Box(math.Vec3{X: 2, Y: 4, Z: 6}), 24, 36},
		{"cylinder", Cylinder(1, 3, 8), 2*9 + 2*9, 8*6 + 2*8*3},
		{"sphere", Sphere(2, 4, 6, false), 5 * 7, 4 * 6 * 6},
		{"terrain", Terrain(10, 4, func(x, z float32) float32 { return 0 }), 25, 16 * 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.vertices)
			}
			if got := len(tt.mesh.Indices); got != tt.indices {
				t.Errorf("len(Indices) = %d, want %d", got, tt.indices)
			}
			checkOutward(t, tt.name, tt.mesh)
		})
	}
}

func TestBoxBounds(t *testing.T) {
	m := Box(math.Vec3{X: 2, Y: 4, Z: 6})
	min, max := m.Bounds()
	if min != (math.Vec3{X: -1, Y: -2, Z: -3}) || max != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}
}

func TestInwardSphere(t *testing.T) {
	m := Sphere(5, 6, 8, true)
	for i := 0; i < m.VertexCount(); i++ {
		p, n := m.Position(i), m.Normal(i)
		if p.Dot(n) > 0 {
			t.Fatalf("vertex %d normal %v points away from centre", i, n)
		}
	}
	checkOutward(t, "inward sphere", m)
}

func TestPondHeight(t *testing.T) {
	h := PondHeight(20, 4, 3)
	centre := h(0, 0)
	rim := h(40, 0)
	if centre > -3 {
		t.Errorf("centre height = %v, want below -3", centre)
	}
	if rim < 2 {
		t.Errorf("bank height = %v, want above 2", rim)
	}
}

func TestTerrainNormalsFlatGround(t *testing.T) {
	m := Terrain(8, 2, func(x, z float32) float32 { return 1 })
	for i := 0; i < m.VertexCount(); i++ {
		n := m.Normal(i)
		if math32.Abs(n.Y-1) > 1e-5 {
			t.Fatalf("vertex %d normal = %v, want up", i, n)
		}
		if m.Position(i).Y != 1 {
			t.Fatalf("vertex %d height = %v", i, m.Position(i).Y)
		}
	}
}
