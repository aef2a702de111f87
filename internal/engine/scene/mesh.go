package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

// Layout is the vertex layout of every scene mesh: position, normal and
// texture coordinate at locations 0, 1 and 2.
var Layout = gfx.VertexLayout{
	{Location: 0, Components: 3},
	{Location: 1, Components: 3},
	{Location: 2, Components: 2},
}

const stride = 8

// MeshData is CPU-side geometry interleaved as Layout.
type MeshData struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *MeshData) VertexCount() int {
	return len(m.Vertices) / stride
}

// AddVertex appends one vertex and returns its index.
func (m *MeshData) AddVertex(pos, normal math.Vec3, uv math.Vec2) uint32 {
	idx := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices,
		pos.X, pos.Y, pos.Z,
		normal.X, normal.Y, normal.Z,
		uv.X, uv.Y,
	)
	return idx
}

// Position returns vertex i's position.
func (m *MeshData) Position(i int) math.Vec3 {
	v := m.Vertices[i*stride:]
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Normal returns vertex i's normal.
func (m *MeshData) Normal(i int) math.Vec3 {
	v := m.Vertices[i*stride+3:]
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Append merges other into m with its positions and normals transformed.
func (m *MeshData) Append(other MeshData, transform math.Mat4) {
	// Normals use the inverse transpose so non-uniform scale keeps them
	// perpendicular.
	normalMat := transform.Inverse().Transpose()
	base := uint32(m.VertexCount())

	for i := 0; i < other.VertexCount(); i++ {
		v := other.Vertices[i*stride:]
		m.AddVertex(
			transform.TransformPoint(other.Position(i)),
			normalMat.TransformDirection(other.Normal(i)).Normalize(),
			math.Vec2{X: v[6], Y: v[7]},
		)
	}
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m *MeshData) Bounds() (min, max math.Vec3) {
	if m.VertexCount() == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min = m.Position(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(i)
		min = math.Vec3{X: math32.Min(min.X, p.X), Y: math32.Min(min.Y, p.Y), Z: math32.Min(min.Z, p.Z)}
		max = math.Vec3{X: math32.Max(max.X, p.X), Y: math32.Max(max.Y, p.Y), Z: math32.Max(max.Z, p.Z)}
	}
	return min, max
}

// ComputeNormals replaces the normals with area-weighted face normals
// averaged per vertex.
func (m *MeshData) ComputeNormals() {
	n := m.VertexCount()
	acc := make([]math.Vec3, n)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.Position(int(a)), m.Position(int(b)), m.Position(int(c))
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(face)
		acc[b] = acc[b].Add(face)
		acc[c] = acc[c].Add(face)
	}
	for i := 0; i < n; i++ {
		nv := acc[i].Normalize().Array()
		copy(m.Vertices[i*stride+3:i*stride+6], nv[:])
	}
}

// Upload creates a GPU mesh from the data.
func (m *MeshData) Upload(dev gfx.ResourceDevice) (gfx.Mesh, error) {
	return dev.CreateMesh(Layout, m.Vertices, m.Indices)
}
