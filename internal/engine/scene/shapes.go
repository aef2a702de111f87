package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/waterflow/pkg/math"
)

// Box returns an axis-aligned box centred on the origin with outward
// normals and counter-clockwise front faces.
func Box(size math.Vec3) MeshData {
	h := size.Scale(0.5)
	faces := []struct{ normal, u, v math.Vec3 }{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
	}

	var m MeshData
	for _, f := range faces {
		base := uint32(m.VertexCount())
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := f.normal.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1]))
			pos := math.Vec3{X: p.X * h.X, Y: p.Y * h.Y, Z: p.Z * h.Z}
			m.AddVertex(pos, f.normal, math.Vec2{X: (c[0] + 1) / 2, Y: (c[1] + 1) / 2})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Cylinder returns a capped cylinder standing on the origin along +Y.
func Cylinder(radius, height float32, segments int) MeshData {
	if segments < 3 {
		segments = 3
	}

	var m MeshData
	// Side wall: one ring at the bottom and one at the top.
	for i := 0; i <= segments; i++ {
		t := float32(i) / float32(segments)
		s, c := math32.Sincos(t * 2 * math32.Pi)
		n := math.Vec3{X: s, Z: c}
		m.AddVertex(math.Vec3{X: s * radius, Z: c * radius}, n, math.Vec2{X: t, Y: 0})
		m.AddVertex(math.Vec3{X: s * radius, Y: height, Z: c * radius}, n, math.Vec2{X: t, Y: 1})
	}
	for i := 0; i < segments; i++ {
		b0, t0 := uint32(2*i), uint32(2*i+1)
		b1, t1 := b0+2, t0+2
		m.Indices = append(m.Indices, b0, b1, t0, t0, b1, t1)
	}

	addCap := func(y float32, normal math.Vec3, up bool) {
		center := m.AddVertex(math.Vec3{Y: y}, normal, math.Vec2{X: 0.5, Y: 0.5})
		first := uint32(m.VertexCount())
		for i := 0; i < segments; i++ {
			s, c := math32.Sincos(float32(i) / float32(segments) * 2 * math32.Pi)
			m.AddVertex(math.Vec3{X: s * radius, Y: y, Z: c * radius}, normal, math.Vec2{X: 0.5 + s*0.5, Y: 0.5 + c*0.5})
		}
		for i := 0; i < segments; i++ {
			a := first + uint32(i)
			b := first + uint32((i+1)%segments)
			if up {
				m.Indices = append(m.Indices, center, a, b)
			} else {
				m.Indices = append(m.Indices, center, b, a)
			}
		}
	}
	addCap(height, math.Vec3{Y: 1}, true)
	addCap(0, math.Vec3{Y: -1}, false)
	return m
}

// Sphere returns a UV sphere centred on the origin. With inward set the
// normals and winding face the centre, for a sky dome seen from inside.
func Sphere(radius float32, rings, segments int, inward bool) MeshData {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	var m MeshData
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		sinP, cosP := math32.Sincos(v * math32.Pi)
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			sinT, cosT := math32.Sincos(u * 2 * math32.Pi)
			n := math.Vec3{X: sinP * sinT, Y: cosP, Z: sinP * cosT}
			normal := n
			if inward {
				normal = n.Scale(-1)
			}
			m.AddVertex(n.Scale(radius), normal, math.Vec2{X: u, Y: v})
		}
	}

	cols := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*cols + uint32(s)
			b := a + cols
			if inward {
				m.Indices = append(m.Indices, a, a+1, b, b, a+1, b+1)
			} else {
				m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
			}
		}
	}
	return m
}

// HeightFunc returns the terrain height at (x, z).
type HeightFunc func(x, z float32) float32

// Terrain returns a size x size heightfield centred on the origin with
// divisions cells per side. Normals come from the triangle faces.
func Terrain(size float32, divisions int, height HeightFunc) MeshData {
	if divisions < 1 {
		divisions = 1
	}

	var m MeshData
	step := size / float32(divisions)
	half := size / 2
	for i := 0; i <= divisions; i++ {
		z := -half + float32(i)*step
		for j := 0; j <= divisions; j++ {
			x := -half + float32(j)*step
			uv := math.Vec2{X: float32(j) / float32(divisions) * 4, Y: float32(i) / float32(divisions) * 4}
			m.AddVertex(math.Vec3{X: x, Y: height(x, z), Z: z}, math.Vec3{Y: 1}, uv)
		}
	}

	cols := uint32(divisions + 1)
	for i := 0; i < divisions; i++ {
		for j := 0; j < divisions; j++ {
			a := uint32(i)*cols + uint32(j)
			b := a + cols
			// Rows run towards +Z, so (a, b, a+1) faces up.
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	m.ComputeNormals()
	return m
}

// PondHeight is a basin: low in the middle, rising to banks at radius.
func PondHeight(radius, depth, bank float32) HeightFunc {
	return func(x, z float32) float32 {
		d := math32.Hypot(x, z) / radius
		t := math32.Min(d, 1.5) / 1.5
		// Smooth rise from -depth at the centre to +bank past the rim.
		s := t * t * (3 - 2*t)
		ripple := 0.3 * math32.Sin(x*0.35) * math32.Cos(z*0.3)
		return -depth + (depth+bank)*s + ripple
	}
}
