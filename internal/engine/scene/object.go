package scene

import (
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

// Renderable is anything the scene draws with the shared scene effect.
type Renderable interface {
	// WorldMatrix returns the object-to-world transform for a viewer at eye.
	WorldMatrix(eye math.Vec3) math.Mat4
	Mesh() gfx.Mesh
	Material() Material
}

// Material holds the per-object shading inputs.
type Material struct {
	Color math.Vec4
	// Unlit objects skip the directional lights (sky dome).
	Unlit bool
	// DoubleSided objects are drawn with culling disabled.
	DoubleSided bool
}

// Transform places an object: scale, then yaw about Y, then translation.
type Transform struct {
	Position math.Vec3
	Scale    math.Vec3
	Yaw      float32 // radians
}

// Matrix returns the transform as a matrix.
func (t Transform) Matrix() math.Mat4 {
	s := t.Scale
	if s == (math.Vec3{}) {
		s = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(math.RotateY(t.Yaw)).
		Mul(math.Scale(s.X, s.Y, s.Z))
}

// Object is a mesh placed in the world.
type Object struct {
	Name      string
	Transform Transform
	Mat       Material
	// FollowEye keeps the object centred on the viewer, as a sky dome.
	FollowEye bool

	mesh gfx.Mesh
}

// NewObject wraps an uploaded mesh.
func NewObject(name string, mesh gfx.Mesh, t Transform, mat Material) *Object {
	return &Object{Name: name, Transform: t, Mat: mat, mesh: mesh}
}

func (o *Object) WorldMatrix(eye math.Vec3) math.Mat4 {
	if !o.FollowEye {
		return o.Transform.Matrix()
	}
	t := o.Transform
	t.Position = t.Position.Add(eye)
	return t.Matrix()
}

func (o *Object) Mesh() gfx.Mesh { return o.mesh }

func (o *Object) Material() Material { return o.Mat }
