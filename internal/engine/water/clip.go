package water

import "github.com/Faultbox/waterflow/pkg/math"

// RefractionClipBias lifts the refraction clip plane above the water so the
// seam between an object and its refraction is covered.
const RefractionClipBias = 1.5

// ClipSlot is the clip-plane slot used by the capture passes.
const ClipSlot = 0

// ClipPlanes is the water plane expressed in the three spaces a capture pass
// needs. Every plane keeps the side of the water below the surface.
type ClipPlanes struct {
	Local       math.Vec4
	World       math.Vec4
	Homogeneous math.Vec4
}

// localWaterPlane is the plane y = bias in the water's local space, facing -Y.
func localWaterPlane(bias float32) math.Vec4 {
	return math.Vec4{0, -1, 0, bias}
}

// WaterClipPlanes derives the water plane for a given world transform and
// camera view-projection. bias raises the plane along local +Y.
func WaterClipPlanes(world, viewProj math.Mat4, bias float32) ClipPlanes {
	local := localWaterPlane(bias)
	return ClipPlanes{
		Local:       local,
		World:       math.TransformPlane(local, world),
		Homogeneous: math.TransformPlane(local, viewProj.Mul(world)),
	}
}
