package water

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/waterflow/pkg/math"
)

func testCamera(eye math.Vec3) Camera {
	view := math.LookAt(eye, math.Vec3{X: 0, Y: 2.5, Z: 0}, math.Vec3{X: 0, Y: 1, Z: 0})
	proj := math.Perspective(float32(gomath.Pi/4), 16.0/9.0, 1, 1000)
	return Camera{ViewProj: proj.Mul(view), Eye: eye}
}

func TestWaterClipPlanesWorld(t *testing.T) {
	world := math.Translate(0, 2.5, 0)
	planes := WaterClipPlanes(world, testCamera(math.Vec3{X: 10, Y: 20, Z: 30}).ViewProj, 0)

	if planes.Local != (math.Vec4{0, -1, 0, 0}) {
		t.Errorf("local plane = %v", planes.Local)
	}
	want := math.Vec4{0, -1, 0, 2.5}
	for k := range want {
		if gomath.Abs(float64(planes.World[k]-want[k])) > 1e-5 {
			t.Fatalf("world plane = %v, want %v", planes.World, want)
		}
	}
}

func TestWaterClipPlanesHomogeneousVanishesOnWater(t *testing.T) {
	world := math.Translate(3, 2.5, -7).Mul(math.RotateY(0.6)).Mul(math.Scale(4, 1, 4))
	cam := testCamera(math.Vec3{X: 40, Y: 25, Z: 60})
	planes := WaterClipPlanes(world, cam.ViewProj, 0)

	// Points on the water plane in world space.
	points := []math.Vec3{
		world.TransformPoint(math.Vec3{}),
		world.TransformPoint(math.Vec3{X: 5, Z: -3}),
		world.TransformPoint(math.Vec3{X: -12, Z: 8}),
	}
	for _, p := range points {
		if d := math.PlaneDistance(planes.World, p); gomath.Abs(float64(d)) > 1e-3 {
			t.Errorf("world plane at %v = %f, want 0", p, d)
		}
		clip := cam.ViewProj.MulVec4(p.Vec4(1))
		d := planes.Homogeneous.Dot(clip)
		if rel := gomath.Abs(float64(d)) / gomath.Abs(float64(clip[3])); rel > 1e-3 {
			t.Errorf("homogeneous plane at %v = %f (w=%f), want 0", p, d, clip[3])
		}
	}
}

func TestWaterClipPlanesKeepBelowWater(t *testing.T) {
	world := math.Translate(0, 2.5, 0)
	cam := testCamera(math.Vec3{X: 0, Y: 30, Z: 50})
	planes := WaterClipPlanes(world, cam.ViewProj, 0)

	below := cam.ViewProj.MulVec4(math.Vec4{0, 1, 0, 1})
	above := cam.ViewProj.MulVec4(math.Vec4{0, 4, 0, 1})

	if planes.Homogeneous.Dot(below) <= 0 {
		t.Error("point below the water should be kept (positive clip distance)")
	}
	if planes.Homogeneous.Dot(above) >= 0 {
		t.Error("point above the water should be clipped (negative clip distance)")
	}
}

func TestRefractionBiasRaisesPlane(t *testing.T) {
	world := math.Translate(0, 2.5, 0)
	planes := WaterClipPlanes(world, math.Identity(), RefractionClipBias)

	// Surface of the biased plane sits at 2.5 + 1.5.
	if d := math.PlaneDistance(planes.World, math.Vec3{Y: 4}); gomath.Abs(float64(d)) > 1e-5 {
		t.Errorf("biased plane at y=4: %f, want 0", d)
	}
	if d := math.PlaneDistance(planes.World, math.Vec3{Y: 3}); d <= 0 {
		t.Errorf("just above the water (y=3) should still be kept, got %f", d)
	}
}
