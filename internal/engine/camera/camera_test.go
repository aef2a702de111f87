package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/waterflow/pkg/math"
)

func near(a, b math.Vec3) bool {
	return a.Distance(b) < 1e-3
}

func TestOrbitPosition(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float32
		want       math.Vec3
	}{
		{"front", 0, 0, math.Vec3{X: 0, Y: 0, Z: 10}},
		{"right", 0, math32.Pi / 2, math.Vec3{X: 10, Y: 0, Z: 0}},
		{"above", math32.Pi / 2, 0, math.Vec3{X: 0, Y: 10, Z: 0}},
		{"below", -math32.Pi / 2, 0, math.Vec3{X: 0, Y: -10, Z: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
			c.Distance = 10
			c.RotationX, c.RotationY = tt.pitch, tt.yaw

			want := tt.want.Add(c.Center)
			if got := c.Position(); !near(got, want) {
				t.Errorf("Position() = %v, want %v", got, want)
			}
		})
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 0, Y: 2.5, Z: 0}

	// The center sits on the view axis, in front of the eye.
	p := c.ViewMatrix().TransformPoint(c.Center)
	if math32.Abs(p.X) > 1e-3 || math32.Abs(p.Y) > 1e-3 || p.Z >= 0 {
		t.Errorf("center in view space = %v", p)
	}
	if math32.Abs(-p.Z-c.Distance) > 1e-2 {
		t.Errorf("center depth = %f, want %f", -p.Z, c.Distance)
	}
}

func TestViewProjCentersTarget(t *testing.T) {
	c := NewOrbitCamera()
	clip := c.ViewProj(16.0 / 9.0).MulVec4(c.Center.Vec4(1))
	if clip[3] <= 0 {
		t.Fatalf("center behind the camera: %v", clip)
	}
	if math32.Abs(clip[0]/clip[3]) > 1e-3 || math32.Abs(clip[1]/clip[3]) > 1e-3 {
		t.Errorf("center not at screen middle: %v", clip)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %f, want max %f", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %f, want min %f", c.RotationX, c.MinPitch)
	}

	yaw := c.RotationY
	c.HandleDrag(100, 0)
	if got := yaw - c.RotationY; math32.Abs(got-100*c.DragSensitivity) > 1e-6 {
		t.Errorf("yaw changed by %f", got)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %f, want min %f", c.Distance, c.MinDistance)
	}
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %f, want max %f", c.Distance, c.MaxDistance)
	}
}

func TestMovementFollowsYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationY = 0
	c.Distance = 100

	c.HandleMovement(1, 0, 0)
	if !near(c.Center, math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("forward moved center to %v", c.Center)
	}

	c.Center = math.Vec3{}
	c.HandleMovement(0, 1, 0)
	if !near(c.Center, math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("right moved center to %v", c.Center)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -50, Y: 0, Z: -50}, math.Vec3{X: 50, Y: 10, Z: 50})

	if !near(c.Center, math.Vec3{X: 0, Y: 5, Z: 0}) {
		t.Errorf("center = %v", c.Center)
	}
	if c.Distance < 70 || c.Distance > c.MaxDistance {
		t.Errorf("distance = %f", c.Distance)
	}
}

func TestLookAtRoundTrip(t *testing.T) {
	c := NewOrbitCamera()
	eye := math.Vec3{X: 23, Y: 6.5, Z: -41.4}
	center := math.Vec3{X: 11, Y: 6.7, Z: -32}
	c.LookAt(eye, center)

	if !near(c.Position(), eye) {
		t.Errorf("Position() = %v, want %v", c.Position(), eye)
	}
	if c.Center != center {
		t.Errorf("Center = %v, want %v", c.Center, center)
	}

	before := *c
	c.LookAt(center, center)
	if *c != before {
		t.Error("LookAt with eye == center changed the camera")
	}
}
