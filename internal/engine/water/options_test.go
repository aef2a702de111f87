package water

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/waterflow/pkg/math"
)

func TestDefaultOptionsValid(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"width too small", func(o *Options) { o.Width = 1 }, ErrInvalidGrid},
		{"height zero", func(o *Options) { o.Height = 0 }, ErrInvalidGrid},
		{"zero spacing", func(o *Options) { o.CellSpacing = 0 }, ErrInvalidSpacing},
		{"negative spacing", func(o *Options) { o.CellSpacing = -1 }, ErrInvalidSpacing},
		{"nan spacing", func(o *Options) { o.CellSpacing = float32(gomath.NaN()) }, ErrInvalidSpacing},
		{"zero target", func(o *Options) { o.RenderTargetSize = 0 }, ErrInvalidTargetSize},
		{"zero sun", func(o *Options) { o.SunDirection = math.Vec3{} }, ErrZeroSunDirection},
		{"nan sun", func(o *Options) { o.SunDirection = math.Vec3{X: float32(gomath.NaN()), Y: -1} }, ErrZeroSunDirection},
		{"infinite sun", func(o *Options) { o.SunDirection = math.Vec3{Y: float32(gomath.Inf(-1))} }, ErrZeroSunDirection},
		{"non power of two grid", func(o *Options) { o.Width, o.Height = 10, 7 }, nil},
		{"minimal grid", func(o *Options) { o.Width, o.Height = 2, 2 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOptionsTechniqueDefault(t *testing.T) {
	var o Options
	if o.technique() != TechniqueFull {
		t.Errorf("empty technique = %q, want %q", o.technique(), TechniqueFull)
	}
	o.Technique = TechniqueNoFlow
	if o.technique() != TechniqueNoFlow {
		t.Errorf("technique = %q", o.technique())
	}
}
