package shader

import (
	"strings"
	"testing"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

func TestWithDefines(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		defines []string
		want    string
	}{
		{"no defines", "#version 410 core\nvoid main() {}", nil, "#version 410 core\nvoid main() {}"},
		{"after version", "#version 410 core\nvoid main() {}", []string{"FLOW"}, "#version 410 core\n#define FLOW\nvoid main() {}"},
		{"leading blank lines", "\n\n#version 410 core\nx", []string{"A", "B 2"}, "#version 410 core\n#define A\n#define B 2\nx"},
		{"no version", "void main() {}", []string{"A"}, "#define A\nvoid main() {}"},
		{"version only", "#version 410 core", []string{"A"}, "#version 410 core\n#define A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithDefines(tt.source, tt.defines...); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParamsTextureUnits(t *testing.T) {
	p := NewParams()
	p.SetTexture("ReflectMap", 5)
	p.SetFloat("HalfCycle", 0.075)
	p.SetTexture("RefractMap", 6)
	p.SetTexture("ReflectMap", 9) // rebinding keeps the unit

	if u, ok := p.textureUnit("ReflectMap"); !ok || u != 0 {
		t.Errorf("ReflectMap unit = %d, %t", u, ok)
	}
	if u, ok := p.textureUnit("RefractMap"); !ok || u != 1 {
		t.Errorf("RefractMap unit = %d, %t", u, ok)
	}
	if _, ok := p.textureUnit("HalfCycle"); ok {
		t.Error("float parameter reported a texture unit")
	}
	if p.values["ReflectMap"].tex != gfx.Texture(9) {
		t.Errorf("ReflectMap texture = %d", p.values["ReflectMap"].tex)
	}
}

func TestParamsValues(t *testing.T) {
	p := NewParams()
	p.SetFloat("SunPower", 100)
	p.SetVec3("EyePos", math.Vec3{X: 1, Y: 2, Z: 3})
	p.SetVec4("WaterColor", math.Vec4{0.5, 0.79, 0.75, 1})
	p.SetMat4("World", math.Translate(0, 2.5, 0))
	p.SetFloat("SunPower", 50)

	if f, ok := p.float("SunPower"); !ok || f != 50 {
		t.Errorf("SunPower = %f", f)
	}
	if got := p.values["EyePos"].data; got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("EyePos = %v", got[:3])
	}
	if got := p.values["WaterColor"].data; got[1] != 0.79 || got[3] != 1 {
		t.Errorf("WaterColor = %v", got[:4])
	}
	if got := math.Mat4(p.values["World"].data); got != math.Translate(0, 2.5, 0) {
		t.Errorf("World = %v", got)
	}
	if got := strings.Join(p.names(), ","); got != "SunPower,EyePos,WaterColor,World" {
		t.Errorf("names = %s", got)
	}
}

func TestParamsKindChange(t *testing.T) {
	p := NewParams()
	p.SetFloat("Map", 1)
	p.SetTexture("Map", 3)
	p.SetTexture("Other", 4)

	if u, ok := p.textureUnit("Map"); !ok || u != 0 {
		t.Errorf("Map unit = %d, %t", u, ok)
	}
	if u, _ := p.textureUnit("Other"); u != 1 {
		t.Errorf("Other unit = %d", u)
	}
	if len(p.names()) != 2 {
		t.Errorf("names = %v", p.names())
	}
}
