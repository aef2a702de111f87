package shader

import (
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

type valueKind int

const (
	kindFloat valueKind = iota
	kindVec3
	kindVec4
	kindMat4
	kindTexture
)

// value is one pending parameter. Scalars and vectors use the leading
// elements of data.
type value struct {
	kind valueKind
	data [16]float32
	tex  gfx.Texture
	unit int32
}

// Params is a named parameter table. Textures get a fixed texture unit the
// first time they are set, in the order they are first seen.
type Params struct {
	values map[string]*value
	order  []string
	units  int32
}

// NewParams returns an empty table.
func NewParams() *Params {
	return &Params{values: make(map[string]*value)}
}

func (p *Params) slot(name string, kind valueKind) *value {
	v, ok := p.values[name]
	if !ok {
		v = &value{kind: kind}
		if kind == kindTexture {
			v.unit = p.units
			p.units++
		}
		p.values[name] = v
		p.order = append(p.order, name)
	}
	v.kind = kind
	return v
}

func (p *Params) SetTexture(name string, tex gfx.Texture) {
	v, ok := p.values[name]
	if ok && v.kind != kindTexture {
		// A name reused for a different type gets a fresh slot.
		delete(p.values, name)
		p.order = removeName(p.order, name)
	}
	p.slot(name, kindTexture).tex = tex
}

func (p *Params) SetFloat(name string, f float32) {
	p.slot(name, kindFloat).data[0] = f
}

func (p *Params) SetVec3(name string, v math.Vec3) {
	d := &p.slot(name, kindVec3).data
	d[0], d[1], d[2] = v.X, v.Y, v.Z
}

func (p *Params) SetVec4(name string, v math.Vec4) {
	copy(p.slot(name, kindVec4).data[:4], v[:])
}

func (p *Params) SetMat4(name string, m math.Mat4) {
	p.slot(name, kindMat4).data = m
}

// textureUnit returns the unit assigned to a texture parameter.
func (p *Params) textureUnit(name string) (int32, bool) {
	v, ok := p.values[name]
	if !ok || v.kind != kindTexture {
		return 0, false
	}
	return v.unit, true
}

// float returns a float parameter.
func (p *Params) float(name string) (float32, bool) {
	v, ok := p.values[name]
	if !ok || v.kind != kindFloat {
		return 0, false
	}
	return v.data[0], true
}

// names returns parameter names in the order they were first set.
func (p *Params) names() []string {
	return p.order
}

func (p *Params) each(fn func(name string, v *value)) {
	for _, name := range p.order {
		fn(name, p.values[name])
	}
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}

var _ gfx.ParameterTable = (*Params)(nil)
