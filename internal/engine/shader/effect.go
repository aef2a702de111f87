package shader

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/logger"
)

// Technique is one compiled variant of an effect.
type Technique struct {
	Name     string
	Vertex   string
	Fragment string
}

// Effect is a set of programs, one per technique, sharing a parameter table.
// Parameters are cached on the CPU and uploaded to the current technique's
// program by Apply.
type Effect struct {
	*Params

	name      string
	programs  map[string]uint32
	locations map[uint32]map[string]int32
	current   string
	log       *zap.Logger
}

// NewEffect compiles every technique. The first one becomes current.
func NewEffect(name string, techniques ...Technique) (*Effect, error) {
	if len(techniques) == 0 {
		return nil, fmt.Errorf("effect %s: no techniques", name)
	}

	e := &Effect{
		Params:    NewParams(),
		name:      name,
		programs:  make(map[string]uint32, len(techniques)),
		locations: make(map[uint32]map[string]int32, len(techniques)),
		log:       logger.Named("shader").With(zap.String("effect", name)),
	}
	for _, t := range techniques {
		program, err := CompileProgram(t.Vertex, t.Fragment)
		if err != nil {
			e.Destroy()
			return nil, fmt.Errorf("effect %s, technique %s: %w", name, t.Name, err)
		}
		e.programs[t.Name] = program
		e.locations[program] = make(map[string]int32)
		e.log.Debug("technique compiled", zap.String("technique", t.Name), zap.Uint32("program", program))
	}
	e.current = techniques[0].Name
	return e, nil
}

// Technique returns the current technique name.
func (e *Effect) Technique() string {
	return e.current
}

// Techniques returns the technique names, sorted.
func (e *Effect) Techniques() []string {
	names := make([]string, 0, len(e.programs))
	for n := range e.programs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetTechnique selects the program used by Apply.
func (e *Effect) SetTechnique(name string) error {
	if _, ok := e.programs[name]; !ok {
		return fmt.Errorf("effect %s has no technique %q", e.name, name)
	}
	e.current = name
	return nil
}

// Apply makes the current technique's program active and uploads every
// parameter it uses.
func (e *Effect) Apply() {
	program := e.programs[e.current]
	gl.UseProgram(program)

	e.each(func(name string, v *value) {
		loc := e.location(program, name)
		if loc < 0 {
			return
		}
		switch v.kind {
		case kindFloat:
			gl.Uniform1f(loc, v.data[0])
		case kindVec3:
			gl.Uniform3f(loc, v.data[0], v.data[1], v.data[2])
		case kindVec4:
			gl.Uniform4f(loc, v.data[0], v.data[1], v.data[2], v.data[3])
		case kindMat4:
			gl.UniformMatrix4fv(loc, 1, false, &v.data[0])
		case kindTexture:
			gl.ActiveTexture(gl.TEXTURE0 + uint32(v.unit))
			gl.BindTexture(gl.TEXTURE_2D, uint32(v.tex))
			gl.Uniform1i(loc, v.unit)
		}
	})
	gl.ActiveTexture(gl.TEXTURE0)
}

func (e *Effect) location(program uint32, name string) int32 {
	cache := e.locations[program]
	loc, ok := cache[name]
	if !ok {
		loc = GetUniform(program, name)
		cache[name] = loc
		if loc < 0 {
			e.log.Debug("parameter not used by technique",
				zap.String("parameter", name),
				zap.String("technique", e.current),
			)
		}
	}
	return loc
}

// Destroy deletes every program.
func (e *Effect) Destroy() {
	for name, program := range e.programs {
		gl.DeleteProgram(program)
		delete(e.programs, name)
	}
}

var _ gfx.Effect = (*Effect)(nil)
