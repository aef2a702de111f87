package water

import gomath "math"

// Flow animation constants, in texture units. The two normal-map layers run
// half a cycle apart so the shader can fade out whichever layer is about to
// jump back to zero.
const (
	FlowCycle     = 0.15
	FlowHalfCycle = FlowCycle * 0.5
	FlowSpeed     = 0.05 // per second
)

// wrapEpsilon absorbs float drift so a sequence of deltas summing to a whole
// cycle lands exactly on zero.
const wrapEpsilon = 1e-6

// FlowOffsets are the two flow-map phase offsets, each in [0, FlowCycle).
type FlowOffsets struct {
	Offset0 float32
	Offset1 float32
}

// FlowAnimator advances the flow offsets. It is the only writer of the
// offsets; readers get copies from Offsets.
type FlowAnimator struct {
	offset0 float64
	offset1 float64
	rate    float64
}

// NewFlowAnimator returns an animator at offsets (0, FlowHalfCycle) moving at
// FlowSpeed.
func NewFlowAnimator() *FlowAnimator {
	return &FlowAnimator{
		offset0: 0,
		offset1: FlowHalfCycle,
		rate:    FlowSpeed,
	}
}

// SetRate changes the advance rate in units per second. Zero freezes the flow.
func (f *FlowAnimator) SetRate(rate float32) {
	if rate < 0 || gomath.IsNaN(float64(rate)) {
		return
	}
	f.rate = float64(rate)
}

// Rate returns the advance rate in units per second.
func (f *FlowAnimator) Rate() float32 {
	return float32(f.rate)
}

// Advance moves both offsets by rate*dt seconds, wrapping each at FlowCycle.
// Negative and NaN deltas are ignored.
func (f *FlowAnimator) Advance(dt float32) {
	if !(dt > 0) {
		return
	}
	step := f.rate * float64(dt)
	f.offset0 = wrapCycle(f.offset0 + step)
	f.offset1 = wrapCycle(f.offset1 + step)
}

// Offsets returns the current offsets.
func (f *FlowAnimator) Offsets() FlowOffsets {
	return FlowOffsets{
		Offset0: float32(f.offset0),
		Offset1: float32(f.offset1),
	}
}

// Reset returns the animator to its initial phase.
func (f *FlowAnimator) Reset() {
	f.offset0 = 0
	f.offset1 = FlowHalfCycle
}

func wrapCycle(v float64) float64 {
	v = gomath.Mod(v, FlowCycle)
	if v < 0 {
		v += FlowCycle
	}
	if v < wrapEpsilon || FlowCycle-v < wrapEpsilon {
		return 0
	}
	return v
}
