package gfx

import "github.com/Faultbox/waterflow/pkg/math"

// The Push helpers change one piece of render state and return a function that
// restores the previous value. Callers defer the restore so every exit path,
// early returns included, leaves the device as it found it.

// PushCullMode sets the cull mode.
func PushCullMode(dev StateDevice, mode CullMode) (restore func()) {
	prev := dev.CullMode()
	dev.SetCullMode(mode)
	return func() { dev.SetCullMode(prev) }
}

// PushFrontFace sets the front-face winding.
func PushFrontFace(dev StateDevice, w Winding) (restore func()) {
	prev := dev.FrontFace()
	dev.SetFrontFace(w)
	return func() { dev.SetFrontFace(prev) }
}

// PushClipPlane loads plane into slot and enables it.
func PushClipPlane(dev StateDevice, slot int, plane math.Vec4) (restore func()) {
	prevPlane, prevEnabled := dev.ClipPlane(slot)
	dev.SetClipPlane(slot, plane)
	dev.EnableClipPlane(slot, true)
	return func() {
		dev.SetClipPlane(slot, prevPlane)
		dev.EnableClipPlane(slot, prevEnabled)
	}
}

// PushRenderTarget binds rt. A nil rt binds the back buffer.
func PushRenderTarget(dev StateDevice, rt RenderTarget) (restore func()) {
	prev := dev.RenderTarget()
	dev.SetRenderTarget(rt)
	return func() { dev.SetRenderTarget(prev) }
}
