package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestHandleKeyboard(t *testing.T) {
	in := New()
	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_1}})
	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_1}})

	if !in.IsKeyPressed(sdl.SCANCODE_1) || !in.IsKeyDown(sdl.SCANCODE_1) {
		t.Error("key 1 should be pressed and held")
	}
	if len(in.Events()) != 1 {
		t.Errorf("repeat produced an event: %d events", len(in.Events()))
	}

	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_1}})
	if in.IsKeyDown(sdl.SCANCODE_1) {
		t.Error("key 1 still held after release")
	}
}

func TestDragOnlyWhileHeld(t *testing.T) {
	in := New()
	in.handle(&sdl.MouseMotionEvent{XRel: 5, YRel: 2})
	if dx, dy := in.Drag(sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		t.Errorf("drag without button = %d,%d", dx, dy)
	}

	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT})
	in.handle(&sdl.MouseMotionEvent{XRel: 3, YRel: -1})
	if dx, dy := in.Drag(sdl.BUTTON_LEFT); dx != 8 || dy != 1 {
		t.Errorf("drag = %d,%d, want 8,1", dx, dy)
	}
}

func TestWheelAndQuit(t *testing.T) {
	in := New()
	in.handle(&sdl.MouseWheelEvent{Y: 2})
	in.handle(&sdl.MouseWheelEvent{Y: -1})
	if in.Wheel() != 1 {
		t.Errorf("wheel = %d, want 1", in.Wheel())
	}
	if !in.handle(&sdl.QuitEvent{}) {
		t.Error("quit event should stop the loop")
	}
}

func TestWindowResize(t *testing.T) {
	in := New()
	in.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600})
	ev := in.Events()
	if len(ev) != 1 || ev[0].Type != EventWindowResize || ev[0].Width != 800 || ev[0].Height != 600 {
		t.Errorf("events = %+v", ev)
	}
}
