// Package uitest drives a ui.Engine without a window, for widget tests.
//
// Usage:
//
//	h := uitest.New(t, root, 800, 600)
//	h.Click(40, 20)
//	require.Equal(t, "save", h.Context().FocusedID())
package uitest

import (
	"testing"

	ui "github.com/go-theft-auto/ui"
)

// frameDT is the frame time the harness reports to Update.
const frameDT = float32(1.0 / 60)

// Harness wraps an Engine using the fixed-advance text service. Every input
// helper runs a frame afterwards, so effects are visible immediately.
type Harness struct {
	t      testing.TB
	engine *ui.Engine
	input  *ui.InputTranslator
	frame  *ui.Frame
}

// New creates a harness for root with a width x height viewport and runs
// the first frame so the tree is laid out.
func New(t testing.TB, root ui.Component, width, height int, opts ...ui.EngineOption) *Harness {
	t.Helper()
	opts = append([]ui.EngineOption{ui.WithTextService(ui.NewMonoTextService())}, opts...)
	h := &Harness{
		t:      t,
		engine: ui.New(root, opts...),
		input:  ui.NewInputTranslator(),
	}
	h.engine.Resize(width, height)
	h.Frame()
	t.Cleanup(func() { _ = h.engine.Close() })
	return h
}

// Engine returns the wrapped engine.
func (h *Harness) Engine() *ui.Engine { return h.engine }

// Context returns the engine context.
func (h *Harness) Context() *ui.Context { return h.engine.Context() }

// LastFrame returns the output of the most recent frame.
func (h *Harness) LastFrame() *ui.Frame { return h.frame }

// Frame flushes queued input and runs one frame.
func (h *Harness) Frame() *ui.Frame {
	h.t.Helper()
	h.engine.PostAll(h.input.Drain())
	f, err := h.engine.Frame(frameDT)
	if err != nil {
		h.t.Fatalf("frame: %v", err)
	}
	h.frame = f
	return f
}

// Post queues a raw event and runs a frame.
func (h *Harness) Post(e ui.Event) {
	h.t.Helper()
	h.engine.Post(e)
	h.Frame()
}

// Move moves the pointer to (x, y).
func (h *Harness) Move(x, y float32) {
	h.t.Helper()
	h.input.CursorMoved(x, y)
	h.Frame()
}

// Press moves to (x, y) and presses the left button.
func (h *Harness) Press(x, y float32) {
	h.t.Helper()
	h.input.CursorMoved(x, y)
	h.input.Button(ui.MouseButtonLeft, true)
	h.Frame()
}

// Release moves to (x, y) and releases the left button.
func (h *Harness) Release(x, y float32) {
	h.t.Helper()
	h.input.CursorMoved(x, y)
	h.input.Button(ui.MouseButtonLeft, false)
	h.Frame()
}

// Click presses and releases the left button at (x, y).
func (h *Harness) Click(x, y float32) {
	h.t.Helper()
	h.Press(x, y)
	h.Release(x, y)
}

// Drag presses at from, moves to to in steps, and releases there.
func (h *Harness) Drag(from, to ui.Vec2) {
	h.t.Helper()
	const steps = 4
	h.Press(from.X, from.Y)
	d := to.Sub(from)
	for i := 1; i <= steps; i++ {
		p := from.Add(d.Mul(float32(i) / steps))
		h.Move(p.X, p.Y)
	}
	h.Release(to.X, to.Y)
}

// Key presses and releases k with the given modifiers.
func (h *Harness) Key(k ui.Key, mods ...ui.Modifiers) {
	h.t.Helper()
	var m ui.Modifiers
	for _, mod := range mods {
		m |= mod
	}
	prev := h.input.Modifiers()
	h.input.SetModifiers(m)
	h.input.Key(k, true, false)
	h.input.Key(k, false, false)
	h.input.SetModifiers(prev)
	h.Frame()
}

// Tab moves focus forward.
func (h *Harness) Tab() {
	h.t.Helper()
	h.Key(ui.KeyTab)
}

// ShiftTab moves focus backward.
func (h *Harness) ShiftTab() {
	h.t.Helper()
	h.Key(ui.KeyTab, ui.ModShift)
}

// Type sends text as character input.
func (h *Harness) Type(text string) {
	h.t.Helper()
	for _, r := range text {
		h.input.Char(r)
	}
	h.Frame()
}

// Find returns the component with id in the main tree or an overlay, failing
// the test when there is none.
func (h *Harness) Find(id string) ui.Component {
	h.t.Helper()
	var found ui.Component
	h.Context().Overlays().EachReverse(func(o *ui.Overlay) bool {
		found = ui.FindByID(o.Component, id)
		return found == nil
	})
	if found == nil {
		found = ui.FindByID(h.engine.Root(), id)
	}
	if found == nil {
		h.t.Fatalf("no component with id %q", id)
	}
	return found
}

// Center returns the centre of the component with id.
func (h *Harness) Center(id string) ui.Vec2 {
	h.t.Helper()
	return h.Find(id).Bounds().Center()
}
