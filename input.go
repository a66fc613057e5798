package ui

import "fmt"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	}
	return fmt.Sprintf("button%d", int(b))
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCount
)

var keyNames = map[Key]string{
	KeyNone: "None", KeyTab: "Tab", KeyLeft: "Left", KeyRight: "Right",
	KeyUp: "Up", KeyDown: "Down", KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyHome: "Home", KeyEnd: "End", KeyInsert: "Insert", KeyDelete: "Delete",
	KeyBackspace: "Backspace", KeySpace: "Space", KeyEnter: "Enter", KeyEscape: "Escape",
	KeyA: "A", KeyC: "C", KeyV: "V", KeyX: "X", KeyY: "Y", KeyZ: "Z",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// InputTranslator turns raw window callbacks into semantic events. It keeps
// the cursor position and modifier state so backends can forward callbacks
// one by one without tracking anything themselves.
//
// Usage:
//
//	tr := ui.NewInputTranslator()
//	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
//	    tr.CursorMoved(float32(x), float32(y))
//	})
//	...
//	engine.PostAll(tr.Drain())
type InputTranslator struct {
	pos    Vec2
	seen   bool
	mods   Modifiers
	events []Event
}

// NewInputTranslator creates an empty translator.
func NewInputTranslator() *InputTranslator {
	return &InputTranslator{events: make([]Event, 0, 32)}
}

// CursorPos returns the last known cursor position.
func (t *InputTranslator) CursorPos() Vec2 {
	return t.pos
}

// Modifiers returns the held modifier keys.
func (t *InputTranslator) Modifiers() Modifiers {
	return t.mods
}

// SetModifiers replaces the modifier state.
func (t *InputTranslator) SetModifiers(m Modifiers) {
	t.mods = m
}

// CursorMoved records a cursor position. Repeated positions are dropped.
func (t *InputTranslator) CursorMoved(x, y float32) {
	p := Vec2{X: x, Y: y}
	if t.seen && p == t.pos {
		return
	}
	delta := Vec2{}
	if t.seen {
		delta = p.Sub(t.pos)
	}
	t.pos, t.seen = p, true
	t.events = append(t.events, MouseMove(p, delta))
}

// Button records a mouse button press or release at the cursor.
func (t *InputTranslator) Button(b MouseButton, pressed bool) {
	if pressed {
		t.events = append(t.events, MouseDown(t.pos, b, t.mods))
	} else {
		t.events = append(t.events, MouseUp(t.pos, b, t.mods))
	}
}

// Scroll records a wheel movement at the cursor.
func (t *InputTranslator) Scroll(dx, dy float32) {
	t.events = append(t.events, MouseWheel(t.pos, Vec2{X: dx, Y: dy}, t.mods))
}

// Key records a key transition. Unknown keys are ignored.
func (t *InputTranslator) Key(k Key, pressed, repeat bool) {
	if k == KeyNone {
		return
	}
	if pressed {
		e := KeyPress(k, t.mods)
		e.Repeat = repeat
		t.events = append(t.events, e)
		return
	}
	t.events = append(t.events, KeyRelease(k, t.mods))
}

// Char records a typed rune.
func (t *InputTranslator) Char(r rune) {
	t.events = append(t.events, CharInput(r, t.mods))
}

// Preedit records an IME composition update.
func (t *InputTranslator) Preedit(text string, cursorStart, cursorEnd int) {
	t.events = append(t.events, ImePreedit(text, cursorStart, cursorEnd))
}

// Commit records a finished IME composition.
func (t *InputTranslator) Commit(text string) {
	t.events = append(t.events, ImeCommit(text))
}

// Drain returns the queued events and empties the queue.
func (t *InputTranslator) Drain() []Event {
	if len(t.events) == 0 {
		return nil
	}
	out := make([]Event, len(t.events))
	copy(out, t.events)
	t.events = t.events[:0]
	return out
}
