package ui

import "fmt"

// EventKind identifies the kind of event.
type EventKind uint8

const (
	EventNone EventKind = iota

	// Pointer events
	EventMouseEnter
	EventMouseLeave
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
	EventClick

	// Focus events
	EventFocusGained
	EventFocusLost

	// Keyboard and text input
	EventKeyDown
	EventKeyUp
	EventCharInput
	EventImePreedit
	EventImeCommit

	// Frame
	EventTick

	// Drag and drop
	EventDragStart
	EventDragMove
	EventDragOver
	EventDragEnd
)

var eventKindNames = [...]string{
	EventNone:        "None",
	EventMouseEnter:  "MouseEnter",
	EventMouseLeave:  "MouseLeave",
	EventMouseMove:   "MouseMove",
	EventMouseDown:   "MouseDown",
	EventMouseUp:     "MouseUp",
	EventMouseWheel:  "MouseWheel",
	EventClick:       "Click",
	EventFocusGained: "FocusGained",
	EventFocusLost:   "FocusLost",
	EventKeyDown:     "KeyDown",
	EventKeyUp:       "KeyUp",
	EventCharInput:   "CharInput",
	EventImePreedit:  "ImePreedit",
	EventImeCommit:   "ImeCommit",
	EventTick:        "Tick",
	EventDragStart:   "DragStart",
	EventDragMove:    "DragMove",
	EventDragOver:    "DragOver",
	EventDragEnd:     "DragEnd",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// Event is a semantic input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind
	Position    Vec2        // pointer and drag events
	Delta       Vec2        // MouseMove: movement; MouseWheel: scroll amount
	Button      MouseButton // MouseDown, MouseUp, Click
	Modifiers   Modifiers
	Key         Key    // KeyDown, KeyUp
	Repeat      bool   // KeyDown generated by key repeat
	Char        rune   // CharInput
	Text        string // ImePreedit, ImeCommit
	CursorStart int    // ImePreedit cursor range in bytes, -1 if unknown
	CursorEnd   int
	ID          string // FocusGained/FocusLost target, drag source
	Payload     string // drag events
	Success     bool   // DragEnd
}

// IsPointer reports whether the event is routed by hit-testing.
func (e Event) IsPointer() bool {
	switch e.Kind {
	case EventMouseMove, EventMouseDown, EventMouseUp, EventMouseWheel, EventClick:
		return true
	}
	return false
}

// IsKeyboard reports whether the event is routed to the focused component.
func (e Event) IsKeyboard() bool {
	switch e.Kind {
	case EventKeyDown, EventKeyUp, EventCharInput, EventImePreedit, EventImeCommit:
		return true
	}
	return false
}

// IsDrag reports whether the event is part of a drag lifecycle.
func (e Event) IsDrag() bool {
	switch e.Kind {
	case EventDragStart, EventDragMove, EventDragOver, EventDragEnd:
		return true
	}
	return false
}

func (e Event) String() string {
	switch {
	case e.IsPointer() || e.Kind == EventMouseEnter || e.Kind == EventMouseLeave:
		return fmt.Sprintf("%s(%.0f,%.0f)", e.Kind, e.Position.X, e.Position.Y)
	case e.Kind == EventFocusGained || e.Kind == EventFocusLost:
		return fmt.Sprintf("%s(%s)", e.Kind, e.ID)
	case e.Kind == EventDragEnd:
		return fmt.Sprintf("%s(%s, success=%t)", e.Kind, e.Payload, e.Success)
	case e.IsDrag():
		return fmt.Sprintf("%s(%s)", e.Kind, e.Payload)
	case e.Kind == EventKeyDown || e.Kind == EventKeyUp:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case e.Kind == EventCharInput:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Char)
	}
	return e.Kind.String()
}

// MouseMove builds a pointer move event.
func MouseMove(pos, delta Vec2) Event {
	return Event{Kind: EventMouseMove, Position: pos, Delta: delta}
}

// MouseDown builds a button press event.
func MouseDown(pos Vec2, button MouseButton, mods Modifiers) Event {
	return Event{Kind: EventMouseDown, Position: pos, Button: button, Modifiers: mods}
}

// MouseUp builds a button release event.
func MouseUp(pos Vec2, button MouseButton, mods Modifiers) Event {
	return Event{Kind: EventMouseUp, Position: pos, Button: button, Modifiers: mods}
}

// MouseWheel builds a scroll event.
func MouseWheel(pos, delta Vec2, mods Modifiers) Event {
	return Event{Kind: EventMouseWheel, Position: pos, Delta: delta, Modifiers: mods}
}

// KeyPress builds a key press event.
func KeyPress(key Key, mods Modifiers) Event {
	return Event{Kind: EventKeyDown, Key: key, Modifiers: mods}
}

// KeyRelease builds a key release event.
func KeyRelease(key Key, mods Modifiers) Event {
	return Event{Kind: EventKeyUp, Key: key, Modifiers: mods}
}

// CharInput builds a text input event for a single rune.
func CharInput(r rune, mods Modifiers) Event {
	return Event{Kind: EventCharInput, Char: r, Modifiers: mods}
}

// ImePreedit builds an in-progress composition event.
func ImePreedit(text string, cursorStart, cursorEnd int) Event {
	return Event{Kind: EventImePreedit, Text: text, CursorStart: cursorStart, CursorEnd: cursorEnd}
}

// ImeCommit builds a finished composition event.
func ImeCommit(text string) Event {
	return Event{Kind: EventImeCommit, Text: text}
}

// TickEvent is the per-frame broadcast.
func TickEvent() Event {
	return Event{Kind: EventTick}
}
