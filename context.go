package ui

import "log/slog"

// CursorIcon is the mouse cursor shape a component asks the backend to show.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorPointer
	CursorText
	CursorGrab
	CursorGrabbing
	CursorNotAllowed
	CursorResizeH
	CursorResizeV
)

var cursorIconNames = [...]string{
	CursorDefault:    "default",
	CursorPointer:    "pointer",
	CursorText:       "text",
	CursorGrab:       "grab",
	CursorGrabbing:   "grabbing",
	CursorNotAllowed: "not-allowed",
	CursorResizeH:    "ew-resize",
	CursorResizeV:    "ns-resize",
}

func (c CursorIcon) String() string {
	if int(c) < len(cursorIconNames) {
		return cursorIconNames[c]
	}
	return "default"
}

// IMEState tells the platform whether text composition is wanted and where
// the candidate window should appear.
type IMEState struct {
	Allowed bool
	Area    Rect
}

// Context is the runtime state shared with components while they handle
// events. One Context is created per Engine and passed by reference to
// OnEvent, OnDragStart and OnDrop; there is no global state.
//
// Usage (inside OnEvent):
//
//	case ui.EventClick:
//	    ctx.RequestFocus(b.ID())
//	    ctx.SetClipboard(b.Text)
//	    return true
type Context struct {
	focus     *FocusManager
	drag      *DragController
	overlays  *OverlayQueue
	clipboard ClipboardProvider
	text      TextService
	cursor    CursorIcon
	ime       IMEState
}

// NewContext wires a context around the given services. Nil arguments get
// defaults: a MemoryClipboard and a MonoTextService.
func NewContext(clip ClipboardProvider, svc TextService, dragThreshold float32) *Context {
	if clip == nil {
		clip = &MemoryClipboard{}
	}
	if svc == nil {
		svc = NewMonoTextService()
	}
	return &Context{
		focus:     NewFocusManager(),
		drag:      NewDragController(dragThreshold),
		overlays:  NewOverlayQueue(),
		clipboard: clip,
		text:      svc,
	}
}

// Focus returns the focus manager.
func (ctx *Context) Focus() *FocusManager { return ctx.focus }

// Drag returns the drag controller.
func (ctx *Context) Drag() *DragController { return ctx.drag }

// Overlays returns the overlay queue.
func (ctx *Context) Overlays() *OverlayQueue { return ctx.overlays }

// RequestFocus moves keyboard focus to id. The FocusLost/FocusGained events
// are delivered after the current event finishes dispatching.
func (ctx *Context) RequestFocus(id string) {
	ctx.focus.RequestFocus(id)
}

// Blur clears keyboard focus.
func (ctx *Context) Blur() {
	ctx.focus.Blur()
}

// IsFocused reports whether id holds keyboard focus.
func (ctx *Context) IsFocused(id string) bool {
	return ctx.focus.IsFocused(id)
}

// FocusedID returns the focused id, or "".
func (ctx *Context) FocusedID() string {
	return ctx.focus.Focused()
}

// RegisterFocusable (re)registers id in the tab order. Components call it from
// their Tick handler to override the automatic order.
func (ctx *Context) RegisterFocusable(id string, order int) {
	ctx.focus.Register(id, order)
}

// FocusNext moves focus forward in tab order.
func (ctx *Context) FocusNext() {
	ctx.focus.FocusNext()
}

// FocusPrevious moves focus backward in tab order.
func (ctx *Context) FocusPrevious() {
	ctx.focus.FocusPrevious()
}

// Clipboard returns the clipboard text.
func (ctx *Context) Clipboard() string {
	return ctx.clipboard.GetText()
}

// SetClipboard replaces the clipboard text.
func (ctx *Context) SetClipboard(text string) {
	ctx.clipboard.SetText(text)
}

// SetCursor requests a cursor shape from the backend.
func (ctx *Context) SetCursor(icon CursorIcon) {
	ctx.cursor = icon
}

// Cursor returns the requested cursor shape.
func (ctx *Context) Cursor() CursorIcon {
	return ctx.cursor
}

// SetIMEAllowed enables or disables text composition.
func (ctx *Context) SetIMEAllowed(allowed bool) {
	ctx.ime.Allowed = allowed
}

// SetIMEArea sets where the IME candidate window should appear.
func (ctx *Context) SetIMEArea(area Rect) {
	ctx.ime.Area = area
}

// IME returns the requested composition state.
func (ctx *Context) IME() IMEState {
	return ctx.ime
}

// IsDragging reports whether a drag is in flight.
func (ctx *Context) IsDragging() bool {
	return ctx.drag.IsActive()
}

// DragPayload returns the payload of the active drag, or "".
func (ctx *Context) DragPayload() string {
	return ctx.drag.State().Payload
}

// DragSourceID returns the id the active drag started on, or "".
func (ctx *Context) DragSourceID() string {
	return ctx.drag.State().SourceID
}

// DragPosition returns the pointer position of the active drag.
func (ctx *Context) DragPosition() Vec2 {
	return ctx.drag.State().Current
}

// PushOverlay opens c above the main tree.
func (ctx *Context) PushOverlay(c Component, opts ...OverlayOption) OverlayID {
	return ctx.overlays.Push(c, opts...)
}

// DismissOverlay closes the overlay with the given handle.
func (ctx *Context) DismissOverlay(id OverlayID) {
	ctx.overlays.Remove(id)
}

// CloseTopOverlay closes the topmost overlay, if any.
func (ctx *Context) CloseTopOverlay() {
	ctx.overlays.Pop()
}

// OverlayCount returns the number of open overlays.
func (ctx *Context) OverlayCount() int {
	return ctx.overlays.Len()
}

// Text returns the text service.
func (ctx *Context) Text() TextService {
	return ctx.text
}

// MeasureText measures text at size with the engine's text service.
func (ctx *Context) MeasureText(text string, size float32) Vec2 {
	if size <= 0 {
		size = DefaultTextSize
	}
	return ctx.text.Measure(text, size)
}

// Logger returns the package logger.
func (ctx *Context) Logger() *slog.Logger {
	return Logger()
}

// Reset drops overlays, focus, drag and platform requests. The services stay.
func (ctx *Context) Reset() {
	ctx.overlays.Clear()
	ctx.focus.Reset()
	ctx.drag.Cancel()
	ctx.cursor = CursorDefault
	ctx.ime = IMEState{}
}
