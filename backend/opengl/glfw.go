package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	ui "github.com/go-theft-auto/ui"
)

// Input forwards GLFW window callbacks into a ui.InputTranslator. Install it
// once per window and drain the translator into the engine every frame:
//
//	in := opengl.NewInput(window)
//	for !window.ShouldClose() {
//	    glfw.PollEvents()
//	    eng.PostAll(in.Translator().Drain())
//	    eng.Frame(dt)
//	}
type Input struct {
	window  *glfw.Window
	tr      *ui.InputTranslator
	cursor  ui.CursorIcon
	cursors map[glfw.StandardCursor]*glfw.Cursor
}

// NewInput installs key, char, mouse, scroll and cursor callbacks on window.
func NewInput(window *glfw.Window) *Input {
	in := &Input{
		window:  window,
		tr:      ui.NewInputTranslator(),
		cursors: make(map[glfw.StandardCursor]*glfw.Cursor),
	}
	window.SetKeyCallback(in.keyCallback)
	window.SetCharModsCallback(in.charCallback)
	window.SetMouseButtonCallback(in.mouseButtonCallback)
	window.SetScrollCallback(in.scrollCallback)
	window.SetCursorPosCallback(in.cursorPosCallback)
	return in
}

// Translator returns the translator callbacks feed.
func (in *Input) Translator() *ui.InputTranslator { return in.tr }

// ApplyCursor sets the window cursor shape for icon. Call it after each
// frame with Context.Cursor.
func (in *Input) ApplyCursor(icon ui.CursorIcon) {
	if icon == in.cursor {
		return
	}
	in.cursor = icon
	shape, ok := cursorShape(icon)
	if !ok {
		in.window.SetCursor(nil)
		return
	}
	c, ok := in.cursors[shape]
	if !ok {
		c = glfw.CreateStandardCursor(shape)
		in.cursors[shape] = c
	}
	in.window.SetCursor(c)
}

// Close destroys the cursors created by ApplyCursor.
func (in *Input) Close() {
	in.window.SetCursor(nil)
	for shape, c := range in.cursors {
		c.Destroy()
		delete(in.cursors, shape)
	}
}

func (in *Input) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	in.tr.SetModifiers(translateMods(mods))
	k := translateKey(key)
	switch action {
	case glfw.Press:
		in.tr.Key(k, true, false)
	case glfw.Repeat:
		in.tr.Key(k, true, true)
	case glfw.Release:
		in.tr.Key(k, false, false)
	}
}

func (in *Input) charCallback(_ *glfw.Window, char rune, mods glfw.ModifierKey) {
	in.tr.SetModifiers(translateMods(mods))
	in.tr.Char(char)
}

func (in *Input) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := translateButton(button)
	if !ok {
		return
	}
	in.tr.SetModifiers(translateMods(mods))
	switch action {
	case glfw.Press:
		in.tr.Button(b, true)
	case glfw.Release:
		in.tr.Button(b, false)
	}
}

func (in *Input) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	in.tr.Scroll(float32(xoff), float32(yoff))
}

func (in *Input) cursorPosCallback(_ *glfw.Window, x, y float64) {
	in.tr.CursorMoved(float32(x), float32(y))
}

// Clipboard is a ui.ClipboardProvider backed by the GLFW system clipboard.
type Clipboard struct {
	window *glfw.Window
}

// NewClipboard returns a clipboard bound to window.
func NewClipboard(window *glfw.Window) *Clipboard {
	return &Clipboard{window: window}
}

// GetText implements ui.ClipboardProvider.
func (c *Clipboard) GetText() string {
	return c.window.GetClipboardString()
}

// SetText implements ui.ClipboardProvider.
func (c *Clipboard) SetText(text string) {
	c.window.SetClipboardString(text)
}

var _ ui.ClipboardProvider = (*Clipboard)(nil)

func translateMods(m glfw.ModifierKey) ui.Modifiers {
	var out ui.Modifiers
	if m&glfw.ModShift != 0 {
		out |= ui.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= ui.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= ui.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= ui.ModSuper
	}
	return out
}

var keyMap = map[glfw.Key]ui.Key{
	glfw.KeyTab:       ui.KeyTab,
	glfw.KeyLeft:      ui.KeyLeft,
	glfw.KeyRight:     ui.KeyRight,
	glfw.KeyUp:        ui.KeyUp,
	glfw.KeyDown:      ui.KeyDown,
	glfw.KeyPageUp:    ui.KeyPageUp,
	glfw.KeyPageDown:  ui.KeyPageDown,
	glfw.KeyHome:      ui.KeyHome,
	glfw.KeyEnd:       ui.KeyEnd,
	glfw.KeyInsert:    ui.KeyInsert,
	glfw.KeyDelete:    ui.KeyDelete,
	glfw.KeyBackspace: ui.KeyBackspace,
	glfw.KeySpace:     ui.KeySpace,
	glfw.KeyEnter:     ui.KeyEnter,
	glfw.KeyKPEnter:   ui.KeyEnter,
	glfw.KeyEscape:    ui.KeyEscape,
	glfw.KeyA:         ui.KeyA,
	glfw.KeyC:         ui.KeyC,
	glfw.KeyV:         ui.KeyV,
	glfw.KeyX:         ui.KeyX,
	glfw.KeyY:         ui.KeyY,
	glfw.KeyZ:         ui.KeyZ,
	glfw.KeyF1:        ui.KeyF1,
	glfw.KeyF2:        ui.KeyF2,
	glfw.KeyF3:        ui.KeyF3,
	glfw.KeyF4:        ui.KeyF4,
	glfw.KeyF5:        ui.KeyF5,
	glfw.KeyF6:        ui.KeyF6,
	glfw.KeyF7:        ui.KeyF7,
	glfw.KeyF8:        ui.KeyF8,
	glfw.KeyF9:        ui.KeyF9,
	glfw.KeyF10:       ui.KeyF10,
	glfw.KeyF11:       ui.KeyF11,
	glfw.KeyF12:       ui.KeyF12,
}

// translateKey returns ui.KeyNone for keys the ui does not name; those
// still arrive as CharInput when they produce text.
func translateKey(key glfw.Key) ui.Key {
	return keyMap[key]
}

func translateButton(b glfw.MouseButton) (ui.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return ui.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return ui.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return ui.MouseButtonMiddle, true
	}
	return 0, false
}

func cursorShape(icon ui.CursorIcon) (glfw.StandardCursor, bool) {
	switch icon {
	case ui.CursorPointer, ui.CursorGrab, ui.CursorGrabbing:
		return glfw.HandCursor, true
	case ui.CursorText:
		return glfw.IBeamCursor, true
	case ui.CursorResizeH:
		return glfw.HResizeCursor, true
	case ui.CursorResizeV:
		return glfw.VResizeCursor, true
	case ui.CursorNotAllowed:
		return glfw.CrosshairCursor, true
	}
	return 0, false
}
