package ui

import (
	"fmt"
	"io"
	"log/slog"
)

// Presenter submits finished frames to a graphics backend.
// backend/opengl.Renderer implements it.
type Presenter interface {
	Present(f *Frame) error
	Resize(width, height int)
}

// Engine drives one component tree: it queues input, runs the router, lays
// the tree out and renders it, one Frame call per display frame.
//
// Usage:
//
//	eng := ui.New(root, ui.WithPresenter(glRenderer))
//	eng.Resize(1280, 720)
//	for !window.ShouldClose() {
//	    glfw.PollEvents()
//	    eng.PostAll(input.Drain())
//	    if _, err := eng.Frame(dt); err != nil {
//	        return err
//	    }
//	}
type Engine struct {
	ctx      *Context
	router   *Router
	renderer *Renderer
	root     Component

	presenter     Presenter
	text          TextService
	clipboard     ClipboardProvider
	dragThreshold float32

	viewport    Rect
	queue       []Event
	everyFrame  bool
	needsLayout bool
	frames      uint64
	last        *Frame
}

// EngineOption configures an Engine instance.
type EngineOption func(*Engine)

// WithTextService sets the text service used for measuring and drawing text.
func WithTextService(svc TextService) EngineOption {
	return func(e *Engine) { e.text = svc }
}

// WithClipboard sets the clipboard exposed through Context.
func WithClipboard(cp ClipboardProvider) EngineOption {
	return func(e *Engine) { e.clipboard = cp }
}

// WithDragThreshold sets how far the pointer must move before a drag starts.
func WithDragThreshold(px float32) EngineOption {
	return func(e *Engine) { e.dragThreshold = px }
}

// WithLogger replaces the package logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(*Engine) { SetLogger(l) }
}

// WithPresenter sets the backend each finished frame is handed to.
func WithPresenter(p Presenter) EngineOption {
	return func(e *Engine) { e.presenter = p }
}

// WithLayoutEveryFrame controls whether layout runs every frame (the
// default) or only after Invalidate and Resize.
func WithLayoutEveryFrame(every bool) EngineOption {
	return func(e *Engine) { e.everyFrame = every }
}

// New creates an engine for root.
func New(root Component, opts ...EngineOption) *Engine {
	e := &Engine{
		root:        root,
		everyFrame:  true,
		needsLayout: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.text == nil {
		e.text = NewMonoTextService()
	}
	e.ctx = NewContext(e.clipboard, e.text, e.dragThreshold)
	e.router = NewRouter(e.ctx)
	e.router.SetRoot(root)
	e.renderer = NewRenderer(e.text)
	return e
}

// Context returns the context shared with components.
func (e *Engine) Context() *Context { return e.ctx }

// Router returns the event router.
func (e *Engine) Router() *Router { return e.router }

// Root returns the main tree.
func (e *Engine) Root() Component { return e.root }

// Viewport returns the current viewport.
func (e *Engine) Viewport() Rect { return e.viewport }

// FrameCount returns how many frames have completed.
func (e *Engine) FrameCount() uint64 { return e.frames }

// LastFrame returns the most recent frame, or nil before the first one.
func (e *Engine) LastFrame() *Frame { return e.last }

// SetRoot replaces the main tree and schedules a layout.
func (e *Engine) SetRoot(root Component) {
	e.root = root
	e.router.SetRoot(root)
	e.needsLayout = true
}

// Post queues an event for the next Frame.
func (e *Engine) Post(ev Event) {
	e.queue = append(e.queue, ev)
}

// PostAll queues events in order.
func (e *Engine) PostAll(evs []Event) {
	e.queue = append(e.queue, evs...)
}

// Resize sets the viewport and forwards the size to the presenter.
func (e *Engine) Resize(width, height int) {
	e.viewport = Rect{W: float32(max(width, 0)), H: float32(max(height, 0))}
	e.router.SetViewport(e.viewport)
	if e.presenter != nil {
		e.presenter.Resize(width, height)
	}
	e.needsLayout = true
}

// Invalidate schedules a layout for the next frame.
func (e *Engine) Invalidate() {
	e.needsLayout = true
}

// Frame runs one frame: tick, input, update, layout, render and present.
// The returned Frame is not touched again by the engine.
func (e *Engine) Frame(dt float32) (*Frame, error) {
	e.router.Tick()

	queue := e.queue
	e.queue = nil
	for _, ev := range queue {
		e.router.Dispatch(ev)
	}

	e.eachRoot(func(c Component) {
		Walk(c, func(n Component) bool {
			n.Update(dt)
			return true
		})
	})

	if e.everyFrame || e.needsLayout {
		e.layout()
	}

	e.renderer.BeginFrame(e.viewport)
	e.renderer.RenderTree(e.root)
	e.renderer.RenderOverlays(e.ctx.overlays)
	f := e.renderer.EndFrame()
	e.last = f
	e.frames++

	if e.presenter != nil {
		if err := e.presenter.Present(f); err != nil {
			return f, fmt.Errorf("present frame %d: %w", e.frames, err)
		}
	}
	return f, nil
}

// layout hands out the text service, then lays out the tree and every
// overlay against the viewport.
func (e *Engine) layout() {
	e.needsLayout = false
	e.eachRoot(func(c Component) {
		Walk(c, func(n Component) bool {
			if t, ok := n.(TextAware); ok {
				t.SetTextService(e.text)
			}
			return true
		})
		c.Layout(e.viewport)
	})
}

func (e *Engine) eachRoot(fn func(Component)) {
	if e.root != nil {
		fn(e.root)
	}
	e.ctx.overlays.Each(func(o *Overlay) {
		fn(o.Component)
	})
}

// Close drops overlays, focus and drag state, and closes the presenter if it
// implements io.Closer.
func (e *Engine) Close() error {
	e.ctx.Reset()
	e.queue = nil
	if c, ok := e.presenter.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
