package ui

// Component is the capability contract every node of the scene graph
// implements. Embed Base to get the default for every optional capability
// and override only what the component needs.
//
// Usage (custom component):
//
//	type Swatch struct {
//	    ui.Base
//	    Color uint32
//	}
//
//	func (s *Swatch) Render(r *ui.Renderer) {
//	    r.FillRect(s.Bounds(), s.Color)
//	}
//
//	func (s *Swatch) Layout(avail ui.Rect) ui.Vec2 {
//	    s.SetSize(24, 24)
//	    return ui.Vec2{X: 24, Y: 24}
//	}
//
// Children are enumerated with ChildCount/Child. The runtime walks them for
// rendering, hit-testing, ticks and updates; containers only own their
// layout policy.
type Component interface {
	// Render draws the component itself (not its children).
	Render(r *Renderer)

	Bounds() Rect
	SetPosition(x, y float32)
	SetSize(w, h float32)

	// Update advances animations or decays state. Called once per frame.
	Update(dt float32)

	// Layout positions the component's children inside available and
	// returns the component's natural size.
	Layout(available Rect) Vec2

	// ID identifies the component for focus and drag routing. Components
	// with an empty id are never focused, dragged or dropped onto.
	ID() string

	// OnEvent handles e and reports whether it was consumed.
	OnEvent(e Event, ctx *Context) bool

	IsFocusable() bool
	IsDraggable() bool
	IsDropTarget() bool

	// OnDragStart returns the drag payload. ok=false cancels the drag.
	OnDragStart(ctx *Context) (payload string, ok bool)

	// OnDrop offers payload to a drop target; true accepts it.
	OnDrop(payload string, ctx *Context) bool

	ChildCount() int
	Child(i int) Component
}

// TabOrderer lets a focusable component pick its tab position.
// Lower orders come first; equal orders keep registration order.
type TabOrderer interface {
	TabOrder() int
}

// Disposer is called when the owner drops a component (overlay dismissal,
// DynamicRoot replacement).
type Disposer interface {
	Dispose()
}

// Styled components accept an InteractiveStyle from the schema factory.
type Styled interface {
	SetStyle(st InteractiveStyle)
}

// TextAware components measure text during Layout. The engine hands them its
// text service before every layout pass.
type TextAware interface {
	SetTextService(svc TextService)
}

// Base provides the default behaviour for every Component method.
// Render, Update and OnEvent do nothing, Layout keeps the current bounds and
// the component has no children.
type Base struct {
	id     string
	bounds Rect
}

// NewBase returns a Base with the given id.
func NewBase(id string) Base {
	return Base{id: id}
}

// ID implements Component.
func (b *Base) ID() string { return b.id }

// SetID changes the routing id.
func (b *Base) SetID(id string) { b.id = id }

// Bounds implements Component.
func (b *Base) Bounds() Rect { return b.bounds }

// SetPosition implements Component.
func (b *Base) SetPosition(x, y float32) {
	b.bounds.X = x
	b.bounds.Y = y
}

// SetSize implements Component. Negative sizes are clamped to zero.
func (b *Base) SetSize(w, h float32) {
	b.bounds.W = maxf(w, 0)
	b.bounds.H = maxf(h, 0)
}

// SetBounds sets position and size at once.
func (b *Base) SetBounds(r Rect) {
	b.bounds = r.Sanitize()
}

func (b *Base) Render(*Renderer)                    {}
func (b *Base) Update(float32)                      {}
func (b *Base) OnEvent(Event, *Context) bool        { return false }
func (b *Base) IsFocusable() bool                   { return false }
func (b *Base) IsDraggable() bool                   { return false }
func (b *Base) IsDropTarget() bool                  { return false }
func (b *Base) OnDragStart(*Context) (string, bool) { return "", false }
func (b *Base) OnDrop(string, *Context) bool        { return false }
func (b *Base) ChildCount() int                     { return 0 }
func (b *Base) Child(int) Component                 { return nil }

// Layout keeps the current bounds and reports their size.
func (b *Base) Layout(Rect) Vec2 {
	return b.bounds.Size()
}

// Walk visits c and its descendants depth-first, parents first. Returning
// false from fn skips that component's children.
func Walk(c Component, fn func(Component) bool) {
	if c == nil || !fn(c) {
		return
	}
	for i := 0; i < c.ChildCount(); i++ {
		Walk(c.Child(i), fn)
	}
}

// FindByID returns the first component in c's subtree with the given id,
// or nil. An empty id never matches.
func FindByID(c Component, id string) Component {
	if id == "" {
		return nil
	}
	var found Component
	Walk(c, func(n Component) bool {
		if found != nil {
			return false
		}
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}
