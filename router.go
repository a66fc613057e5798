package ui

// RouterState is the router's top-level mode.
type RouterState uint8

const (
	RouterIdle RouterState = iota
	RouterDragging
)

func (s RouterState) String() string {
	if s == RouterDragging {
		return "dragging"
	}
	return "idle"
}

// maxFocusFlush bounds how many rounds of focus events one dispatch may
// trigger, in case focus handlers keep moving focus.
const maxFocusFlush = 8

// Router delivers semantic events to the component tree and the overlay
// queue. Overlays are consulted first, top to bottom; pointer events are then
// hit-tested against the tree and keyboard events go to the focused id.
//
// Routing never fails: every method reports only whether the event was
// consumed.
type Router struct {
	ctx      *Context
	root     Component
	viewport Rect
	hovered  Component
	pressed  [MouseButtonCount]bool
	// swallowed marks buttons whose press an overlay took without any
	// component handling it; the matching release is dropped too.
	swallowed [MouseButtonCount]bool
}

// NewRouter creates a router that threads ctx through every handler.
func NewRouter(ctx *Context) *Router {
	return &Router{ctx: ctx, viewport: infiniteRect}
}

// SetViewport sets the root clip for hit-testing. An empty rect removes it.
func (r *Router) SetViewport(v Rect) {
	if v.IsEmpty() {
		v = infiniteRect
	}
	r.viewport = v
}

// SetRoot replaces the main tree. Hover state is dropped.
func (r *Router) SetRoot(root Component) {
	r.root = root
	r.hovered = nil
}

// Root returns the main tree.
func (r *Router) Root() Component {
	return r.root
}

// Context returns the context threaded through handlers.
func (r *Router) Context() *Context {
	return r.ctx
}

// Hovered returns the component under the pointer after the last move, or
// nil once that component has left the tree.
func (r *Router) Hovered() Component {
	r.dropDetachedHover()
	return r.hovered
}

func (r *Router) dropDetachedHover() {
	if r.hovered != nil && !r.attached(r.hovered) {
		r.hovered = nil
	}
}

// attached reports whether c is still in the main tree or an overlay.
func (r *Router) attached(c Component) bool {
	found := false
	r.eachRoot(func(root Component) {
		if found {
			return
		}
		Walk(root, func(n Component) bool {
			if n == c {
				found = true
			}
			return !found
		})
	})
	return found
}

// State reports whether a drag is in flight.
func (r *Router) State() RouterState {
	if r.ctx.drag.IsActive() {
		return RouterDragging
	}
	return RouterIdle
}

// Dispatch routes e and reports whether a component consumed it.
// Queued focus changes are delivered before it returns.
func (r *Router) Dispatch(e Event) bool {
	q := r.ctx.overlays
	q.beginDispatch()
	consumed := r.dispatch(e)
	q.endDispatch()
	r.flushFocus()
	return consumed
}

func (r *Router) dispatch(e Event) bool {
	switch e.Kind {
	case EventTick:
		r.tick()
		return false
	case EventMouseMove:
		return r.mouseMove(e)
	case EventMouseDown:
		return r.mouseDown(e)
	case EventMouseUp:
		return r.mouseUp(e)
	case EventMouseWheel, EventClick:
		return r.pointer(e)
	case EventKeyDown, EventKeyUp:
		return r.key(e)
	case EventCharInput, EventImePreedit, EventImeCommit:
		return r.keyboard(e)
	case EventFocusGained, EventFocusLost:
		return r.deliver(e.ID, e)
	}
	return false
}

// Tick refreshes the tab registry and broadcasts a Tick to every component.
// While a modal overlay is open only it and the overlays above it register
// focusables.
func (r *Router) Tick() {
	r.Dispatch(TickEvent())
}

func (r *Router) tick() {
	r.dropDetachedHover()
	f := r.ctx.focus
	f.ClearRegistry()
	r.eachTabRoot(func(c Component) {
		Walk(c, func(n Component) bool {
			if n.IsFocusable() && n.ID() != "" {
				order := 0
				if o, ok := n.(TabOrderer); ok {
					order = o.TabOrder()
				}
				f.Register(n.ID(), order)
			}
			return true
		})
	})
	tick := TickEvent()
	r.eachRoot(func(c Component) {
		Walk(c, func(n Component) bool {
			n.OnEvent(tick, r.ctx)
			return true
		})
	})
}

// eachRoot visits the main tree first, then overlays in insertion order.
func (r *Router) eachRoot(fn func(Component)) {
	if r.root != nil {
		fn(r.root)
	}
	r.ctx.overlays.Each(func(o *Overlay) {
		fn(o.Component)
	})
}

// eachTabRoot visits the roots whose focusables take part in Tab cycling:
// everything from the topmost modal overlay upwards, or every root when no
// modal is open.
func (r *Router) eachTabRoot(fn func(Component)) {
	var modal *Overlay
	r.ctx.overlays.EachReverse(func(o *Overlay) bool {
		if o.Modal {
			modal = o
			return false
		}
		return true
	})
	if modal == nil {
		r.eachRoot(fn)
		return
	}
	above := false
	r.ctx.overlays.Each(func(o *Overlay) {
		if o == modal {
			above = true
		}
		if above {
			fn(o.Component)
		}
	})
}

func (r *Router) mouseMove(e Event) bool {
	r.updateHover(e.Position)

	d := r.ctx.drag
	if !d.IsActive() && d.ShouldStart(e.Position) {
		r.beginDrag(e.Position)
	}
	if d.IsActive() {
		r.dragMove(e.Position)
		return true
	}
	return r.pointer(e)
}

func (r *Router) mouseDown(e Event) bool {
	tracked := e.Button >= 0 && e.Button < MouseButtonCount
	if e.Button == MouseButtonLeft && !r.ctx.drag.IsActive() {
		if src := r.pick(e.Position, func(c Component) bool {
			return c.IsDraggable() && c.ID() != ""
		}); src != nil {
			r.ctx.drag.Arm(src.ID(), e.Position)
		}
	}
	consumed, swallowed := r.route(e)
	if swallowed {
		if e.Button == MouseButtonLeft {
			r.ctx.drag.Disarm()
		}
	} else if !consumed {
		r.ctx.focus.Blur()
	}
	if tracked {
		r.pressed[e.Button] = !swallowed
		r.swallowed[e.Button] = swallowed
	}
	return consumed
}

func (r *Router) mouseUp(e Event) bool {
	pressed := false
	if e.Button >= 0 && e.Button < MouseButtonCount {
		pressed = r.pressed[e.Button]
		r.pressed[e.Button] = false
		if r.swallowed[e.Button] {
			r.swallowed[e.Button] = false
			return true
		}
	}
	d := r.ctx.drag
	if d.IsActive() {
		if e.Button == MouseButtonLeft {
			d.Move(e.Position)
			r.drop()
		}
		return true
	}
	d.Disarm()

	consumed := r.pointer(e)
	if pressed {
		click := e
		click.Kind = EventClick
		if r.pointer(click) {
			consumed = true
		}
	}
	return consumed
}

// key handles Tab navigation and drag cancellation before normal keyboard
// routing.
func (r *Router) key(e Event) bool {
	if e.Key == KeyTab {
		if e.Kind == EventKeyDown {
			if e.Modifiers.Shift() {
				r.ctx.focus.FocusPrevious()
			} else {
				r.ctx.focus.FocusNext()
			}
		}
		return true
	}
	if e.Key == KeyEscape && e.Kind == EventKeyDown && r.ctx.drag.IsActive() {
		r.cancelDrag()
		return true
	}
	return r.keyboard(e)
}

// keyboard routes e to the focused id. An overlay holding the focused
// component gets it first, and its root may consume the key before the
// focused component sees it.
func (r *Router) keyboard(e Event) bool {
	focused := r.ctx.focus.Focused()
	decided, consumed := false, false
	r.ctx.overlays.EachReverse(func(o *Overlay) bool {
		root := o.Component
		target := FindByID(root, focused)
		if target == nil && !o.Modal {
			return true
		}
		decided = true
		if target != root && root.OnEvent(e, r.ctx) {
			consumed = true
			return false
		}
		if target != nil {
			consumed = target.OnEvent(e, r.ctx)
		} else {
			consumed = true
		}
		return false
	})
	if decided {
		return consumed
	}
	if target := FindByID(r.root, focused); target != nil {
		return target.OnEvent(e, r.ctx)
	}
	return false
}

// pointer routes a positional event: overlays top to bottom, then the tree.
func (r *Router) pointer(e Event) bool {
	consumed, _ := r.route(e)
	return consumed
}

// route is pointer that also reports whether an overlay swallowed e without
// a component handling it: a dismissing press or a miss under a modal.
func (r *Router) route(e Event) (consumed, swallowed bool) {
	decided := false
	q := r.ctx.overlays
	q.EachReverse(func(o *Overlay) bool {
		c := o.Component
		if e.Kind == EventMouseDown && o.DismissOnOutsideClick && !c.Bounds().Contains(e.Position) {
			q.Remove(o.ID)
			decided, swallowed = true, true
			return false
		}
		if r.hit(c, e, r.viewport) {
			decided = true
			return false
		}
		if o.Modal {
			decided, swallowed = true, true
			return false
		}
		return true
	})
	if decided {
		return true, swallowed
	}
	if r.root == nil {
		return false, false
	}
	return r.hit(r.root, e, r.viewport), false
}

// hit offers e to the deepest component under the pointer, then to its
// ancestors, until one consumes it. Candidates are limited to the
// intersection of their ancestors' bounds.
func (r *Router) hit(c Component, e Event, clip Rect) bool {
	vis := clip.Intersect(c.Bounds())
	if !vis.Contains(e.Position) {
		return false
	}
	for i := c.ChildCount() - 1; i >= 0; i-- {
		if child := c.Child(i); child != nil && r.hit(child, e, vis) {
			return true
		}
	}
	return c.OnEvent(e, r.ctx)
}

// pick returns the deepest component under pos matching pred, searching
// overlays first. A modal overlay hides the tree beneath it.
func (r *Router) pick(pos Vec2, pred func(Component) bool) Component {
	var found Component
	blocked := false
	r.ctx.overlays.EachReverse(func(o *Overlay) bool {
		found = deepest(o.Component, pos, r.viewport, pred)
		if found != nil || o.Modal {
			blocked = true
			return false
		}
		return true
	})
	if blocked || r.root == nil {
		return found
	}
	return deepest(r.root, pos, r.viewport, pred)
}

func deepest(c Component, pos Vec2, clip Rect, pred func(Component) bool) Component {
	vis := clip.Intersect(c.Bounds())
	if !vis.Contains(pos) {
		return nil
	}
	for i := c.ChildCount() - 1; i >= 0; i-- {
		if child := c.Child(i); child != nil {
			if found := deepest(child, pos, vis, pred); found != nil {
				return found
			}
		}
	}
	if pred(c) {
		return c
	}
	return nil
}

// HitTest returns the deepest component geometrically under pos, overlays
// included, without delivering anything.
func (r *Router) HitTest(pos Vec2) Component {
	return r.pick(pos, func(Component) bool { return true })
}

func (r *Router) updateHover(pos Vec2) {
	next := r.HitTest(pos)
	if next == r.hovered {
		return
	}
	prev := r.hovered
	r.hovered = next
	if prev != nil && r.attached(prev) {
		prev.OnEvent(Event{Kind: EventMouseLeave, Position: pos}, r.ctx)
	}
	if next != nil {
		next.OnEvent(Event{Kind: EventMouseEnter, Position: pos}, r.ctx)
	}
}

// lookup finds a component by id, overlays first.
func (r *Router) lookup(id string) Component {
	if id == "" {
		return nil
	}
	var found Component
	r.ctx.overlays.EachReverse(func(o *Overlay) bool {
		found = FindByID(o.Component, id)
		return found == nil
	})
	if found != nil || r.root == nil {
		return found
	}
	return FindByID(r.root, id)
}

// deliver sends e straight to the component with the given id. Stale ids
// are ignored.
func (r *Router) deliver(id string, e Event) bool {
	c := r.lookup(id)
	if c == nil {
		return false
	}
	return c.OnEvent(e, r.ctx)
}

func (r *Router) beginDrag(pos Vec2) {
	d := r.ctx.drag
	id, _ := d.Armed()
	src := r.lookup(id)
	if src == nil {
		d.Disarm()
		return
	}
	payload, ok := src.OnDragStart(r.ctx)
	if !ok {
		d.Disarm()
		return
	}
	d.Begin(payload, pos)
	st := d.State()
	src.OnEvent(Event{Kind: EventDragStart, Position: st.Start, ID: st.SourceID, Payload: payload}, r.ctx)
}

func (r *Router) dragMove(pos Vec2) {
	d := r.ctx.drag
	d.Move(pos)
	st := d.State()
	r.deliver(st.SourceID, Event{Kind: EventDragMove, Position: pos, ID: st.SourceID, Payload: st.Payload})

	target := r.pick(pos, func(c Component) bool {
		return c.IsDropTarget() && c.ID() != ""
	})
	if target == nil {
		d.SetOverTarget("")
		return
	}
	d.SetOverTarget(target.ID())
	target.OnEvent(Event{Kind: EventDragOver, Position: pos, ID: st.SourceID, Payload: st.Payload}, r.ctx)
}

func (r *Router) drop() {
	d := r.ctx.drag
	st := d.State()
	success := false
	if target := r.lookup(d.OverTarget()); target != nil && target.IsDropTarget() {
		success = target.OnDrop(st.Payload, r.ctx)
	}
	observers, _, _ := d.Finish()
	r.endDrag(observers, st, success)
}

func (r *Router) cancelDrag() {
	observers, st := r.ctx.drag.Cancel()
	r.pressed[MouseButtonLeft] = false
	r.swallowed[MouseButtonLeft] = false
	r.endDrag(observers, st, false)
}

func (r *Router) endDrag(observers []string, st DragState, success bool) {
	end := Event{Kind: EventDragEnd, Position: st.Current, ID: st.SourceID, Payload: st.Payload, Success: success}
	for _, id := range observers {
		r.deliver(id, end)
	}
}

// flushFocus delivers queued FocusLost/FocusGained events by id.
func (r *Router) flushFocus() {
	f := r.ctx.focus
	for i := 0; i < maxFocusFlush && f.HasPending(); i++ {
		q := r.ctx.overlays
		q.beginDispatch()
		for _, e := range f.DrainEvents() {
			r.deliver(e.ID, e)
		}
		q.endDispatch()
	}
}
