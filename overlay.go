package ui

// OverlayID is the handle returned by OverlayQueue.Push. Zero is never issued.
type OverlayID int

// Overlay is a component tree that renders above the main tree and gets
// first chance at every event.
type Overlay struct {
	ID        OverlayID
	Component Component

	// Modal overlays swallow every event that reaches them, hit or not.
	Modal bool

	// DismissOnOutsideClick removes the overlay when a MouseDown lands
	// outside its bounds. The press is consumed.
	DismissOnOutsideClick bool
}

// OverlayOption configures an overlay at push time.
type OverlayOption func(*Overlay)

// Modal makes the overlay block all input to everything beneath it.
func Modal() OverlayOption {
	return func(o *Overlay) { o.Modal = true }
}

// DismissOnOutsideClick closes the overlay on a press outside its bounds.
func DismissOnOutsideClick() OverlayOption {
	return func(o *Overlay) { o.DismissOnOutsideClick = true }
}

// OverlayQueue holds the open overlays in insertion order. The last entry is
// the topmost.
//
// Removal requested while an event is being dispatched is deferred until the
// dispatch ends, so routing never iterates over a changing queue.
type OverlayQueue struct {
	entries     []*Overlay
	nextID      OverlayID
	dispatching int
	pending     []OverlayID
}

// NewOverlayQueue creates an empty queue.
func NewOverlayQueue() *OverlayQueue {
	return &OverlayQueue{}
}

// Push adds c on top of the queue and returns its handle.
func (q *OverlayQueue) Push(c Component, opts ...OverlayOption) OverlayID {
	q.nextID++
	o := &Overlay{ID: q.nextID, Component: c}
	for _, opt := range opts {
		opt(o)
	}
	q.entries = append(q.entries, o)
	Logger().Debug("overlay pushed", "id", o.ID, "component", c.ID(), "modal", o.Modal)
	return o.ID
}

// Remove closes the overlay with the given handle and disposes its
// component. Unknown handles are ignored.
func (q *OverlayQueue) Remove(id OverlayID) {
	if q.dispatching > 0 {
		q.pending = append(q.pending, id)
		return
	}
	for i, o := range q.entries {
		if o.ID == id {
			q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
			q.dispose(o)
			return
		}
	}
}

// Pop removes the topmost overlay. It reports false when the queue is empty.
func (q *OverlayQueue) Pop() bool {
	top := q.Top()
	if top == nil {
		return false
	}
	q.Remove(top.ID)
	return true
}

// Clear removes and disposes every overlay.
func (q *OverlayQueue) Clear() {
	entries := q.entries
	q.entries = nil
	q.pending = nil
	for _, o := range entries {
		q.dispose(o)
	}
}

// Len returns the number of open overlays.
func (q *OverlayQueue) Len() int {
	return len(q.entries)
}

// Top returns the topmost overlay, or nil.
func (q *OverlayQueue) Top() *Overlay {
	if n := len(q.entries); n > 0 {
		return q.entries[n-1]
	}
	return nil
}

// Get returns the overlay with the given handle, or nil.
func (q *OverlayQueue) Get(id OverlayID) *Overlay {
	for _, o := range q.entries {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Each visits overlays bottom to top (render order).
func (q *OverlayQueue) Each(fn func(*Overlay)) {
	for _, o := range q.entries {
		fn(o)
	}
}

// EachReverse visits overlays top to bottom (dispatch order). Returning false
// stops the iteration.
func (q *OverlayQueue) EachReverse(fn func(*Overlay) bool) {
	entries := q.entries
	for i := len(entries) - 1; i >= 0; i-- {
		if !fn(entries[i]) {
			return
		}
	}
}

// beginDispatch defers removals until the matching endDispatch.
func (q *OverlayQueue) beginDispatch() {
	q.dispatching++
}

// endDispatch applies removals requested during dispatch.
func (q *OverlayQueue) endDispatch() {
	if q.dispatching > 0 {
		q.dispatching--
	}
	if q.dispatching > 0 || len(q.pending) == 0 {
		return
	}
	pending := q.pending
	q.pending = nil
	for _, id := range pending {
		q.Remove(id)
	}
}

func (q *OverlayQueue) dispose(o *Overlay) {
	Logger().Debug("overlay removed", "id", o.ID)
	if d, ok := o.Component.(Disposer); ok {
		d.Dispose()
	}
}
