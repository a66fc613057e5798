package uitest

import (
	ui "github.com/go-theft-auto/ui"
)

// Recorder is a fixed-size component that logs every event it receives.
// Set the capability flags to exercise focus, drag and drop routing.
type Recorder struct {
	ui.Base
	Size      ui.Vec2
	Focusable bool
	Draggable bool
	Droppable bool
	Payload   string
	Order     int

	// Consume decides whether an event is consumed. Nil consumes nothing.
	Consume func(e ui.Event) bool

	// Accept is returned from OnDrop.
	Accept bool

	Events  []ui.Event
	Drops   []string
	Updates int

	children []ui.Component
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(id string, w, h float32) *Recorder {
	return &Recorder{Base: ui.NewBase(id), Size: ui.Vec2{X: w, Y: h}}
}

// ConsumeAll makes the recorder consume every event.
func ConsumeAll(ui.Event) bool { return true }

// Add appends children, which are laid out on top of each other at the
// recorder's origin.
func (r *Recorder) Add(children ...ui.Component) *Recorder {
	r.children = append(r.children, children...)
	return r
}

func (r *Recorder) ChildCount() int { return len(r.children) }

func (r *Recorder) Child(i int) ui.Component { return r.children[i] }

func (r *Recorder) IsFocusable() bool  { return r.Focusable }
func (r *Recorder) IsDraggable() bool  { return r.Draggable }
func (r *Recorder) IsDropTarget() bool { return r.Droppable }
func (r *Recorder) TabOrder() int      { return r.Order }

func (r *Recorder) OnDragStart(*ui.Context) (string, bool) {
	return r.Payload, r.Payload != ""
}

func (r *Recorder) OnDrop(payload string, _ *ui.Context) bool {
	r.Drops = append(r.Drops, payload)
	return r.Accept
}

func (r *Recorder) OnEvent(e ui.Event, _ *ui.Context) bool {
	r.Events = append(r.Events, e)
	return r.Consume != nil && r.Consume(e)
}

func (r *Recorder) Update(float32) { r.Updates++ }

// Layout keeps the recorder at the available origin with its fixed size.
func (r *Recorder) Layout(available ui.Rect) ui.Vec2 {
	r.SetBounds(ui.Rect{X: available.X, Y: available.Y, W: r.Size.X, H: r.Size.Y})
	for _, c := range r.children {
		c.Layout(r.Bounds())
	}
	return r.Size
}

// SetPosition moves the recorder and its children.
func (r *Recorder) SetPosition(x, y float32) {
	b := r.Bounds()
	for _, c := range r.children {
		cb := c.Bounds()
		c.SetPosition(cb.X+x-b.X, cb.Y+y-b.Y)
	}
	r.Base.SetPosition(x, y)
}

func (r *Recorder) Render(rd *ui.Renderer) {
	rd.FillRect(r.Bounds(), ui.ColorDarkGray)
}

// Kinds returns the kinds of the recorded events, skipping Ticks.
func (r *Recorder) Kinds() []ui.EventKind {
	var kinds []ui.EventKind
	for _, e := range r.Events {
		if e.Kind != ui.EventTick {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind ui.EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent event of kind.
func (r *Recorder) Last(kind ui.EventKind) (ui.Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind == kind {
			return r.Events[i], true
		}
	}
	return ui.Event{}, false
}

// Reset forgets recorded events and drops.
func (r *Recorder) Reset() {
	r.Events = nil
	r.Drops = nil
}
