package ui

// DefaultDragThreshold is how far (in logical pixels) the pointer must move
// with the button held before a press on a draggable becomes a drag.
const DefaultDragThreshold float32 = 5

// DragState is a snapshot of an in-flight drag.
type DragState struct {
	Active   bool   // Dragging (payload accepted from the source)
	Payload  string // Value returned by OnDragStart
	SourceID string // Id of the component the drag started on
	Start    Vec2   // Pointer position of the originating MouseDown
	Current  Vec2   // Latest pointer position
}

// Reset clears the drag state.
func (d *DragState) Reset() {
	*d = DragState{}
}

// DragController is the drag finite state machine. It is Idle until a
// source accepts a drag, Dragging until release or cancel, and always returns
// to Idle on Finish.
//
// A MouseDown on a draggable only arms the controller; the drag begins once
// the pointer travels past the threshold and the source returns a payload.
type DragController struct {
	state     DragState
	threshold float32

	armed     bool
	armedID   string
	armedAt   Vec2
	overID    string
	observers []string
}

// NewDragController creates an idle controller. A non-positive threshold
// uses DefaultDragThreshold.
func NewDragController(threshold float32) *DragController {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &DragController{threshold: threshold}
}

// State returns a copy of the current drag state.
func (d *DragController) State() DragState {
	return d.state
}

// IsActive reports whether a drag is in flight.
func (d *DragController) IsActive() bool {
	return d.state.Active
}

// Threshold returns the activation distance.
func (d *DragController) Threshold() float32 {
	return d.threshold
}

// Arm records a press on a draggable source. It has no effect while a drag
// is already active.
func (d *DragController) Arm(sourceID string, pos Vec2) {
	if d.state.Active || sourceID == "" {
		return
	}
	d.armed = true
	d.armedID = sourceID
	d.armedAt = pos
}

// Armed returns the armed source id, if any.
func (d *DragController) Armed() (string, bool) {
	return d.armedID, d.armed
}

// Disarm forgets an armed source without starting a drag.
func (d *DragController) Disarm() {
	d.armed = false
	d.armedID = ""
}

// ShouldStart reports whether the pointer at pos has moved far enough from
// the armed position to begin dragging.
func (d *DragController) ShouldStart(pos Vec2) bool {
	if !d.armed || d.state.Active {
		return false
	}
	return pos.Sub(d.armedAt).Len() > d.threshold
}

// Begin transitions Idle -> Dragging with the source's payload.
func (d *DragController) Begin(payload string, pos Vec2) {
	d.state = DragState{
		Active:   true,
		Payload:  payload,
		SourceID: d.armedID,
		Start:    d.armedAt,
		Current:  pos,
	}
	d.Disarm()
	d.overID = ""
	d.observers = d.observers[:0]
	d.Observe(d.state.SourceID)
	Logger().Debug("drag started", "source", d.state.SourceID, "payload", payload)
}

// Move updates the pointer position of an active drag.
func (d *DragController) Move(pos Vec2) {
	if d.state.Active {
		d.state.Current = pos
	}
}

// Observe records that id has seen DragStart or DragOver, so it receives
// exactly one DragEnd. Duplicates are ignored.
func (d *DragController) Observe(id string) {
	if id == "" {
		return
	}
	for _, o := range d.observers {
		if o == id {
			return
		}
	}
	d.observers = append(d.observers, id)
}

// SetOverTarget records the drop target currently under the pointer.
// An empty id means the pointer left every target, so a release there drops
// nothing.
func (d *DragController) SetOverTarget(id string) {
	d.overID = id
	d.Observe(id)
}

// OverTarget returns the last drop target the drag passed over.
func (d *DragController) OverTarget() string {
	return d.overID
}

// Finish ends the drag and returns the observers to notify and the drop
// target to offer the payload to. The controller is Idle afterwards,
// whatever the outcome of the drop.
func (d *DragController) Finish() (observers []string, target string, st DragState) {
	observers = append([]string(nil), d.observers...)
	target = d.overID
	st = d.state
	d.state.Reset()
	d.observers = d.observers[:0]
	d.overID = ""
	d.Disarm()
	Logger().Debug("drag finished", "source", st.SourceID, "target", target)
	return observers, target, st
}

// Cancel aborts the drag without a drop. The observers are returned so the
// caller can still send each of them a failed DragEnd.
func (d *DragController) Cancel() (observers []string, st DragState) {
	d.overID = ""
	observers, _, st = d.Finish()
	return observers, st
}
