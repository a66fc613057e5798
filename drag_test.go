package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragController_Threshold(t *testing.T) {
	d := NewDragController(0)
	assert.Equal(t, DefaultDragThreshold, d.Threshold())

	assert.False(t, d.ShouldStart(Vec2{X: 100}), "not armed")

	d.Arm("card", Vec2{X: 10, Y: 10})
	id, ok := d.Armed()
	require.True(t, ok)
	assert.Equal(t, "card", id)
	assert.False(t, d.ShouldStart(Vec2{X: 13, Y: 14}), "exactly on the threshold")
	assert.True(t, d.ShouldStart(Vec2{X: 16, Y: 10}))

	d.Disarm()
	assert.False(t, d.ShouldStart(Vec2{X: 100}))
}

func TestDragController_LifecycleReturnsToIdle(t *testing.T) {
	d := NewDragController(3)
	d.Arm("card", Vec2{X: 1, Y: 1})
	d.Begin("CARD:1", Vec2{X: 10, Y: 1})

	st := d.State()
	require.True(t, st.Active)
	assert.Equal(t, "card", st.SourceID)
	assert.Equal(t, Vec2{X: 1, Y: 1}, st.Start)
	id, armed := d.Armed()
	assert.False(t, armed)
	assert.Equal(t, "", id, "beginning consumes the armed source")

	d.Arm("other", Vec2{})
	id, _ = d.Armed()
	assert.Equal(t, "", id, "arming is ignored while dragging")

	d.Move(Vec2{X: 50, Y: 50})
	d.SetOverTarget("zone")
	d.SetOverTarget("zone")
	d.Observe("card")

	observers, target, final := d.Finish()
	assert.Equal(t, []string{"card", "zone"}, observers)
	assert.Equal(t, "zone", target)
	assert.Equal(t, Vec2{X: 50, Y: 50}, final.Current)
	assert.False(t, d.IsActive())
	assert.Equal(t, DragState{}, d.State())
}

func TestDragController_LeavingTargetClearsIt(t *testing.T) {
	d := NewDragController(0)
	d.Arm("card", Vec2{})
	d.Begin("CARD:1", Vec2{X: 10})
	d.SetOverTarget("zone")
	d.SetOverTarget("")

	observers, target, _ := d.Finish()
	assert.Equal(t, "", target)
	assert.Equal(t, []string{"card", "zone"}, observers, "the zone still gets its DragEnd")
}

func TestDragController_CancelHasNoTarget(t *testing.T) {
	d := NewDragController(0)
	d.Arm("card", Vec2{})
	d.Begin("CARD:1", Vec2{X: 10})
	d.SetOverTarget("zone")

	observers, st := d.Cancel()
	assert.Equal(t, []string{"card", "zone"}, observers)
	assert.Equal(t, "CARD:1", st.Payload)
	assert.False(t, d.IsActive())
	assert.Equal(t, "", d.OverTarget())
}

// spy records every event delivered to the wrapped component.
type spy struct {
	Component
	events []Event
}

func (s *spy) OnEvent(e Event, ctx *Context) bool {
	s.events = append(s.events, e)
	return s.Component.OnEvent(e, ctx)
}

func (s *spy) count(kind EventKind) int {
	n := 0
	for _, e := range s.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (s *spy) last(kind EventKind) (Event, bool) {
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Kind == kind {
			return s.events[i], true
		}
	}
	return Event{}, false
}

type board struct {
	router *Router
	ctx    *Context
	card   *Card
	zone   *DropZone
	source *spy
	target *spy
}

// newBoard lays a card at (0,0,160,48) and a drop zone at (260,0,200,120).
func newBoard(accept string) *board {
	b := &board{
		card: NewCard("card-7", "Seven", "CARD:7"),
		zone: NewDropZone("done", "Done", accept),
	}
	b.source = &spy{Component: b.card}
	b.target = &spy{Component: b.zone}
	root := NewHStack(Gap(100))
	root.Add(b.source, b.target)
	b.router, b.ctx = newTestRouter(root, 800, 600)
	return b
}

func (b *board) press(x, y float32) bool {
	return b.router.Dispatch(MouseDown(Vec2{X: x, Y: y}, MouseButtonLeft, 0))
}

func (b *board) move(x, y float32) bool {
	return b.router.Dispatch(MouseMove(Vec2{X: x, Y: y}, Vec2{}))
}

func (b *board) release(x, y float32) bool {
	return b.router.Dispatch(MouseUp(Vec2{X: x, Y: y}, MouseButtonLeft, 0))
}

func TestRouter_DragCardOntoZone(t *testing.T) {
	b := newBoard("CARD:")

	assert.True(t, b.press(20, 20))
	b.move(22, 20)
	assert.Equal(t, RouterIdle, b.router.State(), "below threshold")

	b.move(300, 50)
	require.Equal(t, RouterDragging, b.router.State())
	assert.True(t, b.card.Dragging())
	assert.True(t, b.zone.Over())
	assert.Equal(t, "CARD:7", b.ctx.DragPayload())
	assert.Equal(t, CursorGrabbing, b.ctx.Cursor())

	start, ok := b.source.last(EventDragStart)
	require.True(t, ok)
	assert.Equal(t, Vec2{X: 20, Y: 20}, start.Position)

	assert.True(t, b.release(300, 50))

	assert.Equal(t, RouterIdle, b.router.State())
	assert.Equal(t, []string{"CARD:7"}, b.zone.Dropped())
	assert.Equal(t, 1, b.source.count(EventDragEnd))
	assert.Equal(t, 1, b.target.count(EventDragEnd))
	end, _ := b.source.last(EventDragEnd)
	assert.True(t, end.Success)
	assert.Equal(t, 0, b.source.count(EventClick), "a drag release is not a click")
	assert.False(t, b.card.Dragging())
	assert.False(t, b.zone.Over())
}

func TestRouter_DropRejectedByPrefix(t *testing.T) {
	b := newBoard("TASK:")

	b.press(20, 20)
	b.move(300, 50)
	assert.False(t, b.zone.Over())
	b.release(300, 50)

	assert.Empty(t, b.zone.Dropped())
	end, ok := b.target.last(EventDragEnd)
	require.True(t, ok)
	assert.False(t, end.Success)
	assert.Equal(t, 1, b.source.count(EventDragEnd))
	assert.False(t, b.ctx.IsDragging())
}

func TestRouter_DropOutsideAnyTarget(t *testing.T) {
	b := newBoard("CARD:")

	b.press(20, 20)
	b.move(300, 50)
	b.move(700, 500)
	b.release(700, 500)

	assert.Empty(t, b.zone.Dropped())
	assert.Equal(t, 1, b.target.count(EventDragEnd))
	end, _ := b.source.last(EventDragEnd)
	assert.False(t, end.Success)
}

func TestRouter_EscapeCancelsDrag(t *testing.T) {
	b := newBoard("CARD:")

	b.press(20, 20)
	b.move(300, 50)
	require.True(t, b.ctx.IsDragging())

	assert.True(t, b.router.Dispatch(KeyPress(KeyEscape, 0)))
	assert.False(t, b.ctx.IsDragging())
	assert.Equal(t, 1, b.source.count(EventDragEnd))
	assert.Equal(t, 1, b.target.count(EventDragEnd))

	b.release(300, 50)
	assert.Empty(t, b.zone.Dropped())
	assert.Equal(t, 1, b.source.count(EventDragEnd), "release after cancel sends nothing more")
	assert.Equal(t, 0, b.source.count(EventClick))
}

func TestRouter_ShortPressIsClick(t *testing.T) {
	b := newBoard("CARD:")

	b.press(20, 20)
	b.move(22, 21)
	b.release(22, 21)

	assert.Equal(t, 0, b.source.count(EventDragStart))
	assert.Equal(t, 1, b.source.count(EventClick))
	_, armed := b.ctx.Drag().Armed()
	assert.False(t, armed)
}

func TestRouter_RightButtonDoesNotDrag(t *testing.T) {
	b := newBoard("CARD:")

	b.router.Dispatch(MouseDown(Vec2{X: 20, Y: 20}, MouseButtonRight, 0))
	b.move(300, 50)
	assert.False(t, b.ctx.IsDragging())
	assert.Equal(t, 0, b.source.count(EventDragStart))
}

func TestRouter_EmptyPayloadRefusesDrag(t *testing.T) {
	b := newBoard("CARD:")
	b.card.Payload = ""

	b.press(20, 20)
	b.move(300, 50)
	assert.False(t, b.ctx.IsDragging())
	_, armed := b.ctx.Drag().Armed()
	assert.False(t, armed)
}
