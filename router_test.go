package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hook runs fn before the wrapped box records the event.
type hook struct {
	*placed
	fn func(e Event, ctx *Context)
}

func (h *hook) OnEvent(e Event, ctx *Context) bool {
	if h.fn != nil {
		h.fn(e, ctx)
	}
	return h.placed.OnEvent(e, ctx)
}

func overlayBox(id string, at Rect, consume bool) *placed {
	p := place(newBox(id, 0, 0), at)
	p.consume = consume
	p.Layout(Rect{})
	return p
}

func down(x, y float32) Event {
	return MouseDown(Vec2{X: x, Y: y}, MouseButtonLeft, 0)
}

func TestRouter_ChildBeforeParent(t *testing.T) {
	child := newBox("child", 50, 50)
	root := newBox("root", 800, 600).add(child)
	r, _ := newTestRouter(root, 800, 600)

	child.consume = true
	assert.True(t, r.Dispatch(down(10, 10)))
	assert.Equal(t, 1, child.count(EventMouseDown))
	assert.Equal(t, 0, root.count(EventMouseDown))

	child.consume = false
	root.consume = true
	assert.True(t, r.Dispatch(down(10, 10)))
	assert.Equal(t, 2, child.count(EventMouseDown))
	assert.Equal(t, 1, root.count(EventMouseDown), "unconsumed events bubble to the parent")
}

func TestRouter_HitExcludesMaxEdge(t *testing.T) {
	root := newBox("root", 100, 100)
	root.consume = true
	r, _ := newTestRouter(root, 800, 600)

	assert.True(t, r.Dispatch(down(99, 50)))
	assert.False(t, r.Dispatch(down(100, 50)))
	assert.Equal(t, 1, root.count(EventMouseDown))
}

func TestRouter_ChildClippedToParent(t *testing.T) {
	child := place(newBox("child", 0, 0), Rect{X: 80, Y: 80, W: 100, H: 100})
	child.consume = true
	root := place(newBox("root", 0, 0), Rect{W: 100, H: 100})
	root.add(child)
	r, _ := newTestRouter(root, 800, 600)

	assert.True(t, r.Dispatch(down(90, 90)))
	assert.False(t, r.Dispatch(down(150, 150)), "outside the parent the child is invisible")
	assert.Equal(t, 1, child.count(EventMouseDown))
}

func TestRouter_ViewportClipsHits(t *testing.T) {
	root := newBox("root", 2000, 2000)
	root.consume = true
	r, _ := newTestRouter(root, 800, 600)

	assert.False(t, r.Dispatch(down(900, 100)))
}

func TestRouter_OverlayHasPriority(t *testing.T) {
	root := newBox("root", 800, 600)
	root.consume = true
	r, ctx := newTestRouter(root, 800, 600)
	popup := overlayBox("popup", Rect{X: 100, Y: 100, W: 50, H: 50}, true)
	ctx.PushOverlay(popup)

	assert.True(t, r.Dispatch(down(110, 110)))
	assert.Equal(t, 1, popup.count(EventMouseDown))
	assert.Equal(t, 0, root.count(EventMouseDown))

	assert.True(t, r.Dispatch(down(10, 10)))
	assert.Equal(t, 1, root.count(EventMouseDown), "outside the overlay the tree still gets events")
}

func TestRouter_TopOverlayFirst(t *testing.T) {
	r, ctx := newTestRouter(nil, 800, 600)
	lower := overlayBox("lower", Rect{W: 100, H: 100}, true)
	upper := overlayBox("upper", Rect{W: 100, H: 100}, true)
	ctx.PushOverlay(lower)
	ctx.PushOverlay(upper)

	r.Dispatch(down(50, 50))
	assert.Equal(t, 1, upper.count(EventMouseDown))
	assert.Equal(t, 0, lower.count(EventMouseDown))
}

func TestRouter_ModalBlocksEverythingBeneath(t *testing.T) {
	root := newBox("root", 800, 600)
	root.consume = true
	root.focusable = true
	r, ctx := newTestRouter(root, 800, 600)
	dialog := overlayBox("dialog", Rect{X: 300, Y: 200, W: 200, H: 100}, false)
	ctx.PushOverlay(dialog, Modal())

	assert.True(t, r.Dispatch(down(10, 10)))
	assert.True(t, r.Dispatch(MouseWheel(Vec2{X: 10, Y: 10}, Vec2{Y: 1}, 0)))
	assert.Empty(t, root.kinds())

	ctx.RequestFocus("root")
	r.Dispatch(TickEvent())
	assert.True(t, r.Dispatch(KeyPress(KeyEnter, 0)), "a modal with no focused target swallows keys")
	assert.Equal(t, 0, root.count(EventKeyDown))
	assert.Nil(t, r.HitTest(Vec2{X: 10, Y: 10}))
}

func TestRouter_DismissOnOutsideClick(t *testing.T) {
	root := newBox("root", 800, 600)
	root.consume = true
	r, ctx := newTestRouter(root, 800, 600)
	menu := overlayBox("menu", Rect{X: 100, Y: 100, W: 50, H: 50}, true)
	ctx.PushOverlay(menu, DismissOnOutsideClick())

	assert.True(t, r.Dispatch(down(110, 110)))
	assert.Equal(t, 1, ctx.OverlayCount(), "inside press keeps it open")

	assert.True(t, r.Dispatch(down(500, 500)))
	assert.Equal(t, 0, ctx.OverlayCount())
	assert.Equal(t, 0, root.count(EventMouseDown), "the dismissing press is consumed")
}

func TestRouter_OverlayRemovalDeferredDuringDispatch(t *testing.T) {
	r, ctx := newTestRouter(nil, 800, 600)
	lower := overlayBox("lower", Rect{W: 100, H: 100}, true)
	countDuring := -1
	upper := &hook{
		placed: overlayBox("upper", Rect{W: 100, H: 100}, false),
		fn: func(e Event, ctx *Context) {
			if e.Kind == EventMouseDown {
				ctx.CloseTopOverlay()
				countDuring = ctx.OverlayCount()
			}
		},
	}
	ctx.PushOverlay(lower)
	ctx.PushOverlay(upper)

	assert.True(t, r.Dispatch(down(50, 50)))
	assert.Equal(t, 2, countDuring)
	assert.Equal(t, 1, lower.count(EventMouseDown))
	require.Equal(t, 1, ctx.OverlayCount())
	assert.Equal(t, Component(lower), ctx.Overlays().Top().Component)
}

func TestRouter_EnterLeave(t *testing.T) {
	a, b := newBox("a", 100, 100), newBox("b", 100, 100)
	root := NewHStack()
	root.Add(a, b)
	r, _ := newTestRouter(root, 800, 600)

	r.Dispatch(MouseMove(Vec2{X: 50, Y: 50}, Vec2{}))
	r.Dispatch(MouseMove(Vec2{X: 60, Y: 50}, Vec2{}))
	r.Dispatch(MouseMove(Vec2{X: 150, Y: 50}, Vec2{}))

	assert.Equal(t, []EventKind{EventMouseEnter, EventMouseMove, EventMouseMove, EventMouseLeave}, a.kinds())
	assert.Equal(t, []EventKind{EventMouseEnter, EventMouseMove}, b.kinds())
	assert.Equal(t, Component(b), r.Hovered())
}

func TestRouter_KeyboardGoesToFocused(t *testing.T) {
	a, b := newBox("a", 100, 20), newBox("b", 100, 20)
	a.focusable, b.focusable = true, true
	b.consume = true
	root := NewVStack()
	root.Add(a, b)
	r, ctx := newTestRouter(root, 800, 600)

	assert.False(t, r.Dispatch(KeyPress(KeyEnter, 0)), "nothing focused")

	ctx.RequestFocus("b")
	r.Dispatch(TickEvent())
	assert.Equal(t, 1, b.count(EventFocusGained))

	assert.True(t, r.Dispatch(KeyPress(KeyEnter, 0)))
	assert.True(t, r.Dispatch(CharInput('x', 0)))
	assert.Equal(t, 1, b.count(EventKeyDown))
	assert.Equal(t, 1, b.count(EventCharInput))
	assert.Equal(t, 0, a.count(EventKeyDown))
}

func TestRouter_TabCyclesRegisteredComponents(t *testing.T) {
	a, b, c := newBox("a", 100, 20), newBox("b", 100, 20), newBox("c", 100, 20)
	a.focusable, b.focusable = true, true
	b.order = -1
	root := NewVStack()
	root.Add(a, b, c)
	r, ctx := newTestRouter(root, 800, 600)

	r.Tick()
	assert.Equal(t, []string{"b", "a"}, ctx.Focus().Registered())

	assert.True(t, r.Dispatch(KeyPress(KeyTab, 0)))
	assert.Equal(t, "b", ctx.FocusedID())
	assert.True(t, r.Dispatch(KeyRelease(KeyTab, 0)))
	assert.Equal(t, "b", ctx.FocusedID(), "key up does not move focus")

	r.Dispatch(KeyPress(KeyTab, 0))
	assert.Equal(t, "a", ctx.FocusedID())
	assert.Equal(t, 1, b.count(EventFocusLost))
	assert.Equal(t, 1, a.count(EventFocusGained))

	r.Dispatch(KeyPress(KeyTab, ModShift))
	assert.Equal(t, "b", ctx.FocusedID())
	assert.Equal(t, 0, a.count(EventKeyDown), "Tab never reaches the focused component")
}

func TestRouter_TabConsumedWithNothingRegistered(t *testing.T) {
	r, ctx := newTestRouter(newBox("root", 10, 10), 800, 600)
	assert.True(t, r.Dispatch(KeyPress(KeyTab, 0)))
	assert.Equal(t, "", ctx.FocusedID())
}

func TestRouter_UnconsumedPressBlurs(t *testing.T) {
	a := newBox("a", 100, 100)
	a.focusable = true
	r, ctx := newTestRouter(a, 800, 600)
	ctx.RequestFocus("a")
	r.Dispatch(TickEvent())

	assert.False(t, r.Dispatch(down(500, 500)))
	assert.Equal(t, "", ctx.FocusedID())
	assert.Equal(t, 1, a.count(EventFocusLost))

	ctx.RequestFocus("a")
	a.consume = true
	r.Dispatch(down(10, 10))
	assert.Equal(t, "a", ctx.FocusedID(), "a consumed press keeps focus")
}

func TestRouter_StaleIDIgnored(t *testing.T) {
	r, ctx := newTestRouter(newBox("root", 10, 10), 800, 600)
	ctx.RequestFocus("ghost")

	assert.NotPanics(t, func() {
		r.Dispatch(TickEvent())
		assert.False(t, r.Dispatch(KeyPress(KeyEnter, 0)))
		assert.False(t, r.Dispatch(Event{Kind: EventFocusLost, ID: "ghost"}))
	})
}

func TestRouter_OverlayRootSeesKeysFirst(t *testing.T) {
	r, ctx := newTestRouter(newBox("root", 10, 10), 800, 600)
	item := overlayBox("item", Rect{X: 100, Y: 100, W: 50, H: 20}, true)
	item.focusable = true
	menu := overlayBox("menu", Rect{X: 100, Y: 100, W: 50, H: 100}, true)
	menu.add(item)
	ctx.PushOverlay(menu)
	ctx.RequestFocus("item")
	r.Dispatch(TickEvent())

	assert.True(t, r.Dispatch(KeyPress(KeyDown, 0)))
	assert.Equal(t, 1, menu.count(EventKeyDown))
	assert.Equal(t, 0, item.count(EventKeyDown))

	menu.consume = false
	assert.True(t, r.Dispatch(KeyPress(KeyDown, 0)))
	assert.Equal(t, 1, item.count(EventKeyDown))
}

func TestRouter_TickReachesOverlays(t *testing.T) {
	root := newBox("root", 10, 10)
	r, ctx := newTestRouter(root, 800, 600)
	popup := overlayBox("popup", Rect{W: 10, H: 10}, false)
	popup.focusable = true
	ctx.PushOverlay(popup)

	r.Tick()
	assert.Equal(t, 1, root.count(EventTick))
	assert.Equal(t, 1, popup.count(EventTick))
	assert.Equal(t, []string{"popup"}, ctx.Focus().Registered())
}

func up(x, y float32) Event {
	return MouseUp(Vec2{X: x, Y: y}, MouseButtonLeft, 0)
}

func TestRouter_DismissingPressDoesNotClickBeneath(t *testing.T) {
	root := newBox("root", 800, 600)
	root.consume = true
	r, ctx := newTestRouter(root, 800, 600)
	ctx.PushOverlay(overlayBox("menu", Rect{X: 100, Y: 100, W: 50, H: 50}, true), DismissOnOutsideClick())

	assert.True(t, r.Dispatch(down(500, 500)))
	assert.True(t, r.Dispatch(up(500, 500)), "the release of a dismissing press is consumed")
	assert.Equal(t, 0, ctx.OverlayCount())
	assert.Equal(t, 0, root.count(EventMouseDown))
	assert.Equal(t, 0, root.count(EventMouseUp))
	assert.Equal(t, 0, root.count(EventClick))

	r.Dispatch(down(500, 500))
	r.Dispatch(up(500, 500))
	assert.Equal(t, 1, root.count(EventClick), "the next click reaches the tree")
}

func TestRouter_ModalMissSwallowsRelease(t *testing.T) {
	root := newBox("root", 800, 600)
	root.consume = true
	r, ctx := newTestRouter(root, 800, 600)
	id := ctx.PushOverlay(overlayBox("dialog", Rect{X: 300, Y: 200, W: 200, H: 100}, false), Modal())

	r.Dispatch(down(10, 10))
	ctx.DismissOverlay(id)
	r.Dispatch(up(10, 10))
	assert.Equal(t, 0, root.count(EventMouseUp))
	assert.Equal(t, 0, root.count(EventClick))
}

func TestRouter_OverlayPressStillClicks(t *testing.T) {
	r, ctx := newTestRouter(newBox("root", 800, 600), 800, 600)
	popup := overlayBox("popup", Rect{X: 100, Y: 100, W: 50, H: 50}, true)
	ctx.PushOverlay(popup, DismissOnOutsideClick())

	r.Dispatch(down(110, 110))
	r.Dispatch(up(110, 110))
	assert.Equal(t, 1, popup.count(EventClick))
}

func TestRouter_DismissedOverlayGetsNoLeave(t *testing.T) {
	root := newBox("root", 800, 600)
	r, ctx := newTestRouter(root, 800, 600)
	popup := overlayBox("popup", Rect{X: 100, Y: 100, W: 50, H: 50}, false)
	id := ctx.PushOverlay(popup)

	r.Dispatch(MouseMove(Vec2{X: 110, Y: 110}, Vec2{}))
	require.Equal(t, Component(popup), r.Hovered())

	ctx.DismissOverlay(id)
	assert.Nil(t, r.Hovered())
	popup.events = nil
	r.Dispatch(MouseMove(Vec2{X: 10, Y: 10}, Vec2{}))
	assert.Empty(t, popup.events)
	assert.Equal(t, 1, root.count(EventMouseEnter))
}

func TestRouter_ReplacedTreeGetsNoLeave(t *testing.T) {
	var built []*box
	f := NewFactory()
	f.Register("box", func(node ComponentNode, _ []Component) (Component, error) {
		b := newBox(node.ID, 100, 100)
		built = append(built, b)
		return b, nil
	})
	root, err := NewDynamicRoot(f, ComponentNode{Type: "box", ID: "old"})
	require.NoError(t, err)
	r, ctx := newTestRouter(root, 800, 600)

	r.Dispatch(MouseMove(Vec2{X: 50, Y: 50}, Vec2{}))
	require.Equal(t, Component(built[0]), r.Hovered())

	require.NoError(t, root.Replace(ctx, ComponentNode{Type: "box", ID: "new"}))
	root.Layout(Rect{W: 800, H: 600})
	r.Tick()
	assert.Nil(t, r.Hovered())

	r.Dispatch(MouseMove(Vec2{X: 60, Y: 50}, Vec2{}))
	assert.Equal(t, 0, built[0].count(EventMouseLeave))
	assert.Equal(t, 1, built[1].count(EventMouseEnter))
}

func TestRouter_ModalLimitsTabCycle(t *testing.T) {
	behind := newBox("behind", 800, 600)
	behind.focusable = true
	r, ctx := newTestRouter(behind, 800, 600)
	ok := overlayBox("ok", Rect{X: 310, Y: 210, W: 50, H: 20}, false)
	ok.focusable = true
	dialog := overlayBox("dialog", Rect{X: 300, Y: 200, W: 200, H: 100}, false)
	dialog.add(ok)
	id := ctx.PushOverlay(dialog, Modal())

	r.Tick()
	assert.Equal(t, []string{"ok"}, ctx.Focus().Registered())
	r.Dispatch(KeyPress(KeyTab, 0))
	r.Dispatch(KeyPress(KeyTab, 0))
	assert.Equal(t, "ok", ctx.FocusedID(), "focus stays inside the dialog")

	ctx.DismissOverlay(id)
	r.Tick()
	assert.Equal(t, []string{"behind"}, ctx.Focus().Registered())
}
