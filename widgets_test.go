package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ui "github.com/go-theft-auto/ui"
	"github.com/go-theft-auto/ui/uitest"
)

func TestButton_ClickAndKeyboardActivation(t *testing.T) {
	clicks := 0
	save := ui.NewButton("save", "Save")
	save.OnClick = func(*ui.Context) { clicks++ }
	other := ui.NewButton("other", "Other")
	root := ui.NewVStack(ui.Gap(4))
	root.Add(save, other)
	h := uitest.New(t, root, 400, 300)

	c := h.Center("save")
	h.Click(c.X, c.Y)
	assert.Equal(t, 1, clicks)
	assert.Equal(t, "save", h.Context().FocusedID())
	assert.True(t, save.Focused())

	h.Key(ui.KeyEnter)
	h.Key(ui.KeySpace)
	assert.Equal(t, 3, clicks)

	h.Tab()
	assert.Equal(t, "other", h.Context().FocusedID())
	assert.False(t, save.Focused())
	h.Key(ui.KeyEnter)
	assert.Equal(t, 3, clicks)
}

func TestButton_DisabledIsSkipped(t *testing.T) {
	clicks := 0
	a := ui.NewButton("a", "A")
	b := ui.NewButton("b", "B")
	b.Disabled = true
	b.OnClick = func(*ui.Context) { clicks++ }
	root := ui.NewHStack()
	root.Add(a, b)
	h := uitest.New(t, root, 400, 300)

	h.Tab()
	h.Tab()
	assert.Equal(t, "a", h.Context().FocusedID())

	c := h.Center("b")
	h.Click(c.X, c.Y)
	assert.Equal(t, 0, clicks)
	assert.Equal(t, ui.StateDisabled, b.State())
}

func TestButton_HoverState(t *testing.T) {
	btn := ui.NewButton("b", "Hover me")
	h := uitest.New(t, btn, 400, 300)

	c := h.Center("b")
	h.Move(c.X, c.Y)
	assert.Equal(t, ui.StateHover, btn.State())
	assert.Equal(t, ui.CursorPointer, h.Context().Cursor())

	h.Move(390, 290)
	assert.Equal(t, ui.StateIdle, btn.State())
	assert.Equal(t, ui.CursorDefault, h.Context().Cursor())
}

type menuFixture struct {
	h      *uitest.Harness
	menu   *ui.Menu
	chosen []string
}

func newMenuFixture(t *testing.T) *menuFixture {
	f := &menuFixture{}
	pick := func(name string) func(*ui.Context) {
		return func(*ui.Context) { f.chosen = append(f.chosen, name) }
	}
	f.menu = ui.NewMenu("menu",
		ui.MenuItem{Label: "Open", Action: pick("open")},
		ui.MenuItem{Label: "Save", Action: pick("save")},
		ui.MenuItem{Label: "Locked", Disabled: true, Action: pick("locked")},
	)
	opener := ui.NewButton("opener", "Menu")
	opener.OnClick = func(ctx *ui.Context) { f.menu.Open(ctx, ui.Vec2{X: 20, Y: 100}) }
	f.h = uitest.New(t, opener, 800, 600)
	return f
}

func (f *menuFixture) open(t *testing.T) {
	c := f.h.Center("opener")
	f.h.Click(c.X, c.Y)
	require.True(t, f.menu.IsOpen())
}

// row returns the centre of item i.
func (f *menuFixture) row(i int) ui.Vec2 {
	b := f.menu.Bounds()
	rh := (b.H - 2*ui.SpaceXS) / float32(len(f.menu.Items))
	return ui.Vec2{X: b.X + b.W/2, Y: b.Y + ui.SpaceXS + rh*(float32(i)+0.5)}
}

func TestMenu_OpensAsFocusedOverlay(t *testing.T) {
	f := newMenuFixture(t)
	f.open(t)

	assert.Equal(t, 1, f.h.Context().OverlayCount())
	assert.Equal(t, "menu", f.h.Context().FocusedID())
	assert.Equal(t, ui.Vec2{X: 20, Y: 100}, f.menu.Bounds().Pos())

	var overlays []ui.Pass
	for _, b := range f.h.LastFrame().Batches {
		overlays = append(overlays, b.Pass)
	}
	assert.Contains(t, overlays, ui.PassOverlay)
}

func TestMenu_KeyboardChoosesItem(t *testing.T) {
	f := newMenuFixture(t)
	f.open(t)

	f.h.Key(ui.KeyDown)
	assert.Equal(t, 1, f.menu.Selected())
	f.h.Key(ui.KeyDown)
	f.h.Key(ui.KeyDown)
	assert.Equal(t, 2, f.menu.Selected(), "selection stops at the last item")
	f.h.Key(ui.KeyEnter)
	assert.Empty(t, f.chosen, "disabled items do nothing")
	assert.True(t, f.menu.IsOpen())

	f.h.Key(ui.KeyHome)
	f.h.Key(ui.KeyDown)
	f.h.Key(ui.KeyEnter)
	assert.Equal(t, []string{"save"}, f.chosen)
	assert.False(t, f.menu.IsOpen())
	assert.Equal(t, 0, f.h.Context().OverlayCount())
	assert.Equal(t, "opener", f.h.Context().FocusedID(), "focus returns to the opener")
}

func TestMenu_EscapeCloses(t *testing.T) {
	f := newMenuFixture(t)
	f.open(t)

	f.h.Key(ui.KeyEscape)
	assert.False(t, f.menu.IsOpen())
	assert.Empty(t, f.chosen)
	assert.Equal(t, "opener", f.h.Context().FocusedID())
}

func TestMenu_ClickOutsideCloses(t *testing.T) {
	f := newMenuFixture(t)
	f.open(t)

	f.h.Click(700, 500)
	assert.False(t, f.menu.IsOpen())
	assert.Empty(t, f.chosen)
}

func TestMenu_ClickItem(t *testing.T) {
	f := newMenuFixture(t)
	f.open(t)

	p := f.row(0)
	f.h.Click(p.X, p.Y)
	assert.Equal(t, []string{"open"}, f.chosen)
	assert.False(t, f.menu.IsOpen())
}

func TestMenu_ReopenAfterClose(t *testing.T) {
	f := newMenuFixture(t)
	f.open(t)
	f.h.Key(ui.KeyEscape)
	f.open(t)

	assert.Equal(t, 0, f.menu.Selected())
	assert.Equal(t, 1, f.h.Context().OverlayCount())
}

func TestCard_DragOntoDropZone(t *testing.T) {
	card := ui.NewCard("card-7", "Fix login", "CARD:7")
	zone := ui.NewDropZone("done", "Done", "CARD:")
	var dropped []string
	zone.OnDropped = func(payload string, _ *ui.Context) { dropped = append(dropped, payload) }
	root := ui.NewHStack(ui.Gap(100))
	root.Add(card, zone)
	h := uitest.New(t, root, 800, 600)

	h.Drag(h.Center("card-7"), h.Center("done"))

	assert.Equal(t, []string{"CARD:7"}, dropped)
	assert.Equal(t, []string{"CARD:7"}, zone.Dropped())
	assert.False(t, card.Dragging())
	assert.False(t, h.Context().IsDragging())
	assert.Equal(t, ui.CursorDefault, h.Context().Cursor())
}

func TestCard_GhostDrawnAboveTree(t *testing.T) {
	card := ui.NewCard("card-1", "Ghost", "CARD:1")
	root := ui.NewVStack()
	root.Add(card)
	h := uitest.New(t, root, 800, 600)

	c := h.Center("card-1")
	h.Press(c.X, c.Y)
	h.Move(c.X+40, c.Y+40)
	require.True(t, card.Dragging())

	var zs []int
	for _, b := range h.LastFrame().Batches {
		zs = append(zs, b.Z)
	}
	assert.Contains(t, zs, ui.GhostZ)

	h.Key(ui.KeyEscape)
	assert.False(t, card.Dragging())
	h.Release(c.X+40, c.Y+40)
	for _, b := range h.LastFrame().Batches {
		assert.NotEqual(t, ui.GhostZ, b.Z)
	}
}

func TestDropZone_HighlightClearsWhenPointerLeaves(t *testing.T) {
	card := ui.NewCard("card-2", "Two", "CARD:2")
	zone := ui.NewDropZone("doing", "Doing", "CARD:")
	root := ui.NewHStack(ui.Gap(100))
	root.Add(card, zone)
	h := uitest.New(t, root, 800, 600)

	c, z := h.Center("card-2"), h.Center("doing")
	h.Press(c.X, c.Y)
	h.Move(z.X, z.Y)
	assert.True(t, zone.Over())

	h.Move(z.X, 500)
	h.Frame()
	assert.False(t, zone.Over(), "the next tick clears the highlight")

	h.Release(z.X, 500)
	assert.Empty(t, zone.Dropped())
}

func TestSchema_BuiltTreeIsInteractive(t *testing.T) {
	var got []string
	f := ui.NewFactory(ui.WithEventSink(func(id, event string) { got = append(got, id+":"+event) }))
	root, err := ui.NewDynamicRoot(f, ui.ComponentNode{
		Type:  "vstack",
		Props: map[string]any{"padding": 10},
		Children: []ui.ComponentNode{
			{Type: "button", ID: "go", Props: map[string]any{"label": "Go"}, Events: []string{"click"}},
		},
	})
	require.NoError(t, err)
	h := uitest.New(t, root, 400, 300)

	c := h.Center("go")
	h.Click(c.X, c.Y)
	assert.Equal(t, []string{"go:click"}, got)
}
