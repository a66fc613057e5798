package ui

import "strings"

// DropZone accepts dragged payloads that start with Accept.
//
// Usage:
//
//	done := ui.NewDropZone("done", "Done", "CARD:")
//	done.OnDropped = func(payload string, ctx *ui.Context) { board.Move(payload, "done") }
type DropZone struct {
	Base
	Label  string
	Accept string // payload prefix; empty accepts everything
	Size   Vec2

	// OnDropped runs after a payload is accepted.
	OnDropped func(payload string, ctx *Context)

	over    bool
	dropped []string
}

// NewDropZone creates a drop target accepting payloads with the given prefix.
func NewDropZone(id, label, accept string) *DropZone {
	return &DropZone{
		Base:   NewBase(id),
		Label:  label,
		Accept: accept,
		Size:   Vec2{X: 200, Y: 120},
	}
}

func (d *DropZone) IsDropTarget() bool { return d.ID() != "" }

// Accepts reports whether payload matches the zone's prefix.
func (d *DropZone) Accepts(payload string) bool {
	return strings.HasPrefix(payload, d.Accept)
}

// Dropped returns the payloads accepted so far, oldest first.
func (d *DropZone) Dropped() []string { return d.dropped }

// Over reports whether an acceptable drag is hovering the zone.
func (d *DropZone) Over() bool { return d.over }

func (d *DropZone) OnDrop(payload string, ctx *Context) bool {
	d.over = false
	if !d.Accepts(payload) {
		Logger().Debug("drop rejected", "zone", d.ID(), "payload", payload)
		return false
	}
	d.dropped = append(d.dropped, payload)
	if d.OnDropped != nil {
		d.OnDropped(payload, ctx)
	}
	return true
}

func (d *DropZone) OnEvent(e Event, ctx *Context) bool {
	switch e.Kind {
	case EventDragOver:
		d.over = d.Accepts(e.Payload)
		return true
	case EventDragEnd:
		d.over = false
		return true
	case EventTick:
		if d.over && !(ctx.IsDragging() && d.Bounds().Contains(ctx.DragPosition())) {
			d.over = false
		}
	}
	return false
}

func (d *DropZone) Layout(available Rect) Vec2 {
	d.SetBounds(Rect{X: available.X, Y: available.Y, W: d.Size.X, H: d.Size.Y})
	return d.Bounds().Size()
}

func (d *DropZone) Render(r *Renderer) {
	b := d.Bounds()
	bg, border := RGBA(35, 35, 40, 255), RGBA(90, 90, 100, 255)
	if d.over {
		bg, border = RGBA(40, 70, 50, 255), RGBA(90, 200, 120, 255)
	}
	r.FillRect(b, bg)
	r.StrokeRect(b, border, 2)
	if d.Label != "" {
		r.DrawText(d.Label, Vec2{X: b.X + SpaceMD, Y: b.Y + SpaceMD}, TextStyle{Color: ColorLightGray})
	}
}
