package ui

// GhostZ is the z-index drag ghosts are drawn at, above the main tree and
// sibling overlays at z 0.
const GhostZ = 1

// Card is a draggable tile carrying a string payload. While it is dragged, a
// translucent ghost follows the pointer above everything at z 0.
type Card struct {
	Base
	Title   string
	Payload string
	Color   uint32
	Size    Vec2

	dragging bool
	grab     Vec2 // pointer offset from the card origin at drag start
	pointer  Vec2
}

// NewCard creates a card that drags payload.
func NewCard(id, title, payload string) *Card {
	return &Card{
		Base:    NewBase(id),
		Title:   title,
		Payload: payload,
		Color:   RGBA(60, 90, 140, 255),
		Size:    Vec2{X: 160, Y: 48},
	}
}

func (c *Card) IsDraggable() bool { return c.ID() != "" }

// Dragging reports whether the card is the source of the active drag.
func (c *Card) Dragging() bool { return c.dragging }

// OnDragStart offers the payload. An empty payload refuses the drag.
func (c *Card) OnDragStart(*Context) (string, bool) {
	return c.Payload, c.Payload != ""
}

func (c *Card) OnEvent(e Event, ctx *Context) bool {
	switch e.Kind {
	case EventMouseEnter:
		ctx.SetCursor(CursorGrab)
	case EventMouseLeave:
		if !c.dragging {
			ctx.SetCursor(CursorDefault)
		}
	case EventMouseDown:
		return e.Button == MouseButtonLeft
	case EventDragStart:
		c.dragging = true
		c.grab = e.Position.Sub(c.Bounds().Pos())
		c.pointer = e.Position
		ctx.SetCursor(CursorGrabbing)
		return true
	case EventDragMove:
		c.pointer = e.Position
		return true
	case EventDragEnd:
		c.dragging = false
		ctx.SetCursor(CursorDefault)
		return true
	}
	return false
}

func (c *Card) Layout(available Rect) Vec2 {
	c.SetBounds(Rect{X: available.X, Y: available.Y, W: c.Size.X, H: c.Size.Y})
	return c.Bounds().Size()
}

func (c *Card) Render(r *Renderer) {
	b := c.Bounds()
	color := c.Color
	if c.dragging {
		color = WithAlpha(color, 90)
	}
	c.draw(r, b, color)

	if c.dragging {
		ghost := Rect{X: c.pointer.X - c.grab.X, Y: c.pointer.Y - c.grab.Y, W: b.W, H: b.H}
		r.WithZIndex(GhostZ, func() {
			c.draw(r, ghost, WithAlpha(c.Color, 200))
		})
	}
}

func (c *Card) draw(r *Renderer, b Rect, color uint32) {
	r.FillRect(b, color)
	r.StrokeRect(b, WithAlpha(ColorWhite, 60), 1)
	if c.Title != "" {
		text := r.MeasureText(c.Title, DefaultTextSize)
		r.DrawText(c.Title, Vec2{X: b.X + SpaceMD, Y: b.Y + (b.H-text.Y)/2}, TextStyle{Color: ColorWhite})
	}
}
