package ui

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Disabled bool
	Action   func(ctx *Context)
}

// Menu is a popup list shown as an overlay. It closes on Escape, on a press
// outside it, or after an item is chosen.
//
// Usage:
//
//	m := ui.NewMenu("file-menu",
//	    ui.MenuItem{Label: "Open", Action: openFile},
//	    ui.MenuItem{Label: "Quit", Action: quit},
//	)
//	m.Open(ctx, e.Position)
type Menu struct {
	Base
	Items []MenuItem
	Width float32 // 0 sizes the menu to its widest label
	Style Style

	anchor    Vec2
	selected  int
	hover     int
	overlay   OverlayID
	prevFocus string
	ctx       *Context
	svc       TextService
}

// NewMenu creates a closed menu.
func NewMenu(id string, items ...MenuItem) *Menu {
	return &Menu{
		Base:  NewBase(id),
		Items: items,
		hover: -1,
		Style: Style{
			Background: RGBA(28, 28, 32, 250),
			Border:     Border{Color: RGBA(90, 90, 100, 255), Width: 1},
			Shadow:     Shadow{Color: RGBA(0, 0, 0, 120), Offset: Vec2{X: 3, Y: 3}},
			TextColor:  ColorWhite,
		},
	}
}

// SetTextService implements TextAware.
func (m *Menu) SetTextService(svc TextService) { m.svc = svc }

func (m *Menu) IsFocusable() bool { return m.ID() != "" && m.IsOpen() }

// IsOpen reports whether the menu is on the overlay queue.
func (m *Menu) IsOpen() bool { return m.overlay != 0 }

// Selected returns the keyboard-selected item index.
func (m *Menu) Selected() int { return m.selected }

// Open shows the menu with its top-left corner at pos and gives it focus.
func (m *Menu) Open(ctx *Context, pos Vec2) {
	if m.IsOpen() {
		return
	}
	m.ctx = ctx
	m.anchor = pos
	m.selected, m.hover = 0, -1
	m.prevFocus = ctx.FocusedID()
	m.Layout(Rect{})
	m.overlay = ctx.PushOverlay(m, DismissOnOutsideClick())
	ctx.RequestFocus(m.ID())
}

// Close removes the menu from the overlay queue.
func (m *Menu) Close(ctx *Context) {
	if !m.IsOpen() {
		return
	}
	ctx.DismissOverlay(m.overlay)
}

// Dispose implements Disposer. It runs however the menu was closed and hands
// focus back to whatever had it before.
func (m *Menu) Dispose() {
	m.overlay = 0
	ctx := m.ctx
	m.ctx = nil
	if ctx == nil || !ctx.IsFocused(m.ID()) {
		return
	}
	if m.prevFocus != "" {
		ctx.RequestFocus(m.prevFocus)
	} else {
		ctx.Blur()
	}
}

func (m *Menu) text() TextService {
	if m.svc == nil {
		m.svc = NewMonoTextService()
	}
	return m.svc
}

func (m *Menu) rowHeight() float32 {
	return m.text().LineHeight(DefaultTextSize) + 2*SpaceSM
}

// rowAt returns the item index under pos, or -1.
func (m *Menu) rowAt(pos Vec2) int {
	b := m.Bounds()
	if !b.Contains(pos) {
		return -1
	}
	i := int((pos.Y - b.Y - SpaceXS) / m.rowHeight())
	if pos.Y < b.Y+SpaceXS || i < 0 || i >= len(m.Items) {
		return -1
	}
	return i
}

// Layout sizes the menu to its items and keeps it inside available.
func (m *Menu) Layout(available Rect) Vec2 {
	w := m.Width
	if w <= 0 {
		for _, it := range m.Items {
			w = maxf(w, m.text().Measure(it.Label, DefaultTextSize).X)
		}
		w += 2 * SpaceLG
	}
	size := Vec2{X: w, Y: float32(len(m.Items))*m.rowHeight() + 2*SpaceXS}

	pos := m.anchor
	if !available.IsEmpty() {
		pos.X = clampf(pos.X, available.X, maxf(available.X, available.Max().X-size.X))
		pos.Y = clampf(pos.Y, available.Y, maxf(available.Y, available.Max().Y-size.Y))
	}
	m.SetBounds(Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y})
	return size
}

func (m *Menu) Render(r *Renderer) {
	b := m.Bounds()
	r.DrawStyledRect(b, m.Style)
	rh := m.rowHeight()
	for i, it := range m.Items {
		row := Rect{X: b.X + SpaceXS, Y: b.Y + SpaceXS + float32(i)*rh, W: b.W - 2*SpaceXS, H: rh}
		switch {
		case i == m.hover && !it.Disabled:
			r.FillRect(row, RGBA(70, 90, 130, 255))
		case i == m.selected:
			r.FillRect(row, RGBA(50, 60, 80, 255))
		}
		color := m.Style.TextColor
		if it.Disabled {
			color = ColorGray
		}
		r.DrawText(it.Label, Vec2{X: row.X + SpaceLG - SpaceXS, Y: row.Y + SpaceSM}, TextStyle{Color: color})
	}
}

func (m *Menu) OnEvent(e Event, ctx *Context) bool {
	switch e.Kind {
	case EventMouseMove:
		m.hover = m.rowAt(e.Position)
		return true
	case EventMouseLeave:
		m.hover = -1
	case EventMouseDown, EventMouseUp, EventMouseWheel:
		return true
	case EventClick:
		if i := m.rowAt(e.Position); i >= 0 {
			m.invoke(i, ctx)
		}
		return true
	case EventFocusGained, EventFocusLost:
		return true
	case EventKeyDown:
		return m.key(e.Key, ctx)
	}
	return false
}

func (m *Menu) key(k Key, ctx *Context) bool {
	n := len(m.Items)
	switch k {
	case KeyEscape:
		m.Close(ctx)
	case KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case KeyDown:
		if m.selected < n-1 {
			m.selected++
		}
	case KeyHome:
		m.selected = 0
	case KeyEnd:
		m.selected = max(n-1, 0)
	case KeyEnter, KeySpace:
		if m.selected < n {
			m.invoke(m.selected, ctx)
		}
	default:
		return false
	}
	return true
}

func (m *Menu) invoke(i int, ctx *Context) {
	it := m.Items[i]
	if it.Disabled {
		return
	}
	Logger().Debug("menu item chosen", "menu", m.ID(), "item", it.Label)
	m.Close(ctx)
	if it.Action != nil {
		it.Action(ctx)
	}
}
