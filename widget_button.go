package ui

// focusRingColor outlines the focused widget.
var focusRingColor = RGBA(80, 160, 255, 255)

// Button is a clickable, focusable text button.
//
// Usage:
//
//	save := ui.NewButton("save", "Save")
//	save.OnClick = func(ctx *ui.Context) { doc.Save() }
type Button struct {
	Base
	Label    string
	Style    InteractiveStyle
	TextSize float32
	Padding  Vec2
	Disabled bool
	Order    int // tab order, lower first

	// OnClick runs on a mouse click or Enter/Space while focused.
	OnClick func(ctx *Context)

	hovered bool
	pressed bool
	focused bool
	svc     TextService
}

// NewButton creates a button with the default style.
func NewButton(id, label string) *Button {
	return &Button{
		Base:    NewBase(id),
		Label:   label,
		Style:   buttonStyle(),
		Padding: Vec2{X: SpaceLG, Y: SpaceSM},
	}
}

// SetStyle implements Styled.
func (b *Button) SetStyle(st InteractiveStyle) { b.Style = st }

// SetTextService implements TextAware.
func (b *Button) SetTextService(svc TextService) { b.svc = svc }

// TabOrder implements TabOrderer.
func (b *Button) TabOrder() int { return b.Order }

func (b *Button) IsFocusable() bool { return !b.Disabled && b.ID() != "" }

// State returns the interaction state used to pick the style.
func (b *Button) State() ComponentState {
	switch {
	case b.Disabled:
		return StateDisabled
	case b.pressed:
		return StatePressed
	case b.hovered:
		return StateHover
	}
	return StateIdle
}

// Focused reports whether the button holds keyboard focus.
func (b *Button) Focused() bool { return b.focused }

func (b *Button) textSize() float32 {
	if b.TextSize > 0 {
		return b.TextSize
	}
	return DefaultTextSize
}

// Layout sizes the button to its label plus padding.
func (b *Button) Layout(available Rect) Vec2 {
	svc := b.svc
	if svc == nil {
		svc = NewMonoTextService()
	}
	text := svc.Measure(b.Label, b.textSize())
	size := Vec2{
		X: text.X + 2*b.Padding.X,
		Y: maxf(text.Y, svc.LineHeight(b.textSize())) + 2*b.Padding.Y,
	}
	b.SetBounds(Rect{X: available.X, Y: available.Y, W: size.X, H: size.Y})
	return size
}

func (b *Button) Render(r *Renderer) {
	bounds := b.Bounds()
	st := b.Style.Resolve(b.State())
	r.DrawStyledRect(bounds, st)
	if b.focused {
		r.StrokeRect(bounds.Inset(-1), focusRingColor, 2)
	}

	size := b.textSize()
	if st.TextSize > 0 {
		size = st.TextSize
	}
	text := r.MeasureText(b.Label, size)
	c := bounds.Center()
	r.DrawText(b.Label, Vec2{X: c.X - text.X/2, Y: c.Y - text.Y/2}, TextStyle{Size: size, Color: st.TextColor})
}

func (b *Button) OnEvent(e Event, ctx *Context) bool {
	switch e.Kind {
	case EventMouseEnter:
		b.hovered = true
		if !b.Disabled {
			ctx.SetCursor(CursorPointer)
		}
	case EventMouseLeave:
		b.hovered = false
		b.pressed = false
		ctx.SetCursor(CursorDefault)
	case EventFocusGained:
		b.focused = true
		return true
	case EventFocusLost:
		b.focused = false
		return true
	}
	if b.Disabled {
		return false
	}

	switch e.Kind {
	case EventMouseDown:
		if e.Button != MouseButtonLeft {
			return false
		}
		b.pressed = true
		ctx.RequestFocus(b.ID())
		return true
	case EventMouseUp:
		if e.Button != MouseButtonLeft {
			return false
		}
		b.pressed = false
		return true
	case EventClick:
		if e.Button != MouseButtonLeft {
			return false
		}
		b.activate(ctx)
		return true
	case EventKeyDown:
		if e.Key == KeyEnter || e.Key == KeySpace {
			b.activate(ctx)
			return true
		}
	}
	return false
}

func (b *Button) activate(ctx *Context) {
	Logger().Debug("button activated", "id", b.ID())
	if b.OnClick != nil {
		b.OnClick(ctx)
	}
}
