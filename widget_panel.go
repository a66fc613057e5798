package ui

// panelStyle is the default panel look.
func panelStyle() InteractiveStyle {
	return UniformStyle(Style{
		Background: RGBA(30, 30, 34, 240),
		Border:     Border{Color: RGBA(70, 70, 78, 255), Width: 1},
		TextColor:  RGBA(220, 220, 225, 255),
		TextSize:   DefaultTextSize,
	})
}

// Panel is a titled box whose body is a VStack.
//
// Usage:
//
//	p := ui.NewPanel("settings", "Settings")
//	p.Add(volume, fullscreen)
type Panel struct {
	Base
	Title   string
	Style   InteractiveStyle
	Padding float32

	body *VStack
	svc  TextService
}

// NewPanel creates a panel. Body options are passed to its VStack.
func NewPanel(id, title string, body ...StackOption) *Panel {
	opts := append([]StackOption{Gap(SpaceMD)}, body...)
	return &Panel{
		Base:    NewBase(id),
		Title:   title,
		Style:   panelStyle(),
		Padding: SpaceLG,
		body:    NewVStack(opts...),
	}
}

// Add appends children to the body.
func (p *Panel) Add(children ...Component) { p.body.Add(children...) }

// Body returns the panel's content stack.
func (p *Panel) Body() *VStack { return p.body }

// SetStyle implements Styled.
func (p *Panel) SetStyle(st InteractiveStyle) { p.Style = st }

// SetTextService implements TextAware.
func (p *Panel) SetTextService(svc TextService) { p.svc = svc }

func (p *Panel) ChildCount() int { return 1 }

func (p *Panel) Child(i int) Component {
	if i != 0 {
		return nil
	}
	return p.body
}

func (p *Panel) SetPosition(x, y float32) {
	b := p.Bounds()
	translateChildren(p, x-b.X, y-b.Y)
	p.Base.SetPosition(x, y)
}

func (p *Panel) titleHeight() float32 {
	if p.Title == "" {
		return 0
	}
	return p.text().LineHeight(p.textSize()) + SpaceSM
}

func (p *Panel) text() TextService {
	if p.svc == nil {
		p.svc = NewMonoTextService()
	}
	return p.svc
}

func (p *Panel) textSize() float32 {
	if s := p.Style.Idle.TextSize; s > 0 {
		return s
	}
	return DefaultTextSize
}

// Layout stacks the title above the body. The panel is as wide as the
// available space and as tall as its content.
func (p *Panel) Layout(available Rect) Vec2 {
	available = available.Sanitize()
	pad := p.Padding
	th := p.titleHeight()
	inner := Rect{
		X: available.X + pad,
		Y: available.Y + pad + th,
		W: available.W - 2*pad,
		H: available.H - 2*pad - th,
	}.Sanitize()
	body := p.body.Layout(inner)
	p.body.SetPosition(inner.X, inner.Y)

	natural := Vec2{X: body.X + 2*pad, Y: body.Y + th + 2*pad}
	if p.Title != "" {
		natural.X = maxf(natural.X, p.text().Measure(p.Title, p.textSize()).X+2*pad)
	}
	p.SetBounds(Rect{X: available.X, Y: available.Y, W: maxf(available.W, natural.X), H: natural.Y})
	return natural
}

func (p *Panel) Render(r *Renderer) {
	st := p.Style.Resolve(StateIdle)
	b := p.Bounds()
	r.DrawStyledRect(b, st)
	if p.Title != "" {
		r.DrawText(p.Title, Vec2{X: b.X + p.Padding, Y: b.Y + p.Padding}, TextStyle{Size: p.textSize(), Color: st.TextColor})
	}
}
