package ui

// box is a fixed-size test component that fills its bounds and records the
// events it sees.
type box struct {
	Base
	size      Vec2
	color     uint32
	focusable bool
	order     int
	consume   bool
	events    []Event
	children  []Component
}

func newBox(id string, w, h float32) *box {
	return &box{Base: NewBase(id), size: Vec2{X: w, Y: h}, color: ColorGray}
}

func (b *box) add(children ...Component) *box {
	b.children = append(b.children, children...)
	return b
}

func (b *box) ChildCount() int       { return len(b.children) }
func (b *box) Child(i int) Component { return b.children[i] }
func (b *box) IsFocusable() bool     { return b.focusable }
func (b *box) TabOrder() int         { return b.order }
func (b *box) Render(r *Renderer)    { r.FillRect(b.Bounds(), b.color) }

func (b *box) OnEvent(e Event, _ *Context) bool {
	b.events = append(b.events, e)
	return b.consume
}

// Layout keeps the box at the available origin and offers its bounds to
// the children.
func (b *box) Layout(available Rect) Vec2 {
	b.SetBounds(Rect{X: available.X, Y: available.Y, W: b.size.X, H: b.size.Y})
	for _, c := range b.children {
		c.Layout(b.Bounds())
	}
	return b.size
}

func (b *box) kinds() []EventKind {
	var out []EventKind
	for _, e := range b.events {
		if e.Kind != EventTick {
			out = append(out, e.Kind)
		}
	}
	return out
}

func (b *box) count(kind EventKind) int {
	n := 0
	for _, e := range b.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// placed lays out a box directly at r, ignoring the parent's layout.
type placed struct {
	*box
	at Rect
}

func place(b *box, at Rect) *placed {
	return &placed{box: b, at: at}
}

func (p *placed) Layout(Rect) Vec2 {
	p.box.SetBounds(p.at)
	for _, c := range p.children {
		c.Layout(p.at)
	}
	return p.at.Size()
}

// newTestRouter builds a router over root laid out in a w x h viewport.
func newTestRouter(root Component, w, h float32) (*Router, *Context) {
	ctx := NewContext(nil, nil, 0)
	r := NewRouter(ctx)
	vp := Rect{W: w, H: h}
	r.SetViewport(vp)
	r.SetRoot(root)
	if root != nil {
		root.Layout(vp)
	}
	return r, ctx
}
