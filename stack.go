package ui

// axis selects the main axis of a stack.
type axis uint8

const (
	vertical axis = iota
	horizontal
)

// main and cross pick the components of v along and across the axis.
func (a axis) main(v Vec2) float32 {
	if a == vertical {
		return v.Y
	}
	return v.X
}

func (a axis) cross(v Vec2) float32 {
	if a == vertical {
		return v.X
	}
	return v.Y
}

// vec builds a Vec2 from main and cross components.
func (a axis) vec(main, cross float32) Vec2 {
	if a == vertical {
		return Vec2{X: cross, Y: main}
	}
	return Vec2{X: main, Y: cross}
}

// container is the child list and background shared by all containers.
type container struct {
	Base
	children   []Component
	background uint32
}

// Add appends children. Nil components are skipped.
func (c *container) Add(children ...Component) {
	for _, ch := range children {
		if ch != nil {
			c.children = append(c.children, ch)
		}
	}
}

// Children returns the child list. The slice must not be modified.
func (c *container) Children() []Component {
	return c.children
}

// RemoveAll drops every child, disposing those that implement Disposer.
func (c *container) RemoveAll() {
	for _, ch := range c.children {
		if d, ok := ch.(Disposer); ok {
			d.Dispose()
		}
	}
	c.children = nil
}

// SetBackground sets the fill drawn behind the children. Zero disables it.
func (c *container) SetBackground(color uint32) {
	c.background = color
}

func (c *container) ChildCount() int { return len(c.children) }

func (c *container) Child(i int) Component {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// SetPosition moves the container and its whole subtree.
func (c *container) SetPosition(x, y float32) {
	b := c.Bounds()
	translateChildren(c, x-b.X, y-b.Y)
	c.Base.SetPosition(x, y)
}

func (c *container) Render(r *Renderer) {
	r.FillRect(c.Bounds(), c.background)
}

// stack lays its children out one after another along an axis.
type stack struct {
	container
	axis       axis
	spacing    Spacing
	align      Alignment
	constraint SizeConstraint
}

// StackOption configures a VStack or HStack.
type StackOption func(*stack)

// Gap sets the space between consecutive children.
func Gap(gap float32) StackOption {
	return func(s *stack) { s.spacing.Gap = maxf(gap, 0) }
}

// Padding sets the space between the stack's edge and its children.
func Padding(padding float32) StackOption {
	return func(s *stack) { s.spacing.Padding = maxf(padding, 0) }
}

// Align sets cross-axis alignment.
func Align(a Alignment) StackOption {
	return func(s *stack) { s.align = a }
}

// Constrain clamps the stack's natural size.
func Constrain(c SizeConstraint) StackOption {
	return func(s *stack) { s.constraint = c }
}

// WithBackground fills the stack's bounds before its children draw.
func WithBackground(color uint32) StackOption {
	return func(s *stack) { s.background = color }
}

// WithID sets the stack's routing id.
func WithID(id string) StackOption {
	return func(s *stack) { s.SetID(id) }
}

func newStack(a axis, opts []StackOption) stack {
	s := stack{axis: a}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Spacing returns the padding and gap.
func (s *stack) Spacing() Spacing {
	return s.spacing
}

// Alignment returns the cross-axis alignment.
func (s *stack) Alignment() Alignment {
	return s.align
}

// Layout places children along the main axis and returns the stack's natural
// size: the children's extent plus padding on both sides, clamped by the
// stack's constraint. A start-aligned stack's bounds hug its content; other
// alignments span the available cross extent so that centred and end-aligned
// children stay inside them.
func (s *stack) Layout(available Rect) Vec2 {
	available = available.Sanitize()
	a := s.axis
	pad, gap := s.spacing.Padding, s.spacing.Gap

	crossSpace := clampAxis(a.cross(available.Size()), a.cross(s.constraint.Min), a.cross(s.constraint.Max))
	content := maxf(crossSpace-2*pad, 0)
	mainSpace := a.main(available.Size())

	offset := pad
	var crossExtent float32
	for _, child := range s.children {
		remaining := maxf(mainSpace-offset-pad, 0)
		slot := a.vec(remaining, content)
		origin := available.Pos().Add(a.vec(offset, pad))
		size := child.Layout(Rect{X: origin.X, Y: origin.Y, W: slot.X, H: slot.Y})

		childMain, childCross := maxf(a.main(size), 0), maxf(a.cross(size), 0)
		if s.align == AlignStretch {
			childCross = content
			sz := a.vec(childMain, childCross)
			child.SetSize(sz.X, sz.Y)
		}
		pos := available.Pos().Add(a.vec(offset, pad+s.align.crossOffset(content, childCross)))
		child.SetPosition(pos.X, pos.Y)

		offset += childMain + gap
		crossExtent = maxf(crossExtent, childCross)
	}
	if len(s.children) > 0 {
		offset -= gap
	}

	natural := s.constraint.Clamp(a.vec(offset+pad, crossExtent+2*pad))
	cross := a.cross(natural)
	if s.align != AlignStart {
		cross = maxf(crossSpace, cross)
	}
	bounds := a.vec(a.main(natural), cross)
	s.Base.SetBounds(Rect{X: available.X, Y: available.Y, W: bounds.X, H: bounds.Y})
	return natural
}

// VStack stacks children top to bottom.
//
// Usage:
//
//	col := ui.NewVStack(ui.Gap(8), ui.Padding(12), ui.Align(ui.AlignStretch))
//	col.Add(title, body, footer)
type VStack struct {
	stack
}

// NewVStack creates an empty vertical stack.
func NewVStack(opts ...StackOption) *VStack {
	return &VStack{stack: newStack(vertical, opts)}
}

// HStack stacks children left to right.
type HStack struct {
	stack
}

// NewHStack creates an empty horizontal stack.
func NewHStack(opts ...StackOption) *HStack {
	return &HStack{stack: newStack(horizontal, opts)}
}

// ZStack layers children on top of each other. Every child gets the whole
// padded area and the last child paints on top.
type ZStack struct {
	container
	padding float32
}

// NewZStack creates an empty layering container.
func NewZStack(padding float32) *ZStack {
	return &ZStack{padding: maxf(padding, 0)}
}

// Layout fills the available rect.
func (z *ZStack) Layout(available Rect) Vec2 {
	available = available.Sanitize()
	z.Base.SetBounds(available)
	content := available.Inset(z.padding).Sanitize()
	for _, child := range z.children {
		size := child.Layout(content)
		child.SetPosition(content.X, content.Y)
		if size.X > content.W || size.Y > content.H {
			child.SetSize(minf(size.X, content.W), minf(size.Y, content.H))
		}
	}
	return available.Size()
}

// Anchored places a single child inside the available rect by anchor and
// offset, and hands the child only the sub-rect it ends up occupying.
type Anchored struct {
	container
	Anchor     Anchor
	Offset     Vec2
	Constraint SizeConstraint
}

// NewAnchored wraps child with the given anchor.
func NewAnchored(child Component, anchor Anchor) *Anchored {
	a := &Anchored{Anchor: anchor}
	a.Add(child)
	return a
}

// Layout fills the available rect and positions the child inside it.
func (a *Anchored) Layout(available Rect) Vec2 {
	available = available.Sanitize()
	a.Base.SetBounds(available)
	if len(a.children) == 0 {
		return available.Size()
	}
	child := a.children[0]
	avail := available.Size()
	natural := child.Layout(available)
	size := a.Constraint.Clamp(a.Anchor.Size(avail, natural))
	size = Vec2{X: minf(size.X, avail.X), Y: minf(size.Y, avail.Y)}
	pos := available.Pos().Add(a.Anchor.Position(avail, size)).Add(a.Offset)

	child.Layout(Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y})
	child.SetPosition(pos.X, pos.Y)
	child.SetSize(size.X, size.Y)
	return avail
}
