package ui

// SizeConstraint clamps a proposed size to [Min, Max]. A zero Max component
// means that axis is unbounded, so the zero value constrains nothing.
type SizeConstraint struct {
	Min Vec2
	Max Vec2
}

// Fixed collapses min and max to size.
func Fixed(size Vec2) SizeConstraint {
	return SizeConstraint{Min: size, Max: size}
}

// MinSize constrains only the lower bound.
func MinSize(size Vec2) SizeConstraint {
	return SizeConstraint{Min: size}
}

// MaxSize constrains only the upper bound.
func MaxSize(size Vec2) SizeConstraint {
	return SizeConstraint{Max: size}
}

// Clamp returns size limited to the constraint. Negative results become 0.
func (c SizeConstraint) Clamp(size Vec2) Vec2 {
	return Vec2{X: clampAxis(size.X, c.Min.X, c.Max.X), Y: clampAxis(size.Y, c.Min.Y, c.Max.Y)}
}

func clampAxis(v, lo, hi float32) float32 {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return maxf(v, 0)
}

// Spacing is the padding around and the gap between a container's children.
type Spacing struct {
	Padding float32
	Gap     float32
}

// Alignment places children on a stack's cross axis (like Tailwind items-*).
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// ParseAlignment maps "start", "center", "end" and "stretch" to an Alignment.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "start", "":
		return AlignStart, true
	case "center":
		return AlignCenter, true
	case "end":
		return AlignEnd, true
	case "stretch":
		return AlignStretch, true
	}
	return AlignStart, false
}

// crossOffset returns where a child of extent size sits inside space.
func (a Alignment) crossOffset(space, size float32) float32 {
	switch a {
	case AlignCenter:
		return (space - size) / 2
	case AlignEnd:
		return space - size
	default:
		return 0
	}
}

// Anchor positions a child of natural size inside an available area.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
	AnchorFill       // take the whole area
	AnchorFillWidth  // full width, natural height, top edge
	AnchorFillHeight // full height, natural width, left edge
)

// Size returns the size a child gets under this anchor.
func (a Anchor) Size(available, natural Vec2) Vec2 {
	switch a {
	case AnchorFill:
		return available
	case AnchorFillWidth:
		return Vec2{X: available.X, Y: natural.Y}
	case AnchorFillHeight:
		return Vec2{X: natural.X, Y: available.Y}
	default:
		return natural
	}
}

// Position returns the child's offset within the available area.
func (a Anchor) Position(available, size Vec2) Vec2 {
	free := available.Sub(size)
	switch a {
	case AnchorTop:
		return Vec2{X: free.X / 2}
	case AnchorTopRight:
		return Vec2{X: free.X}
	case AnchorLeft:
		return Vec2{Y: free.Y / 2}
	case AnchorCenter:
		return free.Mul(0.5)
	case AnchorRight:
		return Vec2{X: free.X, Y: free.Y / 2}
	case AnchorBottomLeft:
		return Vec2{Y: free.Y}
	case AnchorBottom:
		return Vec2{X: free.X / 2, Y: free.Y}
	case AnchorBottomRight:
		return free
	default:
		return Vec2{}
	}
}

// translateChildren moves every child's subtree by (dx, dy). Containers call
// it from SetPosition so nested layouts stay attached to their parent.
func translateChildren(c Component, dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	for i := 0; i < c.ChildCount(); i++ {
		child := c.Child(i)
		if child == nil {
			continue
		}
		b := child.Bounds()
		child.SetPosition(b.X+dx, b.Y+dy)
	}
}
