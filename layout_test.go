package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewport = Rect{W: 800, H: 600}

func TestVStack_GapPlacesChildren(t *testing.T) {
	a, b, c := newBox("a", 100, 20), newBox("b", 100, 20), newBox("c", 100, 20)
	s := NewVStack(Gap(8))
	s.Add(a, b, c)

	size := s.Layout(viewport)

	assert.Equal(t, Vec2{X: 100, Y: 76}, size)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 100, H: 20}, a.Bounds())
	assert.Equal(t, Rect{X: 0, Y: 28, W: 100, H: 20}, b.Bounds())
	assert.Equal(t, Rect{X: 0, Y: 56, W: 100, H: 20}, c.Bounds())
}

func TestHStack_PaddingAndGap(t *testing.T) {
	a, b := newBox("a", 30, 10), newBox("b", 40, 20)
	s := NewHStack(Gap(4), Padding(10))
	s.Add(a, b)

	size := s.Layout(Rect{X: 5, Y: 5, W: 300, H: 100})

	assert.Equal(t, Vec2{X: 94, Y: 40}, size)
	assert.Equal(t, Vec2{X: 15, Y: 15}, a.Bounds().Pos())
	assert.Equal(t, Vec2{X: 49, Y: 15}, b.Bounds().Pos())
}

func TestStack_EmptyIsPaddingOnly(t *testing.T) {
	s := NewVStack(Padding(12), Gap(8))
	assert.Equal(t, Vec2{X: 24, Y: 24}, s.Layout(viewport))
	assert.Equal(t, 0, s.ChildCount())
}

func TestStack_NegativeAvailableClampsToZero(t *testing.T) {
	s := NewVStack(Padding(4))
	s.Add(newBox("a", 10, 10))

	var size Vec2
	require.NotPanics(t, func() {
		size = s.Layout(Rect{X: 0, Y: 0, W: -50, H: -50})
	})
	assert.GreaterOrEqual(t, size.X, float32(0))
	assert.GreaterOrEqual(t, size.Y, float32(0))
	assert.GreaterOrEqual(t, s.Bounds().W, float32(0))
	assert.GreaterOrEqual(t, s.Bounds().H, float32(0))
}

func TestStack_NegativeOptionsClamp(t *testing.T) {
	s := NewVStack(Gap(-5), Padding(-3))
	assert.Equal(t, Spacing{}, s.Spacing())
}

func TestStack_CrossAxisAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		wantX float32
		wantW float32
	}{
		{AlignStart, 0, 100},
		{AlignCenter, 350, 100},
		{AlignEnd, 700, 100},
		{AlignStretch, 0, 800},
	}
	for _, tt := range tests {
		child := newBox("child", 100, 20)
		s := NewVStack(Align(tt.align))
		s.Add(child)
		s.Layout(viewport)

		assert.Equal(t, tt.wantX, child.Bounds().X, "align %d", tt.align)
		assert.Equal(t, tt.wantW, child.Bounds().W, "align %d", tt.align)
	}
}

func TestStack_CenteredChildStaysInsideBounds(t *testing.T) {
	child := newBox("child", 100, 20)
	s := NewVStack(Align(AlignCenter))
	s.Add(child)
	s.Layout(viewport)

	b := s.Bounds()
	cb := child.Bounds()
	assert.True(t, cb.X >= b.X && cb.X+cb.W <= b.X+b.W, "child %v outside stack %v", cb, b)
}

func TestStack_StartAlignedBoundsHugContent(t *testing.T) {
	row := NewHStack(Gap(4))
	row.Add(newBox("a", 100, 20), newBox("b", 50, 30))
	below := newBox("below", 100, 20)
	col := NewVStack(Gap(8))
	col.Add(row, below)
	col.Layout(viewport)

	assert.Equal(t, Rect{W: 154, H: 30}, row.Bounds(), "the row stops at its tallest child")
	assert.Equal(t, Rect{W: 154, H: 58}, col.Bounds())
	assert.Equal(t, Vec2{X: 0, Y: 38}, below.Bounds().Pos())
	assert.False(t, row.Bounds().Contains(Vec2{X: 10, Y: 40}), "the gap below the row is not part of it")
}

func TestStack_ConstraintClampsNaturalSize(t *testing.T) {
	s := NewVStack(Gap(8), Constrain(MaxSize(Vec2{Y: 50})))
	s.Add(newBox("a", 100, 20), newBox("b", 100, 20), newBox("c", 100, 20))
	assert.Equal(t, Vec2{X: 100, Y: 50}, s.Layout(viewport))

	s = NewVStack(Constrain(MinSize(Vec2{X: 300, Y: 200})))
	assert.Equal(t, Vec2{X: 300, Y: 200}, s.Layout(viewport))
}

func TestStack_NestedStacksMoveWithParent(t *testing.T) {
	a, b := newBox("a", 100, 20), newBox("b", 100, 20)
	inner := NewVStack(Gap(4))
	inner.Add(a, b)
	outer := NewHStack(Padding(10), Align(AlignCenter))
	outer.Add(inner)

	outer.Layout(viewport)

	// (580 - 44) / 2 = 268 below the padded top edge
	assert.Equal(t, Vec2{X: 10, Y: 278}, inner.Bounds().Pos())
	assert.Equal(t, Vec2{X: 10, Y: 278}, a.Bounds().Pos())
	assert.Equal(t, Vec2{X: 10, Y: 302}, b.Bounds().Pos())
}

func TestContainer_SetPositionTranslatesSubtree(t *testing.T) {
	a := newBox("a", 10, 10)
	s := NewVStack(Padding(5))
	s.Add(a)
	s.Layout(viewport)

	s.SetPosition(100, 50)
	assert.Equal(t, Vec2{X: 100, Y: 50}, s.Bounds().Pos())
	assert.Equal(t, Vec2{X: 105, Y: 55}, a.Bounds().Pos())
}

func TestContainer_AddSkipsNil(t *testing.T) {
	s := NewVStack()
	s.Add(nil, newBox("a", 1, 1), nil)
	assert.Equal(t, 1, s.ChildCount())
	assert.Nil(t, s.Child(5))
}

func TestZStack_OversizeChildShrinks(t *testing.T) {
	big := newBox("big", 1000, 1000)
	small := newBox("small", 10, 10)
	z := NewZStack(5)
	z.Add(big, small)

	assert.Equal(t, Vec2{X: 800, Y: 600}, z.Layout(viewport))
	assert.Equal(t, Rect{X: 5, Y: 5, W: 790, H: 590}, big.Bounds())
	assert.Equal(t, Rect{X: 5, Y: 5, W: 10, H: 10}, small.Bounds())
}

func TestAnchored_Positions(t *testing.T) {
	tests := []struct {
		anchor Anchor
		offset Vec2
		want   Rect
	}{
		{AnchorTopLeft, Vec2{}, Rect{X: 0, Y: 0, W: 100, H: 50}},
		{AnchorCenter, Vec2{}, Rect{X: 350, Y: 275, W: 100, H: 50}},
		{AnchorBottomRight, Vec2{X: -10, Y: -10}, Rect{X: 690, Y: 540, W: 100, H: 50}},
		{AnchorFill, Vec2{}, Rect{X: 0, Y: 0, W: 800, H: 600}},
		{AnchorFillWidth, Vec2{}, Rect{X: 0, Y: 0, W: 800, H: 50}},
	}
	for _, tt := range tests {
		child := newBox("child", 100, 50)
		a := NewAnchored(child, tt.anchor)
		a.Offset = tt.offset
		a.Layout(viewport)
		assert.Equal(t, tt.want, child.Bounds(), "anchor %d", tt.anchor)
	}
}

func TestSizeConstraint_Clamp(t *testing.T) {
	assert.Equal(t, Vec2{X: 10, Y: 20}, SizeConstraint{}.Clamp(Vec2{X: 10, Y: 20}))
	assert.Equal(t, Vec2{}, SizeConstraint{}.Clamp(Vec2{X: -10, Y: -20}))
	assert.Equal(t, Vec2{X: 50, Y: 50}, Fixed(Vec2{X: 50, Y: 50}).Clamp(Vec2{X: 10, Y: 90}))
}

func TestParseAlignment(t *testing.T) {
	a, ok := ParseAlignment("center")
	assert.True(t, ok)
	assert.Equal(t, AlignCenter, a)

	_, ok = ParseAlignment("diagonal")
	assert.False(t, ok)
}
