package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipStack_NestedPushIntersects(t *testing.T) {
	cs := NewClipStack(Rect{W: 800, H: 600})
	assert.Equal(t, Rect{W: 800, H: 600}, cs.Current())

	cs.Push(Rect{X: 100, Y: 100, W: 400, H: 300})
	cs.Push(Rect{X: 50, Y: 350, W: 200, H: 200})
	assert.Equal(t, Rect{X: 100, Y: 350, W: 150, H: 50}, cs.Current())
	assert.Equal(t, 2, cs.Depth())

	cs.Pop()
	assert.Equal(t, Rect{X: 100, Y: 100, W: 400, H: 300}, cs.Current())
	cs.Pop()
	assert.Equal(t, cs.Root(), cs.Current())
	assert.NotPanics(t, cs.AssertBalanced)
}

func TestClipStack_DisjointPushIsEmpty(t *testing.T) {
	cs := NewClipStack(Rect{W: 100, H: 100})
	cs.Push(Rect{X: 200, Y: 200, W: 10, H: 10})
	assert.True(t, cs.Current().IsEmpty())
}

func TestClipStack_PopEmptyPanics(t *testing.T) {
	cs := NewClipStack(Rect{W: 100, H: 100})
	assert.PanicsWithError(t, "ui: clip stack popped while empty", cs.Pop)
}

func TestClipStack_UnbalancedPanics(t *testing.T) {
	cs := NewClipStack(Rect{W: 100, H: 100})
	cs.Push(Rect{W: 10, H: 10})

	defer func() {
		v := recover()
		require.NotNil(t, v)
		err, ok := v.(*ClipImbalanceError)
		require.True(t, ok, "panic value %T", v)
		assert.Equal(t, "clip", err.Stack)
		assert.Equal(t, 1, err.Depth)
	}()
	cs.AssertBalanced()
}

func TestClipStack_ResetChangesRoot(t *testing.T) {
	cs := NewClipStack(Rect{W: 100, H: 100})
	cs.Push(Rect{W: 10, H: 10})
	cs.Reset(Rect{X: 5, Y: 5, W: 20, H: 20})
	assert.Equal(t, 0, cs.Depth())
	assert.Equal(t, Rect{X: 5, Y: 5, W: 20, H: 20}, cs.Current())
}
