package ui

import "fmt"

// ClipImbalanceError is the panic value raised when clip (or z-index) pushes
// and pops do not match. It is a programming error: once the stack desyncs,
// every later clip in the frame is wrong.
type ClipImbalanceError struct {
	Stack string // "clip" or "z-index"
	Depth int    // depth at the point of failure; -1 for a pop on an empty stack
}

func (e *ClipImbalanceError) Error() string {
	if e.Depth < 0 {
		return fmt.Sprintf("ui: %s stack popped while empty", e.Stack)
	}
	return fmt.Sprintf("ui: %s stack unbalanced at end of frame (depth %d)", e.Stack, e.Depth)
}

// ClipStack is a stack of nested scissor rectangles. Each entry is stored
// already intersected with the one below, so Current is always the
// intersection of everything pushed since the last Reset.
type ClipStack struct {
	root  Rect
	stack []Rect
}

// NewClipStack creates a stack whose base clip is root.
func NewClipStack(root Rect) *ClipStack {
	return &ClipStack{root: root, stack: make([]Rect, 0, 16)}
}

// Reset empties the stack and sets a new base clip.
func (c *ClipStack) Reset(root Rect) {
	c.root = root
	c.stack = c.stack[:0]
}

// Push intersects r with the current clip and makes it active.
func (c *ClipStack) Push(r Rect) {
	c.stack = append(c.stack, c.Current().Intersect(r))
}

// Pop restores the previous clip. Popping an empty stack panics.
func (c *ClipStack) Pop() {
	n := len(c.stack)
	if n == 0 {
		panic(&ClipImbalanceError{Stack: "clip", Depth: -1})
	}
	c.stack = c.stack[:n-1]
}

// Current returns the active clip rectangle.
func (c *ClipStack) Current() Rect {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1]
	}
	return c.root
}

// Root returns the base clip.
func (c *ClipStack) Root() Rect {
	return c.root
}

// Depth returns the number of pushed rectangles.
func (c *ClipStack) Depth() int {
	return len(c.stack)
}

// AssertBalanced panics if anything is still pushed.
func (c *ClipStack) AssertBalanced() {
	if len(c.stack) != 0 {
		panic(&ClipImbalanceError{Stack: "clip", Depth: len(c.stack)})
	}
}
