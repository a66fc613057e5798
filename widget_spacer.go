package ui

// Spacer reserves empty space in a stack.
type Spacer struct {
	Base
	Size Vec2
}

// NewSpacer creates a spacer of the given size.
func NewSpacer(w, h float32) *Spacer {
	return &Spacer{Size: Vec2{X: maxf(w, 0), Y: maxf(h, 0)}}
}

func (s *Spacer) Layout(available Rect) Vec2 {
	s.SetBounds(Rect{X: available.X, Y: available.Y, W: s.Size.X, H: s.Size.Y})
	return s.Bounds().Size()
}
