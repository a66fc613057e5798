package ui

// Label displays a block of text.
type Label struct {
	Base
	Text  string
	Style TextStyle

	svc TextService
}

// NewLabel creates a label in the default text style.
func NewLabel(text string) *Label {
	return &Label{Text: text, Style: TextStyle{Color: ColorWhite}}
}

// SetTextService implements TextAware.
func (l *Label) SetTextService(svc TextService) {
	l.svc = svc
}

func (l *Label) textService() TextService {
	if l.svc == nil {
		l.svc = NewMonoTextService()
	}
	return l.svc
}

// Measure returns the label's size when wrapped to maxWidth. A non-positive
// maxWidth, or WrapModeNone, measures the text unwrapped.
func (l *Label) Measure(maxWidth float32) Vec2 {
	svc := l.textService()
	if l.Style.Wrap == WrapModeNone || maxWidth <= 0 {
		return svc.Measure(l.Text, l.Style.size())
	}
	return MeasureWrappedText(svc, l.Text, maxWidth, l.Style.size(), l.Style.Wrap)
}

// Layout sizes the label to its text.
func (l *Label) Layout(available Rect) Vec2 {
	size := l.Measure(available.W)
	l.SetBounds(Rect{X: available.X, Y: available.Y, W: size.X, H: size.Y})
	return size
}

func (l *Label) Render(r *Renderer) {
	if l.Style.Wrap == WrapModeNone {
		r.DrawText(l.Text, l.Bounds().Pos(), l.Style)
		return
	}
	r.DrawTextWrapped(l.Text, l.Bounds(), l.Style)
}
