package ui

// ToastKind picks a toast's colour and icon.
type ToastKind uint8

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// DefaultToastDuration is how long a toast stays up, in seconds.
const DefaultToastDuration float32 = 3.0

// ToastMaxVisible is how many toasts are drawn at once; older ones wait.
const ToastMaxVisible = 5

const (
	toastPaddingX = float32(12)
	toastPaddingY = float32(8)
	toastMargin   = float32(10)
	toastGap      = float32(6)
	toastFadeIn   = float32(0.15)
	toastFadeOut  = float32(0.7) // fraction of the duration where fading starts
)

// Toast is one message in a Toaster.
type Toast struct {
	Message  string
	Kind     ToastKind
	Duration float32
	Elapsed  float32
}

// opacity fades the toast in over toastFadeIn and out over the last 30% of
// its duration.
func (t Toast) opacity() float32 {
	switch {
	case t.Elapsed < toastFadeIn:
		return t.Elapsed / toastFadeIn
	case t.Elapsed > t.Duration*toastFadeOut:
		return clampf(1-(t.Elapsed-t.Duration*toastFadeOut)/(t.Duration*(1-toastFadeOut)), 0, 1)
	}
	return 1
}

// Toaster stacks short-lived messages in the bottom-right corner. Push it
// once as a non-modal overlay; its bounds only cover the visible toasts, so
// input elsewhere reaches the tree. A press on a toast dismisses it.
//
// Usage:
//
//	toasts := ui.NewToaster("toasts")
//	ctx.PushOverlay(toasts)
//	toasts.Show("Saved", ui.ToastSuccess)
type Toaster struct {
	Base
	Toasts []Toast

	svc   TextService
	rects []Rect // one per visible toast, newest first
	held  Rect   // a dismissed toast's area, kept until the click completes
}

// NewToaster creates an empty toaster.
func NewToaster(id string) *Toaster {
	return &Toaster{Base: NewBase(id)}
}

// SetTextService implements TextAware.
func (t *Toaster) SetTextService(svc TextService) { t.svc = svc }

// Show adds a message. A zero or missing duration uses
// DefaultToastDuration.
func (t *Toaster) Show(message string, kind ToastKind, duration ...float32) {
	dur := DefaultToastDuration
	if len(duration) > 0 && duration[0] > 0 {
		dur = duration[0]
	}
	t.Toasts = append(t.Toasts, Toast{Message: message, Kind: kind, Duration: dur})
	if len(t.Toasts) > ToastMaxVisible*2 {
		t.Toasts = append(t.Toasts[:0], t.Toasts[len(t.Toasts)-ToastMaxVisible:]...)
	}
}

func (t *Toaster) Info(message string)    { t.Show(message, ToastInfo) }
func (t *Toaster) Success(message string) { t.Show(message, ToastSuccess) }
func (t *Toaster) Warning(message string) { t.Show(message, ToastWarning) }
func (t *Toaster) Error(message string)   { t.Show(message, ToastError) }

// Update advances the timers and drops expired toasts.
func (t *Toaster) Update(dt float32) {
	active := t.Toasts[:0]
	for _, ts := range t.Toasts {
		ts.Elapsed += dt
		if ts.Elapsed < ts.Duration {
			active = append(active, ts)
		}
	}
	t.Toasts = active
}

// visible returns the index of the oldest drawn toast.
func (t *Toaster) visible() int {
	return max(len(t.Toasts)-ToastMaxVisible, 0)
}

// place stacks the visible toasts upwards from the bottom-right of area,
// newest at the bottom.
func (t *Toaster) place(measure func(string) Vec2, area Rect) []Rect {
	rects := t.rects[:0]
	x, y := area.X+area.W-toastMargin, area.Y+area.H-toastMargin
	for i := len(t.Toasts) - 1; i >= t.visible(); i-- {
		ts := t.Toasts[i]
		icon := measure(toastIcon(ts.Kind) + " ").X
		text := measure(ts.Message)
		w := icon + text.X + 2*toastPaddingX
		h := text.Y + 2*toastPaddingY
		rects = append(rects, Rect{X: x - w, Y: y - h, W: w, H: h})
		y -= h + toastGap
	}
	return rects
}

// Layout covers the visible toasts inside available.
func (t *Toaster) Layout(available Rect) Vec2 {
	svc := t.svc
	if svc == nil {
		svc = NewMonoTextService()
	}
	t.rects = t.place(func(s string) Vec2 { return svc.Measure(s, DefaultTextSize) }, available.Sanitize())
	bounds := t.held
	for _, r := range t.rects {
		bounds = bounds.Union(r)
	}
	t.SetBounds(bounds)
	return bounds.Size()
}

func (t *Toaster) Render(r *Renderer) {
	rects := t.place(func(s string) Vec2 { return r.MeasureText(s, DefaultTextSize) }, r.Viewport())
	for n, rect := range rects {
		ts := t.Toasts[len(t.Toasts)-1-n]
		op := ts.opacity()
		if op <= 0 {
			continue
		}
		alpha := func(a float32) uint8 { return uint8(a * op) }
		r.FillRect(rect, WithAlpha(toastColor(ts.Kind), alpha(230)))
		r.StrokeRect(rect, RGBA(255, 255, 255, alpha(60)), 1)

		icon := toastIcon(ts.Kind) + " "
		iconW := r.MeasureText(icon, DefaultTextSize).X
		style := TextStyle{Color: RGBA(255, 255, 255, alpha(255))}
		r.DrawText(icon, Vec2{X: rect.X + toastPaddingX, Y: rect.Y + toastPaddingY}, style)
		r.DrawText(ts.Message, Vec2{X: rect.X + toastPaddingX + iconW, Y: rect.Y + toastPaddingY}, style)
	}
	t.rects = rects
}

// OnEvent dismisses the toast under a press. Every pointer event that hits a
// toast is consumed, as are the release and click that finish a dismissal.
func (t *Toaster) OnEvent(e Event, _ *Context) bool {
	if !e.IsPointer() {
		return false
	}
	switch e.Kind {
	case EventMouseDown:
		t.held = Rect{}
	case EventMouseUp, EventClick:
		if t.held.Contains(e.Position) {
			if e.Kind == EventClick {
				t.held = Rect{}
			}
			return true
		}
	}
	for n, rect := range t.rects {
		if !rect.Contains(e.Position) {
			continue
		}
		if i := len(t.Toasts) - 1 - n; e.Kind == EventMouseDown && i >= 0 {
			Logger().Debug("toast dismissed", "message", t.Toasts[i].Message)
			t.Toasts = append(t.Toasts[:i], t.Toasts[i+1:]...)
			t.rects = nil
			t.held = rect
		}
		return true
	}
	return false
}

func toastColor(k ToastKind) uint32 {
	switch k {
	case ToastSuccess:
		return RGBA(46, 125, 50, 255)
	case ToastWarning:
		return RGBA(190, 130, 20, 255)
	case ToastError:
		return RGBA(180, 40, 40, 255)
	default:
		return RGBA(45, 70, 110, 255)
	}
}

func toastIcon(k ToastKind) string {
	switch k {
	case ToastSuccess:
		return "+"
	case ToastWarning:
		return "!"
	case ToastError:
		return "X"
	default:
		return "i"
	}
}
