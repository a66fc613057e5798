package ui

import (
	"slices"
	"strings"
)

// Pass identifies which half of the frame a draw belongs to.
type Pass uint8

const (
	PassMain    Pass = iota // component tree
	PassOverlay             // overlay queue, drawn after the tree
)

func (p Pass) String() string {
	if p == PassOverlay {
		return "overlay"
	}
	return "main"
}

// Batch is one GPU submission in a finished Frame.
type Batch struct {
	Clip         Rect
	TextureID    uint32
	Z            int
	Pass         Pass
	VertexOffset uint32 // base vertex for Indices[IndexOffset:IndexOffset+ElemCount]
	IndexOffset  uint32
	ElemCount    uint32
}

// Frame is the CPU-side output of a render: every layer flattened into one
// vertex/index buffer and an ordered batch list. A Frame is never touched by
// the renderer after EndFrame returns it, so it can be handed to another
// goroutine for submission.
type Frame struct {
	Viewport Rect
	Vertices []Vertex
	Indices  []uint16
	Batches  []Batch
}

// DrawCalls returns the number of GPU submissions the frame needs.
func (f *Frame) DrawCalls() int {
	return len(f.Batches)
}

// layerKey orders layers: by z first, then main before overlay.
type layerKey struct {
	z    int
	pass Pass
}

func compareLayers(a, b layerKey) int {
	if a.z != b.z {
		return a.z - b.z
	}
	return int(a.pass) - int(b.pass)
}

// zEntry remembers the clip stack that was active before a z-index push.
type zEntry struct {
	z     int
	clips *ClipStack
}

// Renderer is the drawing handle passed to Component.Render. It batches
// primitives per layer and clip/texture, then flattens them in EndFrame.
//
// Usage:
//
//	r := ui.NewRenderer(ui.NewMonoTextService())
//	r.BeginFrame(ui.Rect{W: 800, H: 600})
//	r.RenderTree(root)
//	r.RenderOverlays(queue)
//	frame := r.EndFrame()
type Renderer struct {
	text     TextService
	viewport Rect
	pass     Pass
	clips    *ClipStack
	zStack   []zEntry
	layers   map[layerKey]*DrawList
	current  *DrawList
}

// NewRenderer creates a renderer that delegates text to svc.
// A nil svc falls back to MonoTextService.
func NewRenderer(svc TextService) *Renderer {
	if svc == nil {
		svc = NewMonoTextService()
	}
	return &Renderer{
		text:   svc,
		clips:  NewClipStack(infiniteRect),
		layers: make(map[layerKey]*DrawList),
	}
}

// BeginFrame resets all layers and sets the viewport as the root clip.
func (r *Renderer) BeginFrame(viewport Rect) {
	for k, dl := range r.layers {
		ReleaseDrawList(dl)
		delete(r.layers, k)
	}
	r.viewport = viewport
	r.clips = NewClipStack(viewport)
	r.zStack = r.zStack[:0]
	r.pass = PassMain
	r.selectLayer()
}

// selectLayer points current at the layer for the active (z, pass).
func (r *Renderer) selectLayer() {
	key := layerKey{z: r.ZIndex(), pass: r.pass}
	dl, ok := r.layers[key]
	if !ok {
		dl = AcquireDrawList()
		r.layers[key] = dl
	}
	dl.SetClip(r.clips.Current())
	r.current = dl
}

// Text returns the text service used for measurement.
func (r *Renderer) Text() TextService {
	return r.text
}

// Viewport returns the frame's viewport.
func (r *Renderer) Viewport() Rect {
	return r.viewport
}

// Pass returns the pass currently being recorded.
func (r *Renderer) Pass() Pass {
	return r.pass
}

// CurrentClip returns the active clip rectangle.
func (r *Renderer) CurrentClip() Rect {
	return r.clips.Current()
}

// PushClip narrows the clip to r ∩ current.
func (r *Renderer) PushClip(rect Rect) {
	r.clips.Push(rect)
	r.current.SetClip(r.clips.Current())
}

// PopClip restores the previous clip. Unbalanced pops panic.
func (r *Renderer) PopClip() {
	r.clips.Pop()
	r.current.SetClip(r.clips.Current())
}

// ZIndex returns the active z-index (0 when nothing is pushed).
func (r *Renderer) ZIndex() int {
	if n := len(r.zStack); n > 0 {
		return r.zStack[n-1].z
	}
	return 0
}

// PushZIndex promotes subsequent draws to layer z. Promoted draws start from
// the viewport clip, so they escape ancestor clipping the same way overlays do.
func (r *Renderer) PushZIndex(z int) {
	r.zStack = append(r.zStack, zEntry{z: z, clips: r.clips})
	r.clips = NewClipStack(r.viewport)
	r.selectLayer()
}

// PopZIndex returns to the previous layer. Clips pushed inside the z scope
// must already be popped.
func (r *Renderer) PopZIndex() {
	n := len(r.zStack)
	if n == 0 {
		panic(&ClipImbalanceError{Stack: "z-index", Depth: -1})
	}
	r.clips.AssertBalanced()
	r.clips = r.zStack[n-1].clips
	r.zStack = r.zStack[:n-1]
	r.selectLayer()
}

// WithZIndex runs fn with draws promoted to layer z.
func (r *Renderer) WithZIndex(z int, fn func()) {
	r.PushZIndex(z)
	defer r.PopZIndex()
	fn()
}

// FillRect draws a filled rectangle.
func (r *Renderer) FillRect(rect Rect, color uint32) {
	r.current.AddRect(rect, color)
}

// StrokeRect draws a rectangle outline inside rect.
func (r *Renderer) StrokeRect(rect Rect, color uint32, width float32) {
	r.current.AddRectOutline(rect, color, width)
}

// DrawLine draws a line segment.
func (r *Renderer) DrawLine(a, b Vec2, color uint32, width float32) {
	r.current.AddLine(a, b, color, width)
}

// DrawImage draws a texture stretched over rect.
func (r *Renderer) DrawImage(rect Rect, textureID uint32, tint uint32) {
	r.current.AddImage(rect, textureID, tint)
}

// DrawStyledRect draws shadow, background and border in that order.
func (r *Renderer) DrawStyledRect(rect Rect, st Style) {
	if st.Shadow.Color != 0 {
		r.FillRect(Rect{X: rect.X + st.Shadow.Offset.X, Y: rect.Y + st.Shadow.Offset.Y, W: rect.W, H: rect.H}, st.Shadow.Color)
	}
	r.FillRect(rect, st.Background)
	if st.Border.Width > 0 {
		r.StrokeRect(rect, st.Border.Color, st.Border.Width)
	}
}

// MeasureText returns the size of text at size via the text service.
func (r *Renderer) MeasureText(text string, size float32) Vec2 {
	if size <= 0 {
		size = DefaultTextSize
	}
	return r.text.Measure(text, size)
}

// DrawText draws text with its top-left corner at pos. Newlines start new
// lines; no wrapping is applied.
func (r *Renderer) DrawText(text string, pos Vec2, style TextStyle) {
	if text == "" {
		return
	}
	size := style.size()
	lh := r.text.LineHeight(size)
	for i, line := range strings.Split(text, "\n") {
		r.drawLine(line, Vec2{X: pos.X, Y: pos.Y + float32(i)*lh}, size, style.Color)
	}
}

// DrawTextWrapped wraps text to rect's width and draws it from rect's
// top-left corner. Lines below the rect are still emitted; the clip culls them.
func (r *Renderer) DrawTextWrapped(text string, rect Rect, style TextStyle) {
	size := style.size()
	mode := style.Wrap
	if mode == WrapModeNone {
		mode = WrapModeWord
	}
	lh := r.text.LineHeight(size)
	for i, line := range WrapText(r.text, text, rect.W, size, mode) {
		r.drawLine(line, Vec2{X: rect.X, Y: rect.Y + float32(i)*lh}, size, style.Color)
	}
}

func (r *Renderer) drawLine(line string, origin Vec2, size float32, color uint32) {
	if line == "" {
		return
	}
	r.current.AddGlyphQuads(r.text.Glyphs(line, origin, size), r.text.TextureID(), color)
}

// RenderTree records pass 1: the component tree, parents before children,
// each component clipped to its bounds intersected with its ancestors'.
func (r *Renderer) RenderTree(root Component) {
	r.pass = PassMain
	r.selectLayer()
	if root != nil {
		r.renderNode(root)
	}
	r.clips.AssertBalanced()
}

// RenderOverlays records pass 2: overlays in insertion order, each starting
// from the bare viewport clip.
func (r *Renderer) RenderOverlays(q *OverlayQueue) {
	r.clips.AssertBalanced()
	r.pass = PassOverlay
	r.selectLayer()
	if q != nil {
		q.Each(func(o *Overlay) {
			r.clips.Reset(r.viewport)
			r.current.SetClip(r.viewport)
			r.renderNode(o.Component)
			r.clips.AssertBalanced()
		})
	}
	r.pass = PassMain
	r.selectLayer()
}

func (r *Renderer) renderNode(c Component) {
	r.PushClip(c.Bounds())
	c.Render(r)
	for i := 0; i < c.ChildCount(); i++ {
		if child := c.Child(i); child != nil {
			r.renderNode(child)
		}
	}
	r.PopClip()
}

// EndFrame flattens every layer into a Frame. Layers are emitted by z-index,
// main pass before overlay pass within the same z. Adjacent batches with the
// same clip and texture are merged. Unbalanced clip or z-index stacks panic.
func (r *Renderer) EndFrame() *Frame {
	r.clips.AssertBalanced()
	if len(r.zStack) != 0 {
		panic(&ClipImbalanceError{Stack: "z-index", Depth: len(r.zStack)})
	}

	keys := make([]layerKey, 0, len(r.layers))
	nv, ni := 0, 0
	for k, dl := range r.layers {
		dl.Finalize()
		keys = append(keys, k)
		nv += len(dl.VtxBuffer)
		ni += len(dl.IdxBuffer)
	}
	slices.SortFunc(keys, compareLayers)

	f := &Frame{
		Viewport: r.viewport,
		Vertices: make([]Vertex, 0, nv),
		Indices:  make([]uint16, 0, ni),
	}
	for _, k := range keys {
		dl := r.layers[k]
		vbase := uint32(len(f.Vertices))
		f.Vertices = append(f.Vertices, dl.VtxBuffer...)
		for i, cmd := range dl.CmdBuffer {
			end := uint32(len(dl.VtxBuffer))
			if i+1 < len(dl.CmdBuffer) {
				end = dl.CmdBuffer[i+1].VertexOffset
			}
			f.appendCmd(k, cmd, vbase, end-cmd.VertexOffset, dl.IdxBuffer)
		}
	}
	return f
}

// appendCmd copies one layer command into the frame, folding it into the
// previous batch when state matches and the indices still fit in uint16.
func (f *Frame) appendCmd(k layerKey, cmd DrawCmd, vbase, nverts uint32, idx []uint16) {
	src := idx[cmd.IndexOffset : cmd.IndexOffset+cmd.ElemCount]
	vo := vbase + cmd.VertexOffset
	if n := len(f.Batches); n > 0 {
		last := &f.Batches[n-1]
		shift := vo - last.VertexOffset
		if last.Z == k.z && last.Pass == k.pass &&
			last.Clip == cmd.ClipRect && last.TextureID == cmd.TextureID &&
			shift+nverts <= maxCmdVertices {
			for _, i := range src {
				f.Indices = append(f.Indices, i+uint16(shift))
			}
			last.ElemCount += cmd.ElemCount
			return
		}
	}
	f.Batches = append(f.Batches, Batch{
		Clip:         cmd.ClipRect,
		TextureID:    cmd.TextureID,
		Z:            k.z,
		Pass:         k.pass,
		VertexOffset: vo,
		IndexOffset:  uint32(len(f.Indices)),
		ElemCount:    cmd.ElemCount,
	})
	f.Indices = append(f.Indices, src...)
}
