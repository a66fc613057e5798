package ui

import "sync"

// maxCmdVertices is the most vertices one command may reference with
// uint16 indices relative to its VertexOffset.
const maxCmdVertices = 1 << 16

// drawListPool reuses DrawList buffers between frames.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]uint16, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawCmd is one GPU submission: a run of indices sharing a clip rectangle
// and a texture.
type DrawCmd struct {
	ClipRect     Rect   // Scissor rectangle in logical pixels
	TextureID    uint32 // Texture to bind (0 = untextured)
	VertexOffset uint32 // Base vertex added to every index
	IndexOffset  uint32 // First index in IdxBuffer
	ElemCount    uint32 // Number of indices
}

// DrawList accumulates primitives for one render layer.
// A new command starts only when the clip or texture changes, or when the
// current command would overflow uint16 indexing.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	clip      Rect
	textureID uint32
}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clip = infiniteRect
	dl.textureID = 0
}

// SetClip sets the clip rectangle for subsequent primitives.
func (dl *DrawList) SetClip(r Rect) {
	dl.clip = r
}

// SetTexture sets the texture for subsequent primitives.
func (dl *DrawList) SetTexture(textureID uint32) {
	dl.textureID = textureID
}

// Clip returns the clip rectangle applied to new primitives.
func (dl *DrawList) Clip() Rect {
	return dl.clip
}

// reserve makes sure the last command matches the current state and has room
// for n more vertices, starting a new command otherwise.
func (dl *DrawList) reserve(n int) *DrawCmd {
	if k := len(dl.CmdBuffer); k > 0 {
		last := &dl.CmdBuffer[k-1]
		if last.ElemCount == 0 {
			// Nothing drawn with the old state yet; retarget it.
			last.ClipRect = dl.clip
			last.TextureID = dl.textureID
			last.VertexOffset = uint32(len(dl.VtxBuffer))
			last.IndexOffset = uint32(len(dl.IdxBuffer))
			return last
		}
		used := len(dl.VtxBuffer) - int(last.VertexOffset)
		if last.ClipRect == dl.clip && last.TextureID == dl.textureID && used+n <= maxCmdVertices {
			return last
		}
	}
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.clip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	return &dl.CmdBuffer[len(dl.CmdBuffer)-1]
}

// quad appends four vertices and the six indices of two triangles.
func (dl *DrawList) quad(v0, v1, v2, v3 Vertex) {
	cmd := dl.reserve(4)
	base := uint16(len(dl.VtxBuffer) - int(cmd.VertexOffset))
	dl.VtxBuffer = append(dl.VtxBuffer, v0, v1, v2, v3)
	dl.IdxBuffer = append(dl.IdxBuffer, base, base+1, base+2, base, base+2, base+3)
	cmd.ElemCount += 6
}

// culled reports whether r lies completely outside the current clip.
func (dl *DrawList) culled(r Rect) bool {
	return !dl.clip.Intersects(r)
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(r Rect, color uint32) {
	if color&0xFF000000 == 0 || r.IsEmpty() || dl.culled(r) {
		return
	}
	dl.quad(
		Vertex{Pos: [2]float32{r.X, r.Y}, Color: color},
		Vertex{Pos: [2]float32{r.X + r.W, r.Y}, Color: color},
		Vertex{Pos: [2]float32{r.X + r.W, r.Y + r.H}, Color: color},
		Vertex{Pos: [2]float32{r.X, r.Y + r.H}, Color: color},
	)
}

// AddRectOutline draws a rectangle outline of the given thickness.
func (dl *DrawList) AddRectOutline(r Rect, color uint32, thickness float32) {
	if color&0xFF000000 == 0 || thickness <= 0 {
		return
	}
	dl.AddRect(Rect{X: r.X, Y: r.Y, W: r.W, H: thickness}, color)
	dl.AddRect(Rect{X: r.X, Y: r.Y + r.H - thickness, W: r.W, H: thickness}, color)
	dl.AddRect(Rect{X: r.X, Y: r.Y + thickness, W: thickness, H: r.H - 2*thickness}, color)
	dl.AddRect(Rect{X: r.X + r.W - thickness, Y: r.Y + thickness, W: thickness, H: r.H - 2*thickness}, color)
}

// AddLine draws a line between two points as a quad.
func (dl *DrawList) AddLine(a, b Vec2, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	d := b.Sub(a)
	inv := float32(1)
	if l := d.Len(); l > 0 {
		inv = 1 / l
	}
	// Normal perpendicular to the line, half the thickness long.
	nx := -d.Y * inv * thickness * 0.5
	ny := d.X * inv * thickness * 0.5
	dl.quad(
		Vertex{Pos: [2]float32{a.X + nx, a.Y + ny}, Color: color},
		Vertex{Pos: [2]float32{b.X + nx, b.Y + ny}, Color: color},
		Vertex{Pos: [2]float32{b.X - nx, b.Y - ny}, Color: color},
		Vertex{Pos: [2]float32{a.X - nx, a.Y - ny}, Color: color},
	)
}

// AddImage draws a textured rectangle covering the full texture.
func (dl *DrawList) AddImage(r Rect, textureID uint32, tint uint32) {
	if r.IsEmpty() || dl.culled(r) {
		return
	}
	prev := dl.textureID
	dl.SetTexture(textureID)
	dl.quad(
		Vertex{Pos: [2]float32{r.X, r.Y}, TexCoord: [2]float32{0, 0}, Color: tint},
		Vertex{Pos: [2]float32{r.X + r.W, r.Y}, TexCoord: [2]float32{1, 0}, Color: tint},
		Vertex{Pos: [2]float32{r.X + r.W, r.Y + r.H}, TexCoord: [2]float32{1, 1}, Color: tint},
		Vertex{Pos: [2]float32{r.X, r.Y + r.H}, TexCoord: [2]float32{0, 1}, Color: tint},
	)
	dl.SetTexture(prev)
}

// GlyphQuad is a single glyph's screen and atlas rectangle.
type GlyphQuad struct {
	X0, Y0 float32 // Screen coordinates (top-left)
	X1, Y1 float32 // Screen coordinates (bottom-right)
	U0, V0 float32 // Texture coordinates (top-left)
	U1, V1 float32 // Texture coordinates (bottom-right)
}

// AddGlyphQuads draws glyph quads sampled from textureID.
func (dl *DrawList) AddGlyphQuads(quads []GlyphQuad, textureID uint32, color uint32) {
	if color&0xFF000000 == 0 || len(quads) == 0 {
		return
	}
	prev := dl.textureID
	dl.SetTexture(textureID)
	for _, q := range quads {
		if dl.culled(Rect{X: q.X0, Y: q.Y0, W: q.X1 - q.X0, H: q.Y1 - q.Y0}) {
			continue
		}
		dl.quad(
			Vertex{Pos: [2]float32{q.X0, q.Y0}, TexCoord: [2]float32{q.U0, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y0}, TexCoord: [2]float32{q.U1, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y1}, TexCoord: [2]float32{q.U1, q.V1}, Color: color},
			Vertex{Pos: [2]float32{q.X0, q.Y1}, TexCoord: [2]float32{q.U0, q.V1}, Color: color},
		)
	}
	dl.SetTexture(prev)
}

// Finalize drops empty commands. Call it once all primitives are added.
func (dl *DrawList) Finalize() {
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}
