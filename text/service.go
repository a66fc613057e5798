// Package text provides an atlas-backed ui.TextService: glyphs are
// rasterised once from an OpenType font with golang.org/x/image, and widths
// can optionally come from HarfBuzz shaping via go-text/typesetting.
package text

import (
	"strings"

	ui "github.com/go-theft-auto/ui"
)

// Service implements ui.TextService on top of an Atlas. Sizes other than the
// atlas size are drawn by scaling the atlas glyphs.
type Service struct {
	atlas   *Atlas
	shaper  *Shaper
	texture uint32
	quads   []ui.GlyphQuad
}

// Option configures a Service.
type Option func(*Service)

// WithTexture sets the texture id glyph quads refer to. Backends set it
// after uploading Atlas.Image.
func WithTexture(id uint32) Option {
	return func(s *Service) { s.texture = id }
}

// WithShaper measures line widths with HarfBuzz instead of summing atlas
// advances.
func WithShaper(sh *Shaper) Option {
	return func(s *Service) { s.shaper = sh }
}

// NewService creates a text service drawing from atlas.
func NewService(atlas *Atlas, opts ...Option) *Service {
	s := &Service{atlas: atlas}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefaultService builds a Go Regular atlas at sizePx with shaping on.
func NewDefaultService(sizePx float32) (*Service, error) {
	atlas, err := NewDefaultAtlas(sizePx)
	if err != nil {
		return nil, err
	}
	sh, err := NewShaper(atlas.TTF)
	if err != nil {
		_ = atlas.Close()
		return nil, err
	}
	return NewService(atlas, WithShaper(sh)), nil
}

// Atlas returns the glyph atlas.
func (s *Service) Atlas() *Atlas { return s.atlas }

// SetTextureID sets the texture id glyph quads refer to.
func (s *Service) SetTextureID(id uint32) { s.texture = id }

// TextureID implements ui.TextService.
func (s *Service) TextureID() uint32 { return s.texture }

func (s *Service) scale(size float32) float32 {
	if size <= 0 {
		size = ui.DefaultTextSize
	}
	return size / s.atlas.SizePx
}

// LineHeight implements ui.TextService.
func (s *Service) LineHeight(size float32) float32 {
	return s.atlas.LineHeight() * s.scale(size)
}

// Measure implements ui.TextService.
func (s *Service) Measure(text string, size float32) ui.Vec2 {
	if text == "" {
		return ui.Vec2{}
	}
	lines := strings.Split(text, "\n")
	var w float32
	for _, line := range lines {
		w = maxf(w, s.lineWidth(line, size))
	}
	return ui.Vec2{X: w, Y: float32(len(lines)) * s.LineHeight(size)}
}

func (s *Service) lineWidth(line string, size float32) float32 {
	if s.shaper != nil {
		return s.shaper.Advance(line, size)
	}
	var w float32
	prev := rune(-1)
	for _, r := range line {
		g, ok := s.atlas.Glyph(r)
		if !ok {
			continue
		}
		if prev >= 0 {
			w += s.atlas.Kern(prev, r)
		}
		w += g.Advance
		prev = r
	}
	return w * s.scale(size)
}

// Glyphs implements ui.TextService.
func (s *Service) Glyphs(text string, origin ui.Vec2, size float32) []ui.GlyphQuad {
	s.quads = s.quads[:0]
	sc := s.scale(size)
	baseline := origin.Y + s.atlas.Ascent*sc
	x := origin.X
	prev := rune(-1)
	for _, r := range text {
		g, ok := s.atlas.Glyph(r)
		if !ok {
			continue
		}
		if prev >= 0 {
			x += s.atlas.Kern(prev, r) * sc
		}
		prev = r
		if g.W > 0 && g.H > 0 {
			x0 := x + g.BearingX*sc
			y0 := baseline - g.BearingY*sc
			s.quads = append(s.quads, ui.GlyphQuad{
				X0: x0, Y0: y0,
				X1: x0 + float32(g.W)*sc, Y1: y0 + float32(g.H)*sc,
				U0: g.U0, V0: g.V0,
				U1: g.U1, V1: g.V1,
			})
		}
		x += g.Advance * sc
	}
	return s.quads
}

// Close releases the atlas rasteriser.
func (s *Service) Close() error {
	return s.atlas.Close()
}

var _ ui.TextService = (*Service)(nil)
