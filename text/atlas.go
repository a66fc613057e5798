package text

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrAtlasTooLarge is returned when the requested glyphs do not fit in the
// largest supported atlas.
var ErrAtlasTooLarge = errors.New("glyph atlas too large")

const (
	atlasPadding = 2
	atlasMinSize = 256
	atlasMaxSize = 4096
)

// Glyph is one rasterised rune in an Atlas. Metrics are in pixels at the
// atlas size.
type Glyph struct {
	Advance  float32
	BearingX float32 // left bearing
	BearingY float32 // distance from the baseline up to the glyph top
	W, H     int
	U0, V0   float32
	U1, V1   float32
}

// Atlas is a single-channel glyph texture rasterised from an OpenType font,
// plus the metrics needed to lay glyphs out.
type Atlas struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Image                    *image.Alpha // coverage, one byte per texel
	TTF                      []byte

	kerning map[[2]rune]float32
	face    font.Face
}

// DefaultRunes is Latin-1: printable ASCII plus the Latin-1 supplement.
func DefaultRunes() []rune {
	runes := make([]rune, 0, 224)
	for r := rune(32); r <= 255; r++ {
		if r >= 127 && r < 160 {
			continue
		}
		runes = append(runes, r)
	}
	return runes
}

// NewDefaultAtlas rasterises Go Regular at sizePx.
func NewDefaultAtlas(sizePx float32) (*Atlas, error) {
	return NewAtlas(goregular.TTF, sizePx, DefaultRunes())
}

// NewAtlas rasterises runes from an OpenType/TrueType font at sizePx and
// shelf-packs them into a square texture, doubling its size until they fit.
func NewAtlas(ttf []byte, sizePx float32, runes []rune) (*Atlas, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("atlas size %v must be positive", sizePx)
	}
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(m.Descent.Round())
	lineGap := maxf(float32(m.Height.Round())-ascent-descent, 0)

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measured := make([]meas, 0, len(runes))
	for _, r := range runes {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measured = append(measured, meas{
			r:   r,
			w:   (b.Max.X - b.Min.X).Ceil(),
			h:   (b.Max.Y - b.Min.Y).Ceil(),
			adv: float32(adv.Round()),
			bx:  float32(b.Min.X.Floor()),
			by:  float32(-b.Min.Y.Floor()),
		})
	}

	size := atlasMinSize
	var pos map[rune]image.Point
	for {
		var fits bool
		pos, fits = shelfPack(size, len(measured), func(i int) (rune, int, int) {
			g := measured[i]
			return g.r, g.w, g.h
		})
		if fits {
			break
		}
		size *= 2
		if size > atlasMaxSize {
			_ = face.Close()
			return nil, fmt.Errorf("%w: %d runes at %vpx", ErrAtlasTooLarge, len(measured), sizePx)
		}
	}

	img := image.NewAlpha(image.Rect(0, 0, size, size))
	drawer := &font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	glyphs := make(map[rune]Glyph, len(measured))
	for _, g := range measured {
		gl := Glyph{Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			gl.U0 = float32(p.X) / float32(size)
			gl.V0 = float32(p.Y) / float32(size)
			gl.U1 = float32(p.X+g.w) / float32(size)
			gl.V1 = float32(p.Y+g.h) / float32(size)
		}
		glyphs[g.r] = gl
	}

	kerning := make(map[[2]rune]float32)
	for _, a := range measured {
		for _, b := range measured {
			if dx := face.Kern(a.r, b.r); dx != 0 {
				kerning[[2]rune{a.r, b.r}] = float32(dx.Round())
			}
		}
	}

	return &Atlas{
		SizePx:  sizePx,
		Ascent:  ascent,
		Descent: descent,
		LineGap: lineGap,
		Glyphs:  glyphs,
		Image:   img,
		TTF:     ttf,
		kerning: kerning,
		face:    face,
	}, nil
}

// shelfPack places n boxes left to right in rows. Empty boxes get no slot.
func shelfPack(size, n int, box func(i int) (rune, int, int)) (map[rune]image.Point, bool) {
	pos := make(map[rune]image.Point, n)
	x, y, rowH := atlasPadding, atlasPadding, 0
	for i := 0; i < n; i++ {
		r, w, h := box(i)
		if w <= 0 || h <= 0 {
			continue
		}
		if w+2*atlasPadding > size {
			return nil, false
		}
		if x+w+atlasPadding > size {
			x = atlasPadding
			y += rowH + atlasPadding
			rowH = 0
		}
		if y+h+atlasPadding > size {
			return nil, false
		}
		pos[r] = image.Pt(x, y)
		x += w + atlasPadding
		rowH = max(rowH, h)
	}
	return pos, true
}

// Glyph returns the glyph for r, falling back to '?' for runes the atlas
// does not hold.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	if g, ok := a.Glyphs[r]; ok {
		return g, true
	}
	g, ok := a.Glyphs['?']
	return g, ok
}

// Kern returns the kerning adjustment between two runes in pixels.
func (a *Atlas) Kern(left, right rune) float32 {
	return a.kerning[[2]rune{left, right}]
}

// LineHeight is the distance between baselines at the atlas size.
func (a *Atlas) LineHeight() float32 {
	return a.Ascent + a.Descent + a.LineGap
}

// Close releases the rasteriser face. The glyph data stays usable.
func (a *Atlas) Close() error {
	if a == nil || a.face == nil {
		return nil
	}
	err := a.face.Close()
	a.face = nil
	return err
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
