package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Shaper measures text with HarfBuzz shaping, so ligatures and kerning
// pairs the atlas does not know about are reflected in advances.
//
// Shaper is safe for concurrent use: the parsed font is read-only and
// HarfbuzzShaper instances are pooled.
type Shaper struct {
	font *font.Font
	pool sync.Pool
	lang language.Language
}

// NewShaper parses ttf for shaping.
func NewShaper(ttf []byte) (*Shaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("parse font for shaping: %w", err)
	}
	return &Shaper{
		font: face.Font,
		pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		lang: language.NewLanguage("en"),
	}, nil
}

// Advance returns the shaped width of a single line at size pixels.
func (s *Shaper) Advance(line string, size float32) float32 {
	if line == "" {
		return 0
	}
	runes := []rune(line)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(s.font),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  s.lang,
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)
	return float32(out.Advance) / 64
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
