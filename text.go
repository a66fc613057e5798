package ui

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// TextService measures and lays out text. The runtime never shapes text
// itself; it only needs advances, line heights and glyph quads.
//
// The text package provides an atlas-backed implementation; MonoTextService
// is a fixed-advance fallback for headless use and tests.
type TextService interface {
	// Measure returns the size of text at the given pixel size.
	// Newlines start a new line.
	Measure(text string, size float32) Vec2

	// LineHeight returns the distance between baselines at size.
	LineHeight(size float32) float32

	// Glyphs returns screen quads for a single line of text whose top-left
	// corner is origin. The slice is only valid until the next call.
	Glyphs(text string, origin Vec2, size float32) []GlyphQuad

	// TextureID is the texture the glyph UVs refer to.
	TextureID() uint32
}

// DefaultTextSize is used when a TextStyle leaves Size at zero.
const DefaultTextSize float32 = 14

// TextStyle configures a text draw.
type TextStyle struct {
	Size  float32
	Color uint32
	Wrap  TextWrapMode
}

func (s TextStyle) size() float32 {
	if s.Size <= 0 {
		return DefaultTextSize
	}
	return s.Size
}

// MonoTextService treats every rune as a fixed fraction of the font size.
type MonoTextService struct {
	Advance float32 // advance per rune as a fraction of size (default 0.5)
	Leading float32 // line height as a multiple of size (default 1.25)
	Texture uint32

	quads []GlyphQuad
}

// NewMonoTextService returns a service with the default metrics.
func NewMonoTextService() *MonoTextService {
	return &MonoTextService{Advance: 0.5, Leading: 1.25}
}

func (m *MonoTextService) advance(size float32) float32 {
	if m.Advance <= 0 {
		return size * 0.5
	}
	return size * m.Advance
}

// LineHeight implements TextService.
func (m *MonoTextService) LineHeight(size float32) float32 {
	if m.Leading <= 0 {
		return size * 1.25
	}
	return size * m.Leading
}

// Measure implements TextService.
func (m *MonoTextService) Measure(text string, size float32) Vec2 {
	if text == "" {
		return Vec2{}
	}
	lines := strings.Split(text, "\n")
	var w float32
	for _, line := range lines {
		w = maxf(w, float32(utf8.RuneCountInString(line))*m.advance(size))
	}
	return Vec2{X: w, Y: float32(len(lines)) * m.LineHeight(size)}
}

// Glyphs implements TextService.
func (m *MonoTextService) Glyphs(text string, origin Vec2, size float32) []GlyphQuad {
	m.quads = m.quads[:0]
	adv := m.advance(size)
	x := origin.X
	for _, r := range text {
		if r != ' ' && r != '\t' {
			m.quads = append(m.quads, GlyphQuad{
				X0: x, Y0: origin.Y,
				X1: x + adv, Y1: origin.Y + size,
				U1: 1, V1: 1,
			})
		}
		x += adv
	}
	return m.quads
}

// TextureID implements TextService.
func (m *MonoTextService) TextureID() uint32 {
	return m.Texture
}

// TextWrapMode specifies how text should be wrapped.
type TextWrapMode int

const (
	// WrapModeNone keeps each paragraph on one line.
	WrapModeNone TextWrapMode = iota
	// WrapModeWord wraps at word boundaries.
	WrapModeWord
	// WrapModeChar wraps at character boundaries (for CJK or dense text).
	WrapModeChar
	// WrapModeAuto uses char wrapping when the text has East Asian wide runes.
	WrapModeAuto
)

// WrapText splits text into lines no wider than maxWidth.
// Explicit newlines always break. A single word wider than maxWidth is kept
// on its own line rather than dropped.
func WrapText(svc TextService, text string, maxWidth, size float32, mode TextWrapMode) []string {
	if text == "" {
		return nil
	}
	paragraphs := strings.Split(text, "\n")
	if maxWidth <= 0 || mode == WrapModeNone {
		return paragraphs
	}
	if mode == WrapModeAuto {
		mode = WrapModeWord
		if containsWide(text) {
			mode = WrapModeChar
		}
	}

	var lines []string
	for _, p := range paragraphs {
		if p == "" {
			lines = append(lines, "")
			continue
		}
		if mode == WrapModeChar {
			lines = append(lines, wrapByChar(svc, p, maxWidth, size)...)
		} else {
			lines = append(lines, wrapByWord(svc, p, maxWidth, size)...)
		}
	}
	return lines
}

// wrapByWord wraps text at word boundaries.
func wrapByWord(svc TextService, text string, maxWidth, size float32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if svc.Measure(candidate, size).X > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// wrapByChar wraps text at rune boundaries.
func wrapByChar(svc TextService, text string, maxWidth, size float32) []string {
	var lines []string
	var current []rune
	for _, r := range text {
		candidate := append(current, r)
		if svc.Measure(string(candidate), size).X > maxWidth && len(current) > 0 {
			lines = append(lines, string(current))
			current = []rune{r}
		} else {
			current = candidate
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

// containsWide reports whether text has any East Asian wide or fullwidth rune.
func containsWide(text string) bool {
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			return true
		}
	}
	return false
}

// MeasureWrappedText returns the size of text after wrapping to maxWidth.
func MeasureWrappedText(svc TextService, text string, maxWidth, size float32, mode TextWrapMode) Vec2 {
	lines := WrapText(svc, text, maxWidth, size, mode)
	if len(lines) == 0 {
		return Vec2{}
	}
	var w float32
	for _, line := range lines {
		w = maxf(w, svc.Measure(line, size).X)
	}
	return Vec2{X: w, Y: float32(len(lines)) * svc.LineHeight(size)}
}

// TruncateText shortens text to fit maxWidth, appending suffix when cut.
func TruncateText(svc TextService, text string, maxWidth, size float32, suffix string) string {
	if svc.Measure(text, size).X <= maxWidth {
		return text
	}
	target := maxWidth - svc.Measure(suffix, size).X
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if svc.Measure(string(runes), size).X <= target {
			return string(runes) + suffix
		}
	}
	if svc.Measure(suffix, size).X <= maxWidth {
		return suffix
	}
	return ""
}
