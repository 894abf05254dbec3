// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Penalties at or above suppressBreak forbid a line break, penalties
// at or below mustBreak force one.
const (
	suppressBreak = 1000
	mustBreak     = -1000
)

// Shaper wraps and measures text with a single font face. Layouts
// are cached, so a Shaper must not be used concurrently.
type Shaper struct {
	face    font.Face
	metrics font.Metrics

	layouts  lru[layoutKey, Layout]
	segments lru[string, []run]
}

// run is an unbreakable piece of text followed by a break
// opportunity.
type run struct {
	text string
	// advance includes trailing white space, width excludes it.
	advance, width fixed.Int26_6
	// mandatory is set when the break after the run is forced.
	mandatory bool
}

// NewShaper returns a Shaper for the Go Regular font at the given
// size in pixels.
func NewShaper(size float32) (*Shaper, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("text: parse default font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: create face: %w", err)
	}
	return NewShaperFace(face), nil
}

// NewShaperFace returns a Shaper for face.
func NewShaperFace(face font.Face) *Shaper {
	return &Shaper{face: face, metrics: face.Metrics()}
}

// LineHeight returns the height of a single line.
func (s *Shaper) LineHeight() float32 {
	return float32((s.metrics.Ascent + s.metrics.Descent).Ceil())
}

// Layout wraps str to maxWidth pixels. A run wider than maxWidth
// occupies a line of its own. Use math.Inf(1) or any value beyond
// the text width to disable wrapping.
func (s *Shaper) Layout(str string, maxWidth float32) Layout {
	key := layoutKey{maxWidth: clampFixed(maxWidth), str: str}
	if l, ok := s.layouts.Get(key); ok {
		return l
	}
	l := s.layout(s.runs(str), key.maxWidth)
	s.layouts.Put(key, l)
	return l
}

// MinWidth returns the width of the widest unbreakable run of str.
func (s *Shaper) MinWidth(str string) float32 {
	var w fixed.Int26_6
	for _, r := range s.runs(str) {
		if r.width > w {
			w = r.width
		}
	}
	return float32(w.Ceil())
}

func (s *Shaper) layout(runs []run, maxWidth fixed.Int26_6) Layout {
	var l Layout
	var b strings.Builder
	var advance, width fixed.Int26_6
	empty := true
	flush := func() {
		l.Lines = append(l.Lines, Line{
			Text:    b.String(),
			Width:   width,
			Ascent:  s.metrics.Ascent,
			Descent: s.metrics.Descent,
		})
		b.Reset()
		advance, width = 0, 0
		empty = true
	}
	for _, r := range runs {
		if !empty && advance+r.width > maxWidth {
			l.Wrapped = true
			flush()
		}
		b.WriteString(r.text)
		width = advance + r.width
		advance += r.advance
		empty = false
		if r.mandatory {
			flush()
		}
	}
	if !empty || len(l.Lines) == 0 {
		flush()
	}
	return l
}

// runs splits str into unbreakable runs.
func (s *Shaper) runs(str string) []run {
	if rs, ok := s.segments.Get(str); ok {
		return rs
	}
	var rs []run
	var cur strings.Builder
	emit := func(mandatory bool) {
		text := cur.String()
		cur.Reset()
		rs = append(rs, run{
			text:      text,
			advance:   font.MeasureString(s.face, text),
			width:     font.MeasureString(s.face, strings.TrimRightFunc(text, unicode.IsSpace)),
			mandatory: mandatory,
		})
	}
	seg := segment.NewSegmenter(uax14.NewLineWrap())
	seg.Init(strings.NewReader(str))
	for seg.Next() {
		cur.WriteString(seg.Text())
		p, _ := seg.Penalties()
		switch {
		case p <= mustBreak:
			emit(true)
		case p < suppressBreak:
			emit(false)
		}
	}
	if cur.Len() > 0 {
		emit(false)
	}
	s.segments.Put(str, rs)
	return rs
}

// clampFixed converts v to fixed point, saturating at the largest
// representable value.
func clampFixed(v float32) fixed.Int26_6 {
	if v >= math.MaxInt32/64 || math.IsNaN(float64(v)) {
		return math.MaxInt32
	}
	if v <= 0 {
		return 0
	}
	return fixed.Int26_6(v * 64)
}
