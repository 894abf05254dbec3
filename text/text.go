// SPDX-License-Identifier: Unlicense OR MIT

/*
Package text measures and wraps text for the layout engine.

A Shaper breaks text at the line break opportunities of Unicode
Standard Annex #14 and measures it with a font face. Label adapts a
Shaper to a layout.SizeResolver, so that text nodes trade width for
height when squeezed.
*/
package text

import (
	"golang.org/x/image/math/fixed"

	"gioui.org/blocks/f32"
)

// A Line contains the measurements of a line of text.
type Line struct {
	Text string
	// Width is the width of the line, excluding trailing white
	// space.
	Width fixed.Int26_6
	// Ascent is the height above the baseline.
	Ascent fixed.Int26_6
	// Descent is the height below the baseline, including
	// the line gap.
	Descent fixed.Int26_6
}

// A Layout contains the measurements of a body of text as
// a list of Lines.
type Layout struct {
	Lines []Line
	// Wrapped is set when at least one line was broken to fit the
	// maximum width rather than at a mandatory break.
	Wrapped bool
}

// Size returns the pixel size of the layout, rounded up.
func (l Layout) Size() f32.Point {
	var width fixed.Int26_6
	var h int
	if len(l.Lines) > 0 {
		var prevDesc fixed.Int26_6
		for _, ln := range l.Lines {
			h += (prevDesc + ln.Ascent).Ceil()
			prevDesc = ln.Descent
			if ln.Width > width {
				width = ln.Width
			}
		}
		h += l.Lines[len(l.Lines)-1].Descent.Ceil()
	}
	return f32.Pt(float32(width.Ceil()), float32(h))
}

// Baseline returns the distance from the top of the layout to the
// baseline of the first line.
func (l Layout) Baseline() float32 {
	if len(l.Lines) == 0 {
		return 0
	}
	return float32(l.Lines[0].Ascent.Ceil())
}
