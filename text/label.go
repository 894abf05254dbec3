// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
)

// Label is a layout.SizeResolver for a paragraph of text. The text
// wraps at the maximum width offered by the limits.
//
// After changing Text, call World.Touch for the node so the engine
// drops its cached results.
type Label struct {
	Shaper *Shaper
	Text   string
}

var _ layout.SizeResolver = (*Label)(nil)

// Query implements layout.SizeResolver. Squeezed horizontally, the
// minimum width is that of the widest unbreakable run. Squeezed
// vertically, the text is already as short as the offered width
// allows.
func (l *Label) Query(_ layout.NodeID, _ f32.Point, limits layout.Limits, squeeze layout.Direction) (f32.Point, f32.Point, layout.Hints) {
	fit := l.Shaper.Layout(l.Text, limits.Max.X)
	pref := fit.Size()
	hints := layout.Hints{FixedSize: true, CanGrow: fit.Wrapped}
	min := pref
	if squeeze == layout.Horizontal {
		min = l.Shaper.Layout(l.Text, l.Shaper.MinWidth(l.Text)).Size()
	}
	return min, pref, hints
}

// Apply implements layout.SizeResolver.
func (l *Label) Apply(_ layout.NodeID, _ f32.Point, limits layout.Limits) (f32.Point, bool) {
	fit := l.Shaper.Layout(l.Text, limits.Max.X)
	size := fit.Size()
	return limits.Constrain(size), fit.Wrapped || !size.Less(limits.Max, 0)
}
