// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
)

// FixedArea is a layout.SizeResolver for a constant number of equally
// sized cells, such as a grid of thumbnails. The cells fill rows as
// wide as the limits allow, trading width for height.
type FixedArea struct {
	Cells int
	Cell  f32.Point
}

var _ layout.SizeResolver = FixedArea{}

// grid returns the number of columns and rows that fit maxWidth.
func (a FixedArea) grid(maxWidth float32) (cols, rows int) {
	if a.Cells <= 0 {
		return 0, 0
	}
	cols = a.Cells
	if a.Cell.X > 0 && maxWidth < unbounded {
		// Compare in float before converting; wide limits overflow int.
		if n := maxWidth / a.Cell.X; n < float32(a.Cells) {
			cols = max(int(n), 1)
		}
	}
	rows = (a.Cells + cols - 1) / cols
	return cols, rows
}

func (a FixedArea) size(cols, rows int) f32.Point {
	return f32.Pt(float32(cols)*a.Cell.X, float32(rows)*a.Cell.Y)
}

// Query implements layout.SizeResolver. Squeezed horizontally the
// cells stack in a single column.
func (a FixedArea) Query(_ layout.NodeID, _ f32.Point, limits layout.Limits, squeeze layout.Direction) (f32.Point, f32.Point, layout.Hints) {
	cols, rows := a.grid(limits.Max.X)
	pref := a.size(cols, rows)
	min := pref
	if squeeze == layout.Horizontal && a.Cells > 0 {
		min = a.size(1, a.Cells)
	}
	return min, pref, layout.Hints{FixedSize: true, CanGrow: cols < a.Cells}
}

// Apply implements layout.SizeResolver.
func (a FixedArea) Apply(_ layout.NodeID, _ f32.Point, limits layout.Limits) (f32.Point, bool) {
	cols, rows := a.grid(limits.Max.X)
	size := a.size(cols, rows)
	return limits.Constrain(size), cols < a.Cells || !size.Less(limits.Max, 0)
}
