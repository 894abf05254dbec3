// SPDX-License-Identifier: Unlicense OR MIT

/*

Package unit implements absolute and parent relative values.

A Vec is a pair of an absolute component, in pixels, and a relative
component, expressed as a fraction of a reference size. The
reference is usually the content area offered by the parent.

	unit.Px(100, 20)   // 100x20 pixels
	unit.Rel(0.5, 0)   // half the parent width, no height
	unit.Px(-8, 0).Add(unit.Rel(1, 0))  // parent width minus 8 pixels

A Vec without a relative component is fixed: it resolves to the same
value regardless of the reference, which lets the layout engine reuse
cached results when only the offered space changes.

*/
package unit

import (
	"fmt"

	"gioui.org/blocks/f32"
)

// Vec is a two dimensional value with a pixel and a relative part.
type Vec struct {
	Px  f32.Point
	Rel f32.Point
}

// Metric converts device independent pixels to device pixels.
type Metric struct {
	// PxPerDp is the device pixels per dp. Zero means 1.
	PxPerDp float32
}

// Zero is the zero Vec.
var Zero = Vec{}

// Px returns the Vec for x by y pixels.
func Px(x, y float32) Vec {
	return Vec{Px: f32.Pt(x, y)}
}

// Rel returns the Vec for the fraction x by y of the reference.
func Rel(x, y float32) Vec {
	return Vec{Rel: f32.Pt(x, y)}
}

// Add returns the sum of v and o.
func (v Vec) Add(o Vec) Vec {
	return Vec{Px: v.Px.Add(o.Px), Rel: v.Rel.Add(o.Rel)}
}

// Resolve returns the absolute value of v relative to reference.
func (v Vec) Resolve(reference f32.Point) f32.Point {
	return v.Px.Add(v.Rel.MulPt(reference))
}

// IsFixed reports whether v is independent of its reference.
func (v Vec) IsFixed() bool {
	return v.Rel == (f32.Point{})
}

func (v Vec) String() string {
	switch {
	case v.IsFixed():
		return fmt.Sprintf("%vpx", v.Px)
	case v.Px == (f32.Point{}):
		return fmt.Sprintf("%vrel", v.Rel)
	default:
		return fmt.Sprintf("%vpx+%vrel", v.Px, v.Rel)
	}
}

// Vec scales the pixel part of v from dp to device pixels. The
// relative part is unaffected.
func (m Metric) Vec(v Vec) Vec {
	v.Px = v.Px.Mul(m.scale())
	return v
}

// Dp converts v dp to device pixels.
func (m Metric) Dp(v float32) float32 {
	return v * m.scale()
}

// Edges scales every side of e from dp to device pixels.
func (m Metric) Edges(e f32.Edges) f32.Edges {
	return e.Scale(m.scale())
}

func (m Metric) scale() float32 {
	if m.PxPerDp == 0 {
		return 1
	}
	return m.PxPerDp
}
