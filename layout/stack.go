// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"gioui.org/blocks/f32"
)

// Stack lays out child elements on top of each other, aligned within
// the largest of them.
type Stack struct {
	Horizontal Alignment
	Vertical   Alignment
}

// stackableBounds tracks the union of a set of rectangles with and
// without their margins.
type stackableBounds struct {
	inner, outer f32.Rectangle
}

func newStackableBounds(r f32.Rectangle) stackableBounds {
	return stackableBounds{inner: r, outer: r}
}

func (b *stackableBounds) add(r f32.Rectangle, m f32.Edges) {
	b.inner = b.inner.Union(r)
	b.outer = b.outer.Union(r.Pad(m).Canon())
}

// margin returns how far the margins reach beyond the rectangles.
// Like the margins a Flow reports, the result is never negative: a
// negative child margin does not eat into the space around the stack.
func (b stackableBounds) margin() f32.Edges {
	return f32.Edges{
		Left:   max(b.inner.Min.X-b.outer.Min.X, 0),
		Top:    max(b.inner.Min.Y-b.outer.Min.Y, 0),
		Right:  max(b.outer.Max.X-b.inner.Max.X, 0),
		Bottom: max(b.outer.Max.Y-b.inner.Max.Y, 0),
	}
}

// extent returns the space taken by a rectangle whose origin may be
// offset from its placement point.
func extent(r f32.Rectangle) f32.Point {
	return r.Max.Max(f32.Point{}).Add(r.Min.Mul(-1).Max(f32.Point{}))
}

func (s Stack) apply(gtx Context, id NodeID, inner f32.Rectangle, limits Limits, preferred f32.Point) Block {
	w := gtx.World
	children := w.Children(id)
	area := inner.Size()
	blocks := make([]Block, len(children))
	var size f32.Point
	canGrow := false
	for i, c := range children {
		b := UpdateSubtree(gtx, c, area, Limits{Max: limits.Max})
		blocks[i] = b
		size = size.Max(extent(b.Rect))
		canGrow = canGrow || b.CanGrow
	}
	size = size.Max(preferred)
	if !size.Less(limits.Max, 0) {
		canGrow = true
	}
	size = limits.Constrain(size)

	rect := f32.RectAt(inner.Min, size)
	bounds := newStackableBounds(rect)
	for i, c := range children {
		b := blocks[i]
		bs := b.Rect.Size()
		off := inner.Min.Add(f32.Pt(
			s.Horizontal.Offset(size.X, bs.X),
			s.Vertical.Offset(size.Y, bs.Y),
		))
		bounds.add(b.Rect.Add(off), b.Margin)
		n := w.node(c)
		n.setRect(b.Rect)
		n.setMargin(b.Margin)
		n.setLocalPosition(off)
	}
	return Block{Rect: rect, Margin: bounds.margin(), CanGrow: canGrow}
}

func (s Stack) querySize(gtx Context, id NodeID, inner f32.Rectangle, limits Limits, preferred f32.Point, squeeze Direction) Sizing {
	start := f32.RectAt(inner.Min, limits.Min)
	minb, prefb := newStackableBounds(start), newStackableBounds(start)
	hints := Hints{FixedSize: true}
	for _, c := range gtx.World.Children(id) {
		cs := QuerySize(gtx, c, inner.Size(), Limits{Max: limits.Max}, squeeze)
		hints = hints.Combine(cs.Hints)
		minb.add(cs.Min.Add(inner.Min), cs.Margin)
		prefb.add(cs.Preferred.Add(inner.Min), cs.Margin)
	}
	margin := minb.margin().Max(prefb.margin())
	return Sizing{
		Min:       minb.inner,
		Preferred: prefb.inner.AtLeast(preferred),
		Margin:    margin,
		Hints:     hints,
	}
}
