// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"fmt"

	"gioui.org/blocks/f32"
)

// QuerySize computes the minimum and preferred size of id within
// limits, without arranging it. The content area is the space that
// relative units of id resolve against. Squeeze is the axis along
// which the minimum size is minimized, for content that trades width
// for height.
func QuerySize(gtx Context, id NodeID, area f32.Point, limits Limits, squeeze Direction) Sizing {
	n := gtx.World.node(id)
	p := &n.Props
	limits = p.tighten(area, limits)

	if s, ok := n.cache.ValidateQuery(squeeze, limits, area); ok {
		gtx.logger().Debug("query cache hit", "node", id, "limits", limits, "squeeze", squeeze)
		validateSizing(gtx, id, s, limits, squeeze)
		return s
	}

	preferred := p.Size.Resolve(area)
	var s Sizing
	if p.Layout != nil {
		inner := f32.RectFromSize(area).Inset(p.Padding)
		pad := p.Padding.Size()
		s = gtx.queryStrategy(p.Layout, id, inner, limits.Shrink(pad), preferred.Sub(pad).Max(f32.Point{}), squeeze)
		s.Margin = s.Margin.Sub(p.Padding).Max(p.Margin)
		s.Min = s.Min.Pad(p.Padding)
		s.Preferred = s.Preferred.Pad(p.Padding)
	} else {
		mustBeLeaf(gtx.World, id)
		min, pref, hints := queryLeaf(gtx, id, p, area, limits, squeeze, preferred)
		s = Sizing{
			Min:       f32.RectFromSize(min),
			Preferred: f32.RectFromSize(pref),
			Margin:    p.Margin,
			Hints:     hints,
		}
	}

	s.Hints.FixedSize = s.Hints.FixedSize && p.isFixed()
	if !s.Preferred.Size().Less(limits.Max, 0) || !s.Min.Size().Less(limits.Max, 0) {
		s.Hints.CanGrow = true
	}
	s.Min = s.Min.ClampSize(limits.Min, limits.Max)
	s.Preferred = s.Preferred.ClampSize(limits.Min, limits.Max)

	s.Min = s.Min.WithSize(correctAspect(p.AspectRatio, s.Min.Size()))
	s.Preferred = s.Preferred.WithSize(correctAspect(p.AspectRatio, s.Preferred.Size()))

	s.Min = s.Min.Add(p.resolvePos(area, s.Min.Size()))
	s.Preferred = s.Preferred.Add(p.resolvePos(area, s.Preferred.Size()))

	validateSizing(gtx, id, s, limits, squeeze)
	n.cache.InsertQuery(squeeze, limits, area, s)
	return s
}

func queryLeaf(gtx Context, id NodeID, p *Props, area f32.Point, limits Limits, squeeze Direction, size f32.Point) (f32.Point, f32.Point, Hints) {
	min := limits.Min
	hints := Hints{FixedSize: true}
	if r := p.Resolver; r != nil {
		rmin, rpref, rhints := r.Query(id, area, limits, squeeze)
		if squeeze.Main(rmin) > squeeze.Main(rpref)+Tolerance {
			gtx.logger().Error("size resolver minimum exceeds preferred size",
				"node", id, "min", rmin, "preferred", rpref, "squeeze", squeeze)
		}
		min = rmin
		size = rpref.Max(size)
		hints = rhints
	}
	return min, size, hints
}

// tighten narrows limits by the resolved minimum and maximum size of
// the node. The maximum size of the node wins over any lower bound.
func (p *Props) tighten(area f32.Point, limits Limits) Limits {
	limits.Min = limits.Min.Max(p.MinSize.Resolve(area))
	if p.MaxSize != nil {
		bound := p.MaxSize.Resolve(area)
		limits.Max = limits.Max.Min(bound)
		limits.Min = limits.Min.Min(bound)
	}
	return limits
}

// resolvePos returns the position of a node of the given size
// relative to its placement point.
func (p *Props) resolvePos(area, size f32.Point) f32.Point {
	return p.Offset.Resolve(area).Sub(p.Anchor.Resolve(size))
}

// correctAspect trims size to width/height == ratio. A non-positive
// or NaN ratio leaves size unchanged.
func correctAspect(ratio float32, size f32.Point) f32.Point {
	if !(ratio > 0) {
		return size
	}
	if size.X > size.Y {
		return f32.Pt(size.Y*ratio, size.Y)
	}
	return f32.Pt(size.X, size.X/ratio)
}

func mustBeLeaf(w *World, id NodeID) {
	if len(w.Children(id)) > 0 {
		panic(fmt.Errorf("layout: node %v has children but no layout strategy", id))
	}
}

func validateSizing(gtx Context, id NodeID, s Sizing, limits Limits, squeeze Direction) {
	min, pref := s.Min.Size(), s.Preferred.Size()
	if !limits.Allows(min) {
		gtx.logger().Error("minimum size outside limits", "node", id, "min", min, "limits", limits)
	}
	if !limits.Allows(pref) {
		gtx.logger().Error("preferred size outside limits", "node", id, "preferred", pref, "limits", limits)
	}
	if squeeze.Main(min) > squeeze.Main(pref)+Tolerance {
		gtx.logger().Error("minimum size exceeds preferred size", "node", id, "min", min, "preferred", pref, "squeeze", squeeze)
	}
}
