// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"gioui.org/blocks/f32"
)

// UpdateSubtree arranges id and its descendants within limits. The
// rectangle and local position of every descendant are written back to
// the World; the caller positions id itself using the returned Block.
func UpdateSubtree(gtx Context, id NodeID, area f32.Point, limits Limits) Block {
	n := gtx.World.node(id)
	p := &n.Props
	limits = p.tighten(area, limits)

	if b, ok := n.cache.ValidateLayout(limits, area, n.cache.FixedSize()); ok {
		gtx.logger().Debug("layout cache hit", "node", id, "limits", limits)
		validateBlock(gtx, id, b, limits)
		return b
	}

	preferred := p.Size.Resolve(area)
	var b Block
	if p.Layout != nil {
		inner := f32.RectFromSize(area).Inset(p.Padding)
		pad := p.Padding.Size()
		b = gtx.applyStrategy(p.Layout, id, inner, limits.Shrink(pad), preferred.Sub(pad).Max(f32.Point{}))
		b.Rect = b.Rect.Pad(p.Padding)
		b.Margin = b.Margin.Sub(p.Padding).Max(p.Margin)
	} else {
		mustBeLeaf(gtx.World, id)
		size, canGrow := applyLeaf(id, p, area, limits, preferred)
		b = Block{Rect: f32.RectFromSize(size), Margin: p.Margin, CanGrow: canGrow}
	}

	b.Rect = b.Rect.WithSize(correctAspect(p.AspectRatio, b.Rect.Size()))
	off := p.resolvePos(area, b.Rect.Size())
	b.Rect = b.Rect.Add(off)
	if p.Layout != nil && off != (f32.Point{}) {
		// The strategy placed the children relative to the
		// unshifted rectangle.
		for _, c := range gtx.World.Children(id) {
			cn := gtx.World.node(c)
			cn.setLocalPosition(cn.localPos.Add(off))
		}
	}
	if p.MaxSize != nil && b.Rect.Size() == p.MaxSize.Resolve(area) {
		b.CanGrow = false
	}

	n.setBounds(b.Rect.Size())
	validateBlock(gtx, id, b, limits)
	// Nodes arranged without being queried first, such as the root
	// and the children of a Stack, learn here whether their layout
	// can be reused under other limits.
	n.cache.seedFixedSize(arrangedFixed(gtx.World, id, p))
	n.cache.InsertLayout(limits, area, b)
	return b
}

// arrangedFixed reports whether the arrangement of id just computed
// is independent of the content area.
func arrangedFixed(w *World, id NodeID, p *Props) bool {
	if !p.isFixed() {
		return false
	}
	if p.Layout == nil {
		// Only a query reveals the hints of a resolver.
		return p.Resolver == nil || w.node(id).cache.FixedSize()
	}
	for _, c := range w.Children(id) {
		if !w.node(c).cache.layoutFixed {
			return false
		}
	}
	return true
}

func applyLeaf(id NodeID, p *Props, area f32.Point, limits Limits, size f32.Point) (f32.Point, bool) {
	canGrow := false
	if r := p.Resolver; r != nil {
		rsize, grow := r.Apply(id, area, limits)
		size = rsize.Max(size)
		canGrow = grow
	}
	if !size.Less(limits.Max, 0) {
		canGrow = true
	}
	return limits.Constrain(size), canGrow
}

// Update runs a layout pass over the tree rooted at root for a
// viewport of the given size. Pending invalidations are flushed first.
// The root is placed at the origin.
func Update(gtx Context, root NodeID, viewport f32.Point) Block {
	if n := gtx.World.FlushDirty(); n > 0 {
		gtx.logger().Debug("invalidated nodes", "count", n)
	}
	b := UpdateSubtree(gtx, root, viewport, Limits{Max: viewport})
	n := gtx.World.node(root)
	n.setRect(b.Rect)
	n.setMargin(b.Margin)
	n.setLocalPosition(f32.Point{})
	return b
}

func validateBlock(gtx Context, id NodeID, b Block, limits Limits) {
	if size := b.Rect.Size(); !limits.Allows(size) {
		gtx.logger().Error("arranged size outside limits", "node", id, "size", size, "limits", limits)
	}
}
