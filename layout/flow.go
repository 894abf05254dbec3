// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"math"

	"gioui.org/blocks/f32"
)

// Flow lays out its children in a single row or column, distributing
// space in proportion to how much each child can grow beyond its
// minimum. Space left over once every child has its preferred size
// goes to the children with a Maximize weight along the main axis.
// Adjacent margins collapse.
type Flow struct {
	// Direction is the main axis.
	Direction Direction
	// Reverse places the first child at the end of the main axis.
	Reverse bool
	// Stretch forces every child to fill the cross axis.
	Stretch bool
	// CrossAlign aligns children that don't fill the cross axis.
	CrossAlign Alignment
	// ContainMargins keeps the margins of the children inside the
	// flow instead of letting them protrude.
	ContainMargins bool
}

// row is the cached result of querying every child of a flow with
// the unconstrained limits of the flow.
type row struct {
	min, preferred f32.Rectangle
	children       []rowChild
	hints          Hints
	// maximize is the sum of the main axis weights of the children.
	maximize float32
}

type rowChild struct {
	id     NodeID
	sizing Sizing
	// margin is the part of the declared margin kept inside the
	// flow. Both passes subtract it from the limits of the child.
	margin   f32.Edges
	maximize float32
}

// spread is how a flow hands out its main axis space.
type spread struct {
	// distribute is the space the children could grow beyond their
	// minimum and target the part of it that fits the limits.
	distribute, target float32
	// remaining is the space left once every child has its
	// preferred size.
	remaining float32
	maximize  float32
}

// flowItem is a sized child ready for placement.
type flowItem struct {
	rect   f32.Rectangle
	margin f32.Edges
}

// cursor advances along the main axis, collapsing adjacent margins.
type cursor struct {
	contain bool
	// pending is the front margin of the previous item.
	pending float32
	main    float32
	cross   float32
	// back and front record how far item margins protrude beyond
	// the start and end of the main axis.
	back, front float32
}

func newCursor(contain bool) cursor {
	c := cursor{contain: contain}
	if !contain {
		// The margin of the first item protrudes from the flow.
		c.pending = -math.MaxFloat32
	}
	return c
}

// collapse returns the gap between two items with the given facing
// margins. Positive margins overlap, negative margins add.
func collapse(front, back float32) float32 {
	gap := max(max(front, 0), max(back, 0)) + min(front, 0) + min(back, 0)
	return max(gap, 0)
}

// put places an item of the given main and cross extent and returns
// its main axis position.
func (c *cursor) put(extent, crossExtent, back, front, crossStart, crossEnd float32) float32 {
	advance := collapse(c.pending, back)
	if protrude := back - advance - c.main; protrude > 0 {
		c.back = max(c.back, protrude)
	}
	c.main += advance
	pos := c.main
	c.main += extent
	c.pending = front
	if c.contain {
		crossExtent += crossStart + crossEnd
	}
	c.cross = max(c.cross, crossExtent)
	return pos
}

// finish closes the line and returns its main and cross extent.
func (c *cursor) finish() (float32, float32) {
	if c.contain {
		c.main += max(c.pending, 0)
	} else {
		c.front = max(c.front, c.pending)
	}
	c.pending = 0
	return c.main, c.cross
}

func (f Flow) cross() Direction {
	return f.Direction.Cross()
}

// mainMargins returns the margins of e facing the start and end of
// the flow.
func (f Flow) mainMargins(e f32.Edges) (back, front float32) {
	if f.Direction == Horizontal {
		back, front = e.Horizontal()
	} else {
		back, front = e.Vertical()
	}
	if f.Reverse {
		back, front = front, back
	}
	return back, front
}

func (f Flow) crossMargins(e f32.Edges) (start, end float32) {
	if f.Direction == Horizontal {
		return e.Vertical()
	}
	return e.Horizontal()
}

// edges is the inverse of mainMargins and crossMargins.
func (f Flow) edges(back, front, start, end float32) f32.Edges {
	if f.Reverse {
		back, front = front, back
	}
	if f.Direction == Horizontal {
		return f32.Edges{Left: back, Right: front, Top: start, Bottom: end}
	}
	return f32.Edges{Top: back, Bottom: front, Left: start, Right: end}
}

// extent returns the main axis space taken by a rectangle whose
// origin may be offset from its placement point.
func (f Flow) extent(r f32.Rectangle) float32 {
	return max(f.Direction.Main(r.Max), 0) + max(-f.Direction.Main(r.Min), 0)
}

func (f Flow) put(c *cursor, it flowItem) float32 {
	back, front := f.mainMargins(it.margin)
	start, end := f.crossMargins(it.margin)
	return c.put(f.extent(it.rect), f.cross().Main(it.rect.Size()), back, front, start, end)
}

// childMargin returns the margin a child keeps inside the flow.
func (f Flow) childMargin(m f32.Edges) f32.Edges {
	if f.ContainMargins {
		return m
	}
	return f32.Edges{}
}

func (f Flow) queryRow(gtx Context, id NodeID, area f32.Point, limits Limits) row {
	w := gtx.World
	if r, ok := w.node(id).cache.cachedRow(limits, area); ok {
		return r
	}
	children := w.Children(id)
	r := row{
		children: make([]rowChild, 0, len(children)),
		hints:    Hints{FixedSize: true},
	}
	minc, prefc := newCursor(f.ContainMargins), newCursor(f.ContainMargins)
	for _, c := range children {
		n := w.node(c)
		margin := f.childMargin(n.Margin)
		lim := Limits{Max: limits.Max.Sub(margin.Size()).Max(f32.Point{})}
		s := QuerySize(gtx, c, area, lim, f.Direction)
		r.hints = r.hints.Combine(s.Hints)
		f.put(&minc, flowItem{rect: s.Min, margin: s.Margin})
		f.put(&prefc, flowItem{rect: s.Preferred, margin: s.Margin})
		m := max(f.Direction.Main(n.Maximize), 0)
		r.maximize += m
		r.children = append(r.children, rowChild{id: c, sizing: s, margin: margin, maximize: m})
	}
	mm, mc := minc.finish()
	pm, pc := prefc.finish()
	r.min = f32.RectFromSize(f.Direction.Point(mm, mc))
	r.preferred = f32.RectFromSize(f.Direction.Point(pm, pc))
	w.node(id).cache.insertRow(limits, area, r)
	return r
}

func (f Flow) spread(r row, limits Limits) spread {
	minInner := f.Direction.Main(r.min.Size())
	prefInner := f.Direction.Main(r.preferred.Size())
	maxInner := f.Direction.Main(limits.Max)
	distribute := max(prefInner-minInner, 0)
	return spread{
		distribute: distribute,
		target:     max(min(distribute, maxInner-minInner), 0),
		remaining:  max(maxInner-prefInner, 0),
		maximize:   r.maximize,
	}
}

// canGrow reports whether more main axis space would change the
// shares.
func (s spread) canGrow() bool {
	return s.target < s.distribute || s.maximize > 0
}

// share returns the main axis size given to a child.
func (f Flow) share(gtx Context, c rowChild, s spread) float32 {
	bmin := f.Direction.Main(c.sizing.Min.Size())
	bpref := f.Direction.Main(c.sizing.Preferred.Size())
	given := bmin
	switch {
	case bmin > bpref:
		gtx.logger().Error("flow child minimum exceeds preferred size", "node", c.id, "min", bmin, "preferred", bpref)
	case s.distribute > 0:
		given += s.target * (bpref - bmin) / s.distribute
	}
	if c.maximize > 0 {
		given += s.remaining * c.maximize / s.maximize
	}
	return given
}

func (f Flow) crossSize(r row, limits Limits, preferred f32.Point) float32 {
	cross := f.cross()
	size := max(cross.Main(r.preferred.Size()), cross.Main(preferred), cross.Main(limits.Min))
	return min(size, cross.Main(limits.Max))
}

// childLimits returns the limits a child is arranged or queried under.
// With fill, a maximized child must take all of its share.
func (f Flow) childLimits(c rowChild, given, crossSize float32, limits Limits, fill bool) Limits {
	var minMain float32
	if fill && c.maximize > 0 {
		minMain = given
	}
	mc := f.cross().Main(c.margin.Size())
	if f.Stretch {
		cs := max(crossSize-mc, 0)
		return Limits{
			Min: f.Direction.Point(minMain, cs),
			Max: f.Direction.Point(given, cs),
		}
	}
	return Limits{
		Min: f.Direction.Point(minMain, 0),
		Max: f.Direction.Point(given, max(f.cross().Main(limits.Max)-mc, 0)),
	}
}

// arrange places items on a line of the given extent. It returns the
// position of every item and the margin protruding from the line.
func (f Flow) arrange(items []flowItem, lineMain, lineCross float32) ([]f32.Point, f32.Edges) {
	cross := f.cross()
	c := newCursor(f.ContainMargins)
	pos := make([]f32.Point, len(items))
	// Extent of the items with and without their cross margins.
	inner := [2]float32{0, lineCross}
	outer := inner
	for i, it := range items {
		p := f.put(&c, it)
		origin := p + max(-f.Direction.Main(it.rect.Min), 0)
		if f.Reverse {
			origin = lineMain - origin - f.Direction.Main(it.rect.Max) - f.Direction.Main(it.rect.Min)
		}
		size := cross.Main(it.rect.Size())
		start, end := f.crossMargins(it.margin)
		var cpos float32
		if f.ContainMargins {
			cpos = f.CrossAlign.Offset(lineCross, size+start+end) + start
		} else {
			cpos = f.CrossAlign.Offset(lineCross, size)
			lo, hi := cpos+cross.Main(it.rect.Min), cpos+cross.Main(it.rect.Max)
			inner[0], inner[1] = min(inner[0], lo), max(inner[1], hi)
			outer[0], outer[1] = min(outer[0], lo-start), max(outer[1], hi+end)
		}
		pos[i] = f.Direction.Point(origin, cpos)
	}
	c.finish()
	return pos, f.edges(c.back, c.front, inner[0]-outer[0], outer[1]-inner[1])
}

func (f Flow) apply(gtx Context, id NodeID, inner f32.Rectangle, limits Limits, preferred f32.Point) Block {
	w := gtx.World
	area := inner.Size()
	r := f.queryRow(gtx, id, area, limits)
	sp := f.spread(r, limits)
	crossSize := f.crossSize(r, limits, preferred)
	canGrow := sp.canGrow()

	items := make([]flowItem, len(r.children))
	c := newCursor(f.ContainMargins)
	for i, rc := range r.children {
		given := f.share(gtx, rc, sp)
		b := UpdateSubtree(gtx, rc.id, area, f.childLimits(rc, given, crossSize, limits, true))
		canGrow = canGrow || b.CanGrow
		items[i] = flowItem{rect: b.Rect, margin: b.Margin}
		f.put(&c, items[i])
	}
	lineMain, lineCross := c.finish()
	size := f.Direction.Point(lineMain, lineCross).Max(preferred).Max(limits.Min)
	if !size.Less(limits.Max, 0) {
		canGrow = true
	}
	positions, margin := f.arrange(items, f.Direction.Main(size), f.cross().Main(size))
	for i, rc := range r.children {
		n := w.node(rc.id)
		n.setRect(items[i].rect)
		n.setMargin(items[i].margin)
		n.setLocalPosition(inner.Min.Add(positions[i]))
	}
	return Block{
		Rect:    f32.RectAt(inner.Min, limits.Constrain(size)),
		Margin:  margin,
		CanGrow: canGrow,
	}
}

func (f Flow) querySize(gtx Context, id NodeID, inner f32.Rectangle, limits Limits, preferred f32.Point, squeeze Direction) Sizing {
	area := inner.Size()
	r := f.queryRow(gtx, id, area, limits)
	sp := f.spread(r, limits)
	crossSize := f.crossSize(r, limits, preferred)
	hints := r.hints
	if sp.canGrow() {
		hints.CanGrow = true
	}

	w := gtx.World
	items := make([]flowItem, len(r.children))
	minc, prefc := newCursor(f.ContainMargins), newCursor(f.ContainMargins)
	for i, rc := range r.children {
		given := f.share(gtx, rc, sp)
		lim := f.childLimits(rc, given, crossSize, limits, false)
		s := QuerySize(gtx, rc.id, area, lim, squeeze)
		if rc.maximize > 0 {
			// The minimum stays that of the child; the preferred size
			// is what arranging it with fill yields.
			fill := min(given, f.Direction.Main(w.node(rc.id).tighten(area, lim).Max))
			s.Preferred = s.Preferred.AtLeast(f.Direction.Point(fill, 0))
		}
		hints = hints.Combine(s.Hints)
		f.put(&minc, flowItem{rect: s.Min, margin: s.Margin})
		items[i] = flowItem{rect: s.Preferred, margin: s.Margin}
		f.put(&prefc, items[i])
	}
	mm, mc := minc.finish()
	pm, pc := prefc.finish()
	minSize := f.Direction.Point(mm, mc).Max(limits.Min)
	prefSize := f.Direction.Point(pm, pc).Max(preferred).Max(limits.Min)
	_, margin := f.arrange(items, f.Direction.Main(prefSize), f.cross().Main(prefSize))
	return Sizing{
		Min:       f32.RectAt(inner.Min, minSize),
		Preferred: f32.RectAt(inner.Min, prefSize),
		Margin:    margin,
		Hints:     hints,
	}
}
