// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"gioui.org/blocks/f32"
)

// Cache memoizes the most recent size queries and arrangement of a
// node. Each slot holds a single entry that is overwritten on insert.
type Cache struct {
	query  [2]*cached[Sizing]
	row    *cached[row]
	layout *cached[Block]
	// layoutFixed is the fixedSize flag the layout entry was
	// computed under.
	layoutFixed bool
	fixedSize   bool
}

type cached[T any] struct {
	limits Limits
	area   f32.Point
	value  T
}

func (c *cached[T]) matches(limits Limits, area f32.Point) bool {
	return c.limits == limits && c.area == area
}

// Invalidate drops every entry.
func (c *Cache) Invalidate() {
	*c = Cache{}
}

// FixedSize reports the fixed size hint of the most recent query.
func (c *Cache) FixedSize() bool {
	return c.fixedSize
}

// Query returns the cached sizing for the squeeze direction, if any.
func (c *Cache) Query(squeeze Direction) (Sizing, Limits, f32.Point, bool) {
	e := c.query[squeeze]
	if e == nil {
		return Sizing{}, Limits{}, f32.Point{}, false
	}
	return e.value, e.limits, e.area, true
}

// Layout returns the cached arrangement, if any.
func (c *Cache) Layout() (Block, Limits, f32.Point, bool) {
	if c.layout == nil {
		return Block{}, Limits{}, f32.Point{}, false
	}
	return c.layout.value, c.layout.limits, c.layout.area, true
}

// InsertQuery stores s as the result of querying under limits and
// area, and records its fixed size hint.
func (c *Cache) InsertQuery(squeeze Direction, limits Limits, area f32.Point, s Sizing) {
	c.query[squeeze] = &cached[Sizing]{limits: limits, area: area, value: s}
	c.fixedSize = s.Hints.FixedSize
}

func (c *Cache) seedFixedSize(fixed bool) {
	c.fixedSize = fixed
}

// InsertLayout stores b as the result of arranging under limits and
// area.
func (c *Cache) InsertLayout(limits Limits, area f32.Point, b Block) {
	c.layout = &cached[Block]{limits: limits, area: area, value: b}
	c.layoutFixed = c.fixedSize
}

func (c *Cache) insertRow(limits Limits, area f32.Point, r row) {
	c.row = &cached[row]{limits: limits, area: area, value: r}
}

func (c *Cache) cachedRow(limits Limits, area f32.Point) (row, bool) {
	if c.row == nil || !c.row.matches(limits, area) {
		return row{}, false
	}
	return c.row.value, true
}

// ValidateQuery reports whether the cached sizing for squeeze can be
// reused for limits and area. Identical inputs always hit. A fixed
// size result that was not clamped is also reused when the new limits
// share its lower bound and still admit both of its sizes.
func (c *Cache) ValidateQuery(squeeze Direction, limits Limits, area f32.Point) (Sizing, bool) {
	e := c.query[squeeze]
	if e == nil {
		return Sizing{}, false
	}
	if e.matches(limits, area) {
		return e.value, true
	}
	h := e.value.Hints
	if !h.FixedSize || h.CanGrow || e.limits.Min != limits.Min {
		return Sizing{}, false
	}
	if !fits(limits, e.value.Min.Size()) || !fits(limits, e.value.Preferred.Size()) {
		return Sizing{}, false
	}
	return e.value, true
}

// ValidateLayout is like ValidateQuery for the cached arrangement. It
// also requires fixedSize to equal the flag the entry was stored
// under.
func (c *Cache) ValidateLayout(limits Limits, area f32.Point, fixedSize bool) (Block, bool) {
	e := c.layout
	if e == nil || c.layoutFixed != fixedSize {
		return Block{}, false
	}
	if e.matches(limits, area) {
		return e.value, true
	}
	if !fixedSize || e.value.CanGrow || e.limits.Min != limits.Min {
		return Block{}, false
	}
	if !fits(limits, e.value.Rect.Size()) {
		return Block{}, false
	}
	return e.value, true
}

// fits is Limits.Allows without tolerance.
func fits(l Limits, size f32.Point) bool {
	return size.Within(l.Min, l.Max, 0)
}
