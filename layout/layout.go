// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"fmt"

	"gioui.org/blocks/f32"
)

// Tolerance absorbs floating point drift when results are checked
// against limits and logged as invariant violations. Hints and cache
// reuse compare exactly.
const Tolerance = 0.2

// Limits are the hard bounds a parent imposes on the size of a child.
// Callers keep Min <= Max componentwise.
type Limits struct {
	Min, Max f32.Point
}

// Hints describe how a size result may react to a change of its
// inputs.
type Hints struct {
	// CanGrow is set when the result was clamped by the offered
	// limits and would be larger if more space were offered.
	CanGrow bool
	// FixedSize is set when the result does not depend on the
	// content area, that is, no relative units were involved.
	FixedSize bool
}

// Sizing is the result of a size query.
type Sizing struct {
	Min       f32.Rectangle
	Preferred f32.Rectangle
	Margin    f32.Edges
	Hints     Hints
}

// Block is the result of arranging a node.
type Block struct {
	Rect    f32.Rectangle
	Margin  f32.Edges
	CanGrow bool
}

// Direction is the Horizontal or Vertical axis.
type Direction uint8

// Alignment is the placement of a child within a larger extent.
type Alignment uint8

const (
	Horizontal Direction = iota
	Vertical
)

const (
	Start Alignment = iota
	Center
	End
)

// Unbounded returns limits without a lower bound and with the given
// upper bound.
func Unbounded(max f32.Point) Limits {
	return Limits{Max: max}
}

// Exact returns limits satisfied only by size.
func Exact(size f32.Point) Limits {
	return Limits{Min: size, Max: size}
}

// Constrain clamps size to the limits.
func (l Limits) Constrain(size f32.Point) f32.Point {
	return size.Clamp(l.Min, l.Max)
}

// Allows reports whether size satisfies l within Tolerance.
func (l Limits) Allows(size f32.Point) bool {
	return size.Within(l.Min, l.Max, Tolerance)
}

// Shrink returns l with both bounds reduced by d, saturating at zero.
func (l Limits) Shrink(d f32.Point) Limits {
	return Limits{
		Min: l.Min.Sub(d).Max(f32.Point{}),
		Max: l.Max.Sub(d).Max(f32.Point{}),
	}
}

func (l Limits) String() string {
	return fmt.Sprintf("[%v, %v]", l.Min, l.Max)
}

// Combine merges the hints of two siblings.
func (h Hints) Combine(o Hints) Hints {
	return Hints{
		CanGrow:   h.CanGrow || o.CanGrow,
		FixedSize: h.FixedSize && o.FixedSize,
	}
}

// Axis returns the unit vector of d.
func (d Direction) Axis() f32.Point {
	if d == Horizontal {
		return f32.Pt(1, 0)
	}
	return f32.Pt(0, 1)
}

// Cross returns the perpendicular direction.
func (d Direction) Cross() Direction {
	if d == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Main returns the component of p along d.
func (d Direction) Main(p f32.Point) float32 {
	if d == Horizontal {
		return p.X
	}
	return p.Y
}

// Point builds a point from a main and a cross axis component.
func (d Direction) Point(main, cross float32) f32.Point {
	if d == Horizontal {
		return f32.Pt(main, cross)
	}
	return f32.Pt(cross, main)
}

// Offset returns the position of an item of the given size within
// total, along one axis.
func (a Alignment) Offset(total, size float32) float32 {
	switch a {
	case Center:
		return (total - size) / 2
	case End:
		return total - size
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("unreachable")
	}
}

func (a Alignment) String() string {
	switch a {
	case Start:
		return "Start"
	case Center:
		return "Center"
	case End:
		return "End"
	default:
		panic("unreachable")
	}
}
