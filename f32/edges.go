// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "fmt"

// Edges is a distance on each side of a rectangle, used for both
// margins and paddings. Negative values are allowed and pull
// neighbours closer.
type Edges struct {
	Left, Right, Top, Bottom float32
}

// UniformEdges returns Edges with v on every side.
func UniformEdges(v float32) Edges {
	return Edges{Left: v, Right: v, Top: v, Bottom: v}
}

// SymmetricEdges returns Edges with h on the left and right and v on
// the top and bottom.
func SymmetricEdges(h, v float32) Edges {
	return Edges{Left: h, Right: h, Top: v, Bottom: v}
}

// Add returns the sidewise sum of e and o.
func (e Edges) Add(o Edges) Edges {
	return Edges{
		Left:   e.Left + o.Left,
		Right:  e.Right + o.Right,
		Top:    e.Top + o.Top,
		Bottom: e.Bottom + o.Bottom,
	}
}

// Sub returns the sidewise difference of e and o.
func (e Edges) Sub(o Edges) Edges {
	return Edges{
		Left:   e.Left - o.Left,
		Right:  e.Right - o.Right,
		Top:    e.Top - o.Top,
		Bottom: e.Bottom - o.Bottom,
	}
}

// Scale returns e with every side multiplied by s.
func (e Edges) Scale(s float32) Edges {
	return Edges{Left: e.Left * s, Right: e.Right * s, Top: e.Top * s, Bottom: e.Bottom * s}
}

// Max returns the sidewise maximum of e and o.
func (e Edges) Max(o Edges) Edges {
	return Edges{
		Left:   max(e.Left, o.Left),
		Right:  max(e.Right, o.Right),
		Top:    max(e.Top, o.Top),
		Bottom: max(e.Bottom, o.Bottom),
	}
}

// Min returns the sidewise minimum of e and o.
func (e Edges) Min(o Edges) Edges {
	return Edges{
		Left:   min(e.Left, o.Left),
		Right:  min(e.Right, o.Right),
		Top:    min(e.Top, o.Top),
		Bottom: min(e.Bottom, o.Bottom),
	}
}

// Size returns the total horizontal and vertical extent of e.
func (e Edges) Size() Point {
	return Point{X: e.Left + e.Right, Y: e.Top + e.Bottom}
}

// Horizontal returns the left and right sides.
func (e Edges) Horizontal() (start, end float32) {
	return e.Left, e.Right
}

// Vertical returns the top and bottom sides.
func (e Edges) Vertical() (start, end float32) {
	return e.Top, e.Bottom
}

func (e Edges) String() string {
	return fmt.Sprintf("{l:%g r:%g t:%g b:%g}", e.Left, e.Right, e.Top, e.Bottom)
}
