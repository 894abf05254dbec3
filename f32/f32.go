// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 is a float32 implementation of package image's
Point and Rectangle, extended with the edge insets used by
layout margins and paddings.

The coordinate space has the origin in the top left
corner with the axes extending right and down.
*/
package f32

import (
	"fmt"
	"math"
)

// A Point is a two dimensional point or vector.
type Point struct {
	X, Y float32
}

// A Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y.
type Rectangle struct {
	Min, Max Point
}

// Inf is the largest representable size. It stands in for an
// unbounded limit.
var Inf = Point{X: math.MaxFloat32, Y: math.MaxFloat32}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Rect is shorthand for Rectangle{Min: Pt(x0, y0), Max: Pt(x1, y1)}.
func Rect(x0, y0, x1, y1 float32) Rectangle {
	return Rectangle{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// RectFromSize returns the rectangle of the given size at the origin.
func RectFromSize(size Point) Rectangle {
	return Rectangle{Max: size}
}

// RectAt returns the rectangle of the given size with its top left
// corner at pos.
func RectAt(pos, size Point) Rectangle {
	return Rectangle{Min: pos, Max: pos.Add(size)}
}

// Add return the point p+p2.
func (p Point) Add(p2 Point) Point {
	return Point{X: p.X + p2.X, Y: p.Y + p2.Y}
}

// Sub returns the vector p-p2.
func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// MulPt returns the componentwise product of p and p2.
func (p Point) MulPt(p2 Point) Point {
	return Point{X: p.X * p2.X, Y: p.Y * p2.Y}
}

// Div returns p divided by s.
func (p Point) Div(s float32) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Min returns the componentwise minimum of p and p2.
func (p Point) Min(p2 Point) Point {
	return Point{X: min(p.X, p2.X), Y: min(p.Y, p2.Y)}
}

// Max returns the componentwise maximum of p and p2.
func (p Point) Max(p2 Point) Point {
	return Point{X: max(p.X, p2.X), Y: max(p.Y, p2.Y)}
}

// Clamp restricts each component of p to the range [lo, hi].
// The lower bound wins if lo > hi.
func (p Point) Clamp(lo, hi Point) Point {
	return p.Min(hi).Max(lo)
}

// Abs returns the componentwise absolute value of p.
func (p Point) Abs() Point {
	return Point{X: abs(p.X), Y: abs(p.Y)}
}

// Dot returns the dot product of p and p2.
func (p Point) Dot(p2 Point) float32 {
	return p.X*p2.X + p.Y*p2.Y
}

// ApproxEq reports whether every component of p is within tol of q.
func (p Point) ApproxEq(q Point, tol float32) bool {
	return abs(p.X-q.X) <= tol && abs(p.Y-q.Y) <= tol
}

// Within reports whether lo-tol <= p <= hi+tol componentwise.
func (p Point) Within(lo, hi Point, tol float32) bool {
	return p.X >= lo.X-tol && p.Y >= lo.Y-tol &&
		p.X <= hi.X+tol && p.Y <= hi.Y+tol
}

// Less reports whether p <= q+tol componentwise.
func (p Point) Less(q Point, tol float32) bool {
	return p.X <= q.X+tol && p.Y <= q.Y+tol
}

// IsFinite reports whether both components are neither infinite nor NaN.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Size returns r's width and height.
func (r Rectangle) Size() Point {
	return Point{X: r.Dx(), Y: r.Dy()}
}

// Dx returns r's width.
func (r Rectangle) Dx() float32 {
	return r.Max.X - r.Min.X
}

// Dy returns r's Height.
func (r Rectangle) Dy() float32 {
	return r.Max.Y - r.Min.Y
}

// Intersect returns the intersection of r and s.
func (r Rectangle) Intersect(s Rectangle) Rectangle {
	if r.Min.X < s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y < s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X > s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y > s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

// Union returns the union of r and s.
func (r Rectangle) Union(s Rectangle) Rectangle {
	if r.Min.X > s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y > s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X < s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y < s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

// Canon returns the canonical version of r, where Min is to
// the upper left of Max.
func (r Rectangle) Canon() Rectangle {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Empty reports whether r represents the empty area.
func (r Rectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Add offsets r with the vector p.
func (r Rectangle) Add(p Point) Rectangle {
	return Rectangle{
		Point{r.Min.X + p.X, r.Min.Y + p.Y},
		Point{r.Max.X + p.X, r.Max.Y + p.Y},
	}
}

// Sub offsets r with the vector -p.
func (r Rectangle) Sub(p Point) Rectangle {
	return Rectangle{
		Point{r.Min.X - p.X, r.Min.Y - p.Y},
		Point{r.Max.X - p.X, r.Max.Y - p.Y},
	}
}

// Inset shrinks r by e on each side.
func (r Rectangle) Inset(e Edges) Rectangle {
	return Rectangle{
		Min: Point{X: r.Min.X + e.Left, Y: r.Min.Y + e.Top},
		Max: Point{X: r.Max.X - e.Right, Y: r.Max.Y - e.Bottom},
	}
}

// Pad grows r by e on each side.
func (r Rectangle) Pad(e Edges) Rectangle {
	return Rectangle{
		Min: Point{X: r.Min.X - e.Left, Y: r.Min.Y - e.Top},
		Max: Point{X: r.Max.X + e.Right, Y: r.Max.Y + e.Bottom},
	}
}

// WithSize returns a rectangle of the given size sharing r's Min corner.
func (r Rectangle) WithSize(size Point) Rectangle {
	return Rectangle{Min: r.Min, Max: r.Min.Add(size)}
}

// ClampSize restricts the size of r to [lo, hi], keeping Min fixed.
func (r Rectangle) ClampSize(lo, hi Point) Rectangle {
	return r.WithSize(r.Size().Clamp(lo, hi))
}

// AtLeast grows r, keeping Min fixed, until it is at least size.
func (r Rectangle) AtLeast(size Point) Rectangle {
	return r.WithSize(r.Size().Max(size))
}

// AtMost shrinks r, keeping Min fixed, until it is at most size.
func (r Rectangle) AtMost(size Point) Rectangle {
	return r.WithSize(r.Size().Min(size))
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
