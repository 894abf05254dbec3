// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"fmt"
	"strconv"
	"strings"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
	"gioui.org/blocks/unit"
	"gioui.org/blocks/widget"
)

// parseLength parses a sum of terms such as "100% - 8dp". A term
// without unit is in pixels.
func parseLength(s string, m unit.Metric) (px, rel float32, err error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, 0, fmt.Errorf("%w: empty length", ErrBadValue)
	}
	for first := true; rest != ""; first = false {
		sign := float32(1)
		switch rest[0] {
		case '+':
			rest = rest[1:]
		case '-':
			sign = -1
			rest = rest[1:]
		default:
			if !first {
				return 0, 0, fmt.Errorf("%w: %q: expected + or - before %q", ErrBadValue, s, rest)
			}
		}
		rest = strings.TrimLeft(rest, " \t")
		i := 0
		for i < len(rest) && (isDigit(rest[i]) || rest[i] == '.') {
			i++
		}
		v, perr := strconv.ParseFloat(rest[:i], 32)
		if perr != nil {
			return 0, 0, fmt.Errorf("%w: %q: invalid number %q", ErrBadValue, s, rest[:i])
		}
		rest = rest[i:]
		j := 0
		for j < len(rest) && (isLetter(rest[j]) || rest[j] == '%') {
			j++
		}
		u := rest[:j]
		rest = strings.TrimLeft(rest[j:], " \t")
		x := sign * float32(v)
		switch u {
		case "", "px":
			px += x
		case "dp":
			px += m.Dp(x)
		case "%":
			rel += x / 100
		default:
			return 0, 0, fmt.Errorf("%w: %q: unknown unit %q", ErrBadValue, s, u)
		}
	}
	return px, rel, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z'
}

// parseVec parses one length for both axes or two lengths for width
// and height.
func parseVec(vals []string, m unit.Metric) (unit.Vec, error) {
	var v unit.Vec
	switch len(vals) {
	case 1, 2:
	default:
		return v, fmt.Errorf("%w: expected 1 or 2 lengths, got %d", ErrBadValue, len(vals))
	}
	xpx, xrel, err := parseLength(vals[0], m)
	if err != nil {
		return v, err
	}
	ypx, yrel := xpx, xrel
	if len(vals) == 2 {
		ypx, yrel, err = parseLength(vals[1], m)
		if err != nil {
			return v, err
		}
	}
	return unit.Vec{Px: f32.Pt(xpx, ypx), Rel: f32.Pt(xrel, yrel)}, nil
}

// parseEdges converts dp values in the order of CSS shorthands: one
// value for all sides; top/bottom and right/left; top, right/left and
// bottom; or top, right, bottom and left.
func parseEdges(vals []float32, m unit.Metric) (f32.Edges, error) {
	var e f32.Edges
	switch len(vals) {
	case 0:
		return e, nil
	case 1:
		e = f32.UniformEdges(vals[0])
	case 2:
		e = f32.Edges{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 3:
		e = f32.Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
	case 4:
		e = f32.Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	default:
		return e, fmt.Errorf("%w: expected 1 to 4 edge values, got %d", ErrBadValue, len(vals))
	}
	return m.Edges(e), nil
}

// parseWeights parses one weight for both axes or one per axis.
func parseWeights(vals []float32) (f32.Point, error) {
	var p f32.Point
	switch len(vals) {
	case 0:
		return p, nil
	case 1:
		p = f32.Pt(vals[0], vals[0])
	case 2:
		p = f32.Pt(vals[0], vals[1])
	default:
		return p, fmt.Errorf("%w: expected 1 or 2 weights, got %d", ErrBadValue, len(vals))
	}
	if p.X < 0 || p.Y < 0 {
		return f32.Point{}, fmt.Errorf("%w: negative weight %v", ErrBadValue, p)
	}
	return p, nil
}

func parseDirection(s string) (layout.Direction, error) {
	switch s {
	case "", "horizontal", "row":
		return layout.Horizontal, nil
	case "vertical", "column":
		return layout.Vertical, nil
	}
	return 0, fmt.Errorf("%w: direction %q", ErrBadValue, s)
}

func parseAlignment(s string) (layout.Alignment, error) {
	switch s {
	case "", "start":
		return layout.Start, nil
	case "center", "middle":
		return layout.Center, nil
	case "end":
		return layout.End, nil
	}
	return 0, fmt.Errorf("%w: alignment %q", ErrBadValue, s)
}

func parseFit(s string) (widget.Fit, error) {
	switch s {
	case "", "unscaled":
		return widget.Unscaled, nil
	case "contain":
		return widget.Contain, nil
	case "cover":
		return widget.Cover, nil
	case "scaledown":
		return widget.ScaleDown, nil
	case "fill":
		return widget.Fill, nil
	}
	return 0, fmt.Errorf("%w: fit %q", ErrBadValue, s)
}
