// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"fmt"
	"math"
	"strconv"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
	"gioui.org/blocks/text"
	"gioui.org/blocks/unit"
	"gioui.org/blocks/widget"
)

type formatState struct {
	orig string
	expr string
	b    *builder
}

type formatError struct {
	err error
}

// ParseExpr builds a scene from a layout expression, similar to how
// fmt.Printf interpolates a string. Layouts look like function calls
// and any layout may be named by prefixing it with a name and a colon.
//
// For example,
//
//	vflow(stretch, title:text("Hello"), margin(4dp, box(100%, 20px)))
//
// lays out a label above a full width box.
//
// Lengths carry a unit: px, dp, or % of the parent content area.
//
// Available layouts:
//
//	box(size) or box(width, height) is an empty node of the given size.
//
//	text("string") is a paragraph wrapped to the available width. The
//	argument is a Go string literal.
//
//	cells(n, width, height) is a grid of n cells of width by height
//	pixels, wrapped to the available width.
//
//	hflow/vflow(<flags>, children...) arranges children in a row or a
//	column. Flags are space separated and any of: start, center, end
//	for the cross alignment; stretch; reverse; contain to keep child
//	margins inside the flow.
//
//	stack(<direction>, children...) lays children on top of each
//	other. Direction is one of north, northeast, east, southeast,
//	south, southwest, west, northwest, center.
//
//	inset(insets, child) pads child. Insets are either: one value for
//	uniform insets; two values for top/bottom and right/left insets;
//	three values for top, right/left and bottom insets; or four values
//	for top, right, bottom, left insets.
//
//	margin(insets, child) sets the margin of child.
//
//	hexp/vexp(child) makes child fill the horizontal or vertical
//	space of its parent.
//
//	hcap/vcap(<size>, child) caps the width or height of child.
//
//	hfill/vfill(<weight>, child) hands child a share of the space
//	left over in a horizontal or vertical flow, in proportion to the
//	weights of its siblings.
//
//	aspect(<ratio>, child) keeps the width over height of child.
//
// If the expression is invalid, ParseExpr returns an error wrapping
// ErrSyntax where a cross, ✗, marks the error position.
func ParseExpr(expr string, options ...BuildOption) (s *Scene, err error) {
	b := newBuilder(options)
	if err := b.init(b.opts); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	state := &formatState{orig: expr, expr: expr, b: b}
	defer func() {
		if e := recover(); e != nil {
			ferr, ok := e.(formatError)
			if !ok {
				panic(e)
			}
			pos := len(state.orig) - len(state.expr)
			msg := state.orig[:pos] + "✗" + state.orig[pos:]
			s, err = nil, fmt.Errorf("scene: %s:%d: %w", msg, pos, ferr.err)
		}
	}()
	root := formatExpr(state)
	skipWhitespace(state)
	if state.expr != "" {
		errorf("unexpected %q after expression", state.expr)
	}
	b.scene.Root = root
	return b.scene, nil
}

func formatExpr(state *formatState) layout.NodeID {
	name := parseName(state)
	if name == "" {
		errorf("missing layout name")
	}
	var label string
	if peek(state) == ':' {
		expect(state, ":")
		label = name
		if name = parseName(state); name == "" {
			errorf("missing layout name")
		}
	}
	expect(state, "(")
	id, kind := formatLayout(state, name)
	expect(state, ")")
	s := state.b.scene
	if kind == "" {
		// Modifiers return their child.
		if label == "" {
			return id
		}
		in := s.info[id]
		if in.name != "" {
			errorf("node %q renamed to %q", in.name, label)
		}
		kind = in.kind
	}
	if err := s.register(id, label, kind); err != nil {
		fail(err)
	}
	return id
}

func formatLayout(state *formatState, name string) (layout.NodeID, string) {
	b := state.b
	w := b.scene.World
	switch name {
	case "box":
		return w.Insert(layout.Props{Size: parseSize(state)}), name
	case "text":
		lbl := &text.Label{Shaper: b.shaper, Text: parseString(state)}
		id := w.Insert(layout.Props{Resolver: lbl})
		b.scene.labels[id] = lbl
		return id, name
	case "cells":
		n := parseInt(state)
		expect(state, ",")
		cw := parseFloat(state)
		expect(state, ",")
		ch := parseFloat(state)
		return w.Insert(layout.Props{Resolver: widget.FixedArea{Cells: n, Cell: f32.Pt(cw, ch)}}), name
	case "hflow":
		return formatFlow(state, layout.Horizontal), "flow"
	case "vflow":
		return formatFlow(state, layout.Vertical), "flow"
	case "stack":
		return formatStack(state), name
	case "inset":
		pad := parseInsets(state)
		child := formatExpr(state)
		return w.Insert(layout.Props{Padding: pad, Layout: layout.Stack{}}, child), name
	case "margin":
		m := parseInsets(state)
		child := formatExpr(state)
		w.Update(child, func(p *layout.Props) { p.Margin = m })
		return child, ""
	case "hexp", "vexp":
		child := formatExpr(state)
		w.Update(child, func(p *layout.Props) {
			if name == "hexp" {
				p.Size.Px.X, p.Size.Rel.X = 0, 1
			} else {
				p.Size.Px.Y, p.Size.Rel.Y = 0, 1
			}
		})
		return child, ""
	case "hcap", "vcap":
		px, rel := parseValue(state)
		expect(state, ",")
		child := formatExpr(state)
		w.Update(child, func(p *layout.Props) {
			bound := unit.Px(math.MaxFloat32, math.MaxFloat32)
			if p.MaxSize != nil {
				bound = *p.MaxSize
			}
			if name == "hcap" {
				bound.Px.X, bound.Rel.X = px, rel
			} else {
				bound.Px.Y, bound.Rel.Y = px, rel
			}
			p.MaxSize = layout.Bound(bound)
		})
		return child, ""
	case "hfill", "vfill":
		weight := parseFloat(state)
		expect(state, ",")
		child := formatExpr(state)
		w.Update(child, func(p *layout.Props) {
			if name == "hfill" {
				p.Maximize.X = weight
			} else {
				p.Maximize.Y = weight
			}
		})
		return child, ""
	case "aspect":
		r := parseFloat(state)
		expect(state, ",")
		child := formatExpr(state)
		w.Update(child, func(p *layout.Props) { p.AspectRatio = r })
		return child, ""
	default:
		errorf("invalid layout %q", name)
	}
	panic("unreachable")
}

func formatFlow(state *formatState, dir layout.Direction) layout.NodeID {
	fl := layout.Flow{Direction: dir}
	for _, flag := range parseFlags(state) {
		switch flag {
		case "start":
			fl.CrossAlign = layout.Start
		case "center":
			fl.CrossAlign = layout.Center
		case "end":
			fl.CrossAlign = layout.End
		case "stretch":
			fl.Stretch = true
		case "reverse":
			fl.Reverse = true
		case "contain":
			fl.ContainMargins = true
		default:
			errorf("invalid flow flag %q", flag)
		}
	}
	return state.b.scene.World.Insert(layout.Props{Layout: fl}, formatChildren(state)...)
}

func formatStack(state *formatState) layout.NodeID {
	st := layout.Stack{}
	flags := parseFlags(state)
	switch len(flags) {
	case 0:
	case 1:
		var ok bool
		st.Horizontal, st.Vertical, ok = dirFor(flags[0])
		if !ok {
			errorf("invalid stack direction: %q", flags[0])
		}
	default:
		errorf("too many stack directions")
	}
	return state.b.scene.World.Insert(layout.Props{Layout: st}, formatChildren(state)...)
}

// parseFlags parses the optional space separated words before the
// first child of a container.
func parseFlags(state *formatState) []string {
	var flags []string
	for {
		backup := *state
		name := parseName(state)
		if name == "" {
			*state = backup
			break
		}
		switch peek(state) {
		case '(', ':':
			// A child.
			*state = backup
			return flags
		}
		flags = append(flags, name)
	}
	if peek(state) == ',' {
		expect(state, ",")
	}
	return flags
}

func formatChildren(state *formatState) []layout.NodeID {
	var children []layout.NodeID
	for {
		switch peek(state) {
		case ')':
			return children
		case ',':
			expect(state, ",")
		default:
			children = append(children, formatExpr(state))
		}
	}
}

func parseSize(state *formatState) unit.Vec {
	xpx, xrel := parseValue(state)
	if peek(state) != ',' {
		return unit.Vec{Px: f32.Pt(xpx, xpx), Rel: f32.Pt(xrel, xrel)}
	}
	expect(state, ",")
	ypx, yrel := parseValue(state)
	return unit.Vec{Px: f32.Pt(xpx, ypx), Rel: f32.Pt(xrel, yrel)}
}

func parseInsets(state *formatState) f32.Edges {
	var vals []float32
	for peek(state) != ',' {
		if len(vals) == 4 {
			errorf("too many insets")
		}
		px, rel := parseValue(state)
		if rel != 0 {
			errorf("relative inset")
		}
		vals = append(vals, px)
	}
	expect(state, ",")
	if len(vals) == 0 {
		errorf("missing insets")
	}
	// Values are already in pixels.
	e, err := parseEdges(vals, unit.Metric{})
	if err != nil {
		fail(err)
	}
	return e
}

// parseValue parses a number with a px, dp or % unit.
func parseValue(state *formatState) (px, rel float32) {
	v := parseFloat(state)
	switch {
	case len(state.expr) >= 2 && state.expr[:2] == "px":
		state.expr = state.expr[2:]
		return v, 0
	case len(state.expr) >= 2 && state.expr[:2] == "dp":
		state.expr = state.expr[2:]
		return state.b.scene.Options.metric().Dp(v), 0
	case len(state.expr) >= 1 && state.expr[0] == '%':
		state.expr = state.expr[1:]
		return 0, v / 100
	}
	errorf("missing unit")
	return 0, 0
}

func parseString(state *formatState) string {
	skipWhitespace(state)
	q, err := strconv.QuotedPrefix(state.expr)
	if err != nil {
		errorf("invalid string")
	}
	str, err := strconv.Unquote(q)
	if err != nil {
		errorf("invalid string %s", q)
	}
	state.expr = state.expr[len(q):]
	return str
}

func parseName(state *formatState) string {
	skipWhitespace(state)
	i := 0
	for ; i < len(state.expr); i++ {
		c := state.expr[i]
		if isLetter(c) || c == '_' || (i > 0 && isDigit(c)) {
			continue
		}
		break
	}
	name := state.expr[:i]
	state.expr = state.expr[i:]
	return name
}

func parseFloat(state *formatState) float32 {
	skipWhitespace(state)
	i := 0
	for ; i < len(state.expr); i++ {
		c := state.expr[i]
		if !isDigit(c) && c != '.' {
			break
		}
	}
	expr := state.expr[:i]
	v, err := strconv.ParseFloat(expr, 32)
	if err != nil {
		errorf("invalid number %q", expr)
	}
	state.expr = state.expr[i:]
	return float32(v)
}

func parseInt(state *formatState) int {
	skipWhitespace(state)
	i := 0
	for ; i < len(state.expr); i++ {
		if !isDigit(state.expr[i]) {
			break
		}
	}
	expr := state.expr[:i]
	v, err := strconv.Atoi(expr)
	if err != nil {
		errorf("invalid number %q", expr)
	}
	state.expr = state.expr[i:]
	return v
}

func peek(state *formatState) rune {
	skipWhitespace(state)
	if len(state.expr) == 0 {
		errorf("unexpected end")
	}
	return rune(state.expr[0])
}

func expect(state *formatState, str string) {
	skipWhitespace(state)
	n := len(str)
	if len(state.expr) < n || state.expr[:n] != str {
		errorf("expected %q", str)
	}
	state.expr = state.expr[n:]
}

func skipWhitespace(state *formatState) {
	for len(state.expr) > 0 {
		switch state.expr[0] {
		case '\t', '\n', '\v', '\f', '\r', ' ':
			state.expr = state.expr[1:]
		default:
			return
		}
	}
}

func dirFor(name string) (h, v layout.Alignment, ok bool) {
	switch name {
	case "center":
		return layout.Center, layout.Center, true
	case "northwest":
		return layout.Start, layout.Start, true
	case "north":
		return layout.Center, layout.Start, true
	case "northeast":
		return layout.End, layout.Start, true
	case "east":
		return layout.End, layout.Center, true
	case "southeast":
		return layout.End, layout.End, true
	case "south":
		return layout.Center, layout.End, true
	case "southwest":
		return layout.Start, layout.End, true
	case "west":
		return layout.Start, layout.Center, true
	}
	return 0, 0, false
}

func errorf(f string, args ...interface{}) {
	fail(fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(f, args...)))
}

func fail(err error) {
	panic(formatError{err: err})
}
