// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
)

// Report is the outcome of Check.
type Report struct {
	// Nodes is the number of nodes in the scene.
	Nodes int
	// Violations counts the invariant violations logged by the
	// layout engine.
	Violations int
	// Problems describe results that disagree between passes or
	// with the viewport.
	Problems []string
}

// OK reports whether the check found nothing wrong.
func (r Report) OK() bool {
	return r.Violations == 0 && len(r.Problems) == 0
}

// countingWriter counts log entries. The logger writes each entry
// with a single call to Write, and layout runs on one goroutine.
type countingWriter struct {
	w       io.Writer
	entries int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.entries++
	return c.w.Write(p)
}

type arranged struct {
	rect     f32.Rectangle
	margin   f32.Edges
	localPos f32.Point
}

// Check lays out s several times and reports disagreements: a clean
// pass that moves nodes, cached results that differ from a fresh pass,
// a root that overflows the viewport and minimum sizes that exceed
// the preferred size. Violations are logged to w.
func Check(s *Scene, w io.Writer) Report {
	cw := &countingWriter{w: w}
	logger := log.NewWithOptions(cw, log.Options{
		Level:  log.ErrorLevel,
		Prefix: "check",
	})
	tol := s.Options.Tolerance
	var r Report
	problem := func(format string, args ...any) {
		r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
	}

	root := s.Update(logger)
	first := s.snapshot()
	r.Nodes = len(first)

	s.Update(logger)
	if id, ok := s.diff(first, s.snapshot(), 0); !ok {
		problem("clean pass moved %s", s.Describe(id))
	}

	ids := make([]layout.NodeID, 0, len(first))
	s.World.Walk(s.Root, func(id layout.NodeID) bool {
		ids = append(ids, id)
		return true
	})
	s.World.Invalidate(ids...)
	s.Update(logger)
	if id, ok := s.diff(first, s.snapshot(), tol); !ok {
		problem("cached layout of %s differs from a fresh pass", s.Describe(id))
	}

	vp := s.Options.ViewportSize()
	if size := root.Rect.Size(); !size.Less(vp, tol) {
		problem("root size %v overflows viewport %v", size, vp)
	}

	gtx := layout.Context{World: s.World, Logger: logger}
	for _, dir := range []layout.Direction{layout.Horizontal, layout.Vertical} {
		sz := layout.QuerySize(gtx, s.Root, vp, layout.Unbounded(vp), dir)
		min, pref := dir.Main(sz.Min.Size()), dir.Main(sz.Preferred.Size())
		if min > pref+tol {
			problem("%v minimum %g exceeds preferred %g", dir, min, pref)
		}
	}

	r.Violations = cw.entries
	return r
}

func (s *Scene) snapshot() map[layout.NodeID]arranged {
	snap := make(map[layout.NodeID]arranged)
	s.World.Walk(s.Root, func(id layout.NodeID) bool {
		snap[id] = arranged{
			rect:     s.World.Rect(id),
			margin:   s.World.Margin(id),
			localPos: s.World.LocalPosition(id),
		}
		return true
	})
	return snap
}

// diff returns the first node, in tree order, whose results differ by
// more than tol.
func (s *Scene) diff(a, b map[layout.NodeID]arranged, tol float32) (layout.NodeID, bool) {
	var bad layout.NodeID
	ok := true
	s.World.Walk(s.Root, func(id layout.NodeID) bool {
		x, y := a[id], b[id]
		same := x.rect.Min.ApproxEq(y.rect.Min, tol) &&
			x.rect.Max.ApproxEq(y.rect.Max, tol) &&
			x.localPos.ApproxEq(y.localPos, tol) &&
			edgesApproxEq(x.margin, y.margin, tol)
		if !same && ok {
			bad, ok = id, false
		}
		return ok
	})
	return bad, ok
}

func edgesApproxEq(a, b f32.Edges, tol float32) bool {
	return f32.Pt(a.Left, a.Top).ApproxEq(f32.Pt(b.Left, b.Top), tol) &&
		f32.Pt(a.Right, a.Bottom).ApproxEq(f32.Pt(b.Right, b.Bottom), tol)
}
