// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/unit"
	"github.com/charmbracelet/log"
)

// newTestContext returns a Context whose logger records to the
// returned buffer in JSON.
func newTestContext() (Context, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	l := log.NewWithOptions(buf, log.Options{
		Level:     log.DebugLevel,
		Formatter: log.JSONFormatter,
	})
	return Context{World: NewWorld(), Logger: l}, buf
}

func errorCount(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), `"level":"error"`)
}

func expectNoErrors(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	if n := errorCount(buf); n > 0 {
		t.Errorf("%d invariant violations logged:\n%s", n, buf)
	}
}

func leaf(w, h float32) Props {
	return Props{Size: unit.Px(w, h)}
}

func TestLeafSize(t *testing.T) {
	tests := []struct {
		name     string
		props    Props
		viewport f32.Point
		want     f32.Point
	}{
		{"fixed", leaf(40, 30), f32.Pt(100, 100), f32.Pt(40, 30)},
		{"clamped", leaf(400, 30), f32.Pt(100, 100), f32.Pt(100, 30)},
		{"relative", Props{Size: unit.Rel(0.5, 0.25)}, f32.Pt(200, 100), f32.Pt(100, 25)},
		{"min size", Props{Size: unit.Px(10, 10), MinSize: unit.Px(30, 0)}, f32.Pt(100, 100), f32.Pt(30, 10)},
		{"max size", Props{Size: unit.Px(80, 80), MaxSize: Bound(unit.Px(50, 60))}, f32.Pt(100, 100), f32.Pt(50, 60)},
		{"aspect", Props{Size: unit.Px(40, 40), AspectRatio: 2}, f32.Pt(100, 100), f32.Pt(40, 20)},
		{"aspect wide", Props{Size: unit.Px(90, 30), AspectRatio: 0.5}, f32.Pt(100, 100), f32.Pt(15, 30)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gtx, buf := newTestContext()
			id := gtx.World.Insert(tc.props)
			b := Update(gtx, id, tc.viewport)
			if got := b.Rect.Size(); got != tc.want {
				t.Errorf("got size %v, expected %v", got, tc.want)
			}
			if got := gtx.World.Bounds(id); got != tc.want {
				t.Errorf("got bounds %v, expected %v", got, tc.want)
			}
			if tc.props.AspectRatio == 0 {
				expectNoErrors(t, buf)
			}
		})
	}
}

func TestMaxSizeCanGrow(t *testing.T) {
	gtx, _ := newTestContext()
	id := gtx.World.Insert(Props{Size: unit.Px(80, 80), MaxSize: Bound(unit.Px(50, 50))})
	if b := Update(gtx, id, f32.Pt(100, 100)); b.CanGrow {
		t.Error("node at its own maximum size reported CanGrow")
	}
	id2 := gtx.World.Insert(leaf(80, 80))
	if b := Update(gtx, id2, f32.Pt(60, 60)); !b.CanGrow {
		t.Error("node clamped by the viewport did not report CanGrow")
	}
}

func TestClampBelowTolerance(t *testing.T) {
	build := func() (Context, NodeID, NodeID) {
		gtx, _ := newTestContext()
		child := gtx.World.Insert(leaf(50, 32))
		root := gtx.World.Insert(Props{Layout: Flow{Direction: Vertical}}, child)
		return gtx, root, child
	}
	gtx, root, child := build()
	if b := Update(gtx, root, f32.Pt(100, 31.9)); !b.CanGrow {
		t.Error("flow clamped by 0.1 did not report CanGrow")
	}
	Update(gtx, root, f32.Pt(100, 100))

	fresh, froot, fchild := build()
	Update(fresh, froot, f32.Pt(100, 100))
	want := fresh.World.Rect(fchild).Size()
	if want != f32.Pt(50, 32) {
		t.Fatalf("fresh layout: got %v, expected (50,32)", want)
	}
	if got := gtx.World.Rect(child).Size(); got != want {
		t.Errorf("after growing the viewport: got %v, expected %v", got, want)
	}
}

func TestOffsetAnchor(t *testing.T) {
	gtx, buf := newTestContext()
	w := gtx.World
	child := w.Insert(Props{
		Size:   unit.Px(20, 20),
		Offset: unit.Rel(0.5, 0.5),
		Anchor: unit.Rel(0.5, 0.5),
	})
	root := w.Insert(Props{Size: unit.Px(100, 100), Layout: Stack{}}, child)
	Update(gtx, root, f32.Pt(100, 100))
	want := f32.Rect(40, 40, 60, 60)
	if got := w.ScreenRect(child); got != want {
		t.Errorf("got %v, expected %v", got, want)
	}
	expectNoErrors(t, buf)
}

func TestPaddingMargin(t *testing.T) {
	gtx, buf := newTestContext()
	w := gtx.World
	child := w.Insert(Props{Size: unit.Px(30, 30), Margin: f32.UniformEdges(20)})
	root := w.Insert(Props{
		Padding: f32.UniformEdges(10),
		Margin:  f32.UniformEdges(4),
		Layout:  Stack{},
	}, child)
	b := Update(gtx, root, f32.Pt(200, 200))
	if want := f32.Rect(0, 0, 50, 50); b.Rect != want {
		t.Errorf("root rect: got %v, expected %v", b.Rect, want)
	}
	// The child margin reaches 10 beyond the padding, which beats
	// the own margin of 4.
	if want := f32.UniformEdges(10); b.Margin != want {
		t.Errorf("root margin: got %v, expected %v", b.Margin, want)
	}
	if got, want := w.LocalPosition(child), f32.Pt(10, 10); got != want {
		t.Errorf("child position: got %v, expected %v", got, want)
	}
	expectNoErrors(t, buf)
}

func TestLeafWithChildrenPanics(t *testing.T) {
	gtx, _ := newTestContext()
	child := gtx.World.Insert(leaf(10, 10))
	root := gtx.World.Insert(Props{}, child)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for children without a strategy")
		}
	}()
	Update(gtx, root, f32.Pt(100, 100))
}

func TestInconsistentResolverLogs(t *testing.T) {
	gtx, buf := newTestContext()
	w := gtx.World
	bad := w.Insert(Props{Resolver: ResolverFuncs{
		QueryFunc: func(NodeID, f32.Point, Limits, Direction) (f32.Point, f32.Point, Hints) {
			return f32.Pt(50, 10), f32.Pt(20, 10), Hints{}
		},
		ApplyFunc: func(_ NodeID, _ f32.Point, l Limits) (f32.Point, bool) {
			return l.Constrain(f32.Pt(20, 10)), false
		},
	}})
	root := w.Insert(Props{Layout: Flow{}}, bad)
	Update(gtx, root, f32.Pt(100, 100))
	if errorCount(buf) == 0 {
		t.Error("expected an invariant violation to be logged")
	}
}

func TestInvalidation(t *testing.T) {
	gtx, _ := newTestContext()
	w := gtx.World
	a := w.Insert(leaf(20, 10))
	b := w.Insert(leaf(30, 10))
	root := w.Insert(Props{Layout: Flow{}}, a, b)
	Update(gtx, root, f32.Pt(200, 100))
	if got := w.LocalPosition(b); got != f32.Pt(20, 0) {
		t.Fatalf("got %v, expected (20,0)", got)
	}
	rev := w.Revision(b)

	w.Update(a, func(p *Props) { p.Size = unit.Px(50, 10) })
	if w.Dirty() != 1 {
		t.Errorf("got %d dirty nodes, expected 1", w.Dirty())
	}
	Update(gtx, root, f32.Pt(200, 100))
	if got := w.LocalPosition(b); got != f32.Pt(50, 0) {
		t.Errorf("after update: got %v, expected (50,0)", got)
	}
	if w.Revision(b) == rev {
		t.Error("revision unchanged after move")
	}
	if w.Dirty() != 0 {
		t.Errorf("dirty set not flushed")
	}

	w.Remove(a)
	Update(gtx, root, f32.Pt(200, 100))
	if got := w.LocalPosition(b); got != (f32.Point{}) {
		t.Errorf("after remove: got %v, expected origin", got)
	}
}

func TestHitTest(t *testing.T) {
	gtx, _ := newTestContext()
	w := gtx.World
	a := w.Insert(leaf(20, 10))
	b := w.Insert(leaf(30, 10))
	root := w.Insert(Props{Layout: Flow{}}, a, b)
	Update(gtx, root, f32.Pt(200, 100))
	tests := []struct {
		p    f32.Point
		want NodeID
		ok   bool
	}{
		{f32.Pt(5, 5), a, true},
		{f32.Pt(25, 5), b, true},
		{f32.Pt(100, 50), NodeID{}, false},
	}
	for _, tc := range tests {
		got, ok := w.HitTest(root, tc.p)
		if ok != tc.ok || got != tc.want {
			t.Errorf("HitTest(%v): got %v %v, expected %v %v", tc.p, got, ok, tc.want, tc.ok)
		}
	}
}

// wrapResolver lays out n cells in rows as wide as the limits allow.
type wrapResolver struct {
	n    int
	cell f32.Point
}

func (r wrapResolver) size(maxWidth float32) (f32.Point, bool) {
	cols := r.n
	if n := maxWidth / r.cell.X; n < float32(r.n) {
		cols = max(int(n), 1)
	}
	rows := (r.n + cols - 1) / cols
	return f32.Pt(float32(cols)*r.cell.X, float32(rows)*r.cell.Y), cols < r.n
}

func (r wrapResolver) Query(_ NodeID, _ f32.Point, l Limits, squeeze Direction) (f32.Point, f32.Point, Hints) {
	pref, grow := r.size(l.Max.X)
	min := pref
	if squeeze == Horizontal {
		min = f32.Pt(r.cell.X, float32(r.n)*r.cell.Y)
	}
	return min, pref, Hints{FixedSize: true, CanGrow: grow}
}

func (r wrapResolver) Apply(_ NodeID, _ f32.Point, l Limits) (f32.Point, bool) {
	size, grow := r.size(l.Max.X)
	return l.Constrain(size), grow || !size.Less(l.Max, 0)
}

// randomLeaf returns the properties of a leaf with fixed, relative,
// bounded, resolved or maximized size.
func randomLeaf(r *rand.Rand) Props {
	px := func(n int) float32 { return float32(r.Intn(n)) }
	p := Props{Margin: f32.UniformEdges(px(12) - 4)}
	switch r.Intn(5) {
	case 0:
		p.Size = unit.Px(px(80), px(80))
	case 1:
		p.Size = unit.Rel(0.05+0.3*r.Float32(), 0.05+0.3*r.Float32())
	case 2:
		p.Size = unit.Px(px(80), px(80))
		p.MinSize = unit.Px(px(40), px(40))
		p.MaxSize = Bound(p.MinSize.Add(unit.Px(px(60), px(60))))
	case 3:
		p.Resolver = wrapResolver{n: 1 + r.Intn(8), cell: f32.Pt(5+px(20), 5+px(20))}
	case 4:
		p.Size = unit.Px(px(40), px(40))
		p.Maximize = f32.Pt(px(3), px(3))
	}
	return p
}

// randomTree builds a tree of flows and stacks over random leaves.
func randomTree(r *rand.Rand, w *World, depth int) NodeID {
	if depth == 0 || r.Intn(4) == 0 {
		return w.Insert(randomLeaf(r))
	}
	n := 1 + r.Intn(3)
	children := make([]NodeID, n)
	for i := range children {
		children[i] = randomTree(r, w, depth-1)
	}
	var s Strategy
	if r.Intn(3) == 0 {
		s = Stack{Horizontal: Alignment(r.Intn(3)), Vertical: Alignment(r.Intn(3))}
	} else {
		s = Flow{
			Direction:      Direction(r.Intn(2)),
			Reverse:        r.Intn(2) == 0,
			Stretch:        r.Intn(2) == 0,
			CrossAlign:     Alignment(r.Intn(3)),
			ContainMargins: r.Intn(2) == 0,
		}
	}
	return w.Insert(Props{
		Padding: f32.UniformEdges(float32(r.Intn(5))),
		Layout:  s,
	}, children...)
}

type snapshot struct {
	rect f32.Rectangle
	pos  f32.Point
}

func takeSnapshot(w *World, root NodeID) map[NodeID]snapshot {
	m := make(map[NodeID]snapshot)
	w.Walk(root, func(id NodeID) bool {
		m[id] = snapshot{w.Rect(id), w.LocalPosition(id)}
		return true
	})
	return m
}

func TestRandomTrees(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	// Shrinking and growing again exercises results cached under
	// tighter limits.
	viewports := []f32.Point{
		f32.Pt(600, 600), f32.Pt(250, 300), f32.Pt(900, 700),
		f32.Pt(249.9, 299.9), f32.Pt(250, 300), f32.Pt(1200, 1000), f32.Pt(400, 900),
	}
	for i := 0; i < 50; i++ {
		gtx, buf := newTestContext()
		w := gtx.World
		root := randomTree(r, w, 3)
		for _, vp := range viewports {
			b := Update(gtx, root, vp)
			if !(Limits{Max: vp}).Allows(b.Rect.Size()) {
				t.Fatalf("tree %d: root size %v exceeds viewport %v", i, b.Rect.Size(), vp)
			}
			first := takeSnapshot(w, root)

			// A second pass must be a no-op.
			Update(gtx, root, vp)
			if got := takeSnapshot(w, root); !sameSnapshot(first, got) {
				t.Fatalf("tree %d: layout not idempotent at %v", i, vp)
			}

			// Recomputing from scratch must match the cached
			// result.
			w.Walk(root, func(id NodeID) bool {
				w.Cache(id).Invalidate()
				return true
			})
			Update(gtx, root, vp)
			if got := takeSnapshot(w, root); !sameSnapshot(first, got) {
				t.Fatalf("tree %d: cached layout differs from fresh layout at %v", i, vp)
			}

			for _, squeeze := range []Direction{Horizontal, Vertical} {
				s := QuerySize(gtx, root, vp, Limits{Max: vp}, squeeze)
				if squeeze.Main(s.Min.Size()) > squeeze.Main(s.Preferred.Size())+Tolerance {
					t.Errorf("tree %d: min %v exceeds preferred %v along %v", i, s.Min, s.Preferred, squeeze)
				}
			}
		}
		expectNoErrors(t, buf)
	}
}

func sameSnapshot(a, b map[NodeID]snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for id, s := range a {
		o := b[id]
		if !s.rect.Min.ApproxEq(o.rect.Min, 1e-3) || !s.rect.Max.ApproxEq(o.rect.Max, 1e-3) ||
			!s.pos.ApproxEq(o.pos, 1e-3) {
			return false
		}
	}
	return true
}
