// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"strings"
	"testing"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/unit"
)

func TestValidateQuery(t *testing.T) {
	fixed := Sizing{
		Min:       f32.Rect(0, 0, 10, 10),
		Preferred: f32.Rect(0, 0, 40, 20),
		Hints:     Hints{FixedSize: true},
	}
	area := f32.Pt(100, 100)
	base := Limits{Max: f32.Pt(100, 100)}
	tests := []struct {
		name   string
		stored Sizing
		limits Limits
		area   f32.Point
		hit    bool
	}{
		{"exact", fixed, base, area, true},
		{"exact not fixed", Sizing{}, base, area, true},
		{"fixed larger max", fixed, Limits{Max: f32.Pt(300, 300)}, f32.Pt(300, 300), true},
		{"fixed too small", fixed, Limits{Max: f32.Pt(30, 30)}, area, false},
		{"fixed just too small", fixed, Limits{Max: f32.Pt(39.9, 100)}, area, false},
		{"fixed other min", fixed, Limits{Min: f32.Pt(5, 0), Max: f32.Pt(100, 100)}, area, false},
		{"not fixed", Sizing{Preferred: f32.Rect(0, 0, 10, 10)}, Limits{Max: f32.Pt(200, 200)}, area, false},
		{"can grow", Sizing{Preferred: f32.Rect(0, 0, 10, 10), Hints: Hints{FixedSize: true, CanGrow: true}}, Limits{Max: f32.Pt(200, 200)}, area, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c Cache
			c.InsertQuery(Horizontal, base, area, tc.stored)
			if _, hit := c.ValidateQuery(Horizontal, tc.limits, tc.area); hit != tc.hit {
				t.Errorf("got hit %v, expected %v", hit, tc.hit)
			}
			if _, hit := c.ValidateQuery(Vertical, base, area); hit {
				t.Error("hit in the other squeeze direction")
			}
		})
	}
}

func TestValidateLayout(t *testing.T) {
	var c Cache
	base := Limits{Max: f32.Pt(100, 100)}
	area := f32.Pt(100, 100)
	c.InsertQuery(Horizontal, base, area, Sizing{Hints: Hints{FixedSize: true}})
	c.InsertLayout(base, area, Block{Rect: f32.Rect(0, 0, 40, 40)})

	if _, ok := c.ValidateLayout(Limits{Max: f32.Pt(50, 50)}, f32.Pt(50, 50), true); !ok {
		t.Error("fixed layout not reused under compatible limits")
	}
	if _, ok := c.ValidateLayout(base, area, false); ok {
		t.Error("layout reused with a different fixed size flag")
	}
	if _, ok := c.ValidateLayout(Limits{Max: f32.Pt(30, 30)}, area, true); ok {
		t.Error("layout reused under limits that exclude it")
	}
	c.Invalidate()
	if _, ok := c.ValidateLayout(base, area, false); ok {
		t.Error("hit after Invalidate")
	}
}

// countingResolver sizes a leaf to a fixed size and counts calls.
type countingResolver struct {
	size           f32.Point
	queries, apply int
}

func (r *countingResolver) Query(_ NodeID, _ f32.Point, l Limits, _ Direction) (f32.Point, f32.Point, Hints) {
	r.queries++
	return l.Min, l.Constrain(r.size), Hints{FixedSize: true}
}

func (r *countingResolver) Apply(_ NodeID, _ f32.Point, l Limits) (f32.Point, bool) {
	r.apply++
	return l.Constrain(r.size), false
}

func TestCacheReuse(t *testing.T) {
	gtx, buf := newTestContext()
	w := gtx.World
	res := &countingResolver{size: f32.Pt(30, 10)}
	a := w.Insert(Props{Resolver: res})
	b := w.Insert(leaf(20, 10))
	root := w.Insert(Props{Layout: Flow{Direction: Vertical}}, a, b)

	Update(gtx, root, f32.Pt(100, 100))
	q, ap := res.queries, res.apply
	if q == 0 || ap == 0 {
		t.Fatalf("resolver not consulted: %d queries, %d applies", q, ap)
	}
	Update(gtx, root, f32.Pt(100, 100))
	if res.queries != q || res.apply != ap {
		t.Errorf("clean tree consulted the resolver again")
	}

	// Changing b must not re-resolve a, whose inputs are unchanged.
	w.Update(b, func(p *Props) { p.Size = unit.Px(25, 10) })
	Update(gtx, root, f32.Pt(100, 100))
	if res.queries != q || res.apply != ap {
		t.Errorf("sibling change consulted the resolver: %d/%d queries, %d/%d applies", res.queries, q, res.apply, ap)
	}

	w.Touch(a)
	Update(gtx, root, f32.Pt(100, 100))
	if res.queries == q || res.apply == ap {
		t.Error("touched node not re-resolved")
	}
	expectNoErrors(t, buf)
}

func TestStackLayoutReuse(t *testing.T) {
	tests := []struct {
		name  string
		leaf  Props
		reuse bool
	}{
		{"fixed", leaf(20, 10), true},
		{"relative", Props{Size: unit.Rel(0.1, 0.1)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gtx, buf := newTestContext()
			w := gtx.World
			inner := w.Insert(Props{Layout: Stack{}}, w.Insert(tc.leaf))
			root := w.Insert(Props{Layout: Stack{}}, inner)
			Update(gtx, root, f32.Pt(100, 100))
			expectNoErrors(t, buf)
			if got := w.Cache(root).FixedSize(); got != tc.reuse {
				t.Errorf("root fixed size: got %v, expected %v", got, tc.reuse)
			}

			// Stack children are never queried, so only the
			// arrangement tells whether the layout depends on the
			// viewport.
			buf.Reset()
			b := Update(gtx, root, f32.Pt(200, 200))
			if hit := strings.Contains(buf.String(), "layout cache hit"); hit != tc.reuse {
				t.Errorf("layout reused: got %v, expected %v", hit, tc.reuse)
			}
			want := tc.leaf.Size.Resolve(f32.Pt(200, 200))
			if got := b.Rect.Size(); got != want {
				t.Errorf("root size: got %v, expected %v", got, want)
			}
		})
	}
}
