// SPDX-License-Identifier: Unlicense OR MIT

package unit_test

import (
	"testing"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/unit"
)

func TestResolve(t *testing.T) {
	ref := f32.Pt(200, 100)
	tests := []struct {
		v     unit.Vec
		exp   f32.Point
		fixed bool
	}{
		{unit.Zero, f32.Pt(0, 0), true},
		{unit.Px(10, 20), f32.Pt(10, 20), true},
		{unit.Rel(0.5, 1), f32.Pt(100, 100), false},
		{unit.Px(-8, 0).Add(unit.Rel(1, 0)), f32.Pt(192, 0), false},
	}
	for _, tc := range tests {
		if got := tc.v.Resolve(ref); got != tc.exp {
			t.Errorf("%v: got %v, expected %v", tc.v, got, tc.exp)
		}
		if got := tc.v.IsFixed(); got != tc.fixed {
			t.Errorf("%v: IsFixed = %v", tc.v, got)
		}
	}
}

func TestMetric(t *testing.T) {
	m := unit.Metric{PxPerDp: 2}
	v := m.Vec(unit.Px(5, 6).Add(unit.Rel(0.5, 0)))
	if exp := f32.Pt(10, 12); v.Px != exp {
		t.Errorf("px: got %v, expected %v", v.Px, exp)
	}
	if exp := f32.Pt(0.5, 0); v.Rel != exp {
		t.Errorf("rel: got %v, expected %v", v.Rel, exp)
	}
	if got := (unit.Metric{}).Dp(3); got != 3 {
		t.Errorf("zero metric: got %v, expected 3", got)
	}
}
