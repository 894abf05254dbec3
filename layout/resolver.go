// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"gioui.org/blocks/f32"
)

// SizeResolver sizes leaf content whose dimensions depend on the
// offered space, such as wrapped text.
//
// Both methods must return identical results for identical inputs;
// the engine caches them.
type SizeResolver interface {
	// Query returns the minimum size when squeezed along squeeze,
	// the preferred size, and hints about the result. Along the
	// squeeze axis min must not exceed preferred.
	Query(id NodeID, area f32.Point, limits Limits, squeeze Direction) (min, preferred f32.Point, hints Hints)
	// Apply returns the final size under limits and whether it was
	// clamped by them.
	Apply(id NodeID, area f32.Point, limits Limits) (size f32.Point, canGrow bool)
}

// ResolverFuncs adapts a pair of functions to a SizeResolver.
type ResolverFuncs struct {
	QueryFunc func(id NodeID, area f32.Point, limits Limits, squeeze Direction) (min, preferred f32.Point, hints Hints)
	ApplyFunc func(id NodeID, area f32.Point, limits Limits) (size f32.Point, canGrow bool)
}

func (r ResolverFuncs) Query(id NodeID, area f32.Point, limits Limits, squeeze Direction) (f32.Point, f32.Point, Hints) {
	return r.QueryFunc(id, area, limits, squeeze)
}

func (r ResolverFuncs) Apply(id NodeID, area f32.Point, limits Limits) (f32.Point, bool) {
	return r.ApplyFunc(id, area, limits)
}
