// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"gioui.org/blocks/f32"
)

// Fit scales content of an intrinsic size to the offered space.
type Fit uint8

const (
	// Unscaled does not alter the scale of the content.
	Unscaled Fit = iota
	// Contain scales content as large as possible without cropping
	// and it preserves aspect-ratio.
	Contain
	// Cover scales the content to cover the offered area and
	// preserves aspect-ratio.
	Cover
	// ScaleDown scales the content smaller without cropping,
	// when it exceeds the offered area.
	// It preserves aspect-ratio.
	ScaleDown
	// Fill stretches the content to the offered area and does not
	// preserve aspect-ratio.
	Fill
)

// unbounded is the extent beyond which an axis is treated as
// unconstrained.
const unbounded = 1e30

// scale returns the size of content of the given size fitted to max,
// and whether the result depends on max.
func (fit Fit) scale(max, size f32.Point) (f32.Point, bool) {
	if fit == Unscaled || size.X == 0 || size.Y == 0 {
		return size, false
	}

	sx, okx := axisScale(max.X, size.X)
	sy, oky := axisScale(max.Y, size.Y)
	if !okx && !oky {
		return size, false
	}
	if !okx {
		sx = sy
	}
	if !oky {
		sy = sx
	}
	scale := f32.Pt(sx, sy)

	switch fit {
	case Contain:
		if scale.Y < scale.X {
			scale.X = scale.Y
		} else {
			scale.Y = scale.X
		}
	case Cover:
		if scale.Y > scale.X {
			scale.X = scale.Y
		} else {
			scale.Y = scale.X
		}
	case ScaleDown:
		if scale.Y < scale.X {
			scale.X = scale.Y
		} else {
			scale.Y = scale.X
		}

		// The content would need to be scaled up, no change needed.
		if scale.X >= 1 {
			return size, false
		}
	case Fill:
		if !okx {
			scale.X = 1
		}
		if !oky {
			scale.Y = 1
		}
	}
	return size.MulPt(scale), true
}

func axisScale(max, size float32) (float32, bool) {
	if max >= unbounded {
		return 1, false
	}
	return max / size, true
}

func (fit Fit) String() string {
	switch fit {
	case Unscaled:
		return "Unscaled"
	case Contain:
		return "Contain"
	case Cover:
		return "Cover"
	case ScaleDown:
		return "ScaleDown"
	case Fill:
		return "Fill"
	default:
		panic("unreachable")
	}
}
