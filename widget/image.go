// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"fmt"
	"image"
	"io"

	// Formats recognized by DecodeImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
)

// Image is a layout.SizeResolver for content with an intrinsic pixel
// size, such as a bitmap.
type Image struct {
	// Size is the intrinsic size in image pixels.
	Size image.Point
	// Fit specifies how to scale the image to the limits.
	// By default it does not do any scaling.
	Fit Fit
	// Scale is the ratio of layout pixels to image pixels. If
	// Scale is zero, 1 is used.
	Scale float32
}

var _ layout.SizeResolver = Image{}

// NewImage returns an Image sized to the bounds of src.
func NewImage(src image.Image, fit Fit) Image {
	return Image{Size: src.Bounds().Size(), Fit: fit}
}

// DecodeImage reads the header of an encoded image and returns an
// Image of its size. Only the header is decoded.
func DecodeImage(r io.Reader, fit Fit) (Image, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Image{}, "", fmt.Errorf("widget: decode image: %w", err)
	}
	return Image{Size: image.Pt(cfg.Width, cfg.Height), Fit: fit}, format, nil
}

func (im Image) natural() f32.Point {
	scale := im.Scale
	if scale == 0 {
		scale = 1
	}
	return f32.Pt(float32(im.Size.X), float32(im.Size.Y)).Mul(scale)
}

// Query implements layout.SizeResolver. Images that scale can shrink
// to the minimum of the limits.
func (im Image) Query(_ layout.NodeID, _ f32.Point, limits layout.Limits, _ layout.Direction) (f32.Point, f32.Point, layout.Hints) {
	size, canGrow := im.apply(limits)
	min := size
	if im.Fit != Unscaled {
		min = limits.Min
	}
	return min, size, layout.Hints{FixedSize: true, CanGrow: canGrow}
}

// Apply implements layout.SizeResolver.
func (im Image) Apply(_ layout.NodeID, _ f32.Point, limits layout.Limits) (f32.Point, bool) {
	return im.apply(limits)
}

func (im Image) apply(limits layout.Limits) (f32.Point, bool) {
	natural := im.natural()
	size, scaled := im.Fit.scale(limits.Max, natural)
	clamped := !size.Less(limits.Max, 0)
	return limits.Constrain(size), scaled || clamped
}
