// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements size resolvers for leaf content with
// intrinsic dimensions. Text is handled by package text.
package widget
