// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"io"
	"testing"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/unit"
	"github.com/charmbracelet/log"
)

func benchTree(w *World, rows, cols int) (root, first NodeID) {
	lines := make([]NodeID, rows)
	for i := range lines {
		cells := make([]NodeID, cols)
		for j := range cells {
			cells[j] = w.Insert(Props{
				Size:   unit.Px(float32(10+j%7), float32(10+i%5)),
				Margin: f32.UniformEdges(2),
			})
		}
		if i == 0 {
			first = cells[0]
		}
		lines[i] = w.Insert(Props{Layout: Flow{CrossAlign: Center}}, cells...)
	}
	root = w.Insert(Props{Layout: Flow{Direction: Vertical, Stretch: true}}, lines...)
	return root, first
}

func BenchmarkUpdateClean(b *testing.B) {
	gtx := Context{World: NewWorld(), Logger: log.New(io.Discard)}
	root, _ := benchTree(gtx.World, 30, 30)
	Update(gtx, root, f32.Pt(1000, 1000))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Update(gtx, root, f32.Pt(1000, 1000))
	}
}

func BenchmarkUpdateOneDirty(b *testing.B) {
	gtx := Context{World: NewWorld(), Logger: log.New(io.Discard)}
	root, first := benchTree(gtx.World, 30, 30)
	Update(gtx, root, f32.Pt(1000, 1000))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gtx.World.Touch(first)
		Update(gtx, root, f32.Pt(1000, 1000))
	}
}

func BenchmarkUpdateFull(b *testing.B) {
	gtx := Context{World: NewWorld(), Logger: log.New(io.Discard)}
	root, _ := benchTree(gtx.World, 30, 30)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gtx.World.Invalidate(gtx.World.Children(root)...)
		Update(gtx, root, f32.Pt(1000, 1000))
	}
}
