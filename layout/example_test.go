// SPDX-License-Identifier: Unlicense OR MIT

package layout_test

import (
	"fmt"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
	"gioui.org/blocks/unit"
)

func ExampleFlow() {
	w := layout.NewWorld()
	a := w.Insert(layout.Props{Size: unit.Px(30, 10)})
	b := w.Insert(layout.Props{Size: unit.Px(50, 20)})
	root := w.Insert(layout.Props{
		Layout: layout.Flow{CrossAlign: layout.Center},
	}, a, b)

	gtx := layout.Context{World: w}
	layout.Update(gtx, root, f32.Pt(200, 100))

	fmt.Println(w.ScreenRect(a))
	fmt.Println(w.ScreenRect(b))
	fmt.Println(w.ScreenRect(root))

	// Output:
	// (0,5)-(30,15)
	// (30,0)-(80,20)
	// (0,0)-(80,20)
}

func ExampleStack() {
	w := layout.NewWorld()
	child := w.Insert(layout.Props{Size: unit.Px(50, 50)})
	root := w.Insert(layout.Props{
		Size:   unit.Px(100, 100),
		Layout: layout.Stack{Horizontal: layout.Center, Vertical: layout.Center},
	}, child)

	gtx := layout.Context{World: w}
	layout.Update(gtx, root, f32.Pt(200, 200))

	fmt.Println(w.ScreenRect(child))

	// Output:
	// (25,25)-(75,75)
}

func ExampleQuerySize() {
	w := layout.NewWorld()
	a := w.Insert(layout.Props{Size: unit.Px(40, 10), MinSize: unit.Px(15, 0)})
	b := w.Insert(layout.Props{Size: unit.Px(60, 10)})
	root := w.Insert(layout.Props{Layout: layout.Flow{}}, a, b)

	gtx := layout.Context{World: w}
	limits := layout.Unbounded(f32.Pt(500, 500))
	s := layout.QuerySize(gtx, root, f32.Pt(500, 500), limits, layout.Horizontal)
	fmt.Println(s.Min.Size().X, s.Preferred.Size().X)

	// Output:
	// 15 100
}
