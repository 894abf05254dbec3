// SPDX-License-Identifier: Unlicense OR MIT

package scene_test

import (
	"fmt"

	"gioui.org/blocks/scene"
)

func ExampleParseExpr() {
	s, err := scene.ParseExpr(
		`hflow(center, a:box(40px, 20px), b:margin(5px, box(30px, 40px)))`,
		scene.WithOptions(scene.Options{Viewport: [2]float32{200, 100}}),
	)
	if err != nil {
		panic(err)
	}
	s.Update(nil)
	for _, name := range s.Names() {
		id, _ := s.Lookup(name)
		fmt.Println(name, s.World.ScreenRect(id))
	}

	// Output:
	// a (0,10)-(40,30)
	// b (45,0)-(75,40)
}
