// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"gioui.org/blocks/f32"
	"github.com/charmbracelet/log"
)

// Context carries the state needed by every layout pass.
type Context struct {
	// World is the node tree being laid out. The pass requires
	// exclusive access to it.
	World *World
	// Logger receives invariant violations and cache diagnostics.
	// A nil Logger means log.Default().
	Logger *log.Logger
}

// Strategy arranges the children of a node. It is implemented by Flow
// and Stack only.
type Strategy interface {
	strategy()
}

func (Flow) strategy()  {}
func (Stack) strategy() {}

func (gtx Context) logger() *log.Logger {
	if gtx.Logger != nil {
		return gtx.Logger
	}
	return log.Default()
}

func (gtx Context) queryStrategy(s Strategy, id NodeID, inner f32.Rectangle, limits Limits, preferred f32.Point, squeeze Direction) Sizing {
	switch s := s.(type) {
	case Flow:
		return s.querySize(gtx, id, inner, limits, preferred, squeeze)
	case Stack:
		return s.querySize(gtx, id, inner, limits, preferred, squeeze)
	default:
		panic("layout: unknown strategy")
	}
}

func (gtx Context) applyStrategy(s Strategy, id NodeID, inner f32.Rectangle, limits Limits, preferred f32.Point) Block {
	switch s := s.(type) {
	case Flow:
		return s.apply(gtx, id, inner, limits, preferred)
	case Stack:
		return s.apply(gtx, id, inner, limits, preferred)
	default:
		panic("layout: unknown strategy")
	}
}
