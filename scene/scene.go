// SPDX-License-Identifier: Unlicense OR MIT

/*
Package scene builds layout trees from declarative descriptions.

A scene is either a TOML document,

	[options]
	viewport = [320, 240]
	font_size = 14

	[root]
	layout = "flow"
	direction = "vertical"
	padding = [8]

	[[root.children]]
	name = "title"
	text = "Hello, blocks"

	[[root.children]]
	size = ["100%", "24dp"]

or a compact layout expression in the spirit of fmt.Printf verbs:

	vflow(inset(8dp, text("Hello, blocks")), box(100%, 24dp))

Both forms produce a Scene: a layout.World, its root node and the
names given to nodes.
*/
package scene

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gioui.org/blocks/f32"
	"gioui.org/blocks/layout"
	"gioui.org/blocks/text"
	"gioui.org/blocks/unit"
)

var (
	// ErrUnknownLayout is returned for a layout name other than flow
	// and stack.
	ErrUnknownLayout = errors.New("unknown layout")
	// ErrBadValue is returned for malformed lengths, edges and
	// enumerations.
	ErrBadValue = errors.New("invalid value")
	// ErrNoLayout is returned for a node with children but no
	// layout.
	ErrNoLayout = errors.New("children without layout")
	// ErrConflict is returned for a node that is both a container
	// and leaf content.
	ErrConflict = errors.New("conflicting node content")
	// ErrUnknownKey is returned for TOML keys that don't map to a
	// scene field.
	ErrUnknownKey = errors.New("unknown key")
	// ErrDuplicateName is returned when two nodes share a name.
	ErrDuplicateName = errors.New("duplicate node name")
	// ErrSyntax is returned for malformed layout expressions.
	ErrSyntax = errors.New("syntax error")
	// ErrNotFound is returned for names that don't refer to a node.
	ErrNotFound = errors.New("node not found")
)

// Options are the scene wide settings.
type Options struct {
	// Viewport is the size offered to the root node.
	Viewport [2]float32 `toml:"viewport"`
	// FontSize is the text size in dp.
	FontSize float32 `toml:"font_size"`
	// PxPerDp scales dp values to pixels.
	PxPerDp float32 `toml:"px_per_dp"`
	// Tolerance is the slack allowed when checking results.
	Tolerance float32 `toml:"tolerance"`
}

// DefaultOptions returns the options used for unset fields.
func DefaultOptions() Options {
	return Options{
		Viewport:  [2]float32{800, 600},
		FontSize:  14,
		PxPerDp:   1,
		Tolerance: layout.Tolerance,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Viewport == ([2]float32{}) {
		o.Viewport = d.Viewport
	}
	if o.FontSize == 0 {
		o.FontSize = d.FontSize
	}
	if o.PxPerDp == 0 {
		o.PxPerDp = d.PxPerDp
	}
	if o.Tolerance == 0 {
		o.Tolerance = d.Tolerance
	}
	return o
}

// ViewportSize returns the viewport as a point.
func (o Options) ViewportSize() f32.Point {
	return f32.Pt(o.Viewport[0], o.Viewport[1])
}

func (o Options) metric() unit.Metric {
	return unit.Metric{PxPerDp: o.PxPerDp}
}

// Scene is a layout tree built from a description.
type Scene struct {
	World   *layout.World
	Root    layout.NodeID
	Options Options

	names  map[string]layout.NodeID
	info   map[layout.NodeID]nodeInfo
	labels map[layout.NodeID]*text.Label
}

type nodeInfo struct {
	name, kind string
}

func newScene(opts Options) *Scene {
	return &Scene{
		World:   layout.NewWorld(),
		Options: opts.withDefaults(),
		names:   make(map[string]layout.NodeID),
		info:    make(map[layout.NodeID]nodeInfo),
		labels:  make(map[layout.NodeID]*text.Label),
	}
}

func (s *Scene) register(id layout.NodeID, name, kind string) error {
	if name != "" {
		if _, exists := s.names[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		s.names[name] = id
	}
	s.info[id] = nodeInfo{name: name, kind: kind}
	return nil
}

// Lookup returns the node with the given name.
func (s *Scene) Lookup(name string) (layout.NodeID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Names returns the sorted names of all named nodes.
func (s *Scene) Names() []string {
	names := maps.Keys(s.names)
	slices.Sort(names)
	return names
}

// Describe returns a short label for id: its name if it has one,
// otherwise its kind.
func (s *Scene) Describe(id layout.NodeID) string {
	in := s.info[id]
	switch {
	case in.name != "":
		return in.name + " (" + in.kind + ")"
	case in.kind != "":
		return in.kind
	default:
		return id.String()
	}
}

// SetText replaces the text of the named label.
func (s *Scene) SetText(name, str string) error {
	id, ok := s.names[name]
	if !ok {
		return fmt.Errorf("scene: %w: %q", ErrNotFound, name)
	}
	lbl, ok := s.labels[id]
	if !ok {
		return fmt.Errorf("scene: %q is not a text node: %w", name, ErrBadValue)
	}
	lbl.Text = str
	s.World.Touch(id)
	return nil
}

// Resize changes the viewport of the scene.
func (s *Scene) Resize(viewport f32.Point) {
	s.Options.Viewport = [2]float32{viewport.X, viewport.Y}
}

// Update lays out the scene for its viewport.
func (s *Scene) Update(logger *log.Logger) layout.Block {
	gtx := layout.Context{World: s.World, Logger: logger}
	return layout.Update(gtx, s.Root, s.Options.ViewportSize())
}
