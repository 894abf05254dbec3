// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"gioui.org/blocks/f32"
	"gioui.org/blocks/tree"
	"gioui.org/blocks/unit"
)

// NodeID identifies a node in a World.
type NodeID = tree.ID

// Props are the declarative layout properties of a node.
type Props struct {
	Margin  f32.Edges
	Padding f32.Edges
	MinSize unit.Vec
	// MaxSize is unbounded when nil.
	MaxSize *unit.Vec
	Size    unit.Vec
	Offset  unit.Vec
	// Anchor is the point of the node, relative to its own size,
	// that is placed at Offset.
	Anchor unit.Vec
	// AspectRatio is width over height. Zero disables the
	// correction.
	AspectRatio float32
	// Maximize weighs the share of the space left over in a Flow
	// parent that the node fills, per axis. Only the main axis of
	// the parent counts, and zero leaves the node at its preferred
	// size.
	Maximize f32.Point
	// Layout arranges the children. A node with children must
	// have one.
	Layout Strategy
	// Resolver sizes leaf content with intrinsic dimensions.
	Resolver SizeResolver
}

// Node is the storage of a single node: its properties, its layout
// cache and the arranged results written back by the engine.
type Node struct {
	Props

	cache    Cache
	rect     f32.Rectangle
	margin   f32.Edges
	localPos f32.Point
	bounds   f32.Point
	revision uint64
}

// World owns the node tree. The layout engine requires exclusive
// access to a World for the duration of a pass.
type World struct {
	nodes tree.Tree[Node]
	dirty tree.DirtySet
}

// Bound returns a pointer to v, for use as Props.MaxSize.
func Bound(v unit.Vec) *unit.Vec {
	return &v
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return new(World)
}

// Insert adds a node with the given properties and children.
func (w *World) Insert(p Props, children ...NodeID) NodeID {
	id := w.nodes.Insert(Node{Props: p})
	if len(children) > 0 {
		w.SetChildren(id, children...)
	}
	w.dirty.Mark(id)
	return id
}

// Remove deletes id and its subtree.
func (w *World) Remove(id NodeID) {
	if p, ok := w.nodes.Parent(id); ok {
		w.dirty.Mark(p)
	}
	w.nodes.Remove(id)
}

// Valid reports whether id refers to a live node.
func (w *World) Valid(id NodeID) bool {
	return w.nodes.Valid(id)
}

// Len returns the number of live nodes.
func (w *World) Len() int {
	return w.nodes.Len()
}

// Props returns a copy of the properties of id.
func (w *World) Props(id NodeID) Props {
	return w.node(id).Props
}

// Update modifies the properties of id and marks it for invalidation.
func (w *World) Update(id NodeID, fn func(p *Props)) {
	fn(&w.node(id).Props)
	w.dirty.Mark(id)
}

// Touch marks id for invalidation without changing its properties.
// Size resolvers call it when their content changes.
func (w *World) Touch(id NodeID) {
	w.node(id)
	w.dirty.Mark(id)
}

// Children returns the ordered children of id.
func (w *World) Children(id NodeID) []NodeID {
	return w.nodes.Children(id)
}

// Parent returns the parent of id, if any.
func (w *World) Parent(id NodeID) (NodeID, bool) {
	return w.nodes.Parent(id)
}

// SetChildren replaces the children of id.
func (w *World) SetChildren(id NodeID, children ...NodeID) {
	for _, c := range children {
		if p, ok := w.nodes.Parent(c); ok && p != id {
			w.dirty.Mark(p)
		}
	}
	w.nodes.SetChildren(id, children...)
	w.dirty.Mark(id)
}

// AppendChild moves child to the end of the children of parent.
func (w *World) AppendChild(parent, child NodeID) {
	if p, ok := w.nodes.Parent(child); ok {
		w.dirty.Mark(p)
	}
	w.nodes.AppendChild(parent, child)
	w.dirty.Mark(parent)
}

// Walk visits id and its descendants in pre-order.
func (w *World) Walk(id NodeID, fn func(NodeID) bool) {
	w.nodes.Walk(id, fn)
}

// Dirty reports the number of nodes awaiting invalidation.
func (w *World) Dirty() int {
	return w.dirty.Len()
}

// FlushDirty invalidates every node marked since the last flush and
// returns how many were marked.
func (w *World) FlushDirty() int {
	ids := w.dirty.Drain()
	w.Invalidate(ids...)
	return len(ids)
}

// Invalidate clears the layout cache of each node and its ancestors.
// Stale IDs are ignored.
func (w *World) Invalidate(ids ...NodeID) {
	for _, id := range ids {
		n := w.nodes.Get(id)
		if n == nil {
			continue
		}
		n.cache.Invalidate()
		w.nodes.Ancestors(id, func(a NodeID) bool {
			w.nodes.Get(a).cache.Invalidate()
			return true
		})
	}
}

// Cache returns the layout cache of id.
func (w *World) Cache(id NodeID) *Cache {
	return &w.node(id).cache
}

// Rect returns the arranged rectangle of id relative to its local
// position.
func (w *World) Rect(id NodeID) f32.Rectangle {
	return w.node(id).rect
}

// Margin returns the effective outer margin of id.
func (w *World) Margin(id NodeID) f32.Edges {
	return w.node(id).margin
}

// LocalPosition returns the position of id within its parent.
func (w *World) LocalPosition(id NodeID) f32.Point {
	return w.node(id).localPos
}

// Bounds returns the resolved size of id.
func (w *World) Bounds(id NodeID) f32.Point {
	return w.node(id).bounds
}

// Revision returns a counter that changes whenever an arranged result
// of id changes.
func (w *World) Revision(id NodeID) uint64 {
	return w.node(id).revision
}

// ScreenRect returns the arranged rectangle of id in the coordinate
// space of its root.
func (w *World) ScreenRect(id NodeID) f32.Rectangle {
	n := w.node(id)
	pos := n.localPos
	w.nodes.Ancestors(id, func(a NodeID) bool {
		pos = pos.Add(w.nodes.Get(a).localPos)
		return true
	})
	return n.rect.Add(pos)
}

// HitTest returns the deepest node under p, in root coordinates.
func (w *World) HitTest(root NodeID, p f32.Point) (NodeID, bool) {
	var hit NodeID
	found := false
	var visit func(id NodeID, origin f32.Point)
	visit = func(id NodeID, origin f32.Point) {
		n := w.node(id)
		origin = origin.Add(n.localPos)
		if !n.rect.Add(origin).Contains(p) {
			return
		}
		hit, found = id, true
		for _, c := range w.nodes.Children(id) {
			visit(c, origin)
		}
	}
	visit(root, f32.Point{})
	return hit, found
}

func (w *World) node(id NodeID) *Node {
	return w.nodes.MustGet(id)
}

func (n *Node) setRect(r f32.Rectangle) {
	if n.rect != r {
		n.rect = r
		n.revision++
	}
}

func (n *Node) setMargin(m f32.Edges) {
	if n.margin != m {
		n.margin = m
		n.revision++
	}
}

func (n *Node) setLocalPosition(p f32.Point) {
	if n.localPos != p {
		n.localPos = p
		n.revision++
	}
}

func (n *Node) setBounds(b f32.Point) {
	if n.bounds != b {
		n.bounds = b
		n.revision++
	}
}

// isFixed reports whether none of the properties resolved against the
// content area carry a relative component.
func (p *Props) isFixed() bool {
	if !p.MinSize.IsFixed() || !p.Size.IsFixed() || !p.Offset.IsFixed() {
		return false
	}
	return p.MaxSize == nil || p.MaxSize.IsFixed()
}
