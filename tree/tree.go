// SPDX-License-Identifier: Unlicense OR MIT

// Package tree implements a generational arena of values arranged in a
// parent/child hierarchy.
//
// Values are addressed by ID, a pair of slot index and generation.
// Removing a value bumps the generation of its slot, so stale IDs are
// detected instead of aliasing a newer value stored in the same slot.
package tree

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ID identifies a value in a Tree. The zero ID is never valid.
type ID struct {
	index uint32
	gen   uint32
}

// Tree is a generational arena with hierarchy links. The zero value is
// ready to use. A Tree is not safe for concurrent use.
type Tree[T any] struct {
	slots []slot[T]
	free  []uint32
	len   int
}

type slot[T any] struct {
	// gen is odd while the slot is occupied.
	gen      uint32
	parent   ID
	children []ID
	value    T
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Index returns the slot index of id, for use as a dense map key.
func (id ID) Index() int {
	return int(id.index)
}

func (id ID) String() string {
	return fmt.Sprintf("%dv%d", id.index, id.gen/2)
}

// Insert stores v in the tree as a detached root and returns its ID.
func (t *Tree[T]) Insert(v T) ID {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[T]{})
		idx = uint32(len(t.slots) - 1)
	}
	s := &t.slots[idx]
	s.gen++
	s.value = v
	t.len++
	return ID{index: idx, gen: s.gen}
}

// Valid reports whether id refers to a live value.
func (t *Tree[T]) Valid(id ID) bool {
	if int(id.index) >= len(t.slots) || id.gen%2 == 0 {
		return false
	}
	return t.slots[id.index].gen == id.gen
}

// Get returns a pointer to the value of id, or nil if id is stale.
// The pointer is invalidated by the next Insert.
func (t *Tree[T]) Get(id ID) *T {
	if !t.Valid(id) {
		return nil
	}
	return &t.slots[id.index].value
}

// MustGet is like Get but panics on a stale ID.
func (t *Tree[T]) MustGet(id ID) *T {
	v := t.Get(id)
	if v == nil {
		panic(fmt.Errorf("tree: stale or invalid id %v", id))
	}
	return v
}

// Len returns the number of live values.
func (t *Tree[T]) Len() int {
	return t.len
}

// Children returns the ordered children of id. The returned slice
// must not be modified.
func (t *Tree[T]) Children(id ID) []ID {
	if !t.Valid(id) {
		return nil
	}
	return t.slots[id.index].children
}

// Parent returns the parent of id, if any.
func (t *Tree[T]) Parent(id ID) (ID, bool) {
	if !t.Valid(id) {
		return ID{}, false
	}
	p := t.slots[id.index].parent
	return p, !p.IsZero()
}

// AppendChild detaches child from its current parent and appends it
// to the children of parent.
func (t *Tree[T]) AppendChild(parent, child ID) {
	t.mustValid(parent)
	t.mustValid(child)
	t.checkCycle(parent, child)
	t.Detach(child)
	p := &t.slots[parent.index]
	p.children = append(p.children, child)
	t.slots[child.index].parent = parent
}

// SetChildren replaces the children of parent. Previous children that
// are not in the new list are detached, not removed.
func (t *Tree[T]) SetChildren(parent ID, children ...ID) {
	t.mustValid(parent)
	for _, c := range t.slots[parent.index].children {
		t.slots[c.index].parent = ID{}
	}
	t.slots[parent.index].children = nil
	for _, c := range children {
		t.AppendChild(parent, c)
	}
}

// Detach unlinks id from its parent, making it a root.
func (t *Tree[T]) Detach(id ID) {
	t.mustValid(id)
	s := &t.slots[id.index]
	if s.parent.IsZero() {
		return
	}
	p := &t.slots[s.parent.index]
	if i := slices.Index(p.children, id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	s.parent = ID{}
}

// Remove deletes id and all its descendants.
func (t *Tree[T]) Remove(id ID) {
	if !t.Valid(id) {
		return
	}
	t.Detach(id)
	var doomed []ID
	t.Walk(id, func(n ID) bool {
		doomed = append(doomed, n)
		return true
	})
	var zero T
	for _, n := range doomed {
		s := &t.slots[n.index]
		s.gen++
		s.parent = ID{}
		s.children = nil
		s.value = zero
		t.free = append(t.free, n.index)
		t.len--
	}
}

// Ancestors calls fn for each ancestor of id, nearest first, until fn
// returns false.
func (t *Tree[T]) Ancestors(id ID, fn func(ID) bool) {
	for {
		p, ok := t.Parent(id)
		if !ok || !fn(p) {
			return
		}
		id = p
	}
}

// Walk visits root and its descendants in pre-order. Returning false
// from fn skips the descendants of the visited node. Walk uses an
// explicit stack and is safe for arbitrarily deep trees.
func (t *Tree[T]) Walk(root ID, fn func(ID) bool) {
	if !t.Valid(root) {
		return
	}
	stack := []ID{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		children := t.slots[n.index].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Depth returns the number of ancestors of id.
func (t *Tree[T]) Depth(id ID) int {
	d := 0
	t.Ancestors(id, func(ID) bool {
		d++
		return true
	})
	return d
}

func (t *Tree[T]) mustValid(id ID) {
	if !t.Valid(id) {
		panic(fmt.Errorf("tree: stale or invalid id %v", id))
	}
}

func (t *Tree[T]) checkCycle(parent, child ID) {
	if parent == child {
		panic(fmt.Errorf("tree: %v cannot be its own child", child))
	}
	t.Ancestors(parent, func(a ID) bool {
		if a == child {
			panic(fmt.Errorf("tree: %v is an ancestor of %v", child, parent))
		}
		return true
	})
}
