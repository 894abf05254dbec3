// SPDX-License-Identifier: Unlicense OR MIT

package tree

// DirtySet collects IDs whose derived state must be recomputed. IDs
// are deduplicated and drained in the order they were first marked.
// The zero value is ready to use.
type DirtySet struct {
	seen  map[ID]struct{}
	order []ID
}

// Mark adds id to the set.
func (d *DirtySet) Mark(id ID) {
	if d.seen == nil {
		d.seen = make(map[ID]struct{})
	}
	if _, ok := d.seen[id]; ok {
		return
	}
	d.seen[id] = struct{}{}
	d.order = append(d.order, id)
}

// Contains reports whether id is marked.
func (d *DirtySet) Contains(id ID) bool {
	_, ok := d.seen[id]
	return ok
}

// Len returns the number of marked IDs.
func (d *DirtySet) Len() int {
	return len(d.order)
}

// Drain returns the marked IDs and empties the set.
func (d *DirtySet) Drain() []ID {
	ids := d.order
	d.order = nil
	for k := range d.seen {
		delete(d.seen, k)
	}
	return ids
}
