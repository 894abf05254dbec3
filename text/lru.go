// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"golang.org/x/image/math/fixed"
)

// lru is a fixed capacity cache evicting the least recently used
// entry.
type lru[K comparable, V any] struct {
	m          map[K]*lruElem[K, V]
	head, tail *lruElem[K, V]
}

type lruElem[K comparable, V any] struct {
	next, prev *lruElem[K, V]
	key        K
	val        V
}

type layoutKey struct {
	maxWidth fixed.Int26_6
	str      string
}

const maxSize = 1000

func (l *lru[K, V]) Get(k K) (V, bool) {
	if e, ok := l.m[k]; ok {
		l.remove(e)
		l.insert(e)
		return e.val, true
	}
	var zero V
	return zero, false
}

func (l *lru[K, V]) Put(k K, v V) {
	if l.m == nil {
		l.m = make(map[K]*lruElem[K, V])
		l.head = new(lruElem[K, V])
		l.tail = new(lruElem[K, V])
		l.head.prev = l.tail
		l.tail.next = l.head
	}
	if e, ok := l.m[k]; ok {
		e.val = v
		l.remove(e)
		l.insert(e)
		return
	}
	e := &lruElem[K, V]{key: k, val: v}
	l.m[k] = e
	l.insert(e)
	if len(l.m) > maxSize {
		oldest := l.tail.next
		l.remove(oldest)
		delete(l.m, oldest.key)
	}
}

func (l *lru[K, V]) Len() int {
	return len(l.m)
}

func (l *lru[K, V]) remove(e *lruElem[K, V]) {
	e.next.prev = e.prev
	e.prev.next = e.next
}

func (l *lru[K, V]) insert(e *lruElem[K, V]) {
	e.next = l.head
	e.prev = l.head.prev
	e.prev.next = e
	e.next.prev = e
}
