// Package query provides Collection, an ordered set of DOM event targets with
// chainable helpers for attributes, classes, traversal, insertion and events.
package query

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/heathj/gquery/dom"
)

// Collection is an ordered, duplicate-free sequence of event targets.
// Insertion silently drops candidates that are not valid targets or that are
// already present. The zero value is an empty collection ready to use.
type Collection struct {
	items []dom.EventTarget
	index map[dom.EventTarget]struct{}
}

// New returns a collection of the valid, distinct items in order.
func New(items ...dom.EventTarget) *Collection {
	c := &Collection{}
	c.Push(items...)
	return c
}

// FromNodes returns a collection of the nodes in nl.
func FromNodes(nl dom.NodeList) *Collection {
	c := &Collection{}
	for _, n := range nl {
		c.Push(n)
	}
	return c
}

// isTarget reports whether t can be held by a collection: a non-nil
// comparable value.
func isTarget(t dom.EventTarget) bool {
	if t == nil {
		return false
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return false
		}
	}
	return v.Type().Comparable()
}

// admit filters candidates through the membership rules and records the
// survivors in the index.
func (c *Collection) admit(method string, candidates []dom.EventTarget) []dom.EventTarget {
	if c.index == nil {
		c.index = make(map[dom.EventTarget]struct{}, len(candidates))
	}
	admitted := make([]dom.EventTarget, 0, len(candidates))
	for _, t := range candidates {
		if !isTarget(t) {
			logrus.WithField("method", method).Debugf("dropped %T: not an event target", t)
			continue
		}
		if _, dup := c.index[t]; dup {
			continue
		}
		c.index[t] = struct{}{}
		admitted = append(admitted, t)
	}
	return admitted
}

func (c *Collection) forget(items []dom.EventTarget) {
	for _, t := range items {
		delete(c.index, t)
	}
}

// Push appends the admissible items and returns the new length.
func (c *Collection) Push(items ...dom.EventTarget) int {
	c.items = append(c.items, c.admit("Push", items)...)
	return len(c.items)
}

// Unshift prepends the admissible items, keeping their relative order, and
// returns the new length.
func (c *Collection) Unshift(items ...dom.EventTarget) int {
	admitted := c.admit("Unshift", items)
	c.items = append(admitted, c.items...)
	return len(c.items)
}

// Pop removes and returns the last item, or nil.
func (c *Collection) Pop() dom.EventTarget {
	if len(c.items) == 0 {
		return nil
	}
	t := c.items[len(c.items)-1]
	c.items = c.items[:len(c.items)-1]
	delete(c.index, t)
	return t
}

// Shift removes and returns the first item, or nil.
func (c *Collection) Shift() dom.EventTarget {
	if len(c.items) == 0 {
		return nil
	}
	t := c.items[0]
	c.items = c.items[1:]
	delete(c.index, t)
	return t
}

func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the item at index i; negative indexes count back from the end.
// It returns nil when i is out of range.
func (c *Collection) At(i int) dom.EventTarget {
	if i < 0 {
		i += len(c.items)
	}
	if i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i]
}

// Items returns a copy of the held items.
func (c *Collection) Items() []dom.EventTarget {
	items := make([]dom.EventTarget, len(c.items))
	copy(items, c.items)
	return items
}

// Nodes returns the items that are DOM nodes.
func (c *Collection) Nodes() dom.NodeList {
	var nodes dom.NodeList
	for _, t := range c.items {
		if n, ok := asNode(t); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (c *Collection) IndexOf(t dom.EventTarget) int {
	if !isTarget(t) {
		return -1
	}
	if _, ok := c.index[t]; !ok {
		return -1
	}
	for i, item := range c.items {
		if item == t {
			return i
		}
	}
	return -1
}

func (c *Collection) Includes(t dom.EventTarget) bool {
	return c.IndexOf(t) >= 0
}

// Each calls fn for every item in order and returns c.
func (c *Collection) Each(fn func(t dom.EventTarget, i int)) *Collection {
	for i, t := range c.Items() {
		fn(t, i)
	}
	return c
}

// Filter returns a new collection of the items for which fn returns true.
func (c *Collection) Filter(fn func(t dom.EventTarget, i int) bool) *Collection {
	out := &Collection{}
	for i, t := range c.items {
		if fn(t, i) {
			out.Push(t)
		}
	}
	return out
}

// Map returns a new collection of the values returned by fn. Results that
// are not valid targets or repeat an earlier result are dropped.
func (c *Collection) Map(fn func(t dom.EventTarget, i int) dom.EventTarget) *Collection {
	out := &Collection{}
	for i, t := range c.Items() {
		out.Push(fn(t, i))
	}
	return out
}

// relativeIndex resolves a JavaScript-style index against length n.
func relativeIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// Slice returns a new collection of the items in [start, end). Negative
// indexes count back from the end.
func (c *Collection) Slice(start, end int) *Collection {
	start = relativeIndex(start, len(c.items))
	end = relativeIndex(end, len(c.items))
	if end < start {
		end = start
	}
	return New(c.items[start:end]...)
}

// First returns a collection holding only the first item.
func (c *Collection) First() *Collection {
	return c.Slice(0, 1)
}

// Last returns a collection holding only the last item.
func (c *Collection) Last() *Collection {
	if len(c.items) == 0 {
		return New()
	}
	return c.Slice(-1, len(c.items))
}

// Splice removes deleteCount items from start, inserts the admissible items
// in their place and returns the removed items as a new collection.
func (c *Collection) Splice(start, deleteCount int, items ...dom.EventTarget) *Collection {
	start = relativeIndex(start, len(c.items))
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > len(c.items)-start {
		deleteCount = len(c.items) - start
	}

	removed := make([]dom.EventTarget, deleteCount)
	copy(removed, c.items[start:start+deleteCount])
	c.forget(removed)
	admitted := c.admit("Splice", items)

	spliced := make([]dom.EventTarget, 0, len(c.items)-deleteCount+len(admitted))
	spliced = append(spliced, c.items[:start]...)
	spliced = append(spliced, admitted...)
	spliced = append(spliced, c.items[start+deleteCount:]...)
	c.items = spliced
	return New(removed...)
}

// Concat returns a new collection of c's items followed by the items of
// others, deduplicated.
func (c *Collection) Concat(others ...*Collection) *Collection {
	out := New(c.items...)
	for _, o := range others {
		if o != nil {
			out.Push(o.items...)
		}
	}
	return out
}

// Reverse reverses the items in place and returns c.
func (c *Collection) Reverse() *Collection {
	for i, j := 0, len(c.items)-1; i < j; i, j = i+1, j-1 {
		c.items[i], c.items[j] = c.items[j], c.items[i]
	}
	return c
}
