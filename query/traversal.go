package query

import (
	"github.com/heathj/gquery/dom"
)

// collect builds a new collection from what visit pushes for each item and
// keeps only the elements matching filter when it is not empty.
func (c *Collection) collect(filter string, visit func(t dom.EventTarget, out *Collection)) (*Collection, error) {
	var sel dom.Selector
	if filter != "" {
		var err error
		if sel, err = dom.CompileSelector(filter); err != nil {
			return nil, err
		}
	}

	out := &Collection{}
	for _, t := range c.items {
		visit(t, out)
	}
	if sel == nil {
		return out, nil
	}
	return out.Filter(func(t dom.EventTarget, _ int) bool {
		e, ok := asElement(t)
		return ok && sel.Match(e)
	}), nil
}

func pushNodes(out *Collection, nodes dom.NodeList) {
	for _, n := range nodes {
		out.Push(n)
	}
}

// Children returns the element children of every item.
func (c *Collection) Children(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asParent(t); ok {
			pushNodes(out, n.Children())
		}
	})
}

// Contents returns every child node of every item, text and comments
// included.
func (c *Collection) Contents(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asParent(t); ok {
			pushNodes(out, n.ChildNodes)
		}
	})
}

// Parent returns the parent node of every item.
func (c *Collection) Parent(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asChild(t); ok {
			out.Push(n.ParentNode)
		}
	})
}

// Parents returns the element ancestors of every item, nearest first.
func (c *Collection) Parents(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asNode(t); ok {
			for p := n.ParentElement(); p != nil; p = p.ParentElement() {
				out.Push(p)
			}
		}
	})
}

// Closest returns, for every item, the nearest inclusive ancestor element
// matching the selector.
func (c *Collection) Closest(selector string) (*Collection, error) {
	sel, err := dom.CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	out := &Collection{}
	for _, t := range c.items {
		n, ok := asNode(t)
		if !ok {
			continue
		}
		e := n
		if e.NodeType != dom.ElementNode {
			e = e.ParentElement()
		}
		for ; e != nil; e = e.ParentElement() {
			if sel.Match(e) {
				out.Push(e)
				break
			}
		}
	}
	return out, nil
}

// Next returns the next element sibling of every item.
func (c *Collection) Next(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asNode(t); ok {
			if s := n.NextElementSibling(); s != nil {
				out.Push(s)
			}
		}
	})
}

// Prev returns the previous element sibling of every item.
func (c *Collection) Prev(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asNode(t); ok {
			if s := n.PreviousElementSibling(); s != nil {
				out.Push(s)
			}
		}
	})
}

// NextAll returns every following element sibling of every item.
func (c *Collection) NextAll(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asNode(t); ok {
			for s := n.NextElementSibling(); s != nil; s = s.NextElementSibling() {
				out.Push(s)
			}
		}
	})
}

// PrevAll returns every preceding element sibling of every item, nearest
// first.
func (c *Collection) PrevAll(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		if n, ok := asNode(t); ok {
			for s := n.PreviousElementSibling(); s != nil; s = s.PreviousElementSibling() {
				out.Push(s)
			}
		}
	})
}

// Siblings returns the other element children of every item's parent.
func (c *Collection) Siblings(filter string) (*Collection, error) {
	return c.collect(filter, func(t dom.EventTarget, out *Collection) {
		n, ok := asChild(t)
		if !ok {
			return
		}
		for s := n.ParentNode.FirstElementChild(); s != nil; s = s.NextElementSibling() {
			if s != n {
				out.Push(s)
			}
		}
	})
}

// Find returns the descendants of every item matching the selector, in tree
// order per item.
func (c *Collection) Find(selector string) (*Collection, error) {
	if _, err := dom.CompileSelector(selector); err != nil {
		return nil, err
	}
	out := &Collection{}
	for _, t := range c.items {
		if n, ok := asParent(t); ok {
			matched, err := n.QuerySelectorAll(selector)
			if err != nil {
				return nil, err
			}
			pushNodes(out, matched)
		}
	}
	return out, nil
}

// FindFirst returns the first matching descendant of every item.
func (c *Collection) FindFirst(selector string) (*Collection, error) {
	if _, err := dom.CompileSelector(selector); err != nil {
		return nil, err
	}
	out := &Collection{}
	for _, t := range c.items {
		if n, ok := asParent(t); ok {
			found, err := n.QuerySelector(selector)
			if err != nil {
				return nil, err
			}
			if found != nil {
				out.Push(found)
			}
		}
	}
	return out, nil
}
