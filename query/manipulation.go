package query

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/heathj/gquery/dom"
)

// content is one piece of insertable content: a node, or text that becomes a
// fresh text node at every insertion site.
type content struct {
	node *dom.Node
	text string
}

// flatten normalizes the arguments of the insertion methods. Strings and
// values of other types become text; nodes, node lists and the nodes of
// collections are inserted as nodes.
func flatten(args []interface{}) []content {
	var out []content
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case string:
			out = append(out, content{text: v})
		case *dom.Node:
			if v != nil {
				out = append(out, content{node: v})
			}
		case dom.NodeList:
			for _, n := range v {
				if n != nil {
					out = append(out, content{node: n})
				}
			}
		case []*dom.Node:
			for _, n := range v {
				if n != nil {
					out = append(out, content{node: n})
				}
			}
		case *Collection:
			if v == nil {
				continue
			}
			for _, n := range v.Nodes() {
				out = append(out, content{node: n})
			}
		default:
			out = append(out, content{text: fmt.Sprint(v)})
		}
	}
	return out
}

// placement positions a prepared fragment relative to target. It is created
// before the content is gathered, so it can remember its anchor even when
// the content is moved out from next to target.
type placement func(target *dom.Node, moving map[*dom.Node]bool) func(fragment *dom.Node) error

// insertContent places content at every target selected by gate. Targets are
// visited last to first: the last one receives the original nodes, the
// others receive deep clones. All content for one target is gathered into a
// document fragment and placed with a single call.
func (c *Collection) insertContent(method string, args []interface{},
	gate func(dom.EventTarget) (*dom.Node, bool), place placement) (*Collection, error) {
	items := flatten(args)
	if len(items) == 0 {
		return c, nil
	}

	var targets []*dom.Node
	for _, t := range c.items {
		if n, ok := gate(t); ok {
			targets = append(targets, n)
		}
	}
	originals := map[*dom.Node]bool{}
	for _, item := range items {
		if item.node != nil {
			originals[item.node] = true
		}
	}

	for i := len(targets) - 1; i >= 0; i-- {
		target := targets[i]
		useOriginals := i == len(targets)-1
		var moving map[*dom.Node]bool
		if useOriginals {
			moving = originals
		}
		commit := place(target, moving)

		od := ownerDocument(target)
		fragment := dom.NewDocumentFragment(od)
		for _, item := range items {
			n := item.node
			switch {
			case n == nil:
				n = dom.NewTextNode(od, item.text)
			case !useOriginals:
				clone, err := n.CloneNode(true)
				if err != nil {
					return c, err
				}
				n = clone
			}
			if _, err := fragment.AppendChild(n); err != nil {
				return c, err
			}
		}
		if err := commit(fragment); err != nil {
			return c, err
		}
	}
	logrus.WithField("method", method).Debugf("inserted %d items at %d targets", len(items), len(targets))
	return c, nil
}

// viablePrevious is the nearest preceding sibling of n that is not moving.
func viablePrevious(n *dom.Node, moving map[*dom.Node]bool) *dom.Node {
	s := n.PreviousSibling
	for s != nil && moving[s] {
		s = s.PreviousSibling
	}
	return s
}

// viableNext is the nearest following sibling of n that is not moving.
func viableNext(n *dom.Node, moving map[*dom.Node]bool) *dom.Node {
	s := n.NextSibling
	for s != nil && moving[s] {
		s = s.NextSibling
	}
	return s
}

// Append inserts content as the last children of every parent node.
func (c *Collection) Append(args ...interface{}) (*Collection, error) {
	return c.insertContent("Append", args, asParent, func(target *dom.Node, _ map[*dom.Node]bool) func(*dom.Node) error {
		return func(fragment *dom.Node) error {
			_, err := target.AppendChild(fragment)
			return err
		}
	})
}

// Prepend inserts content as the first children of every parent node.
func (c *Collection) Prepend(args ...interface{}) (*Collection, error) {
	return c.insertContent("Prepend", args, asParent, func(target *dom.Node, _ map[*dom.Node]bool) func(*dom.Node) error {
		return func(fragment *dom.Node) error {
			_, err := target.InsertBefore(fragment, target.FirstChild)
			return err
		}
	})
}

// Before inserts content in front of every node that has a parent.
func (c *Collection) Before(args ...interface{}) (*Collection, error) {
	return c.insertContent("Before", args, asChild, func(target *dom.Node, moving map[*dom.Node]bool) func(*dom.Node) error {
		parent, prev := target.ParentNode, viablePrevious(target, moving)
		return func(fragment *dom.Node) error {
			ref := parent.FirstChild
			if prev != nil {
				ref = prev.NextSibling
			}
			_, err := parent.InsertBefore(fragment, ref)
			return err
		}
	})
}

// After inserts content behind every node that has a parent.
func (c *Collection) After(args ...interface{}) (*Collection, error) {
	return c.insertContent("After", args, asChild, func(target *dom.Node, moving map[*dom.Node]bool) func(*dom.Node) error {
		parent, next := target.ParentNode, viableNext(target, moving)
		return func(fragment *dom.Node) error {
			_, err := parent.InsertBefore(fragment, next)
			return err
		}
	})
}

// ReplaceWith replaces every node that has a parent with content.
func (c *Collection) ReplaceWith(args ...interface{}) (*Collection, error) {
	return c.insertContent("ReplaceWith", args, asChild, func(target *dom.Node, moving map[*dom.Node]bool) func(*dom.Node) error {
		parent, next := target.ParentNode, viableNext(target, moving)
		return func(fragment *dom.Node) error {
			if target.ParentNode == parent {
				_, err := parent.ReplaceChild(fragment, target)
				return err
			}
			_, err := parent.InsertBefore(fragment, next)
			return err
		}
	})
}

// AppendTo appends the nodes of c to every item of target and returns c.
func (c *Collection) AppendTo(target *Collection) (*Collection, error) {
	if _, err := target.Append(c); err != nil {
		return c, err
	}
	return c, nil
}

// PrependTo prepends the nodes of c to every item of target and returns c.
func (c *Collection) PrependTo(target *Collection) (*Collection, error) {
	if _, err := target.Prepend(c); err != nil {
		return c, err
	}
	return c, nil
}

// InsertBefore inserts the nodes of c in front of every item of target and
// returns c.
func (c *Collection) InsertBefore(target *Collection) (*Collection, error) {
	if _, err := target.Before(c); err != nil {
		return c, err
	}
	return c, nil
}

// InsertAfter inserts the nodes of c behind every item of target and
// returns c.
func (c *Collection) InsertAfter(target *Collection) (*Collection, error) {
	if _, err := target.After(c); err != nil {
		return c, err
	}
	return c, nil
}

// ReplaceAll replaces every item of target with the nodes of c and returns c.
func (c *Collection) ReplaceAll(target *Collection) (*Collection, error) {
	if _, err := target.ReplaceWith(c); err != nil {
		return c, err
	}
	return c, nil
}

// Remove detaches every node from its parent.
func (c *Collection) Remove() *Collection {
	for _, t := range c.items {
		if n, ok := asChild(t); ok {
			n.Remove()
		}
	}
	return c
}

// Empty removes the children of every element and fragment.
func (c *Collection) Empty() *Collection {
	for _, t := range c.items {
		n, ok := asParent(t)
		if !ok || n.NodeType == dom.DocumentNode {
			continue
		}
		n.SetTextContent("")
	}
	return c
}

// Clone returns a new collection of deep clones of every node.
func (c *Collection) Clone() (*Collection, error) {
	out := &Collection{}
	for _, t := range c.items {
		n, ok := asNode(t)
		if !ok {
			continue
		}
		clone, err := n.CloneNode(true)
		if err != nil {
			return nil, err
		}
		out.Push(clone)
	}
	return out, nil
}
