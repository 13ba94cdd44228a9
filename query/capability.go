package query

import (
	"github.com/heathj/gquery/dom"
)

// The helpers below gate collection operations on what an item can do.
// Items lacking the capability are skipped without error.

func asNode(t dom.EventTarget) (*dom.Node, bool) {
	n, ok := t.(*dom.Node)
	return n, ok && n != nil
}

func asElement(t dom.EventTarget) (*dom.Node, bool) {
	n, ok := asNode(t)
	return n, ok && n.NodeType == dom.ElementNode
}

// asParent returns nodes that can hold children.
func asParent(t dom.EventTarget) (*dom.Node, bool) {
	n, ok := asNode(t)
	if !ok {
		return nil, false
	}
	switch n.NodeType {
	case dom.ElementNode, dom.DocumentNode, dom.DocumentFragmentNode:
		return n, true
	}
	return nil, false
}

// asChild returns nodes that currently have a parent.
func asChild(t dom.EventTarget) (*dom.Node, bool) {
	n, ok := asNode(t)
	return n, ok && n.ParentNode != nil
}

func asDocument(t dom.EventTarget) (*dom.Node, bool) {
	n, ok := asNode(t)
	return n, ok && n.NodeType == dom.DocumentNode && n.Document != nil
}

// asReadyDocument returns the document whose readiness t tracks: the item
// itself for documents, the active document for windows.
func asReadyDocument(t dom.EventTarget) (*dom.Node, bool) {
	if w, ok := t.(*dom.Window); ok && w != nil {
		return asDocument(w.Document())
	}
	return asDocument(t)
}

// ownerDocument is the document new nodes inserted into n should belong to.
func ownerDocument(n *dom.Node) *dom.Node {
	if n.NodeType == dom.DocumentNode {
		return n
	}
	return n.OwnerDocument
}

func (c *Collection) elements() []*dom.Node {
	var out []*dom.Node
	for _, t := range c.items {
		if n, ok := asElement(t); ok {
			out = append(out, n)
		}
	}
	return out
}

func (c *Collection) firstElement() (*dom.Node, bool) {
	for _, t := range c.items {
		if n, ok := asElement(t); ok {
			return n, true
		}
	}
	return nil, false
}
