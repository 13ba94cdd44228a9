package dom

import (
	"strings"

	"github.com/sirupsen/logrus"
)

type DocumentReadyState string

const (
	Loading     DocumentReadyState = "loading"
	Interactive DocumentReadyState = "interactive"
	Complete    DocumentReadyState = "complete"
)

// Document is https://dom.spec.whatwg.org/#interface-document
type Document struct {
	URL, ContentType, CompatMode string
	Type                         string
	DefaultView                  *Window

	readyState DocumentReadyState
	tasks      *TaskQueue
	node       *Node
}

func newDocumentNode(docType string) *Node {
	n := &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Document: &Document{
			URL:         "about:blank",
			ContentType: "text/html",
			CompatMode:  "CSS1Compat",
			Type:        docType,
			readyState:  Complete,
		},
	}
	if docType != "html" {
		n.Document.ContentType = "application/xml"
	}
	n.Document.node = n
	return n
}

// NewDocument returns an empty HTML document with no children. Parsers use it
// as the tree they build into.
func NewDocument() *Node {
	return newDocumentNode("html")
}

// NewHTMLDocument is https://dom.spec.whatwg.org/#dom-domimplementation-createhtmldocument
func NewHTMLDocument(title string) *Node {
	doc := newDocumentNode("html")
	doc.insert(NewDocTypeNode(doc, "html", "", ""), nil)
	html := NewElement(doc, "html", Htmlns)
	head := NewElement(doc, "head", Htmlns)
	if title != "" {
		t := NewElement(doc, "title", Htmlns)
		t.insert(NewTextNode(doc, title), nil)
		head.insert(t, nil)
	}
	html.insert(head, nil)
	html.insert(NewElement(doc, "body", Htmlns), nil)
	doc.insert(html, nil)
	return doc
}

// ReadyState is https://html.spec.whatwg.org/#dom-document-readystate
func (d *Document) ReadyState() DocumentReadyState {
	return d.readyState
}

// SetReadyState is https://html.spec.whatwg.org/#update-the-current-document-readiness
// Entering interactive fires DOMContentLoaded on the document, entering
// complete fires load on the window.
func (d *Document) SetReadyState(state DocumentReadyState) {
	if d.readyState == state {
		return
	}
	logrus.WithField("method", "SetReadyState").Debugf("%s -> %s", d.readyState, state)
	d.readyState = state
	d.node.DispatchEvent(NewEvent("readystatechange"))
	switch state {
	case Interactive:
		d.node.DispatchEvent(NewEvent("DOMContentLoaded", EventInit{Bubbles: true}))
	case Complete:
		if d.DefaultView != nil {
			d.DefaultView.DispatchEvent(NewEvent("load"))
		}
	}
}

// Tasks returns the task queue of the document's event loop. Documents
// without a window get a queue of their own.
func (d *Document) Tasks() *TaskQueue {
	if d.DefaultView != nil {
		return d.DefaultView.tasks
	}
	if d.tasks == nil {
		d.tasks = NewTaskQueue()
	}
	return d.tasks
}

// DocumentElement is https://dom.spec.whatwg.org/#dom-document-documentelement
func (d *Document) DocumentElement() *Node {
	return d.node.FirstElementChild()
}

func (d *Document) Head() *Node {
	return d.htmlChild("head")
}

func (d *Document) Body() *Node {
	return d.htmlChild("body")
}

func (d *Document) htmlChild(name string) *Node {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for c := root.FirstElementChild(); c != nil; c = c.NextElementSibling() {
		if c.LocalName == name {
			return c
		}
	}
	return nil
}

// CreateElement is https://dom.spec.whatwg.org/#dom-document-createelement
func (d *Document) CreateElement(localName string) (*Node, error) {
	if !isValidName(localName) {
		return nil, newDOMException(InvalidCharacterError, "%q is not a valid element name", localName)
	}
	if d.Type == "html" {
		localName = strings.ToLower(localName)
	}
	return NewElement(d.node, localName, Htmlns), nil
}

func (d *Document) CreateTextNode(data string) *Node {
	return NewTextNode(d.node, data)
}

func (d *Document) CreateComment(data string) *Node {
	return NewComment(d.node, data)
}

func (d *Document) CreateDocumentFragment() *Node {
	return NewDocumentFragment(d.node)
}

// GetElementByID is https://dom.spec.whatwg.org/#dom-nonelementparentnode-getelementbyid
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	walk(d.node, func(n *Node) bool {
		if n.NodeType == ElementNode && n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits the descendants of root in tree order until fn returns false.
func walk(root *Node, fn func(n *Node) bool) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) || !walk(c, fn) {
			return false
		}
	}
	return true
}

func (n *Node) DispatchEvent(e *Event) bool {
	return dispatch(n, e)
}

// https://dom.spec.whatwg.org/#get-the-parent
func (n *Node) eventParent(e *Event) EventTarget {
	switch {
	case n.ParentNode != nil:
		return n.ParentNode
	case n.IsShadowRoot():
		return n.Host
	case n.NodeType == DocumentNode && n.DefaultView != nil && e.Type != "load":
		return n.DefaultView
	}
	return nil
}
