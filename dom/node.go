package dom

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// https://dom.spec.whatwg.org/#node
type Node struct {
	NodeType                                                        NodeType
	NodeName                                                        string
	OwnerDocument                                                   *Node
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	// Node types
	*Element
	*CharacterData
	*Document
	*DocumentType
	*DocumentFragment

	Target
}

// CharacterData is https://dom.spec.whatwg.org/#characterdata
type CharacterData struct {
	Data string
}

// DocumentType is https://dom.spec.whatwg.org/#documenttype
type DocumentType struct {
	Name, PublicID, SystemID string
}

// DocumentFragment is https://dom.spec.whatwg.org/#documentfragment
// A fragment with a Host is a shadow root.
type DocumentFragment struct {
	Host *Node
}

// NewTextNode returns a detached text node owned by od.
func NewTextNode(od *Node, text string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		OwnerDocument: od,
		CharacterData: &CharacterData{Data: text},
	}
}

// NewComment returns a comment node with its Data section filled.
func NewComment(od *Node, data string) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		OwnerDocument: od,
		CharacterData: &CharacterData{Data: data},
	}
}

func NewDocTypeNode(od *Node, name, pub, sys string) *Node {
	return &Node{
		NodeType:      DocumentTypeNode,
		NodeName:      name,
		OwnerDocument: od,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

func NewDocumentFragment(od *Node) *Node {
	return &Node{
		NodeType:         DocumentFragmentNode,
		NodeName:         "#document-fragment",
		OwnerDocument:    od,
		DocumentFragment: &DocumentFragment{},
	}
}

// IsShadowRoot reports whether n is a shadow root attached to a host element.
func (n *Node) IsShadowRoot() bool {
	return n.NodeType == DocumentFragmentNode && n.DocumentFragment != nil && n.Host != nil
}

// nodeDocument is https://dom.spec.whatwg.org/#concept-node-document
func (n *Node) nodeDocument() *Node {
	if n.NodeType == DocumentNode {
		return n
	}
	return n.OwnerDocument
}

func (n *Node) isParentType() bool {
	switch n.NodeType {
	case ElementNode, DocumentNode, DocumentFragmentNode:
		return true
	}
	return false
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// GetRootNode is https://dom.spec.whatwg.org/#dom-node-getrootnode
func (n *Node) GetRootNode() *Node {
	root := n
	for root.ParentNode != nil {
		root = root.ParentNode
	}
	return root
}

// IsConnected is https://dom.spec.whatwg.org/#dom-node-isconnected
func (n *Node) IsConnected() bool {
	return n.GetRootNode().NodeType == DocumentNode
}

// Contains reports whether on is an inclusive descendant of n.
func (n *Node) Contains(on *Node) bool {
	for p := on; p != nil; p = p.ParentNode {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) ParentElement() *Node {
	if n.ParentNode != nil && n.ParentNode.NodeType == ElementNode {
		return n.ParentNode
	}
	return nil
}

// Children is https://dom.spec.whatwg.org/#dom-parentnode-children
func (n *Node) Children() NodeList {
	var children NodeList
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode {
			children = append(children, c)
		}
	}
	return children
}

func (n *Node) FirstElementChild() *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode {
			return c
		}
	}
	return nil
}

func (n *Node) LastElementChild() *Node {
	for c := n.LastChild; c != nil; c = c.PreviousSibling {
		if c.NodeType == ElementNode {
			return c
		}
	}
	return nil
}

func (n *Node) NextElementSibling() *Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.NodeType == ElementNode {
			return s
		}
	}
	return nil
}

func (n *Node) PreviousElementSibling() *Node {
	for s := n.PreviousSibling; s != nil; s = s.PreviousSibling {
		if s.NodeType == ElementNode {
			return s
		}
	}
	return nil
}

// TextContent is https://dom.spec.whatwg.org/#dom-node-textcontent
// The boolean is false where the DOM returns null (documents and doctypes).
func (n *Node) TextContent() (string, bool) {
	switch n.NodeType {
	case ElementNode, DocumentFragmentNode:
		var sb strings.Builder
		n.collectText(&sb)
		return sb.String(), true
	case TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		return n.CharacterData.Data, true
	}
	return "", false
}

func (n *Node) collectText(sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.NodeType {
		case TextNode, CDATASectionNode:
			sb.WriteString(c.CharacterData.Data)
		case ElementNode:
			c.collectText(sb)
		}
	}
}

// SetTextContent replaces all children with a single text node, or
// replaces the data of character data nodes.
func (n *Node) SetTextContent(text string) {
	switch n.NodeType {
	case ElementNode, DocumentFragmentNode:
		n.removeAllChildren()
		if text != "" {
			n.insert(NewTextNode(n.nodeDocument(), text), nil)
		}
	case TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		n.CharacterData.Data = text
	}
	traceMutation("SetTextContent", n)
}

func (n *Node) removeAllChildren() {
	for n.LastChild != nil {
		n.detach(n.LastChild)
	}
}

// https://dom.spec.whatwg.org/#concept-node-ensure-pre-insertion-validity
func (n *Node) ensurePreInsertionValidity(node, child *Node) error {
	if !n.isParentType() {
		return newDOMException(HierarchyRequestError, "%s cannot have children", n.NodeName)
	}
	if node.Contains(n) {
		return newDOMException(HierarchyRequestError, "the new child is an ancestor of the parent")
	}
	if child != nil && child.ParentNode != n {
		return newDOMException(NotFoundError, "the reference node is not a child of this node")
	}
	switch node.NodeType {
	case DocumentNode, AttrNode:
		return newDOMException(HierarchyRequestError, "%s cannot be inserted", node.NodeName)
	case DocumentTypeNode:
		if n.NodeType != DocumentNode {
			return newDOMException(HierarchyRequestError, "a doctype can only be a child of a document")
		}
	case TextNode, CDATASectionNode:
		if n.NodeType == DocumentNode {
			return newDOMException(HierarchyRequestError, "a document cannot have text children")
		}
	case ElementNode:
		if n.NodeType == DocumentNode && n.DocumentElement() != nil && n.DocumentElement() != node {
			return newDOMException(HierarchyRequestError, "a document can only have one element child")
		}
	case DocumentFragmentNode:
		if n.NodeType != DocumentNode {
			break
		}
		elements := 0
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch c.NodeType {
			case TextNode, CDATASectionNode:
				return newDOMException(HierarchyRequestError, "a document cannot have text children")
			case ElementNode:
				elements++
			}
		}
		if elements > 1 || (elements == 1 && n.DocumentElement() != nil) {
			return newDOMException(HierarchyRequestError, "a document can only have one element child")
		}
	}
	return nil
}

// InsertBefore is https://dom.spec.whatwg.org/#dom-node-insertbefore
func (n *Node) InsertBefore(node, child *Node) (*Node, error) {
	if err := n.ensurePreInsertionValidity(node, child); err != nil {
		return nil, err
	}
	if child == node {
		child = node.NextSibling
	}
	n.insert(node, child)
	traceMutation("InsertBefore", n)
	return node, nil
}

// AppendChild is https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(node *Node) (*Node, error) {
	if err := n.ensurePreInsertionValidity(node, nil); err != nil {
		return nil, err
	}
	n.insert(node, nil)
	traceMutation("AppendChild", n)
	return node, nil
}

// RemoveChild is https://dom.spec.whatwg.org/#dom-node-removechild
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child.ParentNode != n {
		return nil, newDOMException(NotFoundError, "the node to be removed is not a child of this node")
	}
	n.detach(child)
	traceMutation("RemoveChild", n)
	return child, nil
}

// ReplaceChild is https://dom.spec.whatwg.org/#dom-node-replacechild
func (n *Node) ReplaceChild(node, child *Node) (*Node, error) {
	if child.ParentNode != n {
		return nil, newDOMException(NotFoundError, "the node to be replaced is not a child of this node")
	}
	if node == child {
		return child, nil
	}
	if err := n.ensurePreInsertionValidity(node, child); err != nil {
		return nil, err
	}
	ref := child.NextSibling
	if ref == node {
		ref = node.NextSibling
	}
	n.detach(child)
	n.insert(node, ref)
	traceMutation("ReplaceChild", n)
	return child, nil
}

// Remove is https://dom.spec.whatwg.org/#dom-childnode-remove
func (n *Node) Remove() {
	if n.ParentNode == nil {
		return
	}
	parent := n.ParentNode
	parent.detach(n)
	traceMutation("Remove", parent)
}

// insert places node before child (or at the end when child is nil),
// moving it out of its previous parent and expanding fragments.
func (n *Node) insert(node, child *Node) {
	if node.NodeType == DocumentFragmentNode {
		for node.FirstChild != nil {
			n.insert(node.FirstChild, child)
		}
		return
	}
	if node.ParentNode != nil {
		node.ParentNode.detach(node)
	}
	node.adopt(n.nodeDocument())

	i := len(n.ChildNodes)
	if child != nil {
		i = n.ChildNodes.Contains(child)
	}
	n.ChildNodes.WedgeIn(i, node)
	node.ParentNode = n
	node.PreviousSibling, node.NextSibling = nil, nil
	if i > 0 {
		node.PreviousSibling = n.ChildNodes[i-1]
		node.PreviousSibling.NextSibling = node
	}
	if i+1 < len(n.ChildNodes) {
		node.NextSibling = n.ChildNodes[i+1]
		node.NextSibling.PreviousSibling = node
	}
	n.FirstChild = n.ChildNodes[0]
	n.LastChild = n.ChildNodes[len(n.ChildNodes)-1]
}

func (n *Node) detach(child *Node) {
	n.ChildNodes.Remove(n.ChildNodes.Contains(child))
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PreviousSibling = child.PreviousSibling
	}
	n.FirstChild, n.LastChild = nil, nil
	if len(n.ChildNodes) > 0 {
		n.FirstChild = n.ChildNodes[0]
		n.LastChild = n.ChildNodes[len(n.ChildNodes)-1]
	}
	child.ParentNode, child.PreviousSibling, child.NextSibling = nil, nil, nil
}

// https://dom.spec.whatwg.org/#concept-node-adopt
func (n *Node) adopt(doc *Node) {
	if doc == nil || n.OwnerDocument == doc || n.NodeType == DocumentNode {
		return
	}
	n.OwnerDocument = doc
	if n.Element != nil {
		n.Element.isHTML = n.Element.NamespaceURI == Htmlns && doc.Document != nil && doc.Document.Type == "html"
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		c.adopt(doc)
	}
}

// CloneNode is https://dom.spec.whatwg.org/#dom-node-clonenode
func (n *Node) CloneNode(deep bool) (*Node, error) {
	if n.IsShadowRoot() {
		return nil, newDOMException(NotSupportedError, "shadow roots cannot be cloned")
	}

	var clone *Node
	switch n.NodeType {
	case ElementNode:
		clone = NewElement(n.OwnerDocument, n.LocalName, n.NamespaceURI, n.Prefix)
		for _, attr := range n.Attributes.attrs {
			clone.Attributes.append(&Attr{
				NamespaceURI: attr.NamespaceURI,
				Prefix:       attr.Prefix,
				LocalName:    attr.LocalName,
				Name:         attr.Name,
				Value:        attr.Value,
			})
		}
	case TextNode, CDATASectionNode, ProcessingInstructionNode:
		clone = NewTextNode(n.OwnerDocument, n.CharacterData.Data)
		clone.NodeType, clone.NodeName = n.NodeType, n.NodeName
	case CommentNode:
		clone = NewComment(n.OwnerDocument, n.CharacterData.Data)
	case DocumentTypeNode:
		clone = NewDocTypeNode(n.OwnerDocument, n.DocumentType.Name, n.PublicID, n.SystemID)
	case DocumentFragmentNode:
		clone = NewDocumentFragment(n.OwnerDocument)
	case DocumentNode:
		clone = newDocumentNode(n.Document.Type)
		clone.Document.URL = n.Document.URL
		clone.Document.ContentType = n.Document.ContentType
		clone.Document.CompatMode = n.Document.CompatMode
	default:
		return nil, newDOMException(NotSupportedError, "%s cannot be cloned", n.NodeName)
	}

	if deep {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			cc, err := c.CloneNode(true)
			if err != nil {
				return nil, err
			}
			clone.insert(cc, nil)
		}
	}
	return clone, nil
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.Element.NamespaceURI {
		case Svgns:
			e += "svg "
		case Mathmlns:
			e += "math "
		}
		e += node.LocalName
		e += ">"
		if node.Attributes.Length() != 0 {
			attrs := make([]*Attr, len(node.Attributes.attrs))
			copy(attrs, node.Attributes.attrs)
			sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
			spaces := "| "
			for i := 1; i < ident; i++ {
				spaces += "  "
			}
			for _, attr := range attrs {
				e += "\n" + spaces + attr.Name + "=\"" + attr.Value + "\""
			}
		}
		return e
	case TextNode, CDATASectionNode:
		return "\"" + node.CharacterData.Data + "\""
	case CommentNode:
		return "<!-- " + node.CharacterData.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.DocumentType.Name
		if node.PublicID == "" && node.SystemID == "" {
			return d + ">"
		}
		return d + " \"" + node.PublicID + "\" \"" + node.SystemID + "\">"
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	default:
		logrus.WithField("method", "serializeNodeType").Debugf("unknown node type %d", node.NodeType)
		return ""
	}
}

func (n *Node) serialize(ident int) string {
	ser := serializeNodeType(n, ident+1) + "\n"
	if n.NodeType != DocumentNode && n.NodeType != DocumentFragmentNode {
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for _, child := range n.ChildNodes {
		ser += child.serialize(ident + 1)
	}

	return ser
}

// String dumps the subtree in the html5lib tree-construction test format.
func (n *Node) String() string {
	return strings.TrimRight(n.serialize(0), "\n")
}

func traceMutation(method string, n *Node) {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	logrus.WithField("method", method).Tracef("[TREE]: %s", n.GetRootNode().String())
}
