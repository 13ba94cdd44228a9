package dom

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Namespace uint

const (
	Htmlns Namespace = iota
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

// https://infra.spec.whatwg.org/#namespaces
func (ns Namespace) String() string {
	switch ns {
	case Mathmlns:
		return "http://www.w3.org/1998/Math/MathML"
	case Svgns:
		return "http://www.w3.org/2000/svg"
	case Xlinkns:
		return "http://www.w3.org/1999/xlink"
	case Xmlns:
		return "http://www.w3.org/XML/1998/namespace"
	case Xmlnsns:
		return "http://www.w3.org/2000/xmlns/"
	}
	return "http://www.w3.org/1999/xhtml"
}

// Element is an individual HTML element that gets added to the DOM.
// https://dom.spec.whatwg.org/#interface-element
type Element struct {
	NamespaceURI      Namespace
	Prefix, LocalName string
	Attributes        *NamedNodeMap

	// isHTML is set for HTML-namespace elements in HTML documents, whose
	// attribute names are matched case-insensitively.
	isHTML     bool
	classList  *DOMTokenList
	dataset    *DOMStringMap
	shadowRoot *Node
}

// NewElement creates a detached element owned by od. The optional argument is
// the namespace prefix.
func NewElement(od *Node, name string, namespace Namespace, optionals ...string) *Node {
	var prefix string
	if len(optionals) >= 1 {
		prefix = optionals[0]
	}
	n := &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			NamespaceURI: namespace,
			Prefix:       prefix,
			LocalName:    name,
			Attributes:   &NamedNodeMap{},
		},
	}
	n.Element.isHTML = namespace == Htmlns && od != nil && od.Document != nil && od.Document.Type == "html"
	n.Attributes.owner = n.Element
	return n
}

func (e *Element) normalizeName(qualifiedName string) string {
	if e.isHTML {
		return strings.ToLower(qualifiedName)
	}
	return qualifiedName
}

func (e *Element) HasAttributes() bool {
	return e.Attributes.Length() > 0
}

func (e *Element) GetAttributeNames() []string {
	names := make([]string, 0, e.Attributes.Length())
	for _, attr := range e.Attributes.attrs {
		names = append(names, attr.Name)
	}
	return names
}

// GetAttribute is https://dom.spec.whatwg.org/#dom-element-getattribute
// The boolean is false where the DOM returns null.
func (e *Element) GetAttribute(qualifiedName string) (string, bool) {
	attr := e.Attributes.GetNamedItem(qualifiedName)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// SetAttribute is https://dom.spec.whatwg.org/#dom-element-setattribute
func (e *Element) SetAttribute(qualifiedName, value string) error {
	if !isValidName(qualifiedName) {
		return newDOMException(InvalidCharacterError, "%q is not a valid attribute name", qualifiedName)
	}
	qualifiedName = e.normalizeName(qualifiedName)
	if attr := e.Attributes.GetNamedItem(qualifiedName); attr != nil {
		attr.Value = value
		return nil
	}
	e.Attributes.append(&Attr{
		LocalName: qualifiedName,
		Name:      qualifiedName,
		Value:     value,
	})
	return nil
}

// RemoveAttribute is https://dom.spec.whatwg.org/#dom-element-removeattribute
func (e *Element) RemoveAttribute(qualifiedName string) {
	e.Attributes.remove(qualifiedName)
}

func (e *Element) HasAttribute(qualifiedName string) bool {
	return e.Attributes.GetNamedItem(qualifiedName) != nil
}

// ToggleAttribute is https://dom.spec.whatwg.org/#dom-element-toggleattribute
func (e *Element) ToggleAttribute(qualifiedName string, force ...bool) (bool, error) {
	if !isValidName(qualifiedName) {
		return false, newDOMException(InvalidCharacterError, "%q is not a valid attribute name", qualifiedName)
	}
	qualifiedName = e.normalizeName(qualifiedName)
	forced := len(force) > 0
	if e.Attributes.GetNamedItem(qualifiedName) == nil {
		if !forced || force[0] {
			e.Attributes.append(&Attr{LocalName: qualifiedName, Name: qualifiedName})
			return true, nil
		}
		return false, nil
	}
	if !forced || !force[0] {
		e.Attributes.remove(qualifiedName)
		return false, nil
	}
	return true, nil
}

func (e *Element) ID() string {
	id, _ := e.GetAttribute("id")
	return id
}

func (e *Element) ClassName() string {
	class, _ := e.GetAttribute("class")
	return class
}

// ClassList is https://dom.spec.whatwg.org/#dom-element-classlist
func (e *Element) ClassList() *DOMTokenList {
	if e.classList == nil {
		e.classList = &DOMTokenList{element: e, localName: "class"}
	}
	return e.classList
}

// Dataset is https://html.spec.whatwg.org/#dom-dataset
func (e *Element) Dataset() *DOMStringMap {
	if e.dataset == nil {
		e.dataset = &DOMStringMap{element: e}
	}
	return e.dataset
}

// ShadowRoot returns the element's shadow root or nil.
func (e *Element) ShadowRoot() *Node {
	return e.shadowRoot
}

// AttachShadow is https://dom.spec.whatwg.org/#dom-element-attachshadow
func (n *Node) AttachShadow() (*Node, error) {
	if n.NodeType != ElementNode || n.NamespaceURI != Htmlns {
		return nil, newDOMException(NotSupportedError, "%s cannot host a shadow root", n.NodeName)
	}
	if n.shadowRoot != nil {
		return nil, newDOMException(NotSupportedError, "%s already hosts a shadow root", n.NodeName)
	}
	root := NewDocumentFragment(n.OwnerDocument)
	root.Host = n
	n.shadowRoot = root
	return root, nil
}

// isValidName implements the XML Name production used by createElement and
// setAttribute. https://www.w3.org/TR/xml/#NT-Name
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	first, size := utf8.DecodeRuneInString(name)
	if !isNameStartChar(first) {
		return false
	}
	for _, r := range name[size:] {
		if !isNameStartChar(r) && !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_':
		return true
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0xC0 && r <= 0xD6, r >= 0xD8 && r <= 0xF6, r >= 0xF8 && r <= 0x2FF:
		return true
	case r >= 0x370 && r <= 0x37D, r >= 0x37F && r <= 0x1FFF, r >= 0x200C && r <= 0x200D:
		return true
	case r >= 0x2070 && r <= 0x218F, r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD, r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	switch {
	case r == '-' || r == '.' || r == 0xB7:
		return true
	case unicode.IsDigit(r) && r < 0x80:
		return true
	case r >= 0x300 && r <= 0x36F, r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}
