package dom

// Attr is https://dom.spec.whatwg.org/#attr
type Attr struct {
	NamespaceURI Namespace
	Prefix       string
	LocalName    string
	Name         string
	Value        string
	OwnerElement *Element
}

// NamedNodeMap is https://dom.spec.whatwg.org/#interface-namednodemap
// Attributes keep their insertion order.
type NamedNodeMap struct {
	attrs []*Attr
	owner *Element
}

func (n *NamedNodeMap) Length() int {
	return len(n.attrs)
}

func (n *NamedNodeMap) Item(i int) *Attr {
	if i < 0 || i >= len(n.attrs) {
		return nil
	}
	return n.attrs[i]
}

// GetNamedItem is https://dom.spec.whatwg.org/#concept-element-attributes-get-by-name
func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	if i := n.indexOf(qn); i >= 0 {
		return n.attrs[i]
	}
	return nil
}

// SetNamedItem replaces the attribute with the same name or appends attr.
// It returns the replaced attribute, if any.
func (n *NamedNodeMap) SetNamedItem(attr *Attr) *Attr {
	if attr == nil {
		return nil
	}
	i := n.indexOf(attr.Name)
	attr.OwnerElement = n.owner
	if i < 0 {
		n.attrs = append(n.attrs, attr)
		return nil
	}
	old := n.attrs[i]
	n.attrs[i] = attr
	old.OwnerElement = nil
	return old
}

// RemoveNamedItem is https://dom.spec.whatwg.org/#dom-namednodemap-removenameditem
func (n *NamedNodeMap) RemoveNamedItem(qn string) (*Attr, error) {
	attr := n.remove(qn)
	if attr == nil {
		return nil, newDOMException(NotFoundError, "no attribute named %q", qn)
	}
	return attr, nil
}

func (n *NamedNodeMap) indexOf(qn string) int {
	if n.owner != nil {
		qn = n.owner.normalizeName(qn)
	}
	for i, attr := range n.attrs {
		if attr.Name == qn {
			return i
		}
	}
	return -1
}

func (n *NamedNodeMap) append(attr *Attr) {
	attr.OwnerElement = n.owner
	n.attrs = append(n.attrs, attr)
}

func (n *NamedNodeMap) remove(qn string) *Attr {
	i := n.indexOf(qn)
	if i < 0 {
		return nil
	}
	attr := n.attrs[i]
	n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
	attr.OwnerElement = nil
	return attr
}
