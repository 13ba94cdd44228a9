package dom

import (
	"strings"
)

// Selector is a compiled selector list.
// https://drafts.csswg.org/selectors-4/#selector-list
type Selector interface {
	Match(n *Node) bool
}

type combinator byte

const (
	descendant        combinator = ' '
	child             combinator = '>'
	nextSibling       combinator = '+'
	subsequentSibling combinator = '~'
)

type selectorList []*complexSelector

func (l selectorList) Match(n *Node) bool {
	if n == nil || n.NodeType != ElementNode {
		return false
	}
	for _, c := range l {
		if c.match(n, len(c.compounds)-1) {
			return true
		}
	}
	return false
}

// complexSelector holds compounds left to right; combinators[i] joins
// compounds[i] and compounds[i+1].
type complexSelector struct {
	compounds   []*compoundSelector
	combinators []combinator
}

// match checks compounds[i] against n and then walks the tree right to left.
func (c *complexSelector) match(n *Node, i int) bool {
	if !c.compounds[i].match(n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch c.combinators[i-1] {
	case descendant:
		for p := n.ParentElement(); p != nil; p = p.ParentElement() {
			if c.match(p, i-1) {
				return true
			}
		}
	case child:
		if p := n.ParentElement(); p != nil {
			return c.match(p, i-1)
		}
	case nextSibling:
		if s := n.PreviousElementSibling(); s != nil {
			return c.match(s, i-1)
		}
	case subsequentSibling:
		for s := n.PreviousElementSibling(); s != nil; s = s.PreviousElementSibling() {
			if c.match(s, i-1) {
				return true
			}
		}
	}
	return false
}

type compoundSelector struct {
	tag    string
	simple []simpleSelector
}

func (c *compoundSelector) match(n *Node) bool {
	if c.tag != "" {
		if n.isHTML {
			if !strings.EqualFold(n.LocalName, c.tag) {
				return false
			}
		} else if n.LocalName != c.tag {
			return false
		}
	}
	for _, s := range c.simple {
		if !s.match(n) {
			return false
		}
	}
	return true
}

type simpleSelector interface {
	match(n *Node) bool
}

type idSelector string

func (s idSelector) match(n *Node) bool {
	return n.ID() == string(s)
}

type classSelector string

func (s classSelector) match(n *Node) bool {
	return n.ClassList().Contains(string(s))
}

type attrSelector struct {
	name, op, value string
	fold            bool
}

// https://drafts.csswg.org/selectors-4/#attribute-selectors
func (s *attrSelector) match(n *Node) bool {
	v, ok := n.GetAttribute(s.name)
	if !ok {
		return false
	}
	want := s.value
	if s.fold {
		v, want = strings.ToLower(v), strings.ToLower(want)
	}
	switch s.op {
	case "":
		return true
	case "=":
		return v == want
	case "~=":
		if want == "" || strings.ContainsAny(want, asciiWhitespace) {
			return false
		}
		return contains(strings.FieldsFunc(v, isASCIIWhitespace), want)
	case "|=":
		return v == want || strings.HasPrefix(v, want+"-")
	case "^=":
		return want != "" && strings.HasPrefix(v, want)
	case "$=":
		return want != "" && strings.HasSuffix(v, want)
	case "*=":
		return want != "" && strings.Contains(v, want)
	}
	return false
}

type pseudoSelector func(n *Node) bool

func (s pseudoSelector) match(n *Node) bool {
	return s(n)
}

type notSelector struct {
	list selectorList
}

func (s notSelector) match(n *Node) bool {
	return !s.list.Match(n)
}

type isSelector struct {
	list selectorList
}

func (s isSelector) match(n *Node) bool {
	return s.list.Match(n)
}

// nthSelector matches elements whose 1-based position p among their siblings
// satisfies p = a*k + b for some k >= 0.
type nthSelector struct {
	a, b         int
	last, ofType bool
}

func (s nthSelector) match(n *Node) bool {
	if n.ParentNode == nil {
		return false
	}
	pos := 1
	sibling := (*Node).PreviousElementSibling
	if s.last {
		sibling = (*Node).NextElementSibling
	}
	for sib := sibling(n); sib != nil; sib = sibling(sib) {
		if !s.ofType || sib.LocalName == n.LocalName {
			pos++
		}
	}
	if s.a == 0 {
		return pos == s.b
	}
	diff := pos - s.b
	return diff%s.a == 0 && diff/s.a >= 0
}

// CompileSelector parses a selector list. Malformed input yields a
// SyntaxError DOMException.
func CompileSelector(selectors string) (Selector, error) {
	p := &selectorParser{s: selectors}
	list, ok := p.parseSelectorList()
	if !ok || !p.eof() {
		return nil, newDOMException(SyntaxError, "%q is not a valid selector", selectors)
	}
	return list, nil
}

// Matches is https://dom.spec.whatwg.org/#dom-element-matches
func (n *Node) Matches(selectors string) (bool, error) {
	sel, err := CompileSelector(selectors)
	if err != nil {
		return false, err
	}
	return sel.Match(n), nil
}

// Closest is https://dom.spec.whatwg.org/#dom-element-closest
func (n *Node) Closest(selectors string) (*Node, error) {
	sel, err := CompileSelector(selectors)
	if err != nil {
		return nil, err
	}
	for e := n; e != nil; e = e.ParentElement() {
		if sel.Match(e) {
			return e, nil
		}
	}
	return nil, nil
}

// QuerySelector is https://dom.spec.whatwg.org/#dom-parentnode-queryselector
func (n *Node) QuerySelector(selectors string) (*Node, error) {
	sel, err := CompileSelector(selectors)
	if err != nil {
		return nil, err
	}
	var found *Node
	walk(n, func(c *Node) bool {
		if sel.Match(c) {
			found = c
			return false
		}
		return true
	})
	return found, nil
}

// QuerySelectorAll is https://dom.spec.whatwg.org/#dom-parentnode-queryselectorall
// Results are in tree order.
func (n *Node) QuerySelectorAll(selectors string) (NodeList, error) {
	sel, err := CompileSelector(selectors)
	if err != nil {
		return nil, err
	}
	var found NodeList
	walk(n, func(c *Node) bool {
		if sel.Match(c) {
			found = append(found, c)
		}
		return true
	})
	return found, nil
}
