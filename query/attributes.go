package query

import (
	"regexp"
	"sort"
	"strings"

	"github.com/heathj/gquery/dom"
	"github.com/heathj/gquery/parser"
)

// Getters read the first item able to answer and return a default when none
// can. Setters apply to every capable item and return the collection; a DOM
// error stops the loop and is returned with the items already updated left
// as they are.

// Attr returns the named attribute of the first element.
func (c *Collection) Attr(name string) (string, bool) {
	e, ok := c.firstElement()
	if !ok {
		return "", false
	}
	return e.GetAttribute(name)
}

// SetAttr sets the named attribute on every element.
func (c *Collection) SetAttr(name, value string) (*Collection, error) {
	for _, e := range c.elements() {
		if err := e.SetAttribute(name, value); err != nil {
			return c, err
		}
	}
	return c, nil
}

// RemoveAttr removes the named attributes from every element.
func (c *Collection) RemoveAttr(names ...string) *Collection {
	for _, e := range c.elements() {
		for _, name := range names {
			e.RemoveAttribute(name)
		}
	}
	return c
}

// HasAttr reports whether the first element carries the named attribute.
func (c *Collection) HasAttr(name string) bool {
	e, ok := c.firstElement()
	return ok && e.HasAttribute(name)
}

// ToggleAttr toggles the named attribute on every element. With force the
// attribute is only added (true) or only removed (false).
func (c *Collection) ToggleAttr(name string, force ...bool) (*Collection, error) {
	for _, e := range c.elements() {
		if _, err := e.ToggleAttribute(name, force...); err != nil {
			return c, err
		}
	}
	return c, nil
}

// AddClass adds the class tokens to every element.
func (c *Collection) AddClass(names ...string) (*Collection, error) {
	for _, e := range c.elements() {
		if err := e.ClassList().Add(names...); err != nil {
			return c, err
		}
	}
	return c, nil
}

// RemoveClass removes the class tokens from every element.
func (c *Collection) RemoveClass(names ...string) (*Collection, error) {
	for _, e := range c.elements() {
		if err := e.ClassList().Remove(names...); err != nil {
			return c, err
		}
	}
	return c, nil
}

// ToggleClass toggles a class token on every element, or forces it on or off.
func (c *Collection) ToggleClass(name string, force ...bool) (*Collection, error) {
	for _, e := range c.elements() {
		if _, err := e.ClassList().Toggle(name, force...); err != nil {
			return c, err
		}
	}
	return c, nil
}

// HasClass reports whether the first element has the class token.
func (c *Collection) HasClass(name string) bool {
	e, ok := c.firstElement()
	return ok && e.ClassList().Contains(name)
}

// Text returns the text content of the first item that has one.
func (c *Collection) Text() (string, bool) {
	for _, t := range c.items {
		n, ok := asNode(t)
		if !ok {
			continue
		}
		if text, ok := n.TextContent(); ok {
			return text, true
		}
	}
	return "", false
}

// SetText replaces the text content of every node.
func (c *Collection) SetText(text string) *Collection {
	for _, t := range c.items {
		if n, ok := asNode(t); ok {
			n.SetTextContent(text)
		}
	}
	return c
}

// HTML returns the serialized children of the first element, or "".
func (c *Collection) HTML() string {
	e, ok := c.firstElement()
	if !ok {
		return ""
	}
	return parser.SerializeHTMLFragment(e, parser.Config{})
}

// SetHTML replaces the children of every element with markup parsed in the
// element's context.
func (c *Collection) SetHTML(markup string) (*Collection, error) {
	for _, e := range c.elements() {
		nodes, err := parser.ParseHTMLFragment(e, markup, parser.Config{})
		if err != nil {
			return c, err
		}
		e.SetTextContent("")
		for _, n := range nodes {
			if _, err := e.AppendChild(n); err != nil {
				return c, err
			}
		}
	}
	return c, nil
}

// OuterHTML serializes the first node together with its subtree.
func (c *Collection) OuterHTML() string {
	for _, t := range c.items {
		if n, ok := asNode(t); ok {
			return parser.SerializeHTML(n, parser.Config{})
		}
	}
	return ""
}

var dashLetter = regexp.MustCompile(`-([a-z])`)

// camelCase maps a hyphenated data key to its dataset property name, so
// "foo-bar" and "fooBar" address the same data-foo-bar attribute.
func camelCase(key string) string {
	return dashLetter.ReplaceAllStringFunc(key, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// Data returns a snapshot of the first element's data attributes.
func (c *Collection) Data() map[string]string {
	e, ok := c.firstElement()
	if !ok {
		return map[string]string{}
	}
	return e.Dataset().All()
}

// DataValue returns one data value of the first element.
func (c *Collection) DataValue(key string) (string, bool) {
	e, ok := c.firstElement()
	if !ok {
		return "", false
	}
	return e.Dataset().Get(camelCase(key))
}

// SetData sets one data value on every element.
func (c *Collection) SetData(key, value string) (*Collection, error) {
	key = camelCase(key)
	for _, e := range c.elements() {
		if err := e.Dataset().Set(key, value); err != nil {
			return c, err
		}
	}
	return c, nil
}

// ReplaceData replaces the whole data map of every element with values.
// Keys are written in sorted order.
func (c *Collection) ReplaceData(values map[string]string) (*Collection, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, e := range c.elements() {
		ds := e.Dataset()
		for _, name := range ds.Names() {
			ds.Delete(name)
		}
		for _, k := range keys {
			if err := ds.Set(camelCase(k), values[k]); err != nil {
				return c, err
			}
		}
	}
	return c, nil
}

// RemoveData removes the data values from every element.
func (c *Collection) RemoveData(keys ...string) *Collection {
	for _, e := range c.elements() {
		for _, k := range keys {
			e.Dataset().Delete(camelCase(k))
		}
	}
	return c
}

// Is reports whether any element matches the selector.
func (c *Collection) Is(selector string) (bool, error) {
	sel, err := dom.CompileSelector(selector)
	if err != nil {
		return false, err
	}
	for _, e := range c.elements() {
		if sel.Match(e) {
			return true, nil
		}
	}
	return false, nil
}

// Matching returns the elements that match the selector.
func (c *Collection) Matching(selector string) (*Collection, error) {
	sel, err := dom.CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return c.Filter(func(t dom.EventTarget, _ int) bool {
		e, ok := asElement(t)
		return ok && sel.Match(e)
	}), nil
}

// Not returns the items that are not elements matching the selector.
func (c *Collection) Not(selector string) (*Collection, error) {
	sel, err := dom.CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return c.Filter(func(t dom.EventTarget, _ int) bool {
		e, ok := asElement(t)
		return !ok || !sel.Match(e)
	}), nil
}
