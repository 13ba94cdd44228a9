package dom

import "strings"

const dataPrefix = "data-"

// DOMStringMap is https://html.spec.whatwg.org/#domstringmap
// It is a live view over the element's data-* attributes keyed by their
// camelCased names.
type DOMStringMap struct {
	element *Element
}

// Names returns the supported property names in attribute order.
// https://html.spec.whatwg.org/#concept-domstringmap-pairs
func (m *DOMStringMap) Names() []string {
	var names []string
	for _, attr := range m.element.Attributes.attrs {
		if name, ok := datasetName(attr.Name); ok {
			names = append(names, name)
		}
	}
	return names
}

// All returns a snapshot of the map.
func (m *DOMStringMap) All() map[string]string {
	all := map[string]string{}
	for _, attr := range m.element.Attributes.attrs {
		if name, ok := datasetName(attr.Name); ok {
			if _, seen := all[name]; !seen {
				all[name] = attr.Value
			}
		}
	}
	return all
}

func (m *DOMStringMap) Get(name string) (string, bool) {
	for _, attr := range m.element.Attributes.attrs {
		if n, ok := datasetName(attr.Name); ok && n == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Set is https://html.spec.whatwg.org/#dom-domstringmap-setitem
func (m *DOMStringMap) Set(name, value string) error {
	if hasDashLower(name) {
		return newDOMException(SyntaxError, "%q is not a valid dataset name", name)
	}
	return m.element.SetAttribute(attributeName(name), value)
}

// Delete is https://html.spec.whatwg.org/#dom-domstringmap-removeitem
func (m *DOMStringMap) Delete(name string) {
	m.element.RemoveAttribute(attributeName(name))
}

// datasetName converts a data-* attribute name into its camelCased property
// name. Names with uppercase ASCII letters are not exposed.
func datasetName(attrName string) (string, bool) {
	if !strings.HasPrefix(attrName, dataPrefix) {
		return "", false
	}
	rest := attrName[len(dataPrefix):]
	var sb strings.Builder
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c >= 'A' && c <= 'Z' {
			return "", false
		}
		if c == '-' && i+1 < len(rest) && rest[i+1] >= 'a' && rest[i+1] <= 'z' {
			sb.WriteByte(rest[i+1] - 'a' + 'A')
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String(), true
}

func attributeName(name string) string {
	var sb strings.Builder
	sb.WriteString(dataPrefix)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			c += 'a' - 'A'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func hasDashLower(name string) bool {
	for i := 0; i+1 < len(name); i++ {
		if name[i] == '-' && name[i+1] >= 'a' && name[i+1] <= 'z' {
			return true
		}
	}
	return false
}
