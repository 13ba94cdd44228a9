package dom

import "strings"

const asciiWhitespace = "\t\n\f\r "

// DOMTokenList is https://dom.spec.whatwg.org/#interface-domtokenlist
// The token set is always read from the associated attribute, so it never
// goes stale when the attribute is set directly.
type DOMTokenList struct {
	element   *Element
	localName string
}

// https://dom.spec.whatwg.org/#concept-ordered-set-parser
func (l *DOMTokenList) tokens() []string {
	value, _ := l.element.GetAttribute(l.localName)
	var set []string
	for _, token := range strings.FieldsFunc(value, isASCIIWhitespace) {
		if !contains(set, token) {
			set = append(set, token)
		}
	}
	return set
}

// https://dom.spec.whatwg.org/#concept-dtl-update
func (l *DOMTokenList) update(set []string) {
	if !l.element.HasAttribute(l.localName) && len(set) == 0 {
		return
	}
	_ = l.element.SetAttribute(l.localName, strings.Join(set, " "))
}

func validateToken(token string) error {
	if token == "" {
		return newDOMException(SyntaxError, "the token must not be empty")
	}
	if strings.ContainsAny(token, asciiWhitespace) {
		return newDOMException(InvalidCharacterError, "the token %q contains whitespace", token)
	}
	return nil
}

func (l *DOMTokenList) Length() int {
	return len(l.tokens())
}

// Item returns the token at index i, or "" when out of range.
func (l *DOMTokenList) Item(i int) string {
	set := l.tokens()
	if i < 0 || i >= len(set) {
		return ""
	}
	return set[i]
}

func (l *DOMTokenList) Contains(token string) bool {
	return contains(l.tokens(), token)
}

// Add is https://dom.spec.whatwg.org/#dom-domtokenlist-add
func (l *DOMTokenList) Add(tokens ...string) error {
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
	}
	set := l.tokens()
	for _, token := range tokens {
		if !contains(set, token) {
			set = append(set, token)
		}
	}
	l.update(set)
	return nil
}

// Remove is https://dom.spec.whatwg.org/#dom-domtokenlist-remove
func (l *DOMTokenList) Remove(tokens ...string) error {
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
	}
	set := l.tokens()
	kept := set[:0]
	for _, token := range set {
		if !contains(tokens, token) {
			kept = append(kept, token)
		}
	}
	l.update(kept)
	return nil
}

// Toggle is https://dom.spec.whatwg.org/#dom-domtokenlist-toggle
// An explicit force adds (true) or removes (false) instead of flipping.
func (l *DOMTokenList) Toggle(token string, force ...bool) (bool, error) {
	if err := validateToken(token); err != nil {
		return false, err
	}
	forced := len(force) > 0
	if l.Contains(token) {
		if !forced || !force[0] {
			return false, l.Remove(token)
		}
		return true, nil
	}
	if !forced || force[0] {
		return true, l.Add(token)
	}
	return false, nil
}

// Replace is https://dom.spec.whatwg.org/#dom-domtokenlist-replace
func (l *DOMTokenList) Replace(token, newToken string) (bool, error) {
	if err := validateToken(token); err != nil {
		return false, err
	}
	if err := validateToken(newToken); err != nil {
		return false, err
	}
	set := l.tokens()
	if !contains(set, token) {
		return false, nil
	}
	replaced := make([]string, 0, len(set))
	for _, t := range set {
		switch {
		case t == token:
			if !contains(replaced, newToken) {
				replaced = append(replaced, newToken)
			}
		case t == newToken:
			if !contains(replaced, newToken) {
				replaced = append(replaced, newToken)
			}
		default:
			replaced = append(replaced, t)
		}
	}
	l.update(replaced)
	return true, nil
}

func (l *DOMTokenList) Value() string {
	value, _ := l.element.GetAttribute(l.localName)
	return value
}

func (l *DOMTokenList) SetValue(value string) {
	_ = l.element.SetAttribute(l.localName, value)
}

func isASCIIWhitespace(r rune) bool {
	return strings.ContainsRune(asciiWhitespace, r)
}

func contains(set []string, token string) bool {
	for _, t := range set {
		if t == token {
			return true
		}
	}
	return false
}
