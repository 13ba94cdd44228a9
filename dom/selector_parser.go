package dom

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// selectorParser is a recursive descent parser over the subset of
// https://drafts.csswg.org/selectors-4/#grammar this package supports.
type selectorParser struct {
	s   string
	pos int
}

func (p *selectorParser) eof() bool {
	return p.pos >= len(p.s)
}

func (p *selectorParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *selectorParser) skipWS() bool {
	start := p.pos
	for !p.eof() && strings.IndexByte(asciiWhitespace, p.peek()) >= 0 {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) parseSelectorList() (selectorList, bool) {
	var list selectorList
	for {
		p.skipWS()
		c, ok := p.parseComplex()
		if !ok {
			return nil, false
		}
		list = append(list, c)
		p.skipWS()
		if p.peek() != ',' {
			return list, true
		}
		p.pos++
	}
}

func (p *selectorParser) parseComplex() (*complexSelector, bool) {
	c := &complexSelector{}
	compound, ok := p.parseCompound()
	if !ok {
		return nil, false
	}
	c.compounds = append(c.compounds, compound)
	for {
		hadWS := p.skipWS()
		if p.eof() || p.peek() == ',' || p.peek() == ')' {
			return c, true
		}
		comb := descendant
		switch p.peek() {
		case '>', '+', '~':
			comb = combinator(p.peek())
			p.pos++
			p.skipWS()
		default:
			if !hadWS {
				return nil, false
			}
		}
		compound, ok = p.parseCompound()
		if !ok {
			return nil, false
		}
		c.compounds = append(c.compounds, compound)
		c.combinators = append(c.combinators, comb)
	}
}

func (p *selectorParser) parseCompound() (*compoundSelector, bool) {
	c := &compoundSelector{}
	start := p.pos
	if p.peek() == '*' {
		p.pos++
	} else if p.atIdentStart() {
		tag, _ := p.parseIdent()
		c.tag = tag
	}
	for {
		switch p.peek() {
		case '#':
			p.pos++
			var sb strings.Builder
			if !p.consumeName(&sb) {
				return nil, false
			}
			c.simple = append(c.simple, idSelector(sb.String()))
		case '.':
			p.pos++
			class, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			c.simple = append(c.simple, classSelector(class))
		case '[':
			attr, ok := p.parseAttribute()
			if !ok {
				return nil, false
			}
			c.simple = append(c.simple, attr)
		case ':':
			pseudo, ok := p.parsePseudo()
			if !ok {
				return nil, false
			}
			c.simple = append(c.simple, pseudo)
		default:
			return c, p.pos > start
		}
	}
}

func (p *selectorParser) parseAttribute() (simpleSelector, bool) {
	p.pos++
	p.skipWS()
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	a := &attrSelector{name: name}
	p.skipWS()
	if p.peek() == ']' {
		p.pos++
		return a, true
	}

	switch {
	case p.peek() == '=':
		a.op = "="
		p.pos++
	case strings.IndexByte("~|^$*", p.peek()) >= 0 && p.pos+1 < len(p.s) && p.s[p.pos+1] == '=':
		a.op = p.s[p.pos : p.pos+2]
		p.pos += 2
	default:
		return nil, false
	}
	p.skipWS()

	if q := p.peek(); q == '"' || q == '\'' {
		a.value, ok = p.parseString(q)
	} else {
		a.value, ok = p.parseIdent()
	}
	if !ok {
		return nil, false
	}
	p.skipWS()
	switch p.peek() {
	case 'i', 'I':
		a.fold = true
		p.pos++
		p.skipWS()
	case 's', 'S':
		p.pos++
		p.skipWS()
	}
	if p.peek() != ']' {
		return nil, false
	}
	p.pos++
	return a, true
}

func (p *selectorParser) parsePseudo() (simpleSelector, bool) {
	p.pos++
	if p.peek() == ':' {
		// pseudo-elements never match elements
		return nil, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	name = strings.ToLower(name)

	if p.peek() == '(' {
		p.pos++
		var sel simpleSelector
		switch name {
		case "not", "is", "where":
			list, ok := p.parseSelectorList()
			if !ok {
				return nil, false
			}
			if name == "not" {
				sel = notSelector{list: list}
			} else {
				sel = isSelector{list: list}
			}
		case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
			end := strings.IndexByte(p.s[p.pos:], ')')
			if end < 0 {
				return nil, false
			}
			a, b, ok := parseNth(p.s[p.pos : p.pos+end])
			if !ok {
				return nil, false
			}
			p.pos += end
			sel = nthSelector{
				a:      a,
				b:      b,
				last:   strings.Contains(name, "last"),
				ofType: strings.HasSuffix(name, "of-type"),
			}
		default:
			return nil, false
		}
		p.skipWS()
		if p.peek() != ')' {
			return nil, false
		}
		p.pos++
		return sel, true
	}

	switch name {
	case "first-child":
		return nthSelector{b: 1}, true
	case "last-child":
		return nthSelector{b: 1, last: true}, true
	case "first-of-type":
		return nthSelector{b: 1, ofType: true}, true
	case "last-of-type":
		return nthSelector{b: 1, last: true, ofType: true}, true
	case "only-child":
		return pseudoSelector(func(n *Node) bool {
			return n.ParentNode != nil && n.PreviousElementSibling() == nil && n.NextElementSibling() == nil
		}), true
	case "empty":
		return pseudoSelector(func(n *Node) bool {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.NodeType == ElementNode || (c.NodeType == TextNode && c.CharacterData.Data != "") {
					return false
				}
			}
			return true
		}), true
	case "root":
		return pseudoSelector(func(n *Node) bool {
			return n.ParentNode != nil && n.ParentNode.NodeType == DocumentNode
		}), true
	case "checked":
		return pseudoSelector(func(n *Node) bool {
			return n.HasAttribute("checked") || (n.LocalName == "option" && n.HasAttribute("selected"))
		}), true
	case "disabled":
		return pseudoSelector(func(n *Node) bool {
			return n.HasAttribute("disabled")
		}), true
	}
	return nil, false
}

// parseNth parses the An+B microsyntax.
// https://drafts.csswg.org/css-syntax-3/#anb-microsyntax
func parseNth(s string) (a, b int, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "odd":
		return 2, 1, true
	case "even":
		return 2, 0, true
	case "":
		return 0, 0, false
	}

	i := strings.IndexByte(s, 'n')
	if i < 0 {
		b, err := strconv.Atoi(s)
		return 0, b, err == nil
	}
	switch coef := s[:i]; coef {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		var err error
		if a, err = strconv.Atoi(coef); err != nil {
			return 0, 0, false
		}
	}
	rest := strings.Join(strings.Fields(s[i+1:]), "")
	if rest == "" {
		return a, 0, true
	}
	if rest[0] != '+' && rest[0] != '-' {
		return 0, 0, false
	}
	b, err := strconv.Atoi(rest)
	return a, b, err == nil
}

func (p *selectorParser) atIdentStart() bool {
	i := p.pos
	if i < len(p.s) && p.s[i] == '-' {
		i++
		if i < len(p.s) && p.s[i] == '-' {
			return true
		}
	}
	return i < len(p.s) && (isNameStartByte(p.s[i]) || p.isEscape(i))
}

// parseIdent consumes a CSS identifier.
// https://drafts.csswg.org/css-syntax-3/#consume-name
func (p *selectorParser) parseIdent() (string, bool) {
	if !p.atIdentStart() {
		return "", false
	}
	var sb strings.Builder
	p.consumeName(&sb)
	return sb.String(), true
}

func (p *selectorParser) consumeName(sb *strings.Builder) bool {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		switch {
		case isNameStartByte(c) || c == '-' || (c >= '0' && c <= '9'):
			if c < utf8.RuneSelf {
				sb.WriteByte(c)
				p.pos++
			} else {
				r, size := utf8.DecodeRuneInString(p.s[p.pos:])
				sb.WriteRune(r)
				p.pos += size
			}
		case p.isEscape(p.pos):
			sb.WriteRune(p.consumeEscape())
		default:
			return p.pos > start
		}
	}
	return p.pos > start
}

func (p *selectorParser) isEscape(i int) bool {
	return i+1 < len(p.s) && p.s[i] == '\\' && p.s[i+1] != '\n'
}

// https://drafts.csswg.org/css-syntax-3/#consume-escaped-code-point
func (p *selectorParser) consumeEscape() rune {
	p.pos++
	start := p.pos
	for p.pos < len(p.s) && p.pos-start < 6 && isHex(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		r, size := utf8.DecodeRuneInString(p.s[p.pos:])
		p.pos += size
		return r
	}
	v, _ := strconv.ParseUint(p.s[start:p.pos], 16, 32)
	if p.pos < len(p.s) && strings.IndexByte(asciiWhitespace, p.s[p.pos]) >= 0 {
		p.pos++
	}
	if v == 0 || v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return utf8.RuneError
	}
	return rune(v)
}

func (p *selectorParser) parseString(quote byte) (string, bool) {
	p.pos++
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		switch {
		case c == quote:
			p.pos++
			return sb.String(), true
		case c == '\n':
			return "", false
		case c == '\\' && p.pos+1 < len(p.s) && p.s[p.pos+1] == '\n':
			p.pos += 2
		case p.isEscape(p.pos):
			sb.WriteRune(p.consumeEscape())
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", false
}

func isNameStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
