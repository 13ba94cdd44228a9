package parser

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/heathj/gquery/dom"
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

func isVoidElement(name string) bool {
	switch atom.Lookup([]byte(name)) {
	case atom.Area, atom.Base, atom.Basefont, atom.Bgsound, atom.Br, atom.Col,
		atom.Embed, atom.Frame, atom.Hr, atom.Img, atom.Input, atom.Keygen,
		atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

func isRawTextParent(name string, scripting bool) bool {
	switch atom.Lookup([]byte(name)) {
	case atom.Style, atom.Script, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes, atom.Plaintext:
		return true
	case atom.Noscript:
		return scripting
	}
	return false
}

// SerializeHTMLFragment is https://html.spec.whatwg.org/#serialising-html-fragments
// applied to the children of node (innerHTML).
func SerializeHTMLFragment(fragment *dom.Node, config Config) string {
	var sb strings.Builder
	serializeChildren(&sb, fragment, config.Scripting)
	return sb.String()
}

// SerializeHTML serializes node itself together with its subtree (outerHTML).
func SerializeHTML(node *dom.Node, config Config) string {
	var sb strings.Builder
	serializeNode(&sb, node, config.Scripting)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, fragment *dom.Node, scripting bool) {
	if fragment.NodeType == dom.ElementNode && isVoidElement(fragment.LocalName) {
		return
	}
	for child := fragment.FirstChild; child != nil; child = child.NextSibling {
		serializeNode(sb, child, scripting)
	}
}

func serializeNode(sb *strings.Builder, child *dom.Node, scripting bool) {
	switch child.NodeType {
	case dom.ElementNode:
		sb.WriteString("<" + child.LocalName)
		for i := 0; i < child.Attributes.Length(); i++ {
			attr := child.Attributes.Item(i)
			sb.WriteString(" " + attr.Name + "=\"" + escapeString(attr.Value, true) + "\"")
		}
		sb.WriteString(">")
		if isVoidElement(child.LocalName) {
			return
		}
		serializeChildren(sb, child, scripting)
		sb.WriteString("</" + child.LocalName + ">")
	case dom.TextNode, dom.CDATASectionNode:
		if parent := child.ParentNode; parent != nil && parent.NodeType == dom.ElementNode &&
			isRawTextParent(parent.LocalName, scripting) {
			sb.WriteString(child.CharacterData.Data)
		} else {
			sb.WriteString(escapeString(child.CharacterData.Data, false))
		}
	case dom.CommentNode:
		sb.WriteString("<!--" + child.CharacterData.Data + "-->")
	case dom.DocumentTypeNode:
		sb.WriteString("<!DOCTYPE " + child.DocumentType.Name + ">")
	case dom.DocumentNode, dom.DocumentFragmentNode:
		serializeChildren(sb, child, scripting)
	}
}

// ParseHTMLFragment is https://html.spec.whatwg.org/#html-fragment-parsing-algorithm
// The returned nodes are detached and owned by the context's document; a nil
// context parses as if inside a body element of a fresh document.
func ParseHTMLFragment(context *dom.Node, input string, config Config) ([]*dom.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	var od *dom.Node
	if context != nil {
		od = context.OwnerDocument
		switch context.NodeType {
		case dom.DocumentNode:
			od = context
		case dom.ElementNode:
			ctx.Data = context.LocalName
			ctx.DataAtom = atom.Lookup([]byte(context.LocalName))
			ctx.Namespace = namespaceName(context.NamespaceURI)
		}
	}
	if od == nil {
		od = dom.NewDocument()
	}

	nodes, err := html.ParseFragmentWithOptions(strings.NewReader(input), ctx, config.parseOptions()...)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing html fragment in <%s>", ctx.Data)
	}
	var out []*dom.Node
	for _, n := range nodes {
		converted, err := convert(od, n)
		if err != nil {
			return nil, err
		}
		if converted != nil {
			out = append(out, converted)
		}
	}
	return out, nil
}
