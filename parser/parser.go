package parser

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/heathj/gquery/dom"
)

// Config controls parsing and serialization.
type Config struct {
	// Scripting selects the scripting flag of the HTML parser: with it on,
	// noscript contents are raw text.
	Scripting bool
}

func (c Config) parseOptions() []html.ParseOption {
	return []html.ParseOption{html.ParseOptionEnableScripting(c.Scripting)}
}

// Parser builds a dom document from an HTML byte stream.
type Parser struct {
	Document *dom.Node
	// Window, when set, becomes the document's browsing context before
	// parsing starts.
	Window *dom.Window

	input  io.Reader
	config Config
}

// NewParser returns a parser whose Document is created up front so callers
// can register listeners (DOMContentLoaded, readystatechange) before Start.
func NewParser(htmlIn io.Reader, config Config) *Parser {
	return &Parser{
		Document: dom.NewDocument(),
		input:    htmlIn,
		config:   config,
	}
}

// Start parses the whole input into p.Document. The document's ready state
// moves through loading, interactive and complete.
func (p *Parser) Start() (*dom.Node, error) {
	doc := p.Document
	if p.Window != nil {
		p.Window.SetDocument(doc)
	}
	doc.SetReadyState(dom.Loading)

	root, err := html.ParseWithOptions(p.input, p.config.parseOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "parsing html document")
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		n, err := convert(doc, c)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		if _, err := doc.AppendChild(n); err != nil {
			return nil, err
		}
	}
	logrus.WithField("method", "Start").Debugf("parsed document with %d children", len(doc.ChildNodes))

	doc.SetReadyState(dom.Interactive)
	doc.SetReadyState(dom.Complete)
	return doc, nil
}

// convert copies an x/net/html subtree into dom nodes owned by od.
func convert(od *dom.Node, n *html.Node) (*dom.Node, error) {
	var out *dom.Node
	switch n.Type {
	case html.ElementNode:
		out = dom.NewElement(od, n.Data, namespaceOf(n.Namespace))
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			out.Attributes.SetNamedItem(&dom.Attr{
				NamespaceURI: namespaceOf(a.Namespace),
				Prefix:       a.Namespace,
				LocalName:    a.Key,
				Name:         name,
				Value:        a.Val,
			})
		}
	case html.TextNode:
		out = dom.NewTextNode(od, n.Data)
	case html.CommentNode:
		out = dom.NewComment(od, n.Data)
	case html.DoctypeNode:
		var pub, sys string
		for _, a := range n.Attr {
			switch a.Key {
			case "public":
				pub = a.Val
			case "system":
				sys = a.Val
			}
		}
		return dom.NewDocTypeNode(od, n.Data, pub, sys), nil
	default:
		return nil, nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child, err := convert(od, c)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		if _, err := out.AppendChild(child); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func namespaceOf(ns string) dom.Namespace {
	switch ns {
	case "svg":
		return dom.Svgns
	case "math":
		return dom.Mathmlns
	case "xlink":
		return dom.Xlinkns
	case "xml":
		return dom.Xmlns
	case "xmlns":
		return dom.Xmlnsns
	}
	return dom.Htmlns
}

func namespaceName(ns dom.Namespace) string {
	switch ns {
	case dom.Svgns:
		return "svg"
	case dom.Mathmlns:
		return "math"
	}
	return ""
}
