package query

import (
	"regexp"

	"github.com/heathj/gquery/dom"
	"github.com/heathj/gquery/parser"
)

// markup matches strings that look like HTML rather than a selector.
var markup = regexp.MustCompile(`<[A-Za-z!/?][^<>]*>`)

// Of builds a collection from subject:
//
//   - nil yields an empty collection.
//   - A string containing a tag is parsed as HTML into the context's
//     document, or into a new document without a context.
//   - Any other string is a selector run against context; a nil context
//     yields an empty collection.
//   - Targets, node lists, slices of targets and collections are taken
//     as is, subject to the membership rules.
//
// Other values yield an empty collection.
func Of(subject interface{}, context dom.EventTarget) (*Collection, error) {
	switch s := subject.(type) {
	case nil:
		return New(), nil
	case string:
		if markup.MatchString(s) {
			var doc *dom.Node
			if n := contextNode(context); n != nil {
				doc = ownerDocument(n)
			}
			nodes, err := parser.ParseHTMLFragment(doc, s, parser.Config{})
			if err != nil {
				return nil, err
			}
			return FromNodes(nodes), nil
		}
		root := contextNode(context)
		if root == nil {
			return New(), nil
		}
		nodes, err := root.QuerySelectorAll(s)
		if err != nil {
			return nil, err
		}
		return FromNodes(nodes), nil
	case *Collection:
		if s == nil {
			return New(), nil
		}
		return New(s.items...), nil
	case dom.NodeList:
		return FromNodes(s), nil
	case []*dom.Node:
		return FromNodes(s), nil
	case []dom.EventTarget:
		return New(s...), nil
	case dom.EventTarget:
		return New(s), nil
	}
	return New(), nil
}

// contextNode resolves the node selectors are run against: documents,
// elements and fragments as is, a window through its document.
func contextNode(context dom.EventTarget) *dom.Node {
	switch ctx := context.(type) {
	case *dom.Window:
		if ctx != nil {
			return ctx.Document()
		}
	case *dom.Node:
		if n, ok := asParent(ctx); ok {
			return n
		}
	}
	return nil
}

// Func is the signature of a bound constructor.
type Func func(subject interface{}, context ...dom.EventTarget) (*Collection, error)

// Bind returns a constructor whose default context is document.
func Bind(document *dom.Node) Func {
	return func(subject interface{}, context ...dom.EventTarget) (*Collection, error) {
		if len(context) > 0 && isTarget(context[0]) {
			return Of(subject, context[0])
		}
		if document == nil {
			return Of(subject, nil)
		}
		return Of(subject, document)
	}
}
