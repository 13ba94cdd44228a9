package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/heathj/gquery/dom"
	"github.com/heathj/gquery/parser"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixture parses markup into a fresh document and returns it together with
// a constructor bound to it.
func fixture(t *testing.T, markup string) (*dom.Node, Func) {
	t.Helper()
	doc, err := parser.NewParser(strings.NewReader(markup), parser.Config{}).Start()
	require.NoError(t, err)
	return doc, Bind(doc)
}

func mustQuery(t *testing.T, q Func, subject interface{}, context ...dom.EventTarget) *Collection {
	t.Helper()
	c, err := q(subject, context...)
	require.NoError(t, err)
	return c
}

func mustNode(t *testing.T, doc *dom.Node, selector string) *dom.Node {
	t.Helper()
	n, err := doc.QuerySelector(selector)
	require.NoError(t, err)
	require.NotNil(t, n, selector)
	return n
}

// ids lists the id attribute, or the local name when there is none, of every
// element in c. Other items show up as their node name or type.
func ids(c *Collection) []string {
	out := []string{}
	c.Each(func(t dom.EventTarget, _ int) {
		n, ok := t.(*dom.Node)
		switch {
		case !ok:
			out = append(out, "window")
		case n.NodeType != dom.ElementNode:
			out = append(out, n.NodeName)
		case n.ID() != "":
			out = append(out, n.ID())
		default:
			out = append(out, n.LocalName)
		}
	})
	return out
}
