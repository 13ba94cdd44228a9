package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heathj/gquery/dom"
)

const listMarkup = `<ul><li id=a></li><li id=b></li><li id=c></li><li id=d></li></ul>`

func listItems(t *testing.T) (*dom.Node, []dom.EventTarget) {
	doc, _ := fixture(t, listMarkup)
	var items []dom.EventTarget
	for _, id := range []string{"a", "b", "c", "d"} {
		items = append(items, doc.GetElementByID(id))
	}
	return doc, items
}

func TestUniqueness(t *testing.T) {
	_, items := listItems(t)
	a, b := items[0], items[1]

	c := New(a, a, b)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Push(a, b, a))
	assert.Equal(t, 3, c.Unshift(items[2], b))
	assert.Equal(t, []string{"c", "a", "b"}, ids(c))

	spliced := c.Splice(1, 0, a, items[3], items[3])
	assert.Equal(t, 0, spliced.Len())
	assert.Equal(t, []string{"c", "d", "a", "b"}, ids(c))

	merged := c.Concat(New(b, a), New(items[3]))
	assert.Equal(t, []string{"c", "d", "a", "b"}, ids(merged))
}

type customTarget struct{ dom.Target }

func TestPredicate(t *testing.T) {
	_, items := listItems(t)
	c := New(items[0])

	var typedNil *dom.Node
	var nilWindow *dom.Window
	assert.Equal(t, 1, c.Push(nil, typedNil, nilWindow))
	assert.Equal(t, 1, c.Unshift(nil))
	assert.Equal(t, 1, c.Len())

	w := dom.NewWindow()
	assert.Equal(t, 2, c.Push(w))
	assert.Equal(t, 3, c.Push(&customTarget{}))

	for _, subject := range []interface{}{42, 3.14, true, struct{}{}, []int{1}} {
		got, err := Of(subject, nil)
		assert.NoError(t, err)
		assert.Equal(t, 0, got.Len(), "%T", subject)
	}
}

func TestChainability(t *testing.T) {
	_, items := listItems(t)
	c := New(items...)
	other := New(items[3])

	chained := c.Filter(func(t dom.EventTarget, i int) bool { return i%2 == 0 }).Slice(0, 1).Concat(other)
	assert.IsType(t, &Collection{}, chained)
	assert.Equal(t, 2, chained.Len())
	assert.Equal(t, []string{"a", "d"}, ids(chained))
	assert.Equal(t, items[3], chained.At(-1))
	assert.Nil(t, chained.At(2))
	assert.Equal(t, 4, c.Len())
}

func TestSequenceOperations(t *testing.T) {
	_, items := listItems(t)
	a, b, cc, d := items[0], items[1], items[2], items[3]

	c := New(items...)
	assert.Equal(t, []string{"b", "c"}, ids(c.Slice(1, -1)))
	assert.Equal(t, []string{"c", "d"}, ids(c.Slice(-2, 4)))
	assert.Equal(t, []string{}, ids(c.Slice(3, 1)))
	assert.Equal(t, []string{"a"}, ids(c.First()))
	assert.Equal(t, []string{"d"}, ids(c.Last()))
	assert.Equal(t, 0, New().Last().Len())

	assert.Equal(t, 2, c.IndexOf(cc))
	assert.Equal(t, -1, New(a).IndexOf(b))
	assert.True(t, c.Includes(d))
	assert.False(t, c.Includes(nil))

	assert.Same(t, c, c.Reverse())
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(c))

	removed := c.Splice(1, 2, a)
	assert.Equal(t, []string{"c", "b"}, ids(removed))
	assert.Equal(t, []string{"d", "a"}, ids(c))

	assert.Equal(t, a, c.Pop())
	assert.Equal(t, d, c.Shift())
	assert.Nil(t, c.Pop())
	assert.Nil(t, c.Shift())

	// popped items can be pushed again
	assert.Equal(t, 1, c.Push(a))

	mapped := New(items...).Map(func(t dom.EventTarget, _ int) dom.EventTarget {
		return t.(*dom.Node).ParentNode
	})
	assert.Equal(t, []string{"ul"}, ids(mapped))
}

func TestItemsIsACopy(t *testing.T) {
	_, items := listItems(t)
	c := New(items...)
	got := c.Items()
	got[0] = nil
	assert.Equal(t, items[0], c.At(0))
	assert.Len(t, c.Nodes(), 4)
}

func TestZeroValueCollection(t *testing.T) {
	_, items := listItems(t)
	var c Collection
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, c.Push(items[0]))
	assert.Equal(t, 1, c.Push(items[0]))
}
