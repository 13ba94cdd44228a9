package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/gquery/dom"
)

const formMarkup = `<form id=f><input id=i1 name=a data-foo-bar=1><input id=i2 name=b></form>`

func TestAttr(t *testing.T) {
	doc, q := fixture(t, formMarkup)
	inputs := mustQuery(t, q, "input")

	v, ok := inputs.Attr("name")
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = inputs.Attr("missing")
	assert.False(t, ok)
	_, ok = New().Attr("name")
	assert.False(t, ok)

	_, err := inputs.SetAttr("title", "t")
	require.NoError(t, err)
	title, ok := mustNode(t, doc, "#i2").GetAttribute("title")
	assert.True(t, ok)
	assert.Equal(t, "t", title)
	assert.True(t, inputs.HasAttr("title"))

	inputs.RemoveAttr("title", "name")
	assert.False(t, mustNode(t, doc, "#i2").HasAttribute("name"))
	assert.False(t, inputs.HasAttr("title"))

	_, err = inputs.ToggleAttr("disabled")
	require.NoError(t, err)
	assert.True(t, mustNode(t, doc, "#i1").HasAttribute("disabled"))
	_, err = inputs.ToggleAttr("disabled", true)
	require.NoError(t, err)
	assert.True(t, mustNode(t, doc, "#i2").HasAttribute("disabled"))
	_, err = inputs.ToggleAttr("disabled")
	require.NoError(t, err)
	assert.False(t, inputs.HasAttr("disabled"))

	_, err = inputs.SetAttr("bad name", "x")
	assert.True(t, dom.IsDOMException(err, dom.InvalidCharacterError))
	_, err = inputs.ToggleAttr("")
	assert.True(t, dom.IsDOMException(err, dom.InvalidCharacterError))
}

func TestAttrSkipsNonElements(t *testing.T) {
	doc, _ := fixture(t, formMarkup)
	w := dom.NewWindow()
	text := doc.CreateTextNode("x")
	c := New(w, doc, text, mustNode(t, doc, "#i2"))

	v, ok := c.Attr("name")
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, err := c.SetAttr("lang", "en")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
}

func TestClassRoundTrips(t *testing.T) {
	_, q := fixture(t, `<div id=x class="keep"></div><div id=y></div>`)
	divs := mustQuery(t, q, "div")

	_, err := divs.AddClass("x", "z")
	require.NoError(t, err)
	assert.True(t, divs.HasClass("x"))
	_, err = divs.RemoveClass("x")
	require.NoError(t, err)
	assert.False(t, divs.HasClass("x"))
	assert.True(t, divs.HasClass("keep"))

	for i := 0; i < 2; i++ {
		_, err = divs.ToggleClass("t")
		require.NoError(t, err)
	}
	assert.False(t, divs.HasClass("t"))

	for i := 0; i < 2; i++ {
		_, err = divs.ToggleClass("t", true)
		require.NoError(t, err)
		assert.True(t, divs.HasClass("t"))
	}
	_, err = divs.ToggleClass("t", false)
	require.NoError(t, err)
	assert.False(t, divs.HasClass("t"))

	last := divs.Last()
	assert.True(t, last.HasClass("z"))
	assert.False(t, last.HasClass("keep"))
	assert.False(t, New().HasClass("z"))
}

func TestClassValidationErrors(t *testing.T) {
	_, q := fixture(t, `<div></div>`)
	divs := mustQuery(t, q, "div")

	_, err := divs.AddClass("")
	assert.True(t, dom.IsDOMException(err, dom.SyntaxError))
	_, err = divs.RemoveClass("a b")
	assert.True(t, dom.IsDOMException(err, dom.InvalidCharacterError))
	_, err = divs.ToggleClass("a\tb", true)
	assert.True(t, dom.IsDOMException(err, dom.InvalidCharacterError))

	// validation only runs where the operation applies
	_, err = New(dom.NewWindow()).AddClass("")
	assert.NoError(t, err)
}

func TestGetterDefaults(t *testing.T) {
	doc, _ := fixture(t, `<p id=p></p>`)
	empty := New()

	_, ok := empty.Text()
	assert.False(t, ok)
	assert.Equal(t, "", empty.HTML())
	assert.Equal(t, "", empty.OuterHTML())
	assert.Equal(t, map[string]string{}, empty.Data())
	_, ok = empty.DataValue("x")
	assert.False(t, ok)

	windowOnly := New(dom.NewWindow(), doc)
	_, ok = windowOnly.Text()
	assert.False(t, ok)
	assert.Equal(t, "", windowOnly.HTML())

	p := New(mustNode(t, doc, "#p"))
	_, ok = p.Attr("missing")
	assert.False(t, ok)
	text, ok := p.Text()
	assert.True(t, ok)
	assert.Equal(t, "", text)
}

func TestTextAndHTML(t *testing.T) {
	doc, q := fixture(t, `<div id=a>one <b>two</b></div><div id=b>three</div>`)
	divs := mustQuery(t, q, "div")

	text, ok := divs.Text()
	assert.True(t, ok)
	assert.Equal(t, "one two", text)
	assert.Equal(t, "one <b>two</b>", divs.HTML())
	assert.Equal(t, `<div id="a">one <b>two</b></div>`, divs.OuterHTML())

	_, err := divs.SetHTML(`<i>x</i> &amp; y`)
	require.NoError(t, err)
	assert.Equal(t, `<i>x</i> &amp; y`, mustQuery(t, q, "#b").HTML())
	assert.Equal(t, 2, mustQuery(t, q, "i").Len())

	divs.SetText("<plain>")
	assert.Equal(t, "&lt;plain&gt;", divs.HTML())
	assert.Equal(t, 0, mustQuery(t, q, "i").Len())

	divs.Empty()
	assert.False(t, mustNode(t, doc, "#a").HasChildNodes())
}

func TestData(t *testing.T) {
	doc, q := fixture(t, formMarkup)
	inputs := mustQuery(t, q, "input")

	assert.Equal(t, map[string]string{"fooBar": "1"}, inputs.Data())
	v, ok := inputs.DataValue("foo-bar")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok = inputs.DataValue("fooBar")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, err := inputs.SetData("user-id", "7")
	require.NoError(t, err)
	i2 := mustNode(t, doc, "#i2")
	got, ok := i2.GetAttribute("data-user-id")
	assert.True(t, ok)
	assert.Equal(t, "7", got)

	_, err = inputs.ReplaceData(map[string]string{"b-key": "2", "a": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "bKey": "2"}, New(i2).Data())
	assert.Equal(t, map[string]string{"a": "1", "bKey": "2"}, inputs.Data())
	assert.False(t, mustNode(t, doc, "#i1").HasAttribute("data-foo-bar"))

	inputs.RemoveData("b-key")
	assert.Equal(t, map[string]string{"a": "1"}, New(i2).Data())
}

func TestCamelCase(t *testing.T) {
	for in, expected := range map[string]string{
		"foo":         "foo",
		"foo-bar":     "fooBar",
		"foo-bar-baz": "fooBarBaz",
		"fooBar":      "fooBar",
		"foo-1":       "foo-1",
		"-x":          "X",
	} {
		assert.Equal(t, expected, camelCase(in), in)
	}
}

func TestSelectorChecks(t *testing.T) {
	doc, q := fixture(t, `<p id=a class=x></p><p id=b></p>`)
	c := New(doc, mustNode(t, doc, "#a"), mustNode(t, doc, "#b"))

	ok, err := c.Is(".x")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Is("div")
	require.NoError(t, err)
	assert.False(t, ok)

	matching, err := c.Matching("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(matching))

	not, err := c.Not(".x")
	require.NoError(t, err)
	assert.Equal(t, []string{"#document", "b"}, ids(not))

	_, err = c.Is("p[")
	assert.True(t, dom.IsDOMException(err, dom.SyntaxError))
	_, err = New().Matching("::nope")
	assert.True(t, dom.IsDOMException(err, dom.SyntaxError))
	_, err = mustQuery(t, q, "p").Not("")
	assert.True(t, dom.IsDOMException(err, dom.SyntaxError))
}
