package query

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/gquery/dom"
	"github.com/heathj/gquery/parser"
)

func TestOnOffTrigger(t *testing.T) {
	doc, q := fixture(t, `<button id=a></button><button id=b></button>`)
	w := dom.NewWindow()
	var got []dom.EventTarget
	l := dom.NewListener(func(e *dom.Event) {
		got = append(got, e.CurrentTarget())
	})

	buttons := mustQuery(t, q, "button")
	all := buttons.Concat(New(w))
	assert.Same(t, all, all.On("press", l))
	all.Trigger("press")
	assert.Equal(t, []dom.EventTarget{doc.GetElementByID("a"), doc.GetElementByID("b"), w}, got)

	got = nil
	all.Off("press", l)
	all.Trigger("press")
	assert.Empty(t, got)
}

func TestTriggerBubbles(t *testing.T) {
	_, q := fixture(t, `<div id=outer><span id=inner></span></div>`)
	var seen []string
	mustQuery(t, q, "#outer").On("ping", dom.NewListener(func(e *dom.Event) {
		seen = append(seen, e.Target().(*dom.Node).ID())
	}))

	mustQuery(t, q, "#inner").Trigger("ping")
	assert.Empty(t, seen)
	mustQuery(t, q, "#inner").Trigger("ping", dom.EventInit{Bubbles: true})
	assert.Equal(t, []string{"inner"}, seen)
}

func TestReadyAfterLoad(t *testing.T) {
	doc, _ := fixture(t, `<p></p>`)
	require.Equal(t, dom.Complete, doc.ReadyState())

	called := 0
	c := New(doc, doc.Body())
	assert.Same(t, c, c.Ready(func() { called++ }))
	assert.Equal(t, 0, called, "ready handlers never run synchronously")

	assert.Equal(t, 1, doc.Tasks().RunPending())
	assert.Equal(t, 1, called)
}

func TestReadyWhileLoading(t *testing.T) {
	w := dom.NewWindow()
	p := parser.NewParser(strings.NewReader(`<p id=x>ready</p>`), parser.Config{})
	p.Window = w

	var text string
	called := 0
	p.Document.SetReadyState(dom.Loading)
	New(p.Document).Ready(func() {
		called++
		text, _ = mustQuery(t, Bind(p.Document), "#x").Text()
	})
	assert.Equal(t, 0, called)

	_, err := p.Start()
	require.NoError(t, err)
	assert.Equal(t, 1, called)
	assert.Equal(t, "ready", text)
	assert.Equal(t, 0, w.Tasks().Len())

	// a second ready after loading goes through the window's event loop
	New(p.Document).Ready(func() { called++ })
	assert.Equal(t, 1, called)
	assert.Equal(t, 1, w.Tasks().Len())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Tasks().Run(ctx), context.DeadlineExceeded)
	assert.Equal(t, 2, called)
}

func TestReadyIgnoresNonDocuments(t *testing.T) {
	doc, q := fixture(t, `<p></p>`)
	mustQuery(t, q, "p").Concat(New(doc.CreateTextNode("x"), &customTarget{})).Ready(func() {
		t.Fatal("ready ran for a non-document")
	})
	assert.Equal(t, 0, doc.Tasks().RunPending())
}

func TestReadyThroughWindow(t *testing.T) {
	w := dom.NewWindow()
	called := 0
	New(w, w.Document(), dom.NewWindow()).Ready(func() { called++ })
	assert.Equal(t, 1, w.Tasks().Len(), "a window and its document are one document")
	assert.Equal(t, 1, w.Tasks().RunPending())
	assert.Equal(t, 1, called)
}
