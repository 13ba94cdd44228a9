package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventPath builds window > document > html > body > div and returns the
// window and the div.
func eventPath(t *testing.T) (*Window, *Node) {
	w := NewWindow()
	doc := w.Document()
	div := mustElement(t, doc, "div")
	mustAppend(t, doc.Body(), div)
	return w, div
}

func recorder(log *[]string, name string) *Listener {
	return NewListener(func(e *Event) {
		*log = append(*log, name)
	})
}

func TestDispatchPhases(t *testing.T) {
	w, div := eventPath(t)
	doc := w.Document()
	body := doc.Body()

	var log []string
	w.AddEventListener("click", recorder(&log, "window capture"), ListenerOptions{Capture: true})
	w.AddEventListener("click", recorder(&log, "window bubble"))
	doc.AddEventListener("click", recorder(&log, "document capture"), ListenerOptions{Capture: true})
	body.AddEventListener("click", recorder(&log, "body bubble"))
	div.AddEventListener("click", recorder(&log, "target"))
	div.AddEventListener("click", recorder(&log, "target capture"), ListenerOptions{Capture: true})

	assert.True(t, div.DispatchEvent(NewEvent("click", EventInit{Bubbles: true})))
	assert.Equal(t, []string{
		"window capture",
		"document capture",
		"target",
		"target capture",
		"body bubble",
		"window bubble",
	}, log)

	log = nil
	div.DispatchEvent(NewEvent("click"))
	assert.Equal(t, []string{"window capture", "document capture", "target", "target capture"}, log)
}

func TestEventTargetAndPhase(t *testing.T) {
	_, div := eventPath(t)
	body := div.ParentNode

	var target, current EventTarget
	var phase EventPhase
	body.AddEventListener("ping", NewListener(func(e *Event) {
		target, current, phase = e.Target(), e.CurrentTarget(), e.EventPhase()
	}))
	e := NewEvent("ping", EventInit{Bubbles: true})
	div.DispatchEvent(e)

	assert.Equal(t, EventTarget(div), target)
	assert.Equal(t, EventTarget(body), current)
	assert.Equal(t, BubblingPhase, phase)
	assert.Equal(t, NoneEventPhase, e.EventPhase())
	assert.Nil(t, e.CurrentTarget())
}

func TestListenerRegistration(t *testing.T) {
	_, div := eventPath(t)
	count := 0
	l := NewListener(func(*Event) { count++ })

	div.AddEventListener("x", l)
	div.AddEventListener("x", l)
	div.DispatchEvent(NewEvent("x"))
	assert.Equal(t, 1, count)

	div.AddEventListener("x", l, ListenerOptions{Capture: true})
	div.DispatchEvent(NewEvent("x"))
	assert.Equal(t, 3, count)

	div.RemoveEventListener("x", l)
	div.RemoveEventListener("x", l, ListenerOptions{Capture: true})
	div.DispatchEvent(NewEvent("x"))
	assert.Equal(t, 3, count)

	div.AddEventListener("x", nil)
	div.DispatchEvent(NewEvent("x"))
}

func TestOnceAndRemovalDuringDispatch(t *testing.T) {
	_, div := eventPath(t)
	var log []string
	second := recorder(&log, "second")
	div.AddEventListener("x", NewListener(func(*Event) {
		log = append(log, "first")
		div.RemoveEventListener("x", second)
	}), ListenerOptions{Once: true})
	div.AddEventListener("x", second)

	div.DispatchEvent(NewEvent("x"))
	div.DispatchEvent(NewEvent("x"))
	assert.Equal(t, []string{"first"}, log)
}

func TestStopPropagation(t *testing.T) {
	_, div := eventPath(t)
	body := div.ParentNode
	var log []string
	div.AddEventListener("x", NewListener(func(e *Event) {
		log = append(log, "a")
		e.StopPropagation()
	}))
	div.AddEventListener("x", recorder(&log, "b"))
	body.AddEventListener("x", recorder(&log, "body"))
	div.DispatchEvent(NewEvent("x", EventInit{Bubbles: true}))
	assert.Equal(t, []string{"a", "b"}, log)

	log = nil
	other := mustElement(t, div.OwnerDocument, "span")
	other.AddEventListener("y", NewListener(func(e *Event) {
		log = append(log, "a")
		e.StopImmediatePropagation()
	}))
	other.AddEventListener("y", recorder(&log, "b"))
	other.DispatchEvent(NewEvent("y"))
	assert.Equal(t, []string{"a"}, log)
}

func TestPreventDefault(t *testing.T) {
	_, div := eventPath(t)
	div.AddEventListener("x", NewListener(func(e *Event) { e.PreventDefault() }))
	assert.False(t, div.DispatchEvent(NewEvent("x", EventInit{Cancelable: true})))
	assert.True(t, div.DispatchEvent(NewEvent("x")))

	span := mustElement(t, div.OwnerDocument, "span")
	span.AddEventListener("x", NewListener(func(e *Event) { e.PreventDefault() }), ListenerOptions{Passive: true})
	assert.True(t, span.DispatchEvent(NewEvent("x", EventInit{Cancelable: true})))
}

func TestReadyStateEvents(t *testing.T) {
	w := NewWindow()
	doc := NewDocument()
	w.SetDocument(doc)
	assert.Equal(t, w, doc.DefaultView)

	var log []string
	doc.AddEventListener("readystatechange", NewListener(func(*Event) {
		log = append(log, "readystatechange "+string(doc.ReadyState()))
	}))
	doc.AddEventListener("DOMContentLoaded", recorder(&log, "DOMContentLoaded"))
	w.AddEventListener("DOMContentLoaded", recorder(&log, "window DOMContentLoaded"))
	w.AddEventListener("load", recorder(&log, "load"))

	doc.SetReadyState(Loading)
	doc.SetReadyState(Loading)
	doc.SetReadyState(Interactive)
	doc.SetReadyState(Complete)
	require.Equal(t, Complete, doc.ReadyState())
	assert.Equal(t, []string{
		"readystatechange loading",
		"readystatechange interactive",
		"DOMContentLoaded",
		"window DOMContentLoaded",
		"readystatechange complete",
		"load",
	}, log)
}
