package query

import (
	"github.com/heathj/gquery/dom"
)

// On registers l for eventType on every item.
func (c *Collection) On(eventType string, l *dom.Listener, opts ...dom.ListenerOptions) *Collection {
	for _, t := range c.items {
		t.AddEventListener(eventType, l, opts...)
	}
	return c
}

// Off removes l for eventType from every item.
func (c *Collection) Off(eventType string, l *dom.Listener, opts ...dom.ListenerOptions) *Collection {
	for _, t := range c.items {
		t.RemoveEventListener(eventType, l, opts...)
	}
	return c
}

// Trigger dispatches a new event of eventType at every item.
func (c *Collection) Trigger(eventType string, init ...dom.EventInit) *Collection {
	for _, t := range c.items {
		t.DispatchEvent(dom.NewEvent(eventType, init...))
	}
	return c
}

// Ready arranges for handler to run once per document in the collection,
// windows counting as their active document, after its DOM is ready. A loading document runs it on DOMContentLoaded;
// otherwise it is queued on the document's task queue. The handler never
// runs before Ready returns.
func (c *Collection) Ready(handler func()) *Collection {
	seen := map[*dom.Node]bool{}
	for _, t := range c.items {
		doc, ok := asReadyDocument(t)
		if !ok || seen[doc] {
			continue
		}
		seen[doc] = true
		if doc.ReadyState() == dom.Loading {
			doc.AddEventListener("DOMContentLoaded", dom.NewListener(func(*dom.Event) {
				handler()
			}), dom.ListenerOptions{Once: true})
			continue
		}
		doc.Tasks().Queue(handler)
	}
	return c
}
