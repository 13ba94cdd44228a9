package dom

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// EventTarget is https://dom.spec.whatwg.org/#interface-eventtarget
type EventTarget interface {
	AddEventListener(eventType string, l *Listener, opts ...ListenerOptions)
	RemoveEventListener(eventType string, l *Listener, opts ...ListenerOptions)
	DispatchEvent(e *Event) bool
}

// Listener wraps an event callback. Listeners are identified by pointer, so
// keep the *Listener around to remove it later.
type Listener struct {
	fn func(e *Event)
}

func NewListener(fn func(e *Event)) *Listener {
	return &Listener{fn: fn}
}

func (l *Listener) HandleEvent(e *Event) {
	l.fn(e)
}

// ListenerOptions is https://dom.spec.whatwg.org/#dictdef-addeventlisteneroptions
type ListenerOptions struct {
	Capture, Once, Passive bool
}

type registration struct {
	listener *Listener
	opts     ListenerOptions
	removed  bool
}

// Target holds the event listener list of an event target. Embed it to make
// a type an EventTarget; the embedding type should override DispatchEvent so
// that events report it as their target.
type Target struct {
	mu        sync.Mutex
	listeners map[string][]*registration
}

func optionsOf(opts []ListenerOptions) ListenerOptions {
	if len(opts) == 0 {
		return ListenerOptions{}
	}
	return opts[0]
}

// AddEventListener is https://dom.spec.whatwg.org/#dom-eventtarget-addeventlistener
func (t *Target) AddEventListener(eventType string, l *Listener, opts ...ListenerOptions) {
	if l == nil {
		return
	}
	o := optionsOf(opts)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listeners == nil {
		t.listeners = map[string][]*registration{}
	}
	for _, r := range t.listeners[eventType] {
		if r.listener == l && r.opts.Capture == o.Capture {
			return
		}
	}
	t.listeners[eventType] = append(t.listeners[eventType], &registration{listener: l, opts: o})
}

// RemoveEventListener is https://dom.spec.whatwg.org/#dom-eventtarget-removeeventlistener
func (t *Target) RemoveEventListener(eventType string, l *Listener, opts ...ListenerOptions) {
	capture := optionsOf(opts).Capture

	t.mu.Lock()
	defer t.mu.Unlock()
	list := t.listeners[eventType]
	for i, r := range list {
		if r.listener == l && r.opts.Capture == capture {
			r.removed = true
			t.listeners[eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (t *Target) DispatchEvent(e *Event) bool {
	return dispatch(t, e)
}

func (t *Target) listenerList() *Target {
	return t
}

func (t *Target) snapshot(eventType string) []*registration {
	t.mu.Lock()
	defer t.mu.Unlock()
	list := make([]*registration, len(t.listeners[eventType]))
	copy(list, t.listeners[eventType])
	return list
}

type listenerHolder interface {
	listenerList() *Target
}

type eventParent interface {
	eventParent(e *Event) EventTarget
}

// dispatch is https://dom.spec.whatwg.org/#concept-event-dispatch without
// shadow-tree retargeting.
func dispatch(target EventTarget, e *Event) bool {
	if e.dispatching {
		logrus.WithField("method", "DispatchEvent").Debugf("%s is already being dispatched", e.Type)
		return false
	}
	e.dispatching = true
	e.target = target
	e.stopPropagation, e.stopImmediate = false, false

	path := []EventTarget{target}
	for t := target; ; {
		p, ok := t.(eventParent)
		if !ok {
			break
		}
		t = p.eventParent(e)
		if t == nil {
			break
		}
		path = append(path, t)
	}

	for i := len(path) - 1; i > 0 && !e.stopPropagation; i-- {
		invoke(path[i], e, CapturingPhase)
	}
	if !e.stopPropagation {
		invoke(path[0], e, AtTargetPhase)
	}
	if e.Bubbles {
		for i := 1; i < len(path) && !e.stopPropagation; i++ {
			invoke(path[i], e, BubblingPhase)
		}
	}

	e.eventPhase = NoneEventPhase
	e.currentTarget = nil
	e.dispatching = false
	return !e.defaultPrevented
}

// https://dom.spec.whatwg.org/#concept-event-listener-invoke
func invoke(t EventTarget, e *Event, phase EventPhase) {
	holder, ok := t.(listenerHolder)
	if !ok {
		return
	}
	target := holder.listenerList()
	e.currentTarget = t
	e.eventPhase = phase

	for _, r := range target.snapshot(e.Type) {
		if r.removed {
			continue
		}
		if phase == CapturingPhase && !r.opts.Capture {
			continue
		}
		if phase == BubblingPhase && r.opts.Capture {
			continue
		}
		if r.opts.Once {
			target.RemoveEventListener(e.Type, r.listener, r.opts)
		}
		e.inPassiveListener = r.opts.Passive
		r.listener.HandleEvent(e)
		e.inPassiveListener = false
		if e.stopImmediate {
			return
		}
	}
}
