package dom

import "time"

type EventPhase uint

const (
	NoneEventPhase EventPhase = iota
	CapturingPhase
	AtTargetPhase
	BubblingPhase
)

// EventInit is https://dom.spec.whatwg.org/#dictdef-eventinit
type EventInit struct {
	Bubbles, Cancelable, Composed bool
}

// https://dom.spec.whatwg.org/#interface-event
type Event struct {
	Type                          string
	Bubbles, Cancelable, Composed bool
	TimeStamp                     time.Time

	target, currentTarget EventTarget
	eventPhase            EventPhase
	stopPropagation       bool
	stopImmediate         bool
	defaultPrevented      bool
	inPassiveListener     bool
	dispatching           bool
}

func NewEvent(eventType string, init ...EventInit) *Event {
	e := &Event{Type: eventType, TimeStamp: time.Now()}
	if len(init) > 0 {
		e.Bubbles = init[0].Bubbles
		e.Cancelable = init[0].Cancelable
		e.Composed = init[0].Composed
	}
	return e
}

func (e *Event) Target() EventTarget        { return e.target }
func (e *Event) CurrentTarget() EventTarget { return e.currentTarget }
func (e *Event) EventPhase() EventPhase     { return e.eventPhase }
func (e *Event) DefaultPrevented() bool     { return e.defaultPrevented }
func (e *Event) StopPropagation()           { e.stopPropagation = true }

func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediate = true
}

// PreventDefault is https://dom.spec.whatwg.org/#dom-event-preventdefault
func (e *Event) PreventDefault() {
	if e.Cancelable && !e.inPassiveListener {
		e.defaultPrevented = true
	}
}
