package dom

import (
	"slices"

	"golang.org/x/net/html"
)

// Event types dispatched by the helpers on Document.
const (
	EventClick   = "click"
	EventInput   = "input"
	EventKeyDown = "keydown"
)

// Event is passed to listeners. Events bubble from their target up to the
// document node unless a listener calls StopPropagation.
type Event struct {
	// Type is the event type, like "click".
	Type string

	// Key is the key that was pressed, for keydown events. It uses the
	// browser's key names: "Enter", " ", "Escape".
	Key string

	// Target is the element the event was dispatched to.
	Target *Element

	// CurrentTarget is the element whose listener is running.
	CurrentTarget *Element

	stopped          bool
	defaultPrevented bool
}

// StopPropagation prevents the event from reaching listeners on ancestors of
// the current target.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

type listener struct {
	eventType string
	fn        func(*Event)
}

// AddEventListener registers fn to be called for events of the given type
// dispatched to e or bubbling through it. The returned function removes the
// listener; calling it more than once is harmless.
func (e *Element) AddEventListener(eventType string, fn func(*Event)) func() {
	l := &listener{eventType: eventType, fn: fn}
	node := e.node
	e.doc.listeners[node] = append(e.doc.listeners[node], l)
	return func() {
		remaining := slices.DeleteFunc(e.doc.listeners[node], func(candidate *listener) bool {
			return candidate == l
		})
		if len(remaining) == 0 {
			delete(e.doc.listeners, node)
			return
		}
		e.doc.listeners[node] = remaining
	}
}

// Dispatch delivers ev to target and then to each of its ancestors. Events
// dispatched to elements that are no longer part of the document are
// dropped. It returns false if a listener called PreventDefault.
func (d *Document) Dispatch(target *Element, ev *Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if target == nil || !d.connected(target.node) {
		return true
	}
	ev.Target = target

	var path []*html.Node
	for cur := target.node; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}
	for _, n := range path {
		// copy so listeners can add or remove listeners safely
		listeners := slices.Clone(d.listeners[n])
		if len(listeners) == 0 {
			continue
		}
		ev.CurrentTarget = d.wrap(n)
		for _, l := range listeners {
			if l.eventType != ev.Type {
				continue
			}
			l.fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	return !ev.defaultPrevented
}

// Click dispatches a click event to el.
func (d *Document) Click(el *Element) {
	d.Dispatch(el, &Event{Type: EventClick})
}

// Input sets el's value and dispatches an input event to it, the way typing
// into a form control does.
func (d *Document) Input(el *Element, value string) {
	if el == nil {
		return
	}
	d.Run(func() {
		el.SetValue(value)
	})
	d.Dispatch(el, &Event{Type: EventInput})
}

// KeyDown dispatches a keydown event for key to el.
func (d *Document) KeyDown(el *Element, key string) bool {
	return d.Dispatch(el, &Event{Type: EventKeyDown, Key: key})
}
