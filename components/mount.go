package components

import (
	"context"
	"fmt"
	"sync"

	"impractical.co/sesqui"
	"impractical.co/sesqui/dom"
)

// Mounted is a component written into a document. Close removes the event
// listeners it added.
type Mounted struct {
	doc       *dom.Document
	container *dom.Element
	modals    []*modalBinding

	closeOnce sync.Once
	removers  []func()
}

// Mount renders c with the DefaultSite into the first element matching
// selector. See Site.Mount.
func Mount(ctx context.Context, doc *dom.Document, selector string, c Component) *Mounted {
	return DefaultSite().Mount(ctx, doc, selector, c)
}

// Mount renders c into the first element matching selector, replacing its
// contents, and wires up any modals in the markup.
//
// If nothing matches selector, Mount does nothing and returns nil. Render
// errors are logged and leave the container untouched.
//
// Mount must not be called from inside doc.Run or an event listener.
func (s *Site) Mount(ctx context.Context, doc *dom.Document, selector string, c Component) *Mounted {
	log := sesqui.Logger(ctx).With("selector", selector, "component", fmt.Sprintf("%T", c))

	var container *dom.Element
	doc.Run(func() {
		container = doc.Query(selector)
	})
	if container == nil {
		log.DebugContext(ctx, "component container not found")
		return nil
	}

	markup, err := s.Render(ctx, c)
	if err != nil {
		log.ErrorContext(ctx, "error rendering component", "error", err)
		return nil
	}

	m := &Mounted{doc: doc, container: container}
	doc.Run(func() {
		err = m.attach(string(markup))
	})
	if err != nil {
		log.ErrorContext(ctx, "error mounting component", "error", err)
		return nil
	}
	return m
}

// must be called inside doc.Run
func (m *Mounted) attach(markup string) error {
	if !m.container.Connected() {
		return dom.ErrNotAttached
	}
	err := m.container.SetInnerHTML(markup)
	if err != nil {
		return err
	}
	for _, el := range m.container.QueryAll(".modal-container") {
		binding := bindModal(m.doc, el)
		if binding == nil {
			continue
		}
		m.modals = append(m.modals, binding)
		m.removers = append(m.removers, binding.removers...)
	}
	return nil
}

// Container returns the element the component was written into.
func (m *Mounted) Container() *dom.Element {
	return m.container
}

// Modals returns the number of modals that were wired up.
func (m *Mounted) Modals() int {
	return len(m.modals)
}

// Close removes every listener added by Mount. It must not be called from
// inside doc.Run or an event listener.
func (m *Mounted) Close() {
	m.closeOnce.Do(func() {
		m.doc.Run(func() {
			for _, remove := range m.removers {
				remove()
			}
		})
	})
}

type modalBinding struct {
	doc      *dom.Document
	trigger  *dom.Element
	overlay  *dom.Element
	closeBtn *dom.Element
	removers []func()
}

// bindModal wires one .modal-container. It returns nil when the container
// has no trigger or overlay.
func bindModal(doc *dom.Document, container *dom.Element) *modalBinding {
	b := &modalBinding{
		doc:      doc,
		trigger:  container.Query(".modal-trigger-image"),
		overlay:  container.Query(".modal-overlay"),
		closeBtn: container.Query(".modal-close"),
	}
	if b.trigger == nil || b.overlay == nil {
		return nil
	}

	b.listen(b.trigger, dom.EventClick, func(*dom.Event) {
		b.open()
	})
	b.listen(b.trigger, dom.EventKeyDown, func(ev *dom.Event) {
		if ev.Key == "Enter" || ev.Key == " " {
			ev.PreventDefault()
			b.open()
		}
	})
	if b.closeBtn != nil {
		b.listen(b.closeBtn, dom.EventClick, func(*dom.Event) {
			b.close()
		})
	}
	b.listen(b.overlay, dom.EventClick, func(ev *dom.Event) {
		if ev.Target.Is(b.overlay) {
			b.close()
		}
	})
	if dialog := container.Query(".modal-dialog"); dialog != nil {
		b.listen(dialog, dom.EventClick, func(ev *dom.Event) {
			ev.StopPropagation()
		})
	}
	b.listen(doc.Root(), dom.EventKeyDown, func(ev *dom.Event) {
		if ev.Key == "Escape" && b.overlay.Connected() && b.isOpen() {
			b.close()
		}
	})
	return b
}

func (b *modalBinding) listen(el *dom.Element, eventType string, fn func(*dom.Event)) {
	b.removers = append(b.removers, el.AddEventListener(eventType, fn))
}

func (b *modalBinding) isOpen() bool {
	return b.overlay.HasClass("modal-active")
}

func (b *modalBinding) open() {
	b.overlay.AddClass("modal-active")
	b.overlay.SetAttr("aria-hidden", "false")
	if body := b.doc.Body(); body != nil {
		body.SetStyle("overflow", "hidden")
	}
	if b.closeBtn != nil {
		b.closeBtn.Focus()
	}
}

func (b *modalBinding) close() {
	b.overlay.RemoveClass("modal-active")
	b.overlay.SetAttr("aria-hidden", "true")
	if body := b.doc.Body(); body != nil {
		body.SetStyle("overflow", "")
	}
	b.trigger.Focus()
}
