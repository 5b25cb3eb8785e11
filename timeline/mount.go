package timeline

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"

	"impractical.co/sesqui"
	"impractical.co/sesqui/dom"
)

// ErrTimelineMissing is returned when freshly written timeline markup has no
// root element, which happens when a custom Site's template doesn't produce
// one.
var ErrTimelineMissing = errors.New("rendered markup has no timeline root")

// Timeline is a timeline mounted into a document. Its index, controller, and
// listeners live until Close is called or the context passed to Mount is
// done.
type Timeline struct {
	doc        *dom.Document
	root       *dom.Element
	index      *Index
	controller *Controller
	dataset    Dataset

	removers  []func()
	closeOnce sync.Once

	mu        sync.Mutex
	stopAfter func() bool
}

// Mount renders the timeline from src into the first element matching
// selector and wires up its tabs and search box.
//
// If nothing matches selector, Mount does nothing and returns nil. If the
// dataset can't be loaded or isn't valid, an error message is written into
// the container, the error is logged, and Mount returns nil. Errors never
// reach the caller.
//
// Mount must not be called from inside doc.Run or an event listener.
func Mount(ctx context.Context, doc *dom.Document, selector string, src Source, opts ...Option) *Timeline {
	o := newOptions(opts...)
	log := sesqui.Logger(ctx).With("selector", selector, "source", src.String())

	var container *dom.Element
	doc.Run(func() {
		container = doc.Query(selector)
	})
	if container == nil {
		log.DebugContext(ctx, "timeline container not found")
		return nil
	}

	fail := func(msg string, err error) *Timeline {
		log.ErrorContext(ctx, msg, "error", err)
		doc.Run(func() {
			if !container.Connected() {
				return
			}
			if err := container.SetInnerHTML(ErrorMarkup); err != nil {
				log.ErrorContext(ctx, "error writing timeline error message", "error", err)
			}
		})
		return nil
	}

	dataset, err := o.loader.Load(ctx, src)
	if err != nil {
		return fail("error loading timeline data", err)
	}
	if err := dataset.Validate(); err != nil {
		return fail("invalid timeline data", err)
	}

	markup, err := o.site.Fragment(ctx, o.newID(), dataset)
	if err != nil {
		return fail("error rendering timeline", err)
	}

	var index *Index
	if dataset.SearchEnabled() {
		index, err = Build(ctx, dataset.Groups)
		if err != nil {
			return fail("error building timeline search index", err)
		}
	}

	t := &Timeline{
		doc:     doc,
		index:   index,
		dataset: dataset,
	}
	doc.Run(func() {
		err = t.attach(ctx, container, markup, o)
	})
	if err != nil {
		if index != nil {
			_ = index.Close()
		}
		return fail("error mounting timeline", err)
	}
	stop := context.AfterFunc(ctx, t.Close)
	t.mu.Lock()
	t.stopAfter = stop
	t.mu.Unlock()
	log.DebugContext(ctx, "mounted timeline", "groups", len(dataset.Groups), "search", dataset.SearchEnabled())
	return t
}

// must run inside doc.Run
func (t *Timeline) attach(ctx context.Context, container *dom.Element, markup template.HTML, o options) error {
	if !container.Connected() {
		return fmt.Errorf("container: %w", dom.ErrNotAttached)
	}
	if err := container.SetInnerHTML(string(markup)); err != nil {
		return err
	}
	t.root = container.Query(selectorRoot)
	if t.root == nil {
		return ErrTimelineMissing
	}

	var searcher Searcher
	if t.index != nil {
		searcher = t.index
	}
	format := t.dataset.DescriptionFormat
	render := func(ctx context.Context, records []Record) (template.HTML, error) {
		return o.site.Results(ctx, format, records)
	}
	t.controller = NewController(ctx, newDOMView(t.doc, t.root), t.dataset.Years(), searcher, render,
		WithClock(o.clock), WithDebounce(o.debounce), WithMinQueryLength(o.minQueryLength))

	for _, tab := range t.root.QueryAll(selectorTabs) {
		key := tab.Data("decade")
		t.listen(tab, dom.EventClick, func(*dom.Event) {
			t.controller.OnTabSelect(key)
		})
	}
	if input := t.root.Query(selectorInput); input != nil {
		t.listen(input, dom.EventInput, func(ev *dom.Event) {
			t.controller.OnQueryChanged(ev.Target.Value())
		})
		t.listen(input, dom.EventKeyDown, func(ev *dom.Event) {
			if ev.Key != "Escape" {
				return
			}
			ev.PreventDefault()
			t.controller.OnClear()
		})
	}
	if btn := t.root.Query(selectorClear); btn != nil {
		t.listen(btn, dom.EventClick, func(*dom.Event) {
			t.controller.OnClear()
		})
	}
	return nil
}

func (t *Timeline) listen(el *dom.Element, eventType string, fn func(*dom.Event)) {
	t.removers = append(t.removers, el.AddEventListener(eventType, fn))
}

// Controller returns the timeline's controller.
func (t *Timeline) Controller() *Controller {
	return t.controller
}

// Index returns the timeline's search index, or nil if search is disabled.
func (t *Timeline) Index() *Index {
	return t.index
}

// Dataset returns the dataset the timeline was rendered from.
func (t *Timeline) Dataset() Dataset {
	return t.dataset
}

// Close cancels any waiting search, removes the timeline's listeners, and
// releases its index. The markup stays in the document. Close must not be
// called from inside doc.Run or an event listener.
func (t *Timeline) Close() {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		stop := t.stopAfter
		t.mu.Unlock()
		if stop != nil {
			stop()
		}
		t.controller.Close()
		t.doc.Run(func() {
			for _, remove := range t.removers {
				remove()
			}
			t.removers = nil
		})
		if t.index != nil {
			_ = t.index.Close()
		}
	})
}
