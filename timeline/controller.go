package timeline

import (
	"context"
	"html/template"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"impractical.co/sesqui"
	"impractical.co/sesqui/internal/clock"
)

// ResultsKey is the tab and panel key of the search results, in place of a
// group year.
const ResultsKey = "all"

const (
	// DefaultDebounce is how long the query has to stay unchanged before a
	// search runs.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultMinQueryLength is the shortest trimmed query, in runes, that
	// runs a search.
	DefaultMinQueryLength = 2
)

// View is what a Controller drives. Implementations bind it to actual
// markup; every method except Do is only called from inside Do or from an
// input handler.
type View interface {
	// Do runs fn on the view's event loop. Controllers use it for work
	// that starts outside an input handler, like a debounce timer firing.
	Do(fn func())

	// Attached reports whether the view is still part of the page.
	Attached() bool

	// Activate marks the tab and panel keyed by key as the active ones and
	// every other tab and panel as inactive.
	Activate(key string)

	// RevealResults fills the results panel with markup and shows the
	// results tab, labeled with count.
	RevealResults(markup template.HTML, count int)

	// HideResults hides the results tab and panel.
	HideResults()

	// SetClearVisible shows or hides the clear button.
	SetClearVisible(visible bool)

	// SetQuery replaces the text in the search box.
	SetQuery(text string)

	// FocusQuery moves focus to the search box.
	FocusQuery()
}

// Searcher looks up the records matching a query.
type Searcher interface {
	Query(ctx context.Context, q string) ([]Record, error)
}

// ResultsRenderer renders records into the results panel's markup.
type ResultsRenderer func(ctx context.Context, records []Record) (template.HTML, error)

// State is a snapshot of a Controller's view state.
type State struct {
	// Active is the key of the visible panel: a group year or ResultsKey.
	Active string

	// Query is the current text of the search box.
	Query string

	// Results are the records from the last completed search.
	Results []Record

	// ResultsVisible reports whether the results tab is shown.
	ResultsVisible bool

	// Searches counts completed searches.
	Searches int
}

// Controller owns the interactive state of one mounted timeline: which tab
// is active, what's in the search box, and the results of the last search.
// Input layers call OnTabSelect, OnQueryChanged, and OnClear; the Controller
// updates its View in response.
type Controller struct {
	ctx      context.Context
	view     View
	keys     []string
	searcher Searcher
	render   ResultsRenderer

	clock          clock.Clock
	debounce       time.Duration
	minQueryLength int

	mu      sync.Mutex
	state   State
	pending clock.Timer
	gen     uint64
	closed  bool
}

// NewController returns a Controller for a timeline whose groups are keyed
// by years, in display order. A nil searcher disables search. The view is
// expected to already show the first group.
func NewController(ctx context.Context, view View, years []string, searcher Searcher, render ResultsRenderer, opts ...Option) *Controller {
	o := newOptions(opts...)
	c := &Controller{
		ctx:            ctx,
		view:           view,
		keys:           slices.Clone(years),
		searcher:       searcher,
		render:         render,
		clock:          o.clock,
		debounce:       o.debounce,
		minQueryLength: o.minQueryLength,
	}
	c.state.Active = c.firstKey()
	return c
}

func (c *Controller) firstKey() string {
	if len(c.keys) < 1 {
		return ""
	}
	return c.keys[0]
}

// State returns a snapshot of the controller's state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.state
	state.Results = slices.Clone(c.state.Results)
	return state
}

// OnTabSelect handles a click on the tab keyed by key. Selecting a group
// shows it and hides the results tab, keeping the query. Selecting the
// results tab only does something while it's visible.
func (c *Controller) OnTabSelect(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if key == ResultsKey {
		if !c.state.ResultsVisible {
			return
		}
		c.view.Activate(ResultsKey)
		c.state.Active = ResultsKey
		return
	}
	if !slices.Contains(c.keys, key) {
		return
	}
	c.showGroup(key)
}

// OnQueryChanged handles a change to the search box. The clear button
// updates right away; the search itself runs once the query has been quiet
// for the debounce period, replacing any search still waiting.
func (c *Controller) OnQueryChanged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.searcher == nil {
		return
	}
	c.state.Query = text
	c.view.SetClearVisible(text != "")
	c.schedule()
}

// OnClear handles the clear button: the query is emptied, any waiting
// search is cancelled, the first group is shown, and the search box gets
// focus back.
func (c *Controller) OnClear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.searcher == nil {
		return
	}
	c.cancel()
	c.state.Query = ""
	c.view.SetQuery("")
	c.view.SetClearVisible(false)
	c.showGroup(c.firstKey())
	c.view.FocusQuery()
}

// Close cancels any waiting search. After Close, the Controller ignores
// input and never touches its View again.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancel()
}

// must hold c.mu
func (c *Controller) schedule() {
	c.cancel()
	gen := c.gen
	c.pending = c.clock.AfterFunc(c.debounce, func() {
		c.view.Do(func() {
			c.fire(gen)
		})
	})
}

// must hold c.mu
func (c *Controller) cancel() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	// a timer that already fired but is waiting on the view's event loop
	// sees a stale generation and does nothing
	c.gen++
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen || !c.view.Attached() {
		return
	}
	c.pending = nil

	q := strings.TrimSpace(c.state.Query)
	switch {
	case q == "":
		c.showGroup(c.firstKey())
	case utf8.RuneCountInString(q) < c.minQueryLength:
		// too short to search, and not empty enough to reset
	default:
		c.search(q)
	}
}

// must hold c.mu
func (c *Controller) search(q string) {
	records, err := c.searcher.Query(c.ctx, q)
	if err != nil {
		sesqui.Logger(c.ctx).ErrorContext(c.ctx, "error searching timeline", "query", q, "error", err)
		return
	}
	markup, err := c.render(c.ctx, records)
	if err != nil {
		sesqui.Logger(c.ctx).ErrorContext(c.ctx, "error rendering search results", "query", q, "error", err)
		return
	}
	c.view.RevealResults(markup, len(records))
	c.view.Activate(ResultsKey)
	c.state.Results = records
	c.state.ResultsVisible = true
	c.state.Active = ResultsKey
	c.state.Searches++
}

// must hold c.mu
func (c *Controller) showGroup(key string) {
	c.view.Activate(key)
	c.view.HideResults()
	c.state.Active = key
	c.state.ResultsVisible = false
}
