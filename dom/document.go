// Package dom is a small headless document model: enough of a browser's DOM
// for the components in this module to look up mount points, replace their
// contents, toggle classes and attributes, and react to input events.
//
// A Document is owned by a single logical event loop. Run, Dispatch and the
// helpers built on Dispatch acquire the Document's lock; every other method
// of Document and Element assumes the caller is already inside Run or inside
// an event listener, and must not be called concurrently with them.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrNotAttached is returned when an operation needs an element that
	// is part of the document, but the element has been removed.
	ErrNotAttached = errors.New("element is not attached to the document")

	// ErrNotElement is returned when an element operation is attempted on
	// a node that isn't an element, like the document itself.
	ErrNotElement = errors.New("node is not an element")
)

const emptyDocument = `<!doctype html><html><head></head><body></body></html>`

// Document is a parsed HTML document with event listeners and focus state.
type Document struct {
	mu sync.Mutex

	root      *html.Node
	listeners map[*html.Node][]*listener
	focused   *html.Node
	selectors map[string]cascadia.SelectorGroup
}

// New returns an empty document with a head and a body.
func New() *Document {
	doc, err := Parse(strings.NewReader(emptyDocument))
	if err != nil {
		// the HTML parser doesn't fail on well-formed constant input
		panic(fmt.Sprintf("dom: parsing empty document: %s", err))
	}
	return doc
}

// Parse parses a full HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	return &Document{
		root:      root,
		listeners: map[*html.Node][]*listener{},
		selectors: map[string]cascadia.SelectorGroup{},
	}, nil
}

// Run calls fn while holding the document's lock. It is how code outside of
// an event listener, like a timer callback or a mount function, gets safe
// access to the document. Run must not be called from inside Run or a
// listener.
func (d *Document) Run(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Root returns the document node. Listeners added to it see every event that
// bubbles.
func (d *Document) Root() *Element {
	return d.wrap(d.root)
}

// Body returns the document's body element.
func (d *Document) Body() *Element {
	return d.Query("body")
}

// Head returns the document's head element.
func (d *Document) Head() *Element {
	return d.Query("head")
}

// Query returns the first element in the document matching the CSS
// selector, or nil if none match or the selector is invalid.
func (d *Document) Query(selector string) *Element {
	return d.Root().Query(selector)
}

// QueryAll returns every element in the document matching the CSS selector,
// in document order.
func (d *Document) QueryAll(selector string) []*Element {
	return d.Root().QueryAll(selector)
}

// ActiveElement returns the element that currently has focus, or nil.
func (d *Document) ActiveElement() *Element {
	if d.focused == nil || !d.connected(d.focused) {
		return nil
	}
	return d.wrap(d.focused)
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String returns the document rendered as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func (d *Document) compile(selector string) (cascadia.SelectorGroup, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("error parsing selector %q: %w", selector, err)
	}
	d.selectors[selector] = sel
	return sel, nil
}

func (d *Document) connected(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

// forget drops the listeners and focus of every node in the subtree rooted
// at n, which is about to be removed from the document.
func (d *Document) forget(n *html.Node) {
	delete(d.listeners, n)
	if d.focused == n {
		d.focused = nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		d.forget(child)
	}
}

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

func fragmentContext(n *html.Node) *html.Node {
	if n.Type == html.DocumentNode {
		return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	return n
}
