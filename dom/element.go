package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Element is a handle to a node in a Document. Two handles to the same node
// are interchangeable; compare them with Is.
type Element struct {
	doc  *Document
	node *html.Node
}

// Document returns the document the element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// Is reports whether e and other refer to the same node.
func (e *Element) Is(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

// Tag returns the element's lower-case tag name.
func (e *Element) Tag() string {
	if !isElement(e.node) {
		return ""
	}
	return e.node.Data
}

// Connected reports whether the element is still part of its document.
func (e *Element) Connected() bool {
	return e.doc.connected(e.node)
}

// Parent returns the element's parent element, or nil.
func (e *Element) Parent() *Element {
	if !isElement(e.node.Parent) {
		return nil
	}
	return e.doc.wrap(e.node.Parent)
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for cur := other.node; cur != nil; cur = cur.Parent {
		if cur == e.node {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// AttrOr returns the value of the named attribute, or def if it's missing.
func (e *Element) AttrOr(name, def string) string {
	val, ok := e.Attr(name)
	if !ok {
		return def
	}
	return val
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets the named attribute, adding it if necessary.
func (e *Element) SetAttr(name, value string) {
	for i, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the named attribute if it is present.
func (e *Element) RemoveAttr(name string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(attr html.Attribute) bool {
		return attr.Namespace == "" && attr.Key == name
	})
}

// Data returns the value of the data-name attribute.
func (e *Element) Data(name string) string {
	return e.AttrOr("data-"+name, "")
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.AttrOr("id", "")
}

// Classes returns the element's classes in attribute order.
func (e *Element) Classes() []string {
	return strings.Fields(e.AttrOr("class", ""))
}

// HasClass reports whether the element has the class.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes(), class)
}

// AddClass adds the class if the element doesn't have it yet.
func (e *Element) AddClass(class string) {
	classes := e.Classes()
	if slices.Contains(classes, class) {
		return
	}
	e.SetAttr("class", strings.Join(append(classes, class), " "))
}

// RemoveClass removes every occurrence of the class.
func (e *Element) RemoveClass(class string) {
	if !e.HasAttr("class") {
		return
	}
	classes := slices.DeleteFunc(e.Classes(), func(c string) bool { return c == class })
	e.SetAttr("class", strings.Join(classes, " "))
}

// ToggleClass adds the class when on is true and removes it otherwise.
func (e *Element) ToggleClass(class string, on bool) {
	if on {
		e.AddClass(class)
		return
	}
	e.RemoveClass(class)
}

// Hidden reports whether the element carries the hidden attribute.
func (e *Element) Hidden() bool {
	return e.HasAttr("hidden")
}

// SetHidden adds or removes the hidden attribute.
func (e *Element) SetHidden(hidden bool) {
	if hidden {
		e.SetAttr("hidden", "")
		return
	}
	e.RemoveAttr("hidden")
}

// Value returns the element's value attribute, which stands in for the
// current value of form controls.
func (e *Element) Value() string {
	return e.AttrOr("value", "")
}

// SetValue sets the element's value attribute.
func (e *Element) SetValue(value string) {
	e.SetAttr("value", value)
}

// Style returns the value of an inline style property, or "".
func (e *Element) Style(property string) string {
	for _, decl := range parseStyle(e.AttrOr("style", "")) {
		if decl[0] == property {
			return decl[1]
		}
	}
	return ""
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(property, value string) {
	decls := parseStyle(e.AttrOr("style", ""))
	decls = slices.DeleteFunc(decls, func(decl [2]string) bool { return decl[0] == property })
	if value != "" {
		decls = append(decls, [2]string{property, value})
	}
	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		parts = append(parts, decl[0]+": "+decl[1])
	}
	e.SetAttr("style", strings.Join(parts, "; ")+";")
}

func parseStyle(style string) [][2]string {
	var decls [][2]string
	for _, part := range strings.Split(style, ";") {
		property, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		property = strings.TrimSpace(property)
		if property == "" {
			continue
		}
		decls = append(decls, [2]string{property, strings.TrimSpace(value)})
	}
	return decls
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(e.node)
	return buf.String()
}

// InnerHTML returns the serialized children of the element.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

// OuterHTML returns the serialized element, including itself.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}

// SetInnerHTML replaces the element's children with the parsed markup.
// Listeners attached to the removed children are dropped.
func (e *Element) SetInnerHTML(markup string) error {
	if e.node.Type != html.ElementNode && e.node.Type != html.DocumentNode {
		return ErrNotElement
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), fragmentContext(e.node))
	if err != nil {
		return fmt.Errorf("error parsing markup: %w", err)
	}
	for child := e.node.FirstChild; child != nil; {
		next := child.NextSibling
		e.doc.forget(child)
		e.node.RemoveChild(child)
		child = next
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// Query returns the first descendant of e matching the CSS selector, or nil
// if none match or the selector is invalid.
func (e *Element) Query(selector string) *Element {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return nil
	}
	return e.doc.wrap(cascadia.Query(e.node, sel))
}

// QueryAll returns every descendant of e matching the CSS selector, in
// document order.
func (e *Element) QueryAll(selector string) []*Element {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return nil
	}
	nodes := cascadia.QueryAll(e.node, sel)
	results := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		results = append(results, e.doc.wrap(n))
	}
	return results
}

// Focus makes the element the document's active element.
func (e *Element) Focus() {
	if !e.Connected() {
		return
	}
	e.doc.focused = e.node
}

// Blur removes focus from the element if it has it.
func (e *Element) Blur() {
	if e.doc.focused == e.node {
		e.doc.focused = nil
	}
}
