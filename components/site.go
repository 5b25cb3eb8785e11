// Package components holds the presentational building blocks of the
// anniversary site: navbar, hero, cards, footer, sections, content blocks,
// calls to action, highlights, text areas, and image modals, plus the page
// shell they're mounted into.
//
// Every component is a struct that renders to a markup fragment with Render,
// or straight into a dom.Document with Mount. Zero-valued fields fall back
// to the same defaults everywhere.
package components

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"impractical.co/sesqui"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Stylesheet is the URL of the stylesheet every component links to.
const Stylesheet = "/css/components.css"

var (
	_ sesqui.Site            = &Site{}
	_ sesqui.FuncMapExtender = &Site{}
	_ sesqui.ErrorPager      = &Site{}
)

// Site renders components. Use NewSite to supply replacement templates, or
// DefaultSite for the built-in ones.
type Site struct {
	*sesqui.CachedSite
}

// NewSite returns a Site reading its templates from templates, which must
// lay them out the way the built-in templates/ directory does.
func NewSite(templates fs.FS) *Site {
	return &Site{CachedSite: sesqui.NewCachedSite(templates)}
}

var defaultSite = NewSite(templateFS)

// DefaultSite returns the Site using the built-in templates.
func DefaultSite() *Site {
	return defaultSite
}

// FuncMap makes the classes helper available to every component template.
func (*Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"classes": classes,
	}
}

// ErrorPage is rendered in place of a Page that fails to render.
func (*Site) ErrorPage(_ context.Context) sesqui.Renderable {
	return errorPage{}
}

// classes joins the non-empty class names with spaces.
func classes(names ...string) string {
	var kept []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kept = append(kept, name)
	}
	return strings.Join(kept, " ")
}

type errorPage struct {
	linksStylesheet
}

func (errorPage) Templates(_ context.Context) []string {
	return []string{"templates/page.html.tmpl"}
}

func (errorPage) Key(_ context.Context) string {
	return "error-page"
}

func (errorPage) ExecutedTemplate(_ context.Context) string {
	return "error-page"
}

// linksStylesheet is embedded by every component to link the shared
// stylesheet.
type linksStylesheet struct{}

func (linksStylesheet) LinkCSS(_ context.Context) []string {
	return []string{Stylesheet}
}
