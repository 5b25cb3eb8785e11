package components

import (
	"context"
	"io"

	"impractical.co/sesqui"
)

var (
	_ sesqui.Renderable    = &Page{}
	_ sesqui.ComponentUser = &Page{}
	_ sesqui.CSSLinker     = &Page{}
	_ sesqui.JSLinker      = &Page{}
)

// Page is the document shell that components get mounted into. It links
// the stylesheets of every component in Blocks and renders an empty
// container for each of MountPoints.
type Page struct {
	Title string
	Lang  string

	// MountPoints are the ids of the containers in the page body, in
	// order.
	MountPoints []string

	// Stylesheets and Scripts are linked in addition to the ones the
	// Blocks need.
	Stylesheets []string
	Scripts     []string

	// Blocks are the components that will be mounted into the page.
	Blocks []sesqui.Component
}

func (*Page) Templates(_ context.Context) []string {
	return []string{"templates/page.html.tmpl"}
}

func (p *Page) UseComponents(_ context.Context) []sesqui.Component {
	return p.Blocks
}

func (p *Page) LinkCSS(_ context.Context) []string {
	return p.Stylesheets
}

func (p *Page) LinkJS(_ context.Context) []string {
	return p.Scripts
}

func (*Page) Key(_ context.Context) string {
	return "page"
}

func (*Page) ExecutedTemplate(_ context.Context) string {
	return "page"
}

func (p *Page) applyDefaults() {
	p.Title = orDefault(p.Title, DefaultSiteTitle)
	p.Lang = orDefault(p.Lang, "en")
}

// RenderPage writes the page shell to out using the DefaultSite.
func RenderPage(ctx context.Context, out io.Writer, page *Page) {
	DefaultSite().RenderPage(ctx, out, page)
}

// RenderPage writes the page shell to out. If the page can't be rendered,
// an error page is written instead.
func (s *Site) RenderPage(ctx context.Context, out io.Writer, page *Page) {
	page.applyDefaults()
	sesqui.Render(ctx, out, s, page)
}
