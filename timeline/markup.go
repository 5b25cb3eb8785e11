package timeline

import (
	"context"
	"embed"
	"html/template"
	"io/fs"

	"github.com/google/uuid"

	"impractical.co/sesqui"
	"impractical.co/sesqui/internal/markdown"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// ErrorMarkup is written into a container when its dataset can't be loaded.
const ErrorMarkup = `<div class="timeline-error">Error loading timeline data</div>`

// Stylesheet is the URL of the stylesheet the timeline markup expects.
const Stylesheet = "/css/timeline.css"

var (
	_ sesqui.Site            = &Site{}
	_ sesqui.FuncMapExtender = &Site{}
	_ sesqui.Renderable      = fragmentPage{}
	_ sesqui.CSSLinker       = fragmentPage{}
	_ sesqui.Renderable      = resultsPage{}
)

// Site renders timeline markup. The zero value isn't usable; use NewSite or
// DefaultSite.
type Site struct {
	*sesqui.CachedSite

	markdown *markdown.Converter
}

// NewSite returns a Site that parses its templates from templates. The file
// system must contain templates/timeline.html.tmpl defining the "timeline",
// "timeline-results", and "timeline-card" templates.
func NewSite(templates fs.FS) *Site {
	return &Site{
		CachedSite: sesqui.NewCachedSite(templates),
		markdown:   markdown.NewConverter(markdown.DefaultCacheSize),
	}
}

var defaultSite = NewSite(templateFS)

// DefaultSite returns the Site using the built-in templates.
func DefaultSite() *Site {
	return defaultSite
}

// FuncMap adds the card helper to the timeline templates.
func (s *Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"card": s.card,
	}
}

type cardView struct {
	Event       Event
	Alt         string
	Description template.HTML
}

func (s *Site) card(format string, event Event) (cardView, error) {
	view := cardView{
		Event: event,
		Alt:   event.ImageAlt,
	}
	if view.Alt == "" {
		view.Alt = event.Title
	}
	if format == FormatMarkdown {
		desc, err := s.markdown.ToHTML(event.Description)
		if err != nil {
			return cardView{}, err
		}
		view.Description = desc
		return view, nil
	}
	// descriptions are rich text authored alongside the dataset
	view.Description = template.HTML(event.Description) // #nosec G203
	return view, nil
}

type fragmentPage struct {
	ID         string
	Title      string
	Subtitle   string
	Search     bool
	Format     string
	Groups     []Group
	ResultsKey string
}

func (fragmentPage) Templates(_ context.Context) []string {
	return []string{"templates/timeline.html.tmpl"}
}

func (fragmentPage) Key(_ context.Context) string {
	return "timeline"
}

func (fragmentPage) ExecutedTemplate(_ context.Context) string {
	return "timeline"
}

func (fragmentPage) LinkCSS(_ context.Context) []string {
	return []string{Stylesheet}
}

type resultsPage struct {
	Format  string
	Records []Record
}

func (resultsPage) Templates(_ context.Context) []string {
	return []string{"templates/timeline.html.tmpl"}
}

func (resultsPage) Key(_ context.Context) string {
	return "timeline-results"
}

func (resultsPage) ExecutedTemplate(_ context.Context) string {
	return "timeline-results"
}

// NewID returns a fresh id for a timeline's root element.
func NewID() string {
	return "timeline-" + uuid.NewString()
}

// Fragment renders the full timeline markup for dataset: the header, the
// search box when search is enabled, the tab strip and one panel per group.
// The first group's tab and panel start out active; the results tab and
// panel, keyed by ResultsKey, come first and start out hidden.
func (s *Site) Fragment(ctx context.Context, id string, dataset Dataset) (template.HTML, error) {
	return sesqui.Fragment(ctx, s, fragmentPage{
		ID:         id,
		Title:      dataset.DisplayTitle(),
		Subtitle:   dataset.Subtitle,
		Search:     dataset.SearchEnabled(),
		Format:     dataset.DescriptionFormat,
		Groups:     dataset.Groups,
		ResultsKey: ResultsKey,
	})
}

// Results renders the contents of the search results panel. An empty list
// renders an empty-state message.
func (s *Site) Results(ctx context.Context, format string, records []Record) (template.HTML, error) {
	return sesqui.Fragment(ctx, s, resultsPage{
		Format:  format,
		Records: records,
	})
}
