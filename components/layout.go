package components

import (
	"context"
	"html/template"
)

// DefaultSiteTitle is the navbar's brand title when none is set.
const DefaultSiteTitle = "Sesquicentennial Planning Demos"

// DefaultFooterText is the footer's text when none is set.
const DefaultFooterText = "© Texas A&M University Libraries"

// Background styles shared by the hero and the call to action.
const (
	BackgroundGradient = "gradient"
	BackgroundSolid    = "solid"
)

var (
	_ Component = &Navbar{}
	_ Component = &Hero{}
	_ Component = &Footer{}
	_ Component = &Section{}
)

// Navbar is the site's top navigation bar.
type Navbar struct {
	linksStylesheet

	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Links []Link `json:"links,omitempty" yaml:"links,omitempty"`
}

func (*Navbar) Templates(_ context.Context) []string {
	return []string{"templates/layout.html.tmpl"}
}

func (*Navbar) Key(_ context.Context) string {
	return "navbar"
}

func (*Navbar) ExecutedTemplate(_ context.Context) string {
	return "navbar"
}

func (n *Navbar) applyDefaults() {
	n.Title = orDefault(n.Title, DefaultSiteTitle)
}

// Hero is the large banner at the top of a page.
type Hero struct {
	linksStylesheet

	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle   string      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Button     *ButtonLink `json:"button,omitempty" yaml:"button,omitempty"`
	Background string      `json:"background,omitempty" yaml:"background,omitempty"`
}

func (*Hero) Templates(_ context.Context) []string {
	return []string{"templates/layout.html.tmpl"}
}

func (*Hero) Key(_ context.Context) string {
	return "hero"
}

func (*Hero) ExecutedTemplate(_ context.Context) string {
	return "hero"
}

func (h *Hero) applyDefaults() {
	h.Title = orDefault(h.Title, "Welcome")
	h.Background = orDefault(h.Background, BackgroundGradient)
	if h.Button != nil {
		h.Button.Href = orDefault(h.Button.Href, "#")
	}
}

// Classes returns the hero's class attribute: anything other than the
// gradient background is solid.
func (h *Hero) Classes() string {
	if h.Background == BackgroundGradient {
		return "hero"
	}
	return classes("hero", "hero-solid")
}

// Footer is the site footer.
type Footer struct {
	linksStylesheet

	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Links []Link `json:"links,omitempty" yaml:"links,omitempty"`
}

func (*Footer) Templates(_ context.Context) []string {
	return []string{"templates/layout.html.tmpl"}
}

func (*Footer) Key(_ context.Context) string {
	return "footer"
}

func (*Footer) ExecutedTemplate(_ context.Context) string {
	return "footer"
}

func (f *Footer) applyDefaults() {
	f.Text = orDefault(f.Text, DefaultFooterText)
}

var sectionBackgrounds = map[string]string{
	"default": "",
	"light":   "section-light",
	"white":   "section-white",
}

// Section is a titled page section wrapping arbitrary content.
type Section struct {
	linksStylesheet

	ID          string        `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Content     template.HTML `json:"content,omitempty" yaml:"content,omitempty"`
	ClassName   string        `json:"className,omitempty" yaml:"className,omitempty"`
	Background  string        `json:"background,omitempty" yaml:"background,omitempty"`
}

func (*Section) Templates(_ context.Context) []string {
	return []string{"templates/layout.html.tmpl"}
}

func (*Section) Key(_ context.Context) string {
	return "section"
}

func (*Section) ExecutedTemplate(_ context.Context) string {
	return "section"
}

func (s *Section) applyDefaults() {
	s.Background = orDefault(s.Background, "default")
}

// Classes returns the section's class attribute. Unknown backgrounds add no
// class.
func (s *Section) Classes() string {
	return classes("section", s.ClassName, sectionBackgrounds[s.Background])
}
