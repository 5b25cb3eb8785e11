package components

import (
	"context"
	"html/template"

	"impractical.co/sesqui"
)

// Component is a configurable piece of markup.
type Component interface {
	sesqui.Renderable

	// applyDefaults fills in every zero-valued option that has a
	// default.
	applyDefaults()
}

// Link is a plain hyperlink, like a navbar or footer entry.
type Link struct {
	Text string `json:"text" yaml:"text"`
	Href string `json:"href" yaml:"href"`
}

// ButtonLink is a link styled as a button inside another component.
// Components only use the fields they support.
type ButtonLink struct {
	Text    string      `json:"text" yaml:"text"`
	Href    string      `json:"href,omitempty" yaml:"href,omitempty"`
	Type    string      `json:"type,omitempty" yaml:"type,omitempty"`
	Target  string      `json:"target,omitempty" yaml:"target,omitempty"`
	Large   bool        `json:"large,omitempty" yaml:"large,omitempty"`
	OnClick template.JS `json:"onClick,omitempty" yaml:"onClick,omitempty"`
}

// Classes returns the class attribute of a primary button, large if
// requested.
func (b ButtonLink) Classes() string {
	large := ""
	if b.Large {
		large = "btn-large"
	}
	return classes("btn", "btn-primary", large)
}

// Render returns the component's markup, rendered with the DefaultSite.
func Render(ctx context.Context, c Component) (template.HTML, error) {
	return DefaultSite().Render(ctx, c)
}

// Render returns the component's markup.
func (s *Site) Render(ctx context.Context, c Component) (template.HTML, error) {
	c.applyDefaults()
	return sesqui.Fragment(ctx, s, c)
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
