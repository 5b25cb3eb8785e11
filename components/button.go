package components

import (
	"context"
	"html/template"
)

// Button types with matching btn-* classes in the stylesheet.
const (
	ButtonPrimary   = "primary"
	ButtonSecondary = "secondary"
)

var _ Component = &Button{}

// Button is a standalone button. It renders as a link when Href is set.
type Button struct {
	linksStylesheet

	Text      string      `json:"text,omitempty" yaml:"text,omitempty"`
	Href      string      `json:"href,omitempty" yaml:"href,omitempty"`
	OnClick   template.JS `json:"onClick,omitempty" yaml:"onClick,omitempty"`
	Type      string      `json:"type,omitempty" yaml:"type,omitempty"`
	Large     bool        `json:"large,omitempty" yaml:"large,omitempty"`
	ClassName string      `json:"className,omitempty" yaml:"className,omitempty"`
}

func (*Button) Templates(_ context.Context) []string {
	return []string{"templates/button.html.tmpl"}
}

func (*Button) Key(_ context.Context) string {
	return "button"
}

func (*Button) ExecutedTemplate(_ context.Context) string {
	return "button.page"
}

func (b *Button) applyDefaults() {
	b.Text = orDefault(b.Text, "Button")
	b.Type = orDefault(b.Type, ButtonPrimary)
}

// Classes returns the button's class attribute.
func (b *Button) Classes() string {
	large := ""
	if b.Large {
		large = "btn-large"
	}
	return classes("btn", "btn-"+b.Type, large, b.ClassName)
}
