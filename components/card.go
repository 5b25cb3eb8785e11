package components

import (
	"context"
	"html/template"

	"impractical.co/sesqui"
)

// DefaultGridColumns lays cards out in as many 250px-or-wider columns as
// fit.
const DefaultGridColumns template.CSS = "repeat(auto-fit, minmax(250px, 1fr))"

var (
	_ Component            = &Card{}
	_ Component            = &CardGrid{}
	_ sesqui.ComponentUser = &CardGrid{}
)

// Card is a feature card with an optional icon and button. Setting Href
// makes the whole card a link.
type Card struct {
	linksStylesheet

	Icon        string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Href        string      `json:"href,omitempty" yaml:"href,omitempty"`
	Button      *ButtonLink `json:"button,omitempty" yaml:"button,omitempty"`
}

func (*Card) Templates(_ context.Context) []string {
	return []string{"templates/card.html.tmpl"}
}

func (*Card) Key(_ context.Context) string {
	return "card"
}

func (*Card) ExecutedTemplate(_ context.Context) string {
	return "card.page"
}

func (*Card) applyDefaults() {}

// CardGrid lays out cards in a CSS grid.
type CardGrid struct {
	linksStylesheet

	Cards   []Card       `json:"cards" yaml:"cards"`
	Columns template.CSS `json:"columns,omitempty" yaml:"columns,omitempty"`
}

func (*CardGrid) Templates(_ context.Context) []string {
	return []string{"templates/card-grid.html.tmpl"}
}

func (*CardGrid) UseComponents(_ context.Context) []sesqui.Component {
	return []sesqui.Component{&Card{}}
}

func (*CardGrid) Key(_ context.Context) string {
	return "card-grid"
}

func (*CardGrid) ExecutedTemplate(_ context.Context) string {
	return "card-grid.page"
}

func (g *CardGrid) applyDefaults() {
	if g.Columns == "" {
		g.Columns = DefaultGridColumns
	}
	for i := range g.Cards {
		g.Cards[i].applyDefaults()
	}
}
