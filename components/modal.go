package components

import (
	"context"
	"html/template"

	"github.com/google/uuid"

	"impractical.co/sesqui"
)

// Modal sizes.
const (
	ModalSmall      = "small"
	ModalMedium     = "medium"
	ModalLarge      = "large"
	ModalFullscreen = "fullscreen"
)

// DefaultModalColumns is the number of columns in a ModalGrid.
const DefaultModalColumns = 3

var (
	_ Component            = &Modal{}
	_ Component            = &ModalGrid{}
	_ sesqui.ComponentUser = &ModalGrid{}
)

// Modal is a thumbnail image that opens a dialog showing an iframe or
// custom content. Mount wires up the open and close behavior.
type Modal struct {
	linksStylesheet

	// ID identifies the dialog. A random one is generated when empty.
	ID         string        `json:"id,omitempty" yaml:"id,omitempty"`
	Image      string        `json:"image" yaml:"image"`
	ImageAlt   string        `json:"imageAlt,omitempty" yaml:"imageAlt,omitempty"`
	IframeURL  string        `json:"iframeUrl,omitempty" yaml:"iframeUrl,omitempty"`
	Content    template.HTML `json:"content,omitempty" yaml:"content,omitempty"`
	Title      string        `json:"title,omitempty" yaml:"title,omitempty"`
	Size       string        `json:"size,omitempty" yaml:"size,omitempty"`
	ImageClass string        `json:"imageClass,omitempty" yaml:"imageClass,omitempty"`
}

func (*Modal) Templates(_ context.Context) []string {
	return []string{"templates/modal.html.tmpl"}
}

func (*Modal) Key(_ context.Context) string {
	return "modal"
}

func (*Modal) ExecutedTemplate(_ context.Context) string {
	return "modal.page"
}

func (m *Modal) applyDefaults() {
	m.ImageAlt = orDefault(m.ImageAlt, "Click to open")
	m.Size = orDefault(m.Size, ModalLarge)
	if m.ID == "" {
		m.ID = "modal-" + uuid.NewString()
	}
}

// TitleID is the id of the dialog's title element.
func (m *Modal) TitleID() string {
	return m.ID + "-title"
}

// ModalGrid lays out several modals in a grid.
type ModalGrid struct {
	linksStylesheet

	Modals  []Modal `json:"modals" yaml:"modals"`
	Columns int     `json:"columns,omitempty" yaml:"columns,omitempty"`
}

func (*ModalGrid) Templates(_ context.Context) []string {
	return []string{"templates/modal-grid.html.tmpl"}
}

func (*ModalGrid) UseComponents(_ context.Context) []sesqui.Component {
	return []sesqui.Component{&Modal{}}
}

func (*ModalGrid) Key(_ context.Context) string {
	return "modal-grid"
}

func (*ModalGrid) ExecutedTemplate(_ context.Context) string {
	return "modal-grid.page"
}

func (g *ModalGrid) applyDefaults() {
	if g.Columns < 1 {
		g.Columns = DefaultModalColumns
	}
	for i := range g.Modals {
		g.Modals[i].applyDefaults()
	}
}
