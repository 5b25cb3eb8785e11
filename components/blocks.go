package components

import (
	"context"
	"html/template"
)

// Image positions for a ContentBlock.
const (
	ImageLeft  = "left"
	ImageRight = "right"
)

// Text widths for a TextContent.
const (
	WidthNarrow = "narrow"
	WidthMedium = "medium"
	WidthWide   = "wide"
)

// SizeLarge makes a CTASection taller.
const SizeLarge = "large"

var (
	_ Component = &ContentBlock{}
	_ Component = &CTASection{}
	_ Component = &Highlight{}
	_ Component = &TextContent{}
)

// ContentBlock places an image and text side by side.
type ContentBlock struct {
	linksStylesheet

	Image         string        `json:"image,omitempty" yaml:"image,omitempty"`
	ImageAlt      string        `json:"imageAlt,omitempty" yaml:"imageAlt,omitempty"`
	Title         string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description   template.HTML `json:"description,omitempty" yaml:"description,omitempty"`
	ImagePosition string        `json:"imagePosition,omitempty" yaml:"imagePosition,omitempty"`
	Button        *ButtonLink   `json:"button,omitempty" yaml:"button,omitempty"`
	Background    string        `json:"background,omitempty" yaml:"background,omitempty"`
}

func (*ContentBlock) Templates(_ context.Context) []string {
	return []string{"templates/blocks.html.tmpl"}
}

func (*ContentBlock) Key(_ context.Context) string {
	return "content-block"
}

func (*ContentBlock) ExecutedTemplate(_ context.Context) string {
	return "content-block"
}

func (b *ContentBlock) applyDefaults() {
	b.ImagePosition = orDefault(b.ImagePosition, ImageLeft)
	b.Background = orDefault(b.Background, "white")
	if b.Button != nil {
		b.Button.Type = orDefault(b.Button.Type, ButtonPrimary)
	}
}

// Classes returns the content block's class attribute.
func (b *ContentBlock) Classes() string {
	return classes("content-block", "content-block-"+b.Background, "content-block-image-"+b.ImagePosition)
}

// TextFirst reports whether the text comes before the image.
func (b *ContentBlock) TextFirst() bool {
	return b.ImagePosition == ImageRight
}

// CTASection is a call to action with a single large button.
type CTASection struct {
	linksStylesheet

	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Button      *ButtonLink `json:"button,omitempty" yaml:"button,omitempty"`
	Background  string      `json:"background,omitempty" yaml:"background,omitempty"`
	Size        string      `json:"size,omitempty" yaml:"size,omitempty"`
}

func (*CTASection) Templates(_ context.Context) []string {
	return []string{"templates/blocks.html.tmpl"}
}

func (*CTASection) Key(_ context.Context) string {
	return "cta-section"
}

func (*CTASection) ExecutedTemplate(_ context.Context) string {
	return "cta-section"
}

func (c *CTASection) applyDefaults() {
	c.Title = orDefault(c.Title, "Ready to Get Started?")
	c.Background = orDefault(c.Background, BackgroundGradient)
	c.Size = orDefault(c.Size, "default")
	if c.Button == nil {
		c.Button = &ButtonLink{Text: "Get Started", Href: "#"}
	}
}

// Classes returns the section's class attribute.
func (c *CTASection) Classes() string {
	solid, large := "", ""
	if c.Background != BackgroundGradient {
		solid = "cta-section-solid"
	}
	if c.Size == SizeLarge {
		large = "cta-section-large"
	}
	return classes("cta-section", solid, large)
}

// Highlight is a callout box for emphasizing content.
type Highlight struct {
	linksStylesheet

	Title   string        `json:"title,omitempty" yaml:"title,omitempty"`
	Content template.HTML `json:"content,omitempty" yaml:"content,omitempty"`
	Icon    string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Type    string        `json:"type,omitempty" yaml:"type,omitempty"`
	Button  *ButtonLink   `json:"button,omitempty" yaml:"button,omitempty"`
}

func (*Highlight) Templates(_ context.Context) []string {
	return []string{"templates/blocks.html.tmpl"}
}

func (*Highlight) Key(_ context.Context) string {
	return "highlight"
}

func (*Highlight) ExecutedTemplate(_ context.Context) string {
	return "highlight"
}

func (h *Highlight) applyDefaults() {
	h.Type = orDefault(h.Type, "maroon")
}

// TextContent is a long-form text area.
type TextContent struct {
	linksStylesheet

	Title       string        `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    string        `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Content     template.HTML `json:"content,omitempty" yaml:"content,omitempty"`
	Width       string        `json:"width,omitempty" yaml:"width,omitempty"`
	CenterTitle bool          `json:"centerTitle,omitempty" yaml:"centerTitle,omitempty"`
}

func (*TextContent) Templates(_ context.Context) []string {
	return []string{"templates/blocks.html.tmpl"}
}

func (*TextContent) Key(_ context.Context) string {
	return "text-content"
}

func (*TextContent) ExecutedTemplate(_ context.Context) string {
	return "text-content"
}

func (t *TextContent) applyDefaults() {
	t.Width = orDefault(t.Width, WidthMedium)
}

// Classes returns the text area's class attribute.
func (t *TextContent) Classes() string {
	center := ""
	if t.CenterTitle {
		center = "text-content-center"
	}
	return classes("text-content", "text-content-"+t.Width, center)
}
