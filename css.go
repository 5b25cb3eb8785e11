package sesqui

import (
	"context"
	"html/template"
)

// CSSEmbedder is an interface that Components can fulfill to include some CSS
// that should be embedded directly into the rendered HTML. The contents will
// be made available to the template as .EmbeddedCSS.
type CSSEmbedder interface {
	// EmbedCSS returns the CSS, without <style> tags, that should be
	// embedded directly in the output HTML.
	EmbedCSS(context.Context) template.CSS
}

// CSSLinker is an interface that Components can fulfill to include some CSS
// that should be loaded through a <link> element in the template. The URLs
// will be made available to the template as .LinkedCSS.
type CSSLinker interface {
	// LinkCSS returns a list of URLs to CSS files that should be linked to
	// from the output HTML.
	LinkCSS(context.Context) []string
}

func getComponentCSSEmbeds(ctx context.Context, component Component) template.CSS {
	return collectEmbeds(ctx, component, func(comp Component) (template.CSS, bool) {
		embed, ok := comp.(CSSEmbedder)
		if !ok {
			return "", false
		}
		return embed.EmbedCSS(ctx), true
	})
}

func getComponentCSSLinks(ctx context.Context, component Component) []string {
	return collectLinks(ctx, component, func(comp Component) ([]string, bool) {
		link, ok := comp.(CSSLinker)
		if !ok {
			return nil, false
		}
		return link.LinkCSS(ctx), true
	})
}
