package sesqui

import (
	"context"
	"html/template"
)

// JSEmbedder is an interface that Components can fulfill to include some
// JavaScript that should be embedded directly into the rendered HTML. The
// contents will be made available to the template as .EmbeddedJS.
type JSEmbedder interface {
	// EmbedJS returns the JavaScript, without <script> tags, that should
	// be embedded directly in the output HTML.
	EmbedJS(context.Context) template.JS
}

// JSLinker is an interface that Components can fulfill to include some
// JavaScript that should be loaded separately from the HTML document, using a
// <script> tag with a src attribute. The URLs will be made available to the
// template as .LinkedJS.
type JSLinker interface {
	// LinkJS returns a list of URLs to JavaScript files that should be
	// linked to from the output HTML.
	LinkJS(context.Context) []string
}

func getComponentJSEmbeds(ctx context.Context, component Component) template.JS {
	return collectEmbeds(ctx, component, func(comp Component) (template.JS, bool) {
		embed, ok := comp.(JSEmbedder)
		if !ok {
			return "", false
		}
		return embed.EmbedJS(ctx), true
	})
}

func getComponentJSLinks(ctx context.Context, component Component) []string {
	return collectLinks(ctx, component, func(comp Component) ([]string, bool) {
		link, ok := comp.(JSLinker)
		if !ok {
			return nil, false
		}
		return link.LinkJS(ctx), true
	})
}
