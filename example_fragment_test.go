package sesqui_test

import (
	"context"
	"fmt"
	"html/template"

	"impractical.co/sesqui"
)

type Gallery struct {
	Items []Lightbox
}

func (Gallery) Templates(_ context.Context) []string {
	return []string{"gallery.html.tmpl"}
}

func (g Gallery) UseComponents(_ context.Context) []sesqui.Component {
	components := make([]sesqui.Component, 0, len(g.Items))
	for _, item := range g.Items {
		components = append(components, item)
	}
	return components
}

func (Gallery) Key(_ context.Context) string {
	return "gallery"
}

func (Gallery) ExecutedTemplate(_ context.Context) string {
	return "gallery"
}

func (Gallery) LinkJS(_ context.Context) []string {
	return []string{"/js/gallery.js"}
}

func (Gallery) EmbedJS(_ context.Context) template.JS {
	return "initGallery();"
}

type Lightbox struct {
	Image string
}

func (Lightbox) Templates(_ context.Context) []string {
	return []string{"gallery.html.tmpl"}
}

func (Lightbox) LinkJS(_ context.Context) []string {
	return []string{"/js/lightbox.js"}
}

func (Lightbox) EmbedJS(_ context.Context) template.JS {
	// every lightbox embeds the same script; it's only included once
	return "initLightbox();"
}

func ExampleFragment() {
	templates := fixtureFS(map[string]string{
		"gallery.html.tmpl": `{{ define "gallery" -}}
{{ range .LinkedJS }}<script src="{{ . }}"></script>
{{ end -}}
<script>
{{ .EmbeddedJS }}
</script>
{{- end }}`,
	})

	site := ExampleSite{CachedSite: sesqui.NewCachedSite(templates)}
	gallery := Gallery{Items: []Lightbox{{Image: "/img/ring.jpg"}, {Image: "/img/kyle-field.jpg"}}}
	markup, err := sesqui.Fragment(context.Background(), site, gallery)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(markup)

	// Output:
	// <script src="/js/gallery.js"></script>
	// <script src="/js/lightbox.js"></script>
	// <script>
	// initGallery();
	// initLightbox();
	// </script>
}
