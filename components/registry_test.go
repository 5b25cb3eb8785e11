package components_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"impractical.co/sesqui"
	"impractical.co/sesqui/components"
	"impractical.co/sesqui/dom"
)

func TestKinds(t *testing.T) {
	t.Parallel()

	kinds := components.Kinds()
	assert.Len(t, kinds, 13)
	assert.IsIncreasing(t, kinds)
	for _, kind := range kinds {
		c, err := components.New(kind)
		require.NoError(t, err, kind)
		markup, err := components.Render(context.Background(), c)
		require.NoError(t, err, kind)
		assert.NotEmpty(t, strings.TrimSpace(string(markup)), kind)
	}
}

func TestNewUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := components.New("carousel")
	require.ErrorIs(t, err, components.ErrUnknownKind)

	_, err = components.Build(context.Background(), "carousel", nil)
	require.ErrorIs(t, err, components.ErrUnknownKind)
}

func TestBuildFromYAML(t *testing.T) {
	t.Parallel()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
title: Ready to celebrate?
background: solid
button:
  text: RSVP
  href: /rsvp
  target: _blank
`), &node))

	markup, err := components.Build(context.Background(), components.KindCTASection, components.FromYAML(&node))
	require.NoError(t, err)
	doc, err := dom.Parse(strings.NewReader("<body>" + string(markup) + "</body>"))
	require.NoError(t, err)

	section := find(t, doc, "section")
	assert.Equal(t, []string{"cta-section", "cta-section-solid"}, section.Classes())
	assert.Equal(t, "Ready to celebrate?", text(find(t, doc, ".cta-title")))
	btn := find(t, doc, "a.btn")
	assert.Equal(t, "/rsvp", btn.AttrOr("href", ""))
	assert.Equal(t, "_blank", btn.AttrOr("target", ""))
}

func TestBuildFromJSON(t *testing.T) {
	t.Parallel()

	markup, err := components.Build(context.Background(), components.KindNavbar, components.FromJSON([]byte(`{
		"title": "150 Years",
		"links": [{"text": "Home", "href": "/"}]
	}`)))
	require.NoError(t, err)
	assert.Contains(t, string(markup), "<h1>150 Years</h1>")
	assert.Contains(t, string(markup), `<li><a href="/">Home</a></li>`)
}

func TestBuildEmptyOptions(t *testing.T) {
	t.Parallel()

	for name, decode := range map[string]components.Decoder{
		"nil":        nil,
		"empty-yaml": components.FromYAML(nil),
		"empty-json": components.FromJSON(nil),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			markup, err := components.Build(context.Background(), components.KindButton, decode)
			require.NoError(t, err)
			assert.Equal(t, `<button class="btn btn-primary">Button</button>`, string(markup))
		})
	}
}

func TestBuildBadOptions(t *testing.T) {
	t.Parallel()

	_, err := components.Build(context.Background(), components.KindHero, components.FromJSON([]byte(`{"title": 150}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hero")
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	components.RenderPage(context.Background(), &buf, &components.Page{
		MountPoints: []string{"navbar", "hero", "timeline"},
		Stylesheets: []string{"/css/site.css"},
		Scripts:     []string{"/js/analytics.js"},
		Blocks:      []sesqui.Component{&components.Navbar{}, &components.Hero{}},
	})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"), out)

	doc, err := dom.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "en", find(t, doc, "html").AttrOr("lang", ""))
	assert.Equal(t, components.DefaultSiteTitle, text(find(t, doc, "head title")))

	var links, ids, scripts []string
	doc.Run(func() {
		for _, link := range doc.QueryAll(`head link[rel="stylesheet"]`) {
			links = append(links, link.AttrOr("href", ""))
		}
		for _, div := range doc.QueryAll("body > div") {
			ids = append(ids, div.ID())
		}
		for _, script := range doc.QueryAll("script") {
			scripts = append(scripts, script.AttrOr("src", ""))
		}
	})
	assert.Equal(t, []string{"/css/site.css", components.Stylesheet}, links)
	assert.Equal(t, []string{"navbar", "hero", "timeline"}, ids)
	assert.Equal(t, []string{"/js/analytics.js"}, scripts)
}

func TestRenderPageFallsBackToErrorPage(t *testing.T) {
	t.Parallel()

	site := components.NewSite(fstest.MapFS{
		"templates/page.html.tmpl": {Data: []byte(`{{ define "page" }}{{ .Missing }}{{ end }}{{ define "error-page" }}build failed{{ range .LinkedCSS }} {{ . }}{{ end }}{{ end }}`)},
	})
	var buf bytes.Buffer
	site.RenderPage(context.Background(), &buf, &components.Page{})
	assert.Equal(t, "build failed "+components.Stylesheet, buf.String())
}
