package sesqui_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"impractical.co/sesqui"
)

type CachedSiteFoo struct{}

func (CachedSiteFoo) Templates(_ context.Context) []string {
	return []string{"base.tmpl", "foo.tmpl"}
}

func (CachedSiteFoo) Key(_ context.Context) string {
	return "foo.tmpl"
}

func (CachedSiteFoo) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

type CachedSiteBar struct {
	IncludeBaz bool
}

func (bar CachedSiteBar) Templates(_ context.Context) []string {
	templates := []string{"base.tmpl", "bar.tmpl"}
	if bar.IncludeBaz {
		templates = append(templates, "baz.tmpl")
	}
	return templates
}

func (CachedSiteBar) Key(_ context.Context) string {
	return "bar.tmpl"
}

func (CachedSiteBar) ExecutedTemplate(_ context.Context) string {
	return "base.tmpl"
}

func TestCachedSite(t *testing.T) {
	t.Parallel()

	ctx := sesqui.LoggingContext(context.Background(), slog.Default())
	templateFS := fixtureFS(map[string]string{
		"foo.tmpl":  `{{ define "template_name" }}foo.tmpl{{ end }}`,
		"bar.tmpl":  `{{ define "template_name" }}bar.tmpl{{ if .Page.IncludeBaz }} {{ block "variable_include" . }}{{ end }}{{ end }}{{ end }}`,
		"baz.tmpl":  `{{ define "variable_include" }}included baz.tmpl{{ end }}`,
		"base.tmpl": `{{ block "template_name" . }}base.tmpl{{ end }}`,
	})
	site := sesqui.NewCachedSite(templateFS)
	renderChangeAndRerender(ctx, t, templateFS, CachedSiteFoo{}, site, "foo.tmpl", "foo.tmpl")
	renderChangeAndRerender(ctx, t, templateFS, CachedSiteBar{}, site, "bar.tmpl", "bar.tmpl")
	// the cached parse for bar.tmpl doesn't include baz.tmpl, so the
	// block falls back to its empty default
	renderChangeAndRerender(ctx, t, templateFS, CachedSiteBar{IncludeBaz: true}, site, "bar.tmpl", "bar.tmpl ")
}

func renderChangeAndRerender(ctx context.Context, t *testing.T, fs fstest.MapFS, page sesqui.Renderable, site sesqui.Site, file, expected string) {
	t.Helper()

	var out strings.Builder
	sesqui.Render(ctx, &out, site, page)
	if output := out.String(); output != expected {
		t.Errorf("Expected to get %q, got %q", expected, output)
	}
	out.Reset()
	oldData := fs[file].Data
	fs[file].Data = []byte(strings.ReplaceAll(string(fs[file].Data), "template_name\" }}"+strings.TrimSpace(expected), "template_name\" }}changed"))
	sesqui.Render(ctx, &out, site, page)
	if output := out.String(); output != expected {
		t.Errorf("Expected to get %q after modifying underlying data, got %q", expected, output)
	}
	fs[file].Data = oldData
}
