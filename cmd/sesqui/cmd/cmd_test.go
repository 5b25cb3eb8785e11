package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impractical.co/sesqui/components"
	"impractical.co/sesqui/dom"
	"impractical.co/sesqui/timeline"
)

const timelineJSON = `{
	// comments are fine
	"title": "Campus Milestones",
	"decades": [
		{"label": "1870s", "year": "1870", "events": [
			{"date": "1876", "title": "College Opens", "description": "Classes begin with six students."}
		]},
		{"label": "1960s", "year": "1960", "events": [
			{"date": "1963", "title": "Name Change", "description": "The college becomes a university.", "link": "https://example.com/1963"},
			{"date": "1969", "title": "University Library", "description": "A new library opens."}
		]},
	]
}`

const siteConfig = `
log_level: error
output_dir: public
pages:
  - file: index.html
    title: Sesquicentennial
    stylesheets: [/css/site.css]
    scripts: [/js/site.js]
    blocks:
      - selector: "#navbar"
        kind: navbar
        config:
          links:
            - {text: Home, href: /}
            - {text: Timeline, href: /history/}
      - selector: "#hero"
        kind: hero
        config:
          title: 150 Years of Aggies
          background: solid
      - selector: "#gallery"
        kind: modal-grid
        config:
          columns: 2
          modals:
            - {id: modal-ring, image: /img/ring.jpg, imageAlt: Aggie Ring}
            - {id: modal-map, image: /img/map.jpg, iframeUrl: "https://example.com/map"}
  - file: history/index.html
    title: History
    blocks:
      - selector: "#timeline"
        kind: timeline
        source: timeline.json
      - selector: "#missing"
        kind: timeline
        source: missing.json
      - selector: "#inline"
        kind: timeline
        config:
          title: Inline
          enableSearch: false
          groups:
            - year: 2026
              events:
                - {date: "2026", title: Sesquicentennial}
`

func writeSite(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "timeline.json"), []byte(timelineJSON), 0o600))
	path := filepath.Join(dir, "sesqui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func readPage(t *testing.T, path string) *dom.Document {
	t.Helper()
	f, err := os.Open(path) // #nosec G304 -- test output
	require.NoError(t, err)
	defer f.Close()
	doc, err := dom.Parse(f)
	require.NoError(t, err)
	return doc
}

func attrs(doc *dom.Document, selector, attr string) []string {
	var vals []string
	doc.Run(func() {
		for _, el := range doc.QueryAll(selector) {
			vals = append(vals, el.AttrOr(attr, ""))
		}
	})
	return vals
}

func TestBuild(t *testing.T) {
	t.Parallel()

	config := writeSite(t, siteConfig)
	_, err := execute(t, "build", "--config", config)
	require.NoError(t, err)

	public := filepath.Join(filepath.Dir(config), "public")
	doc := readPage(t, filepath.Join(public, "index.html"))
	doc.Run(func() {
		assert.Equal(t, "Sesquicentennial", strings.TrimSpace(doc.Query("head title").Text()))
		assert.Equal(t, components.DefaultSiteTitle, strings.TrimSpace(doc.Query("#navbar .nav-brand h1").Text()))
		assert.Len(t, doc.QueryAll("#navbar .nav-menu li"), 2)
		hero := doc.Query("#hero > header")
		require.NotNil(t, hero)
		assert.Equal(t, []string{"hero", "hero-solid"}, hero.Classes())
		assert.Equal(t, "150 Years of Aggies", strings.TrimSpace(hero.Query(".hero-title").Text()))
		assert.Equal(t, []string{"modal-grid", "modal-grid-2"}, doc.Query("#gallery > div").Classes())
		assert.NotNil(t, doc.Query("#modal-map iframe.modal-iframe"))
	})
	assert.Equal(t, []string{"/css/site.css", components.Stylesheet}, attrs(doc, `link[rel="stylesheet"]`, "href"))
	assert.Equal(t, []string{"/js/site.js"}, attrs(doc, "script", "src"))

	doc = readPage(t, filepath.Join(public, "history", "index.html"))
	assert.Equal(t, []string{timeline.Stylesheet}, attrs(doc, `link[rel="stylesheet"]`, "href"))
	doc.Run(func() {
		root := doc.Query("#timeline > .timeline")
		require.NotNil(t, root)
		assert.Equal(t, "timeline-timeline", root.ID())
		assert.Equal(t, "Campus Milestones", strings.TrimSpace(root.Query(".timeline-title").Text()))
		assert.Len(t, root.QueryAll(".timeline-tab"), 3)
		assert.Len(t, root.QueryAll(".timeline-card"), 3)

		assert.NotNil(t, doc.Query("#missing > .timeline-error"))

		inline := doc.Query("#inline > .timeline")
		require.NotNil(t, inline)
		assert.Nil(t, inline.Query(".timeline-search-input"))
		assert.Equal(t, "Sesquicentennial", strings.TrimSpace(inline.Query(".timeline-card-title").Text()))
	})
}

func TestBuildBadBlockConfig(t *testing.T) {
	t.Parallel()

	config := writeSite(t, `
output_dir: public
pages:
  - file: index.html
    blocks:
      - selector: "#hero"
        kind: hero
        config:
          title: [not, a, title]
`)
	_, err := execute(t, "build", "--config", config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `hero "#hero" on index.html`)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(config), "public", "index.html"))
}

func TestBuildInvalidConfig(t *testing.T) {
	t.Parallel()

	config := writeSite(t, "pages: [{file: index.html, blocks: [{selector: '#x', kind: carousel}]}]\n")
	_, err := execute(t, "build", "--config", config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carousel")
}

func TestSearch(t *testing.T) {
	t.Parallel()

	config := writeSite(t, "")
	dataset := filepath.Join(filepath.Dir(config), "data", "timeline.json")

	tests := map[string]struct {
		args []string
		want []string
	}{
		"title-before-description": {
			args: []string{"univ"},
			want: []string{"University Library", "Name Change"},
		},
		"multi-word": {
			args: []string{"six", "students"},
			want: []string{"College Opens"},
		},
		"date": {
			args: []string{"1963"},
			want: []string{"Name Change"},
		},
		"limit": {
			args: []string{"univ", "--limit", "1"},
			want: []string{"University Library"},
		},
		"no-match": {
			args: []string{"zeppelin"},
			want: []string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"search", dataset, "--format", "json"}, test.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)

			var results []searchResult
			require.NoError(t, json.Unmarshal([]byte(out), &results))
			titles := []string{}
			for _, result := range results {
				titles = append(titles, result.Title)
			}
			assert.Equal(t, test.want, titles)
		})
	}
}

func TestSearchText(t *testing.T) {
	t.Parallel()

	config := writeSite(t, "")
	dataset := filepath.Join(filepath.Dir(config), "data", "timeline.json")

	out, err := execute(t, "search", dataset, "name")
	require.NoError(t, err)
	assert.Equal(t, "1960  1963  Name Change\n", out)

	out, err = execute(t, "search", dataset, "zeppelin")
	require.NoError(t, err)
	assert.Equal(t, "No events match your search.\n", out)
}

func TestSearchErrors(t *testing.T) {
	t.Parallel()

	config := writeSite(t, "")
	dataset := filepath.Join(filepath.Dir(config), "data", "timeline.json")

	tests := map[string]struct {
		args []string
		want string
	}{
		"short-query":    {args: []string{"search", dataset, "u"}, want: "shorter than 2"},
		"bad-format":     {args: []string{"search", dataset, "univ", "--format", "xml"}, want: "unknown format"},
		"missing-file":   {args: []string{"search", dataset + ".nope", "univ"}, want: "error reading dataset"},
		"too-few-args":   {args: []string{"search", dataset}, want: "requires at least 2 arg(s)"},
		"invalid-config": {args: []string{"search", config, "univ"}, want: ""},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, test.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, "warn", "json")
	log.Info("hidden")
	log.Warn("shown", "query", "moon")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "moon", record["query"])

	buf.Reset()
	log = newLogger(&buf, "nonsense", "text")
	log.Debug("hidden")
	log.Info("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.NotContains(t, buf.String(), "hidden")
}
