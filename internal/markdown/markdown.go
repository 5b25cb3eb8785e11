// Package markdown converts the markdown rich text used in dataset
// descriptions to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DefaultCacheSize is the number of converted snippets kept in memory.
const DefaultCacheSize = 512

var (
	converterInstance goldmark.Markdown
	converterOnce     sync.Once
)

// goldmark's Markdown is safe to share; conversion state lives in each
// Convert call.
func getConverter() goldmark.Markdown {
	converterOnce.Do(func() {
		converterInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		)
	})
	return converterInstance
}

// Converter turns markdown into HTML, remembering recent conversions.
// Raw HTML in the input is not passed through.
type Converter struct {
	cache *lru.Cache[string, template.HTML]
}

// NewConverter returns a Converter caching up to size conversions. A size
// below one uses DefaultCacheSize.
func NewConverter(size int) *Converter {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, template.HTML](size)
	return &Converter{cache: cache}
}

// ToHTML converts the markdown source to HTML.
func (c *Converter) ToHTML(source string) (template.HTML, error) {
	if source == "" {
		return "", nil
	}
	if cached, ok := c.cache.Get(source); ok {
		return cached, nil
	}
	var buf bytes.Buffer
	if err := getConverter().Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("error converting markdown: %w", err)
	}
	// goldmark escapes raw HTML unless WithUnsafe is set
	converted := template.HTML(buf.String()) // #nosec G203
	c.cache.Add(source, converted)
	return converted, nil
}

// Len returns the number of cached conversions.
func (c *Converter) Len() int {
	return c.cache.Len()
}

var defaultConverter = NewConverter(DefaultCacheSize)

// ToHTML converts markdown source to HTML using a shared Converter.
func ToHTML(source string) (template.HTML, error) {
	return defaultConverter.ToHTML(source)
}
