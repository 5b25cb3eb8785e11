package components

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"slices"

	"gopkg.in/yaml.v3"
)

// Kinds of component New knows how to build.
const (
	KindButton       = "button"
	KindCard         = "card"
	KindCardGrid     = "card-grid"
	KindContentBlock = "content-block"
	KindCTASection   = "cta-section"
	KindFooter       = "footer"
	KindHero         = "hero"
	KindHighlight    = "highlight"
	KindModal        = "modal"
	KindModalGrid    = "modal-grid"
	KindNavbar       = "navbar"
	KindSection      = "section"
	KindTextContent  = "text-content"
)

// ErrUnknownKind is returned when asked for a kind of component that doesn't
// exist.
var ErrUnknownKind = errors.New("unknown component kind")

var registry = map[string]func() Component{
	KindButton:       func() Component { return &Button{} },
	KindCard:         func() Component { return &Card{} },
	KindCardGrid:     func() Component { return &CardGrid{} },
	KindContentBlock: func() Component { return &ContentBlock{} },
	KindCTASection:   func() Component { return &CTASection{} },
	KindFooter:       func() Component { return &Footer{} },
	KindHero:         func() Component { return &Hero{} },
	KindHighlight:    func() Component { return &Highlight{} },
	KindModal:        func() Component { return &Modal{} },
	KindModalGrid:    func() Component { return &ModalGrid{} },
	KindNavbar:       func() Component { return &Navbar{} },
	KindSection:      func() Component { return &Section{} },
	KindTextContent:  func() Component { return &TextContent{} },
}

// New returns a zero-valued component of the given kind.
func New(kind string) (Component, error) {
	factory, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return factory(), nil
}

// Kinds returns every kind New accepts, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Decoder fills in a component's options.
type Decoder func(into any) error

// Decode builds a component of the given kind with its options filled in by
// decode. A nil decode leaves every option at its default.
func Decode(kind string, decode Decoder) (Component, error) {
	c, err := New(kind)
	if err != nil {
		return nil, err
	}
	if decode == nil {
		return c, nil
	}
	err = decode(c)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s options: %w", kind, err)
	}
	return c, nil
}

// Build returns the markup of a component of the given kind, using the
// DefaultSite.
func Build(ctx context.Context, kind string, decode Decoder) (template.HTML, error) {
	return DefaultSite().Build(ctx, kind, decode)
}

// Build returns the markup of a component of the given kind with its options
// filled in by decode.
func (s *Site) Build(ctx context.Context, kind string, decode Decoder) (template.HTML, error) {
	c, err := Decode(kind, decode)
	if err != nil {
		return "", err
	}
	return s.Render(ctx, c)
}

// FromYAML decodes options from a YAML node. An empty node decodes nothing.
func FromYAML(node *yaml.Node) Decoder {
	return func(into any) error {
		if node == nil || node.IsZero() {
			return nil
		}
		return node.Decode(into)
	}
}

// FromJSON decodes options from a JSON document. Empty input decodes
// nothing.
func FromJSON(raw []byte) Decoder {
	return func(into any) error {
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, into)
	}
}
