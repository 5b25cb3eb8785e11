package components

import (
	"context"

	"impractical.co/sesqui/dom"
)

// The RenderX functions mount a single component with the DefaultSite. A
// selector that matches nothing is a no-op.

func RenderNavbar(ctx context.Context, doc *dom.Document, selector string, navbar Navbar) *Mounted {
	return Mount(ctx, doc, selector, &navbar)
}

func RenderHero(ctx context.Context, doc *dom.Document, selector string, hero Hero) *Mounted {
	return Mount(ctx, doc, selector, &hero)
}

func RenderCardGrid(ctx context.Context, doc *dom.Document, selector string, grid CardGrid) *Mounted {
	return Mount(ctx, doc, selector, &grid)
}

func RenderSection(ctx context.Context, doc *dom.Document, selector string, section Section) *Mounted {
	return Mount(ctx, doc, selector, &section)
}

func RenderFooter(ctx context.Context, doc *dom.Document, selector string, footer Footer) *Mounted {
	return Mount(ctx, doc, selector, &footer)
}

func RenderContentBlock(ctx context.Context, doc *dom.Document, selector string, block ContentBlock) *Mounted {
	return Mount(ctx, doc, selector, &block)
}

func RenderCTASection(ctx context.Context, doc *dom.Document, selector string, cta CTASection) *Mounted {
	return Mount(ctx, doc, selector, &cta)
}

func RenderHighlight(ctx context.Context, doc *dom.Document, selector string, highlight Highlight) *Mounted {
	return Mount(ctx, doc, selector, &highlight)
}

func RenderTextContent(ctx context.Context, doc *dom.Document, selector string, text TextContent) *Mounted {
	return Mount(ctx, doc, selector, &text)
}

// RenderModal mounts a modal and wires up its open and close behavior.
func RenderModal(ctx context.Context, doc *dom.Document, selector string, modal Modal) *Mounted {
	return Mount(ctx, doc, selector, &modal)
}

// RenderModalGrid mounts a grid of modals, wiring up each of them.
func RenderModalGrid(ctx context.Context, doc *dom.Document, selector string, grid ModalGrid) *Mounted {
	return Mount(ctx, doc, selector, &grid)
}
