package sesqui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// collectEmbeds joins the non-empty embedded contents of every Component in
// the tree, in tree order, keeping only the first copy of identical blocks.
func collectEmbeds[T ~string](ctx context.Context, component Component, embedded func(Component) (T, bool)) T {
	var results T
	seen := map[string]struct{}{}
	for _, comp := range getRecursiveComponents(ctx, component) {
		contents, ok := embedded(comp)
		if !ok || contents == "" {
			continue
		}
		sum := sha256.Sum256([]byte(contents))
		checksum := hex.EncodeToString(sum[:])
		if _, ok := seen[checksum]; ok {
			continue
		}
		seen[checksum] = struct{}{}
		if results != "" {
			results += "\n"
		}
		results += contents
	}
	return results
}

// collectLinks returns the URLs linked by every Component in the tree, in
// the order they're first seen.
func collectLinks(ctx context.Context, component Component, linked func(Component) ([]string, bool)) []string {
	var results []string
	seen := map[string]struct{}{}
	for _, comp := range getRecursiveComponents(ctx, component) {
		urls, ok := linked(comp)
		if !ok {
			continue
		}
		for _, url := range urls {
			if _, ok := seen[url]; ok {
				continue
			}
			seen[url] = struct{}{}
			results = append(results, url)
		}
	}
	return results
}
