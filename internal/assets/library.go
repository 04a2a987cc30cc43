// Package assets defines the boundary to the managed asset library and
// the pure-text identifier scanning the engine owns itself.
package assets

import (
	"context"

	"github.com/starford/ehwaz/internal/parser"
)

// Info is the library's metadata for one managed asset.
type Info struct {
	CanonicalName    string `json:"canonical_name"`
	Extension        string `json:"extension"`
	OriginalFilePath string `json:"original_file_path,omitempty"`
}

// Library is the managed-asset-library collaborator. Implementations
// (HTTP client, test fakes) live outside the engine; only the lookup
// surface is consumed here.
type Library interface {
	// ResolveAsset returns metadata for an asset identifier, or
	// apperr.ErrNotFound when the library does not know it.
	ResolveAsset(ctx context.Context, id string) (*Info, error)
}

// ExtractIdentifiers returns the deduplicated embed targets found in raw
// document text, in document order. This is plain text scanning, so it is
// owned by the engine rather than the library client.
func ExtractIdentifiers(text string) []string {
	embeds := parser.ExtractEmbeds(text)
	seen := make(map[string]struct{}, len(embeds))
	var out []string
	for _, e := range embeds {
		if _, ok := seen[e.Target]; ok {
			continue
		}
		seen[e.Target] = struct{}{}
		out = append(out, e.Target)
	}
	return out
}
