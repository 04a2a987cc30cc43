// Package refs finds every reference to a local asset across the vault
// and rewrites them atomically per document once the asset's canonical
// identifier changes.
package refs

import (
	"net/url"
	"path"
	"strings"

	"github.com/starford/ehwaz/internal/location"
)

// Resolve maps a raw embed target to the vault-relative asset path it
// points at, using the host's link-resolution rules: vault-absolute
// targets resolve from the root, everything else resolves relative to
// the embedding document. Remote and file-URI targets are not vault
// assets and resolve to "".
func Resolve(raw, fromDoc string) string {
	if raw == "" || location.IsRemote(raw) || strings.HasPrefix(raw, "file://") {
		return ""
	}
	target := raw
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	target = strings.ReplaceAll(target, `\`, "/")

	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}

	joined := path.Join(path.Dir(fromDoc), target)
	// A relative link cannot escape the vault; clean away any remaining
	// parent traversal instead of producing a rooted path.
	for strings.HasPrefix(joined, "../") {
		joined = strings.TrimPrefix(joined, "../")
	}
	return joined
}

// Matches reports whether a raw embed target, resolved from its document,
// refers to the given asset. Comparison follows case-insensitive
// filesystem semantics, and a bare-name target (wikilink style, no path
// separator) matches the asset's basename.
func Matches(raw, resolved, asset string) bool {
	if resolved == "" || asset == "" {
		return false
	}
	if strings.EqualFold(resolved, asset) {
		return true
	}
	if !strings.Contains(raw, "/") {
		return strings.EqualFold(path.Base(resolved), path.Base(asset))
	}
	return false
}
