// Package scan implements the document scan passes that run the
// classify → translate → re-encode pipeline over embedded-asset
// occurrences. Content mode rewrites a document's persisted text; render
// mode rewrites only the resolved targets of a rendered view.
package scan

import (
	"log/slog"
	"strings"

	"github.com/starford/ehwaz/internal/location"
	"github.com/starford/ehwaz/internal/parser"
	"github.com/starford/ehwaz/internal/profile"
	"github.com/starford/ehwaz/internal/translate"
)

// Registry is the slice of the profile registry the passes need.
type Registry interface {
	List() []profile.Profile
	FindCurrent() *profile.Profile
}

// Pass runs scan passes against the current profile registry state.
type Pass struct {
	registry Registry
	logger   *slog.Logger
}

// NewPass creates a scan pass bound to the registry.
func NewPass(registry Registry, logger *slog.Logger) *Pass {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pass{registry: registry, logger: logger}
}

// Content rewrites every embed in text whose target belongs to a foreign
// computer profile, returning the new text and the number of conversions.
// Unclassifiable targets, remote targets, and targets already in the
// live convention are left untouched, so running the pass twice over the
// same content converts nothing the second time.
func (p *Pass) Content(text string) (string, int) {
	profiles := p.registry.List()
	current := p.registry.FindCurrent()

	embeds := parser.ExtractEmbeds(text)
	if len(embeds) == 0 {
		return text, 0
	}

	lines := strings.Split(text, "\n")
	converted := 0

	// Within a line, replace from the last embed to the first so earlier
	// column offsets stay valid.
	for i := len(embeds) - 1; i >= 0; i-- {
		e := embeds[i]
		newIdent, changed := translateTarget(e.Target, profiles, current)
		if !changed {
			continue
		}
		line := lines[e.Line]
		if !strings.HasPrefix(line[e.Column:], e.Raw) {
			// Position no longer matches the text; leave it alone rather
			// than guessing.
			continue
		}
		newRaw := parser.ReplaceTarget(e.Raw, e.Target, newIdent)
		lines[e.Line] = line[:e.Column] + newRaw + line[e.Column+len(e.Raw):]
		converted++
		p.logger.Debug("scan: converted embed",
			slog.Int("line", e.Line),
			slog.String("from", e.Target),
			slog.String("to", newIdent))
	}

	if converted == 0 {
		return text, 0
	}
	return strings.Join(lines, "\n"), converted
}

// translateTarget runs one embed target through decode → classify →
// translate → encode. changed is false whenever any stage declines:
// remote identifiers, unclassifiable paths, missing current profile, or
// a translation that proves to be the identity.
func translateTarget(target string, profiles []profile.Profile, current *profile.Profile) (string, bool) {
	if location.IsRemote(target) {
		return target, false
	}
	decoded := location.Decode(target)
	normalized := strings.ReplaceAll(decoded, `\`, "/")

	src := translate.Classify(normalized, profiles, current)
	if src == nil {
		return target, false
	}
	translated := translate.From(normalized, *src, current)
	if translated == normalized {
		return target, false
	}
	encoded := location.Encode(translated)
	if encoded == target {
		return target, false
	}
	return encoded, true
}
