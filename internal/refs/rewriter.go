package refs

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/starford/ehwaz/internal/confirm"
	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/parser"
	"github.com/starford/ehwaz/internal/storage"
)

// Result reports what a rewrite changed.
type Result struct {
	FilesChanged int `json:"files_changed"`
	HitsChanged  int `json:"hits_changed"`
}

// Rewriter applies a new location identifier to every hit the Indexer
// found, after explicit user confirmation.
type Rewriter struct {
	store     storage.Provider
	confirmer confirm.Confirmer
	logger    *slog.Logger
}

// NewRewriter creates a rewriter gated on the given confirmer.
func NewRewriter(store storage.Provider, confirmer confirm.Confirmer, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{store: store, confirmer: confirmer, logger: logger}
}

// Apply rewrites every hit to the new identifier, excluding the single
// hit at the given position (the one in the document the user just
// edited directly). The user is asked once, with a count-of-hits-and-
// documents summary; a decline or timeout performs zero writes and is a
// normal negative result, not an error.
//
// Documents are rewritten sequentially and persisted one at a time, hits
// within a document from last position to first so earlier offsets never
// shift. A write failure aborts, leaving a well-defined prefix of
// documents rewritten.
func (rw *Rewriter) Apply(ctx context.Context, hits map[string][]models.AssetReference, asset, newIdentifier string, exclude *models.Position) (Result, error) {
	remaining := excludePosition(hits, exclude)

	totalHits := 0
	for _, refs := range remaining {
		totalHits += len(refs)
	}
	if totalHits == 0 {
		return Result{}, nil
	}

	summary := fmt.Sprintf("Update %d reference(s) to %s in %d other document(s)?",
		totalHits, path.Base(asset), len(remaining))
	if !rw.confirmer.Confirm(ctx, summary) {
		rw.logger.Info("refs: rewrite declined", slog.String("asset", asset))
		return Result{}, nil
	}

	docs := make([]string, 0, len(remaining))
	for doc := range remaining {
		docs = append(docs, doc)
	}
	sort.Strings(docs)

	var res Result
	for _, doc := range docs {
		changed, err := rw.rewriteDocument(doc, remaining[doc], newIdentifier)
		if err != nil {
			return res, fmt.Errorf("refs: rewrite %s: %w", doc, err)
		}
		if changed > 0 {
			res.FilesChanged++
			res.HitsChanged += changed
		}
	}
	rw.logger.Info("refs: rewrite applied",
		slog.String("asset", asset),
		slog.Int("files", res.FilesChanged),
		slog.Int("hits", res.HitsChanged))
	return res, nil
}

// rewriteDocument replaces each hit's raw markup in the document text and
// persists once after all hits are applied.
func (rw *Rewriter) rewriteDocument(doc string, refs []models.AssetReference, newIdentifier string) (int, error) {
	data, err := rw.store.Read(doc)
	if err != nil {
		return 0, err
	}
	lines := strings.Split(string(data), "\n")

	// Last position first: replacing a hit never shifts hits not yet
	// processed in the same document.
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Line != refs[j].Line {
			return refs[i].Line > refs[j].Line
		}
		return refs[i].Column > refs[j].Column
	})

	changed := 0
	for _, ref := range refs {
		if ref.Line >= len(lines) {
			continue
		}
		line := lines[ref.Line]
		if ref.Column > len(line) || !strings.HasPrefix(line[ref.Column:], ref.Raw) {
			// The document changed since the scan; skip rather than
			// rewriting the wrong span.
			continue
		}
		newRaw := parser.ReplaceTarget(ref.Raw, ref.Target, newIdentifier)
		if newRaw == ref.Raw {
			continue
		}
		lines[ref.Line] = line[:ref.Column] + newRaw + line[ref.Column+len(ref.Raw):]
		changed++
	}

	if changed == 0 {
		return 0, nil
	}
	if err := rw.store.Write(doc, []byte(strings.Join(lines, "\n"))); err != nil {
		return 0, err
	}
	return changed, nil
}

// excludePosition drops the single hit at the excluded position and
// returns the remaining hits, pruning documents left empty.
func excludePosition(hits map[string][]models.AssetReference, exclude *models.Position) map[string][]models.AssetReference {
	out := make(map[string][]models.AssetReference, len(hits))
	excluded := false
	for doc, refs := range hits {
		var kept []models.AssetReference
		for _, ref := range refs {
			if !excluded && exclude != nil && exclude.Matches(ref) {
				excluded = true
				continue
			}
			kept = append(kept, ref)
		}
		if len(kept) > 0 {
			out[doc] = kept
		}
	}
	return out
}
