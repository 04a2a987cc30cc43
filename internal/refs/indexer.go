package refs

import (
	"log/slog"
	"sort"

	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/parser"
	"github.com/starford/ehwaz/internal/storage"
)

// CandidateSource narrows the set of documents worth parsing. The embed
// index implements it; a nil source falls back to scanning every document.
type CandidateSource interface {
	DocumentsReferencing(asset string) ([]string, error)
}

// Indexer scans documents for embeds that resolve to a specific asset.
// Hits are computed fresh on every call: the candidate source only prunes
// documents, positions always come from the text on disk.
type Indexer struct {
	store      storage.Provider
	candidates CandidateSource
	logger     *slog.Logger
}

// NewIndexer creates a reference indexer. candidates may be nil.
func NewIndexer(store storage.Provider, candidates CandidateSource, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{store: store, candidates: candidates, logger: logger}
}

// FindAll returns, per document path, the embed hits whose resolved
// target is the given vault-relative asset. Documents without hits are
// absent from the map.
func (ix *Indexer) FindAll(asset string) (map[string][]models.AssetReference, error) {
	docs, err := ix.candidateDocs(asset)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]models.AssetReference)
	for _, doc := range docs {
		data, err := ix.store.Read(doc)
		if err != nil {
			ix.logger.Warn("refs: read failed",
				slog.String("document", doc),
				slog.String("error", err.Error()))
			continue
		}
		for _, e := range parser.ExtractEmbeds(string(data)) {
			resolved := Resolve(e.Target, doc)
			if !Matches(e.Target, resolved, asset) {
				continue
			}
			out[doc] = append(out[doc], models.AssetReference{
				Document: doc,
				Line:     e.Line,
				Column:   e.Column,
				Raw:      e.Raw,
				Target:   e.Target,
			})
		}
	}
	return out, nil
}

// candidateDocs returns the documents to parse, sorted for determinism.
func (ix *Indexer) candidateDocs(asset string) ([]string, error) {
	if ix.candidates != nil {
		docs, err := ix.candidates.DocumentsReferencing(asset)
		if err == nil {
			sort.Strings(docs)
			return docs, nil
		}
		ix.logger.Warn("refs: candidate lookup failed, falling back to full scan",
			slog.String("error", err.Error()))
	}
	metas, err := ix.store.List("")
	if err != nil {
		return nil, err
	}
	docs := make([]string, 0, len(metas))
	for _, m := range metas {
		docs = append(docs, m.Path)
	}
	sort.Strings(docs)
	return docs, nil
}
