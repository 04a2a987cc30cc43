// Package engine is the caller-facing facade over the translation and
// reference-consistency components: classify, translate, encode/decode,
// the document scan passes, and the confirm-then-rewrite flow.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/ehwaz/internal/apperr"
	"github.com/starford/ehwaz/internal/assets"
	"github.com/starford/ehwaz/internal/index"
	"github.com/starford/ehwaz/internal/location"
	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/profile"
	"github.com/starford/ehwaz/internal/refs"
	"github.com/starford/ehwaz/internal/scan"
	"github.com/starford/ehwaz/internal/storage"
	"github.com/starford/ehwaz/internal/translate"
)

// ConvertedCallback is invoked after a document's persisted text was
// rewritten by a conversion pass.
type ConvertedCallback func(path string, converted int)

// RewrittenCallback is invoked after a confirmed reference rewrite
// changed at least one document.
type RewrittenCallback func(asset string, files, hits int)

// Engine wires the registry, scan passes, and reference rewriter together
// and owns the self-write guard for opportunistic conversion.
type Engine struct {
	store    storage.Provider
	registry *profile.Registry
	pass     *scan.Pass
	indexer  *refs.Indexer
	rewriter *refs.Rewriter
	index    index.EmbedIndex
	library  assets.Library
	logger   *slog.Logger

	autoConvert bool
	onConverted ConvertedCallback
	onRewritten RewrittenCallback

	mu          sync.Mutex
	lastMutated string
}

// Config collects the engine's collaborators.
type Config struct {
	Store       storage.Provider
	Registry    *profile.Registry
	Indexer     *refs.Indexer
	Rewriter    *refs.Rewriter
	Index       index.EmbedIndex
	Library     assets.Library
	Logger      *slog.Logger
	AutoConvert bool
	OnConverted ConvertedCallback
	OnRewritten RewrittenCallback
}

// New creates an engine from its collaborators.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:       cfg.Store,
		registry:    cfg.Registry,
		pass:        scan.NewPass(cfg.Registry, logger),
		indexer:     cfg.Indexer,
		rewriter:    cfg.Rewriter,
		index:       cfg.Index,
		library:     cfg.Library,
		logger:      logger,
		autoConvert: cfg.AutoConvert,
		onConverted: cfg.OnConverted,
		onRewritten: cfg.OnRewritten,
	}
}

// Registry returns the profile registry the engine runs against.
func (e *Engine) Registry() *profile.Registry {
	return e.registry
}

// Classify returns the registered profile whose convention produced the
// path, or nil when the path is unclassifiable.
func (e *Engine) Classify(path string) *profile.Profile {
	return translate.Classify(path, e.registry.List(), e.registry.FindCurrent())
}

// Translate rewrites a foreign path into the live computer's convention,
// returning the input unchanged when no translation applies.
func (e *Engine) Translate(path string) string {
	return translate.Translate(path, e.registry.List(), e.registry.FindCurrent())
}

// EncodeLocation converts a decoded path into a location identifier.
func (e *Engine) EncodeLocation(path string) string {
	return location.Encode(path)
}

// DecodeLocation converts a location identifier into a decoded path.
func (e *Engine) DecodeLocation(identifier string) string {
	return location.Decode(identifier)
}

// ScanContent runs the content-mode pass over raw text without
// persisting anything.
func (e *Engine) ScanContent(text string) (string, int) {
	return e.pass.Content(text)
}

// ScanView runs the render-mode pass over a rendered view.
func (e *Engine) ScanView(view *scan.View) int {
	return e.pass.Render(view)
}

// ParseView builds a rendered view for a vault document.
func (e *Engine) ParseView(path string) (*scan.View, error) {
	data, err := e.store.Read(path)
	if err != nil {
		return nil, err
	}
	return scan.ParseView(string(data)), nil
}

// ConvertDocument runs the content-mode pass over a persisted document
// and writes the result back when anything changed. The write is recorded
// in the self-write guard so the save it causes does not re-trigger an
// opportunistic conversion.
func (e *Engine) ConvertDocument(path string) (int, error) {
	data, err := e.store.Read(path)
	if err != nil {
		return 0, err
	}
	newText, converted := e.pass.Content(string(data))
	if converted == 0 {
		return 0, nil
	}

	e.markMutated(path)
	if err := e.store.Write(path, []byte(newText)); err != nil {
		e.clearMutated(path)
		return 0, fmt.Errorf("engine: persist %s: %w (%w)", path, err, apperr.ErrPersistence)
	}

	e.logger.Info("engine: document converted",
		slog.String("path", path),
		slog.Int("embeds", converted))
	if e.onConverted != nil {
		e.onConverted(path, converted)
	}
	return converted, nil
}

// AutoConvert is the watcher hook for opportunistic conversion. It skips
// the event immediately following the engine's own save of the same
// document, and swallows errors: a failed opportunistic pass only logs.
func (e *Engine) AutoConvert(path string) {
	if !e.autoConvert {
		return
	}
	if e.consumeMutated(path) {
		return
	}
	if _, err := e.ConvertDocument(path); err != nil {
		e.logger.Warn("engine: auto-convert failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

// AssetIdentifier is one embed target found in raw text, annotated with
// the asset library's metadata when the library knows it.
type AssetIdentifier struct {
	Identifier string       `json:"identifier"`
	Info       *assets.Info `json:"info,omitempty"`
}

// AssetIdentifiers extracts the deduplicated embed targets from raw text.
// With an asset library configured, each identifier the library resolves
// carries its metadata; lookup failures leave the annotation empty.
func (e *Engine) AssetIdentifiers(ctx context.Context, text string) []AssetIdentifier {
	ids := assets.ExtractIdentifiers(text)
	out := make([]AssetIdentifier, len(ids))
	for i, id := range ids {
		out[i] = AssetIdentifier{Identifier: id}
		if e.library == nil {
			continue
		}
		info, err := e.library.ResolveAsset(ctx, id)
		if err != nil {
			continue
		}
		out[i].Info = info
	}
	return out
}

// FindReferences returns every embed hit across the vault that resolves
// to the given vault-relative asset.
func (e *Engine) FindReferences(asset string) (map[string][]models.AssetReference, error) {
	return e.indexer.FindAll(asset)
}

// ReplaceAllReferences rewrites every reference to asset with the new
// location identifier, excluding the optionally-supplied already-handled
// position, after user confirmation. A declined or timed-out confirmation
// resolves to a zero result.
func (e *Engine) ReplaceAllReferences(ctx context.Context, asset, newIdentifier string, exclude *models.Position) (refs.Result, error) {
	hits, err := e.indexer.FindAll(asset)
	if err != nil {
		return refs.Result{}, err
	}
	res, err := e.rewriter.Apply(ctx, hits, asset, newIdentifier, exclude)
	if err != nil {
		return res, err
	}
	if res.HitsChanged > 0 && e.onRewritten != nil {
		e.onRewritten(asset, res.FilesChanged, res.HitsChanged)
	}
	return res, nil
}

// ReferenceSummary is the vault-wide view the embed index maintains: the
// number of indexed documents and, per resolved asset, how many embeds
// reference it.
type ReferenceSummary struct {
	Documents int            `json:"documents"`
	Assets    map[string]int `json:"assets"`
}

// ReferenceSummary reports reference statistics from the embed index. An
// engine built without an index returns an empty summary.
func (e *Engine) ReferenceSummary() (ReferenceSummary, error) {
	sum := ReferenceSummary{Assets: map[string]int{}}
	if e.index == nil {
		return sum, nil
	}
	paths, err := e.index.AllPaths()
	if err != nil {
		return sum, fmt.Errorf("engine: reference summary: %w", err)
	}
	counts, err := e.index.ReferenceCounts()
	if err != nil {
		return sum, fmt.Errorf("engine: reference summary: %w", err)
	}
	sum.Documents = len(paths)
	sum.Assets = counts
	return sum, nil
}

// MoveDocument renames a vault document. The embed index catches up
// through the watcher's rename reconciliation, so no index work happens
// here.
func (e *Engine) MoveDocument(oldPath, newPath string) error {
	if err := e.store.Move(oldPath, newPath); err != nil {
		return err
	}
	e.clearMutated(oldPath)
	e.logger.Info("engine: document moved",
		slog.String("from", oldPath),
		slog.String("to", newPath))
	return nil
}

// DeleteDocument removes a vault document; the watcher prunes its index
// rows when the remove event arrives.
func (e *Engine) DeleteDocument(path string) error {
	if err := e.store.Delete(path); err != nil {
		return err
	}
	e.clearMutated(path)
	e.logger.Info("engine: document deleted", slog.String("path", path))
	return nil
}

func (e *Engine) markMutated(path string) {
	e.mu.Lock()
	e.lastMutated = path
	e.mu.Unlock()
}

func (e *Engine) clearMutated(path string) {
	e.mu.Lock()
	if e.lastMutated == path {
		e.lastMutated = ""
	}
	e.mu.Unlock()
}

// consumeMutated reports whether path is the document the engine just
// wrote, clearing the guard either way so only the immediately following
// event is suppressed.
func (e *Engine) consumeMutated(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	hit := e.lastMutated == path
	e.lastMutated = ""
	return hit
}
