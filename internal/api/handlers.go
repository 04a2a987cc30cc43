package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ehwaz/internal/apperr"
	"github.com/starford/ehwaz/internal/confirm"
	"github.com/starford/ehwaz/internal/engine"
	"github.com/starford/ehwaz/internal/profile"
)

// Handler holds API route handlers.
type Handler struct {
	eng      *engine.Engine
	confirms *confirm.Manager
}

// NewHandler creates a new Handler. confirms may be nil when the
// confirmation flow is wired elsewhere.
func NewHandler(eng *engine.Engine, confirms *confirm.Manager) *Handler {
	return &Handler{eng: eng, confirms: confirms}
}

// ListComputers handles GET /computers.
func (h *Handler) ListComputers(w http.ResponseWriter, _ *http.Request) {
	reg := h.eng.Registry()
	live := reg.Live()
	profiles := reg.List()
	items := make([]ComputerItem, len(profiles))
	for i, p := range profiles {
		items[i] = ComputerItem{Profile: p, IsCurrent: p.Is(live)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"computers": items})
}

// RegisterComputer handles POST /computers.
func (h *Handler) RegisterComputer(w http.ResponseWriter, r *http.Request) {
	var req RegisterComputerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	platform := profile.Platform(req.Platform)
	if !platform.Valid() || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("platform and username are required"))
		return
	}
	p, err := h.eng.Registry().Add(profile.Profile{
		DisplayName: req.DisplayName,
		Platform:    platform,
		Username:    req.Username,
		SubPath:     req.SubPath,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateIdentity) {
			writeJSON(w, http.StatusConflict, errorBody("computer identity already registered"))
			return
		}
		slog.Error("register computer failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, ComputerItem{Profile: p, IsCurrent: p.Is(h.eng.Registry().Live())})
}

// UpdateComputer handles PUT /computers/{id} (display name and sub-path edits).
func (h *Handler) UpdateComputer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateComputerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	reg := h.eng.Registry()
	p, err := reg.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	if req.DisplayName != "" {
		p.DisplayName = req.DisplayName
	}
	p.SubPath = req.SubPath
	if err := reg.Update(p); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, ComputerItem{Profile: p, IsCurrent: p.Is(reg.Live())})
}

// RemoveComputer handles DELETE /computers/{id}.
func (h *Handler) RemoveComputer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.eng.Registry().Remove(id); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Translate handles POST /translate.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	resp := TranslateResponse{Path: req.Path, Translated: h.eng.Translate(req.Path)}
	resp.Changed = resp.Translated != req.Path
	if src := h.eng.Classify(req.Path); src != nil {
		resp.ProfileID = src.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// EncodeLocation handles POST /locations/encode.
func (h *Handler) EncodeLocation(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"identifier": h.eng.EncodeLocation(req.Path)})
}

// DecodeLocation handles POST /locations/decode.
func (h *Handler) DecodeLocation(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("identifier is required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": h.eng.DecodeLocation(req.Identifier)})
}

// ConvertDocument handles POST /documents/convert.
func (h *Handler) ConvertDocument(w http.ResponseWriter, r *http.Request) {
	var req ConvertDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	converted, err := h.eng.ConvertDocument(req.Path)
	if err != nil {
		if errors.Is(err, apperr.ErrPersistence) {
			writeJSON(w, http.StatusInternalServerError, errorBody("document write failed"))
			return
		}
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"converted": converted})
}

// MoveDocument handles POST /documents/move.
func (h *Handler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	var req MoveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.From == "" || req.To == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("from and to are required"))
		return
	}
	if err := h.eng.MoveDocument(req.From, req.To); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocument handles DELETE /documents?path=….
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'path' is required"))
		return
	}
	if err := h.eng.DeleteDocument(path); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DocumentView handles POST /documents/view: builds the rendered view of
// a document, runs the render-mode pass over it, and returns the nodes.
func (h *Handler) DocumentView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	view, err := h.eng.ParseView(req.Path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	converted := h.eng.ScanView(view)
	writeJSON(w, http.StatusOK, ViewResponse{Nodes: view.Nodes, Converted: converted})
}

// ScanContent handles POST /documents/scan: the content-mode pass over
// raw text, nothing persisted.
func (h *Handler) ScanContent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req ScanContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	content, converted := h.eng.ScanContent(req.Content)
	writeJSON(w, http.StatusOK, ScanContentResponse{Content: content, Converted: converted})
}

// Identifiers handles POST /documents/identifiers: pure-text extraction
// of embed targets, annotated through the asset library when one is wired.
func (h *Handler) Identifiers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req IdentifiersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	writeJSON(w, http.StatusOK, IdentifiersResponse{Identifiers: h.eng.AssetIdentifiers(r.Context(), req.Content)})
}

// FindReferences handles GET /references?asset=….
func (h *Handler) FindReferences(w http.ResponseWriter, r *http.Request) {
	asset := r.URL.Query().Get("asset")
	if asset == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'asset' is required"))
		return
	}
	hits, err := h.eng.FindReferences(asset)
	if err != nil {
		slog.Error("find references failed", slog.String("asset", asset), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	total := 0
	for _, refs := range hits {
		total += len(refs)
	}
	writeJSON(w, http.StatusOK, ReferencesResponse{Asset: asset, Documents: hits, Total: total})
}

// ReferencesSummary handles GET /references/summary.
func (h *Handler) ReferencesSummary(w http.ResponseWriter, _ *http.Request) {
	sum, err := h.eng.ReferenceSummary()
	if err != nil {
		slog.Error("reference summary failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ReplaceReferences handles POST /references/replace. The call blocks on
// the confirmation port, so with the SSE confirmer wired the client is
// expected to answer the confirm.requested event before the timeout.
func (h *Handler) ReplaceReferences(w http.ResponseWriter, r *http.Request) {
	var req ReplaceReferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Asset == "" || req.NewIdentifier == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("asset and new_identifier are required"))
		return
	}
	res, err := h.eng.ReplaceAllReferences(r.Context(), req.Asset, req.NewIdentifier, req.Exclude)
	if err != nil {
		slog.Error("replace references failed",
			slog.String("asset", req.Asset),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("rewrite aborted"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ResolveConfirmation handles POST /confirmations/{id}.
func (h *Handler) ResolveConfirmation(w http.ResponseWriter, r *http.Request) {
	if h.confirms == nil {
		writeJSON(w, http.StatusNotFound, errorBody("confirmations not enabled"))
		return
	}
	id := chi.URLParam(r, "id")
	var req ConfirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if !h.confirms.Resolve(id, req.Accept) {
		writeJSON(w, http.StatusNotFound, errorBody("unknown or expired confirmation"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
