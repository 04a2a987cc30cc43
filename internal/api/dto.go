package api

import (
	"github.com/starford/ehwaz/internal/engine"
	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/profile"
	"github.com/starford/ehwaz/internal/scan"
)

// ComputerItem is one registered computer in API responses. IsCurrent is
// derived at response time, never persisted.
type ComputerItem struct {
	profile.Profile
	IsCurrent bool `json:"is_current"`
}

// RegisterComputerRequest is the request body for registering a computer.
type RegisterComputerRequest struct {
	DisplayName string `json:"display_name"`
	Platform    string `json:"platform"`
	Username    string `json:"username"`
	SubPath     string `json:"sub_path,omitempty"`
}

// UpdateComputerRequest is the request body for editing a computer's sub-path.
type UpdateComputerRequest struct {
	DisplayName string `json:"display_name"`
	SubPath     string `json:"sub_path"`
}

// TranslateRequest asks for one path to be classified and translated.
type TranslateRequest struct {
	Path string `json:"path"`
}

// TranslateResponse carries the translation outcome. ProfileID is empty
// when the path is unclassifiable ("no translation performed").
type TranslateResponse struct {
	Path       string `json:"path"`
	Translated string `json:"translated"`
	Changed    bool   `json:"changed"`
	ProfileID  string `json:"profile_id,omitempty"`
}

// EncodeRequest / DecodeRequest convert between paths and identifiers.
type EncodeRequest struct {
	Path string `json:"path"`
}

// DecodeRequest is the body for decoding a location identifier.
type DecodeRequest struct {
	Identifier string `json:"identifier"`
}

// ConvertDocumentRequest names the vault document to convert in place.
type ConvertDocumentRequest struct {
	Path string `json:"path"`
}

// MoveDocumentRequest renames a vault document.
type MoveDocumentRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ViewRequest names the document to render.
type ViewRequest struct {
	Path string `json:"path"`
}

// ViewResponse is a document's rendered view after one render-mode pass:
// the embed nodes with converted targets, and the conversion count. The
// persisted document is untouched.
type ViewResponse struct {
	Nodes     []*scan.EmbedNode `json:"nodes"`
	Converted int               `json:"converted"`
}

// ScanContentRequest runs the content-mode pass over raw text without
// touching the vault.
type ScanContentRequest struct {
	Content string `json:"content"`
}

// ScanContentResponse is the converted text and conversion count.
type ScanContentResponse struct {
	Content   string `json:"content"`
	Converted int    `json:"converted"`
}

// IdentifiersRequest extracts embed targets from raw text.
type IdentifiersRequest struct {
	Content string `json:"content"`
}

// IdentifiersResponse lists the deduplicated embed targets, annotated
// with asset-library metadata where available.
type IdentifiersResponse struct {
	Identifiers []engine.AssetIdentifier `json:"identifiers"`
}

// ReferencesResponse lists hits per document for one asset.
type ReferencesResponse struct {
	Asset     string                             `json:"asset"`
	Documents map[string][]models.AssetReference `json:"documents"`
	Total     int                                `json:"total"`
}

// ReplaceReferencesRequest is the body for the confirm-then-rewrite flow.
type ReplaceReferencesRequest struct {
	Asset         string           `json:"asset"`
	NewIdentifier string           `json:"new_identifier"`
	Exclude       *models.Position `json:"exclude,omitempty"`
}

// ConfirmationRequest answers an outstanding confirmation.
type ConfirmationRequest struct {
	Accept bool `json:"accept"`
}
