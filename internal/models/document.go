// Package models defines the domain types for Ehwaz.
package models

import "time"

// DocumentMetadata is a lightweight representation returned by list operations.
type DocumentMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Embed is one embedded-asset occurrence inside a document's text.
// Line and Column are zero-based; Raw is the exact matched substring
// (the full embed markup), used for safe in-place replacement.
type Embed struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Raw    string `json:"raw"`
	Target string `json:"target"`
	Alt    string `json:"alt,omitempty"`
}

// AssetReference is an Embed located in a specific document whose target
// resolved to a known asset. Computed fresh on each scan, never persisted.
type AssetReference struct {
	Document string `json:"document"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Raw      string `json:"raw"`
	Target   string `json:"target"`
}

// Position identifies one embed occurrence, used to exclude the hit the
// user just edited directly from a bulk rewrite.
type Position struct {
	Document string `json:"document"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Matches reports whether the position identifies the given reference.
func (p Position) Matches(ref AssetReference) bool {
	return p.Document == ref.Document && p.Line == ref.Line && p.Column == ref.Column
}
