// Package storage defines the document-store abstraction the engine
// mutates through. Paths are always vault-relative with forward slashes.
package storage

import "github.com/starford/ehwaz/internal/models"

// Provider is the interface for vault document operations.
type Provider interface {
	// List returns metadata for every .md document under dir (relative to vault root).
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the document at path.
	Read(path string) ([]byte, error)
	// Write atomically persists content to path.
	Write(path string, content []byte) error
	// Delete removes the document at path.
	Delete(path string) error
	// Move renames oldPath to newPath within the vault.
	Move(oldPath, newPath string) error
	// Root returns the absolute vault root path.
	Root() string
}
