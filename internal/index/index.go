package index

// EmbedIndex defines the interface for embed-index operations. Consumers
// depend on this interface rather than the concrete *DB type so tests can
// substitute fakes.
type EmbedIndex interface {
	UpsertDocument(d DocumentRow, embeds []EmbedRow) error
	DeleteDocument(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	AllPaths() (map[string]struct{}, error)
	DocumentsReferencing(asset string) ([]string, error)
	ReferenceCounts() (map[string]int, error)
	Close() error
}

// Verify *DB satisfies EmbedIndex at compile time.
var _ EmbedIndex = (*DB)(nil)
