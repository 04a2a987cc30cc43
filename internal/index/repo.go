package index

import (
	"fmt"
	"path"
	"time"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path      string
	Title     string
	Checksum  string
	UpdatedAt time.Time
}

// EmbedRow is one embed occurrence as stored in the index. Resolved is
// the vault-relative asset path the target resolves to from its source
// document, or empty for remote and file-URI targets.
type EmbedRow struct {
	Line     int
	Column   int
	Raw      string
	Target   string
	Resolved string
}

// UpsertDocument inserts or replaces a document and its embeds within a
// transaction.
func (db *DB) UpsertDocument(d DocumentRow, embeds []EmbedRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO documents (path, title, checksum, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, d.Path, d.Title, d.Checksum, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	_, _ = tx.Exec(`DELETE FROM embeds WHERE source = ?`, d.Path)
	if len(embeds) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO embeds (source, line, col, raw, target, resolved) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare embed insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range embeds {
			if _, err := stmt.Exec(d.Path, e.Line, e.Column, e.Raw, e.Target, e.Resolved); err != nil {
				return fmt.Errorf("index: insert embed: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document and its embeds.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM embeds WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a document, or empty string
// if the document is not indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM documents WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not indexed is fine
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// AllPaths returns every indexed document path.
func (db *DB) AllPaths() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT path FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}

// DocumentsReferencing returns the documents whose embeds may resolve to
// the given vault-relative asset. The match is deliberately generous
// (basename suffix, case-insensitive LIKE): callers re-parse candidates
// and verify, so over-selection only costs a parse.
func (db *DB) DocumentsReferencing(asset string) ([]string, error) {
	base := path.Base(asset)
	rows, err := db.conn.Query(`
		SELECT DISTINCT source FROM embeds
		WHERE resolved = ? OR resolved LIKE '%' || ?
	`, asset, base)
	if err != nil {
		return nil, fmt.Errorf("index: documents referencing: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReferenceCounts returns, per resolved asset, how many embeds reference
// it across the vault. Unresolved (remote) targets are skipped.
func (db *DB) ReferenceCounts() (map[string]int, error) {
	rows, err := db.conn.Query(`
		SELECT resolved, COUNT(*) FROM embeds
		WHERE resolved != ''
		GROUP BY resolved
	`)
	if err != nil {
		return nil, fmt.Errorf("index: reference counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var asset string
		var n int
		if err := rows.Scan(&asset, &n); err != nil {
			return nil, err
		}
		out[asset] = n
	}
	return out, rows.Err()
}
