package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"projtree/internal/domain"
	"projtree/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.SearchIndex on SQLite. Each config file gets its
// own database under the XDG data directory; the entries table mirrors the
// currently loaded tree and is replaced wholesale on rebuild.
type Index struct {
	db         *sql.DB
	configPath string
	dbPath     string
}

var _ ports.SearchIndex = (*Index)(nil)

// NewIndex creates an unopened index.
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index for the given config file path.
func (idx *Index) Open(configPath string) error {
	idx.configPath = configPath
	idx.dbPath = databasePath(configPath)

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			label TEXT NOT NULL,
			abs_path TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_label ON entries(label);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Rebuild replaces the entries table with the given rows.
func (idx *Index) Rebuild(entries []domain.IndexEntry) error {
	if idx.db == nil {
		return fmt.Errorf("index not open")
	}
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO entries (key, kind, label, abs_path, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.Key, e.Kind.String(), e.Label, e.AbsPath, e.Position); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Search returns entries whose label or path contains the query,
// case-insensitively, in document order. A blank query matches nothing.
func (idx *Index) Search(query string) ([]domain.SearchResult, error) {
	if idx.db == nil {
		return nil, fmt.Errorf("index not open")
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}
	pattern := "%" + escapeLike(q) + "%"
	rows, err := idx.db.Query(`
		SELECT key, kind, label, abs_path
		FROM entries
		WHERE label LIKE ? ESCAPE '\' OR abs_path LIKE ? ESCAPE '\' OR key LIKE ? ESCAPE '\'
		ORDER BY position
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var r domain.SearchResult
		var kind string
		if err := rows.Scan(&r.Key, &kind, &r.Label, &r.AbsPath); err != nil {
			return nil, err
		}
		if kind == "project" {
			r.Kind = domain.KindProject
		} else {
			r.Kind = domain.KindCategory
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// databasePath returns the database path for a config file.
func databasePath(configPath string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "projtree", hashConfigPath(configPath)+".db")
}

// hashConfigPath returns a short hash of the config file path.
func hashConfigPath(configPath string) string {
	h := sha256.Sum256([]byte(configPath))
	return hex.EncodeToString(h[:8])
}

func (idx *Index) updateMeta() error {
	if _, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		return err
	}
	_, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('config_path_hash', ?)`, hashConfigPath(idx.configPath))
	return err
}
