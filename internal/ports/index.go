package ports

import "projtree/internal/domain"

// SearchIndex defines the interface for the sqlite-backed search index.
// The index mirrors the currently loaded tree and is rebuilt wholesale on
// every load.
type SearchIndex interface {
	Open(configPath string) error
	Rebuild(entries []domain.IndexEntry) error
	Search(query string) ([]domain.SearchResult, error)
	Close() error
}
