package commands

import (
	"context"
	"fmt"
	"strings"

	"projtree/internal/application"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// SearchResult contains the result of a search
type SearchResult struct {
	Query   string
	Matches []domain.SearchResult
}

// SearchCommand queries the search index for categories and projects
type SearchCommand struct {
	index ports.SearchIndex
	Query string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(index ports.SearchIndex, query string) *SearchCommand {
	return &SearchCommand{index: index, Query: query}
}

// Validate checks the query
func (c *SearchCommand) Validate() error {
	if strings.TrimSpace(c.Query) == "" {
		return &application.ValidationError{
			Field:   "query",
			Message: "search query is required",
		}
	}
	return nil
}

// Execute runs the search
func (c *SearchCommand) Execute(ctx context.Context) (*SearchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	matches, err := c.index.Search(c.Query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return &SearchResult{Query: c.Query, Matches: matches}, nil
}
