package commands

import (
	"context"
	"errors"
	"testing"

	"projtree/internal/domain"
)

type fakeIndex struct {
	results []domain.SearchResult
	err     error
	queries []string
}

func (f *fakeIndex) Open(string) error                 { return nil }
func (f *fakeIndex) Rebuild([]domain.IndexEntry) error { return nil }
func (f *fakeIndex) Close() error                      { return nil }
func (f *fakeIndex) Search(q string) ([]domain.SearchResult, error) {
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		index   *fakeIndex
		wantErr bool
		errMsg  string
		wantLen int
	}{
		{
			name:  "matches pass through",
			query: "site",
			index: &fakeIndex{results: []domain.SearchResult{
				{Key: "Work.projects[0]", Kind: domain.KindProject, Label: "Site"},
			}},
			wantLen: 1,
		},
		{name: "blank query", query: "   ", index: &fakeIndex{}, wantErr: true, errMsg: "query is required"},
		{name: "index failure", query: "x", index: &fakeIndex{err: errors.New("db locked")}, wantErr: true, errMsg: "search failed"},
		{name: "no matches", query: "zzz", index: &fakeIndex{}, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewSearchCommand(tt.index, tt.query).Execute(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Matches) != tt.wantLen {
				t.Errorf("expected %d matches, got %d", tt.wantLen, len(result.Matches))
			}
			if result.Query != tt.query {
				t.Errorf("query not echoed back: %q", result.Query)
			}
		})
	}
}
