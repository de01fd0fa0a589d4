package domain

import (
	"strings"
	"testing"
)

func TestProjectKey(t *testing.T) {
	tests := []struct {
		name  string
		path  CategoryPath
		index int
		want  string
	}{
		{name: "root", path: nil, index: 2, want: "__root__.projects[2]"},
		{name: "top level", path: CategoryPath{"Work"}, index: 0, want: "Work.projects[0]"},
		{name: "nested", path: CategoryPath{"Work", "Clients"}, index: 1, want: "Work.Clients.projects[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectKey(tt.path, tt.index); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCategoryKey(t *testing.T) {
	if got := CategoryKey(nil); got != RootKey {
		t.Errorf("expected %q for the root, got %q", RootKey, got)
	}
	if got := CategoryKey(CategoryPath{"Work", "Clients"}); got != "Work.Clients" {
		t.Errorf("expected dotted path, got %q", got)
	}
}

func TestParseProjectKey(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantPath  CategoryPath
		wantIndex int
		wantErr   string
	}{
		{name: "root key", key: "__root__.projects[2]", wantPath: nil, wantIndex: 2},
		{name: "simple category", key: "Work.projects[0]", wantPath: CategoryPath{"Work"}, wantIndex: 0},
		{
			// The prefix stays a single segment; keys never encoded nesting.
			name:      "dotted prefix is one segment",
			key:       "Client.App.projects[0]",
			wantPath:  CategoryPath{"Client.App"},
			wantIndex: 0,
		},
		{name: "no projects marker", key: "Work[0]", wantErr: "malformed project key"},
		{name: "missing bracket", key: "Work.projects[0", wantErr: "malformed project key"},
		{name: "non-numeric index", key: "Work.projects[x]", wantErr: "malformed project index"},
		{name: "negative index", key: "Work.projects[-1]", wantErr: "malformed project index"},
		{name: "empty prefix", key: ".projects[0]", wantErr: "malformed project key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, index, err := ParseProjectKey(tt.key)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !path.Equal(tt.wantPath) {
				t.Errorf("expected path %v, got %v", tt.wantPath, path)
			}
			if index != tt.wantIndex {
				t.Errorf("expected index %d, got %d", tt.wantIndex, index)
			}
		})
	}
}

func TestIssueMapForProject(t *testing.T) {
	m := IssueMap{}
	m.Add("Work.projects[1]", "entry is not an object")
	m.Add("Work.projects[1].label", "label must be a string")
	m.Add("Work.projects[1].path", "path must be a string")
	m.Add("Work.projects[0].icon", "icon must be a string")
	m.Add("Tooling", "category value is not an object")

	got := m.ForProject(CategoryPath{"Work"}, 1)
	if len(got) != 3 {
		t.Fatalf("expected 3 issues, got %v", got)
	}
	if got[0] != "entry is not an object" {
		t.Errorf("expected the base-key issue first, got %q", got[0])
	}

	if got := m.ForProject(CategoryPath{"Work"}, 0); len(got) != 1 {
		t.Errorf("expected only the icon issue, got %v", got)
	}
	if got := m.ForProject(CategoryPath{"Work"}, 2); got != nil {
		t.Errorf("expected nil for a clean entry, got %v", got)
	}

	if !m.HasAny() {
		t.Error("HasAny should report true")
	}
	if len(m.ForKey("Tooling")) != 1 {
		t.Errorf("unexpected ForKey result: %v", m.ForKey("Tooling"))
	}
}
