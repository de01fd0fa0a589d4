package application

import (
	"strings"
	"testing"

	"projtree/internal/domain"
)

func TestNormalize_WellFormedDocument(t *testing.T) {
	data := []byte(`{
  "projects": [
    {"label": "Scratch", "path": "~/scratch"}
  ],
  "Work": {
    "projects": [
      {"label": "Site", "path": "~/work/site", "icon": "🌐"},
      {"label": "Beta", "path": "~/work/beta"}
    ],
    "Clients": {
      "projects": [
        {"label": "Alpha", "path": "~/work/alpha"}
      ]
    }
  }
}`)

	root, issues, err := Normalize(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issues.HasAny() {
		t.Errorf("expected a clean document, got issues: %v", issues)
	}
	if len(root.Projects) != 1 || root.Projects[0].Label != "Scratch" {
		t.Errorf("unexpected root projects: %+v", root.Projects)
	}
	work, err := root.NodeByPath(domain.CategoryPath{"Work"})
	if err != nil {
		t.Fatalf("Work category missing: %v", err)
	}
	if len(work.Projects) != 2 || work.Projects[0].Icon != "🌐" {
		t.Errorf("unexpected Work projects: %+v", work.Projects)
	}
	clients, err := root.NodeByPath(domain.CategoryPath{"Work", "Clients"})
	if err != nil {
		t.Fatalf("nested category missing: %v", err)
	}
	if len(clients.Projects) != 1 {
		t.Errorf("unexpected Clients projects: %+v", clients.Projects)
	}
	if root.Projects[0].ID == "" || work.Projects[0].ID == "" {
		t.Error("every project should receive an ID")
	}
	if root.Projects[0].ID == work.Projects[0].ID {
		t.Error("project IDs should be distinct")
	}
}

func TestNormalize_EmptyDocument(t *testing.T) {
	for _, data := range []string{"", "   \n\t"} {
		root, issues, err := Normalize([]byte(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if issues.HasAny() {
			t.Errorf("expected no issues, got %v", issues)
		}
		if root.HasContent() {
			t.Errorf("expected an empty tree, got %+v", root)
		}
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	root, issues, err := Normalize([]byte(`{"Work": `))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if root == nil || root.HasContent() {
		t.Errorf("expected an empty tree, got %+v", root)
	}
	if len(issues.ForKey(domain.RootKey)) == 0 {
		t.Error("expected a root issue recording the parse failure")
	}
}

func TestNormalize_NonObjectRoot(t *testing.T) {
	root, issues, err := Normalize([]byte(`[1, 2, 3]`))
	if err != nil {
		t.Fatalf("expected no error for valid non-object JSON, got %v", err)
	}
	if root.HasContent() {
		t.Errorf("expected an empty tree, got %+v", root)
	}
	got := issues.ForKey(domain.RootKey)
	if len(got) != 1 || !strings.Contains(got[0], "must be a JSON object") {
		t.Errorf("unexpected root issues: %v", got)
	}
}

func TestNormalize_InvalidCategoryDropped(t *testing.T) {
	data := []byte(`{
  "Work": {"projects": [{"label": "Site", "path": "~/s"}]},
  "Broken": 42,
  "AlsoBroken": ["not", "a", "category"]
}`)

	root, issues, err := Normalize(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := root.NodeByPath(domain.CategoryPath{"Work"}); err != nil {
		t.Errorf("valid sibling should survive: %v", err)
	}
	if root.Child("Broken") != nil || root.Child("AlsoBroken") != nil {
		t.Error("invalid categories should be dropped from the tree")
	}
	for _, key := range []string{"Broken", "AlsoBroken"} {
		if len(issues.ForKey(key)) == 0 {
			t.Errorf("expected an issue recorded at %s", key)
		}
	}
}

func TestNormalize_DuplicateCategoryKey(t *testing.T) {
	data := []byte(`{
  "Work": {"projects": [{"label": "First", "path": "~/first"}]},
  "Work": {"projects": [{"label": "Second", "path": "~/second"}]}
}`)

	root, issues, err := Normalize(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	work, err := root.NodeByPath(domain.CategoryPath{"Work"})
	if err != nil {
		t.Fatalf("category missing: %v", err)
	}
	// The last occurrence wins, and the collision is surfaced.
	if len(work.Projects) != 1 || work.Projects[0].Label != "Second" {
		t.Errorf("expected the later occurrence to win, got %+v", work.Projects)
	}
	got := issues.ForKey("Work")
	if len(got) != 1 || !strings.Contains(got[0], "Duplicate category key") {
		t.Errorf("expected a duplicate-key issue at Work, got %v", issues)
	}
}

func TestNormalize_ProjectsNotArray(t *testing.T) {
	root, issues, err := Normalize([]byte(`{"Work": {"projects": {"label": "X"}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	work, err := root.NodeByPath(domain.CategoryPath{"Work"})
	if err != nil {
		t.Fatalf("category missing: %v", err)
	}
	if len(work.Projects) != 0 {
		t.Errorf("expected no projects, got %+v", work.Projects)
	}
	got := issues.ForKey("Work.projects")
	if len(got) != 1 || !strings.Contains(got[0], "must be an array") {
		t.Errorf("unexpected issues: %v", got)
	}
}

func TestNormalize_InvalidProjectsBecomePlaceholders(t *testing.T) {
	data := []byte(`{
  "Work": {
    "projects": [
      {"label": "Site", "path": "~/work/site"},
      {"label": "", "path": 42},
      "not an object",
      {"label": "Iconless", "path": "~/x", "icon": ""}
    ]
  }
}`)

	root, issues, err := Normalize(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	work, err := root.NodeByPath(domain.CategoryPath{"Work"})
	if err != nil {
		t.Fatalf("category missing: %v", err)
	}
	// All four entries survive so indices stay stable.
	if len(work.Projects) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(work.Projects))
	}

	if work.Projects[0].Label != "Site" {
		t.Errorf("valid entry mangled: %+v", work.Projects[0])
	}
	if len(issues.ForProject(domain.CategoryPath{"Work"}, 0)) != 0 {
		t.Errorf("valid entry should have no issues")
	}

	if work.Projects[1].Label != UntitledLabel {
		t.Errorf("expected %q placeholder label, got %q", UntitledLabel, work.Projects[1].Label)
	}
	if work.Projects[1].Path != "" {
		t.Errorf("invalid path should be blank, got %q", work.Projects[1].Path)
	}
	if len(issues.ForKey("Work.projects[1].label")) != 1 || len(issues.ForKey("Work.projects[1].path")) != 1 {
		t.Errorf("expected label and path issues, got %v", issues)
	}

	if work.Projects[2].Label != InvalidLabel {
		t.Errorf("expected %q placeholder, got %q", InvalidLabel, work.Projects[2].Label)
	}
	if len(issues.ForKey("Work.projects[2]")) != 1 {
		t.Errorf("expected an entry-level issue, got %v", issues)
	}

	if work.Projects[3].Icon != "" {
		t.Errorf("blank icon should be dropped, got %q", work.Projects[3].Icon)
	}
	if work.Projects[3].Label != "Iconless" {
		t.Errorf("icon problem must not disturb other fields: %+v", work.Projects[3])
	}
	if len(issues.ForKey("Work.projects[3].icon")) != 1 {
		t.Errorf("expected an icon issue, got %v", issues)
	}
}

func TestNormalize_RoundTripStable(t *testing.T) {
	data := []byte(`{
  "projects": [
    {
      "label": "Scratch",
      "path": "~/scratch"
    }
  ],
  "Work": {
    "projects": [
      {
        "label": "Site",
        "path": "~/work/site"
      }
    ],
    "Clients": {}
  }
}
`)

	root, issues, err := Normalize(data)
	if err != nil || issues.HasAny() {
		t.Fatalf("fixture should be clean: err=%v issues=%v", err, issues)
	}
	out, err := domain.EncodeConfig(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != string(data) {
		t.Errorf("encode did not round-trip:\n--- in ---\n%s--- out ---\n%s", data, out)
	}
}
