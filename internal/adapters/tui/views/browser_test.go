package views

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/configfile"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

func newBrowserFixture(t *testing.T) (*BrowserModel, ports.ConfigRepository) {
	t.Helper()
	repo := configfile.NewRepository(filepath.Join(t.TempDir(), "projects.json"))
	if err := repo.Load(); err != nil {
		t.Fatalf("loading repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	seed := []struct {
		path  domain.CategoryPath
		label string
	}{
		{domain.CategoryPath{"Work"}, "Site"},
		{domain.CategoryPath{"Work", "Clients"}, "Alpha"},
		{domain.CategoryPath{"Tooling"}, "CLI"},
		{nil, "Scratch"},
	}
	for _, s := range seed {
		if err := repo.AddProject(s.path, domain.Project{Label: s.label, Path: "~/" + s.label}); err != nil {
			t.Fatalf("seeding %s: %v", s.label, err)
		}
	}

	m := NewBrowserModel(repo)
	m.Update(m.loadTree())
	return m, repo
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func selectedKey(m *BrowserModel) string {
	node := m.selectedNode()
	if node == nil {
		return ""
	}
	return node.Key()
}

func TestBrowserInitialTree(t *testing.T) {
	m, _ := newBrowserFixture(t)

	// Collapsed tree: the two root categories and the loose root project.
	if len(m.flatNodes) != 3 {
		t.Fatalf("expected 3 visible nodes, got %d", len(m.flatNodes))
	}
	wantKeys := []string{"Work", "Tooling", "__root__.projects[0]"}
	for i, want := range wantKeys {
		if got := m.flatNodes[i].Key(); got != want {
			t.Errorf("node %d: expected %q, got %q", i, want, got)
		}
	}
	if m.cursor != 0 {
		t.Errorf("cursor should start at the top, got %d", m.cursor)
	}
}

func TestBrowserNavigation(t *testing.T) {
	m, _ := newBrowserFixture(t)

	m.Update(keyPress('j'))
	if selectedKey(m) != "Tooling" {
		t.Errorf("expected Tooling after one step down, got %q", selectedKey(m))
	}

	// The cursor clamps at both ends.
	m.Update(keyPress('j'))
	m.Update(keyPress('j'))
	m.Update(keyPress('j'))
	if selectedKey(m) != "__root__.projects[0]" {
		t.Errorf("cursor ran past the end: %q", selectedKey(m))
	}
	for i := 0; i < 5; i++ {
		m.Update(keyPress('k'))
	}
	if selectedKey(m) != "Work" {
		t.Errorf("cursor ran past the top: %q", selectedKey(m))
	}
}

func TestBrowserExpandCollapse(t *testing.T) {
	m, _ := newBrowserFixture(t)

	m.Update(keyPress('l'))
	// Work now shows its project and its child category.
	if len(m.flatNodes) != 5 {
		t.Fatalf("expected 5 visible nodes after expand, got %d", len(m.flatNodes))
	}
	if m.flatNodes[1].Key() != "Work.projects[0]" {
		t.Errorf("expected the project right under Work, got %q", m.flatNodes[1].Key())
	}
	if m.flatNodes[2].Key() != "Work.Clients" {
		t.Errorf("expected the child category after the projects, got %q", m.flatNodes[2].Key())
	}

	m.Update(keyPress('h'))
	if len(m.flatNodes) != 3 {
		t.Errorf("expected the subtree hidden after collapse, got %d nodes", len(m.flatNodes))
	}

	// h on a project moves to the owning category instead.
	m.Update(keyPress('l'))
	m.Update(keyPress('j'))
	if selectedKey(m) != "Work.projects[0]" {
		t.Fatalf("setup: expected the project selected, got %q", selectedKey(m))
	}
	m.Update(keyPress('h'))
	if selectedKey(m) != "Work" {
		t.Errorf("expected the cursor on the parent category, got %q", selectedKey(m))
	}
}

func TestBrowserEnterOnProjectOpensEditor(t *testing.T) {
	m, _ := newBrowserFixture(t)

	m.Update(keyPress('j'))
	m.Update(keyPress('j'))
	if selectedKey(m) != "__root__.projects[0]" {
		t.Fatalf("setup: expected the root project selected, got %q", selectedKey(m))
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(OpenEditorMsg)
	if !ok {
		t.Fatalf("expected OpenEditorMsg, got %T", cmd())
	}
	if msg.Path == "" {
		t.Error("editor message should carry the resolved path")
	}
}

func TestBrowserExpansionSurvivesReload(t *testing.T) {
	m, repo := newBrowserFixture(t)

	m.Update(keyPress('l')) // expand Work
	m.Update(keyPress('j'))
	m.Update(keyPress('j')) // onto Work.Clients

	// A change lands on disk behind the view's back.
	if err := repo.AddProject(domain.CategoryPath{"Zoo"}, domain.Project{Label: "New", Path: "~/new"}); err != nil {
		t.Fatalf("mutating: %v", err)
	}
	cmd := m.Reload()
	m.Update(cmd())

	// Work is still expanded and the cursor is back on the same node.
	if selectedKey(m) != "Work.Clients" {
		t.Errorf("cursor lost across reload: %q", selectedKey(m))
	}
	found := false
	for _, n := range m.flatNodes {
		if n.Key() == "Zoo" {
			found = true
		}
	}
	if !found {
		t.Error("reload did not pick up the new category")
	}
}

func TestBrowserJumpToKey(t *testing.T) {
	m, _ := newBrowserFixture(t)

	m.Update(JumpToKeyMsg{Key: "Work.Clients.projects[0]"})

	if selectedKey(m) != "Work.Clients.projects[0]" {
		t.Errorf("expected the cursor on the target, got %q", selectedKey(m))
	}
	// Ancestors were expanded on the way down.
	if !m.expanded["Work"] || !m.expanded["Work.Clients"] {
		t.Errorf("expected ancestors expanded, got %v", m.expanded)
	}
}
