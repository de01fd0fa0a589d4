package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"projtree/internal/adapters/configfile"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

func newTestRepo(t *testing.T) ports.ConfigRepository {
	t.Helper()
	repo := configfile.NewRepository(filepath.Join(t.TempDir(), "projects.json"))
	if err := repo.Load(); err != nil {
		t.Fatalf("loading empty repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAddProjectCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid", label: "Site", path: "~/work/site"},
		{name: "blank label", label: "   ", path: "~/x", wantErr: true, errMsg: "label is required"},
		{name: "blank path", label: "Site", path: "", wantErr: true, errMsg: "path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAddProjectCommand(nil, nil, tt.label, tt.path, "")
			err := c.Validate()
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
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddProjectCommand_Execute(t *testing.T) {
	repo := newTestRepo(t)

	c := NewAddProjectCommand(repo, domain.CategoryPath{"Work"}, "  Site  ", "~/work/site", "🌐")
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Key != "Work.projects[0]" {
		t.Errorf("unexpected key: %q", result.Key)
	}
	if result.Project.Label != "Site" {
		t.Errorf("label should be trimmed, got %q", result.Project.Label)
	}
	if result.Message != "Added Site" {
		t.Errorf("unexpected message: %q", result.Message)
	}

	node, err := repo.Root().NodeByPath(domain.CategoryPath{"Work"})
	if err != nil {
		t.Fatalf("category missing after add: %v", err)
	}
	if len(node.Projects) != 1 || node.Projects[0].Icon != "🌐" {
		t.Errorf("unexpected stored project: %+v", node.Projects)
	}
}

func TestAddProjectCommand_StoresPortablePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	repo := newTestRepo(t)

	c := NewAddProjectCommand(repo, nil, "Deep", filepath.Join(home, "work", "deep"), "")
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Project.Path != "~/work/deep" {
		t.Errorf("expected home-relative form, got %q", result.Project.Path)
	}
}

func TestEditProjectCommand_Execute(t *testing.T) {
	ctx := context.Background()
	work := domain.CategoryPath{"Work"}
	archive := domain.CategoryPath{"Archive"}

	t.Run("update in place", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, work, "Site", "~/work/site")
		mustAdd(t, repo, work, "Beta", "~/work/beta")

		c := NewEditProjectCommand(repo, work, 0, work, "Site v2", "~/work/site2", "")
		result, err := c.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Moved {
			t.Error("same-category edit should not report a move")
		}
		if result.Message != "Updated Site v2" {
			t.Errorf("unexpected message: %q", result.Message)
		}
		node, _ := repo.Root().NodeByPath(work)
		if node.Projects[0].Label != "Site v2" || node.Projects[1].Label != "Beta" {
			t.Errorf("expected in-place update, got %+v", node.Projects)
		}
	})

	t.Run("move to another category", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, work, "Site", "~/work/site")

		c := NewEditProjectCommand(repo, work, 0, archive, "Site", "~/work/site", "")
		result, err := c.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Moved {
			t.Error("cross-category edit should report a move")
		}
		if result.Message != "Moved Site to Archive" {
			t.Errorf("unexpected message: %q", result.Message)
		}
		src, _ := repo.Root().NodeByPath(work)
		if len(src.Projects) != 0 {
			t.Errorf("source still holds %+v", src.Projects)
		}
		dst, err := repo.Root().NodeByPath(archive)
		if err != nil || len(dst.Projects) != 1 {
			t.Errorf("destination missing the project: %v %+v", err, dst)
		}
	})

	t.Run("move to root message", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, work, "Site", "~/work/site")

		c := NewEditProjectCommand(repo, work, 0, nil, "Site", "~/work/site", "")
		result, err := c.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Message != "Moved Site to the root" {
			t.Errorf("unexpected message: %q", result.Message)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, work, "Site", "~/work/site")

		c := NewEditProjectCommand(repo, work, 5, work, "X", "~/x", "")
		if _, err := c.Execute(ctx); err == nil {
			t.Fatal("expected an error for a bad index")
		}
	})
}

func TestRemoveProjectCommand_Execute(t *testing.T) {
	repo := newTestRepo(t)
	work := domain.CategoryPath{"Work"}
	mustAdd(t, repo, work, "Site", "~/work/site")

	c := NewRemoveProjectCommand(repo, work, 0)
	result, err := c.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Message, "Work.projects[0]") {
		t.Errorf("unexpected message: %q", result.Message)
	}
	node, _ := repo.Root().NodeByPath(work)
	if len(node.Projects) != 0 {
		t.Errorf("project still present: %+v", node.Projects)
	}

	if _, err := NewRemoveProjectCommand(repo, work, -1).Execute(context.Background()); err == nil {
		t.Error("expected a validation error for a negative index")
	}
}

func mustAdd(t *testing.T, repo ports.ConfigRepository, path domain.CategoryPath, label, portable string) {
	t.Helper()
	if _, err := NewAddProjectCommand(repo, path, label, portable, "").Execute(context.Background()); err != nil {
		t.Fatalf("seeding %s: %v", label, err)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
