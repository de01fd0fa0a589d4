package commands

import (
	"context"
	"errors"
	"testing"

	"projtree/internal/application"
	"projtree/internal/domain"
)

func TestAddCategoryCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		path    domain.CategoryPath
		wantErr bool
		errMsg  string
	}{
		{name: "valid", path: domain.CategoryPath{"Work", "Clients"}},
		{name: "empty path", path: nil, wantErr: true, errMsg: "path is required"},
		{name: "blank segment", path: domain.CategoryPath{"Work", "  "}, wantErr: true, errMsg: "name is required"},
		{name: "reserved segment", path: domain.CategoryPath{"projects"}, wantErr: true, errMsg: "reserved"},
		{name: "dotted segment", path: domain.CategoryPath{"a.b"}, wantErr: true, errMsg: "cannot contain dots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAddCategoryCommand(nil, tt.path).Validate()
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

func TestAddCategoryCommand_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	result, err := NewAddCategoryCommand(repo, domain.CategoryPath{"Work", "Clients"}).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "Created Work.Clients" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if _, err := repo.Root().NodeByPath(domain.CategoryPath{"Work", "Clients"}); err != nil {
		t.Errorf("category missing after create: %v", err)
	}

	// Creating the same path again collides.
	_, err = NewAddCategoryCommand(repo, domain.CategoryPath{"Work", "Clients"}).Execute(ctx)
	var collision *application.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	if collision.Path != "Work.Clients" {
		t.Errorf("unexpected collision path: %q", collision.Path)
	}
}

func TestRenameCategoryCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		oldPath domain.CategoryPath
		newName string
		wantErr bool
		errMsg  string
	}{
		{name: "valid", oldPath: domain.CategoryPath{"Work"}, newName: "Projects2024"},
		{name: "missing source", oldPath: nil, newName: "X", wantErr: true, errMsg: "source category path is required"},
		{name: "blank name", oldPath: domain.CategoryPath{"Work"}, newName: " ", wantErr: true, errMsg: "name is required"},
		{name: "reserved name", oldPath: domain.CategoryPath{"Work"}, newName: "projects", wantErr: true, errMsg: "reserved"},
		{name: "dotted name", oldPath: domain.CategoryPath{"Work"}, newName: "a.b", wantErr: true, errMsg: "cannot contain dots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRenameCategoryCommand(nil, tt.oldPath, nil, tt.newName).Validate()
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

func TestRenameCategoryCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("rename", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, domain.CategoryPath{"Work"}, "Site", "~/work/site")

		c := NewRenameCategoryCommand(repo, domain.CategoryPath{"Work"}, nil, "Jobs")
		result, err := c.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.NewPath.Equal(domain.CategoryPath{"Jobs"}) {
			t.Errorf("unexpected new path: %v", result.NewPath)
		}
		node, err := repo.Root().NodeByPath(domain.CategoryPath{"Jobs"})
		if err != nil || len(node.Projects) != 1 {
			t.Errorf("renamed category lost its contents: %v %+v", err, node)
		}
	})

	t.Run("collision", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, domain.CategoryPath{"Work"}, "Site", "~/s")
		mustAdd(t, repo, domain.CategoryPath{"Play"}, "Game", "~/g")

		_, err := NewRenameCategoryCommand(repo, domain.CategoryPath{"Work"}, nil, "Play").Execute(ctx)
		var collision *application.CollisionError
		if !errors.As(err, &collision) {
			t.Fatalf("expected CollisionError, got %v", err)
		}
	})

	t.Run("move inside self", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, domain.CategoryPath{"Work", "Clients"}, "Alpha", "~/a")

		c := NewRenameCategoryCommand(repo, domain.CategoryPath{"Work"}, domain.CategoryPath{"Work", "Clients"}, "Work")
		_, err := c.Execute(ctx)
		var move *application.MoveError
		if !errors.As(err, &move) {
			t.Fatalf("expected MoveError, got %v", err)
		}
		if !contains(move.Reason, "inside the source category") {
			t.Errorf("unexpected reason: %q", move.Reason)
		}
	})
}

func TestRemoveCategoryCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("discard", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, domain.CategoryPath{"Work"}, "Site", "~/s")

		result, err := NewRemoveCategoryCommand(repo, domain.CategoryPath{"Work"}, false).Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Merged || result.Message != "Removed Work" {
			t.Errorf("unexpected result: %+v", result)
		}
		if len(repo.Root().Projects) != 0 {
			t.Errorf("discard should not move projects to the root: %+v", repo.Root().Projects)
		}
	})

	t.Run("merge into root", func(t *testing.T) {
		repo := newTestRepo(t)
		mustAdd(t, repo, domain.CategoryPath{"Work"}, "Site", "~/s")

		result, err := NewRemoveCategoryCommand(repo, domain.CategoryPath{"Work"}, true).Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Merged || !contains(result.Message, "merged into the root") {
			t.Errorf("unexpected result: %+v", result)
		}
		if len(repo.Root().Projects) != 1 {
			t.Errorf("expected the project at the root, got %+v", repo.Root().Projects)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		repo := newTestRepo(t)
		if _, err := NewRemoveCategoryCommand(repo, domain.CategoryPath{"Nope"}, false).Execute(ctx); err == nil {
			t.Fatal("expected an error for a missing category")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := NewRemoveCategoryCommand(nil, nil, false).Execute(ctx); err == nil {
			t.Fatal("expected a validation error")
		}
	})
}
