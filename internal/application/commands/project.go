package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"projtree/internal/application"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// AddProjectResult contains the result of adding a project
type AddProjectResult struct {
	Key     string
	Project domain.Project
	Message string
}

// AddProjectCommand appends a project bookmark to a category
type AddProjectCommand struct {
	repo     ports.ConfigRepository
	Category domain.CategoryPath
	Label    string
	Path     string
	Icon     string
}

// NewAddProjectCommand creates a new AddProjectCommand
func NewAddProjectCommand(repo ports.ConfigRepository, category domain.CategoryPath, label, path, icon string) *AddProjectCommand {
	return &AddProjectCommand{
		repo:     repo,
		Category: category,
		Label:    label,
		Path:     path,
		Icon:     icon,
	}
}

// Validate checks the project fields
func (c *AddProjectCommand) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return &application.ValidationError{
			Field:   "label",
			Message: "project label is required",
		}
	}
	if strings.TrimSpace(c.Path) == "" {
		return &application.ValidationError{
			Field:   "path",
			Message: "project path is required",
		}
	}
	return nil
}

// Execute runs the add project command
func (c *AddProjectCommand) Execute(ctx context.Context) (*AddProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := domain.Project{
		Label: strings.TrimSpace(c.Label),
		Path:  portableForm(c.Path),
		Icon:  strings.TrimSpace(c.Icon),
	}
	if err := c.repo.AddProject(c.Category, p); err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}

	node, err := c.repo.Root().NodeByPath(c.Category)
	index := 0
	if err == nil && len(node.Projects) > 0 {
		index = len(node.Projects) - 1
	}
	return &AddProjectResult{
		Key:     domain.ProjectKey(c.Category, index),
		Project: p,
		Message: fmt.Sprintf("Added %s", p.Label),
	}, nil
}

// EditProjectResult contains the result of editing or moving a project
type EditProjectResult struct {
	Project domain.Project
	Moved   bool
	Message string
}

// EditProjectCommand replaces the project at Source[Index]. When the
// destination differs from the source the entry moves category; otherwise
// it is updated in place.
type EditProjectCommand struct {
	repo        ports.ConfigRepository
	Source      domain.CategoryPath
	Index       int
	Destination domain.CategoryPath
	Label       string
	Path        string
	Icon        string
}

// NewEditProjectCommand creates a new EditProjectCommand
func NewEditProjectCommand(repo ports.ConfigRepository, source domain.CategoryPath, index int, destination domain.CategoryPath, label, path, icon string) *EditProjectCommand {
	return &EditProjectCommand{
		repo:        repo,
		Source:      source,
		Index:       index,
		Destination: destination,
		Label:       label,
		Path:        path,
		Icon:        icon,
	}
}

// Validate checks the edit operation
func (c *EditProjectCommand) Validate() error {
	if c.Index < 0 {
		return &application.ValidationError{
			Field:   "index",
			Message: "project index must be non-negative",
		}
	}
	if strings.TrimSpace(c.Label) == "" {
		return &application.ValidationError{
			Field:   "label",
			Message: "project label is required",
		}
	}
	if strings.TrimSpace(c.Path) == "" {
		return &application.ValidationError{
			Field:   "path",
			Message: "project path is required",
		}
	}
	return nil
}

// Execute runs the edit project command
func (c *EditProjectCommand) Execute(ctx context.Context) (*EditProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := domain.Project{
		Label: strings.TrimSpace(c.Label),
		Path:  portableForm(c.Path),
		Icon:  strings.TrimSpace(c.Icon),
	}
	if err := c.repo.UpdateProject(c.Source, c.Index, c.Destination, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	moved := !c.Source.Equal(c.Destination)
	msg := fmt.Sprintf("Updated %s", p.Label)
	if moved {
		msg = fmt.Sprintf("Moved %s to %s", p.Label, categoryDisplay(c.Destination))
	}
	return &EditProjectResult{Project: p, Moved: moved, Message: msg}, nil
}

// RemoveProjectResult contains the result of removing a project
type RemoveProjectResult struct {
	Message string
}

// RemoveProjectCommand deletes the project at Category[Index]
type RemoveProjectCommand struct {
	repo     ports.ConfigRepository
	Category domain.CategoryPath
	Index    int
}

// NewRemoveProjectCommand creates a new RemoveProjectCommand
func NewRemoveProjectCommand(repo ports.ConfigRepository, category domain.CategoryPath, index int) *RemoveProjectCommand {
	return &RemoveProjectCommand{repo: repo, Category: category, Index: index}
}

// Validate checks the remove operation
func (c *RemoveProjectCommand) Validate() error {
	if c.Index < 0 {
		return &application.ValidationError{
			Field:   "index",
			Message: "project index must be non-negative",
		}
	}
	return nil
}

// Execute runs the remove project command
func (c *RemoveProjectCommand) Execute(ctx context.Context) (*RemoveProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.repo.RemoveProject(c.Category, c.Index); err != nil {
		return nil, fmt.Errorf("failed to remove project: %w", err)
	}
	return &RemoveProjectResult{
		Message: fmt.Sprintf("Removed %s", domain.ProjectKey(c.Category, c.Index)),
	}, nil
}

// portableForm converts an absolute path to its home-relative portable
// form; anything else is stored as given.
func portableForm(path string) string {
	p := strings.TrimSpace(path)
	if filepath.IsAbs(p) {
		home, err := os.UserHomeDir()
		if err == nil {
			return domain.ToPortablePath(p, home)
		}
	}
	return p
}

func categoryDisplay(path domain.CategoryPath) string {
	if len(path) == 0 {
		return "the root"
	}
	return path.String()
}
