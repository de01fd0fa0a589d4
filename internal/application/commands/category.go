package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"projtree/internal/application"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// AddCategoryResult contains the result of creating a category
type AddCategoryResult struct {
	Path    domain.CategoryPath
	Message string
}

// AddCategoryCommand creates an empty category, materializing missing
// intermediate categories along the path.
type AddCategoryCommand struct {
	repo ports.ConfigRepository
	Path domain.CategoryPath
}

// NewAddCategoryCommand creates a new AddCategoryCommand
func NewAddCategoryCommand(repo ports.ConfigRepository, path domain.CategoryPath) *AddCategoryCommand {
	return &AddCategoryCommand{repo: repo, Path: path}
}

// Validate checks the category path
func (c *AddCategoryCommand) Validate() error {
	if len(c.Path) == 0 {
		return &application.ValidationError{
			Field:   "path",
			Message: "category path is required",
		}
	}
	for _, seg := range c.Path {
		if err := validateCategoryName(seg); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the add category command
func (c *AddCategoryCommand) Execute(ctx context.Context) (*AddCategoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.repo.AddCategory(c.Path); err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return nil, &application.CollisionError{Path: c.Path.String()}
		}
		return nil, fmt.Errorf("failed to add category: %w", err)
	}
	return &AddCategoryResult{
		Path:    c.Path,
		Message: fmt.Sprintf("Created %s", c.Path.String()),
	}, nil
}

// RenameCategoryResult contains the result of renaming or moving a category
type RenameCategoryResult struct {
	NewPath domain.CategoryPath
	Message string
}

// RenameCategoryCommand re-attaches the subtree at OldPath under NewParent
// with NewName, covering both plain renames and moves.
type RenameCategoryCommand struct {
	repo      ports.ConfigRepository
	OldPath   domain.CategoryPath
	NewParent domain.CategoryPath
	NewName   string
}

// NewRenameCategoryCommand creates a new RenameCategoryCommand
func NewRenameCategoryCommand(repo ports.ConfigRepository, oldPath, newParent domain.CategoryPath, newName string) *RenameCategoryCommand {
	return &RenameCategoryCommand{
		repo:      repo,
		OldPath:   oldPath,
		NewParent: newParent,
		NewName:   newName,
	}
}

// Validate checks the rename operation
func (c *RenameCategoryCommand) Validate() error {
	if len(c.OldPath) == 0 {
		return &application.ValidationError{
			Field:   "oldPath",
			Message: "source category path is required",
		}
	}
	return validateCategoryName(c.NewName)
}

// Execute runs the rename category command
func (c *RenameCategoryCommand) Execute(ctx context.Context) (*RenameCategoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	newPath := c.NewParent.Child(c.NewName)
	if err := c.repo.RenameCategory(c.OldPath, c.NewParent, c.NewName); err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryExists):
			return nil, &application.CollisionError{Path: newPath.String()}
		case errors.Is(err, domain.ErrMoveInsideSelf):
			return nil, &application.MoveError{
				SourcePath: c.OldPath.String(),
				DestPath:   newPath.String(),
				Reason:     "destination is inside the source category",
			}
		}
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}
	return &RenameCategoryResult{
		NewPath: newPath,
		Message: fmt.Sprintf("Renamed %s to %s", c.OldPath.String(), newPath.String()),
	}, nil
}

// RemoveCategoryResult contains the result of removing a category
type RemoveCategoryResult struct {
	Merged  bool
	Message string
}

// RemoveCategoryCommand deletes the subtree at Path. With MergeIntoRoot,
// the subtree's projects and child categories fold into the root instead
// of being discarded.
type RemoveCategoryCommand struct {
	repo          ports.ConfigRepository
	Path          domain.CategoryPath
	MergeIntoRoot bool
}

// NewRemoveCategoryCommand creates a new RemoveCategoryCommand
func NewRemoveCategoryCommand(repo ports.ConfigRepository, path domain.CategoryPath, mergeIntoRoot bool) *RemoveCategoryCommand {
	return &RemoveCategoryCommand{repo: repo, Path: path, MergeIntoRoot: mergeIntoRoot}
}

// Validate checks the remove operation
func (c *RemoveCategoryCommand) Validate() error {
	if len(c.Path) == 0 {
		return &application.ValidationError{
			Field:   "path",
			Message: "category path is required",
		}
	}
	return nil
}

// Execute runs the remove category command
func (c *RemoveCategoryCommand) Execute(ctx context.Context) (*RemoveCategoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.repo.RemoveCategory(c.Path, c.MergeIntoRoot); err != nil {
		return nil, fmt.Errorf("failed to remove category: %w", err)
	}
	msg := fmt.Sprintf("Removed %s", c.Path.String())
	if c.MergeIntoRoot {
		msg = fmt.Sprintf("Removed %s, contents merged into the root", c.Path.String())
	}
	return &RemoveCategoryResult{Merged: c.MergeIntoRoot, Message: msg}, nil
}

// validateCategoryName rejects names that cannot round-trip through the
// document: blank, the reserved "projects" key, or names containing the
// dot used by path addressing.
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "category name is required",
		}
	}
	if name == domain.ReservedKey {
		return &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("%q is reserved for the project list", domain.ReservedKey),
		}
	}
	if strings.Contains(name, ".") {
		return &application.ValidationError{
			Field:   "name",
			Message: "category names cannot contain dots",
		}
	}
	return nil
}
