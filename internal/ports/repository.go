package ports

import "projtree/internal/domain"

// ConfigRepository defines the interface for the config tree engine: a
// loaded tree plus the operations the CLI, TUI, and MCP surfaces consume.
type ConfigRepository interface {
	// Lifecycle
	Load() error
	Save() error
	Close() error
	ConfigPath() string

	// Read side
	Root() *domain.RootConfig
	Issues() domain.IssueMap
	ListChildren(ref *domain.TreeNode) []*domain.TreeNode
	BuildTree() (*domain.TreeNode, error)
	Categories() []domain.CategoryRef
	ResolvePath(p domain.Project) string

	// Mutations (each persists and reloads before returning)
	AddProject(path domain.CategoryPath, p domain.Project) error
	UpdateProject(source domain.CategoryPath, index int, dest domain.CategoryPath, p domain.Project) error
	RemoveProject(path domain.CategoryPath, index int) error
	AddCategory(path domain.CategoryPath) error
	RenameCategory(oldPath, newParent domain.CategoryPath, newName string) error
	RemoveCategory(path domain.CategoryPath, mergeIntoRoot bool) error

	// Change notification
	Subscribe(fn func())
	StartWatching() error
}
