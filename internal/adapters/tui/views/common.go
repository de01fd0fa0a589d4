package views

import "projtree/internal/domain"

// Messages shared between views and the app shell.

// SwitchToBrowserMsg returns to the tree browser.
type SwitchToBrowserMsg struct{}

// SwitchToHelpMsg shows the help view.
type SwitchToHelpMsg struct{}

// SwitchToSearchMsg shows the search view.
type SwitchToSearchMsg struct{}

// SwitchToProjectFormMsg opens the project form. A nil Source adds a new
// project under Parent; otherwise the form edits Source.
type SwitchToProjectFormMsg struct {
	Source *domain.TreeNode
	Parent domain.CategoryPath
}

// SwitchToCategoryFormMsg opens the new-category form under Parent.
type SwitchToCategoryFormMsg struct {
	Parent domain.CategoryPath
}

// SwitchToMoveMsg opens the move view for a project.
type SwitchToMoveMsg struct {
	Source *domain.TreeNode
}

// SwitchToRenameMsg opens the rename/move view for a category.
type SwitchToRenameMsg struct {
	Source *domain.TreeNode
}

// SwitchToConfirmMsg opens the removal confirmation for a node.
type SwitchToConfirmMsg struct {
	Target *domain.TreeNode
}

// OpenEditorMsg asks the shell to open a path in the user's editor.
type OpenEditorMsg struct {
	Path string
}

// StatusMsg carries a transient status line for the browser.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// ConfigReloadedMsg signals that the repository reloaded, either after a
// mutation or because the file changed on disk.
type ConfigReloadedMsg struct{}

// JumpToKeyMsg moves the browser cursor to a structural key, expanding
// ancestors as needed.
type JumpToKeyMsg struct {
	Key string
}
