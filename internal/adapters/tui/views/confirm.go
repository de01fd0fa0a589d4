package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/tui/styles"
	"projtree/internal/application/commands"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// ConfirmKeyMap defines key bindings for the removal confirmation
type ConfirmKeyMap struct {
	Confirm key.Binding
	Merge   key.Binding
	Cancel  key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "delete"),
	),
	Merge: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "merge into root"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmModel asks before removing a project or category. For a non-empty
// category the prompt also offers folding its contents into the root
// instead of discarding them.
type ConfirmModel struct {
	repo   ports.ConfigRepository
	target *domain.TreeNode
	width  int
	height int
}

// NewConfirmModel creates a new confirmation model
func NewConfirmModel(repo ports.ConfigRepository) *ConfirmModel {
	return &ConfirmModel{repo: repo}
}

// SetTarget sets the node to remove
func (m *ConfirmModel) SetTarget(node *domain.TreeNode) {
	m.target = node
}

// Init initializes the confirmation view
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e, ok := msg.(errMsg); ok {
		// Nothing to edit here; surface the failure in the browser.
		err := e.err
		return m, tea.Sequence(
			func() tea.Msg { return SwitchToBrowserMsg{} },
			func() tea.Msg { return StatusMsg{Text: err.Error(), IsErr: true} },
		)
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, ConfirmKeys.Cancel):
		return m, func() tea.Msg { return SwitchToBrowserMsg{} }

	case key.Matches(keyMsg, ConfirmKeys.Confirm):
		return m, m.remove(false)

	case key.Matches(keyMsg, ConfirmKeys.Merge):
		if m.offersMerge() {
			return m, m.remove(true)
		}
	}
	return m, nil
}

func (m *ConfirmModel) offersMerge() bool {
	return m.target != nil &&
		m.target.Kind == domain.KindCategory &&
		len(m.target.Children) > 0
}

func (m *ConfirmModel) remove(mergeIntoRoot bool) tea.Cmd {
	target := m.target
	return func() tea.Msg {
		if target == nil {
			return SwitchToBrowserMsg{}
		}
		if target.Kind == domain.KindProject {
			cmd := commands.NewRemoveProjectCommand(m.repo, target.Path, target.Index)
			result, err := cmd.Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return MutationDoneMsg{Message: result.Message}
		}
		cmd := commands.NewRemoveCategoryCommand(m.repo, target.Path, mergeIntoRoot)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return MutationDoneMsg{Message: result.Message}
	}
}

// View renders the confirmation view
func (m *ConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Remove"))
	b.WriteString("\n\n")

	if m.target != nil {
		kind := "project"
		if m.target.Kind == domain.KindCategory {
			kind = "category"
		}
		b.WriteString(styles.InputLabel.Render("Remove " + kind + ":"))
		b.WriteString("\n")
		b.WriteString("  " + m.target.Key())
		b.WriteString("\n\n")

		if m.offersMerge() {
			b.WriteString(styles.WarningMsg.Render("This category is not empty."))
			b.WriteString("\n")
			b.WriteString(styles.MutedText.Render("Its projects and subcategories are discarded unless merged."))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" delete"))
	if m.offersMerge() {
		b.WriteString(styles.HelpSeparator.String())
		b.WriteString(styles.HelpKey.Render("m"))
		b.WriteString(styles.HelpDesc.Render(" merge into root"))
	}
	b.WriteString(styles.HelpSeparator.String())
	b.WriteString(styles.HelpKey.Render("n/esc"))
	b.WriteString(styles.HelpDesc.Render(" cancel"))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *ConfirmModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
