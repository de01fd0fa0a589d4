package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/tui/styles"
	"projtree/internal/application/commands"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// RenameModel renames a category or moves it under a different parent.
// Leaving the parent field untouched keeps the current parent, so a plain
// rename is just typing a new name.
type RenameModel struct {
	repo    ports.ConfigRepository
	source  *domain.TreeNode
	form    *InputForm
	message string
	width   int
	height  int
}

const (
	fieldNewName = iota
	fieldNewParent
)

// NewRenameModel creates a new rename view model
func NewRenameModel(repo ports.ConfigRepository) *RenameModel {
	return &RenameModel{
		repo: repo,
		form: NewInputForm(
			NewInputField("New name", "", 100),
			NewInputField("New parent (dotted, empty = root)", "", 200),
		),
	}
}

// SetSource sets the category to rename and pre-fills the current values
func (m *RenameModel) SetSource(node *domain.TreeNode) {
	m.source = node
	m.message = ""
	m.form.Reset()
	if node != nil {
		m.form.SetValue(fieldNewName, node.Path.Leaf())
		m.form.SetValue(fieldNewParent, node.Path.Parent().String())
	}
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e, ok := msg.(errMsg); ok {
		m.message = e.err.Error()
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(keyMsg, m.form.Keys.Submit):
			return m, m.rename()
		}
	}
	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *RenameModel) rename() tea.Cmd {
	newName := m.form.Value(fieldNewName)
	newParent := domain.ParseCategoryPath(m.form.Value(fieldNewParent))
	return func() tea.Msg {
		if m.source == nil {
			return errMsg{fmt.Errorf("no category selected")}
		}
		cmd := commands.NewRenameCategoryCommand(m.repo, m.source.Path, newParent, newName)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return MutationDoneMsg{Message: result.Message, Key: domain.CategoryKey(result.NewPath)}
	}
}

// SetMessage sets an error line under the form
func (m *RenameModel) SetMessage(msg string) {
	m.message = msg
}

// View renders the rename view
func (m *RenameModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Rename Category"))
	b.WriteString("\n\n")

	if m.source != nil {
		b.WriteString(styles.InputLabel.Render("Category:"))
		b.WriteString("\n")
		b.WriteString("  " + m.source.Path.String())
		b.WriteString("\n\n")
	}

	for i := range m.form.Fields {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n\n")
	}

	if m.message != "" {
		b.WriteString(styles.ErrorMsg.Render(m.message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("rename"))
	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *RenameModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
