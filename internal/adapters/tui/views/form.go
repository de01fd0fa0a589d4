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

// MutationDoneMsg reports a completed mutation back to the shell. Key, when
// set, is the structural key the browser should land on.
type MutationDoneMsg struct {
	Message string
	Key     string
}

// ProjectFormModel is the add/edit form for a project bookmark. All inputs
// are collected before any mutation runs, so cancelling at any point leaves
// the tree untouched.
type ProjectFormModel struct {
	repo    ports.ConfigRepository
	source  *domain.TreeNode // nil when adding
	parent  domain.CategoryPath
	form    *InputForm
	message string
	width   int
	height  int
}

const (
	fieldLabel = iota
	fieldPath
	fieldIcon
)

// NewProjectFormModel creates a new project form
func NewProjectFormModel(repo ports.ConfigRepository) *ProjectFormModel {
	return &ProjectFormModel{
		repo: repo,
		form: NewInputForm(
			NewInputField("Label", "My project", 100),
			NewInputField("Path", "~/code/my-project", 300),
			NewInputField("Icon (optional)", "", 10),
		),
	}
}

// SetTarget prepares the form: a nil source adds under parent, a project
// source pre-fills the fields for editing in place.
func (m *ProjectFormModel) SetTarget(source *domain.TreeNode, parent domain.CategoryPath) {
	m.source = source
	m.parent = parent
	m.message = ""
	m.form.Reset()
	if source != nil {
		m.form.SetValue(fieldLabel, source.Name)
		m.form.SetValue(fieldPath, source.PortablePath)
		m.form.SetValue(fieldIcon, source.Icon)
	}
}

// Init initializes the form
func (m *ProjectFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the project form
func (m *ProjectFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e, ok := msg.(errMsg); ok {
		m.message = e.err.Error()
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(keyMsg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}
	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *ProjectFormModel) submit() tea.Cmd {
	label := m.form.Value(fieldLabel)
	path := m.form.Value(fieldPath)
	icon := m.form.Value(fieldIcon)

	return func() tea.Msg {
		if m.source == nil {
			cmd := commands.NewAddProjectCommand(m.repo, m.parent, label, path, icon)
			result, err := cmd.Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return MutationDoneMsg{Message: result.Message, Key: result.Key}
		}
		cmd := commands.NewEditProjectCommand(m.repo, m.source.Path, m.source.Index, m.source.Path, label, path, icon)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return MutationDoneMsg{Message: result.Message, Key: m.source.Key()}
	}
}

// SetMessage sets an error line under the form
func (m *ProjectFormModel) SetMessage(msg string) {
	m.message = msg
}

// View renders the project form
func (m *ProjectFormModel) View() string {
	var b strings.Builder

	title := "New Project"
	if m.source != nil {
		title = "Edit Project"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("in " + categoryLabel(m.parent)))
	b.WriteString("\n\n")

	for i := range m.form.Fields {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n\n")
	}

	if m.message != "" {
		b.WriteString(styles.ErrorMsg.Render(m.message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("save"))
	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *ProjectFormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CategoryFormModel is the new-category form: a single name field under a
// fixed parent.
type CategoryFormModel struct {
	repo    ports.ConfigRepository
	parent  domain.CategoryPath
	form    *InputForm
	message string
	width   int
	height  int
}

// NewCategoryFormModel creates a new category form
func NewCategoryFormModel(repo ports.ConfigRepository) *CategoryFormModel {
	return &CategoryFormModel{
		repo: repo,
		form: NewInputForm(
			NewInputField("Name", "Clients", 100),
		),
	}
}

// SetParent sets the parent category for the new entry
func (m *CategoryFormModel) SetParent(parent domain.CategoryPath) {
	m.parent = parent
	m.message = ""
	m.form.Reset()
}

// Init initializes the form
func (m *CategoryFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the category form
func (m *CategoryFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e, ok := msg.(errMsg); ok {
		m.message = e.err.Error()
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(keyMsg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}
	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *CategoryFormModel) submit() tea.Cmd {
	name := m.form.Value(0)
	return func() tea.Msg {
		cmd := commands.NewAddCategoryCommand(m.repo, m.parent.Child(name))
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return MutationDoneMsg{Message: result.Message, Key: domain.CategoryKey(result.Path)}
	}
}

// SetMessage sets an error line under the form
func (m *CategoryFormModel) SetMessage(msg string) {
	m.message = msg
}

// View renders the category form
func (m *CategoryFormModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Category"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("in " + categoryLabel(m.parent)))
	b.WriteString("\n\n")

	b.WriteString(m.form.RenderField(0))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(styles.ErrorMsg.Render(m.message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("create"))
	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *CategoryFormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func categoryLabel(path domain.CategoryPath) string {
	if len(path) == 0 {
		return "the root"
	}
	return path.String()
}
