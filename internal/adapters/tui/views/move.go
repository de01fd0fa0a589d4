package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/tui/styles"
	"projtree/internal/application/commands"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// MoveKeyMap defines key bindings for the move view
type MoveKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var MoveKeys = MoveKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "move"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// MoveModel moves a project to a different category. The moved entry keeps
// its label, path, and icon, and lands at the end of the destination list.
type MoveModel struct {
	repo       ports.ConfigRepository
	source     *domain.TreeNode
	destInput  textinput.Model
	candidates []string
	message    string
	messageErr bool
	width      int
	height     int
}

// NewMoveModel creates a new move view model
func NewMoveModel(repo ports.ConfigRepository) *MoveModel {
	destInput := textinput.New()
	destInput.Placeholder = "Work.Clients (empty for the root)"
	destInput.CharLimit = 200

	return &MoveModel{
		repo:      repo,
		destInput: destInput,
	}
}

// SetSource sets the project to move
func (m *MoveModel) SetSource(node *domain.TreeNode) {
	m.source = node
	m.message = ""
	m.messageErr = false
	m.destInput.SetValue("")
	m.destInput.Focus()

	m.candidates = nil
	for _, ref := range m.repo.Categories() {
		m.candidates = append(m.candidates, ref.Path.String())
	}
}

// matchingCandidates returns existing category paths matching the typed
// destination, capped for display.
func (m *MoveModel) matchingCandidates() []string {
	typed := strings.ToLower(strings.TrimSpace(m.destInput.Value()))
	var out []string
	for _, c := range m.candidates {
		if typed == "" || strings.Contains(strings.ToLower(c), typed) {
			out = append(out, c)
		}
		if len(out) == 6 {
			break
		}
	}
	return out
}

// Init initializes the move view
func (m *MoveModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the move view
func (m *MoveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		m.messageErr = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, MoveKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, MoveKeys.Submit):
			return m, m.move()
		}
	}

	var cmd tea.Cmd
	m.destInput, cmd = m.destInput.Update(msg)
	return m, cmd
}

func (m *MoveModel) move() tea.Cmd {
	destination := domain.ParseCategoryPath(strings.TrimSpace(m.destInput.Value()))
	return func() tea.Msg {
		if m.source == nil {
			return errMsg{fmt.Errorf("no project selected")}
		}
		cmd := commands.NewEditProjectCommand(m.repo,
			m.source.Path, m.source.Index, destination,
			m.source.Name, m.source.PortablePath, m.source.Icon,
		)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return MutationDoneMsg{Message: result.Message}
	}
}

// SetMessage sets a message to display
func (m *MoveModel) SetMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

// View renders the move view
func (m *MoveModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Move Project"))
	b.WriteString("\n\n")

	if m.source != nil {
		b.WriteString(styles.InputLabel.Render("Project:"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s  %s", m.source.Name, styles.PathHint.Render(m.source.AbsPath)))
		b.WriteString("\n\n")
		b.WriteString(styles.Subtitle.Render("Enter the destination category path (dotted)"))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.InputLabel.Render("Destination:"))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.destInput.View()))
	b.WriteString("\n")

	if matches := m.matchingCandidates(); len(matches) > 0 {
		b.WriteString(styles.MutedText.Render("  " + strings.Join(matches, "   ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.message != "" {
		if m.messageErr {
			b.WriteString(styles.ErrorMsg.Render(m.message))
		} else {
			b.WriteString(styles.Success.Render(m.message))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("move"),
		styles.HelpKey.Render("esc"),
		styles.HelpDesc.Render("cancel"),
	))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *MoveModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
