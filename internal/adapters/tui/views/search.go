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

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go to"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

// SearchModel queries the index as the user types and jumps the browser to
// the selected match.
type SearchModel struct {
	index   ports.SearchIndex
	input   textinput.Model
	results []domain.SearchResult
	cursor  int
	message string
	width   int
	height  int
}

// NewSearchModel creates a new search view model
func NewSearchModel(index ports.SearchIndex) *SearchModel {
	input := textinput.New()
	input.Placeholder = "label, category, or path"
	input.CharLimit = 200
	return &SearchModel{index: index, input: input}
}

// Reset clears the previous search
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.input.Focus()
	m.results = nil
	m.cursor = 0
	m.message = ""
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

type searchResultsMsg struct {
	results []domain.SearchResult
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultsMsg:
		m.results = msg.results
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor < len(m.results) {
				selected := m.results[m.cursor]
				return m, tea.Sequence(
					func() tea.Msg { return SwitchToBrowserMsg{} },
					func() tea.Msg { return JumpToKeyMsg{Key: selected.Key} },
				)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.search(m.input.Value()))
	}
	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(query) == "" {
			return searchResultsMsg{}
		}
		cmd := commands.NewSearchCommand(m.index, query)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return searchResultsMsg{results: result.Matches}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(styles.ErrorMsg.Render(m.message))
		b.WriteString("\n\n")
	}

	if len(m.results) == 0 && strings.TrimSpace(m.input.Value()) != "" {
		b.WriteString(styles.MutedText.Render("No matches."))
		b.WriteString("\n")
	}
	for i, r := range m.results {
		marker := "  "
		line := fmt.Sprintf("[%s] %s", r.Kind, r.Label)
		if r.AbsPath != "" {
			line += "  " + r.AbsPath
		}
		if i == m.cursor {
			b.WriteString(marker + styles.NodeSelected.Render(line))
		} else {
			b.WriteString(marker + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s",
		styles.HelpKey.Render("↑/↓"),
		styles.HelpDesc.Render("select"),
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("go to"),
		styles.HelpKey.Render("esc"),
		styles.HelpDesc.Render("close"),
	))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
