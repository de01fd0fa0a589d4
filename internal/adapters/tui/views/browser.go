package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/tui/styles"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// BrowserKeyMap defines key bindings for the tree browser
type BrowserKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Open        key.Binding
	NewProject  key.Binding
	NewCategory key.Binding
	Edit        key.Binding
	Move        key.Binding
	Rename      key.Binding
	Delete      key.Binding
	CopyPath    key.Binding
	OpenConfig  key.Binding
	Search      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/open"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in editor"),
	),
	NewProject: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new project"),
	),
	NewCategory: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new category"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	CopyPath: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	OpenConfig: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "open config"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the tree browser view. Expansion state and
// the cursor are keyed by structural path so both survive reloads.
type BrowserModel struct {
	repo       ports.ConfigRepository
	root       *domain.TreeNode
	flatNodes  []*domain.TreeNode
	cursor     int
	expanded   map[string]bool
	pendingKey string
	message    string
	messageErr bool
	width      int
	height     int
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(repo ports.ConfigRepository) *BrowserModel {
	return &BrowserModel{
		repo:     repo,
		expanded: map[string]bool{},
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	root, err := m.repo.BuildTree()
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{root}
}

type treeLoadedMsg struct {
	root *domain.TreeNode
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case treeLoadedMsg:
		m.root = msg.root
		m.applyExpansion()
		m.refreshFlatNodes()
		m.restoreCursor()
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		m.messageErr = true
		return m, nil

	case successMsg:
		m.message = msg.message
		m.messageErr = false
		return m, m.Reload()

	case StatusMsg:
		m.message = msg.Text
		m.messageErr = msg.IsErr
		return m, nil

	case JumpToKeyMsg:
		m.jumpTo(msg.Key)
		return m, nil

	case tea.KeyMsg:
		m.message = ""

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flatNodes)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.Kind == domain.KindCategory && node.IsExpanded {
					m.setExpanded(node, false)
				} else if node.Parent != nil && node.Parent.Parent != nil {
					for i, n := range m.flatNodes {
						if n == node.Parent {
							m.cursor = i
							break
						}
					}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right):
			if node := m.selectedNode(); node != nil && node.Kind == domain.KindCategory {
				m.setExpanded(node, true)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			if node := m.selectedNode(); node != nil {
				if node.Kind == domain.KindProject {
					return m, func() tea.Msg {
						return OpenEditorMsg{Path: node.AbsPath}
					}
				}
				m.setExpanded(node, !node.IsExpanded)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Open):
			if node := m.selectedNode(); node != nil && node.Kind == domain.KindProject {
				return m, func() tea.Msg {
					return OpenEditorMsg{Path: node.AbsPath}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.NewProject):
			parent := m.selectedCategoryPath()
			return m, func() tea.Msg {
				return SwitchToProjectFormMsg{Parent: parent}
			}

		case key.Matches(msg, BrowserKeys.NewCategory):
			parent := m.selectedCategoryPath()
			return m, func() tea.Msg {
				return SwitchToCategoryFormMsg{Parent: parent}
			}

		case key.Matches(msg, BrowserKeys.Edit):
			if node := m.selectedNode(); node != nil && node.Kind == domain.KindProject {
				return m, func() tea.Msg {
					return SwitchToProjectFormMsg{Source: node, Parent: node.Path}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Move):
			if node := m.selectedNode(); node != nil && node.Kind == domain.KindProject {
				return m, func() tea.Msg {
					return SwitchToMoveMsg{Source: node}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Rename):
			if node := m.selectedNode(); node != nil && node.Kind == domain.KindCategory {
				return m, func() tea.Msg {
					return SwitchToRenameMsg{Source: node}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Delete):
			if node := m.selectedNode(); node != nil {
				return m, func() tea.Msg {
					return SwitchToConfirmMsg{Target: node}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.CopyPath):
			if node := m.selectedNode(); node != nil && node.Kind == domain.KindProject {
				return m, m.copyPath(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.OpenConfig):
			return m, func() tea.Msg {
				return OpenEditorMsg{Path: m.repo.ConfigPath()}
			}

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) copyPath(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(node.AbsPath); err != nil {
			return errMsg{fmt.Errorf("copying path: %w", err)}
		}
		return StatusMsg{Text: fmt.Sprintf("Copied %s", node.AbsPath)}
	}
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

// selectedCategoryPath returns the category the selection lives in: the
// category itself, or a project's owning category.
func (m *BrowserModel) selectedCategoryPath() domain.CategoryPath {
	node := m.selectedNode()
	if node == nil {
		return nil
	}
	return node.Path
}

func (m *BrowserModel) setExpanded(node *domain.TreeNode, expanded bool) {
	node.IsExpanded = expanded
	m.expanded[node.Key()] = expanded
	m.refreshFlatNodes()
}

// applyExpansion re-applies remembered expansion state to a fresh tree.
func (m *BrowserModel) applyExpansion() {
	if m.root == nil {
		return
	}
	var walk func(node *domain.TreeNode)
	walk = func(node *domain.TreeNode) {
		for _, child := range node.Children {
			if child.Kind == domain.KindCategory {
				child.IsExpanded = m.expanded[child.Key()]
				walk(child)
			}
		}
	}
	m.root.IsExpanded = true
	walk(m.root)
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:] // root itself is not displayed
	}
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// restoreCursor re-finds the previously selected node by key after a
// reload; positions shift when the file changes underneath us.
func (m *BrowserModel) restoreCursor() {
	if m.pendingKey == "" {
		return
	}
	for i, n := range m.flatNodes {
		if n.Key() == m.pendingKey {
			m.cursor = i
			break
		}
	}
	m.pendingKey = ""
}

// jumpTo expands the ancestors of key and moves the cursor onto it.
func (m *BrowserModel) jumpTo(key string) {
	category := key
	if path, _, err := domain.ParseProjectKey(key); err == nil {
		category = domain.CategoryKey(path)
	}
	if category != domain.RootKey {
		// Expand every dotted prefix; keys that name no category are inert.
		segs := strings.Split(category, ".")
		for i := 1; i <= len(segs); i++ {
			m.expanded[strings.Join(segs[:i], ".")] = true
		}
	}
	m.applyExpansion()
	m.refreshFlatNodes()
	for i, n := range m.flatNodes {
		if n.Key() == key {
			m.cursor = i
			return
		}
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("Projtree"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.repo.ConfigPath()))
	b.WriteString("\n\n")

	if len(m.flatNodes) == 0 {
		b.WriteString(styles.MutedText.Render("No projects yet. Press n to add one."))
		b.WriteString("\n")
	}
	for i, node := range m.flatNodes {
		b.WriteString(m.renderNode(node, i == m.cursor))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		if m.messageErr {
			b.WriteString(styles.ErrorMsg.Render(m.message))
		} else {
			b.WriteString(styles.Success.Render(m.message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	var prefix string
	switch {
	case node.Kind == domain.KindProject:
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := node.Name
	if node.Kind == domain.KindProject && node.Icon != "" {
		text = node.Icon + " " + text
	}

	style := styles.NodeCategory
	if node.Kind == domain.KindProject {
		style = styles.NodeProject
	}
	styledText := style.Render(text)
	if selected {
		styledText = styles.NodeSelected.Render(text)
	}

	line := indent + styles.TreeBranch.Render(prefix) + styledText
	if node.Kind == domain.KindProject && node.AbsPath != "" {
		line += "  " + styles.PathHint.Render(node.AbsPath)
	}
	if len(node.Issues) > 0 {
		line += "  " + styles.NodeIssue.Render("! "+node.Issues[0])
	}
	return line
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"h/l", "collapse/expand"},
		{"n/N", "new project/category"},
		{"e", "edit"},
		{"m", "move"},
		{"d", "delete"},
		{"y", "copy path"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload rebuilds the tree from the repository, keeping the cursor on the
// same structural key when it still exists.
func (m *BrowserModel) Reload() tea.Cmd {
	if node := m.selectedNode(); node != nil {
		m.pendingKey = node.Key()
	}
	return m.loadTree
}
