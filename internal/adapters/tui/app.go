package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/editor"
	"projtree/internal/adapters/tui/views"
	"projtree/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewProjectForm
	ViewCategoryForm
	ViewMove
	ViewRename
	ViewConfirm
	ViewSearch
	ViewHelp
)

// App is the main TUI application model. It owns view switching, editor
// hand-off, and the bridge between repository callbacks and tea messages.
type App struct {
	repo     ports.ConfigRepository
	editor   *editor.Opener
	notifier *Notifier
	reloadCh chan struct{}

	state        ViewState
	browser      *views.BrowserModel
	projectForm  *views.ProjectFormModel
	categoryForm *views.CategoryFormModel
	move         *views.MoveModel
	rename       *views.RenameModel
	confirm      *views.ConfirmModel
	search       *views.SearchModel
	help         *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. The repository's reload events are
// funneled into the tea loop so external config edits refresh the browser.
func NewApp(repo ports.ConfigRepository, index ports.SearchIndex, ed *editor.Opener, notifier *Notifier) *App {
	a := &App{
		repo:         repo,
		editor:       ed,
		notifier:     notifier,
		reloadCh:     make(chan struct{}, 1),
		state:        ViewBrowser,
		browser:      views.NewBrowserModel(repo),
		projectForm:  views.NewProjectFormModel(repo),
		categoryForm: views.NewCategoryFormModel(repo),
		move:         views.NewMoveModel(repo),
		rename:       views.NewRenameModel(repo),
		confirm:      views.NewConfirmModel(repo),
		search:       views.NewSearchModel(index),
		help:         views.NewHelpModel(),
	}
	repo.Subscribe(func() {
		select {
		case a.reloadCh <- struct{}{}:
		default:
		}
	})
	return a
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.browser.Init(), a.waitReload()}
	if a.notifier != nil {
		cmds = append(cmds, a.notifier.Next())
	}
	return tea.Batch(cmds...)
}

func (a *App) waitReload() tea.Cmd {
	return func() tea.Msg {
		<-a.reloadCh
		return views.ConfigReloadedMsg{}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.projectForm.SetSize(msg.Width, msg.Height)
		a.categoryForm.SetSize(msg.Width, msg.Height)
		a.move.SetSize(msg.Width, msg.Height)
		a.rename.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching
	case views.SwitchToProjectFormMsg:
		a.state = ViewProjectForm
		a.projectForm.SetTarget(msg.Source, msg.Parent)
		return a, a.projectForm.Init()

	case views.SwitchToCategoryFormMsg:
		a.state = ViewCategoryForm
		a.categoryForm.SetParent(msg.Parent)
		return a, a.categoryForm.Init()

	case views.SwitchToMoveMsg:
		a.state = ViewMove
		a.move.SetSource(msg.Source)
		return a, a.move.Init()

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetSource(msg.Source)
		return a, a.rename.Init()

	case views.SwitchToConfirmMsg:
		a.state = ViewConfirm
		a.confirm.SetTarget(msg.Target)
		return a, a.confirm.Init()

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	// Mutation outcomes
	case views.MutationDoneMsg:
		a.state = ViewBrowser
		a.browser.Update(views.StatusMsg{Text: msg.Message})
		cmds := []tea.Cmd{a.browser.Reload()}
		if msg.Key != "" {
			key := msg.Key
			cmds = append(cmds, func() tea.Msg { return views.JumpToKeyMsg{Key: key} })
		}
		return a, tea.Sequence(cmds...)

	// Engine events
	case views.ConfigReloadedMsg:
		cmds := []tea.Cmd{a.waitReload()}
		if a.state == ViewBrowser {
			cmds = append(cmds, a.browser.Reload())
		}
		return a, tea.Batch(cmds...)

	case views.StatusMsg:
		a.browser.Update(msg)
		var rearm tea.Cmd
		if a.notifier != nil {
			rearm = a.notifier.Next()
		}
		return a, rearm

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.Update(views.StatusMsg{Text: msg.err.Error(), IsErr: true})
		}
		return a, a.browser.Reload()
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewProjectForm:
		_, cmd = a.projectForm.Update(msg)
	case ViewCategoryForm:
		_, cmd = a.categoryForm.Update(msg)
	case ViewMove:
		_, cmd = a.move.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil || path == "" {
		return nil
	}
	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewProjectForm:
		return a.projectForm.View()
	case ViewCategoryForm:
		return a.categoryForm.View()
	case ViewMove:
		return a.move.View()
	case ViewRename:
		return a.rename.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
