package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"projtree/internal/adapters/tui/views"
	"projtree/internal/ports"
)

// Notifier buffers engine notifications (validation warnings, load and
// save failures) for the status line. The engine may emit from watcher
// goroutines, so messages cross into the tea loop through a channel.
type Notifier struct {
	ch chan views.StatusMsg
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier with a small buffer; when the buffer is
// full, new messages are dropped rather than blocking the engine.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan views.StatusMsg, 16)}
}

// Warn queues a warning message.
func (n *Notifier) Warn(msg string) {
	n.push(views.StatusMsg{Text: msg})
}

// Error queues an error message.
func (n *Notifier) Error(msg string) {
	n.push(views.StatusMsg{Text: msg, IsErr: true})
}

func (n *Notifier) push(m views.StatusMsg) {
	select {
	case n.ch <- m:
	default:
	}
}

// Next returns a command that waits for the next queued notification.
func (n *Notifier) Next() tea.Cmd {
	return func() tea.Msg {
		return <-n.ch
	}
}
