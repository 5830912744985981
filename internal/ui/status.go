package ui

import (
	"fmt"
	"time"

	"github.com/atomicstack/snek-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	statusNormal  = "normal"
	statusError   = "error"
	statusSuccess = "success"
	statusWarning = "warning"

	statusDecay        = 10 * time.Second
	statusHistoryLimit = 200
)

// StatusEntry is one status-bar notification.
type StatusEntry struct {
	Type  string
	Value string
	At    time.Time
	faded bool
}

// Text renders the entry as shown in the status bar.
func (e StatusEntry) Text() string {
	if e.Value == "" {
		return ""
	}
	return fmt.Sprintf("%s -- %s", e.Value, e.At.Format("15:04:05"))
}

// DisplayType is the type used for styling; it reverts to normal once the
// entry has decayed.
func (e StatusEntry) DisplayType() string {
	if e.faded {
		return statusNormal
	}
	return e.Type
}

type statusBar struct {
	current StatusEntry
	history []StatusEntry
}

type statusDecayMsg struct {
	at time.Time
}

func (m *Model) setStatus(kind, value string) tea.Cmd {
	if kind == "" {
		kind = statusNormal
	}
	entry := StatusEntry{Type: kind, Value: value, At: m.now()}
	m.status.current = entry
	m.status.history = append(m.status.history, entry)
	if extra := len(m.status.history) - statusHistoryLimit; extra > 0 {
		m.status.history = append([]StatusEntry(nil), m.status.history[extra:]...)
	}
	events.UI.Status(kind, value)
	if kind == statusNormal || m.tick == nil {
		return nil
	}
	return m.tick(statusDecay, func(time.Time) tea.Msg {
		return statusDecayMsg{at: entry.At}
	})
}

func (m *Model) handleStatusDecayMsg(msg tea.Msg) tea.Cmd {
	decay, ok := msg.(statusDecayMsg)
	if !ok {
		return nil
	}
	if m.status.current.At.Equal(decay.at) {
		m.status.current.faded = true
	}
	return nil
}
