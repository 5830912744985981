package ui

import (
	"github.com/atomicstack/snek-console/internal/backend"
	"github.com/atomicstack/snek-console/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// Connection status texts.
const (
	statusConnectionError  = "a connection error occurred"
	statusConnectionClosed = "the connection was closed"
)

func waitForSessionEvent(ch <-chan backend.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return sessionDoneMsg{}
		}
		return sessionEventMsg{event: evt}
	}
}

type sessionEventMsg struct {
	event backend.Event
}

type sessionDoneMsg struct{}

func (m *Model) handleSessionEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(sessionEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applySessionEvent(eventMsg.event)
	if m.session == nil {
		return cmd
	}
	return tea.Batch(cmd, m.listen(m.session.Events()))
}

func (m *Model) handleSessionDoneMsg(msg tea.Msg) tea.Cmd {
	m.session = nil
	return nil
}

func (m *Model) applySessionEvent(evt backend.Event) tea.Cmd {
	switch evt.Kind {
	case backend.KindClosed:
		if evt.Err != nil {
			logging.Error(evt.Err)
			return m.setStatus(statusError, statusConnectionError)
		}
		return m.setStatus(statusNormal, statusConnectionClosed)
	default:
		if evt.Err != nil {
			logging.Error(evt.Err)
			return nil
		}
		return m.dispatcher.Route(evt.Message)
	}
}
