package ui

import (
	uistate "github.com/atomicstack/snek-console/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the popup confirm flow: take the selection, close
// the popup, return focus to the input and run the action with the joined
// selection text. The action's promptResult controls the follow-up: a
// command to run, an informational status, or an error.
func (m *Model) withPrompt(action func(text string) promptResult) tea.Cmd {
	p := m.popup
	if p == nil {
		return nil
	}
	text, ok := p.Confirm()
	m.popup = nil
	m.setMode(ModeInput)
	if !ok || action == nil {
		return nil
	}
	result := action(text)
	if result.Err != nil {
		return m.setStatus(statusError, result.Err.Error())
	}
	var cmds []tea.Cmd
	if result.Info != "" && m.verbose {
		cmds = append(cmds, m.setStatus(statusNormal, result.Info))
	}
	if result.Cmd != nil {
		cmds = append(cmds, result.Cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) confirmPopup() tea.Cmd {
	if m.popup == nil {
		return nil
	}
	switch m.popup.Kind {
	case uistate.KindInteractor:
		return m.withPrompt(func(text string) promptResult {
			return promptResult{
				Cmd:  m.dispatcher.Submit(m.bus.Context(), "/attach "+text),
				Info: "attaching to " + text,
			}
		})
	default:
		return m.withPrompt(func(text string) promptResult {
			m.input.SetValue(text)
			m.history.ResetCursor()
			m.history.SetDraft(text)
			return promptResult{}
		})
	}
}
