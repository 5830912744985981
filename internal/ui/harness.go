package ui

import (
	"time"

	"github.com/atomicstack/snek-console/internal/backend"
	"github.com/atomicstack/snek-console/internal/protocol"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously; batches are expanded in order. Timers and the
// session event pump are disabled, so inbound traffic is injected with
// Deliver and Disconnect.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	model.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }
	model.listen = func(<-chan backend.Event) tea.Cmd { return nil }
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Deliver feeds one inbound host message through the session path.
func (h *Harness) Deliver(msg protocol.Message) {
	h.Send(sessionEventMsg{event: backend.Event{Kind: backend.KindMessage, Message: msg}})
}

// Disconnect simulates the end of the connection; err nil is an orderly
// close.
func (h *Harness) Disconnect(err error) {
	h.Send(sessionEventMsg{event: backend.Event{Kind: backend.KindClosed, Err: err}})
}

// Type sends each rune of text as a key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends a key press of the given type.
func (h *Harness) Press(t tea.KeyType) {
	h.Send(tea.KeyMsg{Type: t})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.QuitMsg:
		h.quit = true
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
		return
	}
	h.Send(msg)
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
