package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/snek-console/internal/output"
	"github.com/atomicstack/snek-console/internal/protocol"
	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func lastLineText(h *Harness) string {
	lines := h.Model().Document().Lines()
	if len(lines) == 0 {
		return ""
	}
	return output.Text(output.LineBody(lines[len(lines)-1]))
}

func TestSelectModePinRoundTrip(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Deliver(protocol.Result{Value: "<p>one</p>", Type: "result"})
	h.Deliver(protocol.Result{Value: "<p>two</p>", Type: "result"})
	doc := h.Model().Document()
	lines := doc.Lines()
	second := lines[len(lines)-1]
	index := len(lines) - 1

	h.Press(tea.KeyCtrlT)
	if h.Model().Mode() != ModeSelect {
		t.Fatalf("expected select mode")
	}
	h.Send(runeKey('p'))
	if !doc.IsPinned(second) {
		t.Fatalf("expected selected line pinned")
	}
	if !output.IsPlaceholder(doc.Lines()[index]) {
		t.Fatalf("expected placeholder at the original position")
	}

	h.Send(runeKey('p'))
	if doc.IsPinned(second) {
		t.Fatalf("expected line unpinned")
	}
	if got := doc.Lines()[index]; got != second {
		t.Fatalf("expected line restored at index %d", index)
	}
	if n := len(doc.PinnedLines()); n != 0 {
		t.Fatalf("expected pinned pane empty, got %d", n)
	}
	h.Press(tea.KeyEsc)
	if h.Model().Mode() != ModeInput {
		t.Fatalf("expected input mode after esc")
	}
}

func TestSelectModeInvokesCallbacks(t *testing.T) {
	session := newFakeSession()
	h := newHarness(t, session)
	h.Deliver(protocol.Result{Value: `<span objid="42">run</span> <span objid="43">stop</span>`, Type: "result"})

	h.Press(tea.KeyCtrlT)
	h.Press(tea.KeyEnter)
	h.Press(tea.KeyTab)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	if len(session.calls) != 2 {
		t.Fatalf("expected two callback calls, got %+v", session.calls)
	}
	first := session.calls[0]
	if first.ref != 42 || first.args[0] != protocol.Click(false, false) {
		t.Fatalf("unexpected first call %+v", first)
	}
	second := session.calls[1]
	evt, ok := second.args[0].(protocol.EventDescriptor)
	if second.ref != 43 || !ok || !evt.CtrlKey || evt.Type != "click" {
		t.Fatalf("unexpected second call %+v", second)
	}
}

func TestCallbackFailureShowsStatus(t *testing.T) {
	session := newFakeSession()
	session.failures[42] = &protocol.RemoteCallError{Type: "ValueError", Message: "bad"}
	h := newHarness(t, session)
	h.Deliver(protocol.Result{Value: `<span objid="42">run</span>`, Type: "result"})
	h.Press(tea.KeyCtrlT)
	h.Press(tea.KeyEnter)

	if status := h.Model().Status(); status.Type != statusError || status.Value != "ValueError: bad" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestSelectModeOpensEditor(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Deliver(protocol.Result{Value: editorMarkup("ed", "F2", "def f(): pass"), Type: "result"})
	h.Press(tea.KeyCtrlT)
	h.Send(runeKey('e'))
	if h.Model().Mode() != ModeEditor {
		t.Fatalf("expected editor overlay, got %s", h.Model().Mode())
	}
	if got := h.Model().editorInput.Value(); got != "def f(): pass" {
		t.Fatalf("unexpected overlay text %q", got)
	}
}

func TestCopyCommand(t *testing.T) {
	h := newHarness(t, newFakeSession())
	var copied string
	h.Model().clipboard = func(text string) error {
		copied = text
		return nil
	}
	h.Deliver(protocol.Result{Value: "<pre>42</pre>", Type: "result"})
	h.Type("/copy")
	h.Press(tea.KeyEnter)

	if copied != "42" {
		t.Fatalf("expected 42 copied, got %q", copied)
	}
	if status := h.Model().Status(); status.Type != statusSuccess {
		t.Fatalf("expected success status, got %+v", status)
	}

	h.Model().clipboard = func(string) error { return errors.New("no display") }
	h.Type("/copy")
	h.Press(tea.KeyEnter)
	if status := h.Model().Status(); status.Type != statusError || !strings.Contains(status.Value, "no display") {
		t.Fatalf("expected copy failure status, got %+v", status)
	}
}

func TestInfoCommands(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Deliver(protocol.Status{Type: "warning", Value: "careful"})

	h.Type("/status")
	h.Press(tea.KeyEnter)
	if got := lastLineText(h); !strings.Contains(got, "MESSAGE") || !strings.Contains(got, "careful") {
		t.Fatalf("expected status table, got %q", got)
	}

	h.Type("/help")
	h.Press(tea.KeyEnter)
	if got := lastLineText(h); !strings.Contains(got, "/copy") || !strings.Contains(got, "/quit") {
		t.Fatalf("expected command list, got %q", got)
	}

	h.Type("/pins")
	h.Press(tea.KeyEnter)
	if got := lastLineText(h); got != "nothing is pinned" {
		t.Fatalf("expected empty pin list, got %q", got)
	}
}

func TestStopCommand(t *testing.T) {
	session := newFakeSession()
	h := newHarness(t, session)
	h.Type("/stop")
	h.Press(tea.KeyEnter)
	if h.Model().Status().Type != statusWarning {
		t.Fatalf("expected warning without stop capability")
	}

	h.Deliver(protocol.SetLib{Lib: map[string]int64{"stop": 9}})
	h.Type("/stop")
	h.Press(tea.KeyEnter)
	if len(session.calls) != 1 || session.calls[0].ref != 9 {
		t.Fatalf("expected stop call, got %+v", session.calls)
	}
	if len(session.submitted) != 0 {
		t.Fatalf("expected /stop to stay local, got %v", session.submitted)
	}
}
