package ui

import (
	"testing"

	"github.com/atomicstack/snek-console/internal/editor"
	"github.com/atomicstack/snek-console/internal/protocol"
	tea "github.com/charmbracelet/bubbletea"
)

func deliverEditors(h *Harness) {
	h.Deliver(protocol.Result{
		Value: editorMarkup("ed-a", "F1", "x") + editorMarkup("ed-b", "F1", "x"),
		Type:  "result",
	})
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func TestInteractorsBindControllers(t *testing.T) {
	h := newHarness(t, newFakeSession())
	deliverEditors(h)

	editors := h.Model().Editors()
	if len(editors) != 2 {
		t.Fatalf("expected two controllers, got %d", len(editors))
	}
	for _, ctrl := range editors {
		if ctrl.Fragment() != "F1" || ctrl.Displayed() != "x" || ctrl.Status() != editor.StatusSaved {
			t.Fatalf("unexpected controller state %s %q %s", ctrl.Fragment(), ctrl.Displayed(), ctrl.Status())
		}
	}
	if n := len(h.Model().pool.Views("F1")); n != 2 {
		t.Fatalf("expected both views in the pool, got %d", n)
	}
}

func TestCommitPropagatesToSiblingView(t *testing.T) {
	session := newFakeSession()
	h := newHarness(t, session)
	deliverEditors(h)
	h.Deliver(protocol.Eval{Op: protocol.OpOpenEditor, Target: "ed-a"})
	if h.Model().Mode() != ModeEditor {
		t.Fatalf("expected editor overlay, got mode %s", h.Model().Mode())
	}

	h.Type("y")
	a, b := h.Model().Editors()[0], h.Model().Editors()[1]
	if a.Status() != editor.StatusDirty {
		t.Fatalf("expected dirty after typing, got %s", a.Status())
	}
	h.Send(altKey('s'))

	if len(session.calls) != 1 || session.calls[0].ref != 2 || session.calls[0].args[0] != "xy" {
		t.Fatalf("expected commit call with xy, got %+v", session.calls)
	}
	if a.Status() != editor.StatusSaved || a.Content().Saved != "xy" {
		t.Fatalf("expected committed view saved, got %s %+v", a.Status(), a.Content())
	}
	if b.Status() != editor.StatusSaved || b.Displayed() != "xy" {
		t.Fatalf("expected sibling to adopt commit, got %s %q", b.Status(), b.Displayed())
	}
}

func TestSaveAdvancesLiveOnly(t *testing.T) {
	session := newFakeSession()
	h := newHarness(t, session)
	deliverEditors(h)
	h.Deliver(protocol.Eval{Op: protocol.OpOpenEditor, Target: "ed-a"})
	h.Type("y")
	h.Press(tea.KeyCtrlS)

	a := h.Model().Editors()[0]
	if session.calls[0].ref != 1 {
		t.Fatalf("expected save callable, got %d", session.calls[0].ref)
	}
	if a.Status() != editor.StatusLive || a.Content().Saved != "x" || a.Content().Live != "xy" {
		t.Fatalf("expected live-only save, got %s %+v", a.Status(), a.Content())
	}
}

func TestSaveFailureMessages(t *testing.T) {
	cases := []struct {
		kind, message, want string
	}{
		{protocol.InvalidSourceType, "line 3: bad syntax", "line 3: bad syntax"},
		{"RuntimeError", "x", "RuntimeError: x"},
	}
	for _, tc := range cases {
		session := newFakeSession()
		session.failures[1] = &protocol.RemoteCallError{ResponseID: 5, Type: tc.kind, Message: tc.message}
		h := newHarness(t, session)
		deliverEditors(h)
		h.Deliver(protocol.Eval{Op: protocol.OpOpenEditor, Target: "ed-a"})
		h.Type("z")
		h.Press(tea.KeyCtrlS)

		a := h.Model().Editors()[0]
		if a.Status() != editor.StatusError || a.Message() != tc.want {
			t.Fatalf("expected error %q, got %s %q", tc.want, a.Status(), a.Message())
		}
		h.Type("q")
		if a.Status() != editor.StatusError {
			t.Fatalf("expected error to survive one change, got %s", a.Status())
		}
		h.Type("r")
		if a.Status() != editor.StatusDirty {
			t.Fatalf("expected error to lift on the next change, got %s", a.Status())
		}
	}
}

func TestResetToSavedFromOverlay(t *testing.T) {
	h := newHarness(t, newFakeSession())
	deliverEditors(h)
	h.Deliver(protocol.Eval{Op: protocol.OpOpenEditor, Target: "ed-b"})
	h.Type("junk")
	h.Press(tea.KeyCtrlR)

	b := h.Model().Editors()[1]
	if b.Displayed() != "x" || b.Status() != editor.StatusSaved {
		t.Fatalf("expected reset to saved text, got %q %s", b.Displayed(), b.Status())
	}
	if got := h.Model().editorInput.Value(); got != "x" {
		t.Fatalf("expected overlay refreshed, got %q", got)
	}
	h.Press(tea.KeyEsc)
	if h.Model().Mode() != ModeInput {
		t.Fatalf("expected overlay closed")
	}
}

func TestHostFragmentBroadcastReachesEveryView(t *testing.T) {
	h := newHarness(t, newFakeSession())
	deliverEditors(h)
	h.Deliver(protocol.Broadcast{Key: "fragment", Subkey: "F1", Slot: "saved", Content: "new"})

	for _, ctrl := range h.Model().Editors() {
		if ctrl.Displayed() != "new" || ctrl.Status() != editor.StatusSaved {
			t.Fatalf("expected broadcast applied, got %q %s", ctrl.Displayed(), ctrl.Status())
		}
	}
	h.Deliver(protocol.Broadcast{Key: "fragment", Subkey: "F1", Slot: "bogus", Content: "zzz"})
	if got := h.Model().Editors()[0].Displayed(); got != "new" {
		t.Fatalf("expected unknown slot ignored, got %q", got)
	}
}

func TestRemovedEditorsAreClosed(t *testing.T) {
	h := newHarness(t, newFakeSession())
	deliverEditors(h)
	ctrls := h.Model().Editors()
	h.Deliver(protocol.Eval{Op: protocol.OpClearOutput})

	if n := len(h.Model().Editors()); n != 0 {
		t.Fatalf("expected editors dropped, got %d", n)
	}
	for _, ctrl := range ctrls {
		if !ctrl.Closed() {
			t.Fatalf("expected controller closed")
		}
	}
	if n := len(h.Model().pool.Views("F1")); n != 0 {
		t.Fatalf("expected pool pruned, got %d", n)
	}
}

func TestUnkeyedEditorsDoNotShareCommits(t *testing.T) {
	session := newFakeSession()
	h := newHarness(t, session)
	unkeyed := func(filename, text string) string {
		return `<div data-interactor="LiveEditor" data-params='{"content":{"live":"` + text + `","saved":"` + text +
			`"},"filename":"` + filename + `","py":{"save":1,"commit":2}}'></div>`
	}
	h.Deliver(protocol.Result{Value: unkeyed("a.py", "aaa") + unkeyed("b.py", "bbb"), Type: "result"})

	m := h.Model()
	if len(m.editors) != 2 {
		t.Fatalf("expected two editors, got %d", len(m.editors))
	}
	if n := m.pool.Fragments(); n != 0 {
		t.Fatalf("expected unkeyed editors to stay out of the pool, got %d fragments", n)
	}
	m.openOverlay(m.editors[0])
	h.Type("X")
	h.Send(altKey('s'))

	a, b := m.editors[0].ctrl, m.editors[1].ctrl
	if a.Content().Saved != "aaaX" {
		t.Fatalf("expected a.py committed, got %+v", a.Content())
	}
	if b.Displayed() != "bbb" || b.Content() != (editor.Content{Live: "bbb", Saved: "bbb"}) {
		t.Fatalf("expected b.py untouched, got %q %+v", b.Displayed(), b.Content())
	}
}
