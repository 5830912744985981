package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/snek-console/internal/protocol"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func plainView(h *Harness) string {
	return ansi.Strip(h.View())
}

func TestViewShowsOutputAndStatus(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Deliver(protocol.SetNav{Value: "<b>main</b> session"})
	h.Deliver(protocol.Echo{Value: "1 + 1", Language: "python"})
	h.Deliver(protocol.Result{Value: "<pre>2</pre>", Type: "result"})
	h.Deliver(protocol.Status{Type: "success", Value: "done"})

	view := plainView(h)
	for _, want := range []string{"main session", "1 + 1", "2", "done -- 14:05:07", "input"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewMarksOfflineSession(t *testing.T) {
	h := newHarness(t, nil)
	if view := plainView(h); !strings.Contains(view, "offline") {
		t.Fatalf("expected offline marker, got:\n%s", view)
	}
}

func TestViewRendersPopupWithFilter(t *testing.T) {
	h := newHarness(t, newFakeSession(), "import os", "print(x)")
	h.Press(tea.KeyCtrlR)
	h.Type("pri")

	view := plainView(h)
	if !strings.Contains(view, "history (1/2)") {
		t.Fatalf("expected popup title, got:\n%s", view)
	}
	if !strings.Contains(view, "print(x)") || strings.Contains(view, "import os") {
		t.Fatalf("expected only the filtered entry, got:\n%s", view)
	}
	if !strings.Contains(view, "» pri") {
		t.Fatalf("expected filter prompt, got:\n%s", view)
	}
}

func TestViewShowsPinnedPane(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Deliver(protocol.Result{Value: `<p id="p1">keep me</p>`, Type: "result"})
	h.Deliver(protocol.Eval{Op: protocol.OpTogglePin, Target: "p1"})

	view := plainView(h)
	if !strings.Contains(view, "pinned (1)") || !strings.Contains(view, "keep me") {
		t.Fatalf("expected pinned pane, got:\n%s", view)
	}
	if n := strings.Count(view, "keep me"); n != 1 {
		t.Fatalf("expected pinned element shown once, got %d:\n%s", n, view)
	}
}

func TestViewShowsEditorStatus(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Deliver(protocol.Result{Value: editorMarkup("ed", "F3", "a = 1"), Type: "result"})

	view := plainView(h)
	if !strings.Contains(view, "f.py · live, saved on disk") || !strings.Contains(view, "│ a = 1") {
		t.Fatalf("expected editor block, got:\n%s", view)
	}
}

func TestViewFitsWidth(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Deliver(protocol.Result{Value: "<pre>" + strings.Repeat("x", 200) + "</pre>", Type: "result"})
	for _, line := range strings.Split(h.View(), "\n") {
		if w := ansi.StringWidth(line); w > 80 {
			t.Fatalf("line wider than 80 cells (%d): %q", w, ansi.Strip(line))
		}
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	h := newHarness(t, newFakeSession(), "one")
	h.Press(tea.KeyCtrlR)
	if got := ansi.Strip(h.Model().filterPrompt()); got != "» (type to filter)" {
		t.Fatalf("unexpected prompt %q", got)
	}
}
