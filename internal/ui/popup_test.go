package ui

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/protocol"
	uistate "github.com/atomicstack/snek-console/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHistoryPopupConfirmJoinsSelectionOrder(t *testing.T) {
	h := newHarness(t, newFakeSession(), "a = 1", "b = 2", "c = 3")
	h.Press(tea.KeyCtrlR)

	p := h.Model().Popup()
	if p == nil || h.Model().Mode() != ModePopup {
		t.Fatalf("expected history popup to open")
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.Len())
	}
	h.Press(tea.KeyDown)
	h.Press(tea.KeyDown)
	h.Press(tea.KeyShiftUp)
	h.Press(tea.KeyShiftUp)
	h.Press(tea.KeyEnter)

	if got := h.Model().InputValue(); got != "c = 3\nb = 2\na = 1" {
		t.Fatalf("unexpected confirmed text %q", got)
	}
	if h.Model().Popup() != nil || h.Model().Mode() != ModeInput {
		t.Fatalf("expected popup closed and input focused")
	}
	if got := h.Model().History().Entry(0); got != "c = 3\nb = 2\na = 1" {
		t.Fatalf("expected draft replaced, got %q", got)
	}
}

func TestHistoryPopupFiltersOnKeystrokes(t *testing.T) {
	h := newHarness(t, newFakeSession(), "print(x)", "import os", "x += 1")
	h.Press(tea.KeyCtrlR)
	h.Type("imp")

	p := h.Model().Popup()
	if p.Filter != "imp" {
		t.Fatalf("expected filter imp, got %q", p.Filter)
	}
	if p.Len() != 1 || p.Text(0) != "import os" {
		t.Fatalf("expected only import os, got %d matches", p.Len())
	}
	h.Press(tea.KeyBackspace)
	h.Press(tea.KeyBackspace)
	if p.Filter != "i" {
		t.Fatalf("expected filter i, got %q", p.Filter)
	}
}

func TestHistoryPopupSeedsFilterFromDraft(t *testing.T) {
	h := newHarness(t, newFakeSession(), "alpha", "beta")
	h.Type("bet")
	h.Press(tea.KeyCtrlR)
	p := h.Model().Popup()
	if p.Filter != "bet" || p.Len() != 1 || p.Text(0) != "beta" {
		t.Fatalf("expected popup seeded with draft, got filter %q and %d matches", p.Filter, p.Len())
	}
}

func TestHistoryPopupEscapeLeavesHistoryAlone(t *testing.T) {
	h := newHarness(t, newFakeSession(), "one", "two")
	h.Type("dr")
	before := h.Model().History().Entries()
	h.Press(tea.KeyCtrlR)
	h.Type("o")
	h.Press(tea.KeyShiftDown)
	h.Press(tea.KeyEsc)

	if h.Model().Popup() != nil || h.Model().Mode() != ModeInput {
		t.Fatalf("expected popup closed")
	}
	if got := h.Model().InputValue(); got != "dr" {
		t.Fatalf("expected draft untouched, got %q", got)
	}
	after := h.Model().History().Entries()
	if len(after) != len(before) {
		t.Fatalf("expected history unchanged, got %q", after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected history unchanged, got %q", after)
		}
	}
}

func TestBlurClosesPopup(t *testing.T) {
	h := newHarness(t, newFakeSession(), "one")
	h.Press(tea.KeyCtrlR)
	h.Send(tea.BlurMsg{})
	if h.Model().Popup() != nil {
		t.Fatalf("expected popup destroyed on blur")
	}
}

func TestInteractorPopupPopulatesAndAttaches(t *testing.T) {
	session := newFakeSession()
	session.results[7] = json.RawMessage(`[{"text":"worker-1"},"worker-2"]`)
	h := newHarness(t, session)
	h.Deliver(protocol.SetLib{Lib: map[string]int64{"populate_popup": 7}})

	h.Press(tea.KeyCtrlO)
	p := h.Model().Popup()
	if p == nil || p.Kind != uistate.KindInteractor {
		t.Fatalf("expected interactor popup")
	}
	if p.Len() != 2 || p.Text(1) != "worker-2" {
		t.Fatalf("expected populated entries, got %d", p.Len())
	}
	if len(session.calls) != 1 || session.calls[0].ref != 7 {
		t.Fatalf("expected populate call, got %+v", session.calls)
	}
	if args := session.calls[0].args; len(args) != 2 || args[0] != "interactor" || args[1] != "" {
		t.Fatalf("unexpected populate arguments %v", args)
	}

	h.Press(tea.KeyEnter)
	if len(session.submitted) != 1 || session.submitted[0] != "/attach worker-1" {
		t.Fatalf("expected /attach worker-1, got %v", session.submitted)
	}
}

func TestInteractorPopupDropsStaleEntries(t *testing.T) {
	session := newFakeSession()
	session.results[7] = json.RawMessage(`["w"]`)
	h := newHarness(t, session)
	h.Deliver(protocol.SetLib{Lib: map[string]int64{"populate_popup": 7}})
	h.Press(tea.KeyCtrlO)
	h.Type("w")

	h.Send(popupEntriesMsg{kind: uistate.KindInteractor, filter: "", entries: []string{"stale-1", "stale-2"}})
	p := h.Model().Popup()
	if p.Len() != 1 || p.Text(0) != "w" {
		t.Fatalf("expected stale population ignored, got %d entries", p.Len())
	}
}

func TestInteractorPopupWithoutCapability(t *testing.T) {
	h := newHarness(t, newFakeSession())
	h.Press(tea.KeyCtrlO)
	if h.Model().Popup() != nil {
		t.Fatalf("expected no popup without populate_popup")
	}
	if h.Model().Status().Type != statusWarning {
		t.Fatalf("expected warning status, got %+v", h.Model().Status())
	}
}

func TestDecodePopupEntries(t *testing.T) {
	entries, err := decodePopupEntries(json.RawMessage(`[{"text":"a"},"b"]`))
	if err != nil || len(entries) != 2 || entries[0] != "a" || entries[1] != "b" {
		t.Fatalf("unexpected entries %v (%v)", entries, err)
	}
	if _, err := decodePopupEntries(json.RawMessage(`{"text":"a"}`)); err == nil {
		t.Fatalf("expected error for non-list payload")
	}
	if entries, err := decodePopupEntries(nil); err != nil || entries != nil {
		t.Fatalf("expected empty result for null payload")
	}
}

func TestFilterEditsTraceOnce(t *testing.T) {
	h := newHarness(t, newFakeSession(), "print(1)", "import os")
	logging.SetTraceEnabled(true)
	t.Cleanup(func() { logging.SetTraceEnabled(false) })

	h.Press(tea.KeyCtrlR)
	h.Type("p")
	h.Press(tea.KeyBackspace)
	h.Type("pr")
	h.Press(tea.KeyCtrlU)

	data, err := os.ReadFile(logging.Path())
	if err != nil {
		t.Fatalf("read trace log: %v", err)
	}
	counts := map[string]int{}
	for _, line := range strings.Split(string(data), "\n") {
		for _, event := range []string{"filter.append", "filter.backspace", "filter.clear"} {
			if strings.Contains(line, `"event":"`+event+`"`) {
				counts[event]++
			}
		}
	}
	want := map[string]int{"filter.append": 3, "filter.backspace": 1, "filter.clear": 1}
	for event, n := range want {
		if counts[event] != n {
			t.Fatalf("expected %d %s entries, got %d", n, event, counts[event])
		}
	}
}
