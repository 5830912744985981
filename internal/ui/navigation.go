package ui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/atomicstack/snek-console/internal/output"
	"github.com/atomicstack/snek-console/internal/protocol"
	"github.com/atomicstack/snek-console/internal/ui/command"
	uistate "github.com/atomicstack/snek-console/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"
)

// Capabilities the host registers through set_lib.
const (
	libPopulatePopup = "populate_popup"
	libStop          = "stop"
)

type popupEntriesMsg struct {
	kind    string
	filter  string
	entries []string
	err     error
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case ModePopup:
		return m.handlePopupKey(keyMsg)
	case ModeSelect:
		return m.handleSelectKey(keyMsg)
	case ModeEditor:
		return m.handleEditorKey(keyMsg)
	}
	if key.Matches(keyMsg, m.keys.Quit) && m.input.Value() == "" {
		return tea.Quit
	}
	return m.handleInputKey(keyMsg)
}

func (m *Model) openHistoryPopup() {
	m.popup = uistate.NewPopup(uistate.KindHistory, m.history.Past(), m.input.Value(), true)
	m.syncPopupViewport()
	m.setMode(ModePopup)
}

func (m *Model) openInteractorPopup() tea.Cmd {
	if _, ok := m.lib[libPopulatePopup]; !ok {
		return m.setStatus(statusWarning, "no interaction targets are available")
	}
	m.popup = uistate.NewRemotePopup(uistate.KindInteractor, m.input.Value())
	m.setMode(ModePopup)
	return m.populateCmd()
}

func (m *Model) closePopup() {
	if m.popup != nil {
		m.popup.Close()
		m.popup = nil
	}
	if m.mode == ModePopup {
		m.setMode(ModeInput)
	}
}

func (m *Model) handlePopupKey(msg tea.KeyMsg) tea.Cmd {
	p := m.popup
	if p == nil {
		m.setMode(ModeInput)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePopup()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		return m.confirmPopup()
	case key.Matches(msg, m.keys.ExpandUp):
		p.ExpandPrev()
	case key.Matches(msg, m.keys.ExpandDown):
		p.ExpandNext()
	case key.Matches(msg, m.keys.Up):
		p.Move(-1)
	case key.Matches(msg, m.keys.Down):
		p.Move(1)
	case key.Matches(msg, m.keys.Home):
		p.MoveHome()
	case key.Matches(msg, m.keys.End):
		p.MoveEnd()
	case key.Matches(msg, m.keys.ScrollUp):
		p.MovePageUp(m.maxPopupItems())
	case key.Matches(msg, m.keys.ScrollDown):
		p.MovePageDown(m.maxPopupItems())
	default:
		if m.handleFilterInput(msg) && p.Remote {
			return m.populateCmd()
		}
	}
	m.syncPopupViewport()
	return nil
}

func (m *Model) syncPopupViewport() {
	if m.popup != nil {
		m.popup.EnsureCursorVisible(m.maxPopupItems())
	}
}

// populateCmd asks the host for the entries matching the popup's current
// filter. Calls are throttled; results for an outdated filter are dropped
// when they arrive.
func (m *Model) populateCmd() tea.Cmd {
	p := m.popup
	if p == nil || !p.Remote || m.session == nil {
		return nil
	}
	ref, ok := m.lib[libPopulatePopup]
	if !ok {
		return nil
	}
	session := m.session
	throttle := m.throttle
	kind, filter := p.Kind, p.Filter
	return m.bus.Execute(command.Request{ID: "popup:populate", Label: filter, Run: func(ctx context.Context) tea.Msg {
		if err := throttle.Wait(ctx); err != nil {
			return popupEntriesMsg{kind: kind, filter: filter, err: err}
		}
		raw, err := session.Call(ctx, ref, kind, filter)
		if err != nil {
			return popupEntriesMsg{kind: kind, filter: filter, err: err}
		}
		entries, err := decodePopupEntries(raw)
		return popupEntriesMsg{kind: kind, filter: filter, entries: entries, err: err}
	}})
}

// decodePopupEntries accepts a list of {"text": ...} objects or of plain
// strings.
func decodePopupEntries(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("popup entries: %w", err)
	}
	entries := make([]string, 0, len(items))
	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			entries = append(entries, text)
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("popup entry %s: %w", item, err)
		}
		entries = append(entries, obj.Text)
	}
	return entries, nil
}

func (m *Model) handlePopupEntriesMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(popupEntriesMsg)
	if !ok {
		return nil
	}
	p := m.popup
	if p == nil || !p.Visible || p.Kind != update.kind {
		return nil
	}
	if update.err != nil {
		logging.Error(update.err)
		if update.filter != p.Filter {
			return nil
		}
		return m.setStatus(statusError, protocol.DisplayMessage(update.err))
	}
	p.Populate(update.filter, update.entries)
	m.syncPopupViewport()
	return nil
}

// targets lists the selectable blocks: pinned elements first, then the
// visible output lines in order.
func (m *Model) targets() []*html.Node {
	var out []*html.Node
	for _, n := range append(m.doc.PinnedLines(), m.doc.Lines()...) {
		if m.visible(n) {
			out = append(out, n)
		}
	}
	return out
}

// visible reports whether n renders anything. Print boxes stay empty until
// the evaluation prints.
func (m *Model) visible(n *html.Node) bool {
	if output.IsPlaceholder(n) {
		return true
	}
	body := output.LineBody(n)
	return output.Text(body) != "" || len(m.editorsIn(n)) > 0 || len(output.Actionables(body)) > 0
}

func (m *Model) selectedTarget() *html.Node {
	targets := m.targets()
	if m.selection < 0 || m.selection >= len(targets) {
		return nil
	}
	return targets[m.selection]
}

func (m *Model) enterSelectMode() {
	targets := m.targets()
	if len(targets) == 0 {
		return
	}
	m.selection = len(targets) - 1
	m.actionable = 0
	m.follow = false
	m.setMode(ModeSelect)
	events.UI.Select(m.selection, output.Attr(targets[m.selection], "id"))
}

func (m *Model) moveSelection(delta int) {
	targets := m.targets()
	if len(targets) == 0 {
		m.setMode(ModeInput)
		return
	}
	next := m.selection + delta
	if next < 0 {
		next = 0
	}
	if next > len(targets)-1 {
		next = len(targets) - 1
	}
	if next == m.selection {
		return
	}
	m.selection = next
	m.actionable = 0
	events.UI.Select(m.selection, output.Attr(targets[m.selection], "id"))
}

func (m *Model) handleSelectKey(msg tea.KeyMsg) tea.Cmd {
	target := m.selectedTarget()
	if target == nil {
		m.setMode(ModeInput)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.follow = true
		m.setMode(ModeInput)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Home):
		m.moveSelection(-len(m.targets()))
	case key.Matches(msg, m.keys.End):
		m.moveSelection(len(m.targets()))
	case key.Matches(msg, m.keys.NextTarget):
		if n := len(output.Actionables(target)); n > 0 {
			m.actionable = (m.actionable + 1) % n
		}
	case key.Matches(msg, m.keys.InvokeAlt):
		return m.invokeSelected(target, true)
	case key.Matches(msg, m.keys.Invoke):
		return m.invokeSelected(target, false)
	case key.Matches(msg, m.keys.Pin):
		m.togglePinTarget(target)
	case key.Matches(msg, m.keys.Edit):
		if views := m.editorsIn(target); len(views) > 0 {
			m.openOverlay(views[0])
		}
	}
	return nil
}

func (m *Model) invokeSelected(target *html.Node, ctrl bool) tea.Cmd {
	if output.IsPlaceholder(target) {
		m.togglePinTarget(target)
		return nil
	}
	actionables := output.Actionables(target)
	if len(actionables) == 0 {
		return nil
	}
	idx := m.actionable
	if idx >= len(actionables) {
		idx = 0
	}
	return m.invokeCallback(actionables[idx], protocol.Click(ctrl, false))
}

// togglePinTarget pins or unpins a target. A placeholder stands for the
// element pinned behind it.
func (m *Model) togglePinTarget(target *html.Node) {
	if output.IsPlaceholder(target) {
		target = m.doc.PinFor(target)
	}
	pinned, err := m.doc.TogglePin(target)
	if err != nil {
		m.reportDocError(err)
		return
	}
	targets := m.targets()
	for i, n := range targets {
		if n == target {
			m.selection = i
			break
		}
	}
	if !pinned && m.selection >= len(targets) {
		m.selection = len(targets) - 1
	}
}
