package ui

import (
	"strings"
	"unicode"

	"github.com/atomicstack/snek-console/internal/dispatcher"
	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/protocol"
	uistate "github.com/atomicstack/snek-console/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitInput()
	case key.Matches(msg, m.keys.HistoryPrev) && m.input.Line() == 0:
		m.shiftHistory(1)
		return nil
	case key.Matches(msg, m.keys.HistoryNext) && m.input.Line() >= m.input.LineCount()-1:
		m.shiftHistory(-1)
		return nil
	case key.Matches(msg, m.keys.Search):
		m.openHistoryPopup()
		return nil
	case key.Matches(msg, m.keys.Interactors):
		return m.openInteractorPopup()
	case key.Matches(msg, m.keys.SelectMode):
		m.enterSelectMode()
		return nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.output.HalfViewUp()
		m.follow = false
		return nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.output.HalfViewDown()
		m.follow = m.output.AtBottom()
		return nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.recall = nil
	}
	return cmd
}

// submitInput records the draft in history and hands it to the dispatcher,
// which either runs a local command or sends it to the host.
func (m *Model) submitInput() tea.Cmd {
	text := m.input.Value()
	entry := text
	if strings.TrimSpace(entry) == "" {
		// Blank input only resets the draft; the host still gets it.
		entry = ""
	}
	if m.history.Submit(entry) && m.historyDB != nil {
		if err := m.historyDB.Append(entry); err != nil {
			logging.Error(err)
		}
	}
	m.recall = nil
	m.input.Reset()
	m.follow = true
	return m.dispatcher.Submit(m.bus.Context(), text)
}

// historyRecall is an arrow-key walk through history. A non-blank draft
// restricts the walk to its fuzzy matches; items lists the history indices
// in match order with the draft slot first. The walk ends when the input no
// longer shows the text it last put there.
type historyRecall struct {
	items    []int
	pos      int
	expected string
}

func newHistoryRecall(entries []string, draft string) *historyRecall {
	r := &historyRecall{expected: draft}
	if strings.TrimSpace(draft) == "" {
		return r
	}
	r.items = []int{0}
	for _, match := range uistate.FilterEntries(entries, draft) {
		if match.Item != 0 {
			r.items = append(r.items, match.Item)
		}
	}
	return r
}

func (m *Model) shiftHistory(delta int) {
	current := m.input.Value()
	if m.recall == nil || m.recall.expected != current {
		m.history.ResetCursor()
		m.history.SetDraft(current)
		m.recall = newHistoryRecall(m.history.Entries(), current)
	}
	var text string
	var moved bool
	if r := m.recall; r.items == nil {
		text, moved = m.history.Shift(delta, current)
	} else {
		next := r.pos + delta
		if next < 0 {
			next = 0
		}
		if next > len(r.items)-1 {
			next = len(r.items) - 1
		}
		if next == r.pos {
			return
		}
		r.pos = next
		text, moved = m.history.Seek(r.items[next])
	}
	if !moved {
		return
	}
	m.recall.expected = text
	m.input.SetValue(text)
	if delta > 0 {
		// Land on the first line so a further "older" press keeps walking.
		for m.input.Line() > 0 {
			m.input.CursorUp()
		}
	}
}

func (m *Model) handleSubmitResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(dispatcher.SubmitResultMsg)
	if !ok || result.Err == nil {
		return nil
	}
	logging.Error(result.Err)
	return m.setStatus(statusError, protocol.DisplayMessage(result.Err))
}

// handleFilterInput edits the popup filter. It reports whether the filter
// text changed. The popup traces its own filter edits.
func (m *Model) handleFilterInput(msg tea.KeyMsg) bool {
	p := m.popup
	if p == nil {
		return false
	}
	switch msg.String() {
	case "ctrl+u":
		return p.ClearFilter()
	case "ctrl+w":
		return p.DeleteFilterWordBackward()
	case "ctrl+a":
		p.MoveFilterCursorStart()
		return false
	case "ctrl+e":
		p.MoveFilterCursorEnd()
		return false
	case "alt+b":
		p.MoveFilterCursorWordBackward()
		return false
	case "alt+f":
		p.MoveFilterCursorWordForward()
		return false
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return p.DeleteFilterRuneBackward()
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeyLeft:
		p.MoveFilterCursorRuneBackward()
	case tea.KeyRight:
		p.MoveFilterCursorRuneForward()
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if m.popup == nil || text == "" {
		return false
	}
	return m.popup.InsertFilterText(text)
}

// filterPrompt renders the popup filter with a block cursor, or a
// placeholder when the filter is empty.
func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := render(styles.FilterPrompt, "» ")
	p := m.popup
	if p == nil {
		return prompt
	}
	if p.Filter == "" {
		placeholder := []rune("(type to filter)")
		m.filterCursor.TextStyle = lipgloss.Style{}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = *styles.FilterPlaceholder
		}
		return prompt + m.renderFilterCursor(string(placeholder[0])) + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = *styles.Filter
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + render(styles.Filter, after)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Inline(true)
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Inline(true)).Render(char)
	}
	return base.Reverse(true).Render(char)
}
