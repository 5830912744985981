package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/snek-console/internal/editor"
	"github.com/atomicstack/snek-console/internal/output"
	uistate "github.com/atomicstack/snek-console/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/net/html"
)

const (
	defaultWidth       = 80
	defaultHeight      = 24
	popupMaxItems      = 10
	pinnedMaxFraction  = 3 // the pinned pane takes at most 1/3 of the height
	editorPreviewLines = 12
	gutterMark         = "▎ "
	selectedMark       = "› "
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries ANSI escapes
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	sections := []string{renderLines(applyWidth([]styledLine{m.headerLine()}, width))}
	if pinned := m.pinnedLines(width); len(pinned) > 0 {
		sections = append(sections, renderLines(pinned))
	}
	sections = append(sections, m.output.View())
	if m.popup != nil && m.popup.Visible {
		sections = append(sections, renderLines(m.popupLines(width)))
	}
	if m.overlay != nil {
		sections = append(sections, renderLines(m.overlayHeader(width)), m.editorInput.View())
	}
	sections = append(sections, m.input.View(), renderLines(applyWidth([]styledLine{m.statusLine()}, width)))
	if m.showFooter {
		m.help.Width = width
		sections = append(sections, renderLines([]styledLine{{text: m.help.View(m.keys.forMode(m.mode)), raw: true}}))
	}
	return strings.Join(sections, "\n")
}

func (m *Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) contentHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

// layout sizes the widgets to the space left around the fixed sections.
func (m *Model) layout() {
	width := m.contentWidth()
	m.input.SetWidth(width)
	m.editorInput.SetWidth(width)
	used := 2 + m.input.Height() // header, status line
	if m.showFooter {
		used++
	}
	used += len(m.pinnedLines(width))
	if m.popup != nil && m.popup.Visible {
		used += len(m.popupLines(width))
	}
	if m.overlay != nil {
		used += 1 + m.editorInput.Height()
	}
	height := m.contentHeight() - used
	if height < 1 {
		height = 1
	}
	m.output.Width = width
	m.output.Height = height
}

// refreshOutput re-renders the output document into the viewport.
func (m *Model) refreshOutput() {
	width := m.contentWidth()
	var lines []styledLine
	selected := m.selectedTarget()
	selectedStart, selectedEnd := -1, -1
	for _, n := range m.doc.Lines() {
		if !m.visible(n) {
			continue
		}
		isSelected := m.mode == ModeSelect && n == selected
		if isSelected {
			selectedStart = len(lines)
		}
		lines = append(lines, m.blockLines(n, isSelected)...)
		if isSelected {
			selectedEnd = len(lines)
		}
	}
	m.output.SetContent(renderLines(applyWidth(lines, width)))
	switch {
	case selectedStart >= 0:
		if selectedStart < m.output.YOffset {
			m.output.SetYOffset(selectedStart)
		} else if selectedEnd > m.output.YOffset+m.output.Height {
			m.output.SetYOffset(selectedEnd - m.output.Height)
		}
	case m.follow:
		m.output.GotoBottom()
	}
}

func (m *Model) headerLine() styledLine {
	title := m.doc.Nav()
	if title == "" {
		title = "snek-console"
	}
	header := title
	if styles.Header != nil {
		header = styles.Header.Render(title)
	}
	if mode := strings.TrimSpace(m.doc.Mode()); mode != "" {
		badge := " " + mode + " "
		if styles.Mode != nil {
			badge = styles.Mode.Render(badge)
		}
		header = badge + " " + header
	}
	return styledLine{text: header, raw: true}
}

func (m *Model) pinnedLines(width int) []styledLine {
	pinned := m.doc.PinnedLines()
	if len(pinned) == 0 {
		return nil
	}
	selected := m.selectedTarget()
	lines := []styledLine{{text: fmt.Sprintf("pinned (%d)", len(pinned)), style: styles.PinnedTitle}}
	for _, n := range pinned {
		lines = append(lines, m.blockLines(n, m.mode == ModeSelect && n == selected)...)
	}
	limit := m.contentHeight() / pinnedMaxFraction
	if limit < 2 {
		limit = 2
	}
	return limitHeight(applyWidth(lines, width), limit, width)
}

// blockLines renders one output line, pinned element or placeholder.
func (m *Model) blockLines(n *html.Node, selected bool) []styledLine {
	mark := gutterMark
	gutter := styles.GutterFor(output.LineType(n))
	if selected {
		mark = selectedMark
		gutter = styles.Cursor
	}
	prefix := mark
	if gutter != nil {
		prefix = gutter.Render(mark)
	}
	if output.IsPlaceholder(n) {
		return []styledLine{{text: prefix + renderStyled(styles.Placeholder, "[pinned]"), raw: true}}
	}
	body := styles.Output
	if output.LineType(n) == output.LineEcho {
		body = styles.Echo
	}
	var lines []styledLine
	if text := output.Text(output.LineBody(n)); text != "" {
		for _, line := range strings.Split(text, "\n") {
			lines = append(lines, styledLine{text: prefix + renderStyled(body, line), raw: true})
		}
	}
	for _, v := range m.editorsIn(n) {
		lines = append(lines, m.editorBlock(v, prefix)...)
	}
	if selected {
		if actions := m.actionLine(n); actions != "" {
			lines = append(lines, styledLine{text: prefix + actions, raw: true})
		}
	}
	if len(lines) == 0 {
		lines = append(lines, styledLine{text: prefix, raw: true})
	}
	return lines
}

func (m *Model) editorBlock(v *editorView, prefix string) []styledLine {
	title := renderStyled(editorStyle(v.ctrl.Status()), "["+editorStatusLine(v)+"]")
	lines := []styledLine{{text: prefix + title, raw: true}}
	body := strings.Split(v.widget.Text(), "\n")
	hidden := 0
	if len(body) > editorPreviewLines {
		hidden = len(body) - editorPreviewLines
		body = body[:editorPreviewLines]
	}
	for _, line := range body {
		lines = append(lines, styledLine{text: prefix + renderStyled(styles.Output, "│ "+line), raw: true})
	}
	if hidden > 0 {
		lines = append(lines, styledLine{text: prefix + renderStyled(styles.Placeholder, fmt.Sprintf("│ … %d more lines", hidden)), raw: true})
	}
	return lines
}

func (m *Model) actionLine(n *html.Node) string {
	actionables := output.Actionables(n)
	if len(actionables) == 0 {
		return ""
	}
	parts := make([]string, 0, len(actionables))
	for i, a := range actionables {
		label := "[" + firstLine(a.Label) + "]"
		style := styles.Item
		if i == m.actionable {
			style = styles.SelectedItem
		}
		parts = append(parts, renderStyled(style, label))
	}
	return strings.Join(parts, " ")
}

func (m *Model) overlayHeader(width int) []styledLine {
	v := m.overlay
	text := "editing " + editorStatusLine(v)
	return applyWidth([]styledLine{{text: renderStyled(editorStyle(v.ctrl.Status()), text), raw: true}}, width)
}

func editorStyle(status editor.Status) *lipgloss.Style {
	switch status {
	case editor.StatusSaved:
		return styles.EditorSaved
	case editor.StatusLive:
		return styles.EditorLive
	case editor.StatusDirty:
		return styles.EditorDirty
	case editor.StatusError:
		return styles.EditorError
	}
	return styles.EditorTitle
}

func (m *Model) maxPopupItems() int {
	limit := popupMaxItems
	if third := m.contentHeight() / 3; third < limit {
		limit = third
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

func (m *Model) popupLines(width int) []styledLine {
	p := m.popup
	title := "history"
	if p.Kind == uistate.KindInteractor {
		title = "attach"
	}
	lines := []styledLine{
		{text: fmt.Sprintf("%s (%d/%d)", title, p.Len(), len(p.Entries)), style: styles.PopupTitle},
		{text: m.filterPrompt(), raw: true},
	}
	if p.Len() == 0 {
		msg := "no matches"
		if p.Remote && len(p.Entries) == 0 {
			msg = "waiting for entries…"
		}
		lines = append(lines, styledLine{text: msg, style: styles.Placeholder})
		return applyWidth(lines, width)
	}
	start := p.ViewportOffset
	end := start + m.maxPopupItems()
	if end > p.Len() {
		end = p.Len()
	}
	for i := start; i < end; i++ {
		lines = append(lines, styledLine{text: m.popupItem(i, width), raw: true})
	}
	return lines
}

// popupItem renders match i on one line with its matched runes highlighted.
func (m *Model) popupItem(i, width int) string {
	p := m.popup
	selected := p.IsSelected(i)
	indicator, itemStyle := "  ", styles.Item
	if selected {
		indicator = renderStyled(styles.SelectedItemIndicator, "▌ ")
		itemStyle = styles.SelectedItem
	} else {
		indicator = renderStyled(styles.ItemIndicator, indicator)
	}
	text := p.Text(i)
	more := false
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
		more = true
	}
	runes := []rune(text)
	if limit := width - 4; limit > 0 && len(runes) > limit {
		runes = runes[:limit]
		more = true
	}
	var b strings.Builder
	pos := 0
	for _, span := range p.Matches[i].Spans {
		if span.Start >= len(runes) {
			break
		}
		end := min(span.End, len(runes))
		b.WriteString(renderStyled(itemStyle, string(runes[pos:span.Start])))
		b.WriteString(renderStyled(styles.Match, string(runes[span.Start:end])))
		pos = end
	}
	b.WriteString(renderStyled(itemStyle, string(runes[pos:])))
	if more {
		b.WriteString(renderStyled(styles.Placeholder, " …"))
	}
	return indicator + b.String()
}

func (m *Model) statusLine() styledLine {
	entry := m.status.current
	left := entry.Text()
	if left != "" {
		left = renderStyled(styles.Status(entry.DisplayType()), left)
	}
	right := m.mode.String()
	if m.session == nil || m.session.Closed() {
		right = "offline · " + right
	}
	right = renderStyled(styles.Footer, right)
	gap := m.contentWidth() - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return styledLine{text: left + strings.Repeat(" ", gap) + right, raw: true}
}

func renderStyled(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width), style: styles.Placeholder})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if ansi.StringWidth(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw {
			out[i] = line.text
			continue
		}
		out[i] = renderStyled(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
