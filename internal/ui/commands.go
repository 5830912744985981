package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atomicstack/snek-console/internal/dispatcher"
	"github.com/atomicstack/snek-console/internal/format/table"
	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/atomicstack/snek-console/internal/output"
	"github.com/atomicstack/snek-console/internal/protocol"
	"github.com/atomicstack/snek-console/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

type callbackResultMsg struct {
	ref   int64
	label string
	value json.RawMessage
	err   error
}

type clipboardResultMsg struct {
	size int
	err  error
}

func (m *Model) registerLocalCommands() {
	for _, cmd := range []dispatcher.LocalCommand{
		{Name: "help", Summary: "list console commands", Run: m.cmdHelp},
		{Name: "status", Summary: "show status history", Run: m.cmdStatus},
		{Name: "clear", Summary: "clear the output", Run: m.cmdClear},
		{Name: "pins", Summary: "list pinned elements", Run: m.cmdPins},
		{Name: "copy", Summary: "copy the last result to the clipboard", Run: m.cmdCopy},
		{Name: "stop", Summary: "interrupt the running evaluation", Run: m.cmdStop},
		{Name: "quit", Summary: "leave the console", Run: m.cmdQuit},
	} {
		m.dispatcher.HandleLocal(cmd)
	}
}

func (m *Model) addInfo(lines []string) {
	m.doc.AddText(output.LineInfo, strings.Join(lines, "\n"))
	m.follow = true
}

func (m *Model) cmdHelp(string) tea.Cmd {
	cmds := m.dispatcher.LocalCommands()
	rows := make([][]string, 0, len(cmds))
	for _, c := range cmds {
		rows = append(rows, []string{"/" + c.Name, c.Summary})
	}
	m.addInfo(table.Format(rows, nil))
	return nil
}

func (m *Model) cmdStatus(string) tea.Cmd {
	history := m.status.history
	if len(history) == 0 {
		m.addInfo([]string{"no status messages"})
		return nil
	}
	rows := make([][]string, 0, len(history))
	for _, entry := range history {
		rows = append(rows, []string{entry.At.Format("15:04:05"), entry.Type, entry.Value})
	}
	m.addInfo(table.WithHeader([]string{"TIME", "TYPE", "MESSAGE"}, rows, nil))
	return nil
}

func (m *Model) cmdClear(string) tea.Cmd {
	m.doc.ClearOutput()
	m.selection = 0
	return nil
}

func (m *Model) cmdPins(string) tea.Cmd {
	pins := m.doc.Pins()
	if len(pins) == 0 {
		m.addInfo([]string{"nothing is pinned"})
		return nil
	}
	rows := make([][]string, 0, len(pins))
	for i, rec := range pins {
		label := output.Attr(rec.Element, "id")
		if label == "" {
			label = firstLine(output.Text(output.LineBody(rec.Element)))
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), rec.ID, label})
	}
	m.addInfo(table.WithHeader([]string{"#", "PIN", "ELEMENT"}, rows, []table.Alignment{table.AlignRight}))
	return nil
}

func (m *Model) cmdCopy(string) tea.Cmd {
	text, ok := m.doc.LastText(output.LineResult, output.LinePrint)
	if !ok {
		return m.setStatus(statusWarning, "there is no result to copy")
	}
	write := m.clipboard
	return func() tea.Msg {
		return clipboardResultMsg{size: len(text), err: write(text)}
	}
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		logging.Error(result.err)
		return m.setStatus(statusError, fmt.Sprintf("copy failed: %v", result.err))
	}
	return m.setStatus(statusSuccess, fmt.Sprintf("copied %d bytes", result.size))
}

func (m *Model) cmdStop(string) tea.Cmd {
	ref, ok := m.lib[libStop]
	if !ok {
		return m.setStatus(statusWarning, "the host does not support stopping evaluations")
	}
	return m.invokeRef(ref, "stop")
}

func (m *Model) cmdQuit(string) tea.Cmd {
	return tea.Quit
}

// invokeCallback calls the host callable behind an output element, passing
// the event that triggered it.
func (m *Model) invokeCallback(a output.Actionable, evt protocol.EventDescriptor) tea.Cmd {
	return m.invokeRef(a.Ref, a.Label, evt)
}

func (m *Model) invokeRef(ref int64, label string, args ...any) tea.Cmd {
	session := m.session
	if session == nil {
		return m.setStatus(statusError, protocol.ErrConnectionClosed.Error())
	}
	return m.bus.Execute(command.Request{ID: "callback", Label: label, Run: func(ctx context.Context) tea.Msg {
		value, err := session.Call(ctx, ref, args...)
		return callbackResultMsg{ref: ref, label: label, value: value, err: err}
	}})
}

func (m *Model) handleCallbackResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(callbackResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		logging.Error(result.err)
		events.Action.Error(result.err)
		return m.setStatus(statusError, protocol.DisplayMessage(result.err))
	}
	events.Action.Success(result.label)
	return nil
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
