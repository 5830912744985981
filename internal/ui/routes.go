package ui

import (
	"github.com/atomicstack/snek-console/internal/dispatcher"
	"github.com/atomicstack/snek-console/internal/editor"
	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/atomicstack/snek-console/internal/protocol"
	tea "github.com/charmbracelet/bubbletea"
)

// fragmentChannel is the broadcast key reserved for editor content updates.
const fragmentChannel = "fragment"

func (m *Model) registerRoutes() {
	d := m.dispatcher
	dispatcher.On(d, m.recvResource)
	dispatcher.On(d, m.recvResult)
	dispatcher.On(d, m.recvEcho)
	dispatcher.On(d, m.recvResponse)
	dispatcher.On(d, m.recvPasteCode)
	dispatcher.On(d, m.recvStatus)
	dispatcher.On(d, m.recvSetNav)
	dispatcher.On(d, m.recvEval)
	dispatcher.On(d, m.recvSetMode)
	dispatcher.On(d, m.recvAddHistory)
	dispatcher.On(d, m.recvSetLib)
	dispatcher.On(d, m.recvBroadcast)
	dispatcher.On(d, m.recvFill)
	dispatcher.On(d, m.recvInsert)
	dispatcher.On(d, m.recvClear)
}

func (m *Model) recvResource(msg protocol.Resource) tea.Cmd {
	m.doc.AddResource(msg.Value)
	return nil
}

func (m *Model) recvResult(msg protocol.Result) tea.Cmd {
	m.reportDocError(m.doc.AddResult(msg))
	m.bindInteractors()
	return nil
}

func (m *Model) recvEcho(msg protocol.Echo) tea.Cmd {
	m.doc.AddEcho(msg)
	m.follow = true
	return nil
}

func (m *Model) recvResponse(msg protocol.Response) tea.Cmd {
	if m.session != nil {
		m.session.Resolve(msg)
	}
	return nil
}

func (m *Model) recvPasteCode(msg protocol.PasteCode) tea.Cmd {
	m.input.InsertString(msg.Value)
	return nil
}

func (m *Model) recvStatus(msg protocol.Status) tea.Cmd {
	return m.setStatus(msg.Type, msg.Value)
}

func (m *Model) recvSetNav(msg protocol.SetNav) tea.Cmd {
	m.reportDocError(m.doc.SetNav(msg.Value, msg.NavID))
	return nil
}

func (m *Model) recvSetMode(msg protocol.SetMode) tea.Cmd {
	m.reportDocError(m.doc.SetMode(msg.HTML))
	return nil
}

func (m *Model) recvAddHistory(msg protocol.AddHistory) tea.Cmd {
	m.history.Seed(msg.History)
	return nil
}

func (m *Model) recvSetLib(msg protocol.SetLib) tea.Cmd {
	for name, ref := range msg.Lib {
		m.lib[name] = ref
	}
	return nil
}

func (m *Model) recvBroadcast(msg protocol.Broadcast) tea.Cmd {
	if msg.Key == fragmentChannel {
		slot, ok := editor.ParseSlot(msg.Slot)
		if !ok {
			logging.Errorf("broadcast for fragment %q names unknown slot %q", msg.Subkey, msg.Slot)
			return nil
		}
		m.pool.Broadcast(msg.Subkey, msg.Content, slot, nil)
		m.syncOverlay()
		return nil
	}
	_, err := m.doc.Broadcast(msg.Key, msg.Subkey, msg.Value)
	m.reportDocError(err)
	m.bindInteractors()
	return nil
}

func (m *Model) recvFill(msg protocol.Fill) tea.Cmd {
	m.reportDocError(m.doc.Fill(msg.Target, msg.Value))
	m.bindInteractors()
	return nil
}

func (m *Model) recvInsert(msg protocol.Insert) tea.Cmd {
	m.reportDocError(m.doc.Insert(msg.Target, msg.Value, msg.Index))
	m.bindInteractors()
	return nil
}

func (m *Model) recvClear(msg protocol.Clear) tea.Cmd {
	m.reportDocError(m.doc.Clear(msg.Target))
	return nil
}

// recvEval performs one of the closed set of client operations.
func (m *Model) recvEval(msg protocol.Eval) tea.Cmd {
	if !msg.Op.Valid() {
		events.Dispatch.RejectedOp(string(msg.Op))
		logging.Error(&protocol.UnknownCommandError{Tag: protocol.TagEval + ":" + string(msg.Op)})
		return nil
	}
	switch msg.Op {
	case protocol.OpFocusInput:
		m.closePopup()
		m.closeOverlay()
		m.setMode(ModeInput)
	case protocol.OpClearOutput:
		m.doc.ClearOutput()
	case protocol.OpScrollEnd:
		m.follow = true
	case protocol.OpSetInput:
		m.input.SetValue(msg.Value)
		m.history.SetDraft(msg.Value)
	case protocol.OpTogglePin:
		_, err := m.doc.TogglePinByID(msg.Target)
		m.reportDocError(err)
	case protocol.OpOpenEditor:
		view := m.editorByID(msg.Target)
		if view == nil {
			m.reportDocError(&protocol.UnknownCommandError{Tag: protocol.TagEval + ":" + string(msg.Op) + ":" + msg.Target})
			return nil
		}
		m.openOverlay(view)
	}
	return nil
}

func (m *Model) reportDocError(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	events.Action.Error(err)
}
