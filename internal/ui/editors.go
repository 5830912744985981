package ui

import (
	"context"

	"github.com/atomicstack/snek-console/internal/editor"
	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"
)

const liveEditorKind = "LiveEditor"

// bufferWidget holds an editor's displayed text while it is not open in
// the overlay; the overlay copies its textarea into it on every change.
type bufferWidget struct {
	text string
}

func (w *bufferWidget) Text() string        { return w.text }
func (w *bufferWidget) SetText(text string) { w.text = text }

// editorView ties an interactor element to its controller.
type editorView struct {
	node   *html.Node
	id     string
	ctrl   *editor.Controller
	widget *bufferWidget
}

type editorSavedMsg struct {
	ctrl   *editor.Controller
	text   string
	commit bool
	err    error
}

// bindInteractors creates controllers for editor interactors that appeared
// in the document since the last call.
func (m *Model) bindInteractors() {
	for _, it := range m.doc.NewInteractors() {
		if it.Kind != liveEditorKind {
			continue
		}
		params, err := editor.ParseParams(it.Params)
		if err != nil {
			logging.Error(err)
			continue
		}
		fragment := params.Fragment
		if fragment == "" {
			fragment = it.ID
		}
		var saver editor.Saver
		if m.session != nil {
			saver = params.Saver(m.session)
		}
		widget := &bufferWidget{}
		ctrl := editor.NewController(editor.Options{
			Fragment: fragment,
			Filename: params.Filename,
			Widget:   widget,
			Saver:    saver,
			Content:  params.Content,
		})
		// Without a fragment key there is nothing to share with.
		if fragment != "" {
			m.pool.Add(ctrl)
		}
		view := &editorView{node: it.Node, id: it.ID, ctrl: ctrl, widget: widget}
		m.editors = append(m.editors, view)
		if params.Autofocus {
			m.openOverlay(view)
		}
	}
}

// pruneEditors closes controllers whose element left the document.
func (m *Model) pruneEditors() {
	kept := m.editors[:0]
	for _, v := range m.editors {
		if m.doc.Attached(v.node) {
			kept = append(kept, v)
			continue
		}
		v.ctrl.Close()
		if m.overlay == v {
			m.closeOverlay()
		}
	}
	for i := len(kept); i < len(m.editors); i++ {
		m.editors[i] = nil
	}
	m.editors = kept
	m.doc.ForgetDetached()
}

func (m *Model) editorByID(id string) *editorView {
	if id == "" {
		return nil
	}
	for _, v := range m.editors {
		if v.id == id || v.ctrl.Fragment() == id {
			return v
		}
	}
	return nil
}

// editorsIn returns the editors rendered inside n.
func (m *Model) editorsIn(n *html.Node) []*editorView {
	var out []*editorView
	for _, v := range m.editors {
		for p := v.node; p != nil; p = p.Parent {
			if p == n {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// Editors returns the controllers bound to interactors, in binding order.
func (m *Model) Editors() []*editor.Controller {
	out := make([]*editor.Controller, 0, len(m.editors))
	for _, v := range m.editors {
		out = append(out, v.ctrl)
	}
	return out
}

func (m *Model) openOverlay(v *editorView) {
	m.closePopup()
	m.overlay = v
	m.editorInput.SetValue(v.widget.Text())
	m.setMode(ModeEditor)
}

func (m *Model) closeOverlay() {
	if m.overlay == nil {
		return
	}
	m.overlay = nil
	if m.mode == ModeEditor {
		m.setMode(ModeInput)
	}
}

// syncOverlay copies controller-driven text changes into the overlay.
func (m *Model) syncOverlay() {
	if m.overlay == nil {
		return
	}
	if text := m.overlay.widget.Text(); text != m.editorInput.Value() {
		m.editorInput.SetValue(text)
	}
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	v := m.overlay
	if v == nil {
		m.setMode(ModeInput)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeOverlay()
		return nil
	case key.Matches(msg, m.keys.Save):
		return m.saveEditor(v, false)
	case key.Matches(msg, m.keys.Commit):
		return m.saveEditor(v, true)
	case key.Matches(msg, m.keys.Reset):
		v.ctrl.ResetToSaved()
		m.syncOverlay()
		return nil
	}
	var cmd tea.Cmd
	m.editorInput, cmd = m.editorInput.Update(msg)
	if text := m.editorInput.Value(); text != v.widget.Text() {
		v.widget.SetText(text)
		v.ctrl.Changed()
	}
	return cmd
}

func (m *Model) saveEditor(v *editorView, commit bool) tea.Cmd {
	ctrl := v.ctrl
	text := ctrl.Displayed()
	id := "editor:save"
	if commit {
		id = "editor:commit"
	}
	return m.bus.Execute(command.Request{ID: id, Label: ctrl.Fragment(), Run: func(ctx context.Context) tea.Msg {
		return editorSavedMsg{ctrl: ctrl, text: text, commit: commit, err: ctrl.Submit(ctx, text, commit)}
	}})
}

func (m *Model) handleEditorSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(editorSavedMsg)
	if !ok {
		return nil
	}
	if err := saved.ctrl.Acknowledge(saved.text, saved.commit, saved.err); err != nil {
		logging.Error(err)
	}
	m.syncOverlay()
	return nil
}

func editorStatusLine(v *editorView) string {
	ctrl := v.ctrl
	name := ctrl.Filename()
	if name == "" {
		name = ctrl.Fragment()
	}
	line := name + " · " + ctrl.Message()
	if ctrl.Status() == editor.StatusError {
		return line
	}
	if ctrl.Status() == editor.StatusDirty {
		line += " (" + ctrl.Diff().String() + ")"
	}
	return line
}

var _ editor.Widget = (*bufferWidget)(nil)
