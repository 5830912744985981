package ui

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/atomicstack/snek-console/internal/backend"
	"github.com/atomicstack/snek-console/internal/dispatcher"
	"github.com/atomicstack/snek-console/internal/editor"
	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/atomicstack/snek-console/internal/output"
	"github.com/atomicstack/snek-console/internal/protocol"
	"github.com/atomicstack/snek-console/internal/state"
	"github.com/atomicstack/snek-console/internal/theme"
	"github.com/atomicstack/snek-console/internal/ui/command"
	uistate "github.com/atomicstack/snek-console/internal/ui/state"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects which part of the console receives key presses.
type Mode int

const (
	ModeInput Mode = iota
	ModePopup
	ModeSelect
	ModeEditor
)

func (m Mode) String() string {
	switch m {
	case ModePopup:
		return "popup"
	case ModeSelect:
		return "select"
	case ModeEditor:
		return "editor"
	}
	return "input"
}

// populateInterval limits how often the host is asked for popup entries.
const populateInterval = 50 * time.Millisecond

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Session is the transport the console talks to the host through.
type Session interface {
	Events() <-chan backend.Event
	Submit(ctx context.Context, expr string) error
	Call(ctx context.Context, ref int64, args ...any) (json.RawMessage, error)
	Resolve(resp protocol.Response) bool
	Closed() bool
}

// HistoryWriter persists submitted entries.
type HistoryWriter interface {
	Append(entry string) error
}

// Options configures a Model.
type Options struct {
	Session    Session
	History    state.HistoryStore
	HistoryDB  HistoryWriter
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Context    context.Context
}

// Model implements the Bubble Tea model for the console.
type Model struct {
	session    Session
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	doc        *output.Document
	history    state.HistoryStore
	historyDB  HistoryWriter
	pool       *editor.Pool
	editors    []*editorView
	lib        map[string]int64
	throttle   *backend.Throttle

	input        textarea.Model
	editorInput  textarea.Model
	output       viewport.Model
	help         help.Model
	keys         keyMap
	filterCursor cursor.Model

	popup      *uistate.Popup
	recall     *historyRecall
	overlay    *editorView
	selection  int
	actionable int
	follow     bool
	status     statusBar

	mode        Mode
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	handlers map[reflect.Type]msgHandler

	now       func() time.Time
	tick      func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	listen    func(<-chan backend.Event) tea.Cmd
	clipboard func(string) error
}

// NewModel initialises the console with its collaborators.
func NewModel(opts Options) *Model {
	history := opts.History
	if history == nil {
		history = state.NewHistoryStore()
	}
	m := &Model{
		session:    opts.Session,
		bus:        command.New(opts.Context),
		doc:        output.New(),
		history:    history,
		historyDB:  opts.HistoryDB,
		pool:       editor.NewPool(),
		lib:        make(map[string]int64),
		throttle:   backend.NewThrottle(populateInterval),
		output:     viewport.New(0, 0),
		help:       help.New(),
		keys:       defaultKeyMap(),
		follow:     true,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		mode:       ModeInput,
		now:        time.Now,
		tick:       tea.Tick,
		listen:     waitForSessionEvent,
		clipboard:  clipboard.WriteAll,
	}
	var sender dispatcher.Sender
	if opts.Session != nil {
		sender = opts.Session
	}
	m.dispatcher = dispatcher.New(sender)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.input = newTextArea("› ", 3)
	m.input.Focus()
	m.editorInput = newTextArea("", 10)
	c := cursor.New()
	c.SetMode(cursor.CursorStatic)
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	m.filterCursor = c
	m.registerHandlers()
	m.registerRoutes()
	m.registerLocalCommands()
	m.layout()
	return m
}

func newTextArea(prompt string, height int) textarea.Model {
	ta := textarea.New()
	ta.Prompt = prompt
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(height)
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.KeyMap.InsertNewline.SetKeys("ctrl+j", "alt+enter")
	return ta
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("snek-console")}
	if m.session != nil {
		cmds = append(cmds, m.listen(m.session.Events()))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):                 m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):          m.handleWindowSizeMsg,
		reflect.TypeOf(tea.BlurMsg{}):                m.handleBlurMsg,
		reflect.TypeOf(sessionEventMsg{}):            m.handleSessionEventMsg,
		reflect.TypeOf(sessionDoneMsg{}):             m.handleSessionDoneMsg,
		reflect.TypeOf(dispatcher.SubmitResultMsg{}): m.handleSubmitResultMsg,
		reflect.TypeOf(callbackResultMsg{}):          m.handleCallbackResultMsg,
		reflect.TypeOf(editorSavedMsg{}):             m.handleEditorSavedMsg,
		reflect.TypeOf(popupEntriesMsg{}):            m.handlePopupEntriesMsg,
		reflect.TypeOf(statusDecayMsg{}):             m.handleStatusDecayMsg,
		reflect.TypeOf(clipboardResultMsg{}):         m.handleClipboardResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.pruneEditors()
	m.layout()
	m.refreshOutput()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	switch mode {
	case ModeInput:
		m.input.Focus()
		m.editorInput.Blur()
	case ModeEditor:
		m.input.Blur()
		m.editorInput.Focus()
	default:
		m.input.Blur()
		m.editorInput.Blur()
	}
	events.UI.Focus(mode.String())
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) handleBlurMsg(msg tea.Msg) tea.Cmd {
	if m.mode == ModePopup {
		m.closePopup()
	}
	return nil
}

// Document exposes the output document.
func (m *Model) Document() *output.Document { return m.doc }

// History exposes the history store.
func (m *Model) History() state.HistoryStore { return m.history }

// Mode returns the active input mode.
func (m *Model) Mode() Mode { return m.mode }

// Popup returns the open popup, if any.
func (m *Model) Popup() *uistate.Popup { return m.popup }

// InputValue returns the text in the input editor.
func (m *Model) InputValue() string { return m.input.Value() }

// Status returns the current status-bar entry.
func (m *Model) Status() StatusEntry { return m.status.current }

// StatusHistory returns every status shown, oldest first.
func (m *Model) StatusHistory() []StatusEntry {
	return append([]StatusEntry(nil), m.status.history...)
}

// Lib returns the id registered by the host for a named capability.
func (m *Model) Lib(name string) (int64, bool) {
	ref, ok := m.lib[name]
	return ref, ok
}
