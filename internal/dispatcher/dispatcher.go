// Package dispatcher routes inbound host messages to handlers by tag and
// intercepts local slash commands before they reach the host.
package dispatcher

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/atomicstack/snek-console/internal/protocol"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
)

var localPattern = regexp.MustCompile(`^/(\w+)\s*(.*)$`)

// Handler reacts to one inbound message.
type Handler func(protocol.Message) tea.Cmd

// LocalCommand is a client-side command invoked as "/<Name> args".
type LocalCommand struct {
	Name    string
	Summary string
	Run     func(args string) tea.Cmd
}

// Sender delivers an expression to the host.
type Sender interface {
	Submit(ctx context.Context, expr string) error
}

// SubmitResultMsg reports the outcome of sending an expression to the host.
type SubmitResultMsg struct {
	Expr string
	Err  error
}

// Dispatcher holds the tag table and the local command table.
type Dispatcher struct {
	handlers map[string]Handler
	local    map[string]LocalCommand
	sender   Sender
}

// New returns a dispatcher that submits non-local expressions via sender.
func New(sender Sender) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		local:    make(map[string]LocalCommand),
		sender:   sender,
	}
}

// Handle registers h for tag, replacing any previous handler.
func (d *Dispatcher) Handle(tag string, h Handler) {
	d.handlers[tag] = h
}

// On registers a handler for the message variant T.
func On[T protocol.Message](d *Dispatcher, fn func(T) tea.Cmd) {
	var zero T
	d.Handle(zero.Tag(), func(msg protocol.Message) tea.Cmd {
		typed, ok := msg.(T)
		if !ok {
			return nil
		}
		return fn(typed)
	})
}

// Handles reports whether a handler is registered for tag.
func (d *Dispatcher) Handles(tag string) bool {
	_, ok := d.handlers[tag]
	return ok
}

// Route passes msg to the handler registered for its tag. Unknown tags are
// logged and ignored.
func (d *Dispatcher) Route(msg protocol.Message) tea.Cmd {
	if msg == nil {
		return nil
	}
	tag := msg.Tag()
	h, ok := d.handlers[tag]
	if !ok {
		events.Dispatch.Unknown(tag, spew.Sdump(msg))
		logging.Error(&protocol.UnknownCommandError{Tag: tag})
		return nil
	}
	events.Dispatch.Route(tag)
	return h(msg)
}

// HandleLocal registers a local command.
func (d *Dispatcher) HandleLocal(cmd LocalCommand) {
	d.local[cmd.Name] = cmd
}

// LocalCommands returns the registered local commands sorted by name.
func (d *Dispatcher) LocalCommands() []LocalCommand {
	out := make([]LocalCommand, 0, len(d.local))
	for _, cmd := range d.local {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseLocal splits a slash command into its name and argument text.
func ParseLocal(expr string) (name, args string, ok bool) {
	m := localPattern.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// Intercept runs expr as a local command when it names one. Slash commands
// with no local registration are left for the host.
func (d *Dispatcher) Intercept(expr string) (tea.Cmd, bool) {
	name, args, ok := ParseLocal(expr)
	if !ok {
		return nil, false
	}
	cmd, ok := d.local[name]
	if !ok {
		return nil, false
	}
	events.Dispatch.Local(name, args)
	return cmd.Run(args), true
}

// Submit intercepts local commands and otherwise sends expr to the host,
// reporting the outcome as a SubmitResultMsg.
func (d *Dispatcher) Submit(ctx context.Context, expr string) tea.Cmd {
	if cmd, ok := d.Intercept(expr); ok {
		return cmd
	}
	sender := d.sender
	return func() tea.Msg {
		events.Dispatch.Submit(expr)
		if sender == nil {
			return SubmitResultMsg{Expr: expr, Err: protocol.ErrConnectionClosed}
		}
		return SubmitResultMsg{Expr: expr, Err: sender.Submit(ctx, expr)}
	}
}
