// Package command runs host-facing actions as Bubble Tea commands.
package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/snek-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request describes one asynchronous action.
type Request struct {
	ID    string
	Label string
	Run   func(ctx context.Context) tea.Msg
}

// Bus coordinates the execution of host-facing actions. Every action runs
// with the bus context, so cancelling it releases blocked calls.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus bound to ctx.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Context returns the context actions run with.
func (b *Bus) Context() context.Context {
	return b.ctx
}

// Execute wraps req into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	ctx := b.ctx
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run(ctx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
