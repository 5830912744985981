package editor

import (
	"context"

	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/atomicstack/snek-console/internal/protocol"
)

// Widget is the part of an editing widget the controller drives.
type Widget interface {
	Text() string
	SetText(string)
}

// Saver acknowledges fragment text on the host.
type Saver interface {
	Save(ctx context.Context, text string) error
	Commit(ctx context.Context, text string) error
}

// Options configures a Controller.
type Options struct {
	Fragment string
	Filename string
	Widget   Widget
	Saver    Saver
	Content  Content
}

// Controller binds one editing widget to a fragment. Controllers are driven
// from the UI event loop and are not safe for concurrent use; only the Saver
// calls may run elsewhere.
type Controller struct {
	fragment string
	filename string
	widget   Widget
	saver    Saver
	content  Content
	state    State
	pool     *Pool
	closed   bool
}

// NewController creates a controller. An empty widget is seeded with the
// live text.
func NewController(opts Options) *Controller {
	c := &Controller{
		fragment: opts.Fragment,
		filename: opts.Filename,
		widget:   opts.Widget,
		saver:    opts.Saver,
		content:  opts.Content,
	}
	if c.widget.Text() == "" && c.content.Live != "" {
		c.widget.SetText(c.content.Live)
	}
	c.state = Settled(c.widget.Text(), c.content)
	events.Editor.Open(c.fragment, c.filename)
	return c
}

func (c *Controller) Fragment() string { return c.fragment }
func (c *Controller) Filename() string { return c.filename }
func (c *Controller) Content() Content { return c.content }
func (c *Controller) State() State     { return c.state }
func (c *Controller) Status() Status   { return c.state.Status }
func (c *Controller) Message() string  { return c.state.Message }

// Displayed returns the widget's current text.
func (c *Controller) Displayed() string {
	return c.widget.Text()
}

// Changed handles a content-change notification from the widget.
func (c *Controller) Changed() Status {
	c.setState(c.state.Next(c.widget.Text(), c.content))
	return c.state.Status
}

// Save snapshots the displayed text, sends it through the Saver and applies
// the outcome. It blocks for the duration of the host call.
func (c *Controller) Save(ctx context.Context, commit bool) error {
	text := c.Displayed()
	return c.Acknowledge(text, commit, c.Submit(ctx, text, commit))
}

// Submit performs only the host call for text. It touches no controller
// state and may run off the event loop.
func (c *Controller) Submit(ctx context.Context, text string, commit bool) error {
	events.Editor.Save(c.fragment, commit)
	if c.saver == nil {
		return &protocol.GenericRemoteError{Kind: "Error", Message: "no save capability"}
	}
	if commit {
		return c.saver.Commit(ctx, text)
	}
	return c.saver.Save(ctx, text)
}

// Acknowledge applies the result of a save of text. On success Live (and
// Saved for a commit) advance and every sibling view is notified; on failure
// the controller enters the error state. err is returned unchanged.
func (c *Controller) Acknowledge(text string, commit bool, err error) error {
	if err != nil {
		message := protocol.DisplayMessage(err)
		events.Editor.SaveFailed(c.fragment, message)
		c.setState(Failed(message))
		return err
	}
	c.content.Live = text
	slot := SlotLive
	if commit {
		c.content.Saved = text
		slot = SlotSaved
	}
	c.setState(Settled(c.widget.Text(), c.content))
	if c.pool != nil {
		c.pool.Signal(c, text, slot)
	}
	return nil
}

// ResetToSaved replaces the displayed text with the saved version. The host
// is not contacted.
func (c *Controller) ResetToSaved() {
	events.Editor.Reset(c.fragment)
	c.widget.SetText(c.content.Saved)
	c.setState(Settled(c.widget.Text(), c.content))
}

// Notify applies a save acknowledged through another view of the same
// fragment. A commit acknowledges both slots. A view without local edits
// adopts the new text.
func (c *Controller) Notify(text string, slot Slot) {
	untouched := c.widget.Text() == c.content.Live
	c.content.Live = text
	if slot == SlotSaved {
		c.content.Saved = text
	}
	if untouched {
		c.widget.SetText(text)
	}
	c.setState(c.state.Next(c.widget.Text(), c.content))
}

// Close marks the controller as gone; pools drop it on their next pass.
func (c *Controller) Close() {
	c.closed = true
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.closed
}

func (c *Controller) setState(next State) {
	changed := next.Status != c.state.Status || next.Message != c.state.Message
	c.state = next
	if changed {
		events.Editor.Status(c.fragment, next.Status.String(), next.Message)
	}
}
