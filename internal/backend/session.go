package backend

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/atomicstack/snek-console/internal/protocol"
	"github.com/coder/websocket"
	"github.com/pkg/errors"
)

const readLimit = 8 << 20

// Kind represents the type of event emitted by a Session.
type Kind int

const (
	// KindMessage carries a decoded inbound message, or a decode error.
	KindMessage Kind = iota
	// KindClosed is emitted once when the channel stops delivering frames.
	// Err is nil for an orderly close by the host.
	KindClosed
)

// Event conveys one inbound frame or the end of the connection.
type Event struct {
	Kind    Kind
	Message protocol.Message
	Err     error
}

// Session owns the duplex channel to the evaluation host. Inbound frames are
// decoded on a reader goroutine and published on Events in arrival order.
type Session struct {
	endpoint string
	conn     *websocket.Conn

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	writeMu sync.Mutex
	closed  atomic.Bool
	pending *pendingCalls
}

// Dial connects to endpoint and starts the reader goroutine.
func Dial(ctx context.Context, endpoint string) (*Session, error) {
	events.Transport.Dial(endpoint)
	conn, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", endpoint)
	}
	conn.SetReadLimit(readLimit)
	return newSession(endpoint, conn), nil
}

func newSession(endpoint string, conn *websocket.Conn) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		endpoint: endpoint,
		conn:     conn,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		pending:  newPendingCalls(),
	}
	s.wg.Add(1)
	go s.readLoop()
	go func() {
		s.wg.Wait()
		close(s.events)
	}()
	return s
}

// Endpoint returns the URL the session was dialled with.
func (s *Session) Endpoint() string {
	return s.endpoint
}

// Events returns the channel of inbound events. It is closed after the
// reader goroutine exits.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Closed reports whether the channel is known to be closed.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// Pending returns the number of calls awaiting a response.
func (s *Session) Pending() int {
	return s.pending.len()
}

// Send serialises msg and writes it. Sends on a closed channel are rejected
// before any write is attempted.
func (s *Session) Send(ctx context.Context, msg protocol.Message) error {
	if s.Closed() {
		events.Transport.SendRejected(msg.Tag())
		return protocol.ErrConnectionClosed
	}
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return errors.Wrapf(err, "send %s", msg.Tag())
	}
	events.Transport.Send(msg.Tag(), len(data))
	return nil
}

// Submit sends an expression for evaluation.
func (s *Session) Submit(ctx context.Context, expr string) error {
	return s.Send(ctx, protocol.Submit{Expr: expr})
}

// Call invokes the host callable ref and waits for the correlated response.
// The wait ends early only when ctx is done or the channel closes.
func (s *Session) Call(ctx context.Context, ref int64, args ...any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	id, replies, err := s.pending.add()
	if err != nil {
		events.Transport.SendRejected(protocol.TagCallback)
		return nil, err
	}
	events.Transport.CallStart(id, ref)
	if err := s.Send(ctx, protocol.Callback{ID: ref, ResponseID: id, Arguments: args}); err != nil {
		s.pending.drop(id)
		return nil, err
	}
	select {
	case r := <-replies:
		events.Transport.CallSettled(id, r.err != nil)
		return r.value, r.err
	case <-ctx.Done():
		s.pending.drop(id)
		return nil, ctx.Err()
	}
}

// Resolve settles the pending call matching resp. Responses for unknown ids
// (late or duplicated) are ignored and reported as false.
func (s *Session) Resolve(resp protocol.Response) bool {
	r := reply{value: resp.Value}
	if resp.Error != nil {
		r = reply{err: &protocol.RemoteCallError{
			ResponseID: resp.ResponseID,
			Type:       resp.Error.Type,
			Message:    resp.Error.Message,
		}}
	}
	if !s.pending.settle(resp.ResponseID, r) {
		events.Transport.Orphan(resp.ResponseID)
		return false
	}
	return true
}

// Close shuts the channel down from the client side.
func (s *Session) Close() error {
	s.markClosed("client")
	s.cancel()
	return s.conn.Close(websocket.StatusNormalClosure, "console closed")
}

// Wait blocks until the reader goroutine has exited and Events is closed.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) readLoop() {
	defer s.wg.Done()
	for {
		_, data, err := s.conn.Read(s.ctx)
		if err != nil {
			cause := closeCause(err)
			reason := "closed"
			if cause != nil {
				reason = cause.Error()
			}
			s.markClosed(reason)
			s.emit(Event{Kind: KindClosed, Err: cause})
			return
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			events.Transport.DecodeError(err)
			if !s.emit(Event{Kind: KindMessage, Err: err}) {
				return
			}
			continue
		}
		events.Transport.Receive(msg.Tag(), len(data))
		if !s.emit(Event{Kind: KindMessage, Message: msg}) {
			return
		}
	}
}

func (s *Session) emit(evt Event) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.events <- evt:
		return true
	}
}

func (s *Session) markClosed(reason string) {
	if s.closed.Swap(true) {
		return
	}
	rejected := s.pending.rejectAll(protocol.ErrConnectionClosed)
	events.Transport.Closed(reason, rejected)
}

// closeCause returns nil for an orderly close and the read error otherwise.
func closeCause(err error) error {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return nil
	}
	return errors.Wrap(err, "read")
}
