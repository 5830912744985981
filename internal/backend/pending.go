package backend

import (
	"encoding/json"
	"sync"
)

type reply struct {
	value json.RawMessage
	err   error
}

// pendingCalls correlates outstanding callbacks with their responses by a
// monotonically increasing id.
type pendingCalls struct {
	mu    sync.Mutex
	next  int64
	calls map[int64]chan reply
	err   error
}

func newPendingCalls() *pendingCalls {
	return &pendingCalls{calls: make(map[int64]chan reply)}
}

// add records a new call before it is sent. Once rejectAll has run every
// further add fails with the rejection error.
func (p *pendingCalls) add() (int64, <-chan reply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return 0, nil, p.err
	}
	id := p.next
	p.next++
	ch := make(chan reply, 1)
	p.calls[id] = ch
	return id, ch, nil
}

func (p *pendingCalls) settle(id int64, r reply) bool {
	p.mu.Lock()
	ch, ok := p.calls[id]
	if ok {
		delete(p.calls, id)
	}
	p.mu.Unlock()
	if !ok {
		return false
	}
	ch <- r
	return true
}

func (p *pendingCalls) drop(id int64) {
	p.mu.Lock()
	delete(p.calls, id)
	p.mu.Unlock()
}

func (p *pendingCalls) rejectAll(err error) int {
	p.mu.Lock()
	calls := p.calls
	p.calls = make(map[int64]chan reply)
	p.err = err
	p.mu.Unlock()
	for _, ch := range calls {
		ch <- reply{err: err}
	}
	return len(calls)
}

func (p *pendingCalls) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
