package editor

import (
	"sync"
	"weak"

	"github.com/atomicstack/snek-console/internal/logging/events"
)

// Pool maps fragment identifiers to every open view of that fragment. Views
// are held weakly: a controller dropped by the UI disappears from the pool
// without being unregistered. Dead or closed entries are pruned whenever the
// fragment is visited.
type Pool struct {
	mu    sync.Mutex
	views map[string][]weak.Pointer[Controller]
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{views: make(map[string][]weak.Pointer[Controller])}
}

// Add registers c under its fragment and links c back to the pool so its
// saves are broadcast.
func (p *Pool) Add(c *Controller) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c.pool = p
	p.views[c.fragment] = append(p.views[c.fragment], weak.Make(c))
}

// Views returns the live controllers for fragment.
func (p *Pool) Views(fragment string) []*Controller {
	p.mu.Lock()
	defer p.mu.Unlock()
	live, _ := p.collect(fragment)
	return live
}

// Fragments returns the number of fragments with at least one live view.
func (p *Pool) Fragments() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for fragment := range p.views {
		if live, _ := p.collect(fragment); len(live) > 0 {
			n++
		}
	}
	return n
}

// Signal notifies every view of from's fragment except from itself.
func (p *Pool) Signal(from *Controller, text string, slot Slot) int {
	return p.Broadcast(from.fragment, text, slot, from)
}

// Broadcast notifies every view of fragment except skip, which may be nil.
// It returns the number of views notified.
func (p *Pool) Broadcast(fragment, text string, slot Slot, skip *Controller) int {
	p.mu.Lock()
	live, pruned := p.collect(fragment)
	p.mu.Unlock()

	notified := 0
	for _, c := range live {
		if c == skip {
			continue
		}
		c.Notify(text, slot)
		notified++
	}
	events.Editor.Broadcast(fragment, slot.String(), notified, pruned)
	return notified
}

// collect resolves the weak references for fragment and rewrites the list
// without the dead ones. The caller holds p.mu.
func (p *Pool) collect(fragment string) ([]*Controller, int) {
	refs := p.views[fragment]
	live := make([]*Controller, 0, len(refs))
	kept := refs[:0]
	for _, ref := range refs {
		c := ref.Value()
		if c == nil || c.Closed() {
			continue
		}
		live = append(live, c)
		kept = append(kept, ref)
	}
	pruned := len(refs) - len(kept)
	if len(kept) == 0 {
		delete(p.views, fragment)
	} else {
		p.views[fragment] = kept
	}
	return live, pruned
}
