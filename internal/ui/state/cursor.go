package state

import "github.com/atomicstack/snek-console/internal/logging/events"

// Move collapses the selection to a single cursor delta positions away from
// the anchor, clamped to the match list.
func (p *Popup) Move(delta int) bool {
	if len(p.Matches) == 0 {
		return false
	}
	anchor := p.Anchor()
	if anchor < 0 {
		anchor = 0
	}
	next := clamp(anchor+delta, 0, len(p.Matches)-1)
	changed := next != anchor || len(p.Cursors) != 1
	p.Cursors = []int{next}
	if changed {
		events.Popup.Cursor(p.Kind, p.Cursors)
	}
	return changed
}

// MoveHome moves the cursor to the best match.
func (p *Popup) MoveHome() bool {
	return p.Move(-len(p.Matches))
}

// MoveEnd moves the cursor to the last match.
func (p *Popup) MoveEnd() bool {
	return p.Move(len(p.Matches))
}

// MovePageUp moves the cursor up by the given page size.
func (p *Popup) MovePageUp(maxVisible int) bool {
	return p.Move(-p.pageSize(maxVisible))
}

// MovePageDown moves the cursor down by the given page size.
func (p *Popup) MovePageDown(maxVisible int) bool {
	return p.Move(p.pageSize(maxVisible))
}

func (p *Popup) pageSize(maxVisible int) int {
	total := len(p.Matches)
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the head stays visible.
func (p *Popup) EnsureCursorVisible(maxVisible int) {
	if len(p.Matches) == 0 || maxVisible <= 0 {
		p.ViewportOffset = 0
		return
	}
	maxOffset := len(p.Matches) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	p.ViewportOffset = clamp(p.ViewportOffset, 0, maxOffset)
	head := p.Head()
	if head < 0 {
		return
	}
	if head < p.ViewportOffset {
		p.ViewportOffset = head
	}
	if upper := p.ViewportOffset + maxVisible - 1; head > upper {
		p.ViewportOffset = clamp(head-maxVisible+1, 0, maxOffset)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
