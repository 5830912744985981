package state

import (
	"strings"

	"github.com/atomicstack/snek-console/internal/logging/events"
)

// Head returns the most recently added cursor, or -1 when nothing is
// selected.
func (p *Popup) Head() int {
	if len(p.Cursors) == 0 {
		return -1
	}
	return p.Cursors[len(p.Cursors)-1]
}

// Anchor returns the cursor the selection was started from, or -1 when
// nothing is selected. Movement is relative to it.
func (p *Popup) Anchor() int {
	if len(p.Cursors) == 0 {
		return -1
	}
	return p.Cursors[0]
}

// IsSelected reports whether match position i is in the cursor set.
func (p *Popup) IsSelected(i int) bool {
	for _, c := range p.Cursors {
		if c == i {
			return true
		}
	}
	return false
}

func (p *Popup) bounds() (lo, hi int) {
	lo, hi = p.Cursors[0], p.Cursors[0]
	for _, c := range p.Cursors[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

// ExpandNext adds the entry after the selected block to the cursor set.
func (p *Popup) ExpandNext() bool {
	if !p.MultiSelect || len(p.Cursors) == 0 {
		return false
	}
	_, hi := p.bounds()
	if hi+1 >= len(p.Matches) {
		return false
	}
	p.Cursors = append(p.Cursors, hi+1)
	events.Popup.Cursor(p.Kind, p.Cursors)
	return true
}

// ExpandPrev adds the entry before the selected block to the cursor set.
func (p *Popup) ExpandPrev() bool {
	if !p.MultiSelect || len(p.Cursors) == 0 {
		return false
	}
	lo, _ := p.bounds()
	if lo-1 < 0 {
		return false
	}
	p.Cursors = append(p.Cursors, lo-1)
	events.Popup.Cursor(p.Kind, p.Cursors)
	return true
}

// Selected returns the selected entry texts in the order they were added.
func (p *Popup) Selected() []string {
	out := make([]string, 0, len(p.Cursors))
	for _, c := range p.Cursors {
		out = append(out, p.Text(c))
	}
	return out
}

// Confirm closes the popup and returns the selected texts joined by
// newlines. ok is false when nothing was selected.
func (p *Popup) Confirm() (text string, ok bool) {
	selected := p.Selected()
	p.Visible = false
	events.Popup.Confirm(p.Kind, len(selected))
	if len(selected) == 0 {
		return "", false
	}
	return strings.Join(selected, "\n"), true
}
