// Package state holds the popup navigator shared by the history and
// interactor popups.
package state

import "github.com/atomicstack/snek-console/internal/logging/events"

// Popup kinds.
const (
	KindHistory    = "history"
	KindInteractor = "interactor"
)

// Popup is a filtered list with a contiguous multi-cursor selection.
// Entries is the candidate list; Matches is the filtered, ranked view of it
// and every index in Cursors points into Matches.
type Popup struct {
	Kind           string
	Entries        []string
	Matches        []Match
	Filter         string
	FilterCursor   int
	Cursors        []int
	MultiSelect    bool
	Remote         bool
	Visible        bool
	ViewportOffset int
}

// NewPopup opens a locally filtered popup over entries, seeded with filter.
func NewPopup(kind string, entries []string, filter string, multi bool) *Popup {
	p := &Popup{
		Kind:        kind,
		Entries:     cloneStrings(entries),
		MultiSelect: multi,
		Visible:     true,
	}
	p.SetFilter(filter, len([]rune(filter)))
	events.Popup.Open(kind, filter, len(p.Matches))
	return p
}

// NewRemotePopup opens a popup whose entries are supplied by the host for
// the current filter. It starts empty until Populate is called.
func NewRemotePopup(kind, filter string) *Popup {
	p := &Popup{
		Kind:         kind,
		Filter:       filter,
		FilterCursor: len([]rune(filter)),
		Remote:       true,
		Visible:      true,
	}
	events.Popup.Open(kind, filter, 0)
	return p
}

// Populate replaces the entries of a remote popup. Entries computed for a
// filter that is no longer current are discarded and false is returned.
func (p *Popup) Populate(filter string, entries []string) bool {
	if filter != p.Filter {
		events.Popup.Stale(p.Kind, filter)
		return false
	}
	p.Entries = cloneStrings(entries)
	p.Matches = uniformMatches(len(p.Entries))
	p.resetCursors()
	events.Popup.Populate(p.Kind, filter, len(p.Entries))
	return true
}

// Len returns the number of visible matches.
func (p *Popup) Len() int {
	return len(p.Matches)
}

// Text returns the entry text shown at match position i.
func (p *Popup) Text(i int) string {
	if i < 0 || i >= len(p.Matches) {
		return ""
	}
	return p.Entries[p.Matches[i].Item]
}

// Close hides the popup without touching any selection source.
func (p *Popup) Close() {
	if !p.Visible {
		return
	}
	p.Visible = false
	events.Popup.Cancel(p.Kind)
}

func (p *Popup) refilter() {
	if p.Remote {
		return
	}
	p.Matches = FilterEntries(p.Entries, p.Filter)
	p.resetCursors()
}

func (p *Popup) resetCursors() {
	p.ViewportOffset = 0
	if len(p.Matches) == 0 {
		p.Cursors = nil
		return
	}
	p.Cursors = []int{0}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	dup := make([]string, len(in))
	copy(dup, in)
	return dup
}
