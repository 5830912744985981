// Package state holds the console's command history.
package state

import "github.com/atomicstack/snek-console/internal/logging/events"

// HistoryStore is an ordered history where index 0 is the in-progress draft
// and indices 1..N are past submissions, most recent first. A recall cursor
// selects the entry currently shown in the input.
type HistoryStore interface {
	Len() int
	Entry(i int) string
	Entries() []string
	Past() []string
	Index() int
	SetDraft(text string)
	Submit(text string) bool
	Shift(delta int, current string) (string, bool)
	Seek(index int) (string, bool)
	Seed(entries []string) int
	ResetCursor()
}

type historyStore struct {
	entries []string
	index   int
}

// NewHistoryStore returns a store seeded with past entries, most recent
// first.
func NewHistoryStore(past ...string) HistoryStore {
	s := &historyStore{entries: []string{""}}
	s.Seed(past)
	return s
}

func (s *historyStore) Len() int {
	return len(s.entries)
}

func (s *historyStore) Entry(i int) string {
	if i < 0 || i >= len(s.entries) {
		return ""
	}
	return s.entries[i]
}

func (s *historyStore) Entries() []string {
	return cloneEntries(s.entries)
}

// Past returns the committed entries without the draft slot.
func (s *historyStore) Past() []string {
	return cloneEntries(s.entries[1:])
}

func (s *historyStore) Index() int {
	return s.index
}

func (s *historyStore) SetDraft(text string) {
	s.entries[0] = text
}

// Submit records text as the newest entry and resets the cursor to the
// draft slot. Empty text and a repeat of the newest entry only clear the
// draft. It reports whether an entry was added.
func (s *historyStore) Submit(text string) bool {
	s.index = 0
	if text == "" || (len(s.entries) > 1 && s.entries[1] == text) {
		s.entries[0] = ""
		events.History.Submit(text, len(s.entries))
		return false
	}
	s.entries[0] = text
	s.entries = append([]string{""}, s.entries...)
	events.History.Submit(text, len(s.entries))
	return true
}

// Shift moves the cursor by delta, positive towards older entries, clamping
// at both ends. current is the text shown in the input; when the cursor is
// on the draft slot it is stored there first so it is never lost. The text
// at the new position is returned together with whether the cursor moved.
func (s *historyStore) Shift(delta int, current string) (string, bool) {
	if s.index == 0 {
		s.entries[0] = current
	}
	next := s.index + delta
	if next < 0 {
		next = 0
	}
	if next > len(s.entries)-1 {
		next = len(s.entries) - 1
	}
	moved := next != s.index
	s.index = next
	events.History.Shift(delta, s.index)
	return s.entries[s.index], moved
}

// Seek puts the cursor on index, clamped to the history, and returns the
// entry there with whether the cursor moved. Unlike Shift it never touches
// the draft slot.
func (s *historyStore) Seek(index int) (string, bool) {
	next := index
	if next < 0 {
		next = 0
	}
	if next > len(s.entries)-1 {
		next = len(s.entries) - 1
	}
	moved := next != s.index
	delta := next - s.index
	s.index = next
	if moved {
		events.History.Shift(delta, s.index)
	}
	return s.entries[s.index], moved
}

// Seed appends older entries behind the existing ones, skipping empty
// entries and repeats of the preceding entry.
func (s *historyStore) Seed(entries []string) int {
	added := 0
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		if last := s.entries[len(s.entries)-1]; len(s.entries) > 1 && last == entry {
			continue
		}
		s.entries = append(s.entries, entry)
		added++
	}
	if added > 0 {
		events.History.Seed(added)
	}
	return added
}

func (s *historyStore) ResetCursor() {
	s.index = 0
}

func cloneEntries(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]string, len(entries))
	copy(dup, entries)
	return dup
}
