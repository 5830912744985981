package state

import (
	"sort"
	"strings"
	"unicode"

	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Span is a half-open rune range [Start, End) of an entry matched by the
// filter.
type Span struct {
	Start, End int
}

// Match is one filtered entry. Item indexes the candidate list; a lower
// Score is a better match and 0 is the best.
type Match struct {
	Item  int
	Score int
	Spans []Span
}

// FilterEntries ranks entries against query. An empty query yields every
// entry in its original order with the best score.
func FilterEntries(entries []string, query string) []Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return uniformMatches(len(entries))
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, entries)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	matches := make([]Match, 0, len(ranks))
	for _, rank := range ranks {
		matches = append(matches, Match{
			Item:  rank.OriginalIndex,
			Score: rank.Distance,
			Spans: MatchSpans(trimmed, rank.Target),
		})
	}
	return matches
}

// MatchSpans returns the runs of target covered by a greedy case-folded
// subsequence match of query. It returns nil when query is not a
// subsequence of target.
func MatchSpans(query, target string) []Span {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return nil
	}
	var spans []Span
	qi := 0
	for ti, r := range []rune(target) {
		if qi == len(q) {
			break
		}
		if unicode.ToLower(r) != q[qi] {
			continue
		}
		qi++
		if n := len(spans); n > 0 && spans[n-1].End == ti {
			spans[n-1].End = ti + 1
			continue
		}
		spans = append(spans, Span{Start: ti, End: ti + 1})
	}
	if qi < len(q) {
		return nil
	}
	return spans
}

func uniformMatches(n int) []Match {
	matches := make([]Match, n)
	for i := range matches {
		matches[i] = Match{Item: i}
	}
	return matches
}

// SetFilter updates the query, re-runs the match and puts a single cursor
// on the best match.
func (p *Popup) SetFilter(query string, cursor int) {
	p.Filter = query
	p.FilterCursor = clamp(cursor, 0, len([]rune(query)))
	p.refilter()
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (p *Popup) FilterCursorPos() int {
	return clamp(p.FilterCursor, 0, len([]rune(p.Filter)))
}

// InsertFilterText inserts text into the filter at the cursor position.
func (p *Popup) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.SetFilter(string(updated), pos+len(insert))
	events.Filter.Append(p.Kind, p.Filter)
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (p *Popup) DeleteFilterRuneBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.SetFilter(string(updated), pos-1)
	events.Filter.Backspace(p.Kind, p.Filter)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (p *Popup) DeleteFilterWordBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	p.SetFilter(string(updated), i)
	events.Filter.WordBackspace(p.Kind, p.Filter)
	return true
}

// ClearFilter empties the query.
func (p *Popup) ClearFilter() bool {
	if p.Filter == "" {
		return false
	}
	p.SetFilter("", 0)
	events.Filter.Cleared(p.Kind)
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (p *Popup) MoveFilterCursorStart() bool {
	return p.setFilterCursor(0)
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (p *Popup) MoveFilterCursorEnd() bool {
	return p.setFilterCursor(len([]rune(p.Filter)))
}

// MoveFilterCursorWordBackward moves the filter cursor one word backward.
func (p *Popup) MoveFilterCursorWordBackward() bool {
	return p.setFilterCursor(wordStart([]rune(p.Filter), p.FilterCursorPos()))
}

// MoveFilterCursorWordForward moves the filter cursor one word forward.
func (p *Popup) MoveFilterCursorWordForward() bool {
	runes := []rune(p.Filter)
	i := p.FilterCursorPos()
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return p.setFilterCursor(i)
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (p *Popup) MoveFilterCursorRuneBackward() bool {
	return p.setFilterCursor(p.FilterCursorPos() - 1)
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (p *Popup) MoveFilterCursorRuneForward() bool {
	return p.setFilterCursor(p.FilterCursorPos() + 1)
}

func (p *Popup) setFilterCursor(pos int) bool {
	pos = clamp(pos, 0, len([]rune(p.Filter)))
	if pos == p.FilterCursorPos() {
		return false
	}
	p.FilterCursor = pos
	events.Filter.Cursor(p.Kind, pos)
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
