package state

import (
	"reflect"
	"testing"
)

func newTestPopup(entries ...string) *Popup {
	return NewPopup(KindHistory, entries, "", true)
}

func TestNewPopupPlacesSingleCursorOnBestMatch(t *testing.T) {
	p := newTestPopup("a", "b", "c")
	if !reflect.DeepEqual(p.Cursors, []int{0}) {
		t.Fatalf("expected single cursor at 0, got %v", p.Cursors)
	}
	if !p.Visible {
		t.Fatalf("expected popup visible")
	}

	empty := newTestPopup()
	if empty.Head() != -1 {
		t.Fatalf("expected no cursor for empty popup, got %d", empty.Head())
	}
}

func TestMoveClampsAndCollapsesSelection(t *testing.T) {
	p := newTestPopup("a", "b", "c")
	if !p.Move(1) || p.Head() != 1 {
		t.Fatalf("expected head 1, got %d", p.Head())
	}
	p.Move(10)
	if p.Head() != 2 {
		t.Fatalf("expected clamp at 2, got %d", p.Head())
	}
	if p.Move(1) {
		t.Fatalf("expected no movement past end")
	}
	p.ExpandPrev()
	if !p.Move(0) {
		t.Fatalf("expected collapse of multi-cursor to count as movement")
	}
	if !reflect.DeepEqual(p.Cursors, []int{2}) {
		t.Fatalf("expected cursors [2], got %v", p.Cursors)
	}
	p.MoveHome()
	if p.Head() != 0 {
		t.Fatalf("expected head 0, got %d", p.Head())
	}
	p.MoveEnd()
	if p.Head() != 2 {
		t.Fatalf("expected head 2, got %d", p.Head())
	}
}

func TestMovePaging(t *testing.T) {
	p := newTestPopup("a", "b", "c", "d", "e")
	if !p.MovePageDown(2) || p.Head() != 2 {
		t.Fatalf("expected head 2, got %d", p.Head())
	}
	p.MovePageDown(2)
	if p.MovePageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !p.MovePageUp(10) || p.Head() != 0 {
		t.Fatalf("expected head 0, got %d", p.Head())
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	p := newTestPopup("a", "b", "c", "d", "e")
	p.Move(4)
	p.EnsureCursorVisible(2)
	if p.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", p.ViewportOffset)
	}

	p.ViewportOffset = 4
	p.EnsureCursorVisible(0)
	if p.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", p.ViewportOffset)
	}

	p.ViewportOffset = 2
	p.Move(-3)
	p.EnsureCursorVisible(3)
	if p.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", p.ViewportOffset)
	}
}

func TestMoveIsRelativeToAnchorAfterExpansion(t *testing.T) {
	p := newTestPopup("a", "b", "c", "d", "e")
	p.Move(3)
	p.ExpandPrev()
	p.ExpandPrev()
	if p.Anchor() != 3 || p.Head() != 1 {
		t.Fatalf("expected anchor 3 head 1, got %d/%d", p.Anchor(), p.Head())
	}
	p.Move(1)
	if !reflect.DeepEqual(p.Cursors, []int{4}) {
		t.Fatalf("expected cursors [4], got %v", p.Cursors)
	}
}
