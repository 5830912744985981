package output

import (
	"github.com/atomicstack/snek-console/internal/logging/events"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PinRecord remembers where a pinned element came from. Parent is a
// back-reference used only to restore the element.
type PinRecord struct {
	ID          string
	Element     *html.Node
	Parent      *html.Node
	Index       int
	Placeholder *html.Node
}

// TogglePin moves n into the pinned pane behind a placeholder, or restores
// it to its recorded position when it is already pinned.
func (d *Document) TogglePin(n *html.Node) (bool, error) {
	if n == nil {
		return false, errors.Wrap(ErrTargetNotFound, "pin")
	}
	if rec, ok := d.pins[n]; ok {
		d.unpin(rec)
		events.Pin.Toggle(rec.ID, false)
		return false, nil
	}
	if n.Parent == nil || n == d.root || n == d.out || n == d.pinned {
		return false, errors.New("element cannot be pinned")
	}
	rec := &PinRecord{
		ID:      uuid.NewString(),
		Element: n,
		Parent:  n.Parent,
		Index:   siblingIndex(n),
	}
	rec.Placeholder = newElement(atom.Button, "", "snek-pin-placeholder")
	setAttr(rec.Placeholder, "data-pin", rec.ID)
	rec.Placeholder.AppendChild(&html.Node{Type: html.TextNode, Data: "pinned"})
	n.Parent.InsertBefore(rec.Placeholder, n)
	n.Parent.RemoveChild(n)
	d.pinned.AppendChild(n)
	d.pins[n] = rec
	events.Pin.Toggle(rec.ID, true)
	return true, nil
}

// TogglePinByID toggles the pin on the element with the given id.
func (d *Document) TogglePinByID(id string) (bool, error) {
	n := d.ElementByID(id)
	if n == nil {
		return false, errors.Wrapf(ErrTargetNotFound, "pin %q", id)
	}
	return d.TogglePin(n)
}

// IsPinned reports whether n is in the pinned pane.
func (d *Document) IsPinned(n *html.Node) bool {
	_, ok := d.pins[n]
	return ok
}

// PinFor returns the element pinned behind the placeholder ph.
func (d *Document) PinFor(ph *html.Node) *html.Node {
	for n, rec := range d.pins {
		if rec.Placeholder == ph {
			return n
		}
	}
	return nil
}

// Pins returns the active pin records in pinned-pane order.
func (d *Document) Pins() []PinRecord {
	var out []PinRecord
	for _, n := range elementChildren(d.pinned) {
		if rec, ok := d.pins[n]; ok {
			out = append(out, *rec)
		}
	}
	return out
}

// unpin swaps the element back in for its placeholder. When the placeholder
// was removed from the document (for example by clearing the output) the
// element is appended to the output instead.
func (d *Document) unpin(rec *PinRecord) {
	delete(d.pins, rec.Element)
	d.pinned.RemoveChild(rec.Element)
	ph := rec.Placeholder
	if ph.Parent == nil || !contains(d.root, ph) {
		d.out.AppendChild(rec.Element)
		return
	}
	ph.Parent.InsertBefore(rec.Element, ph)
	ph.Parent.RemoveChild(ph)
}

// IsPlaceholder reports whether n stands in for a pinned element.
func IsPlaceholder(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && hasClass(n, "snek-pin-placeholder")
}

func siblingIndex(n *html.Node) int {
	i := 0
	for c := n.Parent.FirstChild; c != nil && c != n; c = c.NextSibling {
		i++
	}
	return i
}
