package output

import (
	"strconv"

	"golang.org/x/net/html"
)

// Interactor is an element the host asked the console to bring to life.
type Interactor struct {
	Node   *html.Node
	ID     string
	Kind   string
	Params string
}

// NewInteractors returns interactor elements that have not been returned
// before, in document order.
func (d *Document) NewInteractors() []Interactor {
	var out []Interactor
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !hasAttr(n, "data-interactor") {
			return true
		}
		if _, ok := d.seen[n]; ok {
			return true
		}
		d.seen[n] = struct{}{}
		out = append(out, Interactor{
			Node:   n,
			ID:     attr(n, "id"),
			Kind:   attr(n, "data-interactor"),
			Params: attr(n, "data-params"),
		})
		return true
	})
	return out
}

// ForgetDetached drops interactors that are no longer part of the document
// so their subtrees can be collected. It returns how many were dropped.
func (d *Document) ForgetDetached() int {
	dropped := 0
	for n := range d.seen {
		if !d.Attached(n) {
			delete(d.seen, n)
			dropped++
		}
	}
	return dropped
}

// Actionable is an element carrying a reference to a host callable.
type Actionable struct {
	Node  *html.Node
	Ref   int64
	Label string
}

// Actionables returns the callable elements under n in document order.
func Actionables(n *html.Node) []Actionable {
	var out []Actionable
	walk(n, func(c *html.Node) bool {
		if c.Type != html.ElementNode {
			return true
		}
		raw := attr(c, "objid")
		if raw == "" {
			raw = attr(c, "data-objid")
		}
		if raw == "" {
			return true
		}
		ref, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return true
		}
		out = append(out, Actionable{Node: c, Ref: ref, Label: Text(c)})
		return true
	})
	return out
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) string {
	return attr(n, key)
}
