// Package output holds the console's output document: an HTML tree that
// collects results, echoes and host-driven updates, and the pinned pane.
package output

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element ids of the fixed document regions.
const (
	OutputID = "snek-out"
	PinnedID = "snek-pinned"
	NavID    = "snek-nav"
	ModeID   = "snek-mode"
)

// ErrTargetNotFound is returned when an operation names a missing element.
var ErrTargetNotFound = errors.New("target element not found")

// Document is the DOM-like tree the console renders. It is driven from the
// UI event loop and is not safe for concurrent use.
type Document struct {
	root      *html.Node
	out       *html.Node
	pinned    *html.Node
	nav       *html.Node
	mode      *html.Node
	sanitizer *Sanitizer
	resources []string
	evalSeq   int
	pins      map[*html.Node]*PinRecord
	seen      map[*html.Node]struct{}
}

// New returns an empty document.
func New() *Document {
	d := &Document{
		root:      newElement(atom.Div, "snek-root", ""),
		sanitizer: NewSanitizer(),
		pins:      make(map[*html.Node]*PinRecord),
		seen:      make(map[*html.Node]struct{}),
	}
	d.nav = newElement(atom.Div, NavID, "")
	d.mode = newElement(atom.Div, ModeID, "")
	d.pinned = newElement(atom.Div, PinnedID, "")
	d.out = newElement(atom.Div, OutputID, "")
	for _, n := range []*html.Node{d.nav, d.mode, d.pinned, d.out} {
		d.root.AppendChild(n)
	}
	return d
}

// Root returns the document root.
func (d *Document) Root() *html.Node { return d.root }

// Output returns the element holding the output lines.
func (d *Document) Output() *html.Node { return d.out }

// Pinned returns the element holding pinned elements.
func (d *Document) Pinned() *html.Node { return d.pinned }

// Resources returns the global resources injected by the host.
func (d *Document) Resources() []string {
	return append([]string(nil), d.resources...)
}

// AddResource records a global resource.
func (d *Document) AddResource(value string) {
	d.resources = append(d.resources, value)
}

// Nav returns the text of the navigation bar.
func (d *Document) Nav() string { return Text(d.nav) }

// Mode returns the text of the mode indicator.
func (d *Document) Mode() string { return Text(d.mode) }

// SetNav replaces the navigation bar content.
func (d *Document) SetNav(value, navID string) error {
	if err := d.replaceChildren(d.nav, value); err != nil {
		return err
	}
	setAttr(d.nav, "data-navid", navID)
	return nil
}

// SetMode replaces the mode indicator content.
func (d *Document) SetMode(markup string) error {
	return d.replaceChildren(d.mode, markup)
}

// ElementByID finds the element with the given id anywhere in the document.
func (d *Document) ElementByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Attached reports whether n is still part of the document.
func (d *Document) Attached(n *html.Node) bool {
	return n != nil && contains(d.root, n)
}

// Parse sanitises markup and parses it as children of a div.
func (d *Document) Parse(markup string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(d.sanitizer.Sanitize(markup)), contextNode())
	if err != nil {
		return nil, errors.Wrap(err, "parse fragment")
	}
	return nodes, nil
}

func (d *Document) replaceChildren(n *html.Node, markup string) error {
	nodes, err := d.Parse(markup)
	if err != nil {
		return err
	}
	removeChildren(n)
	for _, child := range nodes {
		n.AppendChild(child)
	}
	return nil
}

func (d *Document) nextEvalID() string {
	d.evalSeq++
	return fmt.Sprintf("E%d", d.evalSeq)
}

func contextNode() *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
}

func newElement(a atom.Atom, id, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	setAttr(n, "id", id)
	setAttr(n, "class", class)
	return n
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// setAttr sets key to val, removing the attribute when val is empty.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key != key {
			continue
		}
		if val == "" {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
		n.Attr[i].Val = val
		return
	}
	if val != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func removeChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func contains(ancestor, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
