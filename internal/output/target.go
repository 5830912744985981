package output

import (
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Fill replaces the children of the element with id target.
func (d *Document) Fill(target, markup string) error {
	n := d.ElementByID(target)
	if n == nil {
		return errors.Wrapf(ErrTargetNotFound, "fill %q", target)
	}
	return d.replaceChildren(n, markup)
}

// Insert adds markup as children of target before the element child at
// index. A nil or out of range index appends.
func (d *Document) Insert(target, markup string, index *int) error {
	n := d.ElementByID(target)
	if n == nil {
		return errors.Wrapf(ErrTargetNotFound, "insert into %q", target)
	}
	nodes, err := d.Parse(markup)
	if err != nil {
		return err
	}
	var before *html.Node
	if index != nil {
		if children := elementChildren(n); *index >= 0 && *index < len(children) {
			before = children[*index]
		}
	}
	for _, c := range nodes {
		n.InsertBefore(c, before)
	}
	return nil
}

// Clear removes every child of target.
func (d *Document) Clear(target string) error {
	n := d.ElementByID(target)
	if n == nil {
		return errors.Wrapf(ErrTargetNotFound, "clear %q", target)
	}
	removeChildren(n)
	return nil
}

// Broadcast fills every element subscribed to key with markup. When subkey
// is set only elements with a matching data-subkey receive it. It returns
// the number of elements updated.
func (d *Document) Broadcast(key, subkey, markup string) (int, error) {
	var targets []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || attr(n, "data-channel") != key {
			return true
		}
		if subkey != "" && attr(n, "data-subkey") != subkey {
			return true
		}
		targets = append(targets, n)
		return false
	})
	for _, n := range targets {
		if err := d.replaceChildren(n, markup); err != nil {
			return 0, err
		}
	}
	return len(targets), nil
}
