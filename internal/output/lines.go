package output

import (
	"strings"

	"github.com/atomicstack/snek-console/internal/protocol"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Line types with dedicated styling.
const (
	LineResult    = "result"
	LinePrint     = "print"
	LineEcho      = "echo"
	LineError     = "error"
	LineException = "exception"
	LineInfo      = "info"
)

const (
	lineClass    = "snek-line"
	typePrefix   = "snek-t-"
	gutterClass  = "snek-gutter"
	bodyClass    = "snek-line-body"
	evalIDPrefix = "pr-eval-"
)

// AddResult renders r. Results sharing an evalid are grouped in one print
// box; statements only create the box.
func (d *Document) AddResult(r protocol.Result) error {
	evalID := r.EvalID
	if evalID == "" {
		evalID = d.nextEvalID()
	}
	box := d.printBox(evalID)
	switch r.Type {
	case protocol.ResultStatement:
		return nil
	case protocol.ResultPrint:
		nodes, err := d.Parse(r.Value)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			box.AppendChild(n)
		}
		return nil
	}
	typ := r.Type
	if typ == "" {
		typ = LineResult
	}
	_, err := d.AddLine(typ, r.Value)
	return err
}

// AddEcho renders submitted source as a read-only block.
func (d *Document) AddEcho(e protocol.Echo) *html.Node {
	pre := newElement(atom.Pre, "", "snek-echo")
	setAttr(pre, "data-language", e.Language)
	pre.AppendChild(&html.Node{Type: html.TextNode, Data: e.Value})
	return d.appendLine(LineEcho, pre)
}

// AddLine appends markup wrapped as a line of the given type.
func (d *Document) AddLine(typ, markup string) (*html.Node, error) {
	nodes, err := d.Parse(markup)
	if err != nil {
		return nil, err
	}
	return d.appendLine(typ, nodes...), nil
}

// AddText appends preformatted plain text as a line of the given type.
func (d *Document) AddText(typ, text string) *html.Node {
	pre := newElement(atom.Pre, "", "snek-text")
	pre.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return d.appendLine(typ, pre)
}

// Lines returns the line wrappers in the output area, in order. Placeholders
// of pinned lines are included.
func (d *Document) Lines() []*html.Node {
	return elementChildren(d.out)
}

// PinnedLines returns the elements currently in the pinned pane.
func (d *Document) PinnedLines() []*html.Node {
	return elementChildren(d.pinned)
}

// ClearOutput removes every output line. Pinned elements stay pinned.
func (d *Document) ClearOutput() {
	removeChildren(d.out)
}

// LastText returns the text of the most recent line of one of types, or of
// any type when none are given.
func (d *Document) LastText(types ...string) (string, bool) {
	lines := d.Lines()
	for i := len(lines) - 1; i >= 0; i-- {
		typ := LineType(lines[i])
		if typ == "" {
			continue
		}
		if len(types) > 0 && !containsString(types, typ) {
			continue
		}
		return Text(LineBody(lines[i])), true
	}
	return "", false
}

// LineType returns the type of a line wrapper, or "" for other nodes.
func LineType(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode || !hasClass(n, lineClass) {
		return ""
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if strings.HasPrefix(c, typePrefix) {
			return strings.TrimPrefix(c, typePrefix)
		}
	}
	return ""
}

// LineBody returns the content element of a line wrapper, or n itself.
func LineBody(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, bodyClass) {
			return c
		}
	}
	return n
}

func (d *Document) printBox(evalID string) *html.Node {
	id := evalIDPrefix + evalID
	if box := d.ElementByID(id); box != nil {
		return box
	}
	box := newElement(atom.Div, id, "snek-print-box")
	d.appendLine(LinePrint, box)
	return box
}

func (d *Document) appendLine(typ string, children ...*html.Node) *html.Node {
	line := newElement(atom.Div, "", lineClass+" "+typePrefix+typ)
	line.AppendChild(newElement(atom.Div, "", gutterClass))
	body := newElement(atom.Div, "", bodyClass)
	for _, c := range children {
		body.AppendChild(c)
	}
	line.AppendChild(body)
	d.out.AppendChild(line)
	return line
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
