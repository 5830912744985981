package output

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockAtoms = map[atom.Atom]bool{
	atom.Div: true, atom.P: true, atom.Pre: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Table: true, atom.Ul: true, atom.Ol: true, atom.Blockquote: true,
}

// Text renders the textual content of n for the terminal. Block elements
// start on a new line; whitespace is collapsed outside <pre>.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeText(&b, n, false)
	lines := strings.Split(strings.Trim(b.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func writeText(b *strings.Builder, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
			return
		}
		writeCollapsed(b, n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			b.WriteByte('\n')
			return
		}
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
	}
	block := n.Type == html.ElementNode && blockAtoms[n.DataAtom]
	if block {
		newline(b)
	}
	inPre := pre || n.DataAtom == atom.Pre
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c, inPre)
	}
	if block {
		newline(b)
	}
}

func writeCollapsed(b *strings.Builder, s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && b.Len() > 0 && !endsWithSpace(b) {
			b.WriteByte(' ')
		}
		return
	}
	if startsWithSpace(s) && b.Len() > 0 && !endsWithSpace(b) {
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(fields, " "))
	if endsWithSpaceString(s) {
		b.WriteByte(' ')
	}
}

func newline(b *strings.Builder) {
	if b.Len() == 0 {
		return
	}
	s := b.String()
	if s[len(s)-1] != '\n' {
		b.WriteByte('\n')
	}
}

func endsWithSpace(b *strings.Builder) bool {
	s := b.String()
	return len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\n')
}

func startsWithSpace(s string) bool {
	return len(s) > 0 && strings.TrimLeft(s, " \t\n\r") != s
}

func endsWithSpaceString(s string) bool {
	return len(s) > 0 && strings.TrimRight(s, " \t\n\r") != s
}
