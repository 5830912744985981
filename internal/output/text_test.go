package output

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseText(t *testing.T, markup string) string {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), contextNode())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	holder := contextNode()
	for _, n := range nodes {
		holder.AppendChild(n)
	}
	return Text(holder)
}

func TestTextCollapsesWhitespace(t *testing.T) {
	if got := parseText(t, "<span>a   b</span>\n  <span>c</span>"); got != "a b c" {
		t.Fatalf("expected %q, got %q", "a b c", got)
	}
}

func TestTextBlocksAndBreaks(t *testing.T) {
	got := parseText(t, "<div>one</div><div>two<br>three</div><pre>  x\n  y</pre>")
	want := "one\ntwo\nthree\n  x\n  y"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
