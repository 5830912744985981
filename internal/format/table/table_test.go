package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"1", "error", "boom"},
		{"12", "ok", "fine"},
	}, []Alignment{AlignRight, AlignLeft, AlignLeft})
	want := []string{
		" 1  error  boom",
		"12  ok     fine",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatIgnoresANSIWidth(t *testing.T) {
	got := Format([][]string{
		{"\x1b[31mred\x1b[0m", "x"},
		{"blue", "y"},
	}, nil)
	want := []string{
		"\x1b[31mred\x1b[0m   x",
		"blue  y",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWithHeader(t *testing.T) {
	got := WithHeader([]string{"name", "summary"}, [][]string{{"help", "list commands"}}, nil)
	if len(got) != 2 || got[0] != "name  summary" || got[1] != "help  list commands" {
		t.Fatalf("unexpected output %q", got)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
