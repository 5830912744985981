package editor

import "testing"

func TestDiffLines(t *testing.T) {
	cases := []struct {
		before, after string
		want          DiffStat
	}{
		{"a\nb\n", "a\nb\n", DiffStat{}},
		{"a\nb\n", "a\nc\n", DiffStat{Added: 1, Removed: 1}},
		{"a\n", "a\nb\nc\n", DiffStat{Added: 2}},
		{"a\nb", "a", DiffStat{Added: 1, Removed: 2}},
	}
	for _, tc := range cases {
		if got := DiffLines(tc.before, tc.after); got != tc.want {
			t.Fatalf("DiffLines(%q, %q): expected %+v, got %+v", tc.before, tc.after, tc.want, got)
		}
	}
}

func TestDiffStatString(t *testing.T) {
	if s := (DiffStat{}).String(); s != "" {
		t.Fatalf("expected empty string for no changes, got %q", s)
	}
	if s := (DiffStat{Added: 2, Removed: 1}).String(); s != "+2 -1" {
		t.Fatalf("expected +2 -1, got %q", s)
	}
}
