package editor

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffStat counts changed lines between two versions of a fragment.
type DiffStat struct {
	Added   int
	Removed int
}

func (d DiffStat) String() string {
	if d.Added == 0 && d.Removed == 0 {
		return ""
	}
	return fmt.Sprintf("+%d -%d", d.Added, d.Removed)
}

// Diff compares the displayed text with the saved version.
func (c *Controller) Diff() DiffStat {
	return DiffLines(c.content.Saved, c.Displayed())
}

// DiffLines returns the line-level difference from before to after.
func DiffLines(before, after string) DiffStat {
	if before == after {
		return DiffStat{}
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var stat DiffStat
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			stat.Added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			stat.Removed += countLines(d.Text)
		}
	}
	return stat
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
