package fileutil

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffStats counts lines added and removed between two texts.
type DiffStats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// LineDiff renders a line-oriented diff of before and after. Unchanged runs are
// collapsed to a single marker line.
func LineDiff(before, after string) (string, DiffStats) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var stats DiffStats
	var out strings.Builder
	for _, diff := range diffs {
		chunk := splitLines(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			stats.Added += len(chunk)
			for _, line := range chunk {
				out.WriteString("+ " + line + "\n")
			}
		case diffmatchpatch.DiffDelete:
			stats.Removed += len(chunk)
			for _, line := range chunk {
				out.WriteString("- " + line + "\n")
			}
		case diffmatchpatch.DiffEqual:
			out.WriteString(fmt.Sprintf("  ... %d unchanged lines\n", len(chunk)))
		}
	}
	return out.String(), stats
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
