package percentile

import (
	"fmt"

	"github.com/loadtestlab/panelpatch/internal/dashboard"
)

// Style describes how one percentile is queried and drawn.
type Style struct {
	Name      string  // series name and stat title suffix, e.g. "p95"
	Label     string  // stat title prefix, e.g. "95th"
	Quantile  float64 // 0..1
	Color     string
	LineWidth int
	StatWidth int
}

// Styles lists the percentiles in display order, left to right.
var Styles = []Style{
	{Name: "p50", Label: "Median", Quantile: 0.50, Color: "green", LineWidth: 2, StatWidth: 5},
	{Name: "p75", Label: "75th", Quantile: 0.75, Color: "blue", LineWidth: 2, StatWidth: 5},
	{Name: "p90", Label: "90th", Quantile: 0.90, Color: "yellow", LineWidth: 2, StatWidth: 5},
	{Name: "p95", Label: "95th", Quantile: 0.95, Color: "orange", LineWidth: 3, StatWidth: 5},
	{Name: "p99", Label: "99th", Quantile: 0.99, Color: "red", LineWidth: 3, StatWidth: 4},
}

// StatOffsets returns the x coordinate of each stat panel. Panels are laid out
// edge to edge, so each offset is the sum of the widths before it.
func StatOffsets() []int {
	offsets := make([]int, len(Styles))
	x := 0
	for i, style := range Styles {
		offsets[i] = x
		x += style.StatWidth
	}
	return offsets
}

// StatRowWidth is the total width of the stat row.
func StatRowWidth() int {
	total := 0
	for _, style := range Styles {
		total += style.StatWidth
	}
	return total
}

// ByName looks up a style by series name.
func ByName(name string) (Style, bool) {
	for _, style := range Styles {
		if style.Name == name {
			return style, true
		}
	}
	return Style{}, false
}

func validateStyles() error {
	if width := StatRowWidth(); width != dashboard.GridWidth {
		return fmt.Errorf("stat row is %d units wide, want %d", width, dashboard.GridWidth)
	}
	return nil
}

func init() {
	if err := validateStyles(); err != nil {
		panic(err)
	}
}
