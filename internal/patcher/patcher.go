package patcher

import (
	"github.com/loadtestlab/panelpatch/internal/dashboard"
	"github.com/loadtestlab/panelpatch/internal/percentile"
)

// Options control how a dashboard is patched.
type Options struct {
	// SkipExisting leaves dashboards that already carry the percentile chart
	// untouched. Off by default: patching twice appends the panels twice.
	SkipExisting bool
}

// Result describes the panels appended to one dashboard.
type Result struct {
	Skipped     bool  `json:"skipped,omitempty"`
	PanelsFound int   `json:"panels_found"`
	MaxID       int   `json:"max_id"`
	NextY       int   `json:"next_y"`
	ChartID     int   `json:"chart_id,omitempty"`
	ChartY      int   `json:"chart_y"`
	StatIDs     []int `json:"stat_ids,omitempty"`
	StatY       int   `json:"stat_y"`
}

// Added returns how many panels were appended.
func (r Result) Added() int {
	if r.Skipped {
		return 0
	}
	return 1 + len(r.StatIDs)
}

// Plan computes where the percentile panels would go without changing d.
func Plan(d *dashboard.Dashboard) (Result, error) {
	nextID, err := d.NextID()
	if err != nil {
		return Result{}, err
	}
	nextY, err := d.NextY()
	if err != nil {
		return Result{}, err
	}

	statIDs := make([]int, 0, len(percentile.Styles))
	for i := range percentile.Styles {
		statIDs = append(statIDs, nextID+1+i)
	}
	return Result{
		PanelsFound: len(d.Panels()),
		MaxID:       nextID - 1,
		NextY:       nextY,
		ChartID:     nextID,
		ChartY:      nextY,
		StatIDs:     statIDs,
		StatY:       nextY + percentile.TimeseriesHeight,
	}, nil
}

// Apply appends the percentile chart and the stat row below every existing
// panel. Existing panels are not modified.
func Apply(d *dashboard.Dashboard, src percentile.Source, opts Options) (Result, error) {
	plan, err := Plan(d)
	if err != nil {
		return Result{}, err
	}
	if alreadyPatched(d, opts) {
		return plan.skipped(), nil
	}

	panels := make([]dashboard.Panel, 0, percentile.PanelCount)
	panels = append(panels, percentile.TimeseriesPanel(src, plan.ChartID, plan.ChartY))
	panels = append(panels, percentile.StatPanels(src, plan.ChartID+1, plan.StatY)...)
	if err := d.Append(panels...); err != nil {
		return Result{}, err
	}
	return plan, nil
}

func alreadyPatched(d *dashboard.Dashboard, opts Options) bool {
	return opts.SkipExisting && d.HasPanelTitled(percentile.TimeseriesTitle)
}

func (r Result) skipped() Result {
	return Result{
		Skipped:     true,
		PanelsFound: r.PanelsFound,
		MaxID:       r.MaxID,
		NextY:       r.NextY,
	}
}
