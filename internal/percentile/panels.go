package percentile

import (
	"fmt"
	"strings"

	"github.com/loadtestlab/panelpatch/internal/dashboard"
)

const (
	// TimeseriesHeight is the height of the percentile chart. The stat row is
	// placed directly beneath it.
	TimeseriesHeight  = 8
	StatHeight        = 4
	StatPluginVersion = "10.1.0"
)

// PanelCount is how many panels one patch appends.
var PanelCount = 1 + len(Styles)

// TimeseriesTitle identifies the percentile chart on a dashboard.
var TimeseriesTitle = "📊 Response Time Percentiles (" + strings.Join(styleNames(), ", ") + ")"

func styleNames() []string {
	names := make([]string, 0, len(Styles))
	for _, style := range Styles {
		names = append(names, style.Name)
	}
	return names
}

// StatTitle is the title of the stat panel for style.
func StatTitle(style Style) string {
	return fmt.Sprintf("%s Percentile (%s)", style.Label, style.Name)
}

func latencyThresholds() dashboard.Thresholds {
	warn, crit := 1000.0, 2000.0
	return dashboard.Thresholds{
		Mode: "absolute",
		Steps: []dashboard.ThresholdStep{
			{Color: "green"},
			{Color: "yellow", Value: &warn},
			{Color: "red", Value: &crit},
		},
	}
}

// TimeseriesPanel builds the chart plotting every percentile over time.
func TimeseriesPanel(src Source, id, y int) dashboard.Panel {
	ds := src.Datasource
	targets := make([]dashboard.Target, 0, len(Styles))
	overrides := make([]dashboard.Override, 0, len(Styles))
	for i, style := range Styles {
		targets = append(targets, dashboard.Target{
			Datasource: &ds,
			Query:      WindowQuery(src, style),
			RefID:      refID(i),
		})
		overrides = append(overrides, dashboard.Override{
			Matcher: dashboard.Matcher{ID: "byName", Options: style.Name},
			Properties: []dashboard.Property{
				{ID: "color", Value: dashboard.FieldColor{FixedColor: style.Color, Mode: "fixed"}},
				{ID: "custom.lineWidth", Value: style.LineWidth},
			},
		})
	}

	return dashboard.Panel{
		Datasource: &ds,
		FieldConfig: dashboard.FieldConfig{
			Defaults: dashboard.FieldDefaults{
				Color:      dashboard.FieldColor{Mode: "palette-classic"},
				Custom:     timeseriesCustom(),
				Mappings:   []any{},
				Thresholds: latencyThresholds(),
				Unit:       "ms",
			},
			Overrides: overrides,
		},
		GridPos: dashboard.GridPos{H: TimeseriesHeight, W: dashboard.GridWidth, X: 0, Y: y},
		ID:      id,
		Options: map[string]any{
			"legend": map[string]any{
				"calcs":       []string{"mean", "max", "last"},
				"displayMode": "table",
				"placement":   "bottom",
				"showLegend":  true,
			},
			"tooltip": map[string]any{
				"mode": "multi",
				"sort": "desc",
			},
		},
		Targets: targets,
		Title:   TimeseriesTitle,
		Type:    "timeseries",
	}
}

func timeseriesCustom() map[string]any {
	return map[string]any{
		"axisCenteredZero": false,
		"axisColorMode":    "text",
		"axisLabel":        "Duration (ms)",
		"axisPlacement":    "auto",
		"barAlignment":     0,
		"drawStyle":        "line",
		"fillOpacity":      10,
		"gradientMode":     "none",
		"hideFrom": map[string]any{
			"legend":  false,
			"tooltip": false,
			"viz":     false,
		},
		"lineInterpolation": "smooth",
		"lineWidth":         2,
		"pointSize":         5,
		"scaleDistribution": map[string]any{"type": "linear"},
		"showPoints":        "never",
		"spanNulls":         false,
		"stacking":          map[string]any{"group": "A", "mode": "none"},
		"thresholdsStyle":   map[string]any{"mode": "off"},
	}
}

// StatPanels builds one single-value panel per percentile with ids starting at
// firstID, all on row y.
func StatPanels(src Source, firstID, y int) []dashboard.Panel {
	ds := src.Datasource
	offsets := StatOffsets()
	panels := make([]dashboard.Panel, 0, len(Styles))
	for i, style := range Styles {
		panels = append(panels, dashboard.Panel{
			Datasource: &ds,
			FieldConfig: dashboard.FieldConfig{
				Defaults: dashboard.FieldDefaults{
					Color:      dashboard.FieldColor{FixedColor: style.Color, Mode: "fixed"},
					Mappings:   []any{},
					Thresholds: latencyThresholds(),
					Unit:       "ms",
				},
				Overrides: []dashboard.Override{},
			},
			GridPos: dashboard.GridPos{H: StatHeight, W: style.StatWidth, X: offsets[i], Y: y},
			ID:      firstID + i,
			Options: map[string]any{
				"colorMode":   "value",
				"graphMode":   "area",
				"justifyMode": "center",
				"orientation": "auto",
				"reduceOptions": map[string]any{
					"calcs":  []string{"lastNotNull"},
					"fields": "",
					"values": false,
				},
				"textMode": "value_and_name",
			},
			PluginVersion: StatPluginVersion,
			Targets: []dashboard.Target{{
				Datasource: &ds,
				Query:      RangeQuery(src, style),
				RefID:      "A",
			}},
			Title: StatTitle(style),
			Type:  "stat",
		})
	}
	return panels
}

func refID(i int) string {
	return string(rune('A' + i))
}
