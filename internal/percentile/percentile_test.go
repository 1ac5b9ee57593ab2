package percentile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/loadtestlab/panelpatch/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleTable(t *testing.T) {
	type row struct {
		Name      string
		Color     string
		LineWidth int
	}
	got := make([]row, 0, len(Styles))
	for _, style := range Styles {
		got = append(got, row{style.Name, style.Color, style.LineWidth})
	}
	want := []row{
		{"p50", "green", 2},
		{"p75", "blue", 2},
		{"p90", "yellow", 2},
		{"p95", "orange", 3},
		{"p99", "red", 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("style table mismatch (-want +got):\n%s", diff)
	}

	first, last := Styles[0], Styles[len(Styles)-1]
	for _, style := range Styles {
		assert.GreaterOrEqual(t, style.LineWidth, first.LineWidth, style.Name)
		assert.LessOrEqual(t, style.LineWidth, last.LineWidth, style.Name)
	}
}

func TestStatRowFillsGrid(t *testing.T) {
	widths := make([]int, 0, len(Styles))
	for _, style := range Styles {
		widths = append(widths, style.StatWidth)
	}
	assert.Equal(t, []int{5, 5, 5, 5, 4}, widths)
	assert.Equal(t, dashboard.GridWidth, StatRowWidth())
	assert.Equal(t, []int{0, 5, 10, 15, 20}, StatOffsets())
	require.NoError(t, validateStyles())
}

func TestByName(t *testing.T) {
	style, ok := ByName("p90")
	require.True(t, ok)
	assert.Equal(t, 0.90, style.Quantile)

	_, ok = ByName("p42")
	assert.False(t, ok)
}

func TestWindowQuery(t *testing.T) {
	style, _ := ByName("p50")
	query := WindowQuery(DefaultSource(), style)

	want := `from(bucket: "loadtests")
  |> range(start: v.timeRangeStart, stop: v.timeRangeStop)
  |> filter(fn: (r) => r["_measurement"] == "http_req_duration")
  |> filter(fn: (r) => r["_field"] == "value")
  |> aggregateWindow(every: v.windowPeriod, fn: (tables=<-, column) =>
      tables
        |> quantile(q: 0.50, column: column, method: "exact_mean"),
      createEmpty: false)
  |> set(key: "_field", value: "p50")`
	assert.Equal(t, want, query)
}

func TestRangeQueryHasNoWindow(t *testing.T) {
	src := Source{Bucket: "perf", Measurement: "latency", Field: "ms"}
	style, _ := ByName("p99")
	query := RangeQuery(src, style)

	assert.True(t, strings.HasPrefix(query, `from(bucket: "perf")`))
	assert.Contains(t, query, `r["_measurement"] == "latency"`)
	assert.Contains(t, query, `r["_field"] == "ms"`)
	assert.Contains(t, query, `|> quantile(q: 0.99, method: "exact_mean")`)
	assert.NotContains(t, query, "aggregateWindow")

	median, _ := ByName("p50")
	assert.Contains(t, RangeQuery(src, median), "quantile(q: 0.5,")
}

func TestTimeseriesPanel(t *testing.T) {
	panel := TimeseriesPanel(DefaultSource(), 4, 24)

	assert.Equal(t, 4, panel.ID)
	assert.Equal(t, "timeseries", panel.Type)
	assert.Equal(t, dashboard.GridPos{H: 8, W: 24, X: 0, Y: 24}, panel.GridPos)
	assert.Equal(t, "📊 Response Time Percentiles (p50, p75, p90, p95, p99)", panel.Title)

	require.Len(t, panel.Targets, len(Styles))
	require.Len(t, panel.FieldConfig.Overrides, len(Styles))
	for i, style := range Styles {
		target := panel.Targets[i]
		assert.Equal(t, string(rune('A'+i)), target.RefID)
		assert.Contains(t, target.Query, `value: "`+style.Name+`"`)

		override := panel.FieldConfig.Overrides[i]
		assert.Equal(t, style.Name, override.Matcher.Options)
		assert.Equal(t, dashboard.FieldColor{FixedColor: style.Color, Mode: "fixed"}, override.Properties[0].Value)
		assert.Equal(t, style.LineWidth, override.Properties[1].Value)
	}
}

func TestStatPanels(t *testing.T) {
	panels := StatPanels(DefaultSource(), 5, 32)
	require.Len(t, panels, len(Styles))

	titles := make([]string, 0, len(panels))
	for i, panel := range panels {
		assert.Equal(t, 5+i, panel.ID)
		assert.Equal(t, "stat", panel.Type)
		assert.Equal(t, 32, panel.GridPos.Y)
		assert.Equal(t, StatHeight, panel.GridPos.H)
		assert.Equal(t, Styles[i].Color, panel.FieldConfig.Defaults.Color.FixedColor)
		assert.Equal(t, StatPluginVersion, panel.PluginVersion)
		require.Len(t, panel.Targets, 1)
		assert.NotContains(t, panel.Targets[0].Query, "aggregateWindow")
		titles = append(titles, panel.Title)
	}
	assert.Equal(t, []string{
		"Median Percentile (p50)",
		"75th Percentile (p75)",
		"90th Percentile (p90)",
		"95th Percentile (p95)",
		"99th Percentile (p99)",
	}, titles)

	last := panels[len(panels)-1].GridPos
	assert.Equal(t, dashboard.GridWidth, last.X+last.W)
}
