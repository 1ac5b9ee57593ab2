package percentile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loadtestlab/panelpatch/internal/dashboard"
)

const (
	DefaultBucket      = "loadtests"
	DefaultMeasurement = "http_req_duration"
	DefaultField       = "value"
)

// Source names the InfluxDB series the panels read from.
type Source struct {
	Bucket      string
	Measurement string
	Field       string
	Datasource  dashboard.Datasource
}

func DefaultSource() Source {
	return Source{
		Bucket:      DefaultBucket,
		Measurement: DefaultMeasurement,
		Field:       DefaultField,
		Datasource:  dashboard.Datasource{Type: "influxdb", UID: "influxdb"},
	}
}

func (s Source) selectLines() []string {
	return []string{
		fmt.Sprintf("from(bucket: %s)", strconv.Quote(s.Bucket)),
		"  |> range(start: v.timeRangeStart, stop: v.timeRangeStop)",
		fmt.Sprintf(`  |> filter(fn: (r) => r["_measurement"] == %s)`, strconv.Quote(s.Measurement)),
		fmt.Sprintf(`  |> filter(fn: (r) => r["_field"] == %s)`, strconv.Quote(s.Field)),
	}
}

// WindowQuery computes the quantile per dashboard window and renames the
// series after the percentile so overrides can match it.
func WindowQuery(src Source, style Style) string {
	lines := append(src.selectLines(),
		"  |> aggregateWindow(every: v.windowPeriod, fn: (tables=<-, column) =>",
		"      tables",
		fmt.Sprintf(`        |> quantile(q: %.2f, column: column, method: "exact_mean"),`, style.Quantile),
		"      createEmpty: false)",
		fmt.Sprintf(`  |> set(key: "_field", value: %s)`, strconv.Quote(style.Name)),
	)
	return strings.Join(lines, "\n")
}

// RangeQuery computes one quantile over the whole selected time range.
func RangeQuery(src Source, style Style) string {
	lines := append(src.selectLines(),
		fmt.Sprintf(`  |> quantile(q: %s, method: "exact_mean")`, strconv.FormatFloat(style.Quantile, 'f', -1, 64)),
	)
	return strings.Join(lines, "\n")
}
