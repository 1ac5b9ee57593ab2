package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type progressReporter struct {
	enabled bool
	label   string
	total   int
	start   time.Time
	lastLen int
}

// newProgressReporter only draws when stderr is a terminal that info logs are
// not also writing to, and the summary is not being printed as JSON.
func newProgressReporter(label string, total int, asJSON, verbose bool) *progressReporter {
	stat, err := os.Stderr.Stat()
	enabled := err == nil && (stat.Mode()&os.ModeCharDevice) != 0 && !asJSON && !verbose
	return &progressReporter{
		enabled: enabled,
		label:   label,
		total:   total,
		start:   time.Now(),
	}
}

func (r *progressReporter) Update(path string, count int) {
	if !r.enabled {
		return
	}
	name := filepath.Base(strings.TrimSpace(path))
	r.printStatus(fmt.Sprintf("%s %d/%d %s", r.label, count, r.total, name))
}

func (r *progressReporter) Done() {
	if !r.enabled {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("%s complete (%d dashboards in %s)", r.label, r.total, elapsed))
	fmt.Fprintln(os.Stderr)
}

func (r *progressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(os.Stderr, "\r%s", status)
}
