package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/loadtestlab/panelpatch/internal/fileutil"
	"github.com/loadtestlab/panelpatch/internal/patcher"
)

type RunSummary struct {
	Mode        string               `json:"mode"`
	Dir         string               `json:"dir"`
	Patched     int                  `json:"patched"`
	Planned     int                  `json:"planned"`
	Unchanged   int                  `json:"unchanged"`
	Missing     int                  `json:"missing"`
	Failed      int                  `json:"failed"`
	PanelsAdded int                  `json:"panels_added"`
	DurationMS  int64                `json:"duration_ms"`
	Files       []patcher.FileResult `json:"files"`
}

func NewRunSummary(dir string, report patcher.Report, elapsed time.Duration) RunSummary {
	return RunSummary{
		Mode:        string(report.Mode),
		Dir:         dir,
		Patched:     report.Patched,
		Planned:     report.Planned,
		Unchanged:   report.Unchanged,
		Missing:     report.Missing,
		Failed:      report.Failed,
		PanelsAdded: report.PanelsAdded,
		DurationMS:  elapsed.Milliseconds(),
		Files:       report.Files,
	}
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(os.Stdout, summary)
	}

	for _, file := range summary.Files {
		fmt.Println(describeFile(file))
		if file.Diff != "" {
			fmt.Print(fileutil.EnsureTrailingNewline(file.Diff))
		}
	}

	switch patcher.Mode(summary.Mode) {
	case patcher.ModeWrite:
		fmt.Printf("patch: patched=%d unchanged=%d missing=%d failed=%d panels_added=%d duration=%dms\n",
			summary.Patched, summary.Unchanged, summary.Missing, summary.Failed, summary.PanelsAdded, summary.DurationMS)
		if summary.Patched > 0 {
			fmt.Println("existing panels were not modified; restart Grafana to load the new panels")
		}
	default:
		fmt.Printf("%s: planned=%d unchanged=%d missing=%d failed=%d duration=%dms (no files written)\n",
			summary.Mode, summary.Planned, summary.Unchanged, summary.Missing, summary.Failed, summary.DurationMS)
	}
	return nil
}

func describeFile(file patcher.FileResult) string {
	switch file.Status {
	case patcher.StatusMissing:
		return fmt.Sprintf("missing %s: not found, skipped", file.Name)
	case patcher.StatusFailed:
		return fmt.Sprintf("failed %s: %s", file.Name, file.Error)
	case patcher.StatusUnchanged:
		return fmt.Sprintf("unchanged %s: percentile panels already present", file.Name)
	}

	res := file.Result
	parts := []string{
		fmt.Sprintf("%s %s:", file.Status, file.Name),
		fmt.Sprintf("panels=%d max_id=%d", res.PanelsFound, res.MaxID),
		fmt.Sprintf("chart id %d at y=%d", res.ChartID, res.ChartY),
		fmt.Sprintf("stat ids %s at y=%d", formatIDRange(res.StatIDs), res.StatY),
	}
	if file.DiffStats != nil {
		parts = append(parts, fmt.Sprintf("(+%d -%d lines)", file.DiffStats.Added, file.DiffStats.Removed))
	}
	return strings.Join(parts, " ")
}

func formatIDRange(ids []int) string {
	switch len(ids) {
	case 0:
		return "none"
	case 1:
		return fmt.Sprintf("%d", ids[0])
	}
	return fmt.Sprintf("%d-%d", ids[0], ids[len(ids)-1])
}
