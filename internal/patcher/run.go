package patcher

import (
	"fmt"
	"path/filepath"

	"github.com/loadtestlab/panelpatch/internal/config"
	"github.com/loadtestlab/panelpatch/internal/dashboard"
	"github.com/loadtestlab/panelpatch/internal/fileutil"
	"github.com/loadtestlab/panelpatch/internal/percentile"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeWrite  Mode = "write"
	ModeDryRun Mode = "dry-run"
	ModePlan   Mode = "plan"
)

type Status string

const (
	StatusPatched   Status = "patched"
	StatusPlanned   Status = "planned"
	StatusUnchanged Status = "unchanged"
	StatusMissing   Status = "missing"
	StatusFailed    Status = "failed"
)

type FileResult struct {
	Path      string              `json:"path"`
	Name      string              `json:"name"`
	Status    Status              `json:"status"`
	Result    *Result             `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
	HashFrom  string              `json:"hash_from,omitempty"`
	HashTo    string              `json:"hash_to,omitempty"`
	Diff      string              `json:"diff,omitempty"`
	DiffStats *fileutil.DiffStats `json:"diff_stats,omitempty"`
}

type Report struct {
	Mode        Mode         `json:"mode"`
	Files       []FileResult `json:"files"`
	Patched     int          `json:"patched"`
	Planned     int          `json:"planned"`
	Unchanged   int          `json:"unchanged"`
	Missing     int          `json:"missing"`
	Failed      int          `json:"failed"`
	PanelsAdded int          `json:"panels_added"`
}

func (r *Report) record(fr FileResult) {
	r.Files = append(r.Files, fr)
	switch fr.Status {
	case StatusPatched:
		r.Patched++
		r.PanelsAdded += fr.Result.Added()
	case StatusPlanned:
		r.Planned++
	case StatusUnchanged:
		r.Unchanged++
	case StatusMissing:
		r.Missing++
	case StatusFailed:
		r.Failed++
	}
}

type Patcher struct {
	Source  percentile.Source
	Options Options
	Mode    Mode
	Logger  *zap.Logger

	// Progress, when set, is called before each file with its 1-based position.
	Progress func(path string, position int)
}

func New(cfg *config.Config, mode Mode, logger *zap.Logger) *Patcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Patcher{
		Source:  cfg.Source(),
		Options: Options{SkipExisting: cfg.SkipExisting},
		Mode:    mode,
		Logger:  logger,
	}
}

// Run processes paths one at a time. Missing files and dashboards that cannot
// be parsed or patched are recorded and the run moves on; any other error
// stops the run.
func (p *Patcher) Run(paths []string) (Report, error) {
	report := Report{Mode: p.Mode, Files: make([]FileResult, 0, len(paths))}
	for i, path := range paths {
		if p.Progress != nil {
			p.Progress(path, i+1)
		}
		fr, err := p.PatchFile(path)
		if err != nil && !dashboard.IsDocumentError(err) {
			return report, err
		}
		if err != nil {
			p.Logger.Error("dashboard not patched", zap.String("dashboard", fr.Name), zap.Error(err))
		}
		report.record(fr)
	}
	return report, nil
}

// PatchFile runs one read-modify-write cycle. The file is read and patched in
// memory first; it is only rewritten once that has succeeded.
func (p *Patcher) PatchFile(path string) (FileResult, error) {
	fr := FileResult{Path: path, Name: filepath.Base(path)}
	log := p.Logger.With(zap.String("dashboard", fr.Name))

	data, ok, err := fileutil.ReadExisting(path)
	if err != nil {
		return failed(fr, fmt.Errorf("failed to read %s: %w", path, err))
	}
	if !ok {
		log.Warn("dashboard not found, skipping", zap.String("path", path))
		fr.Status = StatusMissing
		return fr, nil
	}

	fr.HashFrom = fileutil.HashBytes(data)

	d, err := dashboard.Decode(data)
	if err != nil {
		return failed(fr, dashboard.WithPath(err, path))
	}

	var res Result
	if p.Mode == ModePlan {
		res, err = Plan(d)
		if err == nil && alreadyPatched(d, p.Options) {
			res = res.skipped()
		}
	} else {
		res, err = Apply(d, p.Source, p.Options)
	}
	if err != nil {
		return failed(fr, dashboard.WithPath(err, path))
	}
	fr.Result = &res
	log.Debug("dashboard layout",
		zap.Int("panels", res.PanelsFound),
		zap.Int("max_id", res.MaxID),
		zap.Int("next_y", res.NextY),
	)

	if res.Skipped {
		log.Info("percentile panels already present, leaving dashboard unchanged")
		fr.Status = StatusUnchanged
		return fr, nil
	}

	if p.Mode == ModePlan {
		fr.Status = StatusPlanned
		return fr, nil
	}

	encoded, err := d.Encode()
	if err != nil {
		return failed(fr, fmt.Errorf("failed to encode %s: %w", path, err))
	}
	fr.HashTo = fileutil.HashBytes(encoded)
	if p.Mode == ModeDryRun {
		diff, stats := fileutil.LineDiff(string(data), string(encoded))
		fr.Diff = diff
		fr.DiffStats = &stats
		fr.Status = StatusPlanned
		return fr, nil
	}
	if err := fileutil.WriteExisting(path, encoded); err != nil {
		return failed(fr, fmt.Errorf("failed to save %s: %w", path, err))
	}

	fr.Status = StatusPatched
	log.Info("added percentile panels",
		zap.Int("chart_id", res.ChartID),
		zap.Int("chart_y", res.ChartY),
		zap.Ints("stat_ids", res.StatIDs),
		zap.Int("stat_y", res.StatY),
	)
	return fr, nil
}

func failed(fr FileResult, err error) (FileResult, error) {
	fr.Status = StatusFailed
	fr.Error = err.Error()
	return fr, err
}
