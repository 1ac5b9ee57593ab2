package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/loadtestlab/panelpatch/internal/dashboard"
	"github.com/loadtestlab/panelpatch/internal/fileutil"
	"github.com/loadtestlab/panelpatch/internal/percentile"
	"gopkg.in/yaml.v3"
)

// DefaultDir is where the lab keeps its provisioned dashboards, relative to
// the working directory.
var DefaultDir = filepath.Join("grafana", "dashboards")

// DefaultDashboards are the k6 dashboards shipped with the lab.
var DefaultDashboards = []string{
	"k6-dashboard.json",
	"k6-dashboard-elite.json",
	"k6-dashboard-pro.json",
}

// FileNames are looked up in the working directory when no --config is given.
var FileNames = []string{"panelpatch.toml", "panelpatch.yaml", "panelpatch.yml"}

// Config represents panelpatch.toml / panelpatch.yaml.
type Config struct {
	Dir            string   `toml:"dir" yaml:"dir" json:"dir"`
	Dashboards     []string `toml:"dashboards" yaml:"dashboards" json:"dashboards"`
	Bucket         string   `toml:"bucket" yaml:"bucket" json:"bucket"`
	Measurement    string   `toml:"measurement" yaml:"measurement" json:"measurement"`
	Field          string   `toml:"field" yaml:"field" json:"field"`
	DatasourceType string   `toml:"datasource_type" yaml:"datasource_type" json:"datasource_type"`
	DatasourceUID  string   `toml:"datasource_uid" yaml:"datasource_uid" json:"datasource_uid"`
	SkipExisting   bool     `toml:"skip_existing" yaml:"skip_existing" json:"skip_existing"`
	DryRun         bool     `toml:"dry_run" yaml:"dry_run" json:"dry_run"`
	LogLevel       string   `toml:"log_level" yaml:"log_level" json:"log_level"`
}

// Default returns the settings the lab's dashboards were built with.
func Default() *Config {
	src := percentile.DefaultSource()
	return &Config{
		Dir:            DefaultDir,
		Dashboards:     append([]string(nil), DefaultDashboards...),
		Bucket:         src.Bucket,
		Measurement:    src.Measurement,
		Field:          src.Field,
		DatasourceType: src.Datasource.Type,
		DatasourceUID:  src.Datasource.UID,
		LogLevel:       "info",
	}
}

// Load reads a config file over the defaults. The format is chosen by
// extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (supported: .toml, .yaml, .yml)", ext)
	}

	if cfg.Dir != "" && !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(filepath.Dir(path), cfg.Dir)
	}
	return cfg, nil
}

// Find returns the first config file from FileNames present in dir, or "" if
// there is none.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to inspect %s: %w", path, err)
		}
	}
	return "", nil
}

func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Dir) == "" {
		problems = append(problems, "dir is empty")
	}
	if len(c.Dashboards) == 0 {
		problems = append(problems, "no dashboards listed")
	}
	for _, name := range c.Dashboards {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "dashboard name is empty")
			break
		}
	}
	if c.Bucket == "" {
		problems = append(problems, "bucket is empty")
	}
	if c.Measurement == "" {
		problems = append(problems, "measurement is empty")
	}
	if c.Field == "" {
		problems = append(problems, "field is empty")
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// Source is the query source the percentile panels are templated with.
func (c *Config) Source() percentile.Source {
	return percentile.Source{
		Bucket:      c.Bucket,
		Measurement: c.Measurement,
		Field:       c.Field,
		Datasource:  dashboard.Datasource{Type: c.DatasourceType, UID: c.DatasourceUID},
	}
}

// Paths resolves the configured dashboard names against Dir. A dashboard
// listed twice is only patched once per run.
func (c *Config) Paths() []string {
	paths := make([]string, 0, len(c.Dashboards))
	for _, name := range c.Dashboards {
		if filepath.IsAbs(name) {
			paths = append(paths, filepath.Clean(name))
			continue
		}
		paths = append(paths, filepath.Join(c.Dir, name))
	}
	return fileutil.DedupeStrings(paths)
}
