package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/loadtestlab/panelpatch/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesLabLayout(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, filepath.Join("grafana", "dashboards"), cfg.Dir)
	assert.Equal(t, []string{
		filepath.Join("grafana", "dashboards", "k6-dashboard.json"),
		filepath.Join("grafana", "dashboards", "k6-dashboard-elite.json"),
		filepath.Join("grafana", "dashboards", "k6-dashboard-pro.json"),
	}, cfg.Paths())

	src := cfg.Source()
	assert.Equal(t, "loadtests", src.Bucket)
	assert.Equal(t, "http_req_duration", src.Measurement)
	assert.Equal(t, "value", src.Field)
	assert.Equal(t, dashboard.Datasource{Type: "influxdb", UID: "influxdb"}, src.Datasource)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panelpatch.toml")
	writeFile(t, path, `
dir = "boards"
dashboards = ["api.json"]
bucket = "perf"
skip_existing = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "boards"), cfg.Dir)
	assert.Equal(t, []string{"api.json"}, cfg.Dashboards)
	assert.Equal(t, "perf", cfg.Bucket)
	assert.Equal(t, "http_req_duration", cfg.Measurement, "unset keys keep defaults")
	assert.True(t, cfg.SkipExisting)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panelpatch.yml")
	writeFile(t, path, `
dir: /srv/grafana
measurement: iteration_duration
datasource_uid: influx-prod
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/grafana", cfg.Dir)
	assert.Equal(t, DefaultDashboards, cfg.Dashboards)
	assert.Equal(t, "iteration_duration", cfg.Measurement)
	assert.Equal(t, "influx-prod", cfg.Source().Datasource.UID)
	assert.Equal(t, "influxdb", cfg.Source().Datasource.Type)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsUnknownExtensionAndBadSyntax(t *testing.T) {
	dir := t.TempDir()

	ini := filepath.Join(dir, "panelpatch.ini")
	writeFile(t, ini, "dir=x")
	_, err := Load(ini)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")

	broken := filepath.Join(dir, "panelpatch.toml")
	writeFile(t, broken, "dir = [")
	_, err = Load(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	path, err := Find(dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	writeFile(t, filepath.Join(dir, "panelpatch.yaml"), "bucket: x\n")
	path, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "panelpatch.yaml"), path)

	writeFile(t, filepath.Join(dir, "panelpatch.toml"), "bucket = \"x\"\n")
	path, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "panelpatch.toml"), path, "toml wins over yaml")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Dashboards = nil
	cfg.Field = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dashboards listed")
	assert.Contains(t, err.Error(), "field is empty")
}

func TestPathsKeepsAbsoluteNames(t *testing.T) {
	cfg := Default()
	abs := filepath.Join(t.TempDir(), "other.json")
	cfg.Dashboards = []string{abs, "local.json"}

	assert.Equal(t, []string{abs, filepath.Join(cfg.Dir, "local.json")}, cfg.Paths())
}

func TestPathsDropsDuplicates(t *testing.T) {
	cfg := Default()
	cfg.Dashboards = []string{"a.json", "./a.json", "b.json", "a.json"}

	assert.Equal(t, []string{
		filepath.Join(cfg.Dir, "a.json"),
		filepath.Join(cfg.Dir, "b.json"),
	}, cfg.Paths())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
