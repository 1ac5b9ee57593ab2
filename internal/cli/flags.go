package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/loadtestlab/panelpatch/internal/config"
	"github.com/spf13/cobra"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return fallback, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	return cmd != nil && cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name)
}

// ResolveConfig builds the run configuration: defaults, then the config file,
// then flags that were set explicitly, then positional dashboard names.
func ResolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	rootPath, err := resolveWorkingDirectory()
	if err != nil {
		return nil, err
	}

	configPath, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath, err = config.Find(rootPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	if flagChanged(cmd, "dir") {
		dir, err := OptionalStringFlag(cmd, "dir")
		if err != nil {
			return nil, err
		}
		cfg.Dir = dir
	}
	if flagChanged(cmd, "skip-existing") {
		if cfg.SkipExisting, err = OptionalBoolFlag(cmd, "skip-existing", false); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "dry-run") {
		if cfg.DryRun, err = OptionalBoolFlag(cmd, "dry-run", false); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "log-level") {
		if cfg.LogLevel, err = OptionalStringFlag(cmd, "log-level"); err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		cfg.Dashboards = append([]string(nil), args...)
	}

	if !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(rootPath, cfg.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
