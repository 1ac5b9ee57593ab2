package cli

import (
	"fmt"
	"os"

	"github.com/loadtestlab/panelpatch/internal/logging"
	"go.uber.org/zap"
)

func resolveWorkingDirectory() (string, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

func newLogger(level string) (*zap.Logger, error) {
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return logger, nil
}
