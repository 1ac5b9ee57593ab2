package dashboard

import (
	"errors"
	"fmt"
)

// ErrNoPanels is wrapped by ConfigurationError when a dashboard has nothing to
// place new panels relative to.
var ErrNoPanels = errors.New("dashboard has no panels")

// MalformedDocumentError reports a dashboard that could not be parsed.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed dashboard: %v", e.Err)
	}
	return fmt.Sprintf("malformed dashboard %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a dashboard that parsed but cannot be patched.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot patch dashboard: %v", e.Err)
	}
	return fmt.Sprintf("cannot patch dashboard %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsDocumentError reports whether err is specific to one dashboard file, as
// opposed to an I/O or environment failure.
func IsDocumentError(err error) bool {
	var malformed *MalformedDocumentError
	if errors.As(err, &malformed) {
		return true
	}
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// WithPath records path on err when it is one of the dashboard error types.
func WithPath(err error, path string) error {
	var malformed *MalformedDocumentError
	if errors.As(err, &malformed) && malformed.Path == "" {
		malformed.Path = path
	}
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Path == "" {
		cfgErr.Path = path
	}
	return err
}
