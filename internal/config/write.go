package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed default_config.toml
var defaultConfig string

// ErrExists is returned by WriteDefault when the target exists and
// overwrite was not requested.
var ErrExists = errors.New("config file already exists")

// DefaultTOML returns the embedded starter config.
func DefaultTOML() string { return defaultConfig }

// WriteDefault writes the starter config to path, creating parent
// directories. An existing file is kept unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
