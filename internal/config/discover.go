package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvPath names the environment variable that pins the config file.
const EnvPath = "BOXOFFICE_CONFIG"

const (
	appDir   = "boxoffice"
	fileName = "config.toml"
)

// DefaultPath is $XDG_CONFIG_HOME/boxoffice/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", fileName)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDir, fileName)
}

// SearchPaths lists the locations Discover checks after EnvPath, in order.
func SearchPaths() []string {
	return []string{
		filepath.Join(".", fileName),
		DefaultPath(),
		filepath.Join("/etc", appDir, fileName),
	}
}

// Discover returns the config file to load. An EnvPath that points at a
// missing file is an error rather than a reason to keep searching.
func Discover() (string, error) {
	if pinned := os.Getenv(EnvPath); pinned != "" {
		if _, err := os.Stat(pinned); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvPath, pinned, err)
		}
		return pinned, nil
	}

	candidates := SearchPaths()
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("config not found, checked: %s", strings.Join(candidates, ", "))
}
