package config

import (
	"fmt"
	"slices"
	"strings"
)

// ConfigError collects everything wrong with a config file so startup can
// report it in one message.
type ConfigError struct {
	Path    string
	Missing []string // ${VAR} references with no value and no default
	Errors  []string // Validate output
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:\n", e.Path)
	}
	if len(e.Missing) > 0 {
		missing := slices.Clone(e.Missing)
		slices.Sort(missing)
		fmt.Fprintf(&b, "missing environment variables: %s\n", strings.Join(missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, msg := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// HasErrors reports whether the config should be rejected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// MissingVar reports whether name was referenced but unset.
func (e *ConfigError) MissingVar(name string) bool {
	return slices.Contains(e.Missing, name)
}
