package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvPath names an rc file that takes precedence over the search path.
const EnvPath = "TOUCHPAINT_CONFIG"

// Loader finds and reads the rc file.
type Loader struct {
	Version      string // "dev" builds also look for .touchpaintrc in the working directory
	OverridePath string // set at link time by packagers
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Candidates lists the rc paths in search order. Empty entries are skipped.
func (l *Loader) Candidates() []string {
	paths := []string{l.OverridePath, os.Getenv(EnvPath)}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".touchpaintrc"))
		}
	}
	if dir, err := configDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "config.rc"),
			filepath.Join(dir, "touchpaint.rc"),
		)
	}
	return paths
}

// GetConfigPath returns the first existing candidate, or "" when there is
// no rc file.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if p == "" {
			continue
		}
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads the rc file, or returns defaults when none exists.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is where "config save" writes when no file exists yet.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.rc"), nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "touchpaint"), nil
}
