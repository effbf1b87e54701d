package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Loader finds and reads the configuration file.
type Loader struct {
	Version      string // "dev" enables ./.snipmarkrc
	OverridePath string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile parses path, choosing YAML for .yaml and .yml files.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	}
	return Parse(f)
}

// GetConfigPath returns the configuration file to use, or "" if none exists.
func (l *Loader) GetConfigPath() string {
	var candidates []string
	if l.OverridePath != "" {
		candidates = append(candidates, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(wd, ".snipmarkrc"))
		}
	}
	for _, name := range []string{"config.rc", "config.yaml", "config.yml"} {
		candidates = append(candidates, filepath.Join(Dir(), name))
	}
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Dir is ~/.config/snipmark, honouring XDG_CONFIG_HOME.
func Dir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "snipmark")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "snipmark")
}

// DefaultPath is where "config init" writes a new file.
func DefaultPath() string { return filepath.Join(Dir(), "config.rc") }
