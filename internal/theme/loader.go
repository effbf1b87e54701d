package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader resolves theme names to themes.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Inline holds themes defined in the config file; they win over files.
	Inline map[string]*Theme
}

// NewLoader uses ~/.config/snipmark/themes and /usr/share/snipmark/themes.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "snipmark", "themes"),
		SystemDir: "/usr/share/snipmark/themes",
	}
}

// Load finds a theme by name or path. Lookup order: inline definitions, an
// existing file path, embedded themes, ConfigDir, then SystemDir. An empty
// name gives the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if t, ok := l.Inline[name]; ok {
		return t, nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	file := name
	if !strings.HasSuffix(file, ".theme") {
		file += ".theme"
	}
	if t, err := parseFile(Embedded, "defaults/"+file); err == nil {
		return t, nil
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
			return parseFile(os.DirFS(dir), file)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Names lists the embedded theme names.
func Names() []string {
	entries, _ := fs.ReadDir(Embedded, "defaults")
	var out []string
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".theme"); ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
