package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no source has the requested theme.
var ErrNotFound = errors.New("theme not found")

const themeExt = ".theme"

// Names lists the embedded theme names.
func Names() []string {
	entries, err := EmbeddedThemes.ReadDir("defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), themeExt))
	}
	return names
}

// Loader resolves theme names. A name is tried as a file path first, then
// against the embedded themes, then in each of Dirs in order.
type Loader struct {
	Dirs []string
}

// NewLoader searches the user's config directory and then the system
// share directory.
func NewLoader() *Loader {
	l := &Loader{}
	if home, err := os.UserHomeDir(); err == nil {
		l.Dirs = append(l.Dirs, filepath.Join(home, ".config", "touchpaint", "themes"))
	}
	l.Dirs = append(l.Dirs, "/usr/share/touchpaint/themes")
	return l
}

// Load returns the named theme. The empty name is the built in default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	file := name
	if !strings.HasSuffix(file, themeExt) {
		file += themeExt
	}
	if t, err := parseFile(EmbeddedThemes, "defaults/"+file); !errors.Is(err, fs.ErrNotExist) {
		return t, err
	}
	for _, dir := range l.Dirs {
		if t, err := parseFile(os.DirFS(dir), file); !errors.Is(err, fs.ErrNotExist) {
			return t, err
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
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
