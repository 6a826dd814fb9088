package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed themes/*.css
var embeddedThemes embed.FS

// embeddedRoot is the directory inside the embedded FS holding theme files.
const embeddedRoot = "themes"

// EmbeddedLoader serves the bundled themes compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates a loader over the bundled theme files.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: embeddedThemes}
}

// LoadTheme loads a bundled CSS theme by name.
func (e *EmbeddedLoader) LoadTheme(name string) (string, error) {
	if err := ValidateThemeName(name); err != nil {
		return "", err
	}

	content, err := fs.ReadFile(e.fsys, embeddedRoot+"/"+name+".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return string(content), nil
}

// ThemeNames lists bundled theme names, sorted.
func (e *EmbeddedLoader) ThemeNames() ([]string, error) {
	entries, err := fs.ReadDir(e.fsys, embeddedRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeRead, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".css") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".css"))
	}
	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
