package assets

import (
	"errors"
	"sort"
)

// Resolver combines a user themes directory with the embedded bundle.
// User themes take priority; the embedded bundle is the fallback, so a
// user can shadow a bundled theme by reusing its name.
type Resolver struct {
	user     ThemeLoader // nil if no user directory configured
	embedded ThemeLoader
}

// NewResolver creates a Resolver. If userThemesDir is empty, only bundled
// themes are served. A configured but invalid user directory is an error.
func NewResolver(userThemesDir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if userThemesDir != "" {
		fsLoader, err := NewFilesystemLoader(userThemesDir)
		if err != nil {
			return nil, err
		}
		r.user = fsLoader
	}

	return r, nil
}

// LoadTheme loads a theme, trying the user directory first if configured.
// Falls back to the embedded bundle only for "not found" errors; read and
// validation failures surface directly.
func (r *Resolver) LoadTheme(name string) (string, error) {
	if r.user == nil {
		return r.embedded.LoadTheme(name)
	}

	content, err := r.user.LoadTheme(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return "", err
	}

	return r.embedded.LoadTheme(name)
}

// ThemeNames returns the union of user and bundled theme names, sorted.
func (r *Resolver) ThemeNames() ([]string, error) {
	seen := map[string]bool{}

	embedded, err := r.embedded.ThemeNames()
	if err != nil {
		return nil, err
	}
	for _, name := range embedded {
		seen[name] = true
	}

	if r.user != nil {
		user, err := r.user.ThemeNames()
		if err != nil {
			return nil, err
		}
		for _, name := range user {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// HasUserLoader returns true if a user themes directory is configured.
func (r *Resolver) HasUserLoader() bool {
	return r.user != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*Resolver)(nil)
