package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for theme loading.
var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrInvalidThemeName = errors.New("invalid theme name")
	ErrInvalidBasePath  = errors.New("invalid themes directory")
	ErrThemeRead        = errors.New("failed to read theme")
)

// ThemeLoader defines the contract for loading CSS themes by name.
type ThemeLoader interface {
	// LoadTheme loads a CSS theme by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) (string, error)

	// ThemeNames lists the names of available themes.
	ThemeNames() ([]string, error)
}

// ValidateThemeName rejects names that could escape the themes directory.
func ValidateThemeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidThemeName)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q contains path separator", ErrInvalidThemeName, name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q contains parent reference", ErrInvalidThemeName, name)
	}
	return nil
}
