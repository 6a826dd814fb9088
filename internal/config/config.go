// Package config loads CLI configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxThemeNameLength = 100  // Theme file stem
	MaxLangLength      = 35   // BCP 47 upper bound
	MaxTitleLength     = 200  // Document title
	MaxPathLength      = 4096 // Directory paths
)

// Config holds all configuration for HTML generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Theme    ThemeConfig    `yaml:"theme"`
	Document DocumentConfig `yaml:"document"`
	Export   ExportConfig   `yaml:"export"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Recursive  bool   `yaml:"recursive"`  // Descend into subdirectories
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// ThemeConfig defines CSS theme options.
type ThemeConfig struct {
	Name    string `yaml:"name"`    // Theme name (empty = built-in default stylesheet)
	UserDir string `yaml:"userDir"` // Directory of user theme files (empty = bundled only)
}

// DocumentConfig defines per-document HTML options.
type DocumentConfig struct {
	Lang  string `yaml:"lang"`  // html lang attribute (empty = "en")
	Title string `yaml:"title"` // Title override (empty = file basename)
}

// ExportConfig defines archiving options.
type ExportConfig struct {
	Mode            string `yaml:"mode"`            // "default", "zip", "batch", "standalone"
	CleanupAfterZip bool   `yaml:"cleanupAfterZip"` // Remove loose files after archiving
	BatchZipName    string `yaml:"batchZipName"`    // Override the timestamped batch name
}

// Validate checks field lengths and the export mode.
func (c *Config) Validate() error {
	if err := validateFieldLength("theme.name", c.Theme.Name, MaxThemeNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme.userDir", c.Theme.UserDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.lang", c.Document.Lang, MaxLangLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if c.Export.Mode != "" {
		switch c.Export.Mode {
		case "default", "zip", "batch", "standalone":
			// valid
		default:
			return fmt.Errorf("export.mode: invalid value %q (must be default, zip, batch, or standalone)", c.Export.Mode)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{DefaultDir: ""},
		Output:   OutputConfig{DefaultDir: ""},
		Theme:    ThemeConfig{Name: ""},
		Document: DocumentConfig{Lang: ""},
		Export:   ExportConfig{Mode: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2html", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
