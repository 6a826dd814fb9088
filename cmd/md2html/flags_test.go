package main

import (
	"reflect"
	"testing"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		wantOutput     string
		wantTheme      string
		wantMode       string
		wantCleanup    bool
		wantRecursive  bool
		wantQuiet      bool
		wantPositional []string
		wantErr        bool
	}{
		{
			name:           "no args",
			args:           []string{},
			wantPositional: []string{},
		},
		{
			name:           "single file",
			args:           []string{"doc.md"},
			wantPositional: []string{"doc.md"},
		},
		{
			name:           "long flags",
			args:           []string{"--output", "out", "--theme", "dark", "--mode", "zip", "doc.md"},
			wantOutput:     "out",
			wantTheme:      "dark",
			wantMode:       "zip",
			wantPositional: []string{"doc.md"},
		},
		{
			name:           "short flags",
			args:           []string{"-o", "out", "-t", "dark", "-m", "batch", "-r", "-q", "docs"},
			wantOutput:     "out",
			wantTheme:      "dark",
			wantMode:       "batch",
			wantRecursive:  true,
			wantQuiet:      true,
			wantPositional: []string{"docs"},
		},
		{
			name:           "cleanup flag",
			args:           []string{"--cleanup", "doc.md"},
			wantCleanup:    true,
			wantPositional: []string{"doc.md"},
		},
		{
			name:    "unknown flag",
			args:    []string{"--nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			flags, positional, err := parseConvertFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseConvertFlags() error = %v", err)
			}
			if flags.output != tt.wantOutput {
				t.Errorf("output = %q, want %q", flags.output, tt.wantOutput)
			}
			if flags.theme.name != tt.wantTheme {
				t.Errorf("theme = %q, want %q", flags.theme.name, tt.wantTheme)
			}
			if flags.export.mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", flags.export.mode, tt.wantMode)
			}
			if flags.export.cleanup != tt.wantCleanup {
				t.Errorf("cleanup = %v, want %v", flags.export.cleanup, tt.wantCleanup)
			}
			if flags.recursive != tt.wantRecursive {
				t.Errorf("recursive = %v, want %v", flags.recursive, tt.wantRecursive)
			}
			if flags.common.quiet != tt.wantQuiet {
				t.Errorf("quiet = %v, want %v", flags.common.quiet, tt.wantQuiet)
			}
			if !reflect.DeepEqual(positional, tt.wantPositional) {
				t.Errorf("positional = %v, want %v", positional, tt.wantPositional)
			}
		})
	}
}

func TestParseThemesFlags(t *testing.T) {
	t.Parallel()

	flags, _, err := parseThemesFlags([]string{"--themes-dir", "/tmp/themes"})
	if err != nil {
		t.Fatalf("parseThemesFlags() error = %v", err)
	}
	if flags.userDir != "/tmp/themes" {
		t.Errorf("userDir = %q", flags.userDir)
	}
}
