package main

import (
	"context"
	"errors"
	"fmt"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoCommand      = errors.New("no command specified")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadFlags       = errors.New("invalid flags")
	ErrNoInput        = errors.New("no input specified")
	ErrInputNotFound  = errors.New("input not found")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI values override config values.
	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg, flags, env)
	if err != nil {
		return err
	}

	opts := md2html.ConvertOptions{
		OutputDir:       cfg.Output.DefaultDir,
		Theme:           cfg.Theme.Name,
		Title:           cfg.Document.Title,
		Lang:            cfg.Document.Lang,
		Mode:            md2html.ExportMode(cfg.Export.Mode),
		CleanupAfterZip: cfg.Export.CleanupAfterZip,
		Recursive:       cfg.Input.Recursive,
		BatchZipName:    cfg.Export.BatchZipName,
	}
	if opts.Mode == "" {
		opts.Mode = md2html.ModeDefault
	}

	if fileutil.DirExists(inputPath) {
		batch := conv.ConvertDirectory(ctx, inputPath, opts)
		return printBatchResult(batch, inputPath, flags, env)
	}

	if !fileutil.FileExists(inputPath) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}

	result := conv.ConvertFile(ctx, inputPath, opts)
	printConversionResult(result, flags, env)
	if !result.Success {
		return fmt.Errorf("converting %s: %s", inputPath, result.Error)
	}
	return nil
}

// runThemes prints the available theme names.
func runThemes(flags *themesListFlags, env *Environment) error {
	userDir := flags.userDir
	if flags.common.config != "" {
		cfg, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if userDir == "" {
			userDir = cfg.Theme.UserDir
		}
	}

	conv, err := md2html.NewConverter(md2html.WithUserThemesDir(userDir))
	if err != nil {
		return err
	}
	for _, name := range conv.AvailableThemes() {
		fmt.Fprintln(env.Stdout, name)
	}
	return nil
}

// newConverter builds the library converter from merged configuration.
func newConverter(cfg *config.Config, flags *convertFlags, env *Environment) (*md2html.Converter, error) {
	opts := []md2html.Option{
		md2html.WithDefaultTheme(cfg.Theme.Name),
		md2html.WithUserThemesDir(cfg.Theme.UserDir),
	}
	if !flags.common.quiet {
		opts = append(opts, md2html.WithProgressFunc(func(current, total int, message string) {
			fmt.Fprintf(env.Stderr, "[%d/%d] %s\n", current, total, message)
		}))
	}
	return md2html.NewConverter(opts...)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.recursive {
		cfg.Input.Recursive = true
	}
	if flags.theme.name != "" {
		cfg.Theme.Name = flags.theme.name
	}
	if flags.theme.userDir != "" {
		cfg.Theme.UserDir = flags.theme.userDir
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
	if flags.export.mode != "" {
		cfg.Export.Mode = flags.export.mode
	}
	if flags.export.cleanup {
		cfg.Export.CleanupAfterZip = true
	}
	if flags.export.batchZipName != "" {
		cfg.Export.BatchZipName = flags.export.batchZipName
	}
}

// resolveInputPath picks the input from positional args or the config default.
func resolveInputPath(positionalArgs []string, cfg *config.Config) (string, error) {
	if len(positionalArgs) > 0 {
		return positionalArgs[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// printConversionResult reports one file's outcome.
func printConversionResult(result *md2html.ConversionResult, flags *convertFlags, env *Environment) {
	if result.Success && !flags.common.quiet {
		target := result.OutputFile
		if target == "" {
			target = result.ZipFile
		}
		fmt.Fprintf(env.Stdout, "OK   %s -> %s\n", result.InputFile, target)
	}
	if flags.common.verbose {
		for _, w := range result.Warnings {
			fmt.Fprintf(env.Stderr, "warn %s: %s\n", result.InputFile, w)
		}
	}
}

// printBatchResult reports a directory conversion and maps failures to an
// error for the exit code.
func printBatchResult(batch *md2html.BatchResult, inputPath string, flags *convertFlags, env *Environment) error {
	if batch.Total == 0 {
		return fmt.Errorf("%w: no markdown files in %s", ErrInputNotFound, inputPath)
	}

	for i := range batch.Results {
		result := &batch.Results[i]
		if result.Success {
			printConversionResult(result, flags, env)
		} else {
			fmt.Fprintf(env.Stderr, "FAIL %s: %s\n", result.InputFile, result.Error)
		}
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%d/%d converted\n", batch.Successful, batch.Total)
		if batch.BatchZip != "" {
			fmt.Fprintf(env.Stdout, "archive: %s\n", batch.BatchZip)
		}
	}

	if batch.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", batch.Failed)
	}
	return nil
}
