package md2html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Compile-time interface implementation checks.
var _ markdownPreprocessor = (*commonMarkPreprocessor)(nil)

// converterConfig holds construction-time settings.
type converterConfig struct {
	defaultTheme  string
	userThemesDir string
	progress      ProgressFunc
}

// Option customizes a Converter.
type Option func(*converterConfig)

// WithDefaultTheme sets the theme used when a conversion does not name one.
func WithDefaultTheme(name string) Option {
	return func(cfg *converterConfig) {
		cfg.defaultTheme = name
	}
}

// WithUserThemesDir points the converter at a directory of user theme
// files. User themes shadow bundled themes with the same name.
func WithUserThemesDir(dir string) Option {
	return func(cfg *converterConfig) {
		cfg.userThemesDir = dir
	}
}

// WithProgressFunc installs a progress callback for batch conversion.
// Callbacks fire synchronously in strict input order, once per item.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(cfg *converterConfig) {
		cfg.progress = fn
	}
}

// ConvertOptions carries per-call conversion settings.
// The zero value converts next to the input with the default stylesheet
// and no archiving.
type ConvertOptions struct {
	// OutputDir receives all artifacts. Empty means next to the input.
	OutputDir string

	// Theme names a CSS theme; empty uses the converter's default theme,
	// then the built-in default stylesheet.
	Theme string

	// Title overrides the document title; empty uses the basename.
	Title string

	// Lang sets the html lang attribute; empty means "en".
	Lang string

	// Mode selects the export policy; empty means ModeDefault.
	Mode ExportMode

	// CleanupAfterZip removes the loose HTML and assets after a
	// successful archive. Only meaningful with an archiving mode.
	CleanupAfterZip bool

	// Recursive extends directory conversion into subdirectories.
	Recursive bool

	// BatchZipName overrides the timestamped default batch archive name.
	BatchZipName string
}

// Converter drives Markdown files through parse, render, and optional
// archiving. Safe for sequential reuse; conversions never share mutable
// state across calls.
type Converter struct {
	parser       *Parser
	renderer     *Renderer
	defaultTheme string
	progress     ProgressFunc
}

// NewConverter creates a Converter.
// Returns an error only when a configured user themes directory exists but
// cannot be read.
func NewConverter(opts ...Option) (*Converter, error) {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	renderer, err := NewRenderer(WithRendererUserThemesDir(cfg.userThemesDir))
	if err != nil {
		return nil, err
	}

	return &Converter{
		parser:       NewParser(),
		renderer:     renderer,
		defaultTheme: cfg.defaultTheme,
		progress:     cfg.progress,
	}, nil
}

// AvailableThemes returns the sorted union of user and bundled theme names.
func (c *Converter) AvailableThemes() []string {
	return c.renderer.AvailableThemes()
}

// ConvertFile converts a single Markdown file: Validate, Parse, Render,
// then Pack and Cleanup as the export mode dictates.
//
// Validation, parse, and render failures are hard per-document failures.
// An archiving failure is recorded as a warning on an otherwise successful
// document.
func (c *Converter) ConvertFile(ctx context.Context, inputFile string, opts ConvertOptions) *ConversionResult {
	result := &ConversionResult{InputFile: inputFile, Success: true}

	if err := ctx.Err(); err != nil {
		result.Success = false
		result.Error = err.Error()
		return result
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeDefault
	}
	if !mode.Valid() {
		result.Success = false
		result.Error = fmt.Sprintf("Unknown export mode: %s", mode)
		return result
	}

	if !fileutil.FileExists(inputFile) {
		result.Success = false
		result.Error = fmt.Sprintf("File not found: %s", inputFile)
		return result
	}
	if !hasMarkdownExtension(inputFile) {
		result.Success = false
		result.Error = fmt.Sprintf("Not a Markdown file: %s", inputFile)
		return result
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(inputFile)
	}

	theme := opts.Theme
	if theme == "" {
		theme = c.defaultTheme
	}

	parseResult := c.parser.ParseFile(inputFile)
	if parseResult.HTML == "" {
		result.Success = false
		result.Error = ErrParseFailure.Error()
		result.Warnings = append(result.Warnings, parseResult.Warnings...)
		return result
	}

	renderResult := c.renderer.Render(parseResult, outputDir, RenderOptions{
		Theme:      theme,
		Title:      opts.Title,
		Lang:       opts.Lang,
		Standalone: mode == ModeStandalone,
	})

	result.OutputFile = renderResult.OutputFile
	result.AssetsDir = renderResult.AssetsDir
	result.Warnings = append(result.Warnings, renderResult.Warnings...)

	if !renderResult.Success {
		result.Success = false
		result.Error = ErrRenderFailure.Error()
		return result
	}

	if mode == ModeIndividualZip {
		packer := NewZipPacker(outputDir)
		packResult := packer.PackIndividual(renderResult.OutputFile, renderResult.AssetsDir)

		if packResult.Success {
			result.ZipFile = packResult.ZipFile

			if opts.CleanupAfterZip {
				if err := packer.CleanupAfterZip(renderResult.OutputFile, renderResult.AssetsDir); err != nil {
					result.Warnings = append(result.Warnings, fmt.Sprintf("Cleanup failed: %v", err))
				} else {
					result.OutputFile = ""
					result.AssetsDir = ""
				}
			}
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("ZIP creation failed: %s", packResult.Error))
		}
	}

	return result
}

// ConvertBatch converts files strictly in the order given. Individual
// failures never abort the batch; they are counted and retained with their
// error messages. In batch-zip mode every successfully rendered document is
// queued and one archive is built after the last item.
//
// Cancellation is coarse-grained: the context is checked between items, and
// remaining items are recorded as failed without running.
func (c *Converter) ConvertBatch(ctx context.Context, files []string, opts ConvertOptions) *BatchResult {
	batch := &BatchResult{Total: len(files)}

	mode := opts.Mode
	if mode == "" {
		mode = ModeDefault
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, dirPermissions); err != nil {
			for _, file := range files {
				batch.Results = append(batch.Results, ConversionResult{
					InputFile: file,
					Error:     fmt.Sprintf("Failed to create output directory: %v", err),
				})
			}
			batch.Failed = len(files)
			return batch
		}
	}

	var zipItems []BatchItem

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			batch.Results = append(batch.Results, ConversionResult{
				InputFile: file,
				Error:     err.Error(),
			})
			batch.Failed++
			continue
		}

		c.reportProgress(i+1, len(files), "Converting: "+filepath.Base(file))

		itemOpts := opts
		itemOpts.Mode = perItemMode(mode)
		itemOpts.CleanupAfterZip = opts.CleanupAfterZip && mode != ModeBatchZip

		result := c.ConvertFile(ctx, file, itemOpts)
		batch.Results = append(batch.Results, *result)

		if result.Success {
			batch.Successful++
			if mode == ModeBatchZip {
				zipItems = append(zipItems, BatchItem{
					HTMLFile:  result.OutputFile,
					AssetsDir: result.AssetsDir,
				})
			}
		} else {
			batch.Failed++
		}
	}

	if mode == ModeBatchZip && len(zipItems) > 0 {
		c.reportProgress(len(files), len(files), "Creating batch archive...")

		packer := NewZipPacker(c.batchOutputDir(files, opts))
		packResult := packer.PackBatch(zipItems, opts.BatchZipName)

		if packResult.Success {
			batch.BatchZip = packResult.ZipFile

			if opts.CleanupAfterZip {
				for _, item := range zipItems {
					_ = packer.CleanupAfterZip(item.HTMLFile, item.AssetsDir)
				}
			}
		}
	}

	c.reportProgress(len(files), len(files), "Complete!")
	return batch
}

// ConvertDirectory expands inputDir to its .md and .markdown files
// (case-sensitive match, recursive when requested) and delegates to
// ConvertBatch. An empty match set yields an empty BatchResult.
func (c *Converter) ConvertDirectory(ctx context.Context, inputDir string, opts ConvertOptions) *BatchResult {
	if !fileutil.DirExists(inputDir) {
		return &BatchResult{}
	}

	files, err := discoverMarkdownFiles(inputDir, opts.Recursive)
	if err != nil || len(files) == 0 {
		return &BatchResult{}
	}

	if opts.OutputDir == "" {
		opts.OutputDir = inputDir
	}

	return c.ConvertBatch(ctx, files, opts)
}

// batchOutputDir resolves where the batch archive lands.
func (c *Converter) batchOutputDir(files []string, opts ConvertOptions) string {
	if opts.OutputDir != "" {
		return opts.OutputDir
	}
	if len(files) > 0 {
		return filepath.Dir(files[0])
	}
	return "."
}

// reportProgress invokes the progress callback if one is installed.
// A panicking progress sink must not abort the conversion.
func (c *Converter) reportProgress(current, total int, message string) {
	if c.progress == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	c.progress(current, total, message)
}

// perItemMode derives the per-file export mode from the batch mode:
// batch-zip files render without per-file archiving (the merged archive is
// built once at the end); other modes apply per file unchanged.
func perItemMode(batchMode ExportMode) ExportMode {
	if batchMode == ModeBatchZip {
		return ModeDefault
	}
	return batchMode
}

// hasMarkdownExtension reports whether path ends in .md or .markdown,
// case-insensitively.
func hasMarkdownExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// discoverMarkdownFiles lists *.md files then *.markdown files under dir,
// each group in walk order. Extension matching is case-sensitive.
func discoverMarkdownFiles(dir string, recursive bool) ([]string, error) {
	var mdFiles, markdownFiles []string

	collect := func(path string) {
		switch filepath.Ext(path) {
		case ".md":
			mdFiles = append(mdFiles, path)
		case ".markdown":
			markdownFiles = append(markdownFiles, path)
		}
	}

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if !d.IsDir() {
				collect(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				collect(filepath.Join(dir, entry.Name()))
			}
		}
	}

	return append(mdFiles, markdownFiles...), nil
}
