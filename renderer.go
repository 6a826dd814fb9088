package md2html

import (
	"crypto/md5" // #nosec G501 -- collision suffixes, not security
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"html"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/htmldoc"
	"github.com/alnah/go-md2html/internal/imagegen"
)

// htmlTemplate wraps the rewritten fragment in a complete HTML5 document.
// Placeholders: lang, title, css, content.
const htmlTemplate = `<!DOCTYPE html>
<html lang="%s">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
%s
    </style>
</head>
<body>
    <article class="markdown-body">
%s
    </article>
</body>
</html>`

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// DefaultLang is the html lang attribute used when none is requested.
const DefaultLang = "en"

// RenderOptions carries per-document rendering settings.
// The zero value renders with the default stylesheet, the document basename
// as title, and lang "en".
type RenderOptions struct {
	// Theme names a CSS theme; empty uses the built-in default stylesheet.
	Theme string

	// Title overrides the document title; empty uses the basename.
	Title string

	// Lang sets the html lang attribute; empty means "en".
	Lang string

	// Standalone inlines local images as base64 data: URIs instead of
	// creating an asset directory.
	Standalone bool
}

// rendererConfig holds construction-time settings.
type rendererConfig struct {
	userThemesDir string
}

// RendererOption customizes a Renderer.
type RendererOption func(*rendererConfig)

// WithRendererUserThemesDir points the renderer at a directory of user
// theme files (<name>.css). User themes shadow bundled themes with the
// same name. A directory that does not exist is silently ignored.
func WithRendererUserThemesDir(dir string) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.userThemesDir = dir
	}
}

// Renderer resolves a parsed document into a themed HTML file with its
// images copied or synthesized into a per-document asset directory.
type Renderer struct {
	themes *assets.Resolver
}

// NewRenderer creates a Renderer.
// Returns an error only when a configured user themes directory exists but
// cannot be read.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	userDir := cfg.userThemesDir
	if userDir != "" && !fileutil.DirExists(userDir) {
		// Tolerate an absent user directory: themes simply come from
		// the bundle until the user creates it.
		userDir = ""
	}

	themes, err := assets.NewResolver(userDir)
	if err != nil {
		return nil, fmt.Errorf("configuring themes: %w", err)
	}

	return &Renderer{themes: themes}, nil
}

// AvailableThemes returns the sorted union of user and bundled theme names.
func (r *Renderer) AvailableThemes() []string {
	names, err := r.themes.ThemeNames()
	if err != nil {
		return nil
	}
	return names
}

// Render resolves images, rewrites the HTML, wraps it in a themed document,
// and writes it to outputDir/<basename>.html.
//
// The asset directory assets_<basename> is created only when the document
// references at least one local image and Standalone is off. A failed image
// copy or placeholder write is a warning; the image keeps its original src.
// Only a failed HTML write marks the result unsuccessful.
func (r *Renderer) Render(pr *ParseResult, outputDir string, opts RenderOptions) *RenderResult {
	result := &RenderResult{Success: true}

	baseName := "document"
	if pr.SourceFile != "" {
		baseName = fileutil.Stem(pr.SourceFile)
	}

	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		result.Success = false
		result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to create output directory: %v", err))
		result.Warnings = mergeWarnings(pr.Warnings, result.Warnings)
		return result
	}

	mapping := map[string]string{}

	if len(pr.LocalImages) > 0 {
		if opts.Standalone {
			r.inlineImages(pr.LocalImages, mapping, result)
		} else {
			assetsDirName := "assets_" + baseName
			assetsDir := filepath.Join(outputDir, assetsDirName)
			if err := os.MkdirAll(assetsDir, dirPermissions); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to create assets directory: %v", err))
			} else {
				result.AssetsDir = assetsDir
				r.isolateImages(pr.LocalImages, assetsDir, assetsDirName, mapping, result)
			}
		}
	}

	htmlContent := pr.HTML
	if len(mapping) > 0 {
		rewritten, err := htmldoc.RewriteImageSources(htmlContent, mapping)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to rewrite image paths: %v", err))
		} else {
			htmlContent = rewritten
		}
	}

	css, themeWarning := r.resolveThemeCSS(opts.Theme)
	if themeWarning != "" {
		result.Warnings = append(result.Warnings, themeWarning)
	}

	title := opts.Title
	if title == "" {
		title = baseName
	}
	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}

	result.HTML = fmt.Sprintf(htmlTemplate, lang, html.EscapeString(title), css, htmlContent)

	outputFile := filepath.Join(outputDir, baseName+".html")
	if err := os.WriteFile(outputFile, []byte(result.HTML), filePermissions); err != nil {
		// Already-copied assets are kept.
		result.Success = false
		result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to write output file: %v", err))
	} else {
		result.OutputFile = outputFile
	}

	result.Warnings = mergeWarnings(pr.Warnings, result.Warnings)
	return result
}

// isolateImages copies existing local images into the asset directory and
// synthesizes placeholders for missing ones, in original document order.
// The used-filename table is scoped to this render call; it is the sole
// source of collision-avoidance decisions.
func (r *Renderer) isolateImages(images []ImageInfo, assetsDir, assetsDirName string, mapping map[string]string, result *RenderResult) {
	usedNames := map[string]int{}

	for _, img := range images {
		var newPath string
		if img.Exists && img.ResolvedPath != "" {
			newPath = r.copyImage(img.ResolvedPath, assetsDir, assetsDirName, usedNames, result)
		} else {
			newPath = r.generatePlaceholder(img, assetsDir, assetsDirName, usedNames, result)
		}
		if newPath != "" {
			mapping[img.OriginalSrc] = newPath
		}
	}
}

// copyImage copies one image into the asset directory under a unique name.
// Returns the new relative path, or empty on failure.
func (r *Renderer) copyImage(sourcePath, assetsDir, assetsDirName string, usedNames map[string]int, result *RenderResult) string {
	filename := filepath.Base(sourcePath)
	targetFilename := uniqueFilename(filename, sourcePath, usedNames)
	targetPath := filepath.Join(assetsDir, targetFilename)

	if err := fileutil.CopyFile(sourcePath, targetPath); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to copy image %s: %v", sourcePath, err))
		return ""
	}

	result.CopiedAssets = append(result.CopiedAssets, targetPath)
	return "./" + assetsDirName + "/" + targetFilename
}

// generatePlaceholder writes a placeholder PNG for a missing local image.
// Returns the new relative path, or empty on failure.
func (r *Renderer) generatePlaceholder(img ImageInfo, assetsDir, assetsDirName string, usedNames map[string]int, result *RenderResult) string {
	stem := placeholderStem(img.OriginalSrc)
	placeholderName := "placeholder_" + stem + ".png"
	targetFilename := uniqueFilename(placeholderName, "", usedNames)
	targetPath := filepath.Join(assetsDir, targetFilename)

	if err := imagegen.WritePNG(targetPath, imagegen.DefaultCaption); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to generate placeholder: %v", err))
		return ""
	}

	result.CopiedAssets = append(result.CopiedAssets, targetPath)
	return "./" + assetsDirName + "/" + targetFilename
}

// inlineImages maps local images to base64 data: URIs for standalone
// output. Missing images inline a generated placeholder PNG.
func (r *Renderer) inlineImages(images []ImageInfo, mapping map[string]string, result *RenderResult) {
	for _, img := range images {
		uri, err := inlineImageURI(img)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to inline image %s: %v", img.OriginalSrc, err))
			continue
		}
		mapping[img.OriginalSrc] = uri
	}
}

// inlineImageURI encodes one local image as a data: URI.
func inlineImageURI(img ImageInfo) (string, error) {
	if img.Exists && img.ResolvedPath != "" {
		data, err := os.ReadFile(img.ResolvedPath) // #nosec G304 -- resolved by the parser
		if err != nil {
			return "", err
		}
		return "data:" + mimeTypeFor(img.ResolvedPath) + ";base64," +
			base64.StdEncoding.EncodeToString(data), nil
	}

	data, err := imagegen.EncodePNG(imagegen.DefaultCaption)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// mimeTypeFor guesses a MIME type from the file extension.
func mimeTypeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// resolveThemeCSS loads the named theme, falling back to the default
// stylesheet with a warning when the theme cannot be found.
func (r *Renderer) resolveThemeCSS(name string) (css, warning string) {
	if name == "" {
		return assets.DefaultCSS, ""
	}

	css, err := r.themes.LoadTheme(name)
	if err != nil {
		return assets.DefaultCSS, fmt.Sprintf("Theme not found: %s, using default", name)
	}
	return css, ""
}

// uniqueFilename returns filename unchanged on first use and a suffixed
// variant on later occurrences within one render call.
//
// Copied files get the first 8 hex characters of an md5 content hash so
// repeated runs over unchanged sources produce identical names; the hash
// falls back to the path string if the file becomes unreadable
// mid-operation. Placeholders (no source bytes) get a 4-digit occurrence
// counter instead.
func uniqueFilename(filename, sourcePath string, usedNames map[string]int) string {
	if _, taken := usedNames[filename]; !taken {
		usedNames[filename] = 1
		return filename
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	var suffix string
	if sourcePath != "" {
		suffix = contentHashSuffix(sourcePath)
	} else {
		suffix = fmt.Sprintf("%04d", usedNames[filename])
	}

	usedNames[filename]++
	return stem + "_" + suffix + ext
}

// contentHashSuffix returns the first 8 hex chars of the md5 hash of the
// file's bytes, hashing the path string instead if the file is unreadable.
func contentHashSuffix(path string) string {
	data, err := os.ReadFile(path) // #nosec G304 -- resolved by the parser
	if err != nil {
		data = []byte(path)
	}
	sum := md5.Sum(data) // #nosec G401 -- naming determinism, not security
	return hex.EncodeToString(sum[:])[:8]
}

// placeholderStem derives the placeholder name stem from the original src.
func placeholderStem(originalSrc string) string {
	stem := fileutil.Stem(filepath.FromSlash(originalSrc))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "missing"
	}
	return stem
}

// mergeWarnings prepends parse warnings to render warnings.
func mergeWarnings(parseWarnings, renderWarnings []string) []string {
	if len(parseWarnings) == 0 {
		return renderWarnings
	}
	merged := make([]string, 0, len(parseWarnings)+len(renderWarnings))
	merged = append(merged, parseWarnings...)
	merged = append(merged, renderWarnings...)
	return merged
}
