package md2html

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/htmldoc"
)

// Parser converts Markdown content to HTML and builds a structured
// inventory of every image reference with its local/remote classification.
type Parser struct {
	md  goldmark.Markdown
	pre markdownPreprocessor
}

// NewParser creates a Parser with the baseline CommonMark productions plus
// the table and strikethrough extensions and syntax highlighting.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes so themes control colors
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // raw inline HTML passes through unmodified
		),
	)
	return &Parser{md: md, pre: &commonMarkPreprocessor{}}
}

// Parse converts Markdown content to HTML and extracts image information.
// sourceFile may be empty; when set it anchors relative image paths.
//
// A conversion failure yields an empty HTML plus a warning; callers treat
// empty HTML as a hard failure.
func (p *Parser) Parse(content, sourceFile string) *ParseResult {
	result := &ParseResult{SourceFile: sourceFile}

	content = p.pre.PreprocessMarkdown(content)

	var buf bytes.Buffer
	if err := p.md.Convert([]byte(content), &buf); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Markdown parsing error: %v", err))
		return result
	}
	result.HTML = buf.String()

	refs, err := htmldoc.ExtractImages(result.HTML)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Image extraction failed: %v", err))
		return result
	}

	for _, ref := range refs {
		result.Images = append(result.Images, analyzeImageSrc(ref.Src, ref.Alt, sourceFile))
	}

	for _, img := range result.Images {
		if img.IsLocal {
			result.LocalImages = append(result.LocalImages, img)
		}
	}

	for _, img := range result.LocalImages {
		if !img.Exists {
			result.Warnings = append(result.Warnings, "Image not found: "+img.OriginalSrc)
		}
	}

	return result
}

// ParseFile reads and parses a Markdown file. Read failures surface as
// warnings with empty HTML, matching the Parse failure contract.
func (p *Parser) ParseFile(path string) *ParseResult {
	if !fileutil.FileExists(path) {
		return &ParseResult{
			Warnings:   []string{fmt.Sprintf("File not found: %s", path)},
			SourceFile: path,
		}
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided input file
	if err != nil {
		return &ParseResult{
			Warnings:   []string{fmt.Sprintf("Failed to read file: %v", err)},
			SourceFile: path,
		}
	}

	return p.Parse(string(content), path)
}

// UpdateImagePaths rewrites every <img> whose src exactly matches a mapping
// key, leaving all other attributes untouched, and returns the inner body
// content without the wrapper the HTML round trip introduces.
//
// Matching is exact string equality on the original, undecoded src: two
// differently spelled references to the same file are distinct keys.
func (p *Parser) UpdateImagePaths(htmlContent string, mapping map[string]string) (string, error) {
	return htmldoc.RewriteImageSources(htmlContent, mapping)
}

// analyzeImageSrc classifies an image src as local or remote and resolves
// local references against the source file's directory.
func analyzeImageSrc(src, alt, sourceFile string) ImageInfo {
	decoded, err := url.PathUnescape(src)
	if err != nil {
		decoded = src
	}

	if u, err := url.Parse(decoded); err == nil {
		switch u.Scheme {
		case "http", "https", "data":
			// Remote reference: existence is never checked.
			return ImageInfo{OriginalSrc: src, IsLocal: false, Exists: false, AltText: alt}
		}
	}

	localSrc := decoded
	if rest, ok := strings.CutPrefix(localSrc, "file://"); ok {
		localSrc = rest
		// Windows drive URIs arrive as file:///C:/...; drop the extra slash.
		if len(localSrc) > 2 && localSrc[0] == '/' && localSrc[2] == ':' {
			localSrc = localSrc[1:]
		}
	}

	localPath := filepath.FromSlash(localSrc)
	if !filepath.IsAbs(localPath) && sourceFile != "" {
		joined := filepath.Join(filepath.Dir(sourceFile), localPath)
		if abs, err := filepath.Abs(joined); err == nil {
			localPath = abs
		} else {
			localPath = joined
		}
	}

	exists := fileutil.FileExists(localPath)

	resolved := ""
	if exists || filepath.IsAbs(localPath) {
		// A deterministic location for warnings and placeholder naming,
		// even when the file is missing.
		resolved = localPath
	}

	return ImageInfo{
		OriginalSrc:  src,
		ResolvedPath: resolved,
		IsLocal:      true,
		Exists:       exists,
		AltText:      alt,
	}
}
