package md2html

// ExportMode controls whether and how rendered output is archived.
type ExportMode string

// Export modes. Exactly one applies per conversion.
const (
	// ModeDefault writes the HTML file plus an assets_<basename> folder.
	ModeDefault ExportMode = "default"

	// ModeIndividualZip archives each document into its own ZIP right
	// after rendering.
	ModeIndividualZip ExportMode = "zip"

	// ModeBatchZip defers archiving: all successfully rendered documents
	// of a batch are merged into a single ZIP at the end.
	ModeBatchZip ExportMode = "batch"

	// ModeStandalone produces a single self-contained HTML file with
	// local images inlined as data: URIs. No asset folder, no archive.
	ModeStandalone ExportMode = "standalone"
)

// Valid reports whether m is one of the defined export modes.
func (m ExportMode) Valid() bool {
	switch m {
	case ModeDefault, ModeIndividualZip, ModeBatchZip, ModeStandalone:
		return true
	}
	return false
}

// ImageInfo describes one <img> reference found in rendered HTML.
// Immutable after creation.
type ImageInfo struct {
	// OriginalSrc is the src attribute exactly as it appears in the HTML.
	OriginalSrc string

	// ResolvedPath is the local filesystem path the reference resolves to.
	// Set only for local references that exist on disk or were already
	// absolute; remote references never carry a resolved path.
	ResolvedPath string

	// IsLocal is true when the reference is a filesystem path rather than
	// an http, https, or data URL.
	IsLocal bool

	// Exists is true when ResolvedPath names a regular file on disk.
	// Always false for remote references; no network check is performed.
	Exists bool

	// AltText is the alt attribute of the image tag.
	AltText string
}

// ParseResult holds the outcome of converting Markdown to HTML.
type ParseResult struct {
	// HTML is the Goldmark output fragment. Empty on parse failure;
	// callers treat empty HTML as a hard failure.
	HTML string

	// Images lists every <img> found, in document order.
	Images []ImageInfo

	// LocalImages is the order-preserving subset of Images with IsLocal set.
	LocalImages []ImageInfo

	// Warnings collects non-fatal problems (parse errors, missing images).
	Warnings []string

	// SourceFile is the Markdown file the content came from, if any.
	// Used to resolve relative image paths.
	SourceFile string
}

// RenderResult holds the outcome of rendering a ParseResult to disk.
type RenderResult struct {
	// HTML is the complete rendered document.
	HTML string

	// OutputFile is the written HTML file path, empty if the write failed.
	OutputFile string

	// AssetsDir is the per-document asset directory. Set if and only if
	// the source document referenced at least one local image and the
	// render was not standalone.
	AssetsDir string

	// CopiedAssets lists files written into AssetsDir (copies and
	// generated placeholders).
	CopiedAssets []string

	// Warnings holds parse warnings followed by render warnings.
	Warnings []string

	// Success is false only when the HTML file could not be written.
	Success bool
}

// PackResult holds the outcome of a ZIP packing operation.
type PackResult struct {
	// ZipFile is the created archive path, empty on failure.
	ZipFile string

	// FilesPacked lists archive entry names in insertion order.
	FilesPacked []string

	Success bool
	Error   string
}

// BatchItem pairs a rendered HTML file with its optional asset directory
// for batch archiving. AssetsDir may be empty.
type BatchItem struct {
	HTMLFile  string
	AssetsDir string
}

// ConversionResult aggregates one document's conversion outcome.
type ConversionResult struct {
	InputFile  string
	OutputFile string
	AssetsDir  string
	ZipFile    string
	Success    bool
	Warnings   []string
	Error      string
}

// BatchResult aggregates a multi-document conversion.
type BatchResult struct {
	Results    []ConversionResult
	Total      int
	Successful int
	Failed     int

	// BatchZip is the merged archive path when batch-zip mode was used.
	BatchZip string
}

// ProgressFunc receives progress updates during batch conversion.
// It is invoked synchronously on the conversion goroutine, once per item
// in strict input order, and must not block indefinitely.
type ProgressFunc func(current, total int, message string)
