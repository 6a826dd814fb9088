package md2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrParseFailure  = errors.New("failed to parse Markdown")
	ErrRenderFailure = errors.New("failed to render HTML")
	ErrNoItemsToPack = errors.New("no items to pack")
)
