// Package md2html converts Markdown documents into styled, portable HTML
// artifacts with isolated image assets and optional ZIP packaging.
//
// # Quick Start
//
// Create a converter and convert a file:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := conv.ConvertFile(ctx, "notes.md", md2html.ConvertOptions{
//	    OutputDir: "out",
//	    Theme:     "github",
//	})
//	if !result.Success {
//	    log.Fatal(result.Error)
//	}
//
// The result records the written HTML file, the asset directory (when the
// document references local images), warnings, and the archive path when an
// archiving export mode was requested.
//
// # Conversion Pipeline
//
// Each document flows through these stages:
//
//  1. Markdown preprocessing (line normalization, ==highlight== syntax)
//  2. Markdown to HTML via Goldmark (tables, strikethrough, syntax highlighting)
//  3. Image resolution: local images are copied into a per-document
//     assets_<basename> directory; missing local images get a generated
//     400x300 placeholder PNG; the HTML is rewritten to the new paths
//  4. Theme CSS inlined into a complete HTML5 document
//  5. Optional ZIP packaging (per document or one archive per batch)
//
// # Export Modes
//
// ModeDefault writes HTML plus an asset folder. ModeIndividualZip archives
// each document separately. ModeBatchZip merges a whole batch into one
// archive built after the last document renders. ModeStandalone inlines
// local images as data: URIs and writes a single self-contained file.
//
// # Batch Conversion
//
// ConvertBatch and ConvertDirectory process inputs strictly in order and
// never abort on individual failures; per-file errors are counted and
// retained in the BatchResult. Progress is reported through an injected
// callback, once per item:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithProgressFunc(func(cur, total int, msg string) {
//	        fmt.Printf("[%d/%d] %s\n", cur, total, msg)
//	    }),
//	)
//
// # Themes
//
// Themes are plain CSS files named <theme>.css. A user themes directory
// (set via WithUserThemesDir) takes priority over the bundled themes; an
// unknown theme name falls back to the built-in default stylesheet with a
// warning rather than failing the conversion.
package md2html
