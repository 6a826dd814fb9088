package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to styled HTML")
	fmt.Fprintln(w, "  themes     List available CSS themes")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file or directory to styled HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>      Output directory (default: next to input)")
	fmt.Fprintln(w, "  -c, --config <name>     Config file name or path")
	fmt.Fprintln(w, "  -r, --recursive         Descend into subdirectories")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>         Document title (\"\" = file basename)")
	fmt.Fprintln(w, "      --lang <s>          html lang attribute (\"\" = en)")
	fmt.Fprintln(w, "  -t, --theme <s>         CSS theme name")
	fmt.Fprintln(w, "      --themes-dir <dir>  Directory of user theme files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "  -m, --mode <s>          default, zip, batch, or standalone")
	fmt.Fprintln(w, "      --cleanup           Remove loose files after archiving")
	fmt.Fprintln(w, "      --batch-name <s>    Batch archive filename")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reporting:")
	fmt.Fprintln(w, "  -q, --quiet             Only show errors")
	fmt.Fprintln(w, "  -v, --verbose           Show per-file warnings")
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available CSS themes (bundled plus user themes).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --themes-dir <dir>  Directory of user theme files")
	fmt.Fprintln(w, "  -c, --config <name>     Config file name or path")
}
