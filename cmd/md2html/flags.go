package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// themeFlags holds theme selection flags.
type themeFlags struct {
	name    string
	userDir string
}

// documentFlags holds per-document HTML flags.
type documentFlags struct {
	title string
	lang  string
}

// exportFlags holds archiving flags.
type exportFlags struct {
	mode         string
	cleanup      bool
	batchZipName string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	recursive bool
	theme     themeFlags
	document  documentFlags
	export    exportFlags
}

// themesListFlags holds flags for the themes command.
type themesListFlags struct {
	common  commonFlags
	userDir string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file detail")
}

// addThemeFlags adds theme flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVarP(&f.name, "theme", "t", "", "CSS theme name")
	fs.StringVar(&f.userDir, "themes-dir", "", "directory of user theme files")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = file basename)")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute (\"\" = en)")
}

// addExportFlags adds export flags to a FlagSet.
func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.StringVarP(&f.mode, "mode", "m", "", "export mode: default, zip, batch, standalone")
	fs.BoolVar(&f.cleanup, "cleanup", false, "remove loose files after archiving")
	fs.StringVar(&f.batchZipName, "batch-name", "", "batch archive filename")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addDocumentFlags(fs, &f.document)
	addExportFlags(fs, &f.export)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string) (*themesListFlags, []string, error) {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	f := &themesListFlags{}

	fs.StringVar(&f.userDir, "themes-dir", "", "directory of user theme files")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printThemesUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
