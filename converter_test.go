package md2html

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return c
}

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertFileValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notMarkdown := writeMarkdown(t, dir, "notes.txt", "hello")

	tests := []struct {
		name      string
		input     string
		opts      ConvertOptions
		wantError string
	}{
		{
			name:      "missing file",
			input:     filepath.Join(dir, "absent.md"),
			wantError: "File not found:",
		},
		{
			name:      "wrong extension",
			input:     notMarkdown,
			wantError: "Not a Markdown file:",
		},
		{
			name:      "unknown mode",
			input:     notMarkdown,
			opts:      ConvertOptions{Mode: ExportMode("tarball")},
			wantError: "Unknown export mode: tarball",
		},
	}

	c := newTestConverter(t)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := c.ConvertFile(context.Background(), tt.input, tt.opts)
			if result.Success {
				t.Fatal("ConvertFile() succeeded, want failure")
			}
			if !strings.Contains(result.Error, tt.wantError) {
				t.Errorf("Error = %q, want prefix %q", result.Error, tt.wantError)
			}
		})
	}
}

func TestConvertFileDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "readme.md", "# Title\n\nSome *text*.")
	outDir := t.TempDir()

	result := newTestConverter(t).ConvertFile(context.Background(), input, ConvertOptions{OutputDir: outDir})

	if !result.Success {
		t.Fatalf("ConvertFile() failed: %s", result.Error)
	}
	if result.OutputFile != filepath.Join(outDir, "readme.html") {
		t.Errorf("OutputFile = %q", result.OutputFile)
	}
	if result.ZipFile != "" {
		t.Errorf("ZipFile = %q, want empty in default mode", result.ZipFile)
	}

	data, err := os.ReadFile(result.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<em>text</em>") {
		t.Error("rendered HTML missing converted Markdown")
	}
}

func TestConvertFileOutputNextToInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "local.md", "# Hi")

	result := newTestConverter(t).ConvertFile(context.Background(), input, ConvertOptions{})

	if !result.Success {
		t.Fatalf("ConvertFile() failed: %s", result.Error)
	}
	if result.OutputFile != filepath.Join(dir, "local.html") {
		t.Errorf("OutputFile = %q, want next to input", result.OutputFile)
	}
}

func TestConvertFileMissingImageEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "doc.md", "![pic](./missing.png)")
	outDir := t.TempDir()

	result := newTestConverter(t).ConvertFile(context.Background(), input, ConvertOptions{OutputDir: outDir})

	if !result.Success {
		t.Fatalf("ConvertFile() failed: %s", result.Error)
	}
	if result.AssetsDir == "" {
		t.Fatal("AssetsDir empty, want placeholder assets")
	}
	if _, err := os.Stat(filepath.Join(result.AssetsDir, "placeholder_missing.png")); err != nil {
		t.Errorf("placeholder not written: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if w == "Image not found: ./missing.png" {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want missing-image warning", result.Warnings)
	}
}

func TestConvertFileEmptyMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "empty.md", "")

	result := newTestConverter(t).ConvertFile(context.Background(), input, ConvertOptions{})

	if result.Success {
		t.Fatal("ConvertFile() succeeded for empty input")
	}
	if result.Error != ErrParseFailure.Error() {
		t.Errorf("Error = %q, want %q", result.Error, ErrParseFailure.Error())
	}
}

func TestConvertFileIndividualZip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	input := writeMarkdown(t, dir, "doc.md", "![l](./logo.png)")
	outDir := t.TempDir()

	result := newTestConverter(t).ConvertFile(context.Background(), input, ConvertOptions{
		OutputDir: outDir,
		Mode:      ModeIndividualZip,
	})

	if !result.Success {
		t.Fatalf("ConvertFile() failed: %s", result.Error)
	}
	if result.ZipFile != filepath.Join(outDir, "doc.zip") {
		t.Errorf("ZipFile = %q", result.ZipFile)
	}
	if _, err := os.Stat(result.ZipFile); err != nil {
		t.Errorf("archive not written: %v", err)
	}
	// Without cleanup, the loose HTML and assets survive beside the zip.
	if _, err := os.Stat(result.OutputFile); err != nil {
		t.Errorf("HTML removed without cleanup: %v", err)
	}
}

func TestConvertFileIndividualZipCleanup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	input := writeMarkdown(t, dir, "doc.md", "![l](./logo.png)")
	outDir := t.TempDir()

	result := newTestConverter(t).ConvertFile(context.Background(), input, ConvertOptions{
		OutputDir:       outDir,
		Mode:            ModeIndividualZip,
		CleanupAfterZip: true,
	})

	if !result.Success {
		t.Fatalf("ConvertFile() failed: %s", result.Error)
	}
	if result.OutputFile != "" || result.AssetsDir != "" {
		t.Errorf("OutputFile/AssetsDir = %q/%q, want cleared after cleanup", result.OutputFile, result.AssetsDir)
	}
	if _, err := os.Stat(filepath.Join(outDir, "doc.html")); !os.IsNotExist(err) {
		t.Error("HTML survived cleanup")
	}
	if _, err := os.Stat(result.ZipFile); err != nil {
		t.Errorf("archive missing after cleanup: %v", err)
	}
}

func TestConvertFileCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "doc.md", "# Hi")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestConverter(t).ConvertFile(ctx, input, ConvertOptions{})
	if result.Success {
		t.Fatal("ConvertFile() succeeded on a cancelled context")
	}
}

func TestConvertBatchPartialFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good1 := writeMarkdown(t, dir, "a.md", "# A")
	bad := filepath.Join(dir, "ghost.md")
	good2 := writeMarkdown(t, dir, "b.md", "# B")
	outDir := t.TempDir()

	batch := newTestConverter(t).ConvertBatch(context.Background(), []string{good1, bad, good2}, ConvertOptions{OutputDir: outDir})

	if batch.Total != 3 || batch.Successful != 2 || batch.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", batch.Total, batch.Successful, batch.Failed)
	}
	if len(batch.Results) != 3 {
		t.Fatalf("Results = %d, want one per input", len(batch.Results))
	}
	// Results stay in input order.
	if batch.Results[0].InputFile != good1 || batch.Results[1].InputFile != bad || batch.Results[2].InputFile != good2 {
		t.Error("results out of input order")
	}
	if batch.Results[1].Success || !strings.Contains(batch.Results[1].Error, "File not found") {
		t.Errorf("failed item = %+v", batch.Results[1])
	}
}

func TestConvertBatchZip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{
		writeMarkdown(t, dir, "one.md", "# One"),
		writeMarkdown(t, dir, "two.md", "# Two"),
		writeMarkdown(t, dir, "three.md", "# Three"),
	}
	outDir := t.TempDir()

	batch := newTestConverter(t).ConvertBatch(context.Background(), files, ConvertOptions{
		OutputDir:    outDir,
		Mode:         ModeBatchZip,
		BatchZipName: "all.zip",
	})

	if batch.Successful != 3 {
		t.Fatalf("Successful = %d, want 3", batch.Successful)
	}
	if batch.BatchZip != filepath.Join(outDir, "all.zip") {
		t.Fatalf("BatchZip = %q", batch.BatchZip)
	}

	names := zipEntryNames(t, batch.BatchZip)
	if len(names) != 3 {
		t.Errorf("entries = %v, want the three HTML files", names)
	}
	for _, want := range []string{"one.html", "two.html", "three.html"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("entries missing %q: %v", want, names)
		}
	}

	// No per-item zips in batch mode.
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".zip") && e.Name() != "all.zip" {
			t.Errorf("unexpected per-item archive %s", e.Name())
		}
	}
}

func TestConvertBatchZipCleanup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{writeMarkdown(t, dir, "doc.md", "# Hi")}
	outDir := t.TempDir()

	batch := newTestConverter(t).ConvertBatch(context.Background(), files, ConvertOptions{
		OutputDir:       outDir,
		Mode:            ModeBatchZip,
		BatchZipName:    "out.zip",
		CleanupAfterZip: true,
	})

	if batch.BatchZip == "" {
		t.Fatal("BatchZip empty")
	}
	if _, err := os.Stat(filepath.Join(outDir, "doc.html")); !os.IsNotExist(err) {
		t.Error("loose HTML survived batch cleanup")
	}
}

func TestConvertBatchProgress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{
		writeMarkdown(t, dir, "a.md", "# A"),
		writeMarkdown(t, dir, "b.md", "# B"),
	}

	type call struct {
		current, total int
		message        string
	}
	var calls []call
	c := newTestConverter(t, WithProgressFunc(func(current, total int, message string) {
		calls = append(calls, call{current, total, message})
	}))

	c.ConvertBatch(context.Background(), files, ConvertOptions{OutputDir: t.TempDir()})

	if len(calls) < 3 {
		t.Fatalf("calls = %v, want per-item plus completion", calls)
	}
	if calls[0] != (call{1, 2, "Converting: a.md"}) {
		t.Errorf("calls[0] = %+v", calls[0])
	}
	if calls[1] != (call{2, 2, "Converting: b.md"}) {
		t.Errorf("calls[1] = %+v", calls[1])
	}
	last := calls[len(calls)-1]
	if last != (call{2, 2, "Complete!"}) {
		t.Errorf("last call = %+v", last)
	}
}

func TestConvertBatchPanickingProgress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{writeMarkdown(t, dir, "a.md", "# A")}

	c := newTestConverter(t, WithProgressFunc(func(current, total int, message string) {
		panic("sink exploded")
	}))

	batch := c.ConvertBatch(context.Background(), files, ConvertOptions{OutputDir: t.TempDir()})
	if batch.Successful != 1 {
		t.Errorf("Successful = %d, want conversion to survive the panic", batch.Successful)
	}
}

func TestConvertBatchCancelledMidway(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var files []string
	for i := 0; i < 3; i++ {
		files = append(files, writeMarkdown(t, dir, fmt.Sprintf("f%d.md", i), "# Hi"))
	}

	// Cancel once the second item is announced: the first has already
	// rendered, the second fails its context check, the third is skipped.
	ctx, cancel := context.WithCancel(context.Background())
	c := newTestConverter(t, WithProgressFunc(func(current, total int, message string) {
		if current == 2 && strings.HasPrefix(message, "Converting:") {
			cancel()
		}
	}))

	batch := c.ConvertBatch(ctx, files, ConvertOptions{OutputDir: t.TempDir()})

	if batch.Successful != 1 {
		t.Errorf("Successful = %d, want only the first item", batch.Successful)
	}
	if batch.Failed != 2 {
		t.Errorf("Failed = %d, want remaining items marked failed", batch.Failed)
	}
	if len(batch.Results) != 3 {
		t.Errorf("Results = %d, want every item recorded", len(batch.Results))
	}
}

func TestConvertDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "b.md", "# B")
	writeMarkdown(t, dir, "a.md", "# A")
	writeMarkdown(t, dir, "notes.markdown", "# N")
	writeMarkdown(t, dir, "skip.txt", "nope")
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	writeMarkdown(t, sub, "deep.md", "# D")

	t.Run("flat", func(t *testing.T) {
		t.Parallel()
		batch := newTestConverter(t).ConvertDirectory(context.Background(), dir, ConvertOptions{OutputDir: t.TempDir()})
		if batch.Total != 3 {
			t.Errorf("Total = %d, want the top-level Markdown files only", batch.Total)
		}
	})

	t.Run("recursive", func(t *testing.T) {
		t.Parallel()
		batch := newTestConverter(t).ConvertDirectory(context.Background(), dir, ConvertOptions{
			OutputDir: t.TempDir(),
			Recursive: true,
		})
		if batch.Total != 4 {
			t.Errorf("Total = %d, want nested files included", batch.Total)
		}
	})
}

func TestConvertDirectoryOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "zzz.md", "# Z")
	writeMarkdown(t, dir, "aaa.markdown", "# A")

	var order []string
	c := newTestConverter(t, WithProgressFunc(func(current, total int, message string) {
		if strings.HasPrefix(message, "Converting: ") {
			order = append(order, strings.TrimPrefix(message, "Converting: "))
		}
	}))

	c.ConvertDirectory(context.Background(), dir, ConvertOptions{OutputDir: t.TempDir()})

	// .md files are listed before .markdown files.
	want := []string{"zzz.md", "aaa.markdown"}
	if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
		t.Errorf("conversion order = %v, want %v", order, want)
	}
}

func TestConvertDirectoryEmpty(t *testing.T) {
	t.Parallel()

	batch := newTestConverter(t).ConvertDirectory(context.Background(), t.TempDir(), ConvertOptions{})
	if batch.Total != 0 || len(batch.Results) != 0 {
		t.Errorf("batch = %+v, want empty result", batch)
	}
}

func TestConvertDirectoryMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "absent")
	batch := newTestConverter(t).ConvertDirectory(context.Background(), missing, ConvertOptions{})
	if batch.Total != 0 {
		t.Errorf("Total = %d, want 0 for a missing directory", batch.Total)
	}
}

func TestConverterDefaultTheme(t *testing.T) {
	t.Parallel()

	themesDir := t.TempDir()
	css := "body { --marker: corp; }"
	if err := os.WriteFile(filepath.Join(themesDir, "corp.css"), []byte(css), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "doc.md", "# Hi")

	c := newTestConverter(t, WithDefaultTheme("corp"), WithUserThemesDir(themesDir))
	result := c.ConvertFile(context.Background(), input, ConvertOptions{OutputDir: t.TempDir()})

	if !result.Success {
		t.Fatalf("ConvertFile() failed: %s", result.Error)
	}
	data, err := os.ReadFile(result.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "--marker: corp") {
		t.Error("default theme CSS not applied")
	}
}
