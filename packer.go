package md2html

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// batchZipPrefix and batchZipTimeFormat build the default batch archive
// name: Batch_Output_<YYYYMMDD_HHMMSS>.zip.
const (
	batchZipPrefix     = "Batch_Output_"
	batchZipTimeFormat = "20060102_150405"
)

// ZipPacker packages rendered documents into ZIP archives.
//
// Individual archives sit next to their HTML file; batch archives land in
// the packer's output directory.
type ZipPacker struct {
	outputDir string
}

// NewZipPacker creates a ZipPacker rooted at outputDir.
func NewZipPacker(outputDir string) *ZipPacker {
	return &ZipPacker{outputDir: outputDir}
}

// PackIndividual creates <htmlFile-stem>.zip next to the HTML file,
// containing the HTML at archive root and, when assetsDir exists, every
// file beneath it under <assetsDir-name>/<relative-path>.
// A missing HTML file is a hard failure. assetsDir may be empty.
func (z *ZipPacker) PackIndividual(htmlFile, assetsDir string) *PackResult {
	result := &PackResult{Success: true}

	if !fileutil.FileExists(htmlFile) {
		result.Success = false
		result.Error = fmt.Sprintf("HTML file not found: %s", htmlFile)
		return result
	}

	zipPath := filepath.Join(filepath.Dir(htmlFile), fileutil.Stem(htmlFile)+".zip")

	if err := z.writeArchive(zipPath, []BatchItem{{HTMLFile: htmlFile, AssetsDir: assetsDir}}, result, false); err != nil {
		result.Success = false
		result.Error = err.Error()
		return result
	}

	result.ZipFile = zipPath
	return result
}

// PackBatch merges multiple rendered documents into one archive under the
// packer's output directory. Each item contributes its HTML file at archive
// root and its asset tree namespaced by the assets-directory name.
//
// An empty items list is a hard failure. A missing HTML file within a
// non-empty batch is skipped; the batch still succeeds if at least one
// entry packs. zipName may be empty for the timestamped default.
func (z *ZipPacker) PackBatch(items []BatchItem, zipName string) *PackResult {
	result := &PackResult{Success: true}

	if len(items) == 0 {
		result.Success = false
		result.Error = ErrNoItemsToPack.Error()
		return result
	}

	if zipName == "" {
		zipName = batchZipPrefix + time.Now().Format(batchZipTimeFormat) + ".zip"
	}

	if err := os.MkdirAll(z.outputDir, dirPermissions); err != nil {
		result.Success = false
		result.Error = fmt.Sprintf("creating output directory: %v", err)
		return result
	}

	zipPath := filepath.Join(z.outputDir, zipName)

	if err := z.writeArchive(zipPath, items, result, true); err != nil {
		result.Success = false
		result.Error = err.Error()
		return result
	}

	result.ZipFile = zipPath
	return result
}

// CleanupAfterZip deletes the HTML file and recursively removes the asset
// directory. Used only when the caller explicitly opted into
// archive-then-delete-originals behavior; a failure here never invalidates
// a prior successful pack.
func (z *ZipPacker) CleanupAfterZip(htmlFile, assetsDir string) error {
	if fileutil.FileExists(htmlFile) {
		if err := os.Remove(htmlFile); err != nil {
			return fmt.Errorf("removing %s: %w", htmlFile, err)
		}
	}
	if assetsDir != "" && fileutil.DirExists(assetsDir) {
		if err := os.RemoveAll(assetsDir); err != nil {
			return fmt.Errorf("removing %s: %w", assetsDir, err)
		}
	}
	return nil
}

// writeArchive streams items into a new ZIP file at zipPath.
// With skipMissing, absent HTML files are silently dropped; otherwise the
// caller has already verified existence.
func (z *ZipPacker) writeArchive(zipPath string, items []BatchItem, result *PackResult, skipMissing bool) error {
	f, err := os.Create(zipPath) // #nosec G304 -- path derived from caller's output dir
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(f)

	for _, item := range items {
		if !fileutil.FileExists(item.HTMLFile) {
			if skipMissing {
				continue
			}
			// PackIndividual checked existence already; a race here still
			// fails the archive below.
		}

		if err := addFileEntry(zw, item.HTMLFile, filepath.Base(item.HTMLFile), result); err != nil {
			return closeAndFail(zw, f, zipPath, err)
		}

		if item.AssetsDir != "" && fileutil.DirExists(item.AssetsDir) {
			if err := addAssetTree(zw, item.AssetsDir, result); err != nil {
				return closeAndFail(zw, f, zipPath, err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// addAssetTree walks assetsDir and adds every regular file under
// <assetsDir-name>/<relative-path>.
func addAssetTree(zw *zip.Writer, assetsDir string, result *PackResult) error {
	dirName := filepath.Base(assetsDir)

	return filepath.WalkDir(assetsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(assetsDir, path)
		if err != nil {
			return err
		}

		arcname := dirName + "/" + filepath.ToSlash(rel)
		return addFileEntry(zw, path, arcname, result)
	})
}

// addFileEntry copies one file into the archive under arcname.
func addFileEntry(zw *zip.Writer, path, arcname string, result *PackResult) error {
	in, err := os.Open(path) // #nosec G304 -- walked from caller's output dir
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	w, err := zw.Create(arcname)
	if err != nil {
		return fmt.Errorf("adding %s: %w", arcname, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("writing %s: %w", arcname, err)
	}

	result.FilesPacked = append(result.FilesPacked, arcname)
	return nil
}

// closeAndFail tears down a partially written archive.
func closeAndFail(zw *zip.Writer, f *os.File, zipPath string, err error) error {
	_ = zw.Close()
	_ = f.Close()
	_ = os.Remove(zipPath)
	return err
}
