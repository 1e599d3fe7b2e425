package epubkit

import (
	"archive/zip"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// mimetypeName is the name of the entry that must open every ePub archive.
	mimetypeName = "mimetype"

	// expectedMimetype is the required content of the mimetype entry.
	expectedMimetype = "application/epub+zip"
)

// Extract expands the archive at archivePath into dir, creating dir and its
// parents when missing, then locates the package document through
// META-INF/container.xml.
//
// Existing files in dir are overwritten when an entry has the same name and
// left alone otherwise, unless Options.RequireEmptyTarget is set. Entry names
// that would land outside dir are rejected before anything is written.
func (w *Workspace) Extract(archivePath, dir string) (ExtractResult, error) {
	f, err := w.fs.Open(archivePath)
	if err != nil {
		return ExtractResult{}, fmt.Errorf("epubkit: open %s: %w: %w", archivePath, ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ExtractResult{}, fmt.Errorf("epubkit: stat %s: %w: %w", archivePath, ErrIO, err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return ExtractResult{}, fmt.Errorf("epubkit: read archive %s: %w: %w", archivePath, ErrIO, err)
	}

	for _, zf := range zr.File {
		if !isSafePath(zf.Name) {
			return ExtractResult{}, fmt.Errorf("epubkit: unsafe zip entry path %q: %w", zf.Name, ErrFormat)
		}
	}

	warnings := w.checkMimetype(zr)
	fontObfuscation, err := checkDRM(zr, w.opts.maxEntrySize)
	if err != nil {
		return ExtractResult{}, err
	}
	if fontObfuscation {
		warnings = append(warnings, "font obfuscation detected; obfuscated fonts may not render correctly")
	}

	if err := w.prepareTarget(dir); err != nil {
		return ExtractResult{}, err
	}
	for _, zf := range zr.File {
		if err := w.expandEntry(zf, dir); err != nil {
			return ExtractResult{}, err
		}
	}

	opfPath, err := w.readContainer(dir)
	if err != nil {
		return ExtractResult{}, err
	}

	for _, warning := range warnings {
		w.logger.Warn(warning, "archive", archivePath)
	}
	w.logger.Info("extracted archive", "archive", archivePath, "dir", dir, "entries", len(zr.File), "opf", opfPath)

	return ExtractResult{
		Dir:         dir,
		OPFPath:     opfPath,
		OPFFullPath: filepath.Join(dir, filepath.FromSlash(opfPath)),
		Warnings:    warnings,
	}, nil
}

// checkMimetype reports deviations from the mimetype-first convention.
// They are warnings only; plenty of readable books get this wrong.
func (w *Workspace) checkMimetype(zr *zip.Reader) []string {
	if len(zr.File) == 0 {
		return []string{"empty ZIP archive; mimetype entry missing"}
	}

	first := zr.File[0]
	if first.Name != mimetypeName {
		return []string{`first ZIP entry is not "mimetype"`}
	}

	data, err := readZipFile(first, w.opts.maxEntrySize)
	if err != nil {
		return []string{fmt.Sprintf("cannot read mimetype entry: %v", err)}
	}
	if got := strings.TrimSpace(string(data)); got != expectedMimetype {
		return []string{fmt.Sprintf("unexpected mimetype: %q", got)}
	}
	return nil
}

func (w *Workspace) prepareTarget(dir string) error {
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("epubkit: create %s: %w: %w", dir, ErrIO, err)
	}
	if !w.opts.requireEmptyTarget {
		return nil
	}
	empty, err := afero.IsEmpty(w.fs, dir)
	if err != nil {
		return fmt.Errorf("epubkit: inspect %s: %w: %w", dir, ErrIO, err)
	}
	if !empty {
		return fmt.Errorf("epubkit: target directory %s is not empty: %w", dir, ErrIO)
	}
	return nil
}

// expandEntry writes a single archive entry below dir.
func (w *Workspace) expandEntry(zf *zip.File, dir string) error {
	name := path.Clean(strings.ReplaceAll(zf.Name, `\`, "/"))
	if name == "." {
		return nil
	}
	target := filepath.Join(dir, filepath.FromSlash(name))

	if zf.FileInfo().IsDir() || strings.HasSuffix(zf.Name, "/") {
		if err := w.fs.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("epubkit: create %s: %w: %w", target, ErrIO, err)
		}
		return nil
	}

	if err := w.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("epubkit: create %s: %w: %w", filepath.Dir(target), ErrIO, err)
	}
	out, err := w.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("epubkit: create %s: %w: %w", target, ErrIO, err)
	}
	if err := copyZipFile(out, zf, w.opts.maxEntrySize); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("epubkit: close %s: %w: %w", target, ErrIO, err)
	}
	return nil
}
