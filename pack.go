package epubkit

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Pack writes every regular file below srcDir into a new archive at output.
//
// A top-level "mimetype" file is written first, stored without compression
// and without extra fields, as the OCF container format requires. All other
// files follow in lexical walk order, deflated, named by their slash-separated
// path relative to srcDir. Directories are not stored as entries.
//
// The archive is assembled in a temporary file beside output and renamed over
// it on success, so a failed Pack never leaves a truncated archive behind.
func (w *Workspace) Pack(srcDir, output string) (err error) {
	info, err := w.fs.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("epubkit: source directory %s: %w: %w", srcDir, ErrIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("epubkit: source %s is not a directory: %w", srcDir, ErrIO)
	}

	tmp, err := afero.TempFile(w.fs, filepath.Dir(output), "."+filepath.Base(output)+".*.tmp")
	if err != nil {
		return fmt.Errorf("epubkit: create %s: %w: %w", output, ErrIO, err)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			tmp.Close()
		}
		if rmErr := w.fs.Remove(tmpName); rmErr != nil {
			w.logger.Warn("failed to remove partial archive", "path", tmpName, "error", rmErr)
		}
	}()

	zw := zip.NewWriter(tmp)
	level := w.opts.compressionLevel
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	entries := 0
	mimetypePath := filepath.Join(srcDir, mimetypeName)
	if fi, statErr := w.fs.Stat(mimetypePath); statErr == nil && fi.Mode().IsRegular() {
		if err = w.writeMimetype(zw, mimetypePath); err != nil {
			return err
		}
		entries++
	}

	err = afero.Walk(w.fs, srcDir, func(p string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("epubkit: walk %s: %w: %w", p, ErrIO, walkErr)
		}
		if !fi.Mode().IsRegular() || filepath.Clean(p) == filepath.Clean(tmpName) {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return fmt.Errorf("epubkit: relative path of %s: %w: %w", p, ErrIO, err)
		}
		name := filepath.ToSlash(rel)
		if name == mimetypeName {
			return nil
		}
		entries++
		return w.writeEntry(zw, p, name, fi)
	})
	if err != nil {
		return err
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("epubkit: finish archive %s: %w: %w", output, ErrIO, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("epubkit: close %s: %w: %w", tmpName, ErrIO, err)
	}
	if err = w.fs.Rename(tmpName, output); err != nil {
		return fmt.Errorf("epubkit: rename %s to %s: %w: %w", tmpName, output, ErrIO, err)
	}

	w.logger.Info("created epub", "path", output, "entries", entries)
	return nil
}

// writeMimetype stores the mimetype file with a bare header: no compression,
// no modification time and therefore no extended timestamp extra field.
func (w *Workspace) writeMimetype(zw *zip.Writer, src string) error {
	header := &zip.FileHeader{
		Name:   mimetypeName,
		Method: zip.Store,
	}
	header.SetMode(0o644)
	fw, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("epubkit: add %s: %w: %w", mimetypeName, ErrIO, err)
	}
	return w.copyInto(fw, src)
}

func (w *Workspace) writeEntry(zw *zip.Writer, src, name string, fi os.FileInfo) error {
	header, err := zip.FileInfoHeader(fi)
	if err != nil {
		return fmt.Errorf("epubkit: header for %s: %w: %w", src, ErrIO, err)
	}
	header.Name = name
	header.Method = zip.Deflate
	fw, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("epubkit: add %s: %w: %w", name, ErrIO, err)
	}
	return w.copyInto(fw, src)
}

func (w *Workspace) copyInto(dst io.Writer, src string) error {
	f, err := w.fs.Open(src)
	if err != nil {
		return fmt.Errorf("epubkit: open %s: %w: %w", src, ErrIO, err)
	}
	defer f.Close()
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("epubkit: copy %s: %w: %w", src, ErrIO, err)
	}
	return nil
}
