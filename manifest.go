package epubkit

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// contentMediaTypes are the manifest media types treated as translatable text.
var contentMediaTypes = map[string]bool{
	"application/xhtml+xml": true,
	"text/html":             true,
}

// ContentEntries lists the text content documents declared by the package
// document at opfPath (relative to dir, as returned by Extract).
//
// Entries keep manifest order. Items with another media type, or whose file
// is missing, is not a regular file, or resolves outside dir, are skipped
// silently. A package document without a manifest yields an empty slice.
func (w *Workspace) ContentEntries(dir, opfPath string) ([]ContentEntry, error) {
	opfPath = filepath.ToSlash(opfPath)
	pkg, err := w.readOPF(filepath.Join(dir, filepath.FromSlash(opfPath)))
	if err != nil {
		return nil, err
	}

	entries := make([]ContentEntry, 0, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		if !contentMediaTypes[item.MediaType] {
			continue
		}
		rel := resolveRelativePath(opfPath, item.Href)
		if rel == "" {
			continue
		}
		full := filepath.Join(dir, filepath.FromSlash(rel))
		info, err := w.fs.Stat(full)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, ContentEntry{
			ID:        item.ID,
			Href:      item.Href,
			Path:      full,
			MediaType: item.MediaType,
		})
	}

	w.logger.Debug("read manifest", "opf", opfPath, "items", len(pkg.Manifest.Items), "content", len(entries))
	return entries, nil
}

// ContentFiles returns the paths of the content documents, in manifest order.
func (w *Workspace) ContentFiles(dir, opfPath string) ([]string, error) {
	entries, err := w.ContentEntries(dir, opfPath)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}

// ListContent extracts archivePath into a scratch directory, lists its
// content documents and removes the scratch directory again, whether or not
// listing succeeded. When inspect is set every entry gets its Info filled in
// before the files disappear.
//
// The returned paths point into the removed scratch directory and are only
// meaningful as identifiers.
func (w *Workspace) ListContent(archivePath string, inspect bool) (entries []ContentEntry, err error) {
	scratch, err := w.tempDir("epubkit-list-")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := w.fs.RemoveAll(scratch); rmErr != nil {
			w.logger.Warn("failed to remove scratch directory", "dir", scratch, "error", rmErr)
		}
	}()

	res, err := w.Extract(archivePath, scratch)
	if err != nil {
		return nil, err
	}
	entries, err = w.ContentEntries(res.Dir, res.OPFPath)
	if err != nil {
		return nil, err
	}

	if inspect {
		for i := range entries {
			info, err := w.Inspect(entries[i])
			if err != nil {
				return nil, err
			}
			entries[i].Info = &info
		}
	}
	return entries, nil
}

func (w *Workspace) tempDir(prefix string) (string, error) {
	dir, err := afero.TempDir(w.fs, "", prefix)
	if err != nil {
		return "", fmt.Errorf("epubkit: create scratch directory: %w: %w", ErrIO, err)
	}
	return dir, nil
}
