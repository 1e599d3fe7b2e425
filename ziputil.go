package epubkit

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// findFileInsensitive looks up a ZIP entry by path, first trying an exact match,
// then falling back to a case-insensitive comparison.
// Returns nil if no match is found.
func findFileInsensitive(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	lower := strings.ToLower(name)
	for _, f := range zr.File {
		if strings.ToLower(f.Name) == lower {
			return f
		}
	}
	return nil
}

// resolveRelativePath resolves href relative to the directory of basePath.
// Both are archive-internal paths (forward-slash separated). An href that is
// absolute or escapes the archive root resolves to the empty string.
func resolveRelativePath(basePath, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "/") {
		return ""
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	cleaned := path.Clean(path.Join(path.Dir(basePath), href))
	if !isSafePath(cleaned) {
		return ""
	}
	return cleaned
}

// isSafePath checks whether p stays inside the archive root, rejecting
// absolute paths and traversal such as "../../../etc/passwd".
func isSafePath(p string) bool {
	cleaned := path.Clean(strings.ReplaceAll(p, `\`, "/"))
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}

// stripBOM removes a leading UTF-8 BOM (0xEF 0xBB 0xBF) from data, if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// readZipFile reads the full contents of a ZIP entry, refusing entries whose
// decompressed size exceeds limit.
func readZipFile(f *zip.File, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	if err := copyZipFile(&buf, f, limit); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// copyZipFile streams a ZIP entry into dst. The declared size is checked
// first, then the actual decompressed stream is capped at limit+1 bytes so a
// forged header cannot smuggle a larger payload.
func copyZipFile(dst io.Writer, f *zip.File, limit int64) error {
	if !isSafePath(f.Name) {
		return fmt.Errorf("epubkit: unsafe zip entry path %q: %w", f.Name, ErrFormat)
	}
	if f.UncompressedSize64 > uint64(limit) {
		return fmt.Errorf("epubkit: zip entry %s too large: %d bytes (max %d): %w", f.Name, f.UncompressedSize64, limit, ErrFormat)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("epubkit: open zip entry %s: %w: %w", f.Name, ErrIO, err)
	}
	defer rc.Close()

	n, err := io.Copy(dst, io.LimitReader(rc, limit+1))
	if err != nil {
		return fmt.Errorf("epubkit: read zip entry %s: %w: %w", f.Name, ErrIO, err)
	}
	if n > limit {
		return fmt.Errorf("epubkit: zip entry %s decompressed size exceeds limit (%d bytes): %w", f.Name, limit, ErrFormat)
	}
	return nil
}
