package epubkit

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// containerXML models the META-INF/container.xml file used to locate the OPF.
type containerXML struct {
	XMLName   xml.Name   `xml:"container"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

// rootFile represents a single <rootfile> element inside container.xml.
type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// containerPath is the well-known location of container.xml in an ePub archive.
const containerPath = "META-INF/container.xml"

// packageMediaType identifies the rootfile that holds the package document.
const packageMediaType = "application/oebps-package+xml"

// readContainer reads the container descriptor under dir and returns the
// package document path it names.
func (w *Workspace) readContainer(dir string) (string, error) {
	name := filepath.Join(dir, filepath.FromSlash(containerPath))
	data, err := afero.ReadFile(w.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("epubkit: %s not found: %w", containerPath, ErrFormat)
		}
		return "", fmt.Errorf("epubkit: read %s: %w: %w", containerPath, ErrIO, err)
	}
	return parseContainerXML(data)
}

// parseContainerXML decodes container.xml and returns the full-path of the
// first rootfile declaring the package media type, falling back to the first
// rootfile with a non-empty full-path.
func parseContainerXML(data []byte) (string, error) {
	var c containerXML
	if err := xml.Unmarshal(stripBOM(data), &c); err != nil {
		return "", fmt.Errorf("epubkit: parse %s: %w: %w", containerPath, ErrParse, err)
	}

	if len(c.RootFiles) == 0 {
		return "", fmt.Errorf("epubkit: %s has no rootfile entries: %w", containerPath, ErrFormat)
	}

	var fallbackPath string
	for _, rf := range c.RootFiles {
		fullPath := strings.TrimSpace(rf.FullPath)
		if fullPath == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rf.MediaType), packageMediaType) {
			return fullPath, nil
		}
		if fallbackPath == "" {
			fallbackPath = fullPath
		}
	}

	if fallbackPath == "" {
		return "", fmt.Errorf("epubkit: %s rootfile has empty full-path: %w", containerPath, ErrFormat)
	}
	return fallbackPath, nil
}
