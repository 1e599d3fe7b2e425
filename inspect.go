package epubkit

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/afero"
)

// Inspect reads the content document behind entry and summarises it.
func (w *Workspace) Inspect(entry ContentEntry) (ContentInfo, error) {
	data, err := afero.ReadFile(w.fs, entry.Path)
	if err != nil {
		return ContentInfo{}, fmt.Errorf("epubkit: read %s: %w: %w", entry.Path, ErrIO, err)
	}
	info, err := inspectContent(stripBOM(data))
	if err != nil {
		return ContentInfo{}, fmt.Errorf("epubkit: inspect %s: %w", entry.Href, err)
	}
	return info, nil
}

func inspectContent(data []byte) (ContentInfo, error) {
	text, err := extractText(data)
	if err != nil {
		return ContentInfo{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ContentInfo{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	title := strings.Join(strings.Fields(doc.Find("head title").First().Text()), " ")
	if title == "" {
		title = strings.Join(strings.Fields(doc.Find("h1, h2, h3").First().Text()), " ")
	}

	return ContentInfo{
		Title:      title,
		TextLength: utf8.RuneCountInString(text),
		IsLicense:  isGutenbergLicense(text),
	}, nil
}
