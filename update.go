package epubkit

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

// XML namespaces of the vocabularies the package document uses.
const (
	nsOPF = "http://www.idpf.org/2007/opf"
	nsDC  = "http://purl.org/dc/elements/1.1/"
)

// UpdateMetadata rewrites the language and title of the package document at
// opfFullPath in place and reports whether the file was written.
//
// The language code is written exactly as given after trimming surrounding
// whitespace. A code that is not a well-formed BCP 47 tag is still written but
// logged as a warning. The title suffix is
// appended only when the current title does not already contain it, so
// repeating an update is harmless. Missing metadata, dc:language or dc:title
// elements are skipped without error. The document is written back only when
// at least one field changed, so a failed parse never leaves a half-edited
// file behind.
func (w *Workspace) UpdateMetadata(opfFullPath string, u MetadataUpdate) (bool, error) {
	lang := strings.TrimSpace(u.Language)
	if lang != "" {
		if _, err := language.Raw.Parse(lang); err != nil {
			w.logger.Warn("language code is not a BCP 47 tag", "lang", lang, "error", err)
		}
	}
	suffix := strings.TrimSpace(u.TitleSuffix)
	if lang == "" && suffix == "" {
		return false, nil
	}

	info, err := w.fs.Stat(opfFullPath)
	if err != nil {
		return false, fmt.Errorf("epubkit: stat %s: %w: %w", opfFullPath, ErrIO, err)
	}
	data, err := afero.ReadFile(w.fs, opfFullPath)
	if err != nil {
		return false, fmt.Errorf("epubkit: read %s: %w: %w", opfFullPath, ErrIO, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(preprocessHTMLEntities(stripBOM(data))); err != nil {
		return false, fmt.Errorf("epubkit: parse OPF: %w: %w", ErrParse, err)
	}
	root := doc.Root()
	if root == nil {
		return false, fmt.Errorf("epubkit: parse OPF: no root element: %w", ErrParse)
	}

	metadata := findDescendant(root, "metadata", nsOPF, "")
	if metadata == nil {
		w.logger.Debug("package document has no metadata element", "opf", opfFullPath)
		return false, nil
	}

	changed := false
	if lang != "" {
		if el := findDescendant(metadata, "language", nsDC); el != nil && el.Text() != lang {
			el.SetText(lang)
			changed = true
		}
	}
	if suffix != "" {
		if el := findDescendant(metadata, "title", nsDC); el != nil {
			title := el.Text()
			if title != "" && !strings.Contains(title, suffix) {
				el.SetText(title + " " + suffix)
				changed = true
			}
		}
	}
	if !changed {
		w.logger.Debug("metadata already up to date", "opf", opfFullPath)
		return false, nil
	}

	ensureXMLDeclaration(doc)
	out, err := doc.WriteToBytes()
	if err != nil {
		return false, fmt.Errorf("epubkit: serialise OPF: %w: %w", ErrIO, err)
	}
	if err := afero.WriteFile(w.fs, opfFullPath, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("epubkit: write %s: %w: %w", opfFullPath, ErrIO, err)
	}

	w.logger.Info("updated metadata", "opf", opfFullPath, "lang", lang, "title_suffix", suffix)
	return true, nil
}

// findDescendant returns the first element below e, in document order, whose
// local name is tag and whose namespace URI is one of spaces.
func findDescendant(e *etree.Element, tag string, spaces ...string) *etree.Element {
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			uri := child.NamespaceURI()
			for _, space := range spaces {
				if uri == space {
					return child
				}
			}
		}
		if found := findDescendant(child, tag, spaces...); found != nil {
			return found
		}
	}
	return nil
}

// ensureXMLDeclaration puts an XML declaration at the top of doc when the
// source had none.
func ensureXMLDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	decl := doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.RemoveChild(decl)
	doc.InsertChildAt(0, decl)
	doc.InsertChildAt(1, etree.NewCharData("\n"))
}
