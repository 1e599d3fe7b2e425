package epubkit

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ReadMetadata returns the Dublin Core metadata of the package document at
// opfPath (relative to dir).
func (w *Workspace) ReadMetadata(dir, opfPath string) (Metadata, error) {
	pkg, err := w.readOPF(filepath.Join(dir, filepath.FromSlash(opfPath)))
	if err != nil {
		return Metadata{}, err
	}
	return extractMetadata(pkg), nil
}

// extractMetadata converts the raw OPF metadata into the public Metadata struct.
func extractMetadata(opf *opfPackage) Metadata {
	om := &opf.Metadata
	refines := buildRefinesMap(om.Metas)

	md := Metadata{
		Version:     opf.Version,
		Titles:      extractTitles(om.Titles, refines),
		Authors:     extractAuthors(om.Creators, refines),
		Languages:   nonEmptyValues(om.Languages),
		Publisher:   firstNonEmpty(om.Publishers),
		Date:        firstNonEmpty(om.Dates),
		Description: firstNonEmpty(om.Descriptions),
	}

	for _, id := range om.Identifiers {
		v := strings.TrimSpace(id.Value)
		if v == "" {
			continue
		}
		ident := Identifier{Value: v, Scheme: id.Scheme, ID: id.ID}
		if ident.Scheme == "" && id.ID != "" {
			ident.Scheme, _ = findRefine(refines, id.ID, "identifier-type")
		}
		md.Identifiers = append(md.Identifiers, ident)
	}
	return md
}

func nonEmptyValues(elems []opfDCElement) []string {
	var out []string
	for _, e := range elems {
		if v := strings.TrimSpace(e.Value); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonEmpty(elems []opfDCElement) string {
	for _, e := range elems {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

// buildRefinesMap maps an element id (without "#") to the ePub 3
// <meta refines="#id"> elements that refine it.
func buildRefinesMap(metas []opfMeta) map[string][]opfMeta {
	m := make(map[string][]opfMeta)
	for _, meta := range metas {
		if id, ok := strings.CutPrefix(meta.Refines, "#"); ok && id != "" {
			m[id] = append(m[id], meta)
		}
	}
	return m
}

// findRefine looks up a single refining property value for the given element id.
func findRefine(refines map[string][]opfMeta, id, property string) (string, bool) {
	for _, m := range refines[id] {
		if m.Property != property {
			continue
		}
		if v := strings.TrimSpace(m.Value); v != "" {
			return v, true
		}
	}
	return "", false
}

// extractTitles orders titles by ePub 3 display-seq when present; titles
// without a sequence follow in document order.
func extractTitles(titles []opfDCElement, refines map[string][]opfMeta) []string {
	type titleEntry struct {
		value string
		seq   int
	}

	var entries []titleEntry
	for _, t := range titles {
		v := strings.TrimSpace(t.Value)
		if v == "" {
			continue
		}
		e := titleEntry{value: v}
		if s, ok := findRefine(refines, t.ID, "display-seq"); ok && t.ID != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				e.seq = n
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := entries[i].seq, entries[j].seq
		switch {
		case si == 0:
			return false
		case sj == 0:
			return true
		default:
			return si < sj
		}
	})

	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out
}

// extractAuthors reads dc:creator elements. ePub 2 carries file-as and role
// as attributes; ePub 3 moves them into refining <meta> elements.
func extractAuthors(creators []opfDCElement, refines map[string][]opfMeta) []Author {
	var authors []Author
	for _, c := range creators {
		name := strings.TrimSpace(c.Value)
		if name == "" {
			continue
		}
		a := Author{Name: name, FileAs: c.FileAs, Role: c.Role}
		if c.ID != "" {
			if a.FileAs == "" {
				a.FileAs, _ = findRefine(refines, c.ID, "file-as")
			}
			if a.Role == "" {
				a.Role, _ = findRefine(refines, c.ID, "role")
			}
		}
		authors = append(authors, a)
	}
	return authors
}
