package main

import "github.com/simp-lee/epubkit"

type extractOutput struct {
	ExtractDir  string   `json:"extract_dir"`
	OPFPath     string   `json:"opf_path"`
	OPFFullPath string   `json:"opf_full_path"`
	Warnings    []string `json:"warnings,omitempty"`
}

type contentEntryOutput struct {
	ID        string             `json:"id"`
	Href      string             `json:"href"`
	Path      string             `json:"path"`
	MediaType string             `json:"media_type"`
	Info      *contentInfoOutput `json:"info,omitempty"`
}

type contentInfoOutput struct {
	Title      string `json:"title,omitempty"`
	TextLength int    `json:"text_length"`
	License    bool   `json:"license"`
}

type metadataOutput struct {
	Version     string             `json:"version"`
	Titles      []string           `json:"titles"`
	Authors     []authorOutput     `json:"authors,omitempty"`
	Languages   []string           `json:"languages"`
	Identifiers []identifierOutput `json:"identifiers,omitempty"`
	Publisher   string             `json:"publisher,omitempty"`
	Date        string             `json:"date,omitempty"`
	Description string             `json:"description,omitempty"`
}

type authorOutput struct {
	Name   string `json:"name"`
	FileAs string `json:"file_as,omitempty"`
	Role   string `json:"role,omitempty"`
}

type identifierOutput struct {
	Value  string `json:"value"`
	Scheme string `json:"scheme,omitempty"`
	ID     string `json:"id,omitempty"`
}

func toContentEntryOutputs(entries []epubkit.ContentEntry) []contentEntryOutput {
	out := make([]contentEntryOutput, 0, len(entries))
	for _, e := range entries {
		item := contentEntryOutput{
			ID:        e.ID,
			Href:      e.Href,
			Path:      e.Path,
			MediaType: e.MediaType,
		}
		if e.Info != nil {
			item.Info = &contentInfoOutput{
				Title:      e.Info.Title,
				TextLength: e.Info.TextLength,
				License:    e.Info.IsLicense,
			}
		}
		out = append(out, item)
	}
	return out
}

func toMetadataOutput(md epubkit.Metadata) metadataOutput {
	out := metadataOutput{
		Version:     md.Version,
		Titles:      append([]string{}, md.Titles...),
		Languages:   append([]string{}, md.Languages...),
		Publisher:   md.Publisher,
		Date:        md.Date,
		Description: md.Description,
	}
	for _, a := range md.Authors {
		out.Authors = append(out.Authors, authorOutput{Name: a.Name, FileAs: a.FileAs, Role: a.Role})
	}
	for _, id := range md.Identifiers {
		out.Identifiers = append(out.Identifiers, identifierOutput{Value: id.Value, Scheme: id.Scheme, ID: id.ID})
	}
	return out
}
