package epubkit

// ExtractResult describes an archive expanded into a working directory.
type ExtractResult struct {
	// Dir is the working directory the archive was expanded into.
	Dir string

	// OPFPath is the package document path exactly as given by the
	// container descriptor (slash-separated, relative to Dir).
	OPFPath string

	// OPFFullPath is OPFPath resolved against Dir.
	OPFFullPath string

	// Warnings lists non-fatal problems noticed while unpacking, such as a
	// misplaced mimetype entry or font obfuscation.
	Warnings []string
}

// ContentEntry is a manifest item holding translatable text content.
// Entries are derived from the package document on every call and are
// never cached.
type ContentEntry struct {
	// ID is the manifest item id.
	ID string

	// Href is the item href as written in the manifest, relative to the
	// package document.
	Href string

	// Path is the resolved location of the file on the workspace filesystem.
	Path string

	// MediaType is either "application/xhtml+xml" or "text/html".
	MediaType string

	// Info is filled in only when content inspection was requested.
	Info *ContentInfo
}

// ContentInfo summarises a content document.
type ContentInfo struct {
	// Title is the document <title>, or the first heading when the title is empty.
	Title string

	// TextLength is the number of characters of visible text.
	TextLength int

	// IsLicense reports whether the document looks like a Project Gutenberg
	// license page.
	IsLicense bool
}

// MetadataUpdate lists the package document fields to rewrite.
// Empty fields are left untouched.
type MetadataUpdate struct {
	// Language replaces the text of the first dc:language element.
	Language string

	// TitleSuffix is appended to the first dc:title, separated by a space,
	// unless the title already contains it.
	TitleSuffix string
}

// Metadata holds the Dublin Core fields read from a package document.
type Metadata struct {
	// Version is the ePub specification version (e.g., "2.0", "3.0").
	Version string

	// Titles contains all dc:title values. The first entry is the primary title.
	Titles []string

	// Authors contains all dc:creator entries with their roles and file-as values.
	Authors []Author

	// Languages contains all dc:language values.
	Languages []string

	// Identifiers contains all dc:identifier entries (ISBN, UUID, URI, etc.).
	Identifiers []Identifier

	Publisher   string
	Date        string
	Description string
}

// Author represents a dc:creator entry.
type Author struct {
	Name   string
	FileAs string
	Role   string
}

// Identifier represents a dc:identifier entry.
type Identifier struct {
	Value  string
	Scheme string
	ID     string
}
