// Package epubkit unpacks, inspects, edits and repacks ePub archives.
//
// All operations run on a [Workspace], an explicit handle over an
// [afero.Fs]. Use [NewOS] for the real filesystem and [New] with an
// in-memory filesystem in tests.
//
// # Extracting
//
// [Workspace.Extract] expands an archive into a working directory and locates
// the package document through META-INF/container.xml:
//
//	ws := epubkit.NewOS()
//	res, err := ws.Extract("book.epub", "work")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OPFPath) // e.g. OEBPS/content.opf
//
// # Content documents
//
// [Workspace.ContentEntries] lists manifest items whose media type is
// application/xhtml+xml or text/html and whose file exists. Other items are
// skipped silently. [Workspace.ListContent] does the same straight from an
// archive using a scratch directory that is always removed afterwards.
//
// # Metadata
//
// [Workspace.UpdateMetadata] replaces dc:language and appends a suffix to
// dc:title. Applying the same suffix twice has no further effect.
//
// # Packing
//
// [Workspace.Pack] writes a directory tree back into an archive with a
// stored "mimetype" entry first and every other file deflated.
//
// # Error Handling
//
// Failures wrap one of the package sentinels; test them with errors.Is:
//   - [ErrFormat]: container descriptor missing or empty, unsafe entry names
//   - [ErrParse]: malformed XML
//   - [ErrIO]: unreadable archive, missing source directory, unwritable output
//   - [ErrDRMProtected]: the archive is DRM encrypted
package epubkit
