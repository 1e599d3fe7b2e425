package epubkit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestExtract(t *testing.T) {
	w, fs := newTestWorkspace(t)
	writeTestArchive(t, fs, "in/book.epub", testBookEntries())
	dir := filepath.Join("out", "nested", "book")

	res, err := w.Extract("in/book.epub", dir)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if res.Dir != dir {
		t.Errorf("Dir = %q, want %q", res.Dir, dir)
	}
	if res.OPFPath != "OEBPS/content.opf" {
		t.Errorf("OPFPath = %q, want %q", res.OPFPath, "OEBPS/content.opf")
	}
	if want := filepath.Join(dir, "OEBPS", "content.opf"); res.OPFFullPath != want {
		t.Errorf("OPFFullPath = %q, want %q", res.OPFFullPath, want)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}

	for _, e := range testBookEntries() {
		got := readTestFile(t, fs, filepath.Join(dir, filepath.FromSlash(e.name)))
		if got != e.body {
			t.Errorf("%s = %q, want %q", e.name, got, e.body)
		}
	}
}

func TestExtract_DirectoryEntries(t *testing.T) {
	w, fs := newTestWorkspace(t)
	entries := append(testBookEntries(), zipEntry{name: "OEBPS/Fonts/"})
	writeTestArchive(t, fs, "book.epub", entries)

	if _, err := w.Extract("book.epub", "out"); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	isDir, err := afero.IsDir(fs, filepath.Join("out", "OEBPS", "Fonts"))
	if err != nil || !isDir {
		t.Errorf("OEBPS/Fonts should be a directory (err = %v)", err)
	}
}

func TestExtract_MissingContainer(t *testing.T) {
	w, fs := newTestWorkspace(t)
	writeTestArchive(t, fs, "book.epub", []zipEntry{
		{name: "mimetype", body: expectedMimetype},
		{name: "OEBPS/content.opf", body: testBookOPF},
	})

	_, err := w.Extract("book.epub", "out")
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("error = %v, want wrapped ErrFormat", err)
	}
}

func TestExtract_EmptyArchive(t *testing.T) {
	w, fs := newTestWorkspace(t)
	writeTestArchive(t, fs, "empty.epub", nil)

	_, err := w.Extract("empty.epub", "out")
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("error = %v, want wrapped ErrFormat", err)
	}
}

func TestExtract_NotAnArchive(t *testing.T) {
	w, fs := newTestWorkspace(t)
	if err := afero.WriteFile(fs, "book.epub", []byte("plain text, not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := w.Extract("book.epub", "out"); !errors.Is(err, ErrIO) {
		t.Errorf("error = %v, want wrapped ErrIO", err)
	}
	if _, err := w.Extract("missing.epub", "out"); !errors.Is(err, ErrIO) {
		t.Errorf("missing archive: error = %v, want wrapped ErrIO", err)
	}
}

func TestExtract_RejectsPathTraversal(t *testing.T) {
	w, fs := newTestWorkspace(t)
	entries := append(testBookEntries(), zipEntry{name: "../../evil.sh", body: "rm -rf /"})
	writeTestArchive(t, fs, "book.epub", entries)
	dir := filepath.Join("work", "out")

	_, err := w.Extract("book.epub", dir)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("error = %v, want wrapped ErrFormat", err)
	}
	if exists, _ := afero.Exists(fs, dir); exists {
		t.Error("target directory should not be created for a rejected archive")
	}
	if exists, _ := afero.Exists(fs, "evil.sh"); exists {
		t.Error("traversal entry was written outside the target")
	}
}

func TestExtract_MergesIntoExistingTarget(t *testing.T) {
	w, fs := newTestWorkspace(t)
	writeTestArchive(t, fs, "book.epub", testBookEntries())
	writeTestFiles(t, fs, "out", map[string]string{
		"notes.txt":         "keep me",
		"OEBPS/content.opf": "stale",
	})

	if _, err := w.Extract("book.epub", "out"); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got := readTestFile(t, fs, filepath.Join("out", "notes.txt")); got != "keep me" {
		t.Errorf("notes.txt = %q, want it untouched", got)
	}
	if got := readTestFile(t, fs, filepath.Join("out", "OEBPS", "content.opf")); got != testBookOPF {
		t.Errorf("content.opf was not overwritten: %q", got)
	}
}

func TestExtract_RequireEmptyTarget(t *testing.T) {
	w, fs := newTestWorkspace(t, WithRequireEmptyTarget(true))
	writeTestArchive(t, fs, "book.epub", testBookEntries())
	writeTestFiles(t, fs, "busy", map[string]string{"notes.txt": "x"})

	if _, err := w.Extract("book.epub", "busy"); !errors.Is(err, ErrIO) {
		t.Errorf("non-empty target: error = %v, want wrapped ErrIO", err)
	}
	if err := fs.MkdirAll("fresh", 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Extract("book.epub", "fresh"); err != nil {
		t.Errorf("empty target: Extract() error: %v", err)
	}
}

func TestExtract_EntryTooLarge(t *testing.T) {
	w, fs := newTestWorkspace(t, WithMaxEntrySize(2048))
	entries := append(testBookEntries(), zipEntry{name: "OEBPS/big.txt", body: strings.Repeat("z", 4096)})
	writeTestArchive(t, fs, "book.epub", entries)

	if _, err := w.Extract("book.epub", "out"); !errors.Is(err, ErrFormat) {
		t.Errorf("error = %v, want wrapped ErrFormat", err)
	}
}

func TestExtract_Warnings(t *testing.T) {
	fontEncryption := `<?xml version="1.0" encoding="UTF-8"?>
<encryption xmlns="urn:oasis:names:tc:opendocument:xmlns:container"
            xmlns:enc="http://www.w3.org/2001/04/xmlenc#">
  <enc:EncryptedData>
    <enc:EncryptionMethod Algorithm="http://www.idpf.org/2008/embedding"/>
    <enc:CipherData><enc:CipherReference URI="OEBPS/fonts/a.otf"/></enc:CipherData>
  </enc:EncryptedData>
</encryption>`

	tests := []struct {
		name    string
		entries []zipEntry
		want    string
	}{
		{
			name: "mimetype not first",
			entries: []zipEntry{
				{name: "META-INF/container.xml", body: validContainerXML},
				{name: "mimetype", body: expectedMimetype},
				{name: "OEBPS/content.opf", body: testBookOPF},
			},
			want: `first ZIP entry is not "mimetype"`,
		},
		{
			name: "wrong mimetype",
			entries: []zipEntry{
				{name: "mimetype", body: "application/zip"},
				{name: "META-INF/container.xml", body: validContainerXML},
				{name: "OEBPS/content.opf", body: testBookOPF},
			},
			want: "unexpected mimetype",
		},
		{
			name: "font obfuscation",
			entries: append(testBookEntries(),
				zipEntry{name: "META-INF/encryption.xml", body: fontEncryption}),
			want: "font obfuscation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, fs := newTestWorkspace(t)
			writeTestArchive(t, fs, "book.epub", tt.entries)

			res, err := w.Extract("book.epub", "out")
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], tt.want) {
				t.Errorf("Warnings = %q, want one containing %q", res.Warnings, tt.want)
			}
		})
	}
}

func TestExtract_DRMProtected(t *testing.T) {
	w, fs := newTestWorkspace(t)
	entries := append(testBookEntries(), zipEntry{name: "META-INF/sinf.xml", body: "<sinf/>"})
	writeTestArchive(t, fs, "book.epub", entries)

	_, err := w.Extract("book.epub", "out")
	if !errors.Is(err, ErrDRMProtected) {
		t.Fatalf("error = %v, want ErrDRMProtected", err)
	}
	if exists, _ := afero.Exists(fs, "out"); exists {
		t.Error("nothing should be unpacked from a protected archive")
	}
}
