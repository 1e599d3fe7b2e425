package epubkit

import "errors"

// Sentinel errors returned by the epubkit package. Errors are wrapped with
// context, so match them with errors.Is.
var (
	// ErrFormat indicates the archive is structurally invalid: the container
	// descriptor is missing, names no package document, or an entry is unsafe.
	ErrFormat = errors.New("epubkit: invalid ePub structure")

	// ErrParse indicates malformed XML in the container descriptor or
	// package document.
	ErrParse = errors.New("epubkit: malformed XML")

	// ErrIO indicates a filesystem failure: the archive is unreadable, the
	// source directory is absent, or the output path is not writable.
	ErrIO = errors.New("epubkit: I/O failure")

	// ErrDRMProtected indicates the ePub file is protected by DRM
	// (e.g., Adobe ADEPT, Apple FairPlay, Readium LCP) and cannot be unpacked.
	ErrDRMProtected = errors.New("epubkit: file is DRM protected")
)
