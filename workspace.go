package epubkit

import (
	"compress/flate"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// defaultMaxEntrySize is the maximum decompressed size of a single archive
// entry. It guards against zip bombs. Defaults to 256 MB.
const defaultMaxEntrySize int64 = 256 * 1024 * 1024

// options tunes extraction and packing.
type options struct {
	requireEmptyTarget bool
	maxEntrySize       int64
	compressionLevel   int
}

func defaultOptions() options {
	return options{
		maxEntrySize:     defaultMaxEntrySize,
		compressionLevel: flate.DefaultCompression,
	}
}

// Workspace performs archive and package document operations against a
// filesystem. All state lives on the filesystem; a Workspace holds no
// per-book state between calls.
//
// A Workspace is not safe for concurrent use against the same working
// directory.
type Workspace struct {
	fs     afero.Fs
	logger *log.Logger
	opts   options
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *log.Logger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithRequireEmptyTarget makes Extract fail when the target directory already
// has contents. By default entries are merged into it and overwrite files with
// the same name.
func WithRequireEmptyTarget(require bool) Option {
	return func(w *Workspace) {
		w.opts.requireEmptyTarget = require
	}
}

// WithMaxEntrySize caps the decompressed size of each extracted entry. Zero or
// negative keeps the default of 256 MB.
func WithMaxEntrySize(n int64) Option {
	return func(w *Workspace) {
		if n > 0 {
			w.opts.maxEntrySize = n
		}
	}
}

// WithCompressionLevel sets the deflate level used by Pack, from
// flate.HuffmanOnly to flate.BestCompression. Out of range levels keep the
// default.
func WithCompressionLevel(level int) Option {
	return func(w *Workspace) {
		if level >= flate.HuffmanOnly && level <= flate.BestCompression {
			w.opts.compressionLevel = level
		}
	}
}

// New returns a Workspace operating on fsys.
func New(fsys afero.Fs, opts ...Option) *Workspace {
	w := &Workspace{
		fs:     fsys,
		logger: log.New(io.Discard),
		opts:   defaultOptions(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewOS returns a Workspace backed by the operating system filesystem.
func NewOS(opts ...Option) *Workspace {
	return New(afero.NewOsFs(), opts...)
}
