// Package render turns a collection result into the single text blob that gf copies
// or prints.
package render

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/drengskapur/gatherfiles/pkg/gather"

	"go.uber.org/zap"
)

const (
	headerPrefix = "-------\n# "
	headerSuffix = "\n\n"
)

// Blob is a rendered result.
type Blob struct {
	Text  string // Concatenated file sections.
	Chars int    // Unicode code points in Text.
	Files int    // Number of sections.
}

// Assembler reads the files of a result and stitches them into a Blob.
type Assembler struct {
	fs      gather.FileSystem
	root    string
	workers int
	logger  *zap.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithWorkers bounds the number of files read concurrently. Values below one
// select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(a *Assembler) {
		a.workers = n
	}
}

// WithLogger sets the assembler's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler returns an Assembler reading from fsys (the host filesystem when nil).
// Section headers show paths relative to root.
func NewAssembler(fsys gather.FileSystem, root string, opts ...Option) *Assembler {
	if fsys == nil {
		fsys = gather.OSFileSystem{}
	}
	a := &Assembler{
		fs:     fsys,
		root:   root,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers <= 0 {
		a.workers = runtime.NumCPU()
		a.logger.Debug("Adjusted worker count", zap.Int("workers", a.workers))
	}
	return a
}

// Render reads every entry of result and returns the blob. A failed read aborts the
// whole render.
func (a *Assembler) Render(ctx context.Context, result gather.Result) (Blob, error) {
	contents, err := a.readAll(ctx, result.Entries)
	if err != nil {
		return Blob{}, err
	}

	var b strings.Builder
	for i, entry := range result.Entries {
		writeSection(&b, a.DisplayPath(entry.AbsPath), contents[i])
	}

	text := b.String()
	a.logger.Debug("Rendered blob",
		zap.Int("files", len(result.Entries)),
		zap.Int("bytes", len(text)))
	return Blob{
		Text:  text,
		Chars: utf8.RuneCountInString(text),
		Files: len(result.Entries),
	}, nil
}

// DisplayPath returns path relative to the assembler root in slash form, or path
// itself when it is the root or lies outside it.
func (a *Assembler) DisplayPath(path string) string {
	rel, err := filepath.Rel(a.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func writeSection(b *strings.Builder, display string, contents []byte) {
	b.Grow(len(headerPrefix) + len(display) + len(headerSuffix) + len(contents) + 2)
	b.WriteString(headerPrefix)
	b.WriteString(display)
	b.WriteString(headerSuffix)
	b.Write(contents)
	if len(contents) == 0 || contents[len(contents)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}
