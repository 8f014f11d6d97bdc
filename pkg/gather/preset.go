// File: pkg/gather/preset.go
package gather

import (
	"errors"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// CollectPreset collects the files under def.Base selected by the preset's include
// patterns, in pattern order then traversal order, minus anything an exclude pattern
// matches. Exclusion wins over inclusion regardless of declaration order.
func (c *Collector) CollectPreset(name string, def PresetDefinition) (Result, error) {
	c.logger.Debug("Starting preset collection",
		zap.String("preset", name),
		zap.Strings("include", def.Include),
		zap.Strings("exclude", def.Exclude))

	if len(def.Include) == 0 {
		return Result{}, &Error{Kind: ErrInvalidPreset, Preset: name, Err: errors.New("at least one include pattern is required")}
	}
	includes, err := compilePatterns(def.Include)
	if err != nil {
		return Result{}, &Error{Kind: ErrInvalidPreset, Preset: name, Err: err}
	}
	excludes, err := compilePatterns(def.Exclude)
	if err != nil {
		return Result{}, &Error{Kind: ErrInvalidPreset, Preset: name, Err: err}
	}

	base, err := c.resolveBase(def.Base)
	if err != nil {
		return Result{}, &Error{Kind: ErrIO, Preset: name, Path: def.Base, Err: err}
	}
	info, err := c.fs.Stat(base)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Result{}, &Error{Kind: ErrNotFound, Preset: name, Path: base}
	case err != nil:
		return Result{}, &Error{Kind: ErrIO, Preset: name, Path: base, Err: err}
	case !info.IsDir:
		return Result{}, &Error{Kind: ErrNotFound, Preset: name, Path: base, Err: errors.New("base is not a directory")}
	}

	files, err := c.walk(base)
	if err != nil {
		return Result{}, err
	}

	seen := make(map[string]bool, len(files))
	var selected []FileEntry
	for _, include := range includes {
		matched := 0
		for _, f := range files {
			if !include.Match(f.RelPath) {
				continue
			}
			matched++
			if seen[f.AbsPath] {
				continue
			}
			seen[f.AbsPath] = true
			selected = append(selected, f)
		}
		if matched == 0 {
			c.logger.Warn("Include pattern matched no files",
				zap.String("preset", name),
				zap.String("pattern", include.String()))
		} else {
			c.logger.Debug("Include pattern matched files",
				zap.String("pattern", include.String()),
				zap.Int("matched", matched))
		}
	}

	kept := selected[:0]
	for _, f := range selected {
		if matchAny(excludes, f.RelPath) {
			c.logger.Debug("Excluding file", zap.String("file", f.RelPath))
			continue
		}
		kept = append(kept, f)
	}

	if len(kept) == 0 {
		return Result{}, &Error{Kind: ErrNoMatches, Preset: name, Patterns: def.Include, Path: base}
	}

	c.logger.Debug("Completed preset collection", zap.String("preset", name), zap.Int("files", len(kept)))
	return Result{Anchor: base, Entries: Promote(dedupe(kept), base)}, nil
}

// resolveBase returns the absolute directory a preset's patterns are relative to.
func (c *Collector) resolveBase(base string) (string, error) {
	switch {
	case base == "":
		base = c.repoRoot
	case !filepath.IsAbs(base):
		base = filepath.Join(c.repoRoot, base)
	}
	return filepath.Abs(base)
}
