// File: pkg/gather/traversal.go
package gather

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// CollectPath collects root: a single file, or every file below a directory in
// lexicographic depth-first order with noise directories pruned and READMEs promoted.
func (c *Collector) CollectPath(root string) (Result, error) {
	c.logger.Debug("Starting path collection", zap.String("root", root))

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Result{}, IOError(root, err)
	}

	info, err := c.fs.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, &Error{Kind: ErrNotFound, Path: absRoot}
		}
		return Result{}, IOError(absRoot, err)
	}

	if !info.IsDir {
		entry := FileEntry{AbsPath: absRoot, RelPath: filepath.Base(absRoot)}
		anchor := filepath.Dir(absRoot)
		return Result{Anchor: anchor, Entries: Promote([]FileEntry{entry}, anchor)}, nil
	}

	files, err := c.walk(absRoot)
	if err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{}, &Error{Kind: ErrEmptyResult, Path: absRoot}
	}

	c.logger.Debug("Completed path collection", zap.String("root", absRoot), zap.Int("files", len(files)))
	return Result{Anchor: absRoot, Entries: Promote(dedupe(files), absRoot)}, nil
}

// walkItem is a pending node of the traversal stack.
type walkItem struct {
	abs   string
	rel   string
	isDir bool
}

// walk lists every file below root. Children of a directory are visited in name order,
// files emitted and directories descended, using an explicit stack instead of recursion.
// Symlinked directories are descended only when their target is disjoint from every
// tree already being walked, which bounds the walk even when links form cycles.
func (c *Collector) walk(root string) ([]FileEntry, error) {
	rootReal, err := c.fs.RealPath(root)
	if err != nil {
		return nil, IOError(root, err)
	}
	trees := []string{rootReal}

	var files []FileEntry
	stack := []walkItem{{abs: root, isDir: true}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !item.isDir {
			files = append(files, FileEntry{AbsPath: item.abs, RelPath: item.rel})
			continue
		}

		children, err := c.fs.ListDir(item.abs)
		if err != nil {
			return nil, IOError(item.abs, err)
		}

		// Pushed in reverse so the smallest name is popped first.
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			next := walkItem{
				abs:   filepath.Join(item.abs, child.Name),
				rel:   path.Join(item.rel, child.Name),
				isDir: child.IsDir,
			}

			if child.IsSymlink {
				target, ok := c.resolveLink(next.abs, &trees)
				if !ok {
					continue
				}
				next.isDir = target.IsDir
			}

			if next.isDir && IsNoise(child.Name) {
				c.logger.Debug("Skipping noise directory", zap.String("directory", next.rel))
				continue
			}
			stack = append(stack, next)
		}
	}

	return files, nil
}

// resolveLink decides whether a symbolic link is walked. Links to files always are.
// Links to directories are followed only when the target neither lies inside nor
// contains a tree already being walked; the target then becomes a walked tree itself.
func (c *Collector) resolveLink(link string, trees *[]string) (FileInfo, bool) {
	info, err := c.fs.Stat(link)
	if err != nil {
		c.logger.Debug("Skipping broken symlink", zap.String("link", link), zap.Error(err))
		return FileInfo{}, false
	}
	if !info.IsDir {
		return info, true
	}

	target, err := c.fs.RealPath(link)
	if err != nil {
		c.logger.Debug("Skipping unresolvable symlink", zap.String("link", link), zap.Error(err))
		return FileInfo{}, false
	}
	for _, tree := range *trees {
		if within(target, tree) || within(tree, target) {
			c.logger.Debug("Skipping symlink to an already walked directory",
				zap.String("link", link),
				zap.String("target", target))
			return FileInfo{}, false
		}
	}

	*trees = append(*trees, target)
	return info, true
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	if p == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(p, dir)
}
