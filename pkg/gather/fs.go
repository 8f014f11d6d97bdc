package gather

import (
	"os"
	"path/filepath"
	"sort"
)

// DirEntry is one child of a listed directory.
type DirEntry struct {
	Name      string
	IsDir     bool // False for symbolic links, whatever they point to.
	IsSymlink bool
}

// FileInfo is the subset of file metadata the collectors need.
type FileInfo struct {
	IsDir bool
	Size  int64
}

// FileSystem is the narrow filesystem surface the collectors and the assembler use.
// Errors for missing paths must satisfy errors.Is(err, fs.ErrNotExist).
type FileSystem interface {
	// ListDir returns the children of path sorted by name.
	ListDir(path string) ([]DirEntry, error)
	// Stat follows symbolic links.
	Stat(path string) (FileInfo, error)
	ReadFile(path string) ([]byte, error)
	// RealPath resolves every symbolic link in path.
	RealPath(path string) (string, error)
}

// OSFileSystem implements FileSystem on the host filesystem.
type OSFileSystem struct{}

func (OSFileSystem) ListDir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		symlink := e.Type()&os.ModeSymlink != 0
		out = append(out, DirEntry{
			Name:      e.Name(),
			IsDir:     e.IsDir() && !symlink,
			IsSymlink: symlink,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (OSFileSystem) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{IsDir: info.IsDir(), Size: info.Size()}, nil
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileSystem) RealPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
