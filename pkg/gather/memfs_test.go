package gather

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// memNode is a file, directory, or symbolic link in a memFS.
type memNode struct {
	dir  bool
	data []byte
	link string
}

// memFS is an in-memory FileSystem keyed by clean absolute slash paths.
type memFS struct {
	nodes   map[string]*memNode
	listErr map[string]error // Injected ListDir failures by resolved path.
}

// newMemFS builds a filesystem holding files (path -> content); parents are created.
func newMemFS(files map[string]string) *memFS {
	m := &memFS{
		nodes:   map[string]*memNode{"/": {dir: true}},
		listErr: map[string]error{},
	}
	for p, content := range files {
		m.write(p, content)
	}
	return m
}

func (m *memFS) mkdirAll(p string) {
	p = path.Clean(p)
	for cur := p; cur != "/"; cur = path.Dir(cur) {
		if _, ok := m.nodes[cur]; ok {
			break
		}
		m.nodes[cur] = &memNode{dir: true}
	}
}

func (m *memFS) write(p, content string) {
	p = path.Clean(p)
	m.mkdirAll(path.Dir(p))
	m.nodes[p] = &memNode{data: []byte(content)}
}

func (m *memFS) symlink(link, target string) {
	link = path.Clean(link)
	m.mkdirAll(path.Dir(link))
	m.nodes[link] = &memNode{link: target}
}

// resolve follows links in every component of p and returns the real path and node.
func (m *memFS) resolve(p string, hops int) (string, *memNode, error) {
	if hops > 40 {
		return "", nil, fmt.Errorf("too many links resolving %s", p)
	}
	cur := "/"
	for _, part := range strings.Split(strings.Trim(path.Clean(p), "/"), "/") {
		if part == "" {
			continue
		}
		next := path.Join(cur, part)
		node, ok := m.nodes[next]
		if !ok {
			return "", nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
		}
		if node.link != "" {
			target := node.link
			if !path.IsAbs(target) {
				target = path.Join(cur, target)
			}
			resolved, _, err := m.resolve(target, hops+1)
			if err != nil {
				return "", nil, err
			}
			next = resolved
		}
		cur = next
	}
	return cur, m.nodes[cur], nil
}

func (m *memFS) ListDir(p string) ([]DirEntry, error) {
	dir, node, err := m.resolve(p, 0)
	if err != nil {
		return nil, err
	}
	if err := m.listErr[dir]; err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: err}
	}
	if !node.dir {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: errors.New("not a directory")}
	}

	var out []DirEntry
	for k, n := range m.nodes {
		if k == "/" || path.Dir(k) != dir {
			continue
		}
		out = append(out, DirEntry{Name: path.Base(k), IsDir: n.dir, IsSymlink: n.link != ""})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memFS) Stat(p string) (FileInfo, error) {
	_, node, err := m.resolve(p, 0)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{IsDir: node.dir, Size: int64(len(node.data))}, nil
}

func (m *memFS) ReadFile(p string) ([]byte, error) {
	_, node, err := m.resolve(p, 0)
	if err != nil {
		return nil, err
	}
	if node.dir {
		return nil, &fs.PathError{Op: "read", Path: p, Err: errors.New("is a directory")}
	}
	return node.data, nil
}

func (m *memFS) RealPath(p string) (string, error) {
	resolved, _, err := m.resolve(p, 0)
	return resolved, err
}
