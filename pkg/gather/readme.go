package gather

import (
	"path/filepath"
	"sort"
	"strings"
)

// IsReadme reports whether a file name is README-like: "README" with any extension
// or none, compared case-insensitively.
func IsReadme(name string) bool {
	stem, _, _ := strings.Cut(name, ".")
	return strings.EqualFold(stem, "readme")
}

// Promote moves README-like entries to the front, shallowest relative to anchor first.
// READMEs at equal depth and all other entries keep their relative order, so applying
// Promote twice gives the same result as applying it once. The input is not modified.
func Promote(entries []FileEntry, anchor string) []FileEntry {
	type ranked struct {
		entry FileEntry
		depth int
	}

	var readmes []ranked
	others := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		e.IsReadme = IsReadme(entryName(e))
		if !e.IsReadme {
			others = append(others, e)
			continue
		}
		readmes = append(readmes, ranked{entry: e, depth: depth(e, anchor)})
	}

	sort.SliceStable(readmes, func(i, j int) bool {
		return readmes[i].depth < readmes[j].depth
	})

	out := make([]FileEntry, 0, len(entries))
	for _, r := range readmes {
		out = append(out, r.entry)
	}
	return append(out, others...)
}

func entryName(e FileEntry) string {
	if e.AbsPath != "" {
		return filepath.Base(e.AbsPath)
	}
	return filepath.Base(filepath.FromSlash(e.RelPath))
}

// depth counts the directories between anchor and the entry.
func depth(e FileEntry, anchor string) int {
	rel := e.RelPath
	if anchor != "" && e.AbsPath != "" {
		if r, err := filepath.Rel(anchor, e.AbsPath); err == nil && !strings.HasPrefix(r, "..") {
			rel = filepath.ToSlash(r)
		}
	}
	return strings.Count(rel, "/")
}
