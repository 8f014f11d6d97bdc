// File: pkg/gather/types.go
package gather

// RequestKind tells a Collector how to interpret a Request.
type RequestKind int

const (
	KindPath   RequestKind = iota // Collect a file or directory tree.
	KindPreset                    // Collect the files selected by a named preset.
)

func (k RequestKind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindPreset:
		return "preset"
	default:
		return "unknown"
	}
}

// Request is a single collection request. Build it with PathRequest or PresetRequest.
type Request struct {
	Kind       RequestKind
	Root       string // File or directory to collect (KindPath).
	Preset     string // Preset name (KindPreset).
	ConfigPath string // Configuration document holding the preset (KindPreset).
}

// PathRequest returns a request that collects root.
func PathRequest(root string) Request {
	return Request{Kind: KindPath, Root: root}
}

// PresetRequest returns a request that collects the preset name from configPath.
func PresetRequest(name, configPath string) Request {
	return Request{Kind: KindPreset, Preset: name, ConfigPath: configPath}
}

// Describe returns a short human readable label, e.g. "preset 'docs'".
func (r Request) Describe() string {
	if r.Kind == KindPreset {
		return "preset '" + r.Preset + "'"
	}
	return "path " + r.Root
}

// PresetDefinition selects files under Base with glob patterns.
type PresetDefinition struct {
	Base    string   // Directory the patterns are relative to; empty means the repo root.
	Include []string // Patterns selecting files, in priority order. Must not be empty.
	Exclude []string // Patterns removing files from the selection.
}

// PresetLoader supplies preset definitions from a configuration document.
type PresetLoader interface {
	LoadPresets(configPath string) (map[string]PresetDefinition, error)
}

// FileEntry is one collected file.
type FileEntry struct {
	AbsPath  string // Absolute path on disk.
	RelPath  string // Slash-separated path relative to the result anchor.
	IsReadme bool   // Set by Promote for README-like files.
}

// Result is the ordered, deduplicated output of a collection.
type Result struct {
	Anchor  string      // Directory the entries' RelPath values are relative to.
	Entries []FileEntry // README entries first, then traversal or match order.
}

// Paths returns the relative paths of the entries in order.
func (r Result) Paths() []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.RelPath
	}
	return paths
}

// Len returns the number of entries.
func (r Result) Len() int {
	return len(r.Entries)
}

// dedupe drops repeated absolute paths, keeping the first occurrence.
func dedupe(entries []FileEntry) []FileEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if _, ok := seen[e.AbsPath]; ok {
			continue
		}
		seen[e.AbsPath] = struct{}{}
		out = append(out, e)
	}
	return out
}
