package gather

import (
	"path"
	"strings"
)

// binaryExtensions lists extensions of files that are never useful as text.
var binaryExtensions = extensionSet(
	// Images
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico",
	".webp", ".tif", ".tiff", ".psd",
	// Archives
	".zip", ".tar", ".gz", ".tgz", ".bz2", ".xz",
	".7z", ".rar", ".zst", ".jar", ".war",
	// Compiled code and libraries
	".exe", ".dll", ".so", ".dylib", ".a", ".o",
	".obj", ".lib", ".class", ".pyc", ".pyo", ".wasm",
	".rlib",
	// Media
	".mp3", ".mp4", ".wav", ".flac", ".ogg", ".avi",
	".mov", ".mkv", ".webm",
	// Documents and fonts
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt",
	".pptx", ".ttf", ".otf", ".woff", ".woff2", ".eot",
	// Data
	".db", ".sqlite", ".sqlite3", ".bin", ".dat",
)

func extensionSet(exts ...string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[ext] = true
	}
	return set
}

// IsBinaryName reports whether name has an extension on the binary skip-list.
func IsBinaryName(name string) bool {
	return binaryExtensions[strings.ToLower(path.Ext(name))]
}

// WithoutBinaries returns a copy of r without the entries whose names are on the
// binary skip-list, and the entries that were dropped. Order is preserved.
func (r Result) WithoutBinaries() (Result, []FileEntry) {
	out := Result{Anchor: r.Anchor}
	var dropped []FileEntry
	for _, e := range r.Entries {
		if IsBinaryName(e.RelPath) {
			dropped = append(dropped, e)
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	return out, dropped
}
