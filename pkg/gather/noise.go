package gather

// noiseDirs are directory names never descended into. Files with these names are kept.
var noiseDirs = map[string]bool{
	// Version control
	".git": true,
	".hg":  true,
	".svn": true,
	".jj":  true,

	// Dependency caches
	"node_modules":     true,
	"bower_components": true,
	".venv":            true,
	"venv":             true,
	"__pycache__":      true,
	".tox":             true,
	".mypy_cache":      true,
	".pytest_cache":    true,
	".gradle":          true,

	// Build output
	"target": true,
	"dist":   true,
	"build":  true,
	".next":  true,
	".nuxt":  true,

	// Editor and OS metadata
	".idea":           true,
	".vscode":         true,
	".Trashes":        true,
	".Spotlight-V100": true,
}

// IsNoise reports whether a directory with this name should be pruned from traversal.
func IsNoise(name string) bool {
	return noiseDirs[name]
}
