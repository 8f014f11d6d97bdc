// File: pkg/gather/pattern.go
package gather

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern is a validated glob matched against slash-separated relative paths.
//
//	*   any run of characters except '/'
//	**  as a whole segment, zero or more path segments
//	?   exactly one character other than '/'
//
// "**" crosses separators only when it fills a segment ("a/**/b", "**/x", "doc/**").
// Inside a segment it behaves like '*', so "src/**.go" does not match "src/a/b.go".
// Matching is case-sensitive and anchored: the whole path must match.
// A Pattern holds no shared state and is safe to copy.
type Pattern struct {
	raw  string
	base string // Literal directory prefix, "." when the pattern starts with a wildcard.
}

// CompilePattern validates p and returns its compiled form.
func CompilePattern(p string) (Pattern, error) {
	normalized := normalizePattern(p)
	if normalized == "" {
		return Pattern{}, fmt.Errorf("empty glob pattern %q", p)
	}
	if !doublestar.ValidatePattern(normalized) {
		return Pattern{}, fmt.Errorf("malformed glob pattern %q: %w", p, doublestar.ErrBadPattern)
	}

	base, _ := doublestar.SplitPattern(normalized)
	if strings.Contains(base, `\`) {
		base = "."
	}
	return Pattern{raw: normalized, base: base}, nil
}

// String returns the normalized pattern text.
func (p Pattern) String() string {
	return p.raw
}

// Base returns the literal directory prefix of the pattern. Paths outside it never match.
func (p Pattern) Base() string {
	return p.base
}

// Match reports whether the relative path rel matches the pattern.
func (p Pattern) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if p.base != "." && rel != p.base && !strings.HasPrefix(rel, p.base+"/") {
		return false
	}
	ok, err := doublestar.Match(p.raw, rel)
	return err == nil && ok
}

// Match reports whether rel matches pattern. Malformed patterns match nothing.
func Match(pattern, rel string) bool {
	p, err := CompilePattern(pattern)
	if err != nil {
		return false
	}
	return p.Match(rel)
}

// compilePatterns compiles every pattern, reporting the first malformed one.
func compilePatterns(patterns []string) ([]Pattern, error) {
	out := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		p, err := CompilePattern(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// matchAny reports whether rel matches at least one of the patterns.
func matchAny(patterns []Pattern, rel string) bool {
	for _, p := range patterns {
		if p.Match(rel) {
			return true
		}
	}
	return false
}

// normalizePattern converts separators to '/' and drops leading "./" segments,
// since relative paths never carry them.
func normalizePattern(p string) string {
	p = strings.TrimSpace(filepath.ToSlash(p))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
