// File: pkg/gather/errors.go
package gather

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds reported by the collectors. Match them with errors.Is.
var (
	ErrNotFound       = errors.New("path does not exist")
	ErrEmptyResult    = errors.New("no files found")
	ErrNoMatches      = errors.New("no files matched")
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset")
	ErrIO             = errors.New("i/o failure")
)

// Error describes a failed collection request.
type Error struct {
	Kind     error    // One of the Err* sentinels above.
	Path     string   // Offending path, if any.
	Preset   string   // Preset name, if the request was a preset.
	Patterns []string // Offending or unmatched patterns, if any.
	Err      error    // Underlying cause, if any.
}

func (e *Error) Error() string {
	parts := []string{e.Kind.Error()}
	if e.Preset != "" {
		parts = append(parts, fmt.Sprintf("preset '%s'", e.Preset))
	}
	if len(e.Patterns) > 0 {
		quoted := make([]string, len(e.Patterns))
		for i, p := range e.Patterns {
			quoted[i] = "'" + p + "'"
		}
		parts = append(parts, "patterns "+strings.Join(quoted, ", "))
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IOError wraps a filesystem failure with the path that caused it.
func IOError(path string, err error) error {
	return &Error{Kind: ErrIO, Path: path, Err: err}
}
