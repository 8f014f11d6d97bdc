// Package clipboard copies the rendered blob to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("no clipboard utility found (install pbcopy, xclip, xsel or wl-clipboard)")

// writeAll is a package-level variable to allow mocking in tests.
var writeAll = clipboard.WriteAll

// Writer receives text destined for the clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the platform clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
