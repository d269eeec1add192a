// Package clipboard bridges the editor register to the system
// clipboard so yanked text is usable outside the app.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard. Headless environments
// (no X11, no pbcopy) return an error the caller may ignore.
func Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Paste returns the current system clipboard text.
func Paste() (string, error) {
	return clipboard.ReadAll()
}

// Available reports whether a system clipboard backend exists.
func Available() bool {
	return !clipboard.Unsupported
}
