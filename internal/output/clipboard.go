package output

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	writeClipboard       = clipboard.WriteAll
)

// Copy puts text on the system clipboard.
func Copy(text string) error {
	if clipboardUnsupported() {
		return ErrClipboardUnsupported
	}
	return writeClipboard(text)
}
