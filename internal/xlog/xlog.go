// Package xlog provides the environment-gated debug logger shared by the
// CLI driver, the engine's execution trace, and the TUI/GUI front-ends.
// It follows the teacher's api/debug.go and service/debugger_service.go
// pattern exactly: logging is off by default (writes to io.Discard) and
// only turned on when DISASM86_DEBUG is set, at which point it logs to a
// fixed file under the OS temp directory.
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// New builds a prefixed *log.Logger for component. When DISASM86_DEBUG is
// unset the logger discards everything; when set, it appends to
// disasm86-<component>-debug.log in os.TempDir(), falling back to stderr
// if the file can't be opened.
func New(component string) *log.Logger {
	if os.Getenv("DISASM86_DEBUG") == "" {
		return log.New(io.Discard, "", 0)
	}

	prefix := fmt.Sprintf("%s: ", component)
	logPath := filepath.Join(os.TempDir(), "disasm86-"+component+"-debug.log")
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600) // #nosec G304 -- fixed filename in temp dir
	if err != nil {
		return log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds|log.Lshortfile)
	}
	return log.New(f, prefix, log.Ltime|log.Lmicroseconds|log.Lshortfile)
}
