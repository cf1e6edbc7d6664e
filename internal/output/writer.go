// Package output computes artifact paths and persists rendered text.
package output

import (
	"os"
	"path"
	"path/filepath"

	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/naming"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// BridgeFile returns the slash-separated path, relative to the output root,
// of a bridge artifact: <dir>/<snakecase(name)>_bridge<ext>.
func BridgeFile(dir, name, ext string) string {
	return path.Join(dir, naming.SnakeCase(name)+"_bridge"+ext)
}

// NativeHeader returns the path of the hand-written class a bridge wraps:
// <dir>/<snakecase(name)><ext>.
func NativeHeader(dir, name, ext string) string {
	return path.Join(dir, naming.SnakeCase(name)+ext)
}

// Writer persists rendered artifacts below a root directory.
//
// Files are written in place: create-or-truncate, then one full write.
// There is no temporary file and rename, so a run that fails mid-write can
// leave a truncated file behind. The output directory of a failed run is
// only fit to be discarded and regenerated.
type Writer struct {
	root string
}

// New returns a Writer rooted at root.
func New(root string) *Writer {
	return &Writer{root: filepath.Clean(root)}
}

// Root returns the output root directory.
func (w *Writer) Root() string {
	return w.root
}

// Path returns the filesystem path of a slash-separated relative path.
func (w *Writer) Path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// EnsureRoot creates the output root and its parents if absent.
func (w *Writer) EnsureRoot() error {
	if err := os.MkdirAll(w.root, dirPerm); err != nil {
		return errors.OutputWrite(err, "create output directory %s", w.root)
	}
	return nil
}

// Write stores content at rel below the root, creating missing directories.
//
// Parameters:
//   - rel: Slash-separated path relative to the output root.
//   - content: The complete file content.
//
// Returns:
//   - string: The filesystem path written.
//   - error: An OutputWriteError if a directory or the file could not be written.
func (w *Writer) Write(rel, content string) (string, error) {
	dest := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return "", errors.OutputWrite(err, "create directory for %s", dest)
	}
	if err := os.WriteFile(dest, []byte(content), filePerm); err != nil {
		return "", errors.OutputWrite(err, "write %s", dest)
	}
	return dest, nil
}
