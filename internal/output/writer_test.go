package output

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlbridge/idlbridge/internal/errors"
)

func TestBridgeFile(t *testing.T) {
	tests := []struct {
		dir, name, ext string
		want           string
	}{
		{"network", "HTTPRequest", ".h", "network/http_request_bridge.h"},
		{"network", "HTTPRequest", ".cc", "network/http_request_bridge.cc"},
		{"ui", "Widget", ".h", "ui/widget_bridge.h"},
		{".", "TestInterface", ".cc", "test_interface_bridge.cc"},
		{"a/b", "XMLHttpRequest", ".h", "a/b/xml_http_request_bridge.h"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, BridgeFile(tt.dir, tt.name, tt.ext))
		})
	}
}

func TestNativeHeader(t *testing.T) {
	assert.Equal(t, "test/test_interface.h", NativeHeader("test", "TestInterface", ".h"))
}

func TestWrite_CreatesIntermediateDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	w := New(root)

	dest, err := w.Write("a/b/c/file.h", "content")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b", "c", "file.h"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestWrite_TruncatesExistingFile(t *testing.T) {
	w := New(t.TempDir())

	_, err := w.Write("x.cc", "a much longer first version")
	require.NoError(t, err)
	dest, err := w.Write("x.cc", "short")
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestWrite_FailurePropagates(t *testing.T) {
	root := t.TempDir()
	// A regular file where a directory is needed.
	require.NoError(t, os.WriteFile(filepath.Join(root, "ui"), []byte("x"), 0644))

	_, err := New(root).Write("ui/widget_bridge.h", "content")
	require.Error(t, err)
	assert.Equal(t, "OutputWriteError", errors.KindOf(err))
}

func TestWrite_ReadOnlyDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0555))
	t.Cleanup(func() { os.Chmod(root, 0755) })

	_, err := New(root).Write("widget_bridge.h", "content")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutputWrite))
}

func TestEnsureRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "out")
	w := New(root)

	require.NoError(t, w.EnsureRoot())
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, root, w.Root())
}
