package loader

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlbridge/idlbridge/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadAll_PreservesOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ui", "widget.idl"), "interface Widget {};")
	writeFile(t, filepath.Join(root, "flags.idl"), "enum Flags { \"a\" };")
	writeFile(t, filepath.Join(root, "net", "http", "request.idl"), "interface HTTPRequest {};")

	l, err := New(root, 2)
	require.NoError(t, err)

	paths := []string{"ui/widget.idl", filepath.Join(root, "flags.idl"), "net/http/request.idl"}
	sources, err := l.ReadAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, "ui/widget.idl", sources[0].RelPath)
	assert.Equal(t, "ui", sources[0].Dir())
	assert.Equal(t, "interface Widget {};", sources[0].Text)

	assert.Equal(t, "flags.idl", sources[1].RelPath)
	assert.Equal(t, ".", sources[1].Dir())

	assert.Equal(t, "net/http", sources[2].Dir())
	assert.Equal(t, filepath.Join(root, "net", "http", "request.idl"), sources[2].Path)
}

func TestReadAll_Empty(t *testing.T) {
	l, err := New(t.TempDir(), 0)
	require.NoError(t, err)

	sources, err := l.ReadAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestReadAll_MissingFileFailsWholeLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.idl"), "interface Ok {};")

	l, err := New(root, 0)
	require.NoError(t, err)

	sources, err := l.ReadAll(context.Background(), []string{"ok.idl", "missing.idl"})
	require.Error(t, err)
	assert.Nil(t, sources)
	assert.True(t, errors.Is(err, errors.ErrInputRead))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.idl")
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestReadAll_RejectsPathOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	writeFile(t, filepath.Join(parent, "outside.idl"), "interface Outside {};")
	require.NoError(t, os.MkdirAll(root, 0755))

	l, err := New(root, 0)
	require.NoError(t, err)

	_, err = l.ReadAll(context.Background(), []string{"../outside.idl"})
	require.Error(t, err)
	assert.Equal(t, "InputReadError", errors.KindOf(err))
	assert.Contains(t, err.Error(), "outside the root directory")
}
