package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys *AferoFS, root string) {
	t.Helper()

	dir := filepath.Join(root, "screens")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	vm := filepath.Join(dir, "XImgView.vm")
	require.NoError(t, fsys.WriteFile(vm, []byte("#* header *#\n"), 0644))

	info, err := fsys.Stat(vm)
	require.NoError(t, err)
	assert.Equal(t, "XImgView.vm", info.Name())

	info, err = fsys.Lstat(vm)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	f, err := fsys.Open(vm)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "#* header *#\n", string(data))

	bkp := filepath.Join(dir, "XImgView.BKP")
	require.NoError(t, fsys.Rename(vm, bkp))

	_, err = fsys.Stat(vm)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	content, err := fsys.ReadFile(bkp)
	require.NoError(t, err)
	assert.Equal(t, "#* header *#\n", string(content))

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err, "reading a directory must fail")

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "XImgView.BKP", entries[0].Name())

	require.NoError(t, fsys.Remove(bkp))
	_, err = fsys.Stat(bkp)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, fsys.RemoveAll(dir))
	_, err = fsys.Stat(dir)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNewOS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestNewMemory(t *testing.T) {
	exerciseFS(t, NewMemory(), "/srv")
}

func TestMemoryResolvesRelativeNames(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/xiv", 0755))
	require.NoError(t, fsys.WriteFile("xiv/popup.html", []byte("x"), 0644))

	data, err := fsys.ReadFile("/xiv/popup.html")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}
