package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/spf13/afero"

	"github.com/xnat/convertdemo/pkg/types"
)

// AferoFS implements types.FS on top of an afero filesystem. It also
// satisfies synthfs's FullFileSystem, so write pipelines run on the same
// files the rest of the program reads.
type AferoFS struct {
	fs   afero.Fs
	root string
}

var (
	_ types.FS                       = (*AferoFS)(nil)
	_ synthfilesystem.FullFileSystem = (*AferoFS)(nil)
)

// NewAferoFS creates a filesystem over fs. Relative names are resolved
// against "/".
func NewAferoFS(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs, root: "/"}
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() *AferoFS {
	return NewAferoFS(afero.NewMemMapFs())
}

// NewOS returns the OS filesystem. Relative names are resolved against the
// working directory.
func NewOS() *AferoFS {
	root, err := os.Getwd()
	if err != nil {
		root = ""
	}
	return &AferoFS{fs: afero.NewOsFs(), root: root}
}

func (a *AferoFS) path(name string) string {
	if a.root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.root, name)
}

func (a *AferoFS) Open(name string) (fs.File, error) {
	f, err := a.fs.Open(a.path(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (a *AferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(a.path(name))
}

func (a *AferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(a.path(name))
		return info, err
	}
	return a.Stat(name)
}

func (a *AferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(a.path(name))
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, a.path(name))
}

func (a *AferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, a.path(name), data, perm)
}

func (a *AferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(a.path(path), perm)
}

func (a *AferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(a.path(oldpath), a.path(newpath))
}

func (a *AferoFS) Remove(name string) error {
	return a.fs.Remove(a.path(name))
}

func (a *AferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(a.path(path))
}

func (a *AferoFS) Symlink(oldname, newname string) error {
	if l, ok := a.fs.(afero.Linker); ok {
		return l.SymlinkIfPossible(oldname, a.path(newname))
	}
	return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
}

func (a *AferoFS) Readlink(name string) (string, error) {
	if l, ok := a.fs.(afero.LinkReader); ok {
		return l.ReadlinkIfPossible(a.path(name))
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

func (a *AferoFS) Mkdir(name string, perm fs.FileMode) error {
	return a.fs.Mkdir(a.path(name), perm)
}

func (a *AferoFS) Chmod(name string, mode fs.FileMode) error {
	return a.fs.Chmod(a.path(name), mode)
}

func (a *AferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, a.path(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}
