package types

import (
	"io/fs"
)

// FS is the filesystem surface the converter needs.
// Production code uses the OS; tests use an in-memory afero filesystem.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
}
