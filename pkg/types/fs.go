// Package types holds the interfaces shared between envtmpl packages.
package types

import (
	"io/fs"
)

// FS is the filesystem interface required for envtmpl operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Default permissions for created outputs.
const (
	DirPerm  fs.FileMode = 0755
	FilePerm fs.FileMode = 0644
)
