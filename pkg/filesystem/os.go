package filesystem

import (
	"bytes"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"

	"github.com/talss89/envtmpl/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile replaces name atomically through a temp file in the same
// directory. An existing file keeps its mode; a new one gets perm.
func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	_, statErr := os.Stat(name)
	existed := statErr == nil

	if err := atomic.WriteFile(name, bytes.NewReader(data)); err != nil {
		return err
	}
	if !existed {
		return os.Chmod(name, perm)
	}
	return nil
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}
