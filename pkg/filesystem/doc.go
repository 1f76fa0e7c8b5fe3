// Package filesystem provides implementations of types.FS.
//
// NewOS is used by the CLI and writes outputs atomically. NewAferoFS wraps
// any afero filesystem; NewMemory is the in-memory variant used in tests.
package filesystem
