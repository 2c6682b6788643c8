// Package loader reads configuration sources into generic maps that the
// config package merges and decodes.
package loader

import "os"

// Loader reads one configuration source.
// It returns nil, nil when the source does not exist.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem abstracts file reads so tests can use fstest.MapFS.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile reads the named file.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// DefaultFS returns the operating system file system.
func DefaultFS() FileSystem {
	return OSFS{}
}
