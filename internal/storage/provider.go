// Package storage defines the file-system abstraction the scanner walks.
package storage

import "io"

// WalkFunc is called for every file found by Walk. err is non-nil when a
// directory could not be listed because of a permission error; returning nil
// skips that directory and continues the walk.
type WalkFunc func(path string, err error) error

// Provider is the interface for the scanned tree.
type Provider interface {
	// Root returns the root directory as the caller spelled it; yielded paths
	// start with it.
	Root() string
	// Walk yields every file under dir (relative to root) in lexical order.
	Walk(dir string, fn WalkFunc) error
	// Open opens a path yielded by Walk for reading.
	Open(path string) (io.ReadCloser, error)
	// Abs returns the absolute, cleaned form of a path yielded by Walk.
	Abs(path string) (string, error)
}
