package apperr

import (
	"errors"
	"io/fs"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPath     = errors.New("invalid path")
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")
)

// Recoverable reports whether a file-level failure should skip the file
// instead of aborting the scan.
func Recoverable(err error) bool {
	return errors.Is(err, ErrInvalidEncoding) || errors.Is(err, fs.ErrPermission)
}
