package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/keyscan/internal/apperr"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // root as given, used to build display paths
	abs  string // absolute path to root
	real string // root with symlinks resolved

	confined bool
}

// FSOption configures an FS.
type FSOption func(*FS)

// WithConfinedLinks makes Walk skip symlinks whose target resolves outside
// the root, and reject start directories reached through such links.
func WithConfinedLinks() FSOption {
	return func(f *FS) {
		f.confined = true
	}
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string, opts ...FSOption) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	f := &FS{root: root, abs: abs, real: resolved}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Root returns the root directory exactly as passed to NewFS.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the root and returns its
// absolute form, rejecting any result that escapes the root.
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.abs, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s: %w", rel, apperr.ErrInvalidPath)
	}
	abs := filepath.Join(f.abs, cleaned)
	if !within(f.abs, abs) {
		return "", fmt.Errorf("storage: path escapes root: %s: %w", rel, apperr.ErrInvalidPath)
	}
	return abs, nil
}

// display maps an absolute path under the root back onto the root as the
// caller spelled it: root "./" yields "./a.txt", root "." yields "./a.txt".
func (f *FS) display(abs string) string {
	rel, err := filepath.Rel(f.abs, abs)
	if err != nil || rel == "." {
		return f.root
	}
	if strings.HasSuffix(f.root, string(os.PathSeparator)) {
		return f.root + rel
	}
	return f.root + string(os.PathSeparator) + rel
}

// inRoot reports whether p, with every symlink resolved, lies under the root.
func (f *FS) inRoot(p string) bool {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return false
	}
	return within(f.real, resolved)
}

func within(root, p string) bool {
	return p == root || strings.HasPrefix(p, root+string(os.PathSeparator))
}

// Walk walks dir (relative to root) and calls fn for every regular file and
// every symlink to one. Directories, devices, FIFOs and sockets are skipped,
// and symlinks to directories are not descended. Dangling links are yielded.
// Directories that cannot be listed for lack of permission are reported to
// fn; any other walk error aborts the walk.
func (f *FS) Walk(dir string, fn WalkFunc) error {
	start, err := f.safePath(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(start)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("storage: walk %s: %w", dir, apperr.ErrNotFound)
		}
		return fmt.Errorf("storage: walk: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage: not a directory: %s: %w", dir, apperr.ErrInvalidPath)
	}
	if f.confined && !f.inRoot(start) {
		return fmt.Errorf("storage: path escapes root: %s: %w", dir, apperr.ErrInvalidPath)
	}

	return filepath.WalkDir(start, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && errors.Is(walkErr, fs.ErrPermission) {
				if err := fn(f.display(p), walkErr); err != nil {
					return err
				}
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// A dangling link is still yielded; opening it is the caller's problem.
			if target, err := os.Stat(p); err == nil {
				if !target.Mode().IsRegular() {
					return nil
				}
				if f.confined && !f.inRoot(p) {
					return nil
				}
			}
			return fn(f.display(p), nil)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return fn(f.display(p), nil)
	})
}

// Open opens a file yielded by Walk.
func (f *FS) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return file, nil
}

// Abs returns the absolute, cleaned form of path.
func (f *FS) Abs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("storage: resolve %s: %w", path, err)
	}
	return abs, nil
}

var _ Provider = (*FS)(nil)
