// Package workdir owns the server's fixed working directory and confines
// every client-supplied relative path to it. The root is established once at
// startup and shared read-only by all request handlers.
package workdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrOutsideRoot marks a path that would resolve outside the root,
	// either lexically (.., absolute) or through a symlink. It is distinct
	// from fs.ErrNotExist so callers can answer forbidden instead of
	// not-found.
	ErrOutsideRoot = errors.New("path resolves outside working directory")
	// ErrNotRegular marks a path that resolved to a directory or other
	// non-regular file.
	ErrNotRegular = errors.New("not a regular file")
)

// Root is the fixed working directory all relative paths resolve against.
type Root struct {
	path string // absolute, symlinks resolved
}

// Open creates the directory if needed and fixes it as the root.
func Open(dir string) (*Root, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workdir %s: %w", dir, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workdir %s: %w", dir, err)
	}
	// Resolve symlinks up front so later prefix checks compare real paths
	// (macOS /tmp is a symlink, for one).
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve workdir %s: %w", abs, err)
	}
	return &Root{path: real}, nil
}

// Path returns the absolute root path.
func (r *Root) Path() string { return r.path }

// Resolve maps a client-supplied relative path to an absolute path inside
// the root. It rejects absolute paths and parent-directory escapes before
// touching the filesystem, then follows symlinks and rejects any that lead
// outside. A missing target reports fs.ErrNotExist.
func (r *Root) Resolve(rel string) (string, error) {
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	joined := filepath.Join(r.path, rel)

	real, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%q: %w", rel, fs.ErrNotExist)
		}
		return "", fmt.Errorf("resolve %q: %w", rel, err)
	}
	if real != r.path && !strings.HasPrefix(real, r.path+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	return real, nil
}

// OpenFile resolves rel and opens it for reading. Directories and other
// non-regular files report ErrNotRegular.
func (r *Root) OpenFile(rel string) (*os.File, fs.FileInfo, error) {
	path, err := r.Resolve(rel)
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%q: %w", rel, ErrNotRegular)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, info, nil
}

// ResolveDir resolves rel and requires it to be a directory inside the
// root. An empty rel resolves to the root itself.
func (r *Root) ResolveDir(rel string) (string, error) {
	if rel == "" {
		return r.path, nil
	}
	path, err := r.Resolve(rel)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q: not a directory", rel)
	}
	return path, nil
}
