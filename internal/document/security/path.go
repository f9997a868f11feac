// Package security confines every file-touching operation of the annotator
// to the configured document directory.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator confines document paths to a configured root directory
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator rooted at the given directory. The
// directory does not have to exist yet.
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("document directory cannot be empty")
	}
	return &PathValidator{root: root}, nil
}

// Root returns the configured document directory
func (v *PathValidator) Root() string {
	return v.root
}

// ValidatePath checks that path resolves to a location inside the
// configured directory, following symlinks on both sides.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// A root that doesn't exist yet cannot be escaped.
	if _, err := os.Stat(v.root); os.IsNotExist(err) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	within, err := v.within(absPath)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside document directory: %s", path)
	}
	return nil
}

// NormalizePath makes path absolute (relative paths resolve against the
// configured directory) and validates it.
func (v *PathValidator) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// within reports whether absPath lies inside the root, checking both the
// literal path and its symlink-resolved form.
func (v *PathValidator) within(absPath string) (bool, error) {
	absRoot, err := filepath.Abs(v.root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve document directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanRoot := filepath.Clean(absRoot)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}
	realRoot := cleanRoot
	if resolved, err := filepath.EvalSymlinks(cleanRoot); err == nil {
		realRoot = resolved
	}

	pathOk := isUnder(cleanPath, cleanRoot) || isUnder(cleanPath, realRoot)
	realPathOk := isUnder(realPath, cleanRoot) || isUnder(realPath, realRoot)
	return pathOk && realPathOk, nil
}

// isUnder reports whether path equals dir or sits below it
func isUnder(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
