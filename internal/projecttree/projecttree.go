// Package projecttree answers relative-to-root filesystem queries for a project.
//
// All queries treat access failures (permissions, dangling symlinks, IO errors)
// as "does not exist" so callers never have to handle filesystem errors.
package projecttree

import (
	"os"
	"path/filepath"
)

// Tree answers existence queries relative to a project root. The resolver and
// the browse layer depend on this interface rather than the filesystem so they
// can be tested with counting stubs.
type Tree interface {
	// Root returns the absolute project root path.
	Root() string
	// Exists reports whether relPath names an existing file or directory under the root.
	Exists(relPath string) bool
	// IsDir reports whether relPath names an existing directory under the root.
	IsDir(relPath string) bool
}

// FSTree is a Tree backed by the local filesystem.
type FSTree struct {
	root string
}

// NewFSTree creates a filesystem-backed tree rooted at root. The root should be
// an absolute path; a relative root is resolved against the working directory.
func NewFSTree(root string) *FSTree {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &FSTree{root: root}
}

func (t *FSTree) Root() string { return t.root }

func (t *FSTree) Exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(t.root, relPath))
	return err == nil
}

func (t *FSTree) IsDir(relPath string) bool {
	info, err := os.Stat(filepath.Join(t.root, relPath))
	return err == nil && info.IsDir()
}
