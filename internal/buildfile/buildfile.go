// Package buildfile locates build-definition files for a project directory.
//
// A directory's family is the canonical BUILD file plus any sibling
// BUILD.<suffix> variants declared in the same directory. Target references of
// the form "path/to/dir:name" resolve through the family of path/to/dir.
package buildfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CanonicalName is the build-definition file name without a suffix.
const CanonicalName = "BUILD"

// File describes a single build-definition file.
type File struct {
	// RelPath is the file's path relative to the project root.
	RelPath string
}

// Finder lists the build-definition file family for a directory. Callers only
// rely on whether the family is empty and on its first element; the ordering
// guarantee lives here, not in the resolver.
type Finder interface {
	// Family returns the build-definition files of dir (relative to the
	// project root), or an empty slice when there are none. Unreadable
	// directories yield an empty family, never an error surfaced to callers.
	Family(dir string) ([]File, error)
}

// FSFinder is a Finder backed by the local filesystem.
type FSFinder struct {
	root string
}

// NewFSFinder creates a filesystem-backed finder for the given project root.
func NewFSFinder(root string) *FSFinder {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &FSFinder{root: root}
}

// Family returns the BUILD file family of dir: the canonical BUILD file first
// when present, then BUILD.<suffix> variants in lexical order.
func (f *FSFinder) Family(dir string) ([]File, error) {
	entries, err := os.ReadDir(filepath.Join(f.root, dir))
	if err != nil {
		return nil, nil
	}

	var canonical []File
	var suffixed []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		rel := filepath.ToSlash(filepath.Join(dir, name))
		switch {
		case name == CanonicalName:
			canonical = append(canonical, File{RelPath: rel})
		case strings.HasPrefix(name, CanonicalName+".") && len(name) > len(CanonicalName)+1:
			suffixed = append(suffixed, File{RelPath: rel})
		}
	}
	sort.Slice(suffixed, func(i, j int) bool { return suffixed[i].RelPath < suffixed[j].RelPath })
	return append(canonical, suffixed...), nil
}
