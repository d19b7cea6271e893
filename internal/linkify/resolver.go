package linkify

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/reportlink/internal/buildfile"
	"git.home.luguber.info/inful/reportlink/internal/foundation"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
)

// DefaultLinkPrefix is the address prefix under which the server exposes file
// content from the project root.
const DefaultLinkPrefix = "/browse"

// Resolver classifies matched references against a project root. All of its
// work is read-only: directory checks, a build-file-family lookup and file
// existence checks. Collaborator failures count as "does not exist" so a
// malformed or unreadable path can never fail an annotate call.
type Resolver struct {
	tree   projecttree.Tree
	finder buildfile.Finder
	prefix string
}

// NewResolver creates a resolver over the given tree and build-file finder.
func NewResolver(tree projecttree.Tree, finder buildfile.Finder) *Resolver {
	return &Resolver{tree: tree, finder: finder, prefix: DefaultLinkPrefix}
}

// WithLinkPrefix overrides the address prefix (fluent helper).
func (r *Resolver) WithLinkPrefix(prefix string) *Resolver {
	r.prefix = strings.TrimSuffix(prefix, "/")
	return r
}

// Classify decides whether text denotes something linkable and returns the
// link address when it does.
//
// http(s) URLs are never rewritten: they are already link-worthy literals, so
// they classify as not-linkable without any filesystem work. Candidate paths
// starting with ".." are outside the project root by construction and are
// rejected immediately. A "dir:target" reference resolves through the
// build-file family of dir; everything else is a plain path checked for
// existence under the root.
func (r *Resolver) Classify(text string, hasScheme bool) foundation.Option[string] {
	if hasScheme {
		return foundation.None[string]()
	}

	path := text
	switch {
	case strings.HasPrefix(path, "/"):
		rel, err := filepath.Rel(r.tree.Root(), path)
		if err != nil {
			return foundation.None[string]()
		}
		path = rel
	case strings.HasPrefix(path, ".."):
		// Not located inside the project root, so definitely not a build file.
		return foundation.None[string]()
	default:
		// See if it's a reference to a target in a build-definition file.
		dir := path
		if i := strings.IndexByte(path, ':'); i >= 0 {
			dir = path[:i]
		}
		if r.tree.IsDir(dir) {
			family, err := r.finder.Family(dir)
			if err != nil || len(family) == 0 {
				return foundation.None[string]()
			}
			path = family[0].RelPath
		}
	}

	if !r.tree.Exists(path) {
		return foundation.None[string]()
	}
	// The server serves file content at <prefix>/<path_from_root>.
	return foundation.Some(r.prefix + "/" + filepath.ToSlash(path))
}
