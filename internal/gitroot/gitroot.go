// Package gitroot discovers the project root from the enclosing git worktree.
package gitroot

import (
	"log/slog"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/reportlink/internal/logfields"
)

// Discover returns the root of the git worktree enclosing start, walking up
// through parent directories. When start is not inside a repository (or the
// repository is bare) it falls back to start itself.
func Discover(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("No enclosing git repository, using directory as root", logfields.Root(abs))
		return abs
	}

	wt, err := repo.Worktree()
	if err != nil {
		return abs
	}

	root := wt.Filesystem.Root()
	slog.Debug("Discovered project root from git worktree", logfields.Root(root))
	return root
}
