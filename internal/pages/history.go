package pages

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// gitHistory answers "when was this file last committed".
type gitHistory struct {
	repo *git.Repository
	root string
}

// openHistory opens the repository containing dir, or returns nil when dir
// is not under version control.
func openHistory(dir string) *gitHistory {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("No git history for content, using file times", logfields.Path(dir), logfields.Error(err))
		return nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil
	}
	return &gitHistory{repo: repo, root: root}
}

// commitTime returns the committer time of the newest commit touching abs.
func (h *gitHistory) commitTime(abs string) (time.Time, bool) {
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return time.Time{}, false
	}
	rel, err := filepath.Rel(h.root, resolved)
	if err != nil {
		return time.Time{}, false
	}
	rel = filepath.ToSlash(rel)
	iter, err := h.repo.Log(&git.LogOptions{FileName: &rel, Order: git.LogOrderCommitterTime})
	if err != nil {
		return time.Time{}, false
	}
	defer iter.Close()
	c, err := iter.Next()
	if err != nil {
		return time.Time{}, false
	}
	return c.Committer.When.UTC(), true
}

func lastUpdated(h *gitHistory, abs string) time.Time {
	if h != nil {
		if t, ok := h.commitTime(abs); ok {
			return t
		}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime().UTC()
}
