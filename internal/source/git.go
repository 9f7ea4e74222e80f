package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/pmehra7/summingbird/internal/logger"
	apperrors "github.com/pmehra7/summingbird/pkg/errors"
)

// GitRef addresses a file inside a git repository.
type GitRef struct {
	URL    string
	Branch string
	Path   string
}

// ParseGitRef parses references of the form URL[#branch]//path/in/repo.
// The path starts at the first "//" after the URL scheme, so the path itself
// may contain "//".
func ParseGitRef(ref string) (GitRef, error) {
	idx := strings.Index(ref, "//")
	if idx > 0 && ref[idx-1] == ':' {
		// Skip the "//" of a URL scheme.
		next := strings.Index(ref[idx+2:], "//")
		if next < 0 {
			idx = -1
		} else {
			idx += 2 + next
		}
	}
	if idx < 0 {
		return GitRef{}, fmt.Errorf("git reference %q has no //path", ref)
	}

	repo, path := ref[:idx], strings.TrimPrefix(ref[idx+2:], "/")
	if path == "" {
		return GitRef{}, fmt.Errorf("git reference %q has an empty path", ref)
	}

	var branch string
	if hash := strings.LastIndex(repo, "#"); hash >= 0 {
		repo, branch = repo[:hash], repo[hash+1:]
		if branch == "" {
			return GitRef{}, fmt.Errorf("git reference %q has an empty branch", ref)
		}
	}
	if repo == "" {
		return GitRef{}, fmt.Errorf("git reference %q has no repository", ref)
	}

	return GitRef{URL: repo, Branch: branch, Path: path}, nil
}

func (r GitRef) String() string {
	if r.Branch != "" {
		return fmt.Sprintf("%s#%s//%s", r.URL, r.Branch, r.Path)
	}
	return fmt.Sprintf("%s//%s", r.URL, r.Path)
}

// GitLoader clones a repository into memory and reads a topology from its
// worktree. Nothing is written to disk.
type GitLoader struct {
	Log *logger.Logger
	// Depth limits the clone history when positive.
	Depth int
}

// NewGitLoader creates a GitLoader.
func NewGitLoader(log *logger.Logger, depth int) *GitLoader {
	return &GitLoader{Log: log, Depth: depth}
}

// Load clones the repository named by ref and returns the file at its path.
func (l *GitLoader) Load(ctx context.Context, ref string) ([]byte, string, error) {
	gitRef, err := ParseGitRef(ref)
	if err != nil {
		return nil, ref, apperrors.NewSourceError(ref, err)
	}
	location := gitRef.String()

	cloneOpts := &git.CloneOptions{URL: gitRef.URL}
	if l.Depth > 0 {
		cloneOpts.Depth = l.Depth
	}
	if gitRef.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(gitRef.Branch)
		cloneOpts.SingleBranch = true
	}

	worktree := memfs.New()
	if _, err := git.CloneContext(ctx, memory.NewStorage(), worktree, cloneOpts); err != nil {
		return nil, location, apperrors.NewSourceError(location, fmt.Errorf("failed to clone repository: %w", err))
	}

	f, err := worktree.Open(gitRef.Path)
	if err != nil {
		return nil, location, apperrors.NewSourceError(location, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, location, apperrors.NewSourceError(location, err)
	}

	l.Log.WithFields(map[string]any{
		"url":    gitRef.URL,
		"branch": gitRef.Branch,
		"path":   gitRef.Path,
		"bytes":  len(data),
	}).Debug("topology cloned")
	return data, location, nil
}
