package gitwrap

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"gitwrap.dev/gitwrap/internal/gitcmd"
)

// BranchService exposes branch operations: create, checkout, reset and
// rebase.
type BranchService struct {
	repo *Repo
}

// CreateOptions configures BranchService.Create.
type CreateOptions struct {
	// Checkout switches to the new branch after creating it.
	Checkout bool
	// Force overwrites an existing branch pointer instead of failing.
	Force bool
}

// Create creates a branch named name pointing at startPoint. An empty
// startPoint means the current HEAD. An existing name fails with
// ErrAlreadyExists unless Force is set.
func (s *BranchService) Create(name, startPoint string, opts CreateOptions) error {
	if startPoint == "" {
		startPoint = "HEAD"
	}
	commit, err := s.repo.resolveCommit(startPoint)
	if err != nil {
		return err
	}

	if s.Exists(name) && !opts.Force {
		return &AlreadyExistsError{Kind: "branch", Name: name}
	}

	refName := plumbing.NewBranchReferenceName(name)
	ref := plumbing.NewHashReference(refName, commit.Hash)
	if err := s.repo.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	s.repo.log.Debug("created branch",
		"branch", name, "start", startPoint, "hash", commit.Hash.String())

	if opts.Checkout {
		wt, err := s.repo.repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree: %w", err)
		}
		if err := wt.Checkout(&git.CheckoutOptions{Branch: refName}); err != nil {
			return fmt.Errorf("failed to checkout branch %s: %w", name, err)
		}
	}
	return nil
}

// Exists reports whether a local branch with the given name exists. It is
// a query and never fails; unresolvable names report false.
func (s *BranchService) Exists(name string) bool {
	_, err := s.repo.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// Checkout switches the working tree to the named branch or reference.
func (s *BranchService) Checkout(ctx context.Context, name string) error {
	if _, err := s.repo.run.Run(ctx, "checkout", name); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}
	return nil
}

// Reset moves the branch pointer to ref. With hard, the branch is checked
// out and the working tree overwritten as well. An unresolvable ref fails
// with ErrReferenceNotFound.
func (s *BranchService) Reset(ctx context.Context, name, ref string, hard bool) error {
	commit, err := s.repo.resolveCommit(ref)
	if err != nil {
		return err
	}
	if !s.Exists(name) {
		return &ReferenceNotFoundError{Ref: name}
	}

	if !hard {
		branchRef := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), commit.Hash)
		if err := s.repo.repo.Storer.SetReference(branchRef); err != nil {
			return fmt.Errorf("failed to reset branch %s to %s: %w", name, ref, err)
		}
		return nil
	}

	if err := s.Checkout(ctx, name); err != nil {
		return err
	}
	if _, err := s.repo.run.Run(ctx, "reset", "--hard", commit.Hash.String()); err != nil {
		return fmt.Errorf("failed to hard reset %s to %s: %w", name, ref, err)
	}
	s.repo.log.Debug("reset branch", "branch", name, "to", commit.Hash.String(), "hard", hard)
	return nil
}

// RebaseToHash checks out branch and replays its commits on top of hash.
// A conflict fails with ErrConflict and leaves the repository in the
// engine's native mid-rebase state.
func (s *BranchService) RebaseToHash(ctx context.Context, branch, hash string) error {
	return s.rebase(ctx, branch, hash)
}

// RebaseToBranch checks out branch and replays its commits on top of the
// target branch's tip. Same conflict contract as RebaseToHash.
func (s *BranchService) RebaseToBranch(ctx context.Context, branch, targetBranch string) error {
	return s.rebase(ctx, branch, targetBranch)
}

func (s *BranchService) rebase(ctx context.Context, branch, onto string) error {
	if !s.Exists(branch) {
		return &ReferenceNotFoundError{Ref: branch}
	}
	if _, err := s.repo.resolve(onto); err != nil {
		return err
	}

	dirty, err := s.repo.IsDirty()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("%w: %s", ErrDirtyWorktree, s.repo.path)
	}

	s.repo.log.Debug("rebasing branch", "branch", branch, "onto", onto)

	if err := s.Checkout(ctx, branch); err != nil {
		return err
	}

	if _, err := s.repo.run.Run(ctx, "rebase", onto); err != nil {
		if s.rebaseInProgress(ctx) {
			return &ConflictError{Op: "rebase", Ref: onto, Detail: commandDetail(err), Err: err}
		}
		return fmt.Errorf("failed to rebase %s onto %s: %w", branch, onto, err)
	}

	s.repo.log.Debug("rebased branch", "branch", branch, "onto", onto)
	return nil
}

// AbortRebase aborts an in-progress rebase.
func (s *BranchService) AbortRebase(ctx context.Context) error {
	if _, err := s.repo.run.Run(ctx, "rebase", "--abort"); err != nil {
		return fmt.Errorf("failed to abort rebase: %w", err)
	}
	return nil
}

// rebaseInProgress checks for the engine's rebase state directories.
func (s *BranchService) rebaseInProgress(ctx context.Context) bool {
	return s.repo.hasState(ctx, "rebase-merge") || s.repo.hasState(ctx, "rebase-apply")
}

var (
	cherryHeadOnlyRe   = regexp.MustCompile(`^\+\s(\S+)\s(.*)`)
	cherryEquivalentRe = regexp.MustCompile(`^-\s(\S+)\s(.*)`)
)

// CherryOnHeadOnly returns the commits present on head but not upstream,
// keyed by hash with the commit subject as value.
func (s *BranchService) CherryOnHeadOnly(ctx context.Context, upstream, head string) (map[string]string, error) {
	return s.runCherry(ctx, upstream, head, cherryHeadOnlyRe)
}

// CherryEquivalent returns the commits with an equivalent change on both
// upstream and head, keyed by hash with the commit subject as value.
func (s *BranchService) CherryEquivalent(ctx context.Context, upstream, head string) (map[string]string, error) {
	return s.runCherry(ctx, upstream, head, cherryEquivalentRe)
}

func (s *BranchService) runCherry(ctx context.Context, upstream, head string, re *regexp.Regexp) (map[string]string, error) {
	lines, err := s.repo.run.RunLines(ctx, "cherry", "-v", upstream, head)
	if err != nil {
		return nil, fmt.Errorf("failed to compare %s with %s: %w", upstream, head, err)
	}
	result := map[string]string{}
	for _, line := range lines {
		if match := re.FindStringSubmatch(line); match != nil {
			result[match[1]] = match[2]
		}
	}
	return result, nil
}

// commandDetail extracts the engine's stderr from a failed command for
// inclusion in wrapped errors.
func commandDetail(err error) string {
	var cmdErr *gitcmd.CommandError
	if errors.As(err, &cmdErr) {
		return firstLine(cmdErr.Stderr)
	}
	return ""
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
