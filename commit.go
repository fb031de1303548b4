package gitwrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CommitService exposes commit-level operations: revert, cherry-pick,
// mailbox patch application and reference comparison.
type CommitService struct {
	repo *Repo
}

// Description holds the output of a describe query.
type Description struct {
	Tag   string
	Patch string
}

// Commit stages all tracked file changes and commits them, equivalent to
// `git commit -a -m <message>`. It is a no-op when there is nothing to
// commit.
func (s *CommitService) Commit(ctx context.Context, message string, signoff bool) error {
	if message == "" {
		return errors.New("no commit message text provided")
	}

	if _, err := s.repo.run.Run(ctx, "add", "--update"); err != nil {
		return fmt.Errorf("failed to stage tracked changes: %w", err)
	}
	staged, err := s.repo.run.Run(ctx, "diff", "--name-only", "--staged")
	if err != nil {
		return fmt.Errorf("failed to inspect staged changes: %w", err)
	}
	if staged == "" {
		s.repo.log.Info("no changes to commit")
		return nil
	}

	args := []string{"commit", "--all", "-m", message}
	if signoff {
		args = append(args, "--signoff")
	}
	if _, err := s.repo.run.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	s.repo.log.Debug("committed changes", "files", staged)
	return nil
}

// Revert creates a new commit inversing the changes of hash. A merge
// conflict fails with ErrConflict and leaves the engine's native revert
// state in place. A non-empty message is appended to the revert commit's
// message.
func (s *CommitService) Revert(ctx context.Context, hash string, message string) error {
	commit, err := s.repo.resolveCommit(hash)
	if err != nil {
		return err
	}

	if _, err := s.repo.run.Run(ctx, "revert", "--no-edit", hash); err != nil {
		if s.repo.hasState(ctx, "REVERT_HEAD") {
			return &ConflictError{Op: "revert", Ref: hash, Detail: commandDetail(err), Err: err}
		}
		return fmt.Errorf("failed to revert %s: %w", hash, err)
	}

	if message != "" {
		summary := firstLine(commit.Message)
		_, err := s.repo.run.Run(ctx, "commit", "--amend",
			"-m", fmt.Sprintf("Revert %q", summary),
			"-m", fmt.Sprintf("This reverts commit %s.", commit.Hash.String()),
			"-m", message,
		)
		if err != nil {
			return fmt.Errorf("failed to amend revert message: %w", err)
		}
	}
	return nil
}

// CherryPick applies the changes of hash onto the current branch as a new
// commit. Same conflict contract as Revert: the mid-cherry-pick state is
// preserved for the caller to inspect or abort.
func (s *CommitService) CherryPick(ctx context.Context, hash string) error {
	if _, err := s.repo.resolveCommit(hash); err != nil {
		return err
	}

	dirty, err := s.repo.IsDirty()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("%w: %s", ErrDirtyWorktree, s.repo.path)
	}

	if _, err := s.repo.run.Run(ctx, "cherry-pick", hash); err != nil {
		if s.repo.hasState(ctx, "CHERRY_PICK_HEAD") {
			return &ConflictError{Op: "cherry-pick", Ref: hash, Detail: commandDetail(err), Err: err}
		}
		return fmt.Errorf("failed to cherry-pick %s: %w", hash, err)
	}
	s.repo.log.Debug("cherry-picked commit", "hash", hash)
	return nil
}

// AbortCherryPick aborts an in-progress cherry-pick.
func (s *CommitService) AbortCherryPick(ctx context.Context) error {
	if _, err := s.repo.run.Run(ctx, "cherry-pick", "--abort"); err != nil {
		return fmt.Errorf("failed to abort cherry-pick: %w", err)
	}
	return nil
}

// ApplyPatch applies a mailbox-format patch file as a new commit.
// keepSquareBrackets preserves literal bracketed tags in the commit
// subject instead of letting the engine strip them.
func (s *CommitService) ApplyPatch(ctx context.Context, patchPath string, keepSquareBrackets bool) error {
	absPath, err := filepath.Abs(patchPath)
	if err != nil {
		return fmt.Errorf("failed to resolve patch path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("patch file %s not found: %w", absPath, err)
	}

	args := []string{"am"}
	if keepSquareBrackets {
		// Keeps bracketed tags like [WIP] while still dropping [PATCH].
		args = append(args, "--keep-non-patch")
	}
	args = append(args, absPath)

	if _, err := s.repo.run.Run(ctx, args...); err != nil {
		if s.repo.hasState(ctx, "rebase-apply") {
			return &ConflictError{Op: "am", Ref: patchPath, Detail: commandDetail(err), Err: err}
		}
		return fmt.Errorf("failed to apply patch %s: %w", absPath, err)
	}
	s.repo.log.Debug("applied patch", "patch", absPath)
	return nil
}

// AreEqual reports whether two references resolve to the same object
// hash. This is reference equality, not content equality: an annotated
// tag is its own object and does not equal the commit it points at. An
// unresolvable reference fails with ErrReferenceNotFound.
func (s *CommitService) AreEqual(refA, refB string) (bool, error) {
	hashA, err := s.repo.resolveUnpeeled(refA)
	if err != nil {
		return false, err
	}
	hashB, err := s.repo.resolveUnpeeled(refB)
	if err != nil {
		return false, err
	}
	return hashA == hashB, nil
}

// ExistsOnRemote reports whether commitHash is an ancestor of the remote
// branch tip, e.g. ExistsOnRemote(sha, "origin/main"). It is a query: an
// unreachable remote branch or unresolvable hash reports false.
func (s *CommitService) ExistsOnRemote(commitHash, remoteBranch string) bool {
	commit, err := s.repo.resolveCommit(commitHash)
	if err != nil {
		return false
	}
	tip, err := s.repo.resolveCommit(remoteBranch)
	if err != nil {
		return false
	}
	if commit.Hash == tip.Hash {
		return true
	}
	ok, err := commit.IsAncestor(tip)
	if err != nil {
		return false
	}
	return ok
}

// Describe returns tag and patch info for a given reference, based on
// `git describe --all`.
func (s *CommitService) Describe(ctx context.Context, ref string) (Description, error) {
	if _, err := s.repo.resolve(ref); err != nil {
		return Description{}, err
	}

	output, err := s.repo.run.Run(ctx, "describe", "--all", ref)
	if err != nil {
		return Description{}, fmt.Errorf("failed to describe %s: %w", ref, err)
	}

	var desc Description
	parts := strings.SplitN(output, "-g", 2)
	if len(parts) > 0 {
		desc.Tag = strings.TrimPrefix(parts[0], "tags/")
	}
	if len(parts) > 1 {
		desc.Patch = parts[1]
	}
	return desc, nil
}
