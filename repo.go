package gitwrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"gitwrap.dev/gitwrap/internal/gitcmd"
)

// Repo is a handle to an opened git repository. It exposes the branch,
// commit, remote, log and tag operations as sub-facades bound to the same
// underlying engine. A Repo is not safe for concurrent mutation; the
// on-disk repository state (HEAD, index, working tree) is shared.
type Repo struct {
	repo *git.Repository
	run  *gitcmd.Runner
	path string
	log  *slog.Logger

	Branch *BranchService
	Commit *CommitService
	Remote *RemoteService
	Log    *LogService
	Tag    *TagService
}

// Option configures a Repo handle.
type Option func(*Repo)

// WithLogger injects a logger used for debug-level operation tracing.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repo) {
		if logger != nil {
			r.log = logger
		}
	}
}

// Open opens the repository at path. It returns ErrNotARepository when the
// path does not contain one.
func Open(path string, opts ...Option) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, absPath)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", absPath, err)
	}

	return newRepo(repo, absPath, opts...), nil
}

func newRepo(repo *git.Repository, path string, opts ...Option) *Repo {
	r := &Repo{
		repo: repo,
		run:  gitcmd.New(path),
		path: path,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.Branch = &BranchService{repo: r}
	r.Commit = &CommitService{repo: r}
	r.Remote = &RemoteService{repo: r}
	r.Log = &LogService{repo: r}
	r.Tag = &TagService{repo: r}
	return r
}

// Path returns the working directory the handle is bound to.
func (r *Repo) Path() string {
	return r.path
}

// IsDirty reports whether the working tree has uncommitted changes.
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

// CurrentBranch returns the short name of the branch HEAD is on.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return head.Name().Short(), nil
}

// gitDir returns the absolute path of the repository's .git directory.
func (r *Repo) gitDir(ctx context.Context) (string, error) {
	dir, err := r.run.Run(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate git dir: %w", err)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.path, dir)
	}
	return dir, nil
}

// hasState reports whether a state file or directory (REBASE_HEAD,
// CHERRY_PICK_HEAD, rebase-merge, ...) exists inside the git dir. Used to
// tell conflicts apart from plain command failures.
func (r *Repo) hasState(ctx context.Context, name string) bool {
	dir, err := r.gitDir(ctx)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, name))
	return err == nil
}

// resolve maps a reference string (branch, tag, hash, symbolic ref) to a
// hash, following annotated tags to their targets.
func (r *Repo) resolve(ref string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, &ReferenceNotFoundError{Ref: ref}
	}
	return *hash, nil
}

// resolveUnpeeled maps a reference string to the hash of the exact object
// it names. Unlike resolve, an annotated tag yields the tag object's own
// hash, not its target commit, matching `git rev-parse <ref>`.
func (r *Repo) resolveUnpeeled(ref string) (plumbing.Hash, error) {
	if plumbing.IsHash(ref) {
		hash := plumbing.NewHash(ref)
		if r.repo.Storer.HasEncodedObject(hash) != nil {
			return plumbing.ZeroHash, &ReferenceNotFoundError{Ref: ref}
		}
		return hash, nil
	}

	for _, rule := range plumbing.RefRevParseRules {
		name := plumbing.ReferenceName(fmt.Sprintf(rule, ref))
		if resolved, err := r.repo.Reference(name, true); err == nil {
			return resolved.Hash(), nil
		}
	}

	// Not a plain reference; revision expressions like HEAD~1 only ever
	// name commits, so peeling makes no difference here.
	return r.resolve(ref)
}

// resolveCommit resolves a reference down to a commit object, following
// annotated tags.
func (r *Repo) resolveCommit(ref string) (*object.Commit, error) {
	hash, err := r.resolveUnpeeled(ref)
	if err != nil {
		return nil, err
	}
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		// The reference may name an annotated tag object.
		tag, tagErr := r.repo.TagObject(hash)
		if tagErr != nil {
			return nil, &ReferenceNotFoundError{Ref: ref}
		}
		commit, err = tag.Commit()
		if err != nil {
			return nil, &ReferenceNotFoundError{Ref: ref}
		}
	}
	return commit, nil
}
