package gitwrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// CloneOptions configures a clone.
type CloneOptions struct {
	// Bare clones without a working tree.
	Bare bool
	// RemoteName overrides the name given to the clone source remote.
	// Empty means the engine default ("origin").
	RemoteName string
}

// Clone clones the repository at url into path and returns a handle bound
// to the new clone. A transport or permission failure maps to ErrTransport.
func Clone(ctx context.Context, url, path string, opts CloneOptions, repoOpts ...Option) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	cloneOpts := &git.CloneOptions{URL: url}
	if opts.RemoteName != "" {
		cloneOpts.RemoteName = opts.RemoteName
	}

	repo, err := git.PlainCloneContext(ctx, absPath, opts.Bare, cloneOpts)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return nil, &AlreadyExistsError{Kind: "path", Name: absPath}
		}
		return nil, &TransportError{Op: "clone", URL: url, Err: err}
	}

	return newRepo(repo, absPath, repoOpts...), nil
}

// Reclone clones url into path, recreating the target when it already
// exists. Without destroy, an existing non-empty path fails with
// ErrAlreadyExists. With destroy, the directory is removed first.
func Reclone(ctx context.Context, url, path string, destroy bool, opts CloneOptions, repoOpts ...Option) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	empty, err := isMissingOrEmpty(absPath)
	if err != nil {
		return nil, err
	}
	if !empty {
		if !destroy {
			return nil, &AlreadyExistsError{Kind: "path", Name: absPath}
		}
		if err := os.RemoveAll(absPath); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", absPath, err)
		}
	}

	return Clone(ctx, url, absPath, opts, repoOpts...)
}

func isMissingOrEmpty(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	defer dir.Close()

	_, err = dir.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	return false, nil
}
