package gitwrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// TagService exposes tag creation, deletion and pushing.
type TagService struct {
	repo *Repo
}

// Create creates a tag named name pointing at ref. A non-empty message
// creates an annotated tag. An existing name fails with ErrAlreadyExists,
// an unresolvable ref with ErrReferenceNotFound.
func (s *TagService) Create(name, ref, message string) error {
	if _, err := s.repo.repo.Tag(name); err == nil {
		return &AlreadyExistsError{Kind: "tag", Name: name}
	}

	commit, err := s.repo.resolveCommit(ref)
	if err != nil {
		return err
	}

	var opts *git.CreateTagOptions
	if message != "" {
		opts = &git.CreateTagOptions{Message: message}
	}
	if _, err := s.repo.repo.CreateTag(name, commit.Hash, opts); err != nil {
		return fmt.Errorf("failed to create tag %s on %s: %w", name, ref, err)
	}
	s.repo.log.Debug("created tag", "tag", name, "ref", ref)
	return nil
}

// Delete removes a tag from the local repository.
func (s *TagService) Delete(name string) error {
	if err := s.repo.repo.DeleteTag(name); err != nil {
		if errors.Is(err, git.ErrTagNotFound) {
			return &ReferenceNotFoundError{Ref: name}
		}
		return fmt.Errorf("failed to delete tag %s: %w", name, err)
	}
	return nil
}

// Names lists the tags in the repository.
func (s *TagService) Names() ([]string, error) {
	iter, err := s.repo.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return names, nil
}

// Push pushes the named tag to the named remote. An unconfigured remote
// fails with ErrRemoteNotFound, an unknown tag with ErrReferenceNotFound
// and a failed transport with ErrTransport.
func (s *TagService) Push(ctx context.Context, remote, name string) error {
	rem, err := s.repo.repo.Remote(remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return &RemoteNotFoundError{Name: remote}
		}
		return fmt.Errorf("failed to look up remote %s: %w", remote, err)
	}

	if _, err := s.repo.repo.Tag(name); err != nil {
		return &ReferenceNotFoundError{Ref: name}
	}

	refSpec := config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", name, name))
	err = s.repo.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return &TransportError{Op: "push", URL: firstURL(rem.Config()), Err: err}
	}
	s.repo.log.Debug("pushed tag", "tag", name, "remote", remote)
	return nil
}
