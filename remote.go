package gitwrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// RemoteService exposes remote enumeration and fetching.
type RemoteService struct {
	repo *Repo
}

// Names returns the configured remote names. It never fails; a repository
// without remotes yields an empty slice.
func (s *RemoteService) Names() []string {
	names := []string{}
	remotes, err := s.repo.repo.Remotes()
	if err != nil {
		return names
	}
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	return names
}

// Add configures a new remote and probes it with a fetch. On probe
// failure the remote is removed again. The result is reported as a
// boolean, matching the query contract: Add never returns an error.
func (s *RemoteService) Add(ctx context.Context, name, url string) bool {
	s.repo.log.Debug("adding remote", "name", name, "url", url)

	remote, err := s.repo.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		s.repo.log.Debug("failed to create remote", "name", name, "error", err)
		return false
	}

	err = remote.FetchContext(ctx, &git.FetchOptions{})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.repo.log.Debug("failed to fetch new remote, removing it",
			"name", name, "error", err)
		_ = s.repo.repo.DeleteRemote(name)
		return false
	}
	return true
}

// Fetch fetches from the named remote. An unconfigured name fails with
// ErrRemoteNotFound, a failed transport with ErrTransport. Nothing is
// retried; being already up to date is success.
func (s *RemoteService) Fetch(ctx context.Context, name string) error {
	remote, err := s.repo.repo.Remote(name)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return &RemoteNotFoundError{Name: name}
		}
		return fmt.Errorf("failed to look up remote %s: %w", name, err)
	}

	err = remote.FetchContext(ctx, &git.FetchOptions{})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return &TransportError{Op: "fetch", URL: firstURL(remote.Config()), Err: err}
	}
	return nil
}

func firstURL(cfg *config.RemoteConfig) string {
	if len(cfg.URLs) > 0 {
		return cfg.URLs[0]
	}
	return ""
}
