package gitwrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwrap.dev/gitwrap"
	"gitwrap.dev/gitwrap/testhelpers"
)

func TestClone(t *testing.T) {
	t.Run("clones and binds a handle to the new copy", func(t *testing.T) {
		source := testhelpers.NewRepo(t)
		source.CommitFile(t, "a.txt", "a", "initial")

		dest := filepath.Join(t.TempDir(), "clone")
		w, err := gitwrap.Clone(context.Background(), source.Dir, dest, gitwrap.CloneOptions{})
		require.NoError(t, err)
		require.Equal(t, dest, w.Path())
		require.Equal(t, []string{"origin"}, w.Remote.Names())

		clone := &testhelpers.GitRepo{Dir: dest}
		require.Equal(t, source.Head(t), clone.Head(t))
	})

	t.Run("honors a custom remote name", func(t *testing.T) {
		source := testhelpers.NewRepo(t)
		source.CommitFile(t, "a.txt", "a", "initial")

		dest := filepath.Join(t.TempDir(), "clone")
		w, err := gitwrap.Clone(context.Background(), source.Dir, dest,
			gitwrap.CloneOptions{RemoteName: "upstream"})
		require.NoError(t, err)
		require.Equal(t, []string{"upstream"}, w.Remote.Names())
	})

	t.Run("clones bare", func(t *testing.T) {
		source := testhelpers.NewRepo(t)
		source.CommitFile(t, "a.txt", "a", "initial")

		dest := filepath.Join(t.TempDir(), "clone.git")
		_, err := gitwrap.Clone(context.Background(), source.Dir, dest, gitwrap.CloneOptions{Bare: true})
		require.NoError(t, err)
		require.FileExists(t, filepath.Join(dest, "HEAD"))
		require.NoDirExists(t, filepath.Join(dest, ".git"))
	})

	t.Run("fails with a transport error on a bad source", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "clone")
		_, err := gitwrap.Clone(context.Background(), "/no/such/source", dest, gitwrap.CloneOptions{})
		require.ErrorIs(t, err, gitwrap.ErrTransport)
	})

	t.Run("fails when the destination is already a repository", func(t *testing.T) {
		source := testhelpers.NewRepo(t)
		source.CommitFile(t, "a.txt", "a", "initial")
		existing := testhelpers.NewRepo(t)

		_, err := gitwrap.Clone(context.Background(), source.Dir, existing.Dir, gitwrap.CloneOptions{})
		require.ErrorIs(t, err, gitwrap.ErrAlreadyExists)
	})
}

func TestReclone(t *testing.T) {
	t.Run("clones into a missing or empty path", func(t *testing.T) {
		source := testhelpers.NewRepo(t)
		source.CommitFile(t, "a.txt", "a", "initial")

		dest := filepath.Join(t.TempDir(), "clone")
		w, err := gitwrap.Reclone(context.Background(), source.Dir, dest, false, gitwrap.CloneOptions{})
		require.NoError(t, err)
		require.Equal(t, dest, w.Path())
	})

	t.Run("refuses a non-empty path without destroy", func(t *testing.T) {
		source := testhelpers.NewRepo(t)
		source.CommitFile(t, "a.txt", "a", "initial")

		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "occupied.txt"), []byte("x"), 0o644))

		_, err := gitwrap.Reclone(context.Background(), source.Dir, dest, false, gitwrap.CloneOptions{})
		require.ErrorIs(t, err, gitwrap.ErrAlreadyExists)
		require.FileExists(t, filepath.Join(dest, "occupied.txt"))
	})

	t.Run("destroys and reclones a non-empty path", func(t *testing.T) {
		source := testhelpers.NewRepo(t)
		source.CommitFile(t, "a.txt", "a", "initial")

		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "stale.txt"), []byte("x"), 0o644))

		w, err := gitwrap.Reclone(context.Background(), source.Dir, dest, true, gitwrap.CloneOptions{})
		require.NoError(t, err)
		require.Equal(t, dest, w.Path())
		require.NoFileExists(t, filepath.Join(dest, "stale.txt"))
		require.FileExists(t, filepath.Join(dest, "a.txt"))
	})

	t.Run("surfaces a transport error from the fresh clone", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "clone")
		_, err := gitwrap.Reclone(context.Background(), "/no/such/source", dest, true, gitwrap.CloneOptions{})
		require.ErrorIs(t, err, gitwrap.ErrTransport)
	})
}
