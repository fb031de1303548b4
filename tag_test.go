package gitwrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwrap.dev/gitwrap"
	"gitwrap.dev/gitwrap/testhelpers"
)

func TestTagCreate(t *testing.T) {
	t.Run("creates a lightweight tag", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		require.NoError(t, w.Tag.Create("v1.0.0", "HEAD", ""))
		require.Equal(t, repo.Head(t), repo.Ref(t, "v1.0.0"))
		require.Equal(t, "commit", repo.MustRun(t, "cat-file", "-t", "v1.0.0"))
	})

	t.Run("creates an annotated tag with a message", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		require.NoError(t, w.Tag.Create("v1.0.0", "HEAD", "first release"))
		require.Equal(t, "tag", repo.MustRun(t, "cat-file", "-t", "v1.0.0"))
		require.Contains(t, repo.MustRun(t, "tag", "-n", "-l", "v1.0.0"), "first release")
	})

	t.Run("tags an older commit", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		first := repo.CommitFile(t, "a.txt", "a", "first")
		repo.CommitFile(t, "a.txt", "b", "second")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		require.NoError(t, w.Tag.Create("v0.9.0", first, ""))
		require.Equal(t, first, repo.Ref(t, "v0.9.0"))
	})

	t.Run("fails on a duplicate name", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		require.NoError(t, w.Tag.Create("v1.0.0", "HEAD", ""))
		err = w.Tag.Create("v1.0.0", "HEAD", "")
		require.ErrorIs(t, err, gitwrap.ErrAlreadyExists)
	})

	t.Run("fails on an unresolvable ref", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		err = w.Tag.Create("v1.0.0", "no-such-ref", "")
		require.ErrorIs(t, err, gitwrap.ErrReferenceNotFound)
	})
}

func TestTagDelete(t *testing.T) {
	repo := testhelpers.NewRepo(t)
	repo.CommitFile(t, "a.txt", "a", "initial")
	repo.MustRun(t, "tag", "v1.0.0")

	w, err := gitwrap.Open(repo.Dir)
	require.NoError(t, err)

	require.NoError(t, w.Tag.Delete("v1.0.0"))
	require.Empty(t, repo.MustRun(t, "tag", "-l"))

	err = w.Tag.Delete("v1.0.0")
	require.ErrorIs(t, err, gitwrap.ErrReferenceNotFound)
}

func TestTagNames(t *testing.T) {
	repo := testhelpers.NewRepo(t)
	repo.CommitFile(t, "a.txt", "a", "initial")

	w, err := gitwrap.Open(repo.Dir)
	require.NoError(t, err)

	names, err := w.Tag.Names()
	require.NoError(t, err)
	require.Empty(t, names)

	repo.MustRun(t, "tag", "v1.0.0")
	repo.MustRun(t, "tag", "-a", "v1.1.0", "-m", "annotated")

	names, err = w.Tag.Names()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"v1.0.0", "v1.1.0"}, names)
}

func TestTagPush(t *testing.T) {
	t.Run("pushes the tag to the remote", func(t *testing.T) {
		bare := testhelpers.NewBareRepo(t)

		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")
		repo.AddFileRemote(t, "origin", bare)
		repo.MustRun(t, "tag", "v1.0.0")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		require.NoError(t, w.Tag.Push(context.Background(), "origin", "v1.0.0"))
		require.Equal(t, repo.Head(t), bare.Ref(t, "v1.0.0"))

		// Pushing again is already up to date, still success.
		require.NoError(t, w.Tag.Push(context.Background(), "origin", "v1.0.0"))
	})

	t.Run("fails on an unknown remote", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")
		repo.MustRun(t, "tag", "v1.0.0")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		err = w.Tag.Push(context.Background(), "nowhere", "v1.0.0")
		require.ErrorIs(t, err, gitwrap.ErrRemoteNotFound)
	})

	t.Run("fails on an unknown tag", func(t *testing.T) {
		bare := testhelpers.NewBareRepo(t)

		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")
		repo.AddFileRemote(t, "origin", bare)

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		err = w.Tag.Push(context.Background(), "origin", "v9.9.9")
		require.ErrorIs(t, err, gitwrap.ErrReferenceNotFound)
	})

	t.Run("fails with a transport error on an unreachable remote", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "a", "initial")
		repo.MustRun(t, "remote", "add", "broken", "/no/such/remote")
		repo.MustRun(t, "tag", "v1.0.0")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		err = w.Tag.Push(context.Background(), "broken", "v1.0.0")
		require.ErrorIs(t, err, gitwrap.ErrTransport)
	})
}
