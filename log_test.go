package gitwrap_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwrap.dev/gitwrap"
	"gitwrap.dev/gitwrap/testhelpers"
)

func TestDiff(t *testing.T) {
	repo := testhelpers.NewRepo(t)
	first := repo.CommitFile(t, "a.txt", "old content\n", "first")
	second := repo.CommitFile(t, "a.txt", "new content\n", "second")

	w, err := gitwrap.Open(repo.Dir)
	require.NoError(t, err)

	diff, err := w.Log.Diff(first, second)
	require.NoError(t, err)
	require.Contains(t, diff, "-old content")
	require.Contains(t, diff, "+new content")

	diff, err = w.Log.Diff(first, first)
	require.NoError(t, err)
	require.Empty(t, diff)

	_, err = w.Log.Diff("no-such-ref", second)
	require.ErrorIs(t, err, gitwrap.ErrReferenceNotFound)
}

func TestGrep(t *testing.T) {
	t.Run("yields matches lazily, newest first", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "1", "feat: first")
		repo.CommitFile(t, "a.txt", "2", "chore: cleanup")
		repo.CommitFile(t, "a.txt", "3", "feat: second")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		iter, err := w.Log.Grep(`^feat:`, gitwrap.GrepOptions{})
		require.NoError(t, err)
		defer iter.Close()

		match, err := iter.Next()
		require.NoError(t, err)
		require.Equal(t, "feat: second", match.Summary)

		match, err = iter.Next()
		require.NoError(t, err)
		require.Equal(t, "feat: first", match.Summary)

		_, err = iter.Next()
		require.Equal(t, io.EOF, err)
		// Exhausted iterators stay exhausted.
		_, err = iter.Next()
		require.Equal(t, io.EOF, err)
	})

	t.Run("reverse yields matches oldest first", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "1", "feat: first")
		repo.CommitFile(t, "a.txt", "2", "feat: second")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		iter, err := w.Log.Grep(`^feat:`, gitwrap.GrepOptions{Reverse: true})
		require.NoError(t, err)
		defer iter.Close()

		var summaries []string
		require.NoError(t, iter.ForEach(func(c gitwrap.CommitInfo) error {
			summaries = append(summaries, c.Summary)
			return nil
		}))
		require.Equal(t, []string{"feat: first", "feat: second"}, summaries)
	})

	t.Run("restricts the walk by branch and path", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "1", "feat: touch a")
		repo.CreateAndCheckoutBranch(t, "feature")
		repo.CommitFile(t, "b.txt", "2", "feat: touch b")
		repo.CheckoutBranch(t, "main")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		iter, err := w.Log.Grep(`^feat:`, gitwrap.GrepOptions{Branch: "feature", Path: "b.txt"})
		require.NoError(t, err)
		defer iter.Close()

		match, err := iter.Next()
		require.NoError(t, err)
		require.Equal(t, "feat: touch b", match.Summary)

		_, err = iter.Next()
		require.Equal(t, io.EOF, err)
	})

	t.Run("rejects an invalid pattern", func(t *testing.T) {
		repo := testhelpers.NewRepo(t)
		repo.CommitFile(t, "a.txt", "1", "initial")

		w, err := gitwrap.Open(repo.Dir)
		require.NoError(t, err)

		_, err = w.Log.Grep(`[unclosed`, gitwrap.GrepOptions{})
		require.Error(t, err)
	})
}

func TestCommits(t *testing.T) {
	repo := testhelpers.NewRepo(t)
	repo.CommitFile(t, "a.txt", "1", "first")
	repo.CommitFile(t, "b.txt", "2", "second")
	repo.CommitFile(t, "a.txt", "3", "third")

	w, err := gitwrap.Open(repo.Dir)
	require.NoError(t, err)

	t.Run("lists all commits newest first", func(t *testing.T) {
		commits, err := w.Log.Commits(gitwrap.CommitFilter{})
		require.NoError(t, err)
		require.Len(t, commits, 3)
		require.Equal(t, "third", commits[0].Summary)
		require.Equal(t, "first", commits[2].Summary)
		require.Equal(t, "Test User", commits[0].Author)
		require.Equal(t, "test@example.com", commits[0].Email)
		require.Len(t, commits[0].Hash, 40)
		require.Len(t, commits[0].ShortHash(), 7)
	})

	t.Run("caps the listing at max count", func(t *testing.T) {
		commits, err := w.Log.Commits(gitwrap.CommitFilter{MaxCount: 2})
		require.NoError(t, err)
		require.Len(t, commits, 2)
		require.Equal(t, "third", commits[0].Summary)
	})

	t.Run("filters by path", func(t *testing.T) {
		commits, err := w.Log.Commits(gitwrap.CommitFilter{Path: "b.txt"})
		require.NoError(t, err)
		require.Len(t, commits, 1)
		require.Equal(t, "second", commits[0].Summary)
	})

	t.Run("fails on an unknown branch", func(t *testing.T) {
		_, err := w.Log.Commits(gitwrap.CommitFilter{Branch: "no-such-branch"})
		require.ErrorIs(t, err, gitwrap.ErrReferenceNotFound)
	})
}

func TestRange(t *testing.T) {
	repo := testhelpers.NewRepo(t)
	repo.CommitFile(t, "a.txt", "1", "initial")
	repo.CreateAndCheckoutBranch(t, "feature")
	repo.CommitFile(t, "b.txt", "2", "feature one")
	repo.CommitFile(t, "c.txt", "3", "feature two")

	w, err := gitwrap.Open(repo.Dir)
	require.NoError(t, err)

	t.Run("lists the commits between two references", func(t *testing.T) {
		commits, err := w.Log.Range(context.Background(), "main", "feature")
		require.NoError(t, err)
		require.Len(t, commits, 2)
		require.Equal(t, "feature two", commits[0].Summary)
		require.Equal(t, "feature one", commits[1].Summary)
		require.Equal(t, "Test User", commits[0].Author)
		require.False(t, commits[0].When.IsZero())
	})

	t.Run("reports an empty range", func(t *testing.T) {
		commits, err := w.Log.Range(context.Background(), "feature", "main")
		require.NoError(t, err)
		require.Empty(t, commits)
	})

	t.Run("fails on an unresolvable bound", func(t *testing.T) {
		_, err := w.Log.Range(context.Background(), "no-such-ref", "feature")
		require.ErrorIs(t, err, gitwrap.ErrReferenceNotFound)
	})

	t.Run("formats short lines", func(t *testing.T) {
		lines, err := w.Log.ShortRange(context.Background(), "main", "feature")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		require.Regexp(t, `^[0-9a-f]{7} feature two$`, lines[0])
		require.Regexp(t, `^[0-9a-f]{7} feature one$`, lines[1])
	})
}
