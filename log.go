package gitwrap

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// LogService exposes history queries: diffs, grepping and commit listing.
type LogService struct {
	repo *Repo
}

// CommitInfo is the metadata of a single commit as returned by history
// queries.
type CommitInfo struct {
	Hash    string
	Author  string
	Email   string
	When    time.Time
	Message string
	Summary string
}

// ShortHash returns the abbreviated commit hash.
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

func newCommitInfo(c *object.Commit) CommitInfo {
	return CommitInfo{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		When:    c.Author.When,
		Message: c.Message,
		Summary: firstLine(c.Message),
	}
}

// Diff returns the textual patch between the trees of two resolvable
// references.
func (s *LogService) Diff(refA, refB string) (string, error) {
	commitA, err := s.repo.resolveCommit(refA)
	if err != nil {
		return "", err
	}
	commitB, err := s.repo.resolveCommit(refB)
	if err != nil {
		return "", err
	}

	treeA, err := commitA.Tree()
	if err != nil {
		return "", fmt.Errorf("failed to read tree of %s: %w", refA, err)
	}
	treeB, err := commitB.Tree()
	if err != nil {
		return "", fmt.Errorf("failed to read tree of %s: %w", refB, err)
	}

	changes, err := object.DiffTree(treeA, treeB)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s and %s: %w", refA, refB, err)
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("failed to render patch: %w", err)
	}
	return patch.String(), nil
}

// GrepOptions restricts a Grep search.
type GrepOptions struct {
	// Branch is the reference to start the walk from. Empty means HEAD.
	Branch string
	// Path limits the search to commits touching the given path.
	Path string
	// Reverse yields matches oldest first.
	Reverse bool
}

// Grep returns a lazy iterator over the commits whose message matches the
// given regular expression. The iterator is finite and not restartable; a
// fresh Grep call re-executes the search.
func (s *LogService) Grep(pattern string, opts GrepOptions) (*GrepIter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid grep pattern: %w", err)
	}

	iter, err := s.logIter(opts.Branch, opts.Path)
	if err != nil {
		return nil, err
	}

	grep := &GrepIter{iter: iter, re: re}
	if opts.Reverse {
		if err := grep.buffer(); err != nil {
			return nil, err
		}
	}
	return grep, nil
}

// CommitFilter restricts a Commits listing.
type CommitFilter struct {
	// Branch is the reference to start the walk from. Empty means HEAD.
	Branch string
	// Path limits the listing to commits touching the given path.
	Path string
	// Since and Until bound the commit time range.
	Since *time.Time
	Until *time.Time
	// MaxCount caps the number of commits returned; zero means no cap.
	MaxCount int
}

// Commits returns the ordered commit metadata matching the filter, newest
// first.
func (s *LogService) Commits(filter CommitFilter) ([]CommitInfo, error) {
	logOpts, err := s.logOptions(filter.Branch, filter.Path)
	if err != nil {
		return nil, err
	}
	logOpts.Since = filter.Since
	logOpts.Until = filter.Until

	iter, err := s.repo.repo.Log(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, newCommitInfo(c))
		if filter.MaxCount > 0 && len(commits) >= filter.MaxCount {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate log: %w", err)
	}
	return commits, nil
}

// Range returns the commits reachable from to but not from from, newest
// first, like `git log from..to`. Both references must resolve.
func (s *LogService) Range(ctx context.Context, from, to string) ([]CommitInfo, error) {
	if _, err := s.repo.resolve(from); err != nil {
		return nil, err
	}
	if _, err := s.repo.resolve(to); err != nil {
		return nil, err
	}

	output, err := s.repo.run.RunRaw(ctx, "log",
		"--format=%H%x1f%an%x1f%ae%x1f%aI%x1f%B%x1e",
		fmt.Sprintf("%s..%s", from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to read log %s..%s: %w", from, to, err)
	}
	return parseLogRecords(output)
}

// ShortRange returns the commits between two references formatted as
// "<short_hash> <summary>" lines.
func (s *LogService) ShortRange(ctx context.Context, from, to string) ([]string, error) {
	commits, err := s.Range(ctx, from, to)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("%s %s", c.ShortHash(), c.Summary))
	}
	return lines, nil
}

func (s *LogService) logIter(branch, path string) (object.CommitIter, error) {
	logOpts, err := s.logOptions(branch, path)
	if err != nil {
		return nil, err
	}
	iter, err := s.repo.repo.Log(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return iter, nil
}

func (s *LogService) logOptions(branch, path string) (*git.LogOptions, error) {
	opts := &git.LogOptions{}
	if branch != "" {
		hash, err := s.repo.resolve(branch)
		if err != nil {
			return nil, err
		}
		opts.From = hash
	}
	if path != "" {
		opts.PathFilter = func(p string) bool {
			return p == path || strings.HasPrefix(p, path+"/")
		}
	}
	return opts, nil
}

func parseLogRecords(output string) ([]CommitInfo, error) {
	commits := []CommitInfo{}
	for _, record := range strings.Split(output, "\x1e") {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		fields := strings.SplitN(record, "\x1f", 5)
		if len(fields) != 5 {
			return nil, fmt.Errorf("malformed log record: %q", record)
		}
		when, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return nil, fmt.Errorf("malformed commit date %q: %w", fields[3], err)
		}
		message := strings.TrimRight(fields[4], "\n")
		commits = append(commits, CommitInfo{
			Hash:    fields[0],
			Author:  fields[1],
			Email:   fields[2],
			When:    when,
			Message: message,
			Summary: firstLine(message),
		})
	}
	return commits, nil
}

// GrepIter is a lazy iterator over grep matches. It is finite and not
// restartable.
type GrepIter struct {
	iter object.CommitIter
	re   *regexp.Regexp

	buffered []CommitInfo
	pos      int
	done     bool
}

// Next returns the next matching commit, or io.EOF when the walk is
// exhausted.
func (g *GrepIter) Next() (CommitInfo, error) {
	if g.buffered != nil {
		if g.pos >= len(g.buffered) {
			return CommitInfo{}, io.EOF
		}
		c := g.buffered[g.pos]
		g.pos++
		return c, nil
	}

	if g.done {
		return CommitInfo{}, io.EOF
	}
	for {
		commit, err := g.iter.Next()
		if err == io.EOF {
			g.done = true
			return CommitInfo{}, io.EOF
		}
		if err != nil {
			return CommitInfo{}, fmt.Errorf("failed to walk commits: %w", err)
		}
		if g.re.MatchString(commit.Message) {
			return newCommitInfo(commit), nil
		}
	}
}

// ForEach calls fn for every remaining match.
func (g *GrepIter) ForEach(fn func(CommitInfo) error) error {
	for {
		commit, err := g.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(commit); err != nil {
			return err
		}
	}
}

// Close releases the underlying commit walk.
func (g *GrepIter) Close() {
	if g.iter != nil {
		g.iter.Close()
	}
}

// buffer drains the walk into memory in reverse order, oldest match
// first.
func (g *GrepIter) buffer() error {
	var matches []CommitInfo
	defer g.iter.Close()
	err := g.iter.ForEach(func(c *object.Commit) error {
		if g.re.MatchString(c.Message) {
			matches = append(matches, newCommitInfo(c))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk commits: %w", err)
	}
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	if matches == nil {
		matches = []CommitInfo{}
	}
	g.buffered = matches
	return nil
}
