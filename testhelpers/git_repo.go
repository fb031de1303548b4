// Package testhelpers builds real throwaway git repositories for tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo is a real git repository in a temporary directory, driven
// through the git CLI.
type GitRepo struct {
	Dir string
}

// NewRepo initializes a fresh repository under t.TempDir with a
// configured test user and "main" as the default branch.
func NewRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	cmd := exec.Command("git",
		"-c", "init.defaultBranch=main",
		"-c", "core.autocrlf=false",
		"init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init repo: %v\n%s", err, out)
	}

	repo := &GitRepo{Dir: dir}
	repo.MustRun(t, "config", "user.name", "Test User")
	repo.MustRun(t, "config", "user.email", "test@example.com")
	return repo
}

// NewBareRepo initializes a bare repository under t.TempDir, usable as a
// push target.
func NewBareRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	cmd := exec.Command("git", "init", "--bare", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init bare repo: %v\n%s", err, out)
	}
	return &GitRepo{Dir: dir}
}

// Run executes a git command in the repository directory and returns its
// trimmed output.
func (r *GitRepo) Run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output)), nil
}

// MustRun executes a git command and fails the test on error.
func (r *GitRepo) MustRun(t *testing.T, args ...string) string {
	t.Helper()
	output, err := r.Run(args...)
	if err != nil {
		t.Fatalf("%v", err)
	}
	return output
}

// WriteFile writes content to a file inside the repository.
func (r *GitRepo) WriteFile(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// CommitFile writes a file, stages it and commits it with the given
// message. It returns the new commit's hash.
func (r *GitRepo) CommitFile(t *testing.T, name, content, message string) string {
	t.Helper()
	r.WriteFile(t, name, content)
	r.MustRun(t, "add", name)
	r.MustRun(t, "commit", "-m", message)
	return r.Head(t)
}

// CreateAndCheckoutBranch creates a branch at HEAD and switches to it.
func (r *GitRepo) CreateAndCheckoutBranch(t *testing.T, name string) {
	t.Helper()
	r.MustRun(t, "checkout", "-b", name)
}

// CheckoutBranch switches to an existing branch.
func (r *GitRepo) CheckoutBranch(t *testing.T, name string) {
	t.Helper()
	r.MustRun(t, "checkout", name)
}

// Head returns the hash HEAD currently points at.
func (r *GitRepo) Head(t *testing.T) string {
	t.Helper()
	return r.MustRun(t, "rev-parse", "HEAD")
}

// Ref returns the hash a reference resolves to.
func (r *GitRepo) Ref(t *testing.T, ref string) string {
	t.Helper()
	return r.MustRun(t, "rev-parse", ref)
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *GitRepo) CurrentBranch(t *testing.T) string {
	t.Helper()
	return r.MustRun(t, "rev-parse", "--abbrev-ref", "HEAD")
}

// CommitMessages lists the commit subjects reachable from HEAD, newest
// first.
func (r *GitRepo) CommitMessages(t *testing.T) []string {
	t.Helper()
	output := r.MustRun(t, "log", "--format=%s")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

// AddFileRemote configures a remote pointing at another local repository.
func (r *GitRepo) AddFileRemote(t *testing.T, name string, other *GitRepo) {
	t.Helper()
	r.MustRun(t, "remote", "add", name, other.Dir)
}

// FormatPatch writes the mailbox patch of the commit at ref into outDir
// and returns the patch file path.
func (r *GitRepo) FormatPatch(t *testing.T, ref, outDir string) string {
	t.Helper()
	output := r.MustRun(t, "format-patch", "-1", ref, "-o", outDir)
	lines := strings.Split(output, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
