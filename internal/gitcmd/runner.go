// Package gitcmd executes git subcommands that the in-process engine does
// not implement (rebase, revert, cherry-pick, am, describe, cherry).
package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes git commands in a fixed working directory.
type Runner struct {
	dir string
}

// New returns a Runner bound to the given working directory.
func New(dir string) *Runner {
	return &Runner{dir: dir}
}

// Dir returns the working directory the runner executes in.
func (r *Runner) Dir() string {
	return r.dir
}

// Run executes a git command and returns its trimmed stdout.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, true, args...)
}

// RunRaw executes a git command and returns its stdout untrimmed.
func (r *Runner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, false, args...)
}

// RunLines executes a git command and returns its stdout split into lines,
// or an empty slice when there was no output.
func (r *Runner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

func (r *Runner) run(ctx context.Context, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.dir != "" {
		cmd.Dir = r.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", &CommandError{
			Args:   args,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// CommandError reports a failed git command with its captured output.
type CommandError struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\nstderr: " + s
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		msg += "\nstdout: " + s
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }
