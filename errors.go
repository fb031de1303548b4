package gitwrap

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions. Callers are expected to
// check them with errors.Is.
var (
	// ErrNotARepository indicates that a path does not contain a usable
	// git repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrReferenceNotFound indicates that a branch, tag or commit
	// reference does not resolve to an object in the repository.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrRemoteNotFound indicates that a remote name is not configured.
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrConflict indicates that a rebase, revert, cherry-pick or patch
	// application produced unmerged changes. The repository is left in the
	// engine's native conflict state so the caller can inspect or abort.
	ErrConflict = errors.New("merge conflict")

	// ErrTransport indicates that a clone, fetch or push failed due to a
	// network or permission failure.
	ErrTransport = errors.New("transport failure")

	// ErrAlreadyExists indicates a create operation where the target name
	// or path already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrDirtyWorktree indicates that the working tree has uncommitted
	// changes and the requested operation refuses to run on top of them.
	ErrDirtyWorktree = errors.New("dirty worktree")
)

// ReferenceNotFoundError reports a reference that failed to resolve.
type ReferenceNotFoundError struct {
	Ref string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("reference %q not found", e.Ref)
}

// Is returns true if the target error is ErrReferenceNotFound.
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// RemoteNotFoundError reports an unconfigured remote name.
type RemoteNotFoundError struct {
	Name string
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("no remote named %q", e.Name)
}

// Is returns true if the target error is ErrRemoteNotFound.
func (e *RemoteNotFoundError) Is(target error) bool {
	return target == ErrRemoteNotFound
}

// ConflictError reports unmerged changes from a history-rewriting
// operation. Op is the git operation ("rebase", "revert", "cherry-pick",
// "am"), Ref the reference being applied, Detail the engine's output.
type ConflictError struct {
	Op     string
	Ref    string
	Detail string
	Err    error
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s of %s stopped on a conflict", e.Op, e.Ref)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConflictError) Unwrap() error { return e.Err }

// Is returns true if the target error is ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// TransportError reports a failed network operation.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s against %s failed: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is returns true if the target error is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// AlreadyExistsError reports a create operation whose target already
// exists. Kind is "branch", "tag" or "path".
type AlreadyExistsError struct {
	Kind string
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

// Is returns true if the target error is ErrAlreadyExists.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}
