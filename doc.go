// Package gitwrap is a thin convenience layer over a git engine. A Repo
// handle binds to a working directory (or creates one via Clone) and
// exposes branch, commit, remote, log and tag operations as simple method
// calls.
//
// Every substantive operation is delegated to the underlying engine:
// go-git for in-process reads and ref plumbing, the git CLI for the
// porcelain subcommands go-git does not implement (rebase, revert,
// cherry-pick, am). This package only adapts call signatures and
// translates engine failures into its error kinds; check them with
// errors.Is against the Err* sentinels.
//
// All operations are synchronous and blocking. A Repo is not safe for
// concurrent mutation: the on-disk repository state is shared. Timeouts
// and retries are the caller's responsibility via context.Context.
package gitwrap
