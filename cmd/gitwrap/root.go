package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"gitwrap.dev/gitwrap"
)

// app carries the state shared by all commands: target directory, loaded
// config and logger.
type app struct {
	dir     string
	verbose bool

	cfg   Config
	color bool
	log   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "gitwrap",
		Short:         "Thin convenience commands over a git repository",
		Version:       fmt.Sprintf("%s (%s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.dir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.color = useColor(cfg)
			a.log = newLogger(cfg.LogFile, a.verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "repository directory to operate in")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging to stderr")

	cmd.AddCommand(
		newCloneCmd(a),
		newBranchCmd(a),
		newCommitCmd(a),
		newRemoteCmd(a),
		newFetchCmd(a),
		newDiffCmd(a),
		newLogCmd(a),
		newGrepCmd(a),
		newTagCmd(a),
	)
	return cmd
}

// open binds a repository handle to the target directory.
func (a *app) open() (*gitwrap.Repo, error) {
	return gitwrap.Open(a.dir, gitwrap.WithLogger(a.log))
}

// remoteOrDefault falls back to the configured default remote name.
func (a *app) remoteOrDefault(args []string, pos int) string {
	if len(args) > pos {
		return args[pos]
	}
	return a.cfg.DefaultRemote
}
