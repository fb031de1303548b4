package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitwrap.dev/gitwrap"
)

func newBranchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Branch operations: create, exists, reset, rebase",
	}
	cmd.AddCommand(
		newBranchCreateCmd(a),
		newBranchExistsCmd(a),
		newBranchResetCmd(a),
		newBranchRebaseCmd(a),
		newBranchAbortRebaseCmd(a),
	)
	return cmd
}

func newBranchCreateCmd(a *app) *cobra.Command {
	var (
		start    string
		checkout bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a branch at a start point (default HEAD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Branch.Create(args[0], start, gitwrap.CreateOptions{
				Checkout: checkout,
				Force:    force,
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "reference to branch from (default HEAD)")
	cmd.Flags().BoolVar(&checkout, "checkout", false, "check out the new branch")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing branch")
	return cmd
}

func newBranchExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <name>",
		Short: "Report whether a local branch exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			fmt.Printf("%t\n", repo.Branch.Exists(args[0]))
			return nil
		},
	}
}

func newBranchResetCmd(a *app) *cobra.Command {
	var soft bool

	cmd := &cobra.Command{
		Use:   "reset <branch> <ref>",
		Short: "Move a branch pointer to a reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Branch.Reset(cmd.Context(), args[0], args[1], !soft)
		},
	}

	cmd.Flags().BoolVar(&soft, "soft", false, "move the pointer without touching the working tree")
	return cmd
}

func newBranchRebaseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rebase <branch> <onto>",
		Short: "Replay a branch's commits on top of a reference",
		Long: `Replay a branch's commits on top of a commit hash or another branch's tip.

On conflict the repository is left in git's native mid-rebase state;
inspect it or run 'gitwrap branch abort-rebase'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			if err := repo.Branch.RebaseToHash(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s\n", styled(successStyle,
				fmt.Sprintf("Rebased %s onto %s", args[0], args[1]), a.color))
			return nil
		},
	}
}

func newBranchAbortRebaseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "abort-rebase",
		Short: "Abort an in-progress rebase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Branch.AbortRebase(cmd.Context())
		},
	}
}
