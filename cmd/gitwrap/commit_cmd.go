package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit operations: revert, cherry-pick, apply-patch, compare",
	}
	cmd.AddCommand(
		newRevertCmd(a),
		newCherryPickCmd(a),
		newAbortCherryPickCmd(a),
		newApplyPatchCmd(a),
		newAreEqualCmd(a),
		newDescribeCmd(a),
	)
	return cmd
}

func newRevertCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "revert <hash>",
		Short: "Create a commit inversing the changes of a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Commit.Revert(cmd.Context(), args[0], message)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "extra context appended to the revert message")
	return cmd
}

func newCherryPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cherry-pick <hash>",
		Short: "Apply a commit's changes onto the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Commit.CherryPick(cmd.Context(), args[0])
		},
	}
}

func newAbortCherryPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "abort-cherry-pick",
		Short: "Abort an in-progress cherry-pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Commit.AbortCherryPick(cmd.Context())
		},
	}
}

func newApplyPatchCmd(a *app) *cobra.Command {
	var keepBrackets bool

	cmd := &cobra.Command{
		Use:   "apply-patch <file>",
		Short: "Apply a mailbox-format patch file as a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Commit.ApplyPatch(cmd.Context(), args[0], keepBrackets)
		},
	}

	cmd.Flags().BoolVar(&keepBrackets, "keep-brackets", false, "preserve bracketed tags in the commit subject")
	return cmd
}

func newAreEqualCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "are-equal <ref-a> <ref-b>",
		Short: "Report whether two references resolve to the same object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			equal, err := repo.Commit.AreEqual(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%t\n", equal)
			return nil
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <ref>",
		Short: "Show tag and patch info for a reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			desc, err := repo.Commit.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("tag: %s\npatch: %s\n", desc.Tag, desc.Patch)
			return nil
		},
	}
}
