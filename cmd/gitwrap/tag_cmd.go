package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag operations: create, delete, list, push",
	}
	cmd.AddCommand(
		newTagCreateCmd(a),
		newTagDeleteCmd(a),
		newTagListCmd(a),
		newTagPushCmd(a),
	)
	return cmd
}

func newTagCreateCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "create <name> [ref]",
		Short: "Create a tag pointing at a reference (default HEAD)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			ref := "HEAD"
			if len(args) > 1 {
				ref = args[1]
			}
			return repo.Tag.Create(args[0], ref, message)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "create an annotated tag with this message")
	return cmd
}

func newTagDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a local tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			return repo.Tag.Delete(args[0])
		},
	}
}

func newTagListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the repository's tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			names, err := repo.Tag.Names()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newTagPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push <name> [remote]",
		Short: "Push a tag to a remote (default from config)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			remote := a.remoteOrDefault(args, 1)
			if err := repo.Tag.Push(cmd.Context(), remote, args[0]); err != nil {
				return err
			}
			fmt.Printf("%s\n", styled(successStyle,
				fmt.Sprintf("Pushed tag %s to %s", args[0], remote), a.color))
			return nil
		},
	}
}
