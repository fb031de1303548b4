package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remotes",
		Short: "List the configured remote names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			for _, name := range repo.Remote.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newFetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [remote]",
		Short: "Fetch from a remote (default from config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			remote := a.remoteOrDefault(args, 0)
			if err := repo.Remote.Fetch(cmd.Context(), remote); err != nil {
				return err
			}
			fmt.Printf("%s\n", styled(successStyle, "Fetched "+remote, a.color))
			return nil
		},
	}
}
