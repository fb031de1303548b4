package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"gitwrap.dev/gitwrap"
)

func newCloneCmd(a *app) *cobra.Command {
	var (
		bare    bool
		destroy bool
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "clone <url> <path>",
		Short: "Clone a repository, optionally recreating the target directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, path := args[0], args[1]

			if destroy && !yes {
				if _, err := os.Stat(path); err == nil {
					confirmed := false
					prompt := &survey.Confirm{
						Message: fmt.Sprintf("Remove %s and clone fresh?", path),
					}
					if err := survey.AskOne(prompt, &confirmed); err != nil || !confirmed {
						return fmt.Errorf("aborted")
					}
				}
			}

			opts := gitwrap.CloneOptions{Bare: bare}
			repo, err := gitwrap.Reclone(cmd.Context(), url, path, destroy, opts,
				gitwrap.WithLogger(a.log))
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", styled(successStyle,
				fmt.Sprintf("Cloned %s into %s", url, repo.Path()), a.color))
			return nil
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "create a bare repository")
	cmd.Flags().BoolVar(&destroy, "destroy", false, "remove the target directory first if it exists")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the destroy confirmation prompt")
	return cmd
}
