package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gitwrap.dev/gitwrap"
)

const commitDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <ref-a> <ref-b>",
		Short: "Show the textual diff between two references",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			patch, err := repo.Log.Diff(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Print(patch)
			return nil
		},
	}
}

func newLogCmd(a *app) *cobra.Command {
	var (
		branch   string
		path     string
		maxCount int
		since    string
		short    bool
	)

	cmd := &cobra.Command{
		Use:   "log [from..to]",
		Short: "List commits, optionally limited to a range or filter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				from, to, ok := splitRange(args[0])
				if !ok {
					return fmt.Errorf("expected a <from>..<to> range, got %q", args[0])
				}
				if short {
					lines, err := repo.Log.ShortRange(cmd.Context(), from, to)
					if err != nil {
						return err
					}
					for _, line := range lines {
						fmt.Println(line)
					}
					return nil
				}
				commits, err := repo.Log.Range(cmd.Context(), from, to)
				if err != nil {
					return err
				}
				printCommits(a, commits)
				return nil
			}

			filter := gitwrap.CommitFilter{
				Branch:   branch,
				Path:     path,
				MaxCount: maxCount,
			}
			if since != "" {
				when, err := time.Parse(time.DateOnly, since)
				if err != nil {
					return fmt.Errorf("invalid --since date: %w", err)
				}
				filter.Since = &when
			}
			commits, err := repo.Log.Commits(filter)
			if err != nil {
				return err
			}
			printCommits(a, commits)
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "reference to log from (default HEAD)")
	cmd.Flags().StringVar(&path, "path", "", "limit to commits touching a path")
	cmd.Flags().IntVarP(&maxCount, "max-count", "n", 0, "cap the number of commits listed")
	cmd.Flags().StringVar(&since, "since", "", "only commits after this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&short, "short", false, "one '<hash> <summary>' line per commit (ranges only)")
	return cmd
}

func newGrepCmd(a *app) *cobra.Command {
	var (
		branch  string
		path    string
		reverse bool
	)

	cmd := &cobra.Command{
		Use:   "grep <pattern>",
		Short: "List commits whose message matches a regular expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			iter, err := repo.Log.Grep(args[0], gitwrap.GrepOptions{
				Branch:  branch,
				Path:    path,
				Reverse: reverse,
			})
			if err != nil {
				return err
			}
			defer iter.Close()

			return iter.ForEach(func(c gitwrap.CommitInfo) error {
				fmt.Printf("%s %s\n", styled(hashStyle, c.ShortHash(), a.color), c.Summary)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "reference to search from (default HEAD)")
	cmd.Flags().StringVar(&path, "path", "", "limit to commits touching a path")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "oldest match first")
	return cmd
}

func printCommits(a *app, commits []gitwrap.CommitInfo) {
	for _, c := range commits {
		fmt.Printf("commit %s\nAuthor: %s <%s>\nDate: %s\n\n    %s\n\n",
			styled(hashStyle, c.Hash, a.color),
			c.Author, c.Email,
			c.When.Format(commitDateFormat),
			c.Summary)
	}
}

func splitRange(arg string) (from, to string, ok bool) {
	for i := 0; i+1 < len(arg); i++ {
		if arg[i] == '.' && arg[i+1] == '.' {
			return arg[:i], arg[i+2:], arg[:i] != "" && arg[i+2:] != ""
		}
	}
	return "", "", false
}
