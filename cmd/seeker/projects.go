package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"seeker/internal/errors"
	"seeker/internal/render"
)

func (rt *rootOptions) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List or add recorded projects",
	}
	cmd.AddCommand(rt.projectsListCmd())
	cmd.AddCommand(rt.projectsAddCmd())
	return cmd
}

func (rt *rootOptions) projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := rt.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			projects, err := repo.SelectAll()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, p := range projects {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					render.ProjectInitials(p.Name), p.Name, p.Path, humanize.Time(p.CreatedAt))
			}
			return tw.Flush()
		},
	}
}

func (rt *rootOptions) projectsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [directory]",
		Short: "Record a directory as a project",
		Long:  `Record a directory as a project. Defaults to the current directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("error resolving %s: %w", dir, err)
			}
			info, err := os.Stat(path)
			if err != nil {
				return errors.FromOS("cannot add project", path, err)
			}
			if !info.IsDir() {
				return errors.NewFileError("not a directory", path, errors.InvalidPath, nil)
			}

			repo, err := rt.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			p, err := repo.Record(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s (%s)\n", p.Name, p.Path)
			return nil
		},
	}
}
