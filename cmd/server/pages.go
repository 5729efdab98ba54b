package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/page-comments-api/internal/repository"
	"github.com/spf13/cobra"
)

func newPagesCmd() *cobra.Command {
	pages := &cobra.Command{
		Use:   "pages",
		Short: "Manage the pages that accept comments",
	}

	pages.AddCommand(&cobra.Command{
		Use:   "add <slug>...",
		Short: "Register pages; existing slugs are left alone",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			repos := repository.New(db)
			added, err := repos.Page.Register(cmd.Context(), args...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %d of %d pages\n", added, len(args))
			return nil
		},
	})

	pages.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			repos := repository.New(db)
			list, err := repos.Page.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%s\n", p.Slug, p.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	})

	return pages
}
