package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/strogmv/postapi/internal/app"
	"github.com/strogmv/postapi/internal/service"
)

func SeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all posts and tags with sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := app.New(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := c.Close(ctx); err != nil {
					slog.Error("release resources", "error", err)
				}
			}()

			res, err := service.Seed(ctx, c.RepoPost, c.RepoTag)
			if err != nil {
				return err
			}
			slog.Info("data seeded successfully",
				"deleted_posts", res.DeletedPosts,
				"deleted_tags", res.DeletedTags,
				"tags", len(res.Tags),
				"posts", len(res.Posts),
			)
			return nil
		},
	}
}
