package main

import (
	"github.com/spf13/cobra"

	"github.com/strogmv/postapi/internal/config"
	"github.com/strogmv/postapi/internal/pkg/logger"
)

type rootOptions struct {
	envFile string
	cfg     *config.Config
}

func RootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "postapi",
		Short:         "Blog post and tag HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			logger.InitWriter(cmd.OutOrStdout(), cfg.LogLevel)
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	cmd.AddCommand(
		ServeCmd(opts),
		SeedCmd(opts),
	)
	return cmd
}
