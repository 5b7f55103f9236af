package main

import (
	"github.com/spf13/cobra"

	"github.com/dtroode/genoguard-server/internal/config"
	"github.com/dtroode/genoguard-server/internal/logger"
)

type options struct {
	dsn       string
	cachePath string
	logLevel  int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "genoguardctl",
		Short:         "Administer the GenoGuard remote store and local cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dsn") {
				opts.dsn = cfg.Database.DSN
			}
			if !cmd.Flags().Changed("cache") {
				opts.cachePath = cfg.Cache.Path
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "postgres DSN (default from DATABASE_DSN)")
	cmd.PersistentFlags().StringVar(&opts.cachePath, "cache", "", "local cache path (default from CACHE_PATH)")
	cmd.PersistentFlags().IntVar(&opts.logLevel, "log-level", 4, "slog level for diagnostics")

	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newCacheCmd(opts))

	return cmd
}

func (o *options) logger(cmd *cobra.Command) *logger.Logger {
	return logger.NewWithWriter(o.logLevel, cmd.ErrOrStderr())
}
