package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dtroode/genoguard-server/database"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending remote store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(cmd.Context(), opts.dsn); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s migrations applied\n", color.New(color.FgGreen).Sprint("OK"))
			return nil
		},
	}
}
