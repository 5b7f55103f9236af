package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dtroode/genoguard-server/internal/background"
	"github.com/dtroode/genoguard-server/internal/cache/sqlite"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/repository/postgres"
	"github.com/dtroode/genoguard-server/internal/service"
)

func newCacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and drain the local fallback cache",
	}

	cmd.AddCommand(newCacheShowCmd(opts))
	cmd.AddCommand(newCachePushCmd(opts))

	return cmd
}

func newCacheShowCmd(opts *options) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List cache entries and their record counts",
		Long: `List cache entries and their record counts.

A scope is a user id, or "demo-<session id>" for demo sessions. Without
--scope every entry is listed.

Examples:
  genoguardctl cache show
  genoguardctl cache show --scope 0190c7a4-5b7e-7c1e-9a55-1f2d3e4c5b6a`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := sqlite.NewStore(cmd.Context(), opts.cachePath)
			if err != nil {
				return err
			}
			defer store.Close()

			prefix := ""
			if scope != "" {
				prefix = scope + ":"
			}
			keys, err := store.Keys(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no cache entries")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tRECORDS")
			for _, key := range keys {
				fmt.Fprintf(w, "%s\t%s\n", key, describeEntry(cmd.Context(), store, key))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "cache scope to list")
	return cmd
}

func describeEntry(ctx context.Context, store *sqlite.Store, key string) string {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return color.New(color.FgRed).Sprint("unreadable")
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return "0"
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return color.New(color.FgYellow).Sprint("malformed")
	}
	return fmt.Sprintf("%d", len(items))
}

func newCachePushCmd(opts *options) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a user's locally saved records to the remote store",
		Long: `Push a user's locally saved records to the remote store.

Sequences are pushed before analysis results. Records that fail to push
stay in the cache for a later attempt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", user, err)
			}

			report, err := pushLocal(cmd, opts, model.Identity{UserID: userID})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sequences: %s pushed, %s failed\n", countColor(report.Sequences.Success, color.FgGreen), countColor(report.Sequences.Failed, color.FgRed))
			fmt.Fprintf(out, "results:   %s pushed, %s failed\n", countColor(report.Results.Success, color.FgGreen), countColor(report.Results.Failed, color.FgRed))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user id whose cached records are pushed")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func pushLocal(cmd *cobra.Command, opts *options, identity model.Identity) (service.PushReport, error) {
	ctx := cmd.Context()
	log := opts.logger(cmd)

	db, err := postgres.NewConnection(ctx, opts.dsn)
	if err != nil {
		return service.PushReport{}, err
	}
	defer db.Close()

	store, err := sqlite.NewStore(ctx, opts.cachePath)
	if err != nil {
		return service.PushReport{}, err
	}
	defer store.Close()

	runner := background.NewRunner(log, nil)
	defer func() { _ = runner.Close(context.Background()) }()

	_, _, migration := service.NewSync(service.SyncDeps{
		Sequences: postgres.NewSequenceRepository(db),
		Results:   postgres.NewResultRepository(db),
		Cache:     store,
		Scheduler: runner,
		Logger:    log,
	})

	return migration.Push(ctx, identity)
}

func countColor(n int, attr color.Attribute) string {
	if n == 0 {
		return "0"
	}
	return color.New(attr).Sprint(n)
}
