package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/genoguard-server/internal/cache/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCacheShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := sqlite.NewStore(context.Background(), path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "u1:patient-sequences", `[{"id":"a"},{"id":"b"}]`))
	require.NoError(t, store.Set(ctx, "u1:analysis-results", `not json`))
	require.NoError(t, store.Set(ctx, "demo-s1:patient-sequences", `[]`))
	require.NoError(t, store.Close())

	out, err := run(t, "cache", "show", "--cache", path, "--scope", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "u1:patient-sequences")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "malformed")
	assert.NotContains(t, out, "demo-s1")

	out, err = run(t, "cache", "show", "--cache", path)
	require.NoError(t, err)
	assert.Contains(t, out, "demo-s1:patient-sequences")
}

func TestCacheShow_Empty(t *testing.T) {
	out, err := run(t, "cache", "show", "--cache", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "no cache entries")
}

func TestCachePush_RequiresValidUser(t *testing.T) {
	_, err := run(t, "cache", "push", "--cache", filepath.Join(t.TempDir(), "cache.db"))
	assert.Error(t, err)

	_, err = run(t, "cache", "push", "--user", "nope", "--cache", filepath.Join(t.TempDir(), "cache.db"))
	assert.ErrorContains(t, err, "invalid --user")
}
