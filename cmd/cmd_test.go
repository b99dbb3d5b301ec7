package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sortbot/internal/store"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

const missingCompost = `
version: 1
field: {width: 40, height: 12}
origin: {x: 17, y: 1}
item: {width: 4, height: 2}
helper:
  name: robot
  rect: {x: 30, y: 0, w: 10, h: 4}
bins:
  - {id: garbage, rect: {x: 0, y: 6, w: 12, h: 6}}
  - {id: recycle, rect: {x: 14, y: 6, w: 12, h: 6}}
`

func TestLayoutPrint(t *testing.T) {
	out, _, err := execute(t, "", "layout", "print")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "compost")
}

func TestLayoutCheck_Default(t *testing.T) {
	out, _, err := execute(t, "", "layout", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "ROBOT HELPER")
}

func TestLayoutCheck_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(missingCompost), 0o644))

	_, errOut, err := execute(t, "", "layout", "check", path)
	require.Error(t, err)
	assert.Contains(t, errOut, `missing bin "compost"`)
}

func TestStatsAndReset(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stats.db")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	repo := s.EventRepo()
	require.NoError(t, repo.AppendSortEvent(ctx, store.SortEventData{
		SessionID: "s1", Category: "green", Outcome: "disposed", Bin: "compost",
		Source: store.SourcePlayer, Correct: true,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "s1", Action: "end", Disposed: 1, DurationSecs: 75,
	}))
	require.NoError(t, s.Close())

	out, _, err := execute(t, "", "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Sorted: 1")
	assert.Contains(t, out, "Green peel")
	assert.Contains(t, out, "1:15")

	out, _, err = execute(t, "no\n", "reset", "--yes=false", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")

	out, _, err = execute(t, "", "reset", "--yes", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	out, _, err = execute(t, "", "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing sorted yet.")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sortbot "))
}
