package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseArgs(t *testing.T, args ...string) *CLI {
	t.Helper()

	var cli CLI
	_, err := newParser(&cli).Parse(args)
	require.NoError(t, err)
	return &cli
}

// runPiped runs the command with script on a non-terminal stdin.
func runPiped(t *testing.T, cli *CLI, script ...string) (int, string) {
	t.Helper()

	stdinPath := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(stdinPath, []byte(strings.Join(script, "\n")+"\n"), 0o644))
	stdin, err := os.Open(stdinPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stdin.Close() })

	var out bytes.Buffer
	code := run(cli, stdin, &out)
	return code, out.String()
}

func TestRun_InsertSelectAndReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "users.db")

	cli := parseArgs(t, file)
	require.Equal(t, file, cli.File)

	code, out := runPiped(t, cli, "insert 1 user1 user1@example.com", "select", ".exit")
	require.Zero(t, code)
	assert.Equal(t, "> Row inserted successfully.\n"+
		"> [SELECT] (1 user1 user1@example.com)\n"+
		"> Returned 1 rows.\n"+
		"> Encountered exit, exiting...\n", out)

	code, out = runPiped(t, parseArgs(t, file), "select", ".exit")
	require.Zero(t, code)
	assert.Equal(t, "> [SELECT] (1 user1 user1@example.com)\n"+
		"> Returned 1 rows.\n"+
		"> Encountered exit, exiting...\n", out)
}

func TestRun_FileArgumentOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	fromConfig := filepath.Join(dir, "config.db")
	fromArg := filepath.Join(dir, "arg.db")

	cfgPath := filepath.Join(dir, "rowstore.yaml")
	yaml := "storage:\n  path: " + fromConfig + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	code, _ := runPiped(t, parseArgs(t, "-c", cfgPath), "insert 1 cfg cfg@example.com", ".exit")
	require.Zero(t, code)

	code, _ = runPiped(t, parseArgs(t, "--config", cfgPath, fromArg), "insert 2 arg arg@example.com", ".exit")
	require.Zero(t, code)

	_, out := runPiped(t, parseArgs(t, "-c", cfgPath), "select")
	assert.Equal(t, "> [SELECT] (1 cfg cfg@example.com)\n> Returned 1 rows.\n", out)

	_, out = runPiped(t, parseArgs(t, fromArg), "select")
	assert.Equal(t, "> [SELECT] (2 arg arg@example.com)\n> Returned 1 rows.\n", out)
}

func TestRun_EphemeralInTempDir(t *testing.T) {
	tempDir := t.TempDir()

	cli := parseArgs(t, "--temp-dir", tempDir, "-d")
	require.Empty(t, cli.File)
	require.True(t, cli.Debug)

	code, out := runPiped(t, cli, "insert 1 tmp tmp@example.com", "select", ".exit")
	require.Zero(t, code)
	assert.Contains(t, out, "> [SELECT] (1 tmp tmp@example.com)\n")

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, out = runPiped(t, parseArgs(t, "--temp-dir", tempDir), "select")
	assert.Equal(t, "> Returned 0 rows.\n", out)
}

func TestRun_BadConfig(t *testing.T) {
	code, out := runPiped(t, parseArgs(t, "-c", filepath.Join(t.TempDir(), "missing.yaml")), "select")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}
