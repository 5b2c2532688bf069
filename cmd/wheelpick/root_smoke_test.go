package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/wheelpick/internal/logger"
)

func TestRootHelpListsPickers(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	for _, name := range []string{"date", "time", "list", "config"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestRootUnknownSubcommandErrors(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"nope"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestDebugFlagCreatesLogDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = logger.Init(logger.Options{}) })

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--debug", "config", "show"})
	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(filepath.Join(home, ".wheelpick", "logs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMainHelpFlagDoesNotExit(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"wheelpick", "--help"}
	defer func() { os.Args = oldArgs }()

	main()
}
