package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	t.Run("separate value", func(t *testing.T) {
		path, err := configPath([]string{"--debug", "--config", "/etc/ivids/config.toml", "check"})
		require.NoError(t, err)
		assert.Equal(t, "/etc/ivids/config.toml", path)
	})

	t.Run("inline value", func(t *testing.T) {
		path, err := configPath([]string{"--config=./conf/../ivids.toml", "check"})
		require.NoError(t, err)
		assert.Equal(t, "ivids.toml", path)
	})

	t.Run("defaults to home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		path, err := configPath([]string{"check", "--", "--config", "ignored"})
		require.NoError(t, err)
		assert.Equal(t, home, path)
	})
}

func TestHasFlag(t *testing.T) {
	args := []string{"--verbose", "check", "--", "--debug"}
	assert.True(t, hasFlag(args, "verbose"))
	assert.False(t, hasFlag(args, "debug"))
}

func TestInitializeApp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	app, err := initializeApp([]string{"--config", path, "config", "show"})
	require.NoError(t, err)
	assert.FileExists(t, path)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"check", "update", "download-repo", "blocked", "config", "help"}, names)
}
