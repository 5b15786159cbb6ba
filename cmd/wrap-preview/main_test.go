package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTunablesPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("longTokenMinWidth: 10\ndividerMinRun: 6\n"), 0644))

	tun, err := loadTunables(path)
	require.NoError(t, err)

	assert.Equal(t, 10, tun.LongTokenMinWidth)
	assert.Equal(t, 6, tun.DividerMinRun)
	// Unnamed fields keep their defaults.
	assert.Equal(t, 40, tun.DividerMaxLabelWidth)
	assert.Equal(t, []string{"Edited"}, tun.CodexDiffVerbs)
}

func TestLoadTunablesMissingFile(t *testing.T) {
	_, err := loadTunables(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadTunablesBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("longTokenMinWidth: [unclosed"), 0644))

	_, err := loadTunables(path)
	require.Error(t, err)
}
