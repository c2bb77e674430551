package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	path := writeManifest(t, deployManifest)

	var out bytes.Buffer
	require.NoError(t, Install(InstallParams{ManifestPath: path, LogLevel: "error", Shell: "fish", Output: &out}))
	assert.Contains(t, out.String(), "Completion script written to")

	script := filepath.Join(home, ".config", "fish", "completions", "deploy.fish")
	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Contains(t, string(content), "complete -c deploy")
	assert.Contains(t, string(content), path)

	out.Reset()
	require.NoError(t, Install(InstallParams{ManifestPath: path, LogLevel: "error", Shell: "fish", Output: &out}))
	assert.Contains(t, out.String(), "up to date")

	out.Reset()
	require.NoError(t, Install(InstallParams{ManifestPath: path, LogLevel: "error", Shell: "fish", Uninstall: true, Output: &out}))
	assert.NoFileExists(t, script)
}

func TestInstall_ZshPrograms(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	var out bytes.Buffer
	err := Install(InstallParams{LogLevel: "error", Shell: "zsh", Programs: []string{"dep", "deploy"}, Output: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "source "+filepath.Join(home, ".zshrc"))

	rc, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Contains(t, string(rc), "completion for dep - START")
	assert.Contains(t, string(rc), "completion for deploy - START")
}
