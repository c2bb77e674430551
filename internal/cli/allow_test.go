package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/clinput/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowRevokeList(t *testing.T) {
	path := writeManifest(t, gitManifest)
	authPath := filepath.Join(t.TempDir(), "authorized.json")

	var out bytes.Buffer
	require.NoError(t, Allow(AllowParams{ManifestPath: path, AuthPath: authPath, LogLevel: "error", Output: &out}))
	assert.Contains(t, out.String(), "✓ Allowed: "+path)
	assert.Contains(t, out.String(), "  - printf 'main\\nmaint\\n'")

	a, err := auth.New(authPath)
	require.NoError(t, err)
	assert.True(t, a.IsAllowed(path, []string{`printf 'main\nmaint\n'`}))

	out.Reset()
	require.NoError(t, List(authPath, &out))
	assert.Equal(t, path+"\n", out.String())

	require.NoError(t, os.Remove(path))
	out.Reset()
	require.NoError(t, List(authPath, &out))
	assert.Equal(t, path+" (missing)\n", out.String())

	out.Reset()
	require.NoError(t, Revoke(AllowParams{ManifestPath: path, AuthPath: authPath, Output: &out}))
	assert.Contains(t, out.String(), "✓ Revoked: "+path)

	out.Reset()
	require.NoError(t, Revoke(AllowParams{ManifestPath: path, AuthPath: authPath, Output: &out}))
	assert.Contains(t, out.String(), "✓ Not allowed")

	out.Reset()
	require.NoError(t, List(authPath, &out))
	assert.Equal(t, "No allowed manifests\n", out.String())
}

func TestAllow_NoCommands(t *testing.T) {
	path := writeManifest(t, deployManifest)
	var out bytes.Buffer

	require.NoError(t, Allow(AllowParams{ManifestPath: path, AuthPath: filepath.Join(t.TempDir(), "a.json"), Output: &out}))
	assert.Contains(t, out.String(), "no completion commands declared")
}
