package completion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.txt", "c.GO", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func TestFileCompleter(t *testing.T) {
	dir := fileTree(t)

	tests := []struct {
		name       string
		extensions []string
		value      string
		want       []string
	}{
		{name: "everything visible", value: dir + "/", want: []string{dir + "/a.go", dir + "/b.txt", dir + "/c.GO", dir + "/sub/"}},
		{name: "extension filter", extensions: []string{".go"}, value: dir + "/", want: []string{dir + "/a.go", dir + "/sub/"}},
		{name: "extension without dot", extensions: []string{"txt"}, value: dir + "/", want: []string{dir + "/b.txt", dir + "/sub/"}},
		{name: "base prefix", value: dir + "/b", want: []string{dir + "/b.txt"}},
		{name: "hidden when asked", value: dir + "/.", want: []string{dir + "/.git/", dir + "/.hidden"}},
		{name: "missing directory", value: dir + "/nope/", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FileCompleter{Extensions: tt.extensions}
			got, err := c.Complete(context.Background(), &Input{Value: tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(got))
		})
	}
}

func TestDirCompleter(t *testing.T) {
	dir := fileTree(t)

	got, err := DirCompleter{}.Complete(context.Background(), &Input{Value: dir + "/"})
	require.NoError(t, err)
	assert.Equal(t, []string{dir + "/sub/"}, values(got))

	got, err = DirCompleter{}.Complete(context.Background(), &Input{Value: dir + "/."})
	require.NoError(t, err)
	assert.Equal(t, []string{dir + "/.git/"}, values(got))
}

func TestFileCompleter_RelativeToWorkingDirectory(t *testing.T) {
	dir := fileTree(t)
	t.Chdir(dir)

	got, err := FileCompleter{}.Complete(context.Background(), &Input{Value: "s"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/"}, values(got))

	got, err = FileCompleter{}.Complete(context.Background(), &Input{Value: "./a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"./a.go"}, values(got))
}
