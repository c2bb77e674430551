package completion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecWithTimeoutAndEnv(t *testing.T) {
	t.Run("successful command", func(t *testing.T) {
		output, err := execWithTimeoutAndEnv(context.Background(), nil, "echo", "hello", "world")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", string(output))
	})

	t.Run("with custom env", func(t *testing.T) {
		output, err := execWithTimeoutAndEnv(context.Background(), []string{"TEST_VAR=hello"}, "sh", "-c", "echo $TEST_VAR")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(output))
	})

	t.Run("command that fails", func(t *testing.T) {
		_, err := execWithTimeoutAndEnv(context.Background(), nil, "false")
		assert.Error(t, err)
	})

	t.Run("command timeout", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		_, err := execWithTimeoutAndEnv(ctx, nil, "sleep", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})

	t.Run("output size limit", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		output, _ := execWithTimeoutAndEnv(ctx, nil, "sh", "-c", "yes | head -c 2000000")
		assert.LessOrEqual(t, len(output), MaxOutputSize)
	})
}

func TestParseCompletionOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Suggestion
	}{
		{
			name:   "values only",
			output: "main\ndevelop\n",
			want:   []Suggestion{{Value: "main"}, {Value: "develop"}},
		},
		{
			name:   "with descriptions",
			output: "prod\tProduction\nstaging\tStaging env\n",
			want: []Suggestion{
				{Value: "prod", Description: "Production"},
				{Value: "staging", Description: "Staging env"},
			},
		},
		{
			name:   "blank lines and carriage returns",
			output: "a\r\n\n  \nb\r\n",
			want:   []Suggestion{{Value: "a"}, {Value: "b"}},
		},
		{
			name:   "empty",
			output: "",
			want:   []Suggestion{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCompletionOutput([]byte(tt.output)))
		})
	}
}

func TestCommandCompleter(t *testing.T) {
	c := CommandCompleter{Command: []string{"sh", "-c", `printf '%s-one\t%s\n%s-two\n' "$CLINPUT_CURRENT" "$CLINPUT_COMPLETE_NAME" "$CLINPUT_CURRENT"`}}

	got, err := c.Complete(context.Background(), &Input{Name: "env", Value: "pr"})
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{
		{Value: "pr-one", Description: "env"},
		{Value: "pr-two"},
	}, got)
}

func TestCommandCompleter_Errors(t *testing.T) {
	_, err := CommandCompleter{}.Complete(context.Background(), &Input{})
	assert.Error(t, err)

	_, err = CommandCompleter{Command: []string{"false"}}.Complete(context.Background(), &Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `completion command "false" failed`)

	_, err = CommandCompleter{Command: []string{"sleep", "1"}, Timeout: 50 * time.Millisecond}.Complete(context.Background(), &Input{})
	assert.Error(t, err)
}

func TestExecutableCompleter(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeFile(t, filepath.Join(first, "deploy"), 0o755)
	writeFile(t, filepath.Join(first, "notes.txt"), 0o644)
	writeFile(t, filepath.Join(second, "deploy"), 0o755)
	writeFile(t, filepath.Join(second, "debug"), 0o700)
	require.NoError(t, os.Mkdir(filepath.Join(second, "dir"), 0o755))

	c := ExecutableCompleter{Path: first + string(os.PathListSeparator) + second + string(os.PathListSeparator) + "/does/not/exist"}

	got, err := c.Complete(context.Background(), &Input{Value: "de"})
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{Value: "debug"}, {Value: "deploy"}}, got)

	got, err = c.Complete(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{Value: "debug"}, {Value: "deploy"}}, got)
}

func TestExecutableCompleter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecutableCompleter{Path: t.TempDir()}.Complete(ctx, &Input{})
	assert.ErrorIs(t, err, context.Canceled)
}

func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), mode))
	require.NoError(t, os.Chmod(path, mode))
}
