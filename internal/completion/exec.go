package completion

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/btree"
)

const (
	// DefaultCommandTimeout bounds a CommandCompleter run
	DefaultCommandTimeout = 3 * time.Second
	// MaxOutputSize is the maximum size of command output (1MB)
	MaxOutputSize = 1024 * 1024
)

// CommandCompleter delegates to an external program. The program receives
// the value being completed in CLINPUT_CURRENT and the option or argument
// name in CLINPUT_COMPLETE_NAME, and prints one candidate per line,
// optionally followed by a tab and a description.
type CommandCompleter struct {
	Command []string
	Timeout time.Duration
}

// Complete runs the command and parses its output
func (c CommandCompleter) Complete(ctx context.Context, in *Input) ([]Suggestion, error) {
	if len(c.Command) == 0 {
		return nil, errors.New("no command configured")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	env := append(os.Environ(),
		"CLINPUT_CURRENT="+in.Value,
		"CLINPUT_COMPLETE_NAME="+in.Name,
	)

	output, err := execWithTimeoutAndEnv(ctx, env, c.Command[0], c.Command[1:]...)
	if err != nil {
		return nil, fmt.Errorf("completion command %q failed: %w", c.Command[0], err)
	}
	return parseCompletionOutput(output), nil
}

// execWithTimeoutAndEnv executes a command bound to ctx with a custom
// environment. If env is nil, the command inherits the current process
// environment.
func execWithTimeoutAndEnv(ctx context.Context, env []string, tool string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	if env != nil {
		cmd.Env = env
	}

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("command timeout: %w", err)
		}
		return nil, err
	}

	// Limit output size
	if len(output) > MaxOutputSize {
		return output[:MaxOutputSize], nil
	}

	return output, nil
}

// parseCompletionOutput reads "value[\tdescription]" lines
func parseCompletionOutput(output []byte) []Suggestion {
	suggestions := []Suggestion{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		value, description, _ := strings.Cut(line, "\t")
		suggestions = append(suggestions, Suggestion{
			Value:       strings.TrimSpace(value),
			Description: strings.TrimSpace(description),
		})
	}

	return suggestions
}

// ExecutableCompleter lists the executables found on $PATH
type ExecutableCompleter struct {
	// Path overrides $PATH when set
	Path string
}

// Complete lists executables whose name starts with in.Value
func (c ExecutableCompleter) Complete(ctx context.Context, in *Input) ([]Suggestion, error) {
	path := c.Path
	if path == "" {
		path = os.Getenv("PATH")
	}

	var names btree.Set[string]
	for _, dir := range filepath.SplitList(path) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dir == "" {
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasPrefix(entry.Name(), in.Value) {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.Mode().Perm()&0o111 == 0 {
				continue
			}
			names.Insert(entry.Name())
		}
	}

	suggestions := make([]Suggestion, 0, names.Len())
	names.Scan(func(name string) bool {
		suggestions = append(suggestions, Suggestion{Value: name})
		return true
	})
	return suggestions, nil
}
