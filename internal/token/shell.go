package token

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Split breaks a shell command line into words, honoring quotes and
// backslash escapes. Variables and globs are not expanded.
func Split(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	return words, nil
}

// Join quotes each token as needed so that Split returns the same tokens
func Join(tokens ...string) string {
	return shellquote.Join(tokens...)
}
