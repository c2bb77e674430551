package completion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FileCompleter lists files and directories under the path being typed.
// When Extensions is set, only files with one of those extensions are
// offered; directories are always offered so the user can descend.
type FileCompleter struct {
	Extensions []string
}

// Complete lists the entries matching in.Value
func (c FileCompleter) Complete(_ context.Context, in *Input) ([]Suggestion, error) {
	return listEntries(in.Value, func(entry os.DirEntry) bool {
		if entry.IsDir() || len(c.Extensions) == 0 {
			return true
		}
		ext := filepath.Ext(entry.Name())
		for _, allowed := range c.Extensions {
			if ext == allowed || ext == "."+strings.TrimPrefix(allowed, ".") {
				return true
			}
		}
		return false
	}), nil
}

// DirCompleter lists only directories
type DirCompleter struct{}

// Complete lists the directories matching in.Value
func (DirCompleter) Complete(_ context.Context, in *Input) ([]Suggestion, error) {
	return listEntries(in.Value, func(entry os.DirEntry) bool {
		return entry.IsDir()
	}), nil
}

// listEntries reads the directory part of value and keeps the entries
// accepted by keep whose name starts with the base part. The directory part
// is kept as typed so candidates extend what is on the command line.
// Unreadable directories yield no candidates.
func listEntries(value string, keep func(os.DirEntry) bool) []Suggestion {
	dirPart := ""
	base := value
	if i := strings.LastIndex(value, "/"); i >= 0 {
		dirPart = value[:i+1]
		base = value[i+1:]
	}

	searchDir := dirPart
	if searchDir == "" {
		searchDir = "."
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return []Suggestion{}
	}

	suggestions := []Suggestion{}
	for _, entry := range entries {
		name := entry.Name()

		if !strings.HasPrefix(name, base) {
			continue
		}
		// Hidden entries only when asked for
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if !keep(entry) {
			continue
		}

		value := dirPart + name
		if entry.IsDir() {
			value += "/"
		}
		suggestions = append(suggestions, Suggestion{Value: value})
	}

	return suggestions
}
