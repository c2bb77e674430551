package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// containsMarkers checks if content contains both start and end markers
func containsMarkers(content, startMarker, endMarker string) bool {
	return strings.Contains(content, startMarker) && strings.Contains(content, endMarker)
}

// removeMarkedSection removes a section marked by start and end markers
func removeMarkedSection(content, startMarker, endMarker string) string {
	startIdx := strings.Index(content, startMarker)
	endIdx := strings.Index(content, endMarker)

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return content
	}

	// Remove the marked section including markers
	before := content[:startIdx]
	after := content[endIdx+len(endMarker):]

	// Trim extra newlines
	before = strings.TrimRight(before, "\n")
	after = strings.TrimLeft(after, "\n")

	if len(before) > 0 && len(after) > 0 {
		return before + "\n" + after
	}
	if len(before) > 0 {
		return before + "\n"
	}
	return after
}

// atomicWrite writes data to a file atomically using a temporary file
func atomicWrite(filename string, data []byte) error {
	const perm = 0644
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), ".clinput-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	tmpFile = nil
	return nil
}
