// Package auth records which manifests may run completion commands.
// A grant covers the set of "exec:" commands the manifest declared when it
// was allowed; changing any of them requires a new grant.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// Grant stores the authorization state of a manifest
type Grant struct {
	Allowed      bool      `json:"allowed"`
	AllowedAt    time.Time `json:"allowed_at,omitempty"`
	CommandsHash string    `json:"commands_hash,omitempty"`
}

// Auth manages manifest grants persisted in a JSON file
type Auth struct {
	path   string
	mu     sync.RWMutex
	grants map[string]*Grant
}

// DefaultPath returns $XDG_DATA_HOME/clinput/authorized.json
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "clinput", "authorized.json"), nil
}

// New creates a new auth manager
func New(path string) (*Auth, error) {
	a := &Auth{
		path:   path,
		grants: make(map[string]*Grant),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if err := a.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return a, nil
}

// Allow grants manifest the right to run commands
func (a *Auth) Allow(manifest string, commands []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.grants[normalizePath(manifest)] = &Grant{
		Allowed:      true,
		AllowedAt:    time.Now(),
		CommandsHash: hashCommands(commands),
	}
	return a.persist()
}

// IsAllowed reports whether manifest may run commands. A manifest without
// commands needs no grant.
func (a *Auth) IsAllowed(manifest string, commands []string) bool {
	if len(commands) == 0 {
		return true
	}

	grant := a.Get(manifest)
	return grant != nil && grant.Allowed && grant.CommandsHash == hashCommands(commands)
}

// Get returns the grant of manifest, or nil
func (a *Auth) Get(manifest string) *Grant {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grants[normalizePath(manifest)]
}

// Revoke removes the grant of manifest
func (a *Auth) Revoke(manifest string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.grants, normalizePath(manifest))
	return a.persist()
}

// List returns the allowed manifests in lexical order
func (a *Auth) List() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	paths := make([]string, 0, len(a.grants))
	for path, grant := range a.grants {
		if grant.Allowed {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths
}

// Clear removes all grants
func (a *Auth) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.grants = make(map[string]*Grant)
	return a.persist()
}

// hashCommands computes a hash independent of declaration order
func hashCommands(commands []string) string {
	sorted := slices.Clone(commands)
	slices.Sort(sorted)

	h := sha256.New()
	for _, c := range sorted {
		fmt.Fprintf(h, "%s\n", c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (a *Auth) load() error {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return err
	}

	var grants map[string]*Grant
	if err := json.Unmarshal(data, &grants); err != nil {
		return err
	}

	a.grants = make(map[string]*Grant, len(grants))
	for path, grant := range grants {
		a.grants[normalizePath(path)] = grant
	}
	return nil
}

func (a *Auth) persist() error {
	data, err := json.MarshalIndent(a.grants, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.path, data, 0600)
}

// normalizePath removes trailing slashes and cleans the path
func normalizePath(path string) string {
	cleaned := filepath.Clean(path)
	return strings.TrimSuffix(cleaned, "/")
}
