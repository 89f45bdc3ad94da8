// Package lcu provides a client for the local League Client API.
package lcu

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Credentials are the connection details the client writes to its lockfile.
type Credentials struct {
	Port     int
	Password string
}

// defaultLockfilePaths are the standard install locations checked when no
// explicit lockfile path is configured.
var defaultLockfilePaths = []string{
	`C:\Riot Games\League of Legends\lockfile`,
	"/Applications/League of Legends.app/Contents/LoL/lockfile",
}

// FindLockfile returns the first lockfile that exists, preferring the
// configured path.
func FindLockfile(configured string) (string, error) {
	candidates := defaultLockfilePaths
	if configured != "" {
		candidates = append([]string{configured}, candidates...)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".local/share/League of Legends/lockfile"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("lockfile not found, is the League client running?")
}

// ReadLockfile parses a lockfile of the form name:pid:port:password:protocol.
func ReadLockfile(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return ParseLockfile(string(data))
}

// ParseLockfile decodes the raw lockfile contents.
func ParseLockfile(contents string) (Credentials, error) {
	parts := strings.Split(strings.TrimSpace(contents), ":")
	if len(parts) < 5 {
		return Credentials{}, fmt.Errorf("malformed lockfile: expected 5 fields, got %d", len(parts))
	}

	port, err := strconv.Atoi(parts[2])
	if err != nil {
		return Credentials{}, fmt.Errorf("malformed lockfile port %q: %w", parts[2], err)
	}

	return Credentials{Port: port, Password: parts[3]}, nil
}
