package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the key-value persistence adapter. Values are JSON documents; a
// Load of an absent key returns (nil, nil) so callers can fall back to empty
// defaults without error handling noise.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// DefaultDataPath returns the default classboard data location.
func DefaultDataPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".classboard"), nil
}

// ResolveDataPath picks the storage location: explicit flag value first, then
// the CLASSBOARD_DATA environment variable, then the home-dir default.
func ResolveDataPath(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("CLASSBOARD_DATA")); v != "" {
		return v, nil
	}
	return DefaultDataPath()
}

// Open selects the backend from the path shape: a path ending in ".db" is a
// single SQLite database, anything else is a directory of per-key JSON files.
func Open(ctx context.Context, path string) (Store, error) {
	if strings.HasSuffix(path, ".db") {
		return OpenSQLite(ctx, path)
	}
	return OpenFileStore(path)
}
