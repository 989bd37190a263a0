// Package store provides the key-value persistence gateway behind the day
// counter and its file, SQLite, PocketBase and in-memory backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daycounter/internal/config"
	"daycounter/internal/db"
)

// StartDateKey is the single key the day counter persists.
const StartDateKey = "startDate"

// Backend names accepted by Open.
const (
	BackendFile       = "file"
	BackendSQLite     = "sqlite"
	BackendPocketBase = "pocketbase"
	BackendMemory     = "memory"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Gateway is an asynchronous-safe key-value store. Get reports found=false
// without an error when the key is absent.
type Gateway interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open builds the gateway selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Config) (Gateway, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendFile, "":
		path := cfg.StorePath
		if path == "" {
			path = defaultFilePath
		}
		return NewFile(path)
	case BackendSQLite:
		path := cfg.StorePath
		if path == "" {
			path = defaultSQLitePath
		}
		return OpenSQLite(ctx, path)
	case BackendPocketBase:
		manager, err := db.InitManager(ctx, cfg.PocketBase)
		if err != nil {
			return nil, err
		}
		return NewPocketBase(manager), nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
