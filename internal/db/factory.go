package db

import (
	"fmt"
	"strings"
)

// StoreConfig holds configuration for the history backend
type StoreConfig struct {
	Type             string // "sqlite"
	ConnectionString string // File path for SQLite
}

// NewStore creates a new Store instance based on the provided configuration
func NewStore(config StoreConfig) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "sqlite", "sqlite3", "":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("sqlite store requires a database path")
		}
		return NewSQLiteStore(config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
