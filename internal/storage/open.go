package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/spinday/internal/storage/postgres"
	"github.com/julianstephens/spinday/internal/storage/sqlite"
)

// Open returns the provider for target without initializing or loading it.
// Postgres URLs and DSNs select PostgreSQL, *.json selects the JSON document,
// anything else is treated as a SQLite file path.
func Open(target string) (Provider, error) {
	switch {
	case postgres.IsURL(target) || isPostgresDSN(target):
		if _, err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(target), nil
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return NewJSONStore(target), nil
	case target == "":
		return nil, fmt.Errorf("no storage target configured")
	default:
		return sqlite.NewStore(target), nil
	}
}

func isPostgresDSN(target string) bool {
	return strings.Contains(target, "host=") || strings.Contains(target, "dbname=")
}

// SchemaVersioner is implemented by SQL-backed providers
type SchemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

// Migrator applies pending schema migrations, reporting progress through logFn
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}

// OpenTrusted opens a PostgreSQL connection string taken from a secret store
// (environment or OS keyring), where embedded passwords are allowed.
func OpenTrusted(connStr string) (Provider, error) {
	if !postgres.IsURL(connStr) && !isPostgresDSN(connStr) {
		return nil, fmt.Errorf("%w: expected a postgres:// URL or key=value DSN", postgres.ErrInvalidConnectionString)
	}
	return postgres.New(connStr), nil
}
